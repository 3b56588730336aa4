// Package mh implements a Metropolis-within-Gibbs sampler for the mixmc model.
//
// Each sweep runs four block updates in order, each an independent
// accept/reject against the state left by the previous block:
//
//   - s: random walk s' ~ Normal(s, SProposalSD); proposals with s' <= 0 or
//     s' > SUpperBound are rejected without evaluating the likelihood
//   - tau: independence proposal tau' ~ Uniform(0, 1)
//   - mu: both coordinates moved by Normal(0, MeanProposalSD) and accepted jointly
//   - gamma: as mu
//
// A proposal is accepted when ratio >= 1 or ratio > u with u ~ Uniform(0, 1).
// The ratio is the likelihood ratio times the reverse/forward proposal density
// ratio, which is exactly 1 for the symmetric normal walks but is still
// evaluated. Likelihoods are compared in log space and only the final ratio
// is exponentiated, so large datasets do not underflow.
//
// Example:
//
//	s, err := mh.New(mh.WithMeanProposalSD(0.25))
//	if err != nil {
//	    return err
//	}
//	c, err := s.Run(dataset, 1000, 5000, 42)
package mh
