// Package gibbs implements a conjugate Gibbs sampler for the mixmc model.
//
// Under flat priors on tau, mu and gamma, every block has a closed form full
// conditional, so each sweep draws, in order:
//
//   - s from 1/s ~ ChiSquared(2N), N the number of observations
//   - tau from a normal built from the group-4 statistics, truncated to (0, 1)
//     by rejection
//   - (mu1, mu2) from independent normals pooling groups 1, 3 and 4
//   - (gamma1, gamma2) from independent normals pooling groups 2, 3 and 4
//
// Every draw is accepted; there is no Metropolis test.
//
// # The s conditional
//
// The s draw ignores the residuals of the current means: it does not scale the
// chi-squared draw by the residual sum of squares as the textbook
// inverse-chi-squared update would. This is the model's established behaviour
// and is kept as is. Chains from this package therefore reflect the prior on s
// rather than the fit, and s is not comparable with the MH or HMC estimates.
//
// # Empty groups
//
// The conditionals need the mean of every group. Run rejects datasets with an
// empty group (errs.ErrEmptyGroup) instead of propagating 0/0.
package gibbs
