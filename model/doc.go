// Package model defines the four-group bivariate Gaussian model shared by the
// mixmc sampling engines.
//
// # Model
//
// Each observation (group, x1, x2) is drawn from a bivariate normal with a
// shared variance s on both coordinates. The mean depends on the group:
//
//	group 1: (mu1, mu2)
//	group 2: (gamma1, gamma2)
//	group 3: 0.5*mu + 0.5*gamma
//	group 4: tau*mu + (1-tau)*gamma
//
// The row likelihood is
//
//	Pnorm(x1, m1, s) * Pnorm(x2, m2, s) / s
//
// where Pnorm is the unnormalized density exp(-(x-m)^2/(2s))/sqrt(s) and the
// trailing 1/s is the prior on the variance. The constant 1/sqrt(2*pi) is
// omitted; only likelihood ratios are used.
//
// # Pieces
//
//   - Group, Observation and Dataset: validated, read-only input
//   - Params: immutable parameter state with copy-on-write block updates
//   - Likelihood, LogLikelihood, LogLikelihoodRatio: used by the MH and
//     importance engines
//   - SufficientStats: per-group counts and means used by the Gibbs engine
//   - Potential and Gradient: energy function for the HMC engine
//
// # Example
//
//	d, err := model.NewDataset([]model.Observation{
//	    {Group: model.Group1, X1: 0, X2: 0},
//	    {Group: model.Group2, X1: 1, X2: 1},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ll := model.LogLikelihood(d, model.DefaultInitial())
package model
