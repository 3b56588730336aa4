// Package hmc implements a Hamiltonian Monte Carlo sampler for the mixmc model.
//
// The parameters form one position vector q = (s, tau, mu1, mu2, gamma1,
// gamma2) with a diagonal mass matrix m. The potential energy is
// model.Potential and its analytic gradient model.Gradient. The kinetic energy
// uses the convention
//
//	K(p) = sum_i m_i * p_i^2 / 2
//
// with momenta drawn as p_i ~ Normal(0, m_i), m_i acting as the variance. The
// leapfrog position update is q_i += dt * m_i * p_i. With the default unit
// masses this coincides with the usual formulation.
//
// One transition refreshes the momentum, runs L leapfrog steps and accepts
// the end point when u < exp(H(q, p) - H(q', p')). On rejection the position
// is kept; the momentum is redrawn at the next transition either way.
//
// The sampler has no hard constraint on s: model.Potential is +Inf for s <= 0
// so such proposals always fail the acceptance test. tau is not constrained.
package hmc
