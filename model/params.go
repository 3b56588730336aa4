package model

import (
	"fmt"
	"math"

	"github.com/arloliu/mixmc/errs"
)

// NumParams is the dimension of the parameter vector.
const NumParams = 6

// ParamNames lists the parameter names in vector order.
var ParamNames = [NumParams]string{"s", "tau", "mu1", "mu2", "gamma1", "gamma2"}

// Params is one parameter state. It is a value type: the With methods return
// modified copies and never touch the receiver.
type Params struct {
	S      float64 `json:"s"`
	Tau    float64 `json:"tau"`
	Mu1    float64 `json:"mu1"`
	Mu2    float64 `json:"mu2"`
	Gamma1 float64 `json:"gamma1"`
	Gamma2 float64 `json:"gamma2"`
}

// DefaultInitial returns the starting state used by the chain engines:
// s = 1, tau = 0.5 and both means at the origin.
func DefaultInitial() Params {
	return Params{S: 1, Tau: 0.5}
}

// WithS returns a copy of p with S replaced.
func (p Params) WithS(s float64) Params {
	p.S = s
	return p
}

// WithTau returns a copy of p with Tau replaced.
func (p Params) WithTau(tau float64) Params {
	p.Tau = tau
	return p
}

// WithMu returns a copy of p with the first latent mean replaced.
func (p Params) WithMu(mu1, mu2 float64) Params {
	p.Mu1, p.Mu2 = mu1, mu2
	return p
}

// WithGamma returns a copy of p with the second latent mean replaced.
func (p Params) WithGamma(gamma1, gamma2 float64) Params {
	p.Gamma1, p.Gamma2 = gamma1, gamma2
	return p
}

// Vector returns p in ParamNames order.
func (p Params) Vector() [NumParams]float64 {
	return [NumParams]float64{p.S, p.Tau, p.Mu1, p.Mu2, p.Gamma1, p.Gamma2}
}

// ParamsFromVector is the inverse of Params.Vector.
func ParamsFromVector(v [NumParams]float64) Params {
	return Params{S: v[0], Tau: v[1], Mu1: v[2], Mu2: v[3], Gamma1: v[4], Gamma2: v[5]}
}

// Validate checks the support constraints s > 0 and 0 < tau < 1 and that
// every value is finite.
func (p Params) Validate() error {
	for i, v := range p.Vector() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", errs.ErrInvalidParams, ParamNames[i], v)
		}
	}
	if p.S <= 0 {
		return fmt.Errorf("%w: s must be positive, got %v", errs.ErrInvalidParams, p.S)
	}
	if p.Tau <= 0 || p.Tau >= 1 {
		return fmt.Errorf("%w: tau must lie in (0, 1), got %v", errs.ErrInvalidParams, p.Tau)
	}

	return nil
}

// String formats p on one line per parameter.
func (p Params) String() string {
	return fmt.Sprintf("s: %v\ntau: %v\nmu1: %v\nmu2: %v\ngamma1: %v\ngamma2: %v",
		p.S, p.Tau, p.Mu1, p.Mu2, p.Gamma1, p.Gamma2)
}
