package hmc

import (
	"fmt"
	"math"

	"github.com/arloliu/mixmc/chain"
	"github.com/arloliu/mixmc/errs"
	"github.com/arloliu/mixmc/internal/options"
	"github.com/arloliu/mixmc/internal/rng"
	"github.com/arloliu/mixmc/model"
)

// EngineName identifies chains produced by this package.
const EngineName = "hmc"

// BlockQ names the single joint update of the whole position vector.
const BlockQ = "q"

type vec = [model.NumParams]float64

// Sampler is a Hamiltonian Monte Carlo sampler over the six-dimensional
// position q = (s, tau, mu1, mu2, gamma1, gamma2). It is immutable after New.
type Sampler struct {
	cfg Config
}

// New creates a Sampler from DefaultConfig adjusted by opts.
func New(opts ...Option) (*Sampler, error) {
	cfg := DefaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return &Sampler{cfg: cfg}, nil
}

// Config returns the sampler configuration.
func (s *Sampler) Config() Config {
	return s.cfg
}

// Run discards burnin transitions and records the position after each of the
// next samples transitions, relabeled as model.Params.
func (s *Sampler) Run(d *model.Dataset, burnin, samples int, seed uint64) (*chain.Chain, error) {
	if d == nil || d.Len() == 0 {
		return nil, errs.ErrEmptyDataset
	}
	if burnin < 0 || samples < 0 {
		return nil, fmt.Errorf("%w: burnin=%d samples=%d", errs.ErrInvalidCount, burnin, samples)
	}

	logger := s.cfg.Logger.With("engine", EngineName, "seed", seed)
	logger.Debug("starting chain",
		"burnin", burnin,
		"samples", samples,
		"leapfrog_steps", s.cfg.LeapfrogSteps,
		"step_size", s.cfg.StepSize,
	)

	r := &run{
		cfg:  s.cfg,
		data: d,
		rand: rng.New(seed),
		q:    s.cfg.Initial.Vector(),
		out:  chain.NewBuilder(EngineName, seed, samples),
	}

	for range burnin {
		r.step()
	}
	for range samples {
		r.step()
		r.out.Append(model.ParamsFromVector(r.q))
	}

	c := r.out.Build()
	rates := c.AcceptanceRates()
	logger.Info("chain finished", "samples", c.Len(), "accept", rates[BlockQ])

	return c, nil
}

type run struct {
	cfg  Config
	data *model.Dataset
	rand *rng.Rand
	q    vec
	p    vec
	out  *chain.Builder
}

// step performs one HMC transition: momentum refresh, leapfrog proposal and
// a joint accept/reject on exp(-H).
func (r *run) step() {
	r.refreshMomentum()
	qNew, pNew := r.leapfrog()

	h := hamiltonian(r.data, r.cfg.Mass, r.q, r.p)
	hNew := hamiltonian(r.data, r.cfg.Mass, qNew, pNew)
	alpha := math.Exp(h - hNew)

	accepted := r.rand.Float64() < alpha
	if accepted {
		r.q, r.p = qNew, pNew
	}
	r.out.Record(BlockQ, accepted)
}

// refreshMomentum draws p_i ~ Normal(0, m_i), the mass acting as the variance.
func (r *run) refreshMomentum() {
	for i, m := range r.cfg.Mass {
		r.p[i] = r.rand.Normal(0, math.Sqrt(m))
	}
}

// leapfrog integrates from (q, p) for LeapfrogSteps steps. Each step evaluates
// the gradient once at the start of the step and uses it for both momentum
// half-steps.
func (r *run) leapfrog() (vec, vec) {
	q, p := r.q, r.p
	dt := r.cfg.StepSize

	for range r.cfg.LeapfrogSteps {
		du := model.Gradient(r.data, q)
		for i := range q {
			p[i] -= 0.5 * dt * du[i]
			q[i] += dt * r.cfg.Mass[i] * p[i]
			p[i] -= 0.5 * dt * du[i]
		}
	}

	return q, p
}

// kinetic returns sum m_i * p_i^2 / 2.
func kinetic(mass, p vec) float64 {
	var k float64
	for i, m := range mass {
		k += m * p[i] * p[i]
	}

	return k / 2
}

func hamiltonian(d *model.Dataset, mass, q, p vec) float64 {
	return kinetic(mass, p) + model.Potential(d, q)
}
