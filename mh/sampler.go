package mh

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
const EngineName = "mh"

// Update block names, in sweep order.
const (
	BlockS     = "s"
	BlockTau   = "tau"
	BlockMu    = "mu"
	BlockGamma = "gamma"
)

// Sampler is a Metropolis-within-Gibbs sampler. It is immutable after New
// and may run any number of chains.
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

// Run discards burnin sweeps and then records one state after each of the
// next samples sweeps. Equal seeds give bit-identical chains.
func (s *Sampler) Run(d *model.Dataset, burnin, samples int, seed uint64) (*chain.Chain, error) {
	if d == nil || d.Len() == 0 {
		return nil, errs.ErrEmptyDataset
	}
	if burnin < 0 || samples < 0 {
		return nil, fmt.Errorf("%w: burnin=%d samples=%d", errs.ErrInvalidCount, burnin, samples)
	}

	logger := s.cfg.Logger.With("engine", EngineName, "seed", seed)
	logger.Debug("starting chain", "burnin", burnin, "samples", samples, "rows", d.Len())

	r := &run{
		cfg:   s.cfg,
		data:  d,
		rand:  rng.New(seed),
		state: s.cfg.Initial,
		out:   chain.NewBuilder(EngineName, seed, samples),
	}
	r.ll = model.LogLikelihood(d, r.state)

	for range burnin {
		r.sweep()
	}
	for range samples {
		r.sweep()
		r.out.Append(r.state)
	}

	c := r.out.Build()
	rates := c.AcceptanceRates()
	logger.Info("chain finished",
		"samples", c.Len(),
		"accept_s", rates[BlockS],
		"accept_tau", rates[BlockTau],
		"accept_mu", rates[BlockMu],
		"accept_gamma", rates[BlockGamma],
	)

	return c, nil
}

// run is the mutable state of one chain. state is replaced wholesale on
// acceptance; ll caches its log-likelihood.
type run struct {
	cfg   Config
	data  *model.Dataset
	rand  *rng.Rand
	state model.Params
	ll    float64
	out   *chain.Builder
}

func (r *run) sweep() {
	r.updateS()
	r.updateTau()
	r.updateMu()
	r.updateGamma()
}

func (r *run) updateS() {
	sd := r.cfg.SProposalSD
	cur := r.state.S
	next := r.rand.Normal(cur, sd)
	if next <= 0 || next > r.cfg.SUpperBound {
		r.out.Record(BlockS, false)
		return
	}

	correction := model.LogPnorm(cur, next, sd) - model.LogPnorm(next, cur, sd)
	r.propose(BlockS, r.state.WithS(next), correction)
}

func (r *run) updateTau() {
	next := r.rand.Uniform(0, 1)
	if next <= 0 || next >= 1 {
		r.out.Record(BlockTau, false)
		return
	}

	r.propose(BlockTau, r.state.WithTau(next), 0)
}

func (r *run) updateMu() {
	sd := r.cfg.MeanProposalSD
	cur1, cur2 := r.state.Mu1, r.state.Mu2
	next1 := r.rand.Normal(cur1, sd)
	next2 := r.rand.Normal(cur2, sd)

	r.propose(BlockMu, r.state.WithMu(next1, next2), reverseCorrection(cur1, next1, cur2, next2, sd))
}

func (r *run) updateGamma() {
	sd := r.cfg.MeanProposalSD
	cur1, cur2 := r.state.Gamma1, r.state.Gamma2
	next1 := r.rand.Normal(cur1, sd)
	next2 := r.rand.Normal(cur2, sd)

	r.propose(BlockGamma, r.state.WithGamma(next1, next2), reverseCorrection(cur1, next1, cur2, next2, sd))
}

// propose runs the accept/reject test for candidate. logCorrection is the log
// of the reverse-to-forward proposal density ratio.
func (r *run) propose(block string, candidate model.Params, logCorrection float64) {
	nextLL := model.LogLikelihood(r.data, candidate)
	ratio := math.Exp(nextLL - r.ll + logCorrection)

	u := r.rand.Float64()
	accepted := ratio >= 1 || ratio > u
	if accepted {
		r.state = candidate
		r.ll = nextLL
	}
	r.out.Record(block, accepted)
}

func reverseCorrection(cur1, next1, cur2, next2, sd float64) float64 {
	return model.LogPnorm(cur1, next1, sd) - model.LogPnorm(next1, cur1, sd) +
		model.LogPnorm(cur2, next2, sd) - model.LogPnorm(next2, cur2, sd)
}
