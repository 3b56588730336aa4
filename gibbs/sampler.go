package gibbs

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
const EngineName = "gibbs"

// Update block names, in sweep order.
const (
	BlockS     = "s"
	BlockTau   = "tau"
	BlockMu    = "mu"
	BlockGamma = "gamma"
)

// Sampler is a single-site Gibbs sampler drawing every block from its closed
// form full conditional. It is immutable after New.
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

// Run discards burnin sweeps and records the state after each of the next
// samples sweeps.
//
// Every group must hold at least one observation; otherwise Run fails with
// errs.ErrEmptyGroup rather than drawing from 0/0 means.
func (s *Sampler) Run(d *model.Dataset, burnin, samples int, seed uint64) (*chain.Chain, error) {
	if d == nil || d.Len() == 0 {
		return nil, errs.ErrEmptyDataset
	}
	if burnin < 0 || samples < 0 {
		return nil, fmt.Errorf("%w: burnin=%d samples=%d", errs.ErrInvalidCount, burnin, samples)
	}

	stats := d.Stats()
	if err := stats.RequireAllGroups(); err != nil {
		return nil, err
	}

	logger := s.cfg.Logger.With("engine", EngineName, "seed", seed)
	logger.Debug("starting chain", "burnin", burnin, "samples", samples, "rows", d.Len())

	r := &run{
		maxTau: s.cfg.MaxTauAttempts,
		n:      d.Len(),
		stats:  stats,
		rand:   rng.New(seed),
		state:  s.cfg.Initial,
		out:    chain.NewBuilder(EngineName, seed, samples),
	}

	for i := range burnin {
		if err := r.sweep(); err != nil {
			return nil, fmt.Errorf("burn-in sweep %d: %w", i, err)
		}
	}
	for i := range samples {
		if err := r.sweep(); err != nil {
			return nil, fmt.Errorf("sample sweep %d: %w", i, err)
		}
		r.out.Append(r.state)
	}

	c := r.out.Build()
	logger.Info("chain finished", "samples", c.Len())

	return c, nil
}

type run struct {
	maxTau int
	n      int
	stats  model.SufficientStats
	rand   *rng.Rand
	state  model.Params
	out    *chain.Builder
}

func (r *run) sweep() error {
	r.state = r.state.WithS(drawS(r.rand, r.n))
	r.out.Record(BlockS, true)

	tau, err := drawTau(r.rand, r.stats, r.state, r.maxTau)
	if err != nil {
		return err
	}
	r.state = r.state.WithTau(tau)
	r.out.Record(BlockTau, true)

	r.state = r.state.WithMu(drawMu(r.rand, r.stats, r.state))
	r.out.Record(BlockMu, true)

	r.state = r.state.WithGamma(drawGamma(r.rand, r.stats, r.state))
	r.out.Record(BlockGamma, true)

	return nil
}

// drawS draws s with 1/s ~ ChiSquared(2n).
//
// The draw does not depend on the residuals of the current means. This
// reproduces the established behaviour of the model; the textbook conjugate
// update would scale by the residual sum of squares.
func drawS(g *rng.Rand, n int) float64 {
	return 1 / g.ChiSquared(float64(2*n))
}

// drawTau draws tau from its group-4 full conditional truncated to (0, 1).
// When mu equals gamma tau is not identified and the draw is uniform.
func drawTau(g *rng.Rand, stats model.SufficientStats, p model.Params, maxAttempts int) (float64, error) {
	g4 := stats.Group(model.Group4)
	n4 := float64(g4.Count)
	d1, d2 := p.Mu1-p.Gamma1, p.Mu2-p.Gamma2

	denom := n4*d1*d1 + n4*d2*d2
	if denom == 0 {
		return uniformOpen(g, maxAttempts)
	}
	numer := n4*d1*(g4.Mean1-p.Gamma1) + n4*d2*(g4.Mean2-p.Gamma2)
	mean, sd := numer/denom, math.Sqrt(p.S/denom)

	for range maxAttempts {
		tau := g.Normal(mean, sd)
		if tau > 0 && tau < 1 {
			return tau, nil
		}
	}

	return 0, fmt.Errorf("%w after %d attempts (mean=%g sd=%g)", errs.ErrTauRejection, maxAttempts, mean, sd)
}

func uniformOpen(g *rng.Rand, maxAttempts int) (float64, error) {
	for range maxAttempts {
		tau := g.Uniform(0, 1)
		if tau > 0 {
			return tau, nil
		}
	}

	return 0, fmt.Errorf("%w after %d attempts", errs.ErrTauRejection, maxAttempts)
}

// drawMu draws (mu1, mu2) combining group 1 at full weight, group 3 at half
// weight and group 4 at weight tau.
func drawMu(g *rng.Rand, stats model.SufficientStats, p model.Params) (float64, float64) {
	g1, g3, g4 := stats.Group(model.Group1), stats.Group(model.Group3), stats.Group(model.Group4)
	n1, n3, n4 := float64(g1.Count), float64(g3.Count), float64(g4.Count)
	tau := p.Tau

	denom := n1 + 0.25*n3 + tau*tau*n4
	numer1 := n1*g1.Mean1 + 0.5*n3*(g3.Mean1-0.5*p.Gamma1) + tau*n4*(g4.Mean1-(1-tau)*p.Gamma1)
	numer2 := n1*g1.Mean2 + 0.5*n3*(g3.Mean2-0.5*p.Gamma2) + tau*n4*(g4.Mean2-(1-tau)*p.Gamma2)
	sd := math.Sqrt(p.S / denom)

	return g.Normal(numer1/denom, sd), g.Normal(numer2/denom, sd)
}

// drawGamma mirrors drawMu with groups 2, 3 and 4, weighting group 4 by 1-tau.
func drawGamma(g *rng.Rand, stats model.SufficientStats, p model.Params) (float64, float64) {
	g2, g3, g4 := stats.Group(model.Group2), stats.Group(model.Group3), stats.Group(model.Group4)
	n2, n3, n4 := float64(g2.Count), float64(g3.Count), float64(g4.Count)
	w := 1 - p.Tau

	denom := n2 + 0.25*n3 + w*w*n4
	numer1 := n2*g2.Mean1 + 0.5*n3*(g3.Mean1-0.5*p.Mu1) + w*n4*(g4.Mean1-p.Tau*p.Mu1)
	numer2 := n2*g2.Mean2 + 0.5*n3*(g3.Mean2-0.5*p.Mu2) + w*n4*(g4.Mean2-p.Tau*p.Mu2)
	sd := math.Sqrt(p.S / denom)

	return g.Normal(numer1/denom, sd), g.Normal(numer2/denom, sd)
}
