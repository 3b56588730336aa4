package importance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/mixmc/errs"
	"github.com/arloliu/mixmc/internal/options"
	"github.com/arloliu/mixmc/internal/rng"
	"github.com/arloliu/mixmc/model"
)

// EngineName identifies estimates produced by this package.
const EngineName = "importance"

// Estimate is the self-normalized weighted posterior mean.
type Estimate struct {
	// Params holds sum(w*theta)/sum(w) per parameter.
	Params model.Params
	// Draws is the number of trial draws.
	Draws int
	// Weighted is the number of draws with a positive finite weight.
	Weighted int
	// Seed is the seed of the run.
	Seed uint64
}

// String formats the estimate one parameter per line.
func (e *Estimate) String() string {
	return e.Params.String()
}

// Sampler draws independent proposals from a fixed trial distribution and
// weights them by likelihood over trial density. It is immutable after New.
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

// Run draws iterations trial states and returns their weighted mean.
//
// Weights are formed in log space and rescaled by the largest one before
// summation; the rescaling cancels in the ratio.
func (s *Sampler) Run(d *model.Dataset, iterations int, seed uint64) (*Estimate, error) {
	if d == nil || d.Len() == 0 {
		return nil, errs.ErrEmptyDataset
	}
	if iterations < 1 {
		return nil, fmt.Errorf("%w: iterations=%d", errs.ErrInvalidCount, iterations)
	}

	logger := s.cfg.Logger.With("engine", EngineName, "seed", seed)
	logger.Debug("starting run", "iterations", iterations, "rows", d.Len())

	g := rng.New(seed)
	trial := s.cfg.Trial
	draws := make([][model.NumParams]float64, iterations)
	logW := make([]float64, iterations)
	for i := range iterations {
		p := trial.draw(g)
		draws[i] = p.Vector()
		logW[i] = model.LogLikelihood(d, p) - trial.logDensity(p)
	}

	est, err := weightedMean(draws, logW)
	if err != nil {
		return nil, err
	}
	est.Seed = seed

	logger.Info("run finished", "draws", est.Draws, "weighted", est.Weighted)

	return est, nil
}

// draw samples one state. The draw order is tau, s, mu1, mu2, gamma1, gamma2.
func (t Trial) draw(g *rng.Rand) model.Params {
	tau := g.Uniform(0, 1)
	s := g.Exponential(t.SRate)
	mu1 := g.Normal(t.Mu1, t.MeanSD)
	mu2 := g.Normal(t.Mu2, t.MeanSD)
	gamma1 := g.Normal(t.Gamma1, t.MeanSD)
	gamma2 := g.Normal(t.Gamma2, t.MeanSD)

	return model.Params{S: s, Tau: tau, Mu1: mu1, Mu2: mu2, Gamma1: gamma1, Gamma2: gamma2}
}

// logDensity is the log trial density of p, up to the constant shared by all
// draws. The uniform tau density contributes a factor of 1. The mean terms use
// model.LogPnorm with variance MeanSD^2, the exponential term rate*exp(-rate*s).
func (t Trial) logDensity(p model.Params) float64 {
	v := t.MeanSD * t.MeanSD

	return math.Log(t.SRate) - t.SRate*p.S +
		model.LogPnorm(p.Mu1, t.Mu1, v) +
		model.LogPnorm(p.Mu2, t.Mu2, v) +
		model.LogPnorm(p.Gamma1, t.Gamma1, v) +
		model.LogPnorm(p.Gamma2, t.Gamma2, v)
}

func weightedMean(draws [][model.NumParams]float64, logW []float64) (*Estimate, error) {
	finite := make([]float64, 0, len(logW))
	for _, lw := range logW {
		if !math.IsNaN(lw) && !math.IsInf(lw, 0) {
			finite = append(finite, lw)
		}
	}
	if len(finite) == 0 {
		return nil, errs.ErrDegenerateWeights
	}
	maxLW := floats.Max(finite)

	var wsum float64
	var acc [model.NumParams]float64
	weighted := 0
	for i, lw := range logW {
		if math.IsNaN(lw) || math.IsInf(lw, 0) {
			continue
		}
		w := math.Exp(lw - maxLW)
		if w == 0 {
			continue
		}
		weighted++
		wsum += w
		for j, v := range draws[i] {
			acc[j] += w * v
		}
	}

	for j := range acc {
		acc[j] /= wsum
	}

	return &Estimate{
		Params:   model.ParamsFromVector(acc),
		Draws:    len(draws),
		Weighted: weighted,
	}, nil
}
