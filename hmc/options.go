package hmc

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/mixmc/errs"
	"github.com/arloliu/mixmc/internal/options"
	"github.com/arloliu/mixmc/model"
)

// Config holds the tuning of an HMC sampler.
type Config struct {
	// LeapfrogSteps is the number of leapfrog steps per proposal (L).
	LeapfrogSteps int
	// StepSize is the leapfrog step size (dt).
	StepSize float64
	// Mass is the diagonal of the mass matrix, in model.ParamNames order.
	Mass [model.NumParams]float64
	// Initial is the starting position.
	Initial model.Params
	// Logger receives run-level progress records.
	Logger *slog.Logger
}

// DefaultConfig returns L = 5, dt = 0.001, unit masses and the default
// starting state.
func DefaultConfig() Config {
	return Config{
		LeapfrogSteps: 5,
		StepSize:      0.001,
		Mass:          [model.NumParams]float64{1, 1, 1, 1, 1, 1},
		Initial:       model.DefaultInitial(),
		Logger:        slog.New(slog.DiscardHandler),
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithLeapfrogSteps sets the number of leapfrog steps per proposal.
func WithLeapfrogSteps(n int) Option {
	return options.New(func(cfg *Config) error {
		if n < 1 {
			return fmt.Errorf("leapfrog steps: %w: %d", errs.ErrInvalidCount, n)
		}
		cfg.LeapfrogSteps = n

		return nil
	})
}

// WithStepSize sets the leapfrog step size.
func WithStepSize(dt float64) Option {
	return options.New(func(cfg *Config) error {
		if !(dt > 0) || math.IsInf(dt, 1) {
			return fmt.Errorf("step size: %w, got %v", errs.ErrInvalidScale, dt)
		}
		cfg.StepSize = dt

		return nil
	})
}

// WithMass sets the diagonal mass matrix.
func WithMass(mass [model.NumParams]float64) Option {
	return options.New(func(cfg *Config) error {
		for i, m := range mass {
			if !(m > 0) || math.IsInf(m, 1) {
				return fmt.Errorf("mass of %s: %w, got %v", model.ParamNames[i], errs.ErrInvalidScale, m)
			}
		}
		cfg.Mass = mass

		return nil
	})
}

// WithInitial sets the starting position. Only s > 0 is required; tau is
// unconstrained for HMC.
func WithInitial(p model.Params) Option {
	return options.New(func(cfg *Config) error {
		for i, v := range p.Vector() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("initial state: %w: %s is %v", errs.ErrInvalidParams, model.ParamNames[i], v)
			}
		}
		if p.S <= 0 {
			return fmt.Errorf("initial state: %w: s must be positive, got %v", errs.ErrInvalidParams, p.S)
		}
		cfg.Initial = p

		return nil
	})
}

// WithLogger sets the logger. A nil logger keeps the current one.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	})
}
