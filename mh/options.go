package mh

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/mixmc/errs"
	"github.com/arloliu/mixmc/internal/options"
	"github.com/arloliu/mixmc/model"
)

// Config holds the tuning of a Metropolis-Hastings sampler.
type Config struct {
	// SProposalSD is the standard deviation of the random-walk proposal for s.
	SProposalSD float64
	// MeanProposalSD is the standard deviation of the proposals for mu and gamma.
	MeanProposalSD float64
	// SUpperBound rejects s proposals above this value without evaluation.
	SUpperBound float64
	// Initial is the starting state.
	Initial model.Params
	// Logger receives run-level progress records.
	Logger *slog.Logger
}

// DefaultConfig returns the default tuning: s proposal SD 0.1, mean proposal
// SD 0.5, s bounded by 10, starting from model.DefaultInitial.
func DefaultConfig() Config {
	return Config{
		SProposalSD:    0.1,
		MeanProposalSD: 0.5,
		SUpperBound:    10,
		Initial:        model.DefaultInitial(),
		Logger:         slog.New(slog.DiscardHandler),
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithSProposalSD sets the standard deviation of the s proposal.
func WithSProposalSD(sd float64) Option {
	return options.New(func(cfg *Config) error {
		if err := checkScale("s proposal sd", sd); err != nil {
			return err
		}
		cfg.SProposalSD = sd

		return nil
	})
}

// WithMeanProposalSD sets the standard deviation of the mu and gamma proposals.
func WithMeanProposalSD(sd float64) Option {
	return options.New(func(cfg *Config) error {
		if err := checkScale("mean proposal sd", sd); err != nil {
			return err
		}
		cfg.MeanProposalSD = sd

		return nil
	})
}

// WithSUpperBound sets the largest admissible s proposal.
func WithSUpperBound(bound float64) Option {
	return options.New(func(cfg *Config) error {
		if err := checkScale("s upper bound", bound); err != nil {
			return err
		}
		cfg.SUpperBound = bound

		return nil
	})
}

// WithInitial sets the starting state. It must satisfy model.Params.Validate.
func WithInitial(p model.Params) Option {
	return options.New(func(cfg *Config) error {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("initial state: %w", err)
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

func checkScale(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return fmt.Errorf("%s: %w, got %v", name, errs.ErrInvalidScale, v)
	}

	return nil
}
