package importance

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/mixmc/errs"
	"github.com/arloliu/mixmc/internal/options"
)

// Trial describes the fixed proposal distribution:
//
//	tau ~ Uniform(0, 1)
//	s   ~ Exponential(SRate)
//	mu1 ~ Normal(Mu1, MeanSD), mu2 ~ Normal(Mu2, MeanSD)
//	gamma1 ~ Normal(Gamma1, MeanSD), gamma2 ~ Normal(Gamma2, MeanSD)
type Trial struct {
	SRate  float64
	Mu1    float64
	Mu2    float64
	Gamma1 float64
	Gamma2 float64
	MeanSD float64
}

// DefaultTrial returns the standard trial distribution.
func DefaultTrial() Trial {
	return Trial{
		SRate:  12,
		Mu1:    -1.5,
		Mu2:    -0.5,
		Gamma1: -0.3,
		Gamma2: 0.3,
		MeanSD: 1.5,
	}
}

func (t Trial) validate() error {
	if !(t.SRate > 0) || math.IsInf(t.SRate, 1) {
		return fmt.Errorf("trial s rate: %w, got %v", errs.ErrInvalidScale, t.SRate)
	}
	if !(t.MeanSD > 0) || math.IsInf(t.MeanSD, 1) {
		return fmt.Errorf("trial mean sd: %w, got %v", errs.ErrInvalidScale, t.MeanSD)
	}
	for _, v := range []float64{t.Mu1, t.Mu2, t.Gamma1, t.Gamma2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("trial location: %w, got %v", errs.ErrInvalidParams, v)
		}
	}

	return nil
}

// Config holds the settings of an importance sampler.
type Config struct {
	Trial  Trial
	Logger *slog.Logger
}

// DefaultConfig returns DefaultTrial and a discarding logger.
func DefaultConfig() Config {
	return Config{
		Trial:  DefaultTrial(),
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithTrial replaces the trial distribution.
func WithTrial(t Trial) Option {
	return options.New(func(cfg *Config) error {
		if err := t.validate(); err != nil {
			return err
		}
		cfg.Trial = t

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
