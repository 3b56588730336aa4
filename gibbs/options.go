package gibbs

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/mixmc/errs"
	"github.com/arloliu/mixmc/internal/options"
	"github.com/arloliu/mixmc/model"
)

// Config holds the settings of a Gibbs sampler.
type Config struct {
	// MaxTauAttempts bounds the rejection loop truncating the tau draw to (0, 1).
	MaxTauAttempts int
	// Initial is the starting state.
	Initial model.Params
	// Logger receives run-level progress records.
	Logger *slog.Logger
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		MaxTauAttempts: 10000,
		Initial:        model.DefaultInitial(),
		Logger:         slog.New(slog.DiscardHandler),
	}
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithMaxTauAttempts sets the attempt budget of the truncated tau draw.
func WithMaxTauAttempts(n int) Option {
	return options.New(func(cfg *Config) error {
		if n < 1 {
			return fmt.Errorf("max tau attempts: %w: %d", errs.ErrInvalidCount, n)
		}
		cfg.MaxTauAttempts = n

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
