// Package config loads the YAML run file of the mixmc command and translates
// it into sampler options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/mixmc/format"
	"github.com/arloliu/mixmc/gibbs"
	"github.com/arloliu/mixmc/hmc"
	"github.com/arloliu/mixmc/importance"
	"github.com/arloliu/mixmc/mh"
	"github.com/arloliu/mixmc/model"
)

// Config is the run configuration. Zero-valued sections are not allowed;
// start from Default and override.
type Config struct {
	// Data is the dataset CSV path.
	Data string `yaml:"data"`
	// OutDir receives one chain file per engine. Empty disables chain output.
	OutDir      string `yaml:"out_dir"`
	Compression string `yaml:"compression" validate:"oneof=none zstd s2 lz4"`
	LogLevel    string `yaml:"log_level" validate:"oneof=debug info warn error"`

	Seed    uint64 `yaml:"seed"`
	Burnin  int    `yaml:"burnin" validate:"gte=0"`
	Samples int    `yaml:"samples" validate:"gte=0"`

	// Initial is the starting state of the chain engines.
	Initial model.Params `yaml:"initial"`

	MH         MHConfig         `yaml:"mh"`
	Gibbs      GibbsConfig      `yaml:"gibbs"`
	HMC        HMCConfig        `yaml:"hmc"`
	Importance ImportanceConfig `yaml:"importance"`
}

type MHConfig struct {
	SProposalSD    float64 `yaml:"s_proposal_sd" validate:"gt=0"`
	MeanProposalSD float64 `yaml:"mean_proposal_sd" validate:"gt=0"`
	SUpperBound    float64 `yaml:"s_upper_bound" validate:"gt=0"`
}

type GibbsConfig struct {
	MaxTauAttempts int `yaml:"max_tau_attempts" validate:"gte=1"`
}

type HMCConfig struct {
	LeapfrogSteps int       `yaml:"leapfrog_steps" validate:"gte=1"`
	StepSize      float64   `yaml:"step_size" validate:"gt=0"`
	Mass          []float64 `yaml:"mass" validate:"len=6,dive,gt=0"`
}

type ImportanceConfig struct {
	Iterations int     `yaml:"iterations" validate:"gte=1"`
	SRate      float64 `yaml:"s_rate" validate:"gt=0"`
	Mu1        float64 `yaml:"mu1"`
	Mu2        float64 `yaml:"mu2"`
	Gamma1     float64 `yaml:"gamma1"`
	Gamma2     float64 `yaml:"gamma2"`
	MeanSD     float64 `yaml:"mean_sd" validate:"gt=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default mirrors the engine defaults: 1000 burn-in and 5000 recorded
// samples for the chain engines, 100000 importance draws, seed 1.
func Default() *Config {
	mhCfg := mh.DefaultConfig()
	gibbsCfg := gibbs.DefaultConfig()
	hmcCfg := hmc.DefaultConfig()
	trial := importance.DefaultTrial()

	return &Config{
		Compression: "none",
		LogLevel:    "info",
		Seed:        1,
		Burnin:      1000,
		Samples:     5000,
		Initial:     model.DefaultInitial(),
		MH: MHConfig{
			SProposalSD:    mhCfg.SProposalSD,
			MeanProposalSD: mhCfg.MeanProposalSD,
			SUpperBound:    mhCfg.SUpperBound,
		},
		Gibbs: GibbsConfig{MaxTauAttempts: gibbsCfg.MaxTauAttempts},
		HMC: HMCConfig{
			LeapfrogSteps: hmcCfg.LeapfrogSteps,
			StepSize:      hmcCfg.StepSize,
			Mass:          hmcCfg.Mass[:],
		},
		Importance: ImportanceConfig{
			Iterations: 100000,
			SRate:      trial.SRate,
			Mu1:        trial.Mu1,
			Mu2:        trial.Mu2,
			Gamma1:     trial.Gamma1,
			Gamma2:     trial.Gamma2,
			MeanSD:     trial.MeanSD,
		},
	}
}

// Parse decodes YAML over Default and validates the result. Unknown keys are
// rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// LoadOrDefault loads path, or returns Default when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

// Validate checks the struct tags and the starting state.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Initial.Validate(); err != nil {
		return fmt.Errorf("invalid config: initial: %w", err)
	}

	return nil
}

// CompressionType returns the parsed Compression field.
func (c *Config) CompressionType() (format.CompressionType, error) {
	return format.ParseCompression(c.Compression)
}

// SlogLevel returns the parsed LogLevel field.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return lvl
}

func (c *Config) MHOptions(logger *slog.Logger) []mh.Option {
	return []mh.Option{
		mh.WithSProposalSD(c.MH.SProposalSD),
		mh.WithMeanProposalSD(c.MH.MeanProposalSD),
		mh.WithSUpperBound(c.MH.SUpperBound),
		mh.WithInitial(c.Initial),
		mh.WithLogger(logger),
	}
}

func (c *Config) GibbsOptions(logger *slog.Logger) []gibbs.Option {
	return []gibbs.Option{
		gibbs.WithMaxTauAttempts(c.Gibbs.MaxTauAttempts),
		gibbs.WithInitial(c.Initial),
		gibbs.WithLogger(logger),
	}
}

// HMCOptions returns the HMC options. Mass must hold one entry per
// parameter, which Validate guarantees.
func (c *Config) HMCOptions(logger *slog.Logger) []hmc.Option {
	var mass [model.NumParams]float64
	copy(mass[:], c.HMC.Mass)

	return []hmc.Option{
		hmc.WithLeapfrogSteps(c.HMC.LeapfrogSteps),
		hmc.WithStepSize(c.HMC.StepSize),
		hmc.WithMass(mass),
		hmc.WithInitial(c.Initial),
		hmc.WithLogger(logger),
	}
}

func (c *Config) ImportanceOptions(logger *slog.Logger) []importance.Option {
	return []importance.Option{
		importance.WithTrial(importance.Trial{
			SRate:  c.Importance.SRate,
			Mu1:    c.Importance.Mu1,
			Mu2:    c.Importance.Mu2,
			Gamma1: c.Importance.Gamma1,
			Gamma2: c.Importance.Gamma2,
			MeanSD: c.Importance.MeanSD,
		}),
		importance.WithLogger(logger),
	}
}
