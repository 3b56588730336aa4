package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/mixmc"
	"github.com/arloliu/mixmc/chain"
	"github.com/arloliu/mixmc/csvio"
	"github.com/arloliu/mixmc/gibbs"
	"github.com/arloliu/mixmc/hmc"
	"github.com/arloliu/mixmc/importance"
	"github.com/arloliu/mixmc/mh"
	"github.com/arloliu/mixmc/model"
)

type engine struct {
	name       string
	short      string
	newSampler func(a *app) (mixmc.ChainSampler, error)
}

var (
	engineMH = engine{
		name:  mh.EngineName,
		short: "Blockwise random-walk Metropolis-Hastings",
		newSampler: func(a *app) (mixmc.ChainSampler, error) {
			return mixmc.NewMHSampler(a.cfg.MHOptions(a.logger)...)
		},
	}
	engineGibbs = engine{
		name:  gibbs.EngineName,
		short: "Gibbs sampler over the full conditionals",
		newSampler: func(a *app) (mixmc.ChainSampler, error) {
			return mixmc.NewGibbsSampler(a.cfg.GibbsOptions(a.logger)...)
		},
	}
	engineHMC = engine{
		name:  hmc.EngineName,
		short: "Hamiltonian Monte Carlo with leapfrog integration",
		newSampler: func(a *app) (mixmc.ChainSampler, error) {
			return mixmc.NewHMCSampler(a.cfg.HMCOptions(a.logger)...)
		},
	}
)

func (a *app) chainCmd(e engine) *cobra.Command {
	return &cobra.Command{
		Use:   e.name,
		Short: e.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.loadDataset()
			if err != nil {
				return err
			}

			return a.runChain(e, d)
		},
	}
}

func (a *app) importanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   importance.EngineName,
		Short: "Self-normalized importance estimate of the posterior mean",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.loadDataset()
			if err != nil {
				return err
			}

			return a.runImportance(d)
		},
	}
}

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run all four engines on the same dataset, one after another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.loadDataset()
			if err != nil {
				return err
			}

			for _, e := range []engine{engineMH, engineGibbs, engineHMC} {
				if err := a.runChain(e, d); err != nil {
					return fmt.Errorf("%s: %w", e.name, err)
				}
				fmt.Fprintln(a.stdout)
			}

			return a.runImportance(d)
		},
	}
}

func (a *app) loadDataset() (*model.Dataset, error) {
	if err := a.requireData(); err != nil {
		return nil, err
	}

	d, err := mixmc.LoadDataset(a.cfg.Data)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("dataset loaded", "path", a.cfg.Data, "rows", d.Len())

	return d, nil
}

func (a *app) runChain(e engine, d *model.Dataset) error {
	s, err := e.newSampler(a)
	if err != nil {
		return err
	}
	c, sum, err := mixmc.Sample(s, d, a.cfg.Burnin, a.cfg.Samples, a.cfg.Seed)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%s: %d samples, seed %d\n", e.name, c.Len(), c.Seed())
	if sum != nil {
		fmt.Fprintln(a.stdout, sum)
	}
	fmt.Fprintln(a.stdout, formatAcceptance(c))

	return a.writeChain(c)
}

func (a *app) runImportance(d *model.Dataset) error {
	s, err := mixmc.NewImportanceSampler(a.cfg.ImportanceOptions(a.logger)...)
	if err != nil {
		return err
	}
	est, err := s.Run(d, a.cfg.Importance.Iterations, a.cfg.Seed)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%s: %d draws (%d weighted), seed %d\n",
		importance.EngineName, est.Draws, est.Weighted, est.Seed)
	fmt.Fprintln(a.stdout, est)

	return nil
}

func (a *app) writeChain(c *chain.Chain) error {
	if a.cfg.OutDir == "" {
		return nil
	}

	ct, err := a.cfg.CompressionType()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.cfg.OutDir, 0o755); err != nil {
		return err
	}

	path := csvio.ChainFileName(filepath.Join(a.cfg.OutDir, c.Engine()), ct)
	stats, err := csvio.WriteChainFile(path, c)
	if err != nil {
		return err
	}
	a.logger.Info("chain written",
		"path", path,
		"compression", stats.Algorithm.String(),
		"bytes", stats.CompressedSize,
		"ratio", stats.CompressionRatio(),
	)

	return nil
}

func formatAcceptance(c *chain.Chain) string {
	var sb strings.Builder
	sb.WriteString("acceptance:")
	for _, block := range c.Blocks() {
		acc, _ := c.Acceptance(block)
		fmt.Fprintf(&sb, " %s=%.3f", block, acc.Rate())
	}

	return sb.String()
}
