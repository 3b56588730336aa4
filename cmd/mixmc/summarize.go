package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/mixmc/chain"
	"github.com/arloliu/mixmc/csvio"
)

func (a *app) summarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <chain-file>...",
		Short: "Print posterior means and 5th/95th percentiles of saved chains",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, path := range args {
				c, err := csvio.ReadChainFile(path)
				if err != nil {
					return err
				}
				sum, err := chain.Summarize(c)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				if i > 0 {
					fmt.Fprintln(a.stdout)
				}
				fmt.Fprintf(a.stdout, "%s (%s, seed %d, %d samples, fingerprint %016x)\n",
					path, c.Engine(), c.Seed(), c.Len(), c.Fingerprint())
				fmt.Fprintln(a.stdout, sum)
			}

			return nil
		},
	}
}
