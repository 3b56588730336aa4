// Command mixmc samples the posterior of the four-group bivariate Gaussian
// model with Metropolis-Hastings, Gibbs, HMC or importance sampling.
//
//	mixmc mh --data groups.csv --seed 42 --burnin 100 --samples 500
//	mixmc run --config run.yaml --out chains --compression zstd
//	mixmc summarize chains/gibbs.csv.zst
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
