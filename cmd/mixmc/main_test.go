package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testDataset = `group,x1,x2
1,-1.0,-0.9
1,-2.0,-0.1
2,-0.8,0.4
2,0.2,0.2
3,-0.9,0.2
3,-0.9,-0.4
4,-1.2,0.1
4,-0.6,-0.3
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "groups.csv")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(envConfig, "")
	t.Setenv(envLogLevel, "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestChainCommands(t *testing.T) {
	data := writeDataset(t)

	for _, name := range []string{"mh", "gibbs", "hmc"} {
		t.Run(name, func(t *testing.T) {
			out, _, err := execute(t, name, "--data", data, "--seed", "42", "--burnin", "100", "--samples", "500")
			require.NoError(t, err)
			require.Contains(t, out, name+": 500 samples, seed 42")
			require.Contains(t, out, "\ns: ")
			require.Contains(t, out, "\ngamma2: ")
			require.Contains(t, out, "acceptance:")
		})
	}
}

func TestChainCommand_Deterministic(t *testing.T) {
	data := writeDataset(t)

	first, _, err := execute(t, "mh", "--data", data, "--seed", "7", "--samples", "200")
	require.NoError(t, err)
	second, _, err := execute(t, "mh", "--data", data, "--seed", "7", "--samples", "200")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestImportanceCommand(t *testing.T) {
	data := writeDataset(t)

	out, _, err := execute(t, "importance", "--data", data, "--iterations", "500", "--seed", "3")
	require.NoError(t, err)
	require.Contains(t, out, "importance: 500 draws")
	require.Contains(t, out, "tau: ")
}

func TestRunAndSummarize(t *testing.T) {
	data := writeDataset(t)
	outDir := filepath.Join(t.TempDir(), "chains")

	out, logs, err := execute(t, "run",
		"--data", data, "--out", outDir, "--compression", "s2",
		"--burnin", "50", "--samples", "300", "--iterations", "300",
		"--log-level", "debug")
	require.NoError(t, err)
	for _, prefix := range []string{"mh:", "gibbs:", "hmc:", "importance:"} {
		require.Contains(t, out, prefix)
	}
	require.Contains(t, logs, "run_id=")
	require.Contains(t, logs, "chain written")

	files := []string{
		filepath.Join(outDir, "mh.csv.s2"),
		filepath.Join(outDir, "gibbs.csv.s2"),
		filepath.Join(outDir, "hmc.csv.s2"),
	}
	for _, f := range files {
		require.FileExists(t, f)
	}

	out, _, err = execute(t, append([]string{"summarize"}, files...)...)
	require.NoError(t, err)
	require.Equal(t, 3, strings.Count(out, "300 samples"))
	require.Contains(t, out, "(gibbs, seed 1,")
}

func TestConfigFile(t *testing.T) {
	data := writeDataset(t)
	cfgPath := filepath.Join(t.TempDir(), "run.yaml")
	yaml := "data: " + data + "\nseed: 11\nburnin: 10\nsamples: 40\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o600))

	out, _, err := execute(t, "gibbs", "--config", cfgPath)
	require.NoError(t, err)
	require.Contains(t, out, "gibbs: 40 samples, seed 11")

	out, _, err = execute(t, "gibbs", "--config", cfgPath, "--samples", "20")
	require.NoError(t, err)
	require.Contains(t, out, "gibbs: 20 samples, seed 11", "flags override the run file")
}

func TestCommandErrors(t *testing.T) {
	data := writeDataset(t)

	_, _, err := execute(t, "mh")
	require.ErrorContains(t, err, "no dataset")

	_, _, err = execute(t, "mh", "--data", data, "--burnin", "-1")
	require.ErrorContains(t, err, "invalid config")

	_, _, err = execute(t, "mh", "--data", data, "--compression", "gzip")
	require.ErrorContains(t, err, "invalid config")

	_, _, err = execute(t, "summarize")
	require.Error(t, err)

	_, _, err = execute(t, "summarize", filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
