package mh

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mixmc/errs"
	"github.com/arloliu/mixmc/model"
)

func oneRowPerGroup(t *testing.T) *model.Dataset {
	t.Helper()
	d, err := model.NewDataset([]model.Observation{
		{Group: model.Group1, X1: 0, X2: 0},
		{Group: model.Group2, X1: 1, X2: 1},
		{Group: model.Group3, X1: 0.5, X2: 0.5},
		{Group: model.Group4, X1: 0.3, X2: 0.3},
	})
	require.NoError(t, err)

	return d
}

func TestRun_EndToEnd(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	c, err := s.Run(oneRowPerGroup(t), 100, 500, 42)
	require.NoError(t, err)
	require.Equal(t, 500, c.Len())
	require.Equal(t, EngineName, c.Engine())
	require.Equal(t, uint64(42), c.Seed())

	for i, p := range c.All() {
		for j, v := range p.Vector() {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "row %d %s=%v", i, model.ParamNames[j], v)
		}
		require.Greater(t, p.S, 0.0)
		require.LessOrEqual(t, p.S, 10.0)
		require.Greater(t, p.Tau, 0.0)
		require.Less(t, p.Tau, 1.0)
	}
}

func TestRun_Deterministic(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	d := oneRowPerGroup(t)

	a, err := s.Run(d, 50, 300, 7)
	require.NoError(t, err)
	b, err := s.Run(d, 50, 300, 7)
	require.NoError(t, err)
	require.Equal(t, a.Samples(), b.Samples())
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	other, err := s.Run(d, 50, 300, 8)
	require.NoError(t, err)
	require.NotEqual(t, a.Fingerprint(), other.Fingerprint())
}

func TestRun_Acceptance(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	const burnin, samples = 20, 200
	c, err := s.Run(oneRowPerGroup(t), burnin, samples, 1)
	require.NoError(t, err)
	require.Equal(t, []string{BlockS, BlockTau, BlockMu, BlockGamma}, c.Blocks())

	for _, block := range c.Blocks() {
		acc, ok := c.Acceptance(block)
		require.True(t, ok)
		require.Equal(t, burnin+samples, acc.Proposed, block)
		require.Positive(t, acc.Accepted, block)
		require.LessOrEqual(t, acc.Accepted, acc.Proposed, block)
	}
}

func TestRun_TightUpperBound(t *testing.T) {
	s, err := New(WithSUpperBound(1.05), WithSProposalSD(0.5))
	require.NoError(t, err)

	c, err := s.Run(oneRowPerGroup(t), 0, 400, 3)
	require.NoError(t, err)
	for _, p := range c.All() {
		require.LessOrEqual(t, p.S, 1.05)
		require.Greater(t, p.S, 0.0)
	}
}

func TestRun_ZeroSamples(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	c, err := s.Run(oneRowPerGroup(t), 10, 0, 1)
	require.NoError(t, err)
	require.Zero(t, c.Len())
}

func TestRun_Errors(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	_, err = s.Run(nil, 1, 1, 1)
	require.ErrorIs(t, err, errs.ErrEmptyDataset)

	_, err = s.Run(oneRowPerGroup(t), -1, 1, 1)
	require.ErrorIs(t, err, errs.ErrInvalidCount)

	_, err = s.Run(oneRowPerGroup(t), 1, -1, 1)
	require.ErrorIs(t, err, errs.ErrInvalidCount)
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	require.InDelta(t, 0.1, cfg.SProposalSD, 0)
	require.InDelta(t, 0.5, cfg.MeanProposalSD, 0)
	require.InDelta(t, 10.0, cfg.SUpperBound, 0)
	require.Equal(t, model.DefaultInitial(), cfg.Initial)

	for _, opt := range []Option{
		WithSProposalSD(0),
		WithSProposalSD(math.NaN()),
		WithMeanProposalSD(-1),
		WithSUpperBound(math.Inf(1)),
	} {
		_, err := New(opt)
		require.ErrorIs(t, err, errs.ErrInvalidScale)
	}

	_, err := New(WithInitial(model.Params{S: 1, Tau: 1}))
	require.ErrorIs(t, err, errs.ErrInvalidParams)

	start := model.Params{S: 0.5, Tau: 0.2, Mu1: 1}
	s, err := New(WithInitial(start), WithLogger(nil))
	require.NoError(t, err)
	require.Equal(t, start, s.Config().Initial)
	require.NotNil(t, s.Config().Logger)
}

func TestRun_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := New(WithLogger(logger))
	require.NoError(t, err)
	_, err = s.Run(oneRowPerGroup(t), 1, 5, 9)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "starting chain")
	require.Contains(t, out, "chain finished")
	require.Contains(t, out, "engine=mh")
	require.Contains(t, out, "seed=9")
}

func BenchmarkRun(b *testing.B) {
	d, err := model.NewDataset([]model.Observation{
		{Group: model.Group1, X1: 0, X2: 0},
		{Group: model.Group2, X1: 1, X2: 1},
		{Group: model.Group3, X1: 0.5, X2: 0.5},
		{Group: model.Group4, X1: 0.3, X2: 0.3},
	})
	require.NoError(b, err)
	s, err := New()
	require.NoError(b, err)

	for b.Loop() {
		_, _ = s.Run(d, 0, 1000, 1)
	}
}
