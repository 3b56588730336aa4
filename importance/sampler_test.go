package importance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mixmc/errs"
	"github.com/arloliu/mixmc/internal/rng"
	"github.com/arloliu/mixmc/model"
)

var truth = model.Params{S: 0.05, Tau: 0.5, Mu1: -1.5, Mu2: -0.5, Gamma1: -0.3, Gamma2: 0.3}

// generated places three rows per group around the means implied by truth.
func generated(t *testing.T) *model.Dataset {
	t.Helper()
	offsets := [][2]float64{{0.5, -0.4}, {-0.5, 0.1}, {0, 0.3}}

	var obs []model.Observation
	for _, g := range model.Groups {
		m1, m2 := model.GroupMeans(g, truth)
		for _, o := range offsets {
			obs = append(obs, model.Observation{Group: g, X1: m1 + o[0], X2: m2 + o[1]})
		}
	}
	d, err := model.NewDataset(obs)
	require.NoError(t, err)

	return d
}

func TestRun_Convergence(t *testing.T) {
	if testing.Short() {
		t.Skip("100000 draws")
	}

	s, err := New()
	require.NoError(t, err)

	est, err := s.Run(generated(t), 100000, 42)
	require.NoError(t, err)
	require.Equal(t, 100000, est.Draws)
	require.Positive(t, est.Weighted)

	p := est.Params
	require.InDelta(t, truth.Mu1, p.Mu1, 0.6)
	require.InDelta(t, truth.Mu2, p.Mu2, 0.6)
	require.InDelta(t, truth.Gamma1, p.Gamma1, 0.6)
	require.InDelta(t, truth.Gamma2, p.Gamma2, 0.6)
	require.InDelta(t, truth.Tau, p.Tau, 0.4)
	require.Greater(t, p.S, 0.01)
	require.Less(t, p.S, 0.25)
}

func TestRun_SmallRunIsFinite(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	est, err := s.Run(generated(t), 100, 1)
	require.NoError(t, err)
	for _, v := range est.Params.Vector() {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
	require.Greater(t, est.Params.S, 0.0)
	require.Greater(t, est.Params.Tau, 0.0)
	require.Less(t, est.Params.Tau, 1.0)
}

func TestRun_Deterministic(t *testing.T) {
	s, err := New()
	require.NoError(t, err)
	d := generated(t)

	a, err := s.Run(d, 2000, 17)
	require.NoError(t, err)
	b, err := s.Run(d, 2000, 17)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Equal(t, uint64(17), a.Seed)
}

func TestRun_Errors(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	_, err = s.Run(nil, 10, 1)
	require.ErrorIs(t, err, errs.ErrEmptyDataset)
	_, err = s.Run(generated(t), 0, 1)
	require.ErrorIs(t, err, errs.ErrInvalidCount)
}

func TestTrial_LogDensity(t *testing.T) {
	tr := DefaultTrial()
	p := model.Params{S: 0.1, Tau: 0.3, Mu1: -1, Mu2: 0, Gamma1: 0.2, Gamma2: 0.5}

	v := tr.MeanSD * tr.MeanSD
	want := tr.SRate * math.Exp(-tr.SRate*p.S) *
		model.Pnorm(p.Mu1, tr.Mu1, v) * model.Pnorm(p.Mu2, tr.Mu2, v) *
		model.Pnorm(p.Gamma1, tr.Gamma1, v) * model.Pnorm(p.Gamma2, tr.Gamma2, v)
	require.InDelta(t, math.Log(want), tr.logDensity(p), 1e-12)
}

func TestTrial_DrawOrder(t *testing.T) {
	tr := DefaultTrial()
	p := tr.draw(rng.New(5))

	g := rng.New(5)
	require.InDelta(t, g.Uniform(0, 1), p.Tau, 0)
	require.InDelta(t, g.Exponential(tr.SRate), p.S, 0)
	require.InDelta(t, g.Normal(tr.Mu1, tr.MeanSD), p.Mu1, 0)
	require.InDelta(t, g.Normal(tr.Mu2, tr.MeanSD), p.Mu2, 0)
	require.InDelta(t, g.Normal(tr.Gamma1, tr.MeanSD), p.Gamma1, 0)
	require.InDelta(t, g.Normal(tr.Gamma2, tr.MeanSD), p.Gamma2, 0)
}

func TestWeightedMean(t *testing.T) {
	draws := [][model.NumParams]float64{
		{1, 0.1, 0, 0, 0, 0},
		{3, 0.5, 2, 0, 0, 0},
		{5, 0.9, 4, 0, 0, 0},
	}

	t.Run("log-space weights", func(t *testing.T) {
		// Weights 1:1:2, shifted far below exp's range.
		logW := []float64{-2000, -2000, -2000 + math.Ln2}
		est, err := weightedMean(draws, logW)
		require.NoError(t, err)
		require.InDelta(t, (1+3+10)/4.0, est.Params.S, 1e-12)
		require.InDelta(t, (0+2+8)/4.0, est.Params.Mu1, 1e-12)
		require.Equal(t, 3, est.Weighted)
	})

	t.Run("skips undefined weights", func(t *testing.T) {
		logW := []float64{math.NaN(), 0, math.Inf(-1)}
		est, err := weightedMean(draws, logW)
		require.NoError(t, err)
		require.InDelta(t, 3.0, est.Params.S, 1e-12)
		require.Equal(t, 1, est.Weighted)
	})

	t.Run("degenerate", func(t *testing.T) {
		_, err := weightedMean(draws, []float64{math.Inf(-1), math.NaN(), math.Inf(-1)})
		require.ErrorIs(t, err, errs.ErrDegenerateWeights)
	})
}

func TestOptions(t *testing.T) {
	require.Equal(t, DefaultTrial(), DefaultConfig().Trial)

	bad := DefaultTrial()
	bad.SRate = 0
	_, err := New(WithTrial(bad))
	require.ErrorIs(t, err, errs.ErrInvalidScale)

	bad = DefaultTrial()
	bad.MeanSD = -1
	_, err = New(WithTrial(bad))
	require.ErrorIs(t, err, errs.ErrInvalidScale)

	bad = DefaultTrial()
	bad.Gamma2 = math.Inf(1)
	_, err = New(WithTrial(bad))
	require.ErrorIs(t, err, errs.ErrInvalidParams)

	tr := DefaultTrial()
	tr.Mu1 = 0
	s, err := New(WithTrial(tr))
	require.NoError(t, err)
	require.Equal(t, tr, s.Config().Trial)
}
