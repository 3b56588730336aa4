package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPotential(t *testing.T) {
	d, err := NewDataset([]Observation{{Group: Group1, X1: 1, X2: 0}})
	require.NoError(t, err)

	q := [NumParams]float64{2, 0.5, 0, 0, 0, 0}
	want := math.Log(2*math.Pi) + 2*math.Log(2) + 1.0/4
	require.InDelta(t, want, Potential(d, q), 1e-12)

	for _, s := range []float64{0, -0.1, math.NaN()} {
		q[IdxS] = s
		require.True(t, math.IsInf(Potential(d, q), 1), "s=%v", s)
	}
}

func TestGradient_FiniteDifferences(t *testing.T) {
	d, err := NewDataset([]Observation{
		{Group: Group1, X1: -1.0, X2: -0.9},
		{Group: Group1, X1: -2.0, X2: -0.1},
		{Group: Group2, X1: -0.8, X2: 0.4},
		{Group: Group3, X1: -0.9, X2: 0.2},
		{Group: Group3, X1: -0.3, X2: -0.7},
		{Group: Group4, X1: -1.2, X2: 0.1},
		{Group: Group4, X1: -0.6, X2: -0.3},
	})
	require.NoError(t, err)

	points := [][NumParams]float64{
		{1, 0.5, 0, 0, 0, 0},
		{0.3, 0.2, -1.4, -0.6, -0.2, 0.4},
		{2.5, 0.9, 1, -1, 0.5, 2},
	}

	const h = 1e-6
	for _, q := range points {
		grad := Gradient(d, q)
		for i := range q {
			up, down := q, q
			up[i] += h
			down[i] -= h
			fd := (Potential(d, up) - Potential(d, down)) / (2 * h)
			require.InDelta(t, fd, grad[i], 1e-5*math.Max(1, math.Abs(fd)), "q=%v d/d%s", q, ParamNames[i])
		}
	}
}
