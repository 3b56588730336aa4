package hash

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat64s(t *testing.T) {
	t.Run("empty input matches empty digest", func(t *testing.T) {
		require.Equal(t, uint64(0xef46db3751d8e999), Float64s())
	})

	t.Run("equal sequences hash equal", func(t *testing.T) {
		require.Equal(t, Float64s(1, 2.5, -3), Float64s(1, 2.5, -3))
	})

	t.Run("order matters", func(t *testing.T) {
		require.NotEqual(t, Float64s(1, 2), Float64s(2, 1))
	})

	t.Run("signed zero is distinguished", func(t *testing.T) {
		require.NotEqual(t, Float64s(0), Float64s(math.Copysign(0, -1)))
	})
}

func TestHasher_StreamingMatchesBatch(t *testing.T) {
	h := NewHasher()
	for _, v := range []float64{0.1, 0.2, 0.3} {
		h.AddFloat64(v)
	}
	require.Equal(t, Float64s(0.1, 0.2, 0.3), h.Sum64())
}

func BenchmarkFloat64s(b *testing.B) {
	vals := make([]float64, 600)
	for i := range vals {
		vals[i] = float64(i) * 0.25
	}
	for b.Loop() {
		Float64s(vals...)
	}
}
