package csvio

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mixmc/chain"
	"github.com/arloliu/mixmc/errs"
	"github.com/arloliu/mixmc/format"
	"github.com/arloliu/mixmc/model"
)

func sampleChain(n int) *chain.Chain {
	samples := make([]model.Params, n)
	for i := range samples {
		f := float64(i)
		samples[i] = model.Params{
			S:      0.1 + f/3,
			Tau:    1 / (f + 2),
			Mu1:    -1.5 + f*1e-7,
			Mu2:    -0.5,
			Gamma1: math.Pi * f,
			Gamma2: -f / 7,
		}
	}

	return chain.New("mh", 42, samples)
}

func TestWriteChain(t *testing.T) {
	c := chain.New("gibbs", 7, []model.Params{{S: 1, Tau: 0.5, Mu1: 0.25, Mu2: -2, Gamma1: 3, Gamma2: 1e-9}})

	var buf bytes.Buffer
	require.NoError(t, WriteChain(&buf, c))
	require.Equal(t,
		"# engine=gibbs seed=7\ns,tau,mu1,mu2,gamma1,gamma2\n1,0.5,0.25,-2,3,1e-09\n",
		buf.String())
}

func TestChain_RoundTrip(t *testing.T) {
	c := sampleChain(250)

	var buf bytes.Buffer
	require.NoError(t, WriteChain(&buf, c))

	got, err := ReadChain(&buf)
	require.NoError(t, err)
	require.Equal(t, "mh", got.Engine())
	require.Equal(t, uint64(42), got.Seed())
	require.Equal(t, c.Samples(), got.Samples())
	require.Equal(t, c.Fingerprint(), got.Fingerprint())
}

func TestReadChain_WithoutMetadata(t *testing.T) {
	got, err := ReadChain(strings.NewReader("s,tau,mu1,mu2,gamma1,gamma2\n1,0.5,0,0,0,0\n"))
	require.NoError(t, err)
	require.Equal(t, "", got.Engine())
	require.Equal(t, 1, got.Len())
	require.Equal(t, model.DefaultInitial(), got.At(0))
}

func TestReadChain_Errors(t *testing.T) {
	_, err := ReadChain(strings.NewReader(""))
	require.ErrorIs(t, err, errs.ErrInvalidHeader)

	_, err = ReadChain(strings.NewReader("a,b,c,d,e,f\n"))
	require.ErrorIs(t, err, errs.ErrInvalidHeader)

	_, err = ReadChain(strings.NewReader("s,tau,mu1,mu2,gamma1,gamma2\n1,0.5,x,0,0,0\n"))
	require.ErrorContains(t, err, "line 2: mu1")

	_, err = ReadChain(strings.NewReader("# engine=mh seed=-1\ns,tau,mu1,mu2,gamma1,gamma2\n"))
	require.ErrorContains(t, err, "seed")
}

func TestChainFile_Codecs(t *testing.T) {
	c := sampleChain(2000)

	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			path := ChainFileName(filepath.Join(t.TempDir(), "chain"), ct)

			stats, err := WriteChainFile(path, c)
			require.NoError(t, err)
			require.Equal(t, ct, stats.Algorithm)
			require.Positive(t, stats.OriginalSize)
			if ct == format.CompressionNone {
				require.Equal(t, stats.OriginalSize, stats.CompressedSize)
			} else {
				require.Less(t, stats.CompressedSize, stats.OriginalSize)
			}

			got, err := ReadChainFile(path)
			require.NoError(t, err)
			require.Equal(t, c.Samples(), got.Samples())
			require.Equal(t, "mh", got.Engine())
		})
	}
}

func TestChainFileName(t *testing.T) {
	require.Equal(t, "out/mh.csv", ChainFileName("out/mh", format.CompressionNone))
	require.Equal(t, "out/mh.csv.zst", ChainFileName("out/mh", format.CompressionZstd))
	require.Equal(t, "hmc.csv.lz4", ChainFileName("hmc", format.CompressionLZ4))
}
