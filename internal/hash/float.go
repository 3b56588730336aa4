// Package hash fingerprints float sequences with xxHash64.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Float64s computes the xxHash64 of the little-endian IEEE-754 bit patterns of vals.
func Float64s(vals ...float64) uint64 {
	h := NewHasher()
	for _, v := range vals {
		h.AddFloat64(v)
	}

	return h.Sum64()
}

// Hasher accumulates float64 values into a streaming xxHash64 digest.
//
// Two sequences hash equal only if they are bit-for-bit identical, so
// -0 and +0 differ and NaN payloads are preserved.
type Hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewHasher creates an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{d: xxhash.New()}
}

// AddFloat64 appends v to the digest.
func (h *Hasher) AddFloat64(v float64) {
	binary.LittleEndian.PutUint64(h.buf[:], math.Float64bits(v))
	_, _ = h.d.Write(h.buf[:])
}

// Sum64 returns the current digest.
func (h *Hasher) Sum64() uint64 {
	return h.d.Sum64()
}
