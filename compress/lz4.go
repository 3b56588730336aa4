package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// maxLZ4Size bounds the decompressed size accepted from a chain file header.
const maxLZ4Size = 1 << 30

var errLZ4Header = errors.New("lz4: truncated size header")

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses with the LZ4 block format.
//
// The block format does not record the decompressed length, so the payload is
// prefixed with it as a little-endian uint32. A chain file can then be
// decoded into a buffer of the exact size in one pass.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress returns the size header followed by the compressed block, or nil
// for empty input.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > maxLZ4Size {
		return nil, fmt.Errorf("lz4: input of %d bytes exceeds %d", len(data), maxLZ4Size)
	}

	dst := make([]byte, 4+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(dst, uint32(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[4:])
	if err != nil {
		return nil, err
	}

	return dst[:4+n], nil
}

// Decompress reverses Compress.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < 4 {
		return nil, errLZ4Header
	}

	size := binary.LittleEndian.Uint32(data)
	if size > maxLZ4Size {
		return nil, fmt.Errorf("lz4: declared size %d exceeds %d", size, maxLZ4Size)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data[4:], buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != int(size) {
		return nil, fmt.Errorf("lz4: decoded %d bytes, header declares %d", n, size)
	}

	return buf, nil
}
