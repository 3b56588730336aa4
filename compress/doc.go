// Package compress provides the codecs used for chain files.
//
// A chain serialized to CSV is highly repetitive text (six float columns with
// a shared header), so general-purpose compression shrinks long runs
// considerably. The codec is selected by format.CompressionType:
//
//   - None: plain CSV, readable by any tool
//   - Zstd: best ratio, the choice for archived runs
//   - S2: fast with a good ratio
//   - LZ4: block format, fastest to read back
//
// All codecs implement Codec:
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "chain")
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(csvBytes)
//
// Zstd uses github.com/klauspost/compress by default. Building with the cgo
// and gozstd tags switches it to github.com/valyala/gozstd.
//
// All codecs are safe for concurrent use; encoder and decoder state is pooled.
package compress
