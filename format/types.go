// Package format defines the storage options for chain files.
package format

import (
	"fmt"
	"strings"
)

type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

// compressionExt maps each compression to the suffix appended to ".csv".
var compressionExt = map[CompressionType]string{
	CompressionNone: "",
	CompressionZstd: ".zst",
	CompressionS2:   ".s2",
	CompressionLZ4:  ".lz4",
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Ext returns the file suffix for c, empty for CompressionNone.
func (c CompressionType) Ext() string {
	return compressionExt[c]
}

// ParseCompression parses a case-insensitive compression name:
// "none" (or empty), "zstd", "s2" or "lz4".
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

// CompressionFromPath infers the compression of a chain file from its suffix.
// Paths without a known suffix are uncompressed.
func CompressionFromPath(path string) CompressionType {
	for c, ext := range compressionExt {
		if ext != "" && strings.HasSuffix(path, ext) {
			return c
		}
	}

	return CompressionNone
}
