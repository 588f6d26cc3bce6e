// Package format defines the enumerations stored in serialized circuit blobs.
package format

import (
	"strings"

	"github.com/arloliu/iceberg/errs"
)

// CompressionType identifies the codec applied to a blob payload.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

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

// Valid reports whether c is a known compression type.
func (c CompressionType) Valid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

// ParseCompressionType parses a case-insensitive compression name as used in configuration
// files. The empty string selects CompressionNone.
func ParseCompressionType(name string) (CompressionType, error) {
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
		return 0, errs.InvalidParameter("unknown compression %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c CompressionType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errs.InvalidParameter("unknown compression type %d", uint8(c))
	}

	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CompressionType) UnmarshalText(text []byte) error {
	parsed, err := ParseCompressionType(string(text))
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}
