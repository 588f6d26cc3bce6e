//go:build gozstd

package compress

import (
	"github.com/valyala/gozstd"

	"github.com/arloliu/iceberg/errs"
)

// zstdLevel is close to the klauspost SpeedBetterCompression level.
const zstdLevel = 7

// Compress compresses data with Zstandard through libzstd. Empty input yields nil.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decompresses a Zstandard frame through libzstd.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, errs.MalformedInput("zstd decompression failed: %v", err)
	}
	if len(out) > MaxPayloadSize {
		return nil, errs.MalformedInput("zstd frame decodes to %d bytes, limit is %d", len(out), MaxPayloadSize)
	}

	return out, nil
}
