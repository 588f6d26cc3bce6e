package compress

import (
	"github.com/klauspost/compress/s2"

	"github.com/arloliu/iceberg/errs"
)

// S2Compressor compresses payloads with S2, a faster Snappy extension.
//
// Payloads are encoded with the better-ratio mode: gate streams repeat the same syndrome
// ladder every round and the blobs are written once and read many times.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data into one S2 block. Empty input yields nil.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decompresses an S2 block. The block's recorded length sizes the output, so it
// is checked against MaxPayloadSize first.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, errs.MalformedInput("s2 block header: %v", err)
	}
	if n > MaxPayloadSize {
		return nil, errs.MalformedInput("s2 block decodes to %d bytes, limit is %d", n, MaxPayloadSize)
	}

	out, err := s2.Decode(make([]byte, n), data)
	if err != nil {
		return nil, errs.MalformedInput("s2 decompression failed: %v", err)
	}

	return out, nil
}
