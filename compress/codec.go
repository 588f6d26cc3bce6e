package compress

import (
	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/format"
)

// MaxPayloadSize bounds the decompressed size of a payload. Blob headers are not trusted
// to size buffers, so decompressors stop at this size.
const MaxPayloadSize = 128 * 1024 * 1024

// Compressor compresses a complete payload.
//
// The returned slice is owned by the caller; the input is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor. It returns an error if data is corrupted or was
// produced by another algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns a new Codec for compressionType.
//
// Parameters:
//   - compressionType: None, Zstd, S2 or LZ4
//   - target: what the codec is for, used in error messages
//
// Returns:
//   - Codec: the codec
//   - error: errs.ErrInvalidParameter for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, errs.InvalidParameter("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, errs.MalformedInput("unsupported compression type: %s", compressionType)
}
