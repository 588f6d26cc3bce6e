package compress

// ZstdCompressor compresses payloads with Zstandard at the better-compression level.
//
// The implementation is chosen at build time, see the package documentation.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
