package blob

import (
	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/format"
	"github.com/arloliu/iceberg/internal/options"
)

// EncoderConfig holds encoder settings.
type EncoderConfig struct {
	compression format.CompressionType
	bigEndian   bool
}

// Option configures Encode.
type Option = options.Option[*EncoderConfig]

// WithCompression selects the payload codec. The default is Zstd.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *EncoderConfig) error {
		if !c.Valid() {
			return errs.InvalidParameter("unknown compression type %d", uint8(c))
		}
		cfg.compression = c

		return nil
	})
}

// WithBigEndian writes fixed-width fields big-endian.
func WithBigEndian() Option {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.bigEndian = true
	})
}

// WithLittleEndian writes fixed-width fields little-endian. This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.bigEndian = false
	})
}
