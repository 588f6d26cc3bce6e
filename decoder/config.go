package decoder

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/arloliu/iceberg/compiler"
	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/internal/options"
	"github.com/arloliu/iceberg/schedule"
)

// DefaultChunkSize is the number of distinct outcomes above which decoding is split into
// concurrent chunks of this size.
const DefaultChunkSize = 4096

// Config holds decoder settings.
type Config struct {
	syndromeRate int
	rateSet      bool
	layers       int
	metadata     *compiler.Metadata
	chunkSize    int
	parallelism  int
	logger       *zap.Logger
}

func defaultConfig() *Config {
	return &Config{
		syndromeRate: schedule.DefaultRate,
		layers:       -1,
		chunkSize:    DefaultChunkSize,
		parallelism:  runtime.GOMAXPROCS(0),
		logger:       zap.NewNop(),
	}
}

// Option configures a Decoder.
type Option = options.Option[*Config]

// WithSyndromeRate sets the syndrome rate used at compile time. It only matters together
// with WithCircuitLayers or WithMetadata, which pin the expected number of rounds.
func WithSyndromeRate(rate int) Option {
	return options.New(func(c *Config) error {
		if rate < 1 {
			return errs.InvalidParameter("syndrome rate must be >= 1, got %d", rate)
		}
		c.syndromeRate = rate
		c.rateSet = true

		return nil
	})
}

// WithCircuitLayers pins the number of syndrome rounds to what the compiler emits for a
// logical circuit of the given depth.
func WithCircuitLayers(layers int) Option {
	return options.New(func(c *Config) error {
		if layers < 0 {
			return errs.InvalidParameter("circuit layers must be >= 0, got %d", layers)
		}
		c.layers = layers

		return nil
	})
}

// WithMetadata pins k, syndrome rate and round count to those recorded by the compiler.
func WithMetadata(md compiler.Metadata) Option {
	return options.New(func(c *Config) error {
		if err := md.Validate(); err != nil {
			return err
		}
		c.metadata = &md

		return nil
	})
}

// WithChunkSize sets the number of distinct outcomes classified per concurrent chunk.
func WithChunkSize(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return errs.InvalidParameter("chunk size must be >= 1, got %d", n)
		}
		c.chunkSize = n

		return nil
	})
}

// WithParallelism caps the number of chunks classified at once.
func WithParallelism(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return errs.InvalidParameter("parallelism must be >= 1, got %d", n)
		}
		c.parallelism = n

		return nil
	})
}

// WithLogger sets the logger used for decode summaries.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}
