package compiler

import (
	"go.uber.org/zap"

	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/internal/options"
	"github.com/arloliu/iceberg/schedule"
)

// Config holds compiler settings.
type Config struct {
	syndromeRate int
	barriers     bool
	logger       *zap.Logger
}

func defaultConfig() *Config {
	return &Config{
		syndromeRate: schedule.DefaultRate,
		barriers:     true,
		logger:       zap.NewNop(),
	}
}

// Option configures a Compiler.
type Option = options.Option[*Config]

// WithSyndromeRate sets the number of logical layers between syndrome rounds.
func WithSyndromeRate(rate int) Option {
	return options.New(func(c *Config) error {
		if rate < 1 {
			return errs.InvalidParameter("syndrome rate must be >= 1, got %d", rate)
		}
		c.syndromeRate = rate

		return nil
	})
}

// WithBarriers controls whether syndrome rounds are fenced by barriers, which keeps
// transpilers from moving logical gates across them. Enabled by default.
func WithBarriers(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.barriers = enabled
	})
}

// WithLogger sets the logger used for compile summaries.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}
