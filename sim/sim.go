// Package sim runs circuits on a noisy state-vector simulator and returns measurement
// counts keyed the same way hardware backends key them.
//
// Shots are split into fixed-size batches executed concurrently. Each batch draws from
// its own PCG stream derived from the seed and the batch index, so a run is reproducible
// for a given seed, batch size and circuit regardless of scheduling.
package sim

import (
	"context"
	"maps"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/iceberg/circuit"
	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/internal/options"
	"github.com/arloliu/iceberg/noise"
)

const (
	// MaxQubits is the widest circuit the simulator accepts.
	MaxQubits = 20
	// DefaultBatchSize is the number of shots simulated per batch.
	DefaultBatchSize = 256
)

// Config holds simulator settings.
type Config struct {
	noise       noise.Model
	seed        uint64
	batchSize   int
	parallelism int
	logger      *zap.Logger
}

// Option configures a Simulator.
type Option = options.Option[*Config]

// WithNoise sets the noise model. The default is noiseless.
func WithNoise(m noise.Model) Option {
	return options.New(func(c *Config) error {
		if err := m.Validate(); err != nil {
			return err
		}
		c.noise = m

		return nil
	})
}

// WithSeed sets the seed of the random streams.
func WithSeed(seed uint64) Option {
	return options.NoError(func(c *Config) {
		c.seed = seed
	})
}

// WithBatchSize sets the number of shots per batch.
func WithBatchSize(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return errs.InvalidParameter("batch size must be >= 1, got %d", n)
		}
		c.batchSize = n

		return nil
	})
}

// WithParallelism caps the number of batches simulated at once.
func WithParallelism(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return errs.InvalidParameter("parallelism must be >= 1, got %d", n)
		}
		c.parallelism = n

		return nil
	})
}

// WithLogger sets the logger used for run summaries.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}

// Simulator executes circuits shot by shot.
type Simulator struct {
	cfg Config
}

// New creates a simulator.
func New(opts ...Option) (*Simulator, error) {
	cfg := &Config{
		batchSize:   DefaultBatchSize,
		parallelism: runtime.GOMAXPROCS(0),
		logger:      zap.NewNop(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Simulator{cfg: *cfg}, nil
}

// Noise returns the configured noise model.
func (s *Simulator) Noise() noise.Model { return s.cfg.noise }

// Result holds the counts of one run.
type Result struct {
	counts map[string]int
	shots  int
}

// Counts returns a copy of the outcome counts.
func (r *Result) Counts() map[string]int { return maps.Clone(r.counts) }

// Shots returns the number of shots executed.
func (r *Result) Shots() int { return r.shots }

// Run executes shots shots of circ.
//
// Parameters:
//   - ctx: checked before each batch starts
//   - circ: the circuit; every classical bit must be written by a measurement to be
//     meaningful, unwritten bits read 0
//   - shots: number of shots (>= 0)
//
// Returns:
//   - *Result: counts keyed by outcome string
//   - error: errs.ErrInvalidParameter for negative shots or circuits wider than MaxQubits,
//     ctx.Err() if cancelled
func (s *Simulator) Run(ctx context.Context, circ *circuit.Circuit, shots int) (*Result, error) {
	if shots < 0 {
		return nil, errs.InvalidParameter("shots must be >= 0, got %d", shots)
	}
	if circ.NumQubits() > MaxQubits {
		return nil, errs.InvalidParameter("circuit has %d qubits, simulator supports at most %d",
			circ.NumQubits(), MaxQubits)
	}

	start := time.Now()
	gates := circ.Gates()
	batches := (shots + s.cfg.batchSize - 1) / s.cfg.batchSize

	var (
		mu     sync.Mutex
		counts = make(map[string]int)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.parallelism)
	for b := range batches {
		n := min(s.cfg.batchSize, shots-b*s.cfg.batchSize)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			local, err := s.runBatch(circ, gates, uint64(b), n)
			if err != nil {
				return err
			}

			mu.Lock()
			for k, v := range local {
				counts[k] += v
			}
			mu.Unlock()

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// errgroup cancels gctx only on failure, so a parent cancelled after the last batch
	// started is reported here.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.cfg.logger.Debug("simulated circuit",
		zap.Int("qubits", circ.NumQubits()),
		zap.Int("gates", len(gates)),
		zap.Int("shots", shots),
		zap.Int("batches", batches),
		zap.Int("distinct_outcomes", len(counts)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Result{counts: counts, shots: shots}, nil
}
