// Package iceberg compiles logical quantum circuits into circuits protected by the Iceberg
// [[k+2, k, 2]] error-detection code and post-selects their measurement results.
//
// The code adds a top and a bottom qubit to k (rounded up to even) logical qubits and checks
// the two stabilizers X^⊗n and Z^⊗n with two ancillas. A syndrome round is inserted after
// state preparation, every syndrome_rate logical layers and before the final readout. Shots
// in which any round flags an error, or whose final data parity is odd, are discarded.
//
// # Basic Usage
//
// Compiling, running and decoding a logical circuit:
//
//	logical := circuit.MustNew(4)
//	_ = logical.Append(circuit.RX(0.3, 0), circuit.RZZ(0.7, 1, 2))
//
//	inst, _ := iceberg.Compile(logical, 16)
//	raw, _ := simulator.Run(ctx, inst.Circuit(), 2048)
//	res, _ := iceberg.Decode(raw.Counts(), 4, 16)
//	fmt.Println(res.AcceptanceRate(), res.Counts())
//
// Run performs the same steps from a config.Config:
//
//	cfg, _ := config.LoadFile("run.yaml")
//	out, _ := iceberg.Run(ctx, logical, cfg)
//
// # Package Structure
//
// This package provides top-level wrappers around the layout, schedule, compiler, sim,
// decoder and blob packages. For fine-grained control use those packages directly.
package iceberg

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arloliu/iceberg/blob"
	"github.com/arloliu/iceberg/circuit"
	"github.com/arloliu/iceberg/compiler"
	"github.com/arloliu/iceberg/config"
	"github.com/arloliu/iceberg/decoder"
	"github.com/arloliu/iceberg/internal/options"
	"github.com/arloliu/iceberg/layout"
	"github.com/arloliu/iceberg/schedule"
	"github.com/arloliu/iceberg/sim"
)

// BuildLayout returns the code layout for k logical qubits.
//
// Returns errs.ErrInvalidParameter if k < 1.
func BuildLayout(k int) (layout.Layout, error) {
	return layout.Build(k)
}

// NewSchedule returns the syndrome schedule of a logical circuit with the given number of
// layers measured every syndromeRate layers.
//
// Returns errs.ErrInvalidParameter if layers < 0 or syndromeRate < 1.
func NewSchedule(layers, syndromeRate int) (schedule.Schedule, error) {
	return schedule.New(layers, syndromeRate)
}

// Compile encodes logical into an instrumented physical circuit.
//
// Parameters:
//   - logical: circuit over k logical qubits using only transversal gates
//   - syndromeRate: logical layers per syndrome round (>= 1)
//   - opts: additional compiler options (see compiler.Option)
//
// Returns:
//   - *compiler.Instrumented: the physical circuit with its layout and schedule
//   - error: errs.ErrInvalidParameter or errs.ErrUnsupportedGate
//
// Example:
//
//	inst, err := iceberg.Compile(logical, 16, compiler.WithBarriers(false))
func Compile(logical *circuit.Circuit, syndromeRate int, opts ...compiler.Option) (*compiler.Instrumented, error) {
	return compiler.Compile(logical, syndromeRate, opts...)
}

// Decode post-selects counts measured on a circuit compiled for k logical qubits at the
// given syndrome rate.
//
// syndromeRate is validated but only checked against the counts together with
// decoder.WithCircuitLayers or decoder.WithMetadata, which pin the number of rounds; without
// them the round count is read from the keys and a rate mismatch goes unnoticed. Keys without
// register separators need the pinned round count.
//
// Returns errs.ErrMalformedInput if a key does not match the layout and
// errs.ErrInvalidParameter for invalid k, rate or options.
func Decode(counts decoder.Counts, k, syndromeRate int, opts ...decoder.Option) (*decoder.Result, error) {
	return decoder.Decode(counts, k, append([]decoder.Option{decoder.WithSyndromeRate(syndromeRate)}, opts...)...)
}

// DecodeSource is Decode for any value exposing a counts mapping, such as *sim.Result.
func DecodeSource(src decoder.CountsSource, k, syndromeRate int, opts ...decoder.Option) (*decoder.Result, error) {
	d, err := decoder.New(k, append([]decoder.Option{decoder.WithSyndromeRate(syndromeRate)}, opts...)...)
	if err != nil {
		return nil, err
	}

	return d.DecodeSource(src)
}

// Identity returns logical followed by its inverse. The compiled identity of a noiseless
// run decodes to the all-zero bitstring on every shot.
func Identity(logical *circuit.Circuit) (*circuit.Circuit, error) {
	inv, err := logical.Inverse()
	if err != nil {
		return nil, err
	}

	out := logical.Clone()
	if err := out.Compose(inv); err != nil {
		return nil, err
	}

	return out, nil
}

type runConfig struct {
	logger *zap.Logger
}

// RunOption configures Run.
type RunOption = options.Option[*runConfig]

// WithLogger sets the logger passed to the compiler, simulator and decoder.
func WithLogger(logger *zap.Logger) RunOption {
	return options.NoError(func(c *runConfig) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}

// RunResult holds every artifact of one Run.
type RunResult struct {
	// Instrumented is the compiled circuit.
	Instrumented *compiler.Instrumented
	// Blob is Instrumented serialized with the configured compression.
	Blob []byte
	// Raw holds the simulator counts before post-selection.
	Raw *sim.Result
	// Decoded holds the post-selected logical counts.
	Decoded *decoder.Result
}

// Run compiles logical, simulates cfg.Shots shots under the configured noise model and
// decodes the counts against the compiled metadata.
//
// Parameters:
//   - ctx: cancels the simulation
//   - logical: the logical circuit
//   - cfg: run configuration, validated before use
//   - opts: run options
//
// Returns:
//   - *RunResult: compiled circuit, its blob, raw and decoded counts
//   - error: any error of the compile, simulate or decode step
func Run(ctx context.Context, logical *circuit.Circuit, cfg config.Config, opts ...RunOption) (*RunResult, error) {
	rc := &runConfig{logger: zap.NewNop()}
	if err := options.Apply(rc, opts...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	model, err := cfg.NoiseModel()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	inst, err := compiler.Compile(logical, cfg.SyndromeRate,
		compiler.WithBarriers(!cfg.DisableBarriers),
		compiler.WithLogger(rc.logger),
	)
	if err != nil {
		return nil, err
	}

	data, err := blob.Encode(inst, blob.WithCompression(cfg.Compression))
	if err != nil {
		return nil, err
	}

	simOpts := []sim.Option{sim.WithNoise(model), sim.WithSeed(cfg.Seed), sim.WithLogger(rc.logger)}
	decOpts := []decoder.Option{decoder.WithMetadata(inst.Metadata()), decoder.WithLogger(rc.logger)}
	if cfg.Parallelism > 0 {
		simOpts = append(simOpts, sim.WithParallelism(cfg.Parallelism))
		decOpts = append(decOpts, decoder.WithParallelism(cfg.Parallelism))
	}

	simulator, err := sim.New(simOpts...)
	if err != nil {
		return nil, err
	}
	raw, err := simulator.Run(ctx, inst.Circuit(), cfg.Shots)
	if err != nil {
		return nil, err
	}

	dec, err := decoder.New(logical.NumQubits(), decOpts...)
	if err != nil {
		return nil, err
	}
	res, err := dec.DecodeSource(raw)
	if err != nil {
		return nil, err
	}

	rc.logger.Info("iceberg run finished",
		zap.Int("k", logical.NumQubits()),
		zap.Int("syndrome_rate", cfg.SyndromeRate),
		zap.Int("shots", cfg.Shots),
		zap.Int("accepted", res.AcceptedShots()),
		zap.Float64("acceptance_rate", res.AcceptanceRate()),
		zap.Int("blob_bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &RunResult{Instrumented: inst, Blob: data, Raw: raw, Decoded: res}, nil
}
