package decoder

import (
	"maps"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/internal/options"
	"github.com/arloliu/iceberg/layout"
	"github.com/arloliu/iceberg/schedule"
)

// Counts maps measurement outcome strings to the number of shots that produced them.
type Counts map[string]int

// CountsSource is anything that exposes a counts mapping, such as a simulator result.
type CountsSource interface {
	Counts() map[string]int
}

// Decoder classifies counts of circuits compiled for a fixed logical qubit count.
//
// A Decoder is immutable and safe for concurrent use.
type Decoder struct {
	layout  layout.Layout
	// readout holds, per logical qubit, the data qubits whose parity is its Z readout.
	readout [][]int
	// rounds is the expected number of syndrome rounds, or -1 to take it from the keys.
	rounds  int
	cfg     Config
}

// New creates a decoder for k logical qubits.
//
// Parameters:
//   - k: logical qubit count of the compiled circuit (>= 1)
//   - opts: WithSyndromeRate, WithCircuitLayers, WithMetadata, WithChunkSize,
//     WithParallelism, WithLogger
//
// Returns:
//   - *Decoder: the decoder
//   - error: errs.ErrInvalidParameter for k < 1, invalid options, or metadata compiled for a
//     different k or syndrome rate
func New(k int, opts ...Option) (*Decoder, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	l, err := layout.Build(k)
	if err != nil {
		return nil, err
	}

	rounds := -1
	if md := cfg.metadata; md != nil {
		if md.K != k {
			return nil, errs.InvalidParameter("metadata was compiled for k=%d, decoder has k=%d", md.K, k)
		}
		if cfg.rateSet && md.SyndromeRate != cfg.syndromeRate {
			return nil, errs.InvalidParameter("metadata syndrome rate %d differs from %d",
				md.SyndromeRate, cfg.syndromeRate)
		}
		if cfg.layers >= 0 && md.Layers != cfg.layers {
			return nil, errs.InvalidParameter("metadata records %d circuit layers, got %d", md.Layers, cfg.layers)
		}
		cfg.syndromeRate = md.SyndromeRate
		rounds = md.Rounds
	} else if cfg.layers >= 0 {
		rounds = schedule.Rounds(cfg.layers, cfg.syndromeRate)
	}

	readout := make([][]int, k)
	for i := range readout {
		if readout[i], err = l.ReadoutSupport(i); err != nil {
			return nil, err
		}
	}

	return &Decoder{layout: l, readout: readout, rounds: rounds, cfg: *cfg}, nil
}

// Decode decodes counts with a decoder for k logical qubits.
func Decode(counts Counts, k int, opts ...Option) (*Result, error) {
	d, err := New(k, opts...)
	if err != nil {
		return nil, err
	}

	return d.Decode(counts)
}

// K returns the logical qubit count.
func (d *Decoder) K() int { return d.layout.K() }

// Rounds returns the pinned number of syndrome rounds, or -1 when it is read from the keys.
func (d *Decoder) Rounds() int { return d.rounds }

// DecodeSource decodes the counts exposed by src.
func (d *Decoder) DecodeSource(src CountsSource) (*Result, error) {
	return d.Decode(src.Counts())
}

// Decode post-selects counts and maps accepted outcomes to logical strings.
//
// Returns:
//   - *Result: accepted logical counts and shot statistics; empty counts give an empty
//     result, and so does a run where every shot was rejected
//   - error: errs.ErrMalformedInput for keys that are not binary, negative counts, or keys
//     whose width does not match the layout and round count; errs.ErrInvalidParameter
//     when the data register was produced for a different k, or for keys without register
//     separators when the round count is not pinned
func (d *Decoder) Decode(counts Counts) (*Result, error) {
	start := time.Now()

	var (
		part partial
		err  error
	)
	if len(counts) > d.cfg.chunkSize && d.cfg.parallelism > 1 {
		part, err = d.decodeChunks(counts)
	} else {
		part, err = d.decodeKeys(counts, slices.Collect(maps.Keys(counts)))
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		k:        d.layout.K(),
		counts:   part.counts,
		accepted: part.accepted,
		rejected: part.rejected,
		rounds:   part.rounds,
	}
	if res.rounds < 0 {
		res.rounds = d.rounds
	}

	d.cfg.logger.Debug("decoded iceberg counts",
		zap.Int("k", res.k),
		zap.Int("outcomes", len(counts)),
		zap.Int("syndrome_rounds", res.rounds),
		zap.Int("accepted", res.accepted),
		zap.Int("rejected", res.rejected),
		zap.Duration("elapsed", time.Since(start)),
	)

	return res, nil
}

// partial is the decode state of a subset of outcomes.
type partial struct {
	counts   map[string]int
	accepted int
	rejected int
	// rounds observed in the keys, -1 before the first key.
	rounds int
}

func (p *partial) merge(o partial) error {
	if o.rounds >= 0 {
		if p.rounds >= 0 && p.rounds != o.rounds {
			return errs.MalformedInput("outcomes disagree on the number of syndrome rounds: %d and %d",
				p.rounds, o.rounds)
		}
		p.rounds = o.rounds
	}
	for k, v := range o.counts {
		p.counts[k] += v
	}
	p.accepted += o.accepted
	p.rejected += o.rejected

	return nil
}

func (d *Decoder) decodeChunks(counts Counts) (partial, error) {
	keys := slices.Collect(maps.Keys(counts))
	chunks := slices.Collect(slices.Chunk(keys, d.cfg.chunkSize))
	parts := make([]partial, len(chunks))

	var g errgroup.Group
	g.SetLimit(d.cfg.parallelism)
	for i, chunk := range chunks {
		g.Go(func() error {
			p, err := d.decodeKeys(counts, chunk)
			parts[i] = p

			return err
		})
	}
	if err := g.Wait(); err != nil {
		return partial{}, err
	}

	total := partial{counts: make(map[string]int), rounds: -1}
	for _, p := range parts {
		if err := total.merge(p); err != nil {
			return partial{}, err
		}
	}

	return total, nil
}

func (d *Decoder) decodeKeys(counts Counts, keys []string) (partial, error) {
	p := partial{counts: make(map[string]int), rounds: -1}
	logical := make([]byte, d.layout.K())

	for _, key := range keys {
		v := counts[key]
		if v < 0 {
			return partial{}, errs.MalformedInput("outcome %q has negative count %d", key, v)
		}

		o, err := d.parse(key)
		if err != nil {
			return partial{}, err
		}
		if p.rounds >= 0 && p.rounds != o.rounds {
			return partial{}, errs.MalformedInput("outcome %q has %d syndrome rounds, earlier outcomes have %d",
				key, o.rounds, p.rounds)
		}
		p.rounds = o.rounds

		if v == 0 {
			continue
		}
		if !o.accepted() {
			p.rejected += v
			continue
		}
		p.accepted += v
		p.counts[d.logical(o.data, logical)] += v
	}

	return p, nil
}

// logical maps an accepted data register to the logical outcome, qubit 0 rightmost.
func (d *Decoder) logical(data string, buf []byte) string {
	n := d.layout.NumDataQubits()
	for i, support := range d.readout {
		var v byte
		for _, q := range support {
			v ^= data[n-1-q] - '0'
		}
		buf[len(buf)-1-i] = '0' + v
	}

	return string(buf)
}
