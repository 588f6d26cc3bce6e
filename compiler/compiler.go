package compiler

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/arloliu/iceberg/circuit"
	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/internal/options"
	"github.com/arloliu/iceberg/layout"
	"github.com/arloliu/iceberg/schedule"
)

// Compiler instruments logical circuits with the Iceberg code.
//
// A Compiler holds only immutable configuration and is safe for concurrent use.
type Compiler struct {
	cfg Config
}

// New creates a compiler.
//
// Parameters:
//   - opts: WithSyndromeRate (default schedule.DefaultRate), WithBarriers, WithLogger
//
// Returns:
//   - *Compiler: the configured compiler
//   - error: errs.ErrInvalidParameter for invalid options
func New(opts ...Option) (*Compiler, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Compiler{cfg: *cfg}, nil
}

// Compile instruments logical with the given syndrome rate using a default compiler.
func Compile(logical *circuit.Circuit, syndromeRate int, opts ...Option) (*Instrumented, error) {
	c, err := New(append(opts, WithSyndromeRate(syndromeRate))...)
	if err != nil {
		return nil, err
	}

	return c.Compile(logical)
}

// SyndromeRate returns the configured number of logical layers per syndrome round.
func (c *Compiler) SyndromeRate() int { return c.cfg.syndromeRate }

// Compile rewrites logical into an instrumented physical circuit.
//
// The logical circuit is not modified. Compilation is all-or-nothing.
//
// Returns:
//   - *Instrumented: the physical circuit with layout, schedule and register metadata
//   - error: errs.ErrInvalidParameter if logical has no qubits,
//     errs.ErrUnsupportedGate if a gate has no transversal translation
func (c *Compiler) Compile(logical *circuit.Circuit) (*Instrumented, error) {
	l, err := layout.Build(logical.NumQubits())
	if err != nil {
		return nil, err
	}

	gates := logical.Gates()
	translated := make([][]circuit.Gate, len(gates))
	for i, g := range gates {
		phys, err := translate(g, l)
		if err != nil {
			return nil, errors.Wrapf(err, "gate %d (%s)", i, g)
		}
		for _, gen := range generators(g, phys) {
			if !l.Preserves(gen) {
				return nil, errs.UnsupportedGate("gate %d (%s): translation does not preserve the stabilizers", i, g)
			}
		}
		translated[i] = phys
	}

	lay := logical.Layering()
	layers := lay.Layers
	s, err := schedule.New(len(layers), c.cfg.syndromeRate)
	if err != nil {
		return nil, err
	}

	e, err := newEmitter(l, s, c.cfg.barriers)
	if err != nil {
		return nil, err
	}

	e.prepare()
	for p := range len(layers) + 1 {
		if r := s.Round(p); r >= 0 {
			e.round(r)
		}
		for _, bi := range lay.Fences[p] {
			e.emit(translated[bi]...)
		}
		if p < len(layers) {
			for _, gi := range layers[p] {
				e.emit(translated[gi]...)
			}
		}
	}
	e.readout()
	if e.err != nil {
		return nil, e.err
	}

	inst, err := Assemble(e.circ, l, s)
	if err != nil {
		return nil, err
	}

	c.cfg.logger.Debug("compiled iceberg circuit",
		zap.Int("k", l.K()),
		zap.Bool("padded", l.Padded()),
		zap.Int("physical_qubits", l.NumQubits()),
		zap.Int("logical_gates", len(gates)),
		zap.Int("layers", len(layers)),
		zap.Int("syndrome_rate", s.Rate()),
		zap.Int("syndrome_rounds", s.Len()),
		zap.Int("physical_gates", inst.NumGates()),
		zap.String("fingerprint", strconv.FormatUint(inst.Metadata().Fingerprint, 16)),
	)

	return inst, nil
}

// emitter appends physical gates and keeps the first error.
type emitter struct {
	circ     *circuit.Circuit
	layout   layout.Layout
	data     circuit.Register
	syndrome []circuit.Register
	barriers bool
	err      error
}

func newEmitter(l layout.Layout, s schedule.Schedule, barriers bool) (*emitter, error) {
	circ, err := circuit.New(l.NumQubits())
	if err != nil {
		return nil, err
	}

	e := &emitter{circ: circ, layout: l, barriers: barriers}
	if e.data, err = circ.AddRegister(DataRegister, l.NumDataQubits()); err != nil {
		return nil, err
	}
	e.syndrome = make([]circuit.Register, s.Len())
	for r := range e.syndrome {
		if e.syndrome[r], err = circ.AddRegister(syndromeRegisterName(r), layout.SyndromeBits); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func syndromeRegisterName(round int) string {
	return SyndromeRegisterPrefix + strconv.Itoa(round)
}

func (e *emitter) emit(gates ...circuit.Gate) {
	if e.err != nil || len(gates) == 0 {
		return
	}
	e.err = e.circ.Append(gates...)
}

// prepare puts the code block into logical |0...0⟩, the n-qubit GHZ state.
func (e *emitter) prepare() {
	top := e.layout.Top()
	e.emit(circuit.H(top))
	for _, q := range e.layout.CodeQubits() {
		if q != top {
			e.emit(circuit.CX(top, q))
		}
	}
}

// round measures Z^⊗n and X^⊗n onto the two ancillas into syndrome register r.
//
// The Z ancilla collects parity through CX(q, az); the X ancilla, prepared in |+⟩, kicks
// X^⊗n back through CX(ax, q). The last two code qubits are visited X-first; each swap
// contributes a CX(ax, az) and the two cancel.
func (e *emitter) round(r int) {
	stabs := e.layout.Stabilizers()
	az, ax := stabs[0].Ancilla, stabs[1].Ancilla
	code := e.layout.CodeQubits()

	if e.barriers {
		e.emit(circuit.Barrier())
	}
	e.emit(circuit.Reset(az), circuit.Reset(ax), circuit.H(ax))
	for i, q := range code {
		if i < len(code)-2 {
			e.emit(circuit.CX(q, az), circuit.CX(ax, q))
		} else {
			e.emit(circuit.CX(ax, q), circuit.CX(q, az))
		}
	}
	e.emit(circuit.H(ax))

	reg := e.syndrome[r]
	e.emit(circuit.Measure(az, reg.Offset), circuit.Measure(ax, reg.Offset+1))
	if e.barriers {
		e.emit(circuit.Barrier())
	}
}

// readout measures every code qubit j into data bit j.
func (e *emitter) readout() {
	for _, q := range e.layout.CodeQubits() {
		e.emit(circuit.Measure(q, e.data.Offset+q))
	}
}
