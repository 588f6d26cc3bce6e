package compiler

import (
	"slices"

	"github.com/arloliu/iceberg/circuit"
	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/layout"
	"github.com/arloliu/iceberg/schedule"
)

const (
	// DataRegister is the name of the final readout register.
	DataRegister = "data"
	// SyndromeRegisterPrefix prefixes the per-round syndrome registers.
	SyndromeRegisterPrefix = "syn"
)

// Instrumented is a compiled circuit together with the metadata needed to decode its
// measurement counts. It is immutable.
type Instrumented struct {
	circ     *circuit.Circuit
	layout   layout.Layout
	schedule schedule.Schedule
	data     circuit.Register
	syndrome []circuit.Register
}

// Assemble wraps a physical circuit produced for the given layout and schedule, checking
// that its qubits and classical registers match what the compiler emits.
func Assemble(circ *circuit.Circuit, l layout.Layout, s schedule.Schedule) (*Instrumented, error) {
	if circ.NumQubits() != l.NumQubits() {
		return nil, errs.MalformedInput("circuit has %d qubits, layout needs %d", circ.NumQubits(), l.NumQubits())
	}

	regs := circ.Registers()
	if len(regs) != 1+s.Len() {
		return nil, errs.MalformedInput("circuit has %d registers, expected %d", len(regs), 1+s.Len())
	}
	if regs[0].Name != DataRegister || regs[0].Size != l.NumDataQubits() {
		return nil, errs.MalformedInput("first register must be %s[%d], got %s[%d]",
			DataRegister, l.NumDataQubits(), regs[0].Name, regs[0].Size)
	}
	for r, reg := range regs[1:] {
		if reg.Name != syndromeRegisterName(r) || reg.Size != layout.SyndromeBits {
			return nil, errs.MalformedInput("register %d must be %s[%d], got %s[%d]",
				r+1, syndromeRegisterName(r), layout.SyndromeBits, reg.Name, reg.Size)
		}
	}

	return &Instrumented{
		circ:     circ.Clone(),
		layout:   l,
		schedule: s,
		data:     regs[0],
		syndrome: regs[1:],
	}, nil
}

// Circuit returns a copy of the physical circuit.
func (in *Instrumented) Circuit() *circuit.Circuit { return in.circ.Clone() }

// Layout returns the code layout.
func (in *Instrumented) Layout() layout.Layout { return in.layout }

// Schedule returns the syndrome schedule.
func (in *Instrumented) Schedule() schedule.Schedule { return in.schedule }

// DataRegister returns the logical readout register.
func (in *Instrumented) DataRegister() circuit.Register { return in.data }

// SyndromeRegisters returns one register per syndrome round in round order.
func (in *Instrumented) SyndromeRegisters() []circuit.Register { return slices.Clone(in.syndrome) }

// NumQubits returns the physical qubit count.
func (in *Instrumented) NumQubits() int { return in.circ.NumQubits() }

// NumClbits returns the classical bit count.
func (in *Instrumented) NumClbits() int { return in.circ.NumClbits() }

// NumGates returns the physical gate count, barriers included.
func (in *Instrumented) NumGates() int { return in.circ.Len() }

// Metadata returns the decoder-facing metadata.
func (in *Instrumented) Metadata() Metadata {
	return metadataOf(in.layout, in.schedule)
}
