package compiler

import (
	"github.com/arloliu/iceberg/circuit"
	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/layout"
)

const supportedGatesHint = "Iceberg logical gates are id, x, y, z, rx, rz, rxx, ryy, rzz and barrier; " +
	"decompose the circuit into this set before compiling"

// translate maps one logical gate onto the physical code qubits.
func translate(g circuit.Gate, l layout.Layout) ([]circuit.Gate, error) {
	phys := make([]int, len(g.Qubits))
	for i, q := range g.Qubits {
		p, err := l.Physical(q)
		if err != nil {
			return nil, err
		}
		phys[i] = p
	}
	top, bottom := l.Top(), l.Bottom()

	switch g.Op {
	case circuit.OpI:
		return nil, nil
	case circuit.OpX, circuit.OpY, circuit.OpZ:
		return logicalPauli(g.Op, g.Qubits[0], l)
	case circuit.OpRX:
		return []circuit.Gate{circuit.RXX(g.Params[0], top, phys[0])}, nil
	case circuit.OpRZ:
		return []circuit.Gate{circuit.RZZ(g.Params[0], phys[0], bottom)}, nil
	case circuit.OpRXX:
		return []circuit.Gate{circuit.RXX(g.Params[0], phys[0], phys[1])}, nil
	case circuit.OpRYY:
		return []circuit.Gate{circuit.RYY(g.Params[0], phys[0], phys[1])}, nil
	case circuit.OpRZZ:
		return []circuit.Gate{circuit.RZZ(g.Params[0], phys[0], phys[1])}, nil
	case circuit.OpBarrier:
		return []circuit.Gate{circuit.Barrier(phys...)}, nil
	case circuit.OpMeasure:
		return nil, errs.WithHint(
			errs.UnsupportedGate("logical measurement"),
			"the compiler appends the logical readout; remove measurements from the input circuit",
		)
	default:
		return nil, errs.WithHint(errs.UnsupportedGate("%s has no transversal Iceberg translation", g.Op), supportedGatesHint)
	}
}

// logicalPauli applies X̄, Z̄ or their product Ȳ (up to phase) on logical qubit q.
func logicalPauli(op circuit.Op, q int, l layout.Layout) ([]circuit.Gate, error) {
	x, err := l.LogicalX(q)
	if err != nil {
		return nil, err
	}
	z, err := l.LogicalZ(q)
	if err != nil {
		return nil, err
	}

	ps := x
	switch op { //nolint:exhaustive
	case circuit.OpZ:
		ps = z
	case circuit.OpY:
		ps = x.Mul(z)
	}

	support := ps.Support()
	gates := make([]circuit.Gate, 0, len(support))
	for _, p := range support {
		switch ps[p] {
		case layout.PauliX:
			gates = append(gates, circuit.X(p))
		case layout.PauliY:
			gates = append(gates, circuit.Y(p))
		case layout.PauliZ:
			gates = append(gates, circuit.Z(p))
		}
	}

	return gates, nil
}

// generators returns the physical Pauli operators generating a translated logical gate.
// Pauli gates are generated by the product of their physical parts; rotations by their own
// two-qubit Pauli.
func generators(logical circuit.Gate, physical []circuit.Gate) []layout.PauliString {
	switch logical.Op {
	case circuit.OpX, circuit.OpY, circuit.OpZ:
		ps := layout.PauliString{}
		for _, g := range physical {
			ps[g.Qubits[0]] = pauliOf(g.Op)
		}

		return []layout.PauliString{ps}
	default:
		out := make([]layout.PauliString, 0, len(physical))
		for _, g := range physical {
			p := pauliOf(g.Op)
			if p == layout.PauliI {
				continue
			}
			ps := layout.PauliString{}
			for _, q := range g.Qubits {
				ps[q] = p
			}
			out = append(out, ps)
		}

		return out
	}
}

func pauliOf(op circuit.Op) layout.Pauli {
	switch op { //nolint:exhaustive
	case circuit.OpX, circuit.OpRXX:
		return layout.PauliX
	case circuit.OpY, circuit.OpRYY:
		return layout.PauliY
	case circuit.OpZ, circuit.OpRZZ:
		return layout.PauliZ
	default:
		return layout.PauliI
	}
}
