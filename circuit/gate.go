package circuit

import (
	"fmt"
	"slices"
	"strings"
)

// NoClbit marks a gate that writes no classical bit.
const NoClbit = -1

// Gate is a single instruction applied to a list of qubits.
type Gate struct {
	Op     Op
	Qubits []int
	Params []float64
	// Clbit is the classical bit written by a measurement, NoClbit otherwise.
	Clbit int
}

// Clone returns a deep copy of g.
func (g Gate) Clone() Gate {
	return Gate{
		Op:     g.Op,
		Qubits: slices.Clone(g.Qubits),
		Params: slices.Clone(g.Params),
		Clbit:  g.Clbit,
	}
}

// Inverse returns the gate that undoes g.
// Measurements and resets have no inverse.
func (g Gate) Inverse() (Gate, error) {
	inv := g.Clone()
	switch g.Op {
	case OpS:
		inv.Op = OpSdg
	case OpSdg:
		inv.Op = OpS
	case OpT:
		inv.Op = OpTdg
	case OpTdg:
		inv.Op = OpT
	case OpRX, OpRY, OpRZ, OpRXX, OpRYY, OpRZZ:
		for i := range inv.Params {
			inv.Params[i] = -inv.Params[i]
		}
	case OpMeasure, OpReset:
		return Gate{}, fmt.Errorf("%s is not reversible", g.Op)
	default:
	}

	return inv, nil
}

func (g Gate) String() string {
	var sb strings.Builder
	sb.WriteString(g.Op.String())
	if len(g.Params) > 0 {
		sb.WriteByte('(')
		for i, p := range g.Params {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%g", p)
		}
		sb.WriteByte(')')
	}
	for i, q := range g.Qubits {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "q[%d]", q)
	}
	if g.Op == OpMeasure {
		fmt.Fprintf(&sb, " -> c[%d]", g.Clbit)
	}

	return sb.String()
}

func gate(op Op, params []float64, qubits ...int) Gate {
	return Gate{Op: op, Qubits: qubits, Params: params, Clbit: NoClbit}
}

// Gate constructors.

func I(q int) Gate   { return gate(OpI, nil, q) }
func X(q int) Gate   { return gate(OpX, nil, q) }
func Y(q int) Gate   { return gate(OpY, nil, q) }
func Z(q int) Gate   { return gate(OpZ, nil, q) }
func H(q int) Gate   { return gate(OpH, nil, q) }
func S(q int) Gate   { return gate(OpS, nil, q) }
func Sdg(q int) Gate { return gate(OpSdg, nil, q) }
func T(q int) Gate   { return gate(OpT, nil, q) }
func Tdg(q int) Gate { return gate(OpTdg, nil, q) }

func RX(theta float64, q int) Gate { return gate(OpRX, []float64{theta}, q) }
func RY(theta float64, q int) Gate { return gate(OpRY, []float64{theta}, q) }
func RZ(theta float64, q int) Gate { return gate(OpRZ, []float64{theta}, q) }

// CX is a controlled-X with control c and target t.
func CX(c, t int) Gate { return gate(OpCX, nil, c, t) }
func CZ(a, b int) Gate { return gate(OpCZ, nil, a, b) }

func RXX(theta float64, a, b int) Gate { return gate(OpRXX, []float64{theta}, a, b) }
func RYY(theta float64, a, b int) Gate { return gate(OpRYY, []float64{theta}, a, b) }
func RZZ(theta float64, a, b int) Gate { return gate(OpRZZ, []float64{theta}, a, b) }

// Measure measures qubit q into classical bit c.
func Measure(q, c int) Gate {
	return Gate{Op: OpMeasure, Qubits: []int{q}, Clbit: c}
}

func Reset(q int) Gate { return gate(OpReset, nil, q) }

// Barrier synchronises the given qubits.
func Barrier(qubits ...int) Gate { return gate(OpBarrier, nil, qubits...) }
