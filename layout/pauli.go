package layout

import (
	"maps"
	"slices"
)

// Pauli is a single-qubit Pauli operator.
type Pauli uint8

const (
	PauliI Pauli = iota
	PauliX
	PauliY
	PauliZ
)

func (p Pauli) String() string {
	switch p {
	case PauliI:
		return "I"
	case PauliX:
		return "X"
	case PauliY:
		return "Y"
	case PauliZ:
		return "Z"
	default:
		return "?"
	}
}

// Anticommutes reports whether p and q anticommute.
func (p Pauli) Anticommutes(q Pauli) bool {
	return p != PauliI && q != PauliI && p != q
}

// PauliString is a multi-qubit Pauli operator keyed by physical qubit. Missing qubits are I.
type PauliString map[int]Pauli

// Commutes reports whether ps commutes with the operator that applies p on every qubit
// in support.
func (ps PauliString) Commutes(p Pauli, support []int) bool {
	odd := false
	for _, q := range support {
		if ps[q].Anticommutes(p) {
			odd = !odd
		}
	}

	return !odd
}

// mulTable is the single-qubit Pauli product with the phase dropped.
var mulTable = [4][4]Pauli{
	PauliI: {PauliI, PauliX, PauliY, PauliZ},
	PauliX: {PauliX, PauliI, PauliZ, PauliY},
	PauliY: {PauliY, PauliZ, PauliI, PauliX},
	PauliZ: {PauliZ, PauliY, PauliX, PauliI},
}

// Mul returns the product ps·other up to a global phase.
func (ps PauliString) Mul(other PauliString) PauliString {
	out := maps.Clone(ps)
	if out == nil {
		out = PauliString{}
	}
	for q, p := range other {
		if r := mulTable[out[q]][p]; r == PauliI {
			delete(out, q)
		} else {
			out[q] = r
		}
	}

	return out
}

// Support returns the qubits on which ps is not the identity, in ascending order.
func (ps PauliString) Support() []int {
	out := make([]int, 0, len(ps))
	for q, p := range ps {
		if p != PauliI {
			out = append(out, q)
		}
	}
	slices.Sort(out)

	return out
}
