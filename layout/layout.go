package layout

import (
	"slices"

	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/internal/hash"
)

const (
	// NumFlagQubits is the number of ancillas measured in every syndrome round.
	NumFlagQubits = 2
	// SyndromeBits is the number of classical bits produced per syndrome round.
	SyndromeBits = 2
	// MinDistance is the code distance: any single-qubit error is detectable.
	MinDistance = 2

	layoutVersion = 1
)

// Stabilizer is one parity check: Basis applied on every qubit of Qubits, measured onto
// Ancilla.
type Stabilizer struct {
	Basis   Pauli
	Qubits  []int
	Ancilla int
}

// Layout is the immutable qubit layout for a given logical qubit count.
type Layout struct {
	k           int
	codeK       int
	n           int
	stabilizers []Stabilizer
	physical    []int
}

// Build returns the Iceberg layout for k logical qubits.
//
// Odd k is padded with one unused logical qubit so the code block has even length.
//
// Parameters:
//   - k: number of logical qubits (>= 1)
//
// Returns:
//   - Layout: the deterministic layout for k
//   - error: errs.ErrInvalidParameter if k < 1
func Build(k int) (Layout, error) {
	if k < 1 {
		return Layout{}, errs.InvalidParameter("logical qubit count must be >= 1, got %d", k)
	}

	codeK := k + k%2
	n := codeK + 2

	code := make([]int, n)
	for i := range code {
		code[i] = i
	}

	physical := make([]int, codeK)
	for i := range physical {
		physical[i] = i + 1
	}

	l := Layout{
		k:     k,
		codeK: codeK,
		n:     n,
		stabilizers: []Stabilizer{
			{Basis: PauliZ, Qubits: code, Ancilla: n},
			{Basis: PauliX, Qubits: slices.Clone(code), Ancilla: n + 1},
		},
		physical: physical,
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}

	return l, nil
}

// K returns the number of logical qubits requested.
func (l Layout) K() int { return l.k }

// CodeK returns the number of logical qubits in the code block, k rounded up to even.
func (l Layout) CodeK() int { return l.codeK }

// Padded reports whether an unused logical qubit was added to make CodeK even.
func (l Layout) Padded() bool { return l.codeK != l.k }

// NumDataQubits returns the number of physical code qubits, n = CodeK+2.
func (l Layout) NumDataQubits() int { return l.n }

// NumFlagQubits returns the number of syndrome ancillas.
func (l Layout) NumFlagQubits() int { return NumFlagQubits }

// NumQubits returns the total number of physical qubits, code and ancillas.
func (l Layout) NumQubits() int { return l.n + NumFlagQubits }

// Top returns the physical index of the top qubit, the X̄ partner of every logical qubit.
func (l Layout) Top() int { return 0 }

// Bottom returns the physical index of the bottom qubit, the Z̄ partner of every logical qubit.
func (l Layout) Bottom() int { return l.n - 1 }

// CodeQubits returns the physical code qubit indices in ascending order.
func (l Layout) CodeQubits() []int {
	return slices.Clone(l.stabilizers[0].Qubits)
}

// Stabilizers returns the parity checks in measurement order (Z first, then X).
func (l Layout) Stabilizers() []Stabilizer {
	out := make([]Stabilizer, len(l.stabilizers))
	for i, s := range l.stabilizers {
		out[i] = Stabilizer{Basis: s.Basis, Qubits: slices.Clone(s.Qubits), Ancilla: s.Ancilla}
	}

	return out
}

// Physical returns the data qubit carrying logical qubit i, for 0 <= i < CodeK.
func (l Layout) Physical(i int) (int, error) {
	if i < 0 || i >= l.codeK {
		return 0, errs.InvalidParameter("logical qubit %d out of range [0,%d)", i, l.codeK)
	}

	return l.physical[i], nil
}

// LogicalToPhysical returns the data qubit of each of the K requested logical qubits.
func (l Layout) LogicalToPhysical() []int {
	return slices.Clone(l.physical[:l.k])
}

// ReadoutSupport returns the physical qubits whose parity is logical qubit i's Z readout.
func (l Layout) ReadoutSupport(i int) ([]int, error) {
	p, err := l.Physical(i)
	if err != nil {
		return nil, err
	}

	return []int{p, l.Bottom()}, nil
}

// LogicalX returns the physical Pauli operator of X̄_i.
func (l Layout) LogicalX(i int) (PauliString, error) {
	p, err := l.Physical(i)
	if err != nil {
		return nil, err
	}

	return PauliString{l.Top(): PauliX, p: PauliX}, nil
}

// LogicalZ returns the physical Pauli operator of Z̄_i.
func (l Layout) LogicalZ(i int) (PauliString, error) {
	p, err := l.Physical(i)
	if err != nil {
		return nil, err
	}

	return PauliString{p: PauliZ, l.Bottom(): PauliZ}, nil
}

// Preserves reports whether ps commutes with every stabilizer, i.e. whether a gate
// generated by ps keeps every stabilizer parity.
func (l Layout) Preserves(ps PauliString) bool {
	for _, s := range l.stabilizers {
		if !ps.Commutes(s.Basis, s.Qubits) {
			return false
		}
	}

	return true
}

// Validate checks the structural invariants of the layout: even-weight stabilizers over the
// code block, ancillas outside it, and an injective logical map that avoids top and bottom.
func (l Layout) Validate() error {
	for i, s := range l.stabilizers {
		if len(s.Qubits)%2 != 0 {
			return errs.InvalidParameter("stabilizer %d has odd weight %d", i, len(s.Qubits))
		}
		if s.Ancilla < l.n {
			return errs.InvalidParameter("stabilizer %d ancilla %d overlaps the code block", i, s.Ancilla)
		}
	}

	seen := make(map[int]bool, len(l.physical))
	for i, p := range l.physical {
		if p == l.Top() || p == l.Bottom() || p < 0 || p >= l.n {
			return errs.InvalidParameter("logical qubit %d mapped to reserved qubit %d", i, p)
		}
		if seen[p] {
			return errs.InvalidParameter("logical qubit %d shares physical qubit %d", i, p)
		}
		seen[p] = true
	}

	return nil
}

// Fingerprint returns a stable 64-bit digest of the layout.
func (l Layout) Fingerprint() uint64 {
	f := hash.NewFingerprint("iceberg/layout").
		Int(layoutVersion).
		Int(l.k).
		Int(l.codeK).
		Int(l.n)
	for _, s := range l.stabilizers {
		f.Int(int(s.Basis)).Int(s.Ancilla).Ints(s.Qubits)
	}

	return f.Ints(l.physical).Sum64()
}
