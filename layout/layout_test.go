package layout

import (
	"testing"

	"github.com/arloliu/iceberg/errs"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		k, codeK, n int
		padded      bool
	}{
		{1, 2, 4, true},
		{2, 2, 4, false},
		{3, 4, 6, true},
		{4, 4, 6, false},
		{9, 10, 12, true},
	}

	for _, tt := range tests {
		l, err := Build(tt.k)
		require.NoError(t, err)
		require.NoError(t, l.Validate())
		require.Equal(t, tt.k, l.K())
		require.Equal(t, tt.codeK, l.CodeK())
		require.Equal(t, tt.n, l.NumDataQubits())
		require.Equal(t, tt.n+2, l.NumQubits())
		require.Equal(t, 2, l.NumFlagQubits())
		require.Equal(t, tt.padded, l.Padded())
		require.Equal(t, 0, l.Top())
		require.Equal(t, tt.n-1, l.Bottom())
		require.Len(t, l.LogicalToPhysical(), tt.k)
	}
}

func TestBuildInvalid(t *testing.T) {
	for _, k := range []int{0, -1} {
		_, err := Build(k)
		require.ErrorIs(t, err, errs.ErrInvalidParameter)
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, err := Build(6)
	require.NoError(t, err)
	b, err := Build(6)
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	c, err := Build(5)
	require.NoError(t, err)
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestStabilizers(t *testing.T) {
	l, err := Build(4)
	require.NoError(t, err)

	stabs := l.Stabilizers()
	require.Len(t, stabs, 2)
	require.Equal(t, PauliZ, stabs[0].Basis)
	require.Equal(t, PauliX, stabs[1].Basis)
	require.Equal(t, 6, stabs[0].Ancilla)
	require.Equal(t, 7, stabs[1].Ancilla)
	for _, s := range stabs {
		require.Equal(t, []int{0, 1, 2, 3, 4, 5}, s.Qubits)
		require.Zero(t, len(s.Qubits)%2, "stabilizers must have even weight")
		require.GreaterOrEqual(t, len(s.Qubits), MinDistance)
	}

	// Returned stabilizers are copies.
	stabs[0].Qubits[0] = 99
	require.Equal(t, 0, l.Stabilizers()[0].Qubits[0])
}

func TestLogicalMapping(t *testing.T) {
	l, err := Build(3)
	require.NoError(t, err)

	require.Equal(t, []int{1, 2, 3}, l.LogicalToPhysical())

	p, err := l.Physical(3) // padding qubit
	require.NoError(t, err)
	require.Equal(t, 4, p)

	_, err = l.Physical(4)
	require.ErrorIs(t, err, errs.ErrInvalidParameter)

	support, err := l.ReadoutSupport(1)
	require.NoError(t, err)
	require.Equal(t, []int{2, 5}, support)

	seen := map[int]bool{}
	for _, q := range l.LogicalToPhysical() {
		require.False(t, seen[q], "logical qubits must not share a readout qubit")
		seen[q] = true
	}
}

func TestLogicalOperatorsPreserveStabilizers(t *testing.T) {
	l, err := Build(4)
	require.NoError(t, err)

	for i := range l.CodeK() {
		x, err := l.LogicalX(i)
		require.NoError(t, err)
		z, err := l.LogicalZ(i)
		require.NoError(t, err)

		require.True(t, l.Preserves(x), "X̄_%d", i)
		require.True(t, l.Preserves(z), "Z̄_%d", i)

		// X̄_i and Z̄_i anticommute on exactly one shared qubit.
		shared := 0
		for q, p := range x {
			if z[q].Anticommutes(p) {
				shared++
			}
		}
		require.Equal(t, 1, shared)
	}

	// A single-qubit error is detected by at least one stabilizer.
	for _, q := range l.CodeQubits() {
		for _, p := range []Pauli{PauliX, PauliY, PauliZ} {
			require.False(t, l.Preserves(PauliString{q: p}), "%s on %d", p, q)
		}
	}
}

func TestPauli(t *testing.T) {
	require.True(t, PauliX.Anticommutes(PauliZ))
	require.True(t, PauliY.Anticommutes(PauliX))
	require.False(t, PauliX.Anticommutes(PauliX))
	require.False(t, PauliI.Anticommutes(PauliZ))
	require.Equal(t, "Y", PauliY.String())

	ps := PauliString{0: PauliX, 1: PauliX}
	require.True(t, ps.Commutes(PauliZ, []int{0, 1, 2}))
	require.False(t, ps.Commutes(PauliZ, []int{0, 2}))
}

func TestPauliStringMul(t *testing.T) {
	l, err := Build(2)
	require.NoError(t, err)

	x, err := l.LogicalX(1)
	require.NoError(t, err)
	z, err := l.LogicalZ(1)
	require.NoError(t, err)

	y := x.Mul(z)
	require.Equal(t, PauliString{0: PauliX, 2: PauliY, 3: PauliZ}, y)
	require.Equal(t, []int{0, 2, 3}, y.Support())
	require.True(t, l.Preserves(y))

	require.Empty(t, y.Mul(y).Support())
	require.Equal(t, x, PauliString(nil).Mul(x))
}
