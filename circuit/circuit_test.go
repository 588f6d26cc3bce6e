package circuit

import (
	"math"
	"testing"

	"github.com/arloliu/iceberg/errs"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c, err := New(3)
	require.NoError(t, err)
	require.Equal(t, 3, c.NumQubits())
	require.Equal(t, 0, c.NumClbits())
	require.Equal(t, 0, c.Len())

	_, err = New(-1)
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
	require.Panics(t, func() { MustNew(-1) })
}

func TestAppend(t *testing.T) {
	t.Run("valid gates", func(t *testing.T) {
		c := MustNew(3)
		require.NoError(t, c.Append(H(0), CX(0, 1), RZZ(0.5, 1, 2), Barrier()))
		require.Equal(t, 4, c.Len())
		require.Equal(t, []int{0, 1, 2}, c.Gate(3).Qubits)
		require.Equal(t, NoClbit, c.Gate(0).Clbit)
	})

	tests := []struct {
		name string
		gate Gate
		kind error
	}{
		{"qubit out of range", X(3), errs.ErrInvalidParameter},
		{"negative qubit", X(-1), errs.ErrInvalidParameter},
		{"duplicate operand", CX(1, 1), errs.ErrInvalidParameter},
		{"wrong arity", Gate{Op: OpCX, Qubits: []int{0}}, errs.ErrInvalidParameter},
		{"missing parameter", Gate{Op: OpRZ, Qubits: []int{0}}, errs.ErrInvalidParameter},
		{"unknown op", Gate{Op: Op(200), Qubits: []int{0}}, errs.ErrUnsupportedGate},
		{"measure without register", Measure(0, 0), errs.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MustNew(3)
			require.NoError(t, c.Append(X(0)))
			err := c.Append(Y(1), tt.gate)
			require.ErrorIs(t, err, tt.kind)
			require.Equal(t, 1, c.Len(), "failed append must not modify the circuit")
		})
	}
}

func TestAppendCopiesGates(t *testing.T) {
	c := MustNew(2)
	g := RXX(0.25, 0, 1)
	require.NoError(t, c.Append(g))

	g.Qubits[0] = 1
	g.Params[0] = 9
	require.Equal(t, []int{0, 1}, c.Gate(0).Qubits)
	require.Equal(t, []float64{0.25}, c.Gate(0).Params)

	gates := c.Gates()
	gates[0].Params[0] = 7
	require.Equal(t, []float64{0.25}, c.Gate(0).Params)
}

func TestRegisters(t *testing.T) {
	c := MustNew(2)
	data, err := c.AddRegister("data", 2)
	require.NoError(t, err)
	require.Equal(t, Register{Name: "data", Offset: 0, Size: 2}, data)

	syn, err := c.AddRegister("syn0", 2)
	require.NoError(t, err)
	require.Equal(t, 2, syn.Offset)
	require.Equal(t, 4, c.NumClbits())

	_, err = c.AddRegister("data", 1)
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
	_, err = c.AddRegister("Bad Name", 1)
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
	_, err = c.AddRegister("empty", 0)
	require.ErrorIs(t, err, errs.ErrInvalidParameter)

	r, ok := c.Register("syn0")
	require.True(t, ok)
	require.Equal(t, syn, r)

	require.NoError(t, c.Append(Measure(1, 3)))
	require.Equal(t, 3, c.Gate(0).Clbit)
}

func TestInverse(t *testing.T) {
	c := MustNew(2)
	require.NoError(t, c.Append(S(0), RX(0.5, 1), T(1), RZZ(1.5, 0, 1), X(0)))

	inv, err := c.Inverse()
	require.NoError(t, err)
	require.Equal(t, []Gate{X(0), RZZ(-1.5, 0, 1), Tdg(1), RX(-0.5, 1), Sdg(0)}, inv.Gates())

	require.NoError(t, c.Append(Reset(0)))
	_, err = c.Inverse()
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
}

func TestCompose(t *testing.T) {
	a := MustNew(3)
	require.NoError(t, a.Append(X(0)))
	b := MustNew(2)
	require.NoError(t, b.Append(RZZ(0.1, 0, 1)))

	require.NoError(t, a.Compose(b))
	require.Equal(t, 2, a.Len())

	wide := MustNew(4)
	require.ErrorIs(t, b.Compose(wide), errs.ErrInvalidParameter)
}

func TestCountOpsAndClone(t *testing.T) {
	c := MustNew(2)
	require.NoError(t, c.Append(X(0), X(1), RZZ(math.Pi, 0, 1)))
	require.Equal(t, map[Op]int{OpX: 2, OpRZZ: 1}, c.CountOps())

	clone := c.Clone()
	require.Equal(t, c, clone)
	require.NoError(t, clone.Append(Z(0)))
	require.Equal(t, 3, c.Len())
}

func TestOpLookup(t *testing.T) {
	for _, name := range []string{"x", "rzz", "measure", "barrier", "cnot"} {
		op, ok := ParseOp(name)
		require.True(t, ok, name)
		require.True(t, op.Valid())
	}
	_, ok := ParseOp("ccx")
	require.False(t, ok)

	require.Equal(t, "rxx", OpRXX.String())
	require.Equal(t, "unknown", Op(0).String())
	require.True(t, OpRZ.IsUnitary())
	require.False(t, OpMeasure.IsUnitary())
	require.Equal(t, -1, OpBarrier.NumQubits())
}

func TestGateString(t *testing.T) {
	require.Equal(t, "rzz(0.5) q[1],q[2]", RZZ(0.5, 1, 2).String())
	require.Equal(t, "measure q[0] -> c[3]", Measure(0, 3).String())
}
