package compiler

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/iceberg/circuit"
	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/layout"
	"github.com/arloliu/iceberg/sim"
)

func logical(t *testing.T, k int, gates ...circuit.Gate) *circuit.Circuit {
	t.Helper()
	c := circuit.MustNew(k)
	require.NoError(t, c.Append(gates...))

	return c
}

func TestTranslate(t *testing.T) {
	l, err := layout.Build(4)
	require.NoError(t, err)
	// top = 0, logical i -> i+1, bottom = 5
	tests := []struct {
		name string
		in   circuit.Gate
		want []circuit.Gate
	}{
		{"identity", circuit.I(0), nil},
		{"x", circuit.X(1), []circuit.Gate{circuit.X(0), circuit.X(2)}},
		{"y", circuit.Y(2), []circuit.Gate{circuit.X(0), circuit.Y(3), circuit.Z(5)}},
		{"z", circuit.Z(3), []circuit.Gate{circuit.Z(4), circuit.Z(5)}},
		{"rx", circuit.RX(0.5, 0), []circuit.Gate{circuit.RXX(0.5, 0, 1)}},
		{"rz", circuit.RZ(-1.2, 1), []circuit.Gate{circuit.RZZ(-1.2, 2, 5)}},
		{"rxx", circuit.RXX(0.1, 0, 3), []circuit.Gate{circuit.RXX(0.1, 1, 4)}},
		{"ryy", circuit.RYY(0.2, 2, 1), []circuit.Gate{circuit.RYY(0.2, 3, 2)}},
		{"rzz", circuit.RZZ(0.3, 1, 2), []circuit.Gate{circuit.RZZ(0.3, 2, 3)}},
		{"barrier", circuit.Barrier(0, 2), []circuit.Gate{circuit.Barrier(1, 3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := translate(tt.in, l)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			for _, gen := range generators(tt.in, got) {
				require.True(t, l.Preserves(gen), "generator %v leaves the code space", gen)
			}
		})
	}
}

func TestCompile_UnsupportedGates(t *testing.T) {
	tests := []struct {
		name string
		gate circuit.Gate
	}{
		{"h", circuit.H(0)},
		{"s", circuit.S(0)},
		{"t", circuit.T(1)},
		{"ry", circuit.RY(0.3, 0)},
		{"cx", circuit.CX(0, 1)},
		{"cz", circuit.CZ(0, 1)},
		{"reset", circuit.Reset(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := logical(t, 2, circuit.X(0), tt.gate)
			inst, err := Compile(c, 16)
			require.Nil(t, inst)
			require.ErrorIs(t, err, errs.ErrUnsupportedGate)
			require.Contains(t, err.Error(), "gate 1")
			require.NotEmpty(t, errs.Hints(err))
		})
	}
}

func TestCompile_RejectsMeasurement(t *testing.T) {
	c := circuit.MustNew(2)
	_, err := c.AddRegister("c", 1)
	require.NoError(t, err)
	require.NoError(t, c.Append(circuit.Measure(0, 0)))

	_, err = Compile(c, 16)
	require.ErrorIs(t, err, errs.ErrUnsupportedGate)
}

func TestCompile_InvalidParameters(t *testing.T) {
	_, err := Compile(logical(t, 2), 0)
	require.ErrorIs(t, err, errs.ErrInvalidParameter)

	_, err = New(WithSyndromeRate(-3))
	require.ErrorIs(t, err, errs.ErrInvalidParameter)

	_, err = Compile(circuit.MustNew(0), 16)
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
}

func TestCompile_Structure(t *testing.T) {
	tests := []struct {
		name       string
		k          int
		rate       int
		gates      []circuit.Gate
		wantN      int
		wantRounds int
	}{
		{"empty k=4", 4, 16, nil, 6, 1},
		{"odd k is padded", 3, 16, []circuit.Gate{circuit.X(2)}, 6, 2},
		{"rate 1 checks every layer", 2, 1,
			[]circuit.Gate{circuit.RX(0.1, 0), circuit.RZ(0.2, 1), circuit.RZZ(0.3, 0, 1)}, 4, 3},
		{"rate 2 over 5 layers", 2, 2,
			[]circuit.Gate{circuit.X(0), circuit.X(0), circuit.X(0), circuit.X(0), circuit.X(0)}, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := Compile(logical(t, tt.k, tt.gates...), tt.rate)
			require.NoError(t, err)

			require.Equal(t, tt.wantN+layout.NumFlagQubits, inst.NumQubits())
			require.Equal(t, tt.wantRounds, inst.Schedule().Len())

			regs := inst.Circuit().Registers()
			require.Len(t, regs, 1+tt.wantRounds)
			require.Equal(t, circuit.Register{Name: "data", Offset: 0, Size: tt.wantN}, regs[0])
			for r, reg := range inst.SyndromeRegisters() {
				require.Equal(t, fmt.Sprintf("syn%d", r), reg.Name)
				require.Equal(t, 2, reg.Size)
				require.Equal(t, tt.wantN+2*r, reg.Offset)
			}
			require.Equal(t, tt.wantN+2*tt.wantRounds, inst.NumClbits())

			ops := inst.Circuit().CountOps()
			require.Equal(t, tt.wantN+2*tt.wantRounds, ops[circuit.OpMeasure])
			require.Equal(t, 2*tt.wantRounds, ops[circuit.OpReset])
			require.Equal(t, 2*tt.wantRounds, ops[circuit.OpBarrier])
		})
	}
}

func TestCompile_GateCount(t *testing.T) {
	// prep (n) + rounds (2n+6 plus two barriers each) + readout (n) + translated gates
	inst, err := Compile(logical(t, 2, circuit.X(0), circuit.RZ(0.4, 1)), 16)
	require.NoError(t, err)

	n, rounds := 4, 2
	want := n + rounds*(2*n+8) + n + 2 + 1
	require.Equal(t, want, inst.NumGates())
}

func TestCompile_WithoutBarriers(t *testing.T) {
	c, err := New(WithSyndromeRate(1), WithBarriers(false))
	require.NoError(t, err)
	require.Equal(t, 1, c.SyndromeRate())

	inst, err := c.Compile(logical(t, 2, circuit.X(0)))
	require.NoError(t, err)
	require.Zero(t, inst.Circuit().CountOps()[circuit.OpBarrier])
}

func TestCompile_LogicalBarrierIsMapped(t *testing.T) {
	c, err := New(WithBarriers(false))
	require.NoError(t, err)

	inst, err := c.Compile(logical(t, 2, circuit.Barrier()))
	require.NoError(t, err)

	var found []circuit.Gate
	for _, g := range inst.Circuit().Gates() {
		if g.Op == circuit.OpBarrier {
			found = append(found, g)
		}
	}
	require.Equal(t, []circuit.Gate{circuit.Barrier(1, 2)}, found)
}

func TestCompile_Idempotent(t *testing.T) {
	c := logical(t, 3, circuit.RX(0.3, 0), circuit.RYY(0.4, 1, 2), circuit.Y(1))
	before := c.Gates()

	a, err := Compile(c, 1)
	require.NoError(t, err)
	b, err := Compile(c, 1)
	require.NoError(t, err)

	require.Equal(t, a.Circuit().Gates(), b.Circuit().Gates())
	require.Equal(t, a.Circuit().Registers(), b.Circuit().Registers())
	require.Equal(t, a.Metadata(), b.Metadata())
	require.Equal(t, before, c.Gates(), "input circuit must not change")
}

func TestCompile_NoiselessRunsPassEveryCheck(t *testing.T) {
	tests := []struct {
		name  string
		k     int
		rate  int
		gates []circuit.Gate
	}{
		{"identity", 4, 16, nil},
		{"paulis", 4, 1, []circuit.Gate{circuit.X(0), circuit.Y(1), circuit.Z(2), circuit.X(3)}},
		{"rotations", 3, 1, []circuit.Gate{
			circuit.RX(0.7, 0), circuit.RZ(1.1, 1), circuit.RXX(0.4, 0, 2),
			circuit.RYY(-0.9, 1, 2), circuit.RZZ(2.3, 0, 1),
		}},
	}

	s, err := sim.New(sim.WithSeed(11))
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := Compile(logical(t, tt.k, tt.gates...), tt.rate)
			require.NoError(t, err)

			res, err := s.Run(context.Background(), inst.Circuit(), 512)
			require.NoError(t, err)

			for key := range res.Counts() {
				fields := strings.Fields(key)
				require.Len(t, fields, 1+inst.Schedule().Len())
				for _, syn := range fields[:len(fields)-1] {
					require.Equal(t, "00", syn, "key %q", key)
				}
				data := fields[len(fields)-1]
				require.Len(t, data, inst.Layout().NumDataQubits())
				require.Zero(t, strings.Count(data, "1")%2, "odd data parity in %q", key)
			}
		})
	}
}

func TestCompile_XFlipsLogicalReadout(t *testing.T) {
	inst, err := Compile(logical(t, 4, circuit.X(0)), 16)
	require.NoError(t, err)

	s, err := sim.New(sim.WithSeed(3))
	require.NoError(t, err)
	res, err := s.Run(context.Background(), inst.Circuit(), 256)
	require.NoError(t, err)

	// data[j] is printed at position n-1-j; logical 0 is data[1] xor data[5]
	n := inst.Layout().NumDataQubits()
	for key := range res.Counts() {
		data := key[strings.LastIndexByte(key, ' ')+1:]
		bit := func(q int) byte { return data[n-1-q] }
		require.NotEqual(t, bit(1), bit(n-1))
		for q := 2; q <= 4; q++ {
			require.Equal(t, bit(q), bit(n-1))
		}
	}
}

func TestCompile_RotationStatistics(t *testing.T) {
	theta := math.Pi / 3
	inst, err := Compile(logical(t, 2, circuit.RX(theta, 1)), 16)
	require.NoError(t, err)

	s, err := sim.New(sim.WithSeed(5))
	require.NoError(t, err)
	res, err := s.Run(context.Background(), inst.Circuit(), 4000)
	require.NoError(t, err)

	flipped := 0
	for key, v := range res.Counts() {
		data := key[strings.LastIndexByte(key, ' ')+1:]
		n := len(data)
		if data[n-1-2] != data[0] {
			flipped += v
		}
	}
	want := math.Pow(math.Sin(theta/2), 2)
	assert.InDelta(t, want, float64(flipped)/4000, 0.03)
}

func TestMetadata(t *testing.T) {
	inst, err := Compile(logical(t, 5, circuit.X(0), circuit.X(0), circuit.X(0)), 2)
	require.NoError(t, err)

	md := inst.Metadata()
	require.Equal(t, 5, md.K)
	require.Equal(t, 2, md.SyndromeRate)
	require.Equal(t, 3, md.Layers)
	require.Equal(t, 3, md.Rounds)
	require.NoError(t, md.Validate())

	fresh, err := NewMetadata(5, 2, 3)
	require.NoError(t, err)
	require.Equal(t, md, fresh)

	l, s, err := md.Rebuild()
	require.NoError(t, err)
	require.Equal(t, inst.Layout(), l)
	require.Equal(t, inst.Schedule(), s)

	tampered := md
	tampered.Fingerprint++
	require.ErrorIs(t, tampered.Validate(), errs.ErrInvalidParameter)

	tampered = md
	tampered.Rounds = 7
	require.ErrorIs(t, tampered.Validate(), errs.ErrInvalidParameter)

	other, err := NewMetadata(4, 2, 3)
	require.NoError(t, err)
	require.NotEqual(t, md.Fingerprint, other.Fingerprint)
}

func TestAssemble_RejectsForeignCircuits(t *testing.T) {
	inst, err := Compile(logical(t, 2), 16)
	require.NoError(t, err)

	_, err = Assemble(circuit.MustNew(3), inst.Layout(), inst.Schedule())
	require.ErrorIs(t, err, errs.ErrMalformedInput)

	c := circuit.MustNew(inst.NumQubits())
	_, err = c.AddRegister("data", 4)
	require.NoError(t, err)
	_, err = c.AddRegister("syn1", 2)
	require.NoError(t, err)
	_, err = Assemble(c, inst.Layout(), inst.Schedule())
	require.ErrorIs(t, err, errs.ErrMalformedInput)

	again, err := Assemble(inst.Circuit(), inst.Layout(), inst.Schedule())
	require.NoError(t, err)
	require.Equal(t, inst.Metadata(), again.Metadata())
}
