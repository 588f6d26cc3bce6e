package sim

import (
	"context"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/iceberg/circuit"
	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/noise"
)

func measured(t *testing.T, n int, gates ...circuit.Gate) *circuit.Circuit {
	t.Helper()
	c := circuit.MustNew(n)
	_, err := c.AddRegister("c", n)
	require.NoError(t, err)
	require.NoError(t, c.Append(gates...))
	for q := range n {
		require.NoError(t, c.Append(circuit.Measure(q, q)))
	}

	return c
}

func run(t *testing.T, c *circuit.Circuit, shots int, opts ...Option) map[string]int {
	t.Helper()
	s, err := New(append([]Option{WithSeed(7)}, opts...)...)
	require.NoError(t, err)
	res, err := s.Run(context.Background(), c, shots)
	require.NoError(t, err)
	require.Equal(t, shots, res.Shots())

	return res.Counts()
}

func TestRun_Deterministic(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		gates []circuit.Gate
		want  string
	}{
		{"empty", 2, nil, "00"},
		{"x on qubit 0 is rightmost", 2, []circuit.Gate{circuit.X(0)}, "01"},
		{"y", 1, []circuit.Gate{circuit.Y(0)}, "1"},
		{"cx", 2, []circuit.Gate{circuit.X(0), circuit.CX(0, 1)}, "11"},
		{"rx pi", 1, []circuit.Gate{circuit.RX(math.Pi, 0)}, "1"},
		{"ry pi", 1, []circuit.Gate{circuit.RY(math.Pi, 0)}, "1"},
		{"rxx pi", 2, []circuit.Gate{circuit.RXX(math.Pi, 0, 1)}, "11"},
		{"ryy pi", 2, []circuit.Gate{circuit.RYY(math.Pi, 0, 1)}, "11"},
		{"rzz is diagonal", 2, []circuit.Gate{circuit.X(1), circuit.RZZ(1.3, 0, 1)}, "10"},
		{"hzh flips", 1, []circuit.Gate{circuit.H(0), circuit.Z(0), circuit.H(0)}, "1"},
		{"hsssh flips", 1, []circuit.Gate{circuit.H(0), circuit.S(0), circuit.S(0), circuit.H(0)}, "1"},
		{"reset clears", 1, []circuit.Gate{circuit.X(0), circuit.Reset(0)}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := run(t, measured(t, tt.n, tt.gates...), 64)
			require.Equal(t, map[string]int{tt.want: 64}, counts)
		})
	}
}

func TestRun_BellStatistics(t *testing.T) {
	counts := run(t, measured(t, 2, circuit.H(0), circuit.CX(0, 1)), 4000)
	require.Len(t, counts, 2)
	assert.InDelta(t, 2000, counts["00"], 200)
	assert.InDelta(t, 2000, counts["11"], 200)
}

func TestRun_InverseReturnsToZero(t *testing.T) {
	c := circuit.MustNew(3)
	require.NoError(t, c.Append(
		circuit.H(0), circuit.T(0), circuit.RX(0.3, 1), circuit.RYY(0.7, 1, 2),
		circuit.CZ(0, 2), circuit.RZ(1.1, 2), circuit.RXX(-0.4, 0, 1), circuit.Sdg(1),
		circuit.RY(2.2, 0), circuit.RZZ(0.9, 0, 2), circuit.CX(2, 1),
	))
	inv, err := c.Inverse()
	require.NoError(t, err)
	require.NoError(t, c.Compose(inv))

	full := measured(t, 3, c.Gates()...)
	require.Equal(t, map[string]int{"000": 128}, run(t, full, 128))
}

func TestRun_Reproducible(t *testing.T) {
	m, err := noise.Uniform(0.05)
	require.NoError(t, err)
	c := measured(t, 3, circuit.H(0), circuit.CX(0, 1), circuit.CX(1, 2))

	a := run(t, c, 1000, WithNoise(m), WithBatchSize(64), WithParallelism(4))
	b := run(t, c, 1000, WithNoise(m), WithBatchSize(64), WithParallelism(1))
	require.Equal(t, a, b)
}

func TestRun_NoiseProducesErrors(t *testing.T) {
	m, err := noise.Parametric(0, 0, 0.5)
	require.NoError(t, err)
	counts := run(t, measured(t, 1), 2000, WithNoise(m))
	assert.InDelta(t, 1000, counts["1"], 150)
}

func TestRun_ZeroShots(t *testing.T) {
	require.Empty(t, run(t, measured(t, 1), 0))
}

func TestRun_Errors(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	_, err = s.Run(context.Background(), circuit.MustNew(1), -1)
	require.ErrorIs(t, err, errs.ErrInvalidParameter)

	_, err = s.Run(context.Background(), circuit.MustNew(MaxQubits+1), 1)
	require.ErrorIs(t, err, errs.ErrInvalidParameter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Run(ctx, measured(t, 1), 10)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(WithBatchSize(0))
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
	_, err = New(WithParallelism(0))
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
	_, err = New(WithNoise(noise.Model{TwoQubit: 2}))
	require.ErrorIs(t, err, errs.ErrInvalidParameter)
}

func TestState_RotationsAreUnitary(t *testing.T) {
	st := newState(2)
	st.gate(circuit.H(0))
	st.gate(circuit.RYY(0.8, 0, 1))
	st.gate(circuit.RXX(1.9, 1, 0))
	st.gate(circuit.RZZ(-0.6, 0, 1))

	norm := 0.0
	for _, a := range st.amp {
		norm += real(a)*real(a) + imag(a)*imag(a)
	}
	require.InDelta(t, 1, norm, 1e-12)
}

func TestState_RYYMatchesDefinition(t *testing.T) {
	// exp(-iθ/2 YY)|00⟩ = cos(θ/2)|00⟩ + i sin(θ/2)|11⟩
	theta := 0.9
	st := newState(2)
	st.gate(circuit.RYY(theta, 0, 1))

	require.InDelta(t, 0, cmplx.Abs(st.amp[0]-complex(math.Cos(theta/2), 0)), 1e-12)
	require.InDelta(t, 0, cmplx.Abs(st.amp[3]-complex(0, math.Sin(theta/2))), 1e-12)
	require.InDelta(t, 0, cmplx.Abs(st.amp[1]), 1e-12)
	require.InDelta(t, 0, cmplx.Abs(st.amp[2]), 1e-12)
}
