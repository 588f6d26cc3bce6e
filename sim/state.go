package sim

import (
	"math"
	"math/cmplx"
	"math/rand/v2"

	"github.com/arloliu/iceberg/circuit"
	"github.com/arloliu/iceberg/layout"
)

// state is a dense state vector over n qubits; qubit q is bit q of the amplitude index.
type state struct {
	n   int
	amp []complex128
}

func newState(n int) *state {
	s := &state{n: n, amp: make([]complex128, 1<<n)}
	s.reset()

	return s
}

// reset returns the register to |0...0⟩.
func (s *state) reset() {
	clear(s.amp)
	s.amp[0] = 1
}

// apply1 applies the 2x2 matrix [[a, b], [c, d]] to qubit q.
func (s *state) apply1(q int, a, b, c, d complex128) {
	m := 1 << q
	for j := range s.amp {
		if j&m != 0 {
			continue
		}
		a0, a1 := s.amp[j], s.amp[j|m]
		s.amp[j] = a*a0 + b*a1
		s.amp[j|m] = c*a0 + d*a1
	}
}

// phase multiplies the amplitudes with qubit q set by p.
func (s *state) phase(q int, p complex128) {
	m := 1 << q
	for j := range s.amp {
		if j&m != 0 {
			s.amp[j] *= p
		}
	}
}

func (s *state) x(q int) {
	m := 1 << q
	for j := range s.amp {
		if j&m == 0 {
			s.amp[j], s.amp[j|m] = s.amp[j|m], s.amp[j]
		}
	}
}

func (s *state) y(q int) {
	m := 1 << q
	for j := range s.amp {
		if j&m == 0 {
			a0, a1 := s.amp[j], s.amp[j|m]
			s.amp[j] = -1i * a1
			s.amp[j|m] = 1i * a0
		}
	}
}

func (s *state) z(q int) { s.phase(q, -1) }

func (s *state) pauli(q int, p layout.Pauli) {
	switch p {
	case layout.PauliX:
		s.x(q)
	case layout.PauliY:
		s.y(q)
	case layout.PauliZ:
		s.z(q)
	case layout.PauliI:
	}
}

func (s *state) cx(c, t int) {
	mc, mt := 1<<c, 1<<t
	for j := range s.amp {
		if j&mc != 0 && j&mt == 0 {
			s.amp[j], s.amp[j|mt] = s.amp[j|mt], s.amp[j]
		}
	}
}

func (s *state) cz(a, b int) {
	m := 1<<a | 1<<b
	for j := range s.amp {
		if j&m == m {
			s.amp[j] = -s.amp[j]
		}
	}
}

// rpp applies exp(-iθ/2 P⊗P) for P = X or Y on qubits a and b.
func (s *state) rpp(p layout.Pauli, theta float64, a, b int) {
	c := complex(math.Cos(theta/2), 0)
	is := complex(0, math.Sin(theta/2))
	ma, mb := 1<<a, 1<<b
	mask := ma | mb
	for j := range s.amp {
		if j&ma != 0 {
			continue
		}
		k := j ^ mask
		// Y⊗Y picks up -1 on |00⟩,|11⟩ and +1 on |01⟩,|10⟩; X⊗X never does.
		sign := complex(1, 0)
		if p == layout.PauliY && (j&mb == 0) {
			sign = -1
		}
		aj, ak := s.amp[j], s.amp[k]
		s.amp[j] = c*aj - is*sign*ak
		s.amp[k] = c*ak - is*sign*aj
	}
}

// rzz applies exp(-iθ/2 Z⊗Z) on qubits a and b.
func (s *state) rzz(theta float64, a, b int) {
	even := cmplx.Exp(complex(0, -theta/2))
	odd := cmplx.Exp(complex(0, theta/2))
	ma, mb := 1<<a, 1<<b
	for j := range s.amp {
		if (j&ma != 0) == (j&mb != 0) {
			s.amp[j] *= even
		} else {
			s.amp[j] *= odd
		}
	}
}

// measure samples qubit q in the Z basis and collapses the state.
func (s *state) measure(q int, rng *rand.Rand) uint8 {
	m := 1 << q
	p1 := 0.0
	for j, a := range s.amp {
		if j&m != 0 {
			p1 += real(a)*real(a) + imag(a)*imag(a)
		}
	}

	var outcome uint8
	norm := 1 - p1
	if rng.Float64() < p1 {
		outcome, norm = 1, p1
	}
	scale := complex(1/math.Sqrt(norm), 0)
	for j := range s.amp {
		if (j&m != 0) == (outcome == 1) {
			s.amp[j] *= scale
		} else {
			s.amp[j] = 0
		}
	}

	return outcome
}

// gate applies a unitary gate. Measure, reset and barrier are handled by the caller.
func (s *state) gate(g circuit.Gate) {
	q := g.Qubits
	switch g.Op {
	case circuit.OpI, circuit.OpBarrier, circuit.OpMeasure, circuit.OpReset:
	case circuit.OpX:
		s.x(q[0])
	case circuit.OpY:
		s.y(q[0])
	case circuit.OpZ:
		s.z(q[0])
	case circuit.OpH:
		h := complex(1/math.Sqrt2, 0)
		s.apply1(q[0], h, h, h, -h)
	case circuit.OpS:
		s.phase(q[0], 1i)
	case circuit.OpSdg:
		s.phase(q[0], -1i)
	case circuit.OpT:
		s.phase(q[0], cmplx.Exp(complex(0, math.Pi/4)))
	case circuit.OpTdg:
		s.phase(q[0], cmplx.Exp(complex(0, -math.Pi/4)))
	case circuit.OpRX:
		c, is := complex(math.Cos(g.Params[0]/2), 0), complex(0, math.Sin(g.Params[0]/2))
		s.apply1(q[0], c, -is, -is, c)
	case circuit.OpRY:
		c, sn := complex(math.Cos(g.Params[0]/2), 0), complex(math.Sin(g.Params[0]/2), 0)
		s.apply1(q[0], c, -sn, sn, c)
	case circuit.OpRZ:
		s.apply1(q[0], cmplx.Exp(complex(0, -g.Params[0]/2)), 0, 0, cmplx.Exp(complex(0, g.Params[0]/2)))
	case circuit.OpCX:
		s.cx(q[0], q[1])
	case circuit.OpCZ:
		s.cz(q[0], q[1])
	case circuit.OpRXX:
		s.rpp(layout.PauliX, g.Params[0], q[0], q[1])
	case circuit.OpRYY:
		s.rpp(layout.PauliY, g.Params[0], q[0], q[1])
	case circuit.OpRZZ:
		s.rzz(g.Params[0], q[0], q[1])
	}
}
