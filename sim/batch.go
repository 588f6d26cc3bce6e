package sim

import (
	"math/rand/v2"

	"github.com/arloliu/iceberg/circuit"
	"github.com/arloliu/iceberg/internal/pool"
)

// batchStream derives the PCG stream of a batch; the constant decorrelates neighbouring
// batch indices.
const batchStream = 0x9e3779b97f4a7c15

func (s *Simulator) runBatch(circ *circuit.Circuit, gates []circuit.Gate, batch uint64, shots int) (map[string]int, error) {
	rng := rand.New(rand.NewPCG(s.cfg.seed, batchStream^(batch*0xbf58476d1ce4e5b9)))
	amp, releaseAmp := pool.GetComplexSlice(1 << circ.NumQubits())
	defer releaseAmp()
	bits, releaseBits := pool.GetByteSlice(circ.NumClbits())
	defer releaseBits()

	st := &state{n: circ.NumQubits(), amp: amp}
	counts := make(map[string]int)

	for range shots {
		st.reset()
		clear(bits)
		s.shot(st, gates, bits, rng)

		key, err := circ.FormatOutcome(bits)
		if err != nil {
			return nil, err
		}
		counts[key]++
	}

	return counts, nil
}

// shot runs the gate list once, writing measurement results into bits.
func (s *Simulator) shot(st *state, gates []circuit.Gate, bits []uint8, rng *rand.Rand) {
	m := s.cfg.noise
	for _, g := range gates {
		switch g.Op {
		case circuit.OpBarrier:
		case circuit.OpMeasure:
			b := st.measure(g.Qubits[0], rng)
			if m.ReadoutFlip(rng) {
				b ^= 1
			}
			bits[g.Clbit] = b
		case circuit.OpReset:
			if st.measure(g.Qubits[0], rng) == 1 {
				st.x(g.Qubits[0])
			}
			st.pauli(g.Qubits[0], m.ResetError(rng))
		default:
			st.gate(g)
			switch len(g.Qubits) {
			case 1:
				st.pauli(g.Qubits[0], m.SingleQubitError(rng))
			case 2:
				pa, pb := m.TwoQubitError(rng)
				st.pauli(g.Qubits[0], pa)
				st.pauli(g.Qubits[1], pb)
			}
		}
	}
}
