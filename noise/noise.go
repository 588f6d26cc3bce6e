// Package noise describes the Pauli noise applied by the simulator.
//
// The model is the one used to benchmark Iceberg circuits: every single-qubit gate is
// followed by a uniformly random X, Y or Z with probability SingleQubit, every two-qubit
// gate by one of the 15 non-identity two-qubit Paulis with probability TwoQubit, and
// measurements and resets fail with probability Measure.
package noise

import (
	"math/rand/v2"

	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/layout"
)

// Model holds the error probabilities of each operation kind.
type Model struct {
	SingleQubit float64 `yaml:"single_qubit"`
	TwoQubit    float64 `yaml:"two_qubit"`
	Measure     float64 `yaml:"measure"`
}

// Ideal is the noiseless model.
var Ideal = Model{}

// Uniform returns a model with the same error rate p for every operation kind.
func Uniform(p float64) (Model, error) {
	return Parametric(p, p, p)
}

// Parametric returns a model with separate single-qubit, two-qubit and measurement rates.
func Parametric(p1, p2, pm float64) (Model, error) {
	m := Model{SingleQubit: p1, TwoQubit: p2, Measure: pm}
	if err := m.Validate(); err != nil {
		return Model{}, err
	}

	return m, nil
}

// Validate checks that every rate is a probability.
func (m Model) Validate() error {
	for _, r := range []struct {
		name string
		p    float64
	}{
		{"single-qubit", m.SingleQubit},
		{"two-qubit", m.TwoQubit},
		{"measurement", m.Measure},
	} {
		// the negated form also rejects NaN
		if !(r.p >= 0 && r.p <= 1) {
			return errs.InvalidParameter("%s error rate must be in [0, 1], got %v", r.name, r.p)
		}
	}

	return nil
}

// IsIdeal reports whether the model never injects an error.
func (m Model) IsIdeal() bool {
	return m.SingleQubit == 0 && m.TwoQubit == 0 && m.Measure == 0
}

var singlePaulis = [3]layout.Pauli{layout.PauliX, layout.PauliY, layout.PauliZ}

// SingleQubitError samples the Pauli applied after a single-qubit gate.
// It returns layout.PauliI when no error occurs.
func (m Model) SingleQubitError(rng *rand.Rand) layout.Pauli {
	return sampleSingle(rng, m.SingleQubit)
}

// TwoQubitError samples the Pauli pair applied after a two-qubit gate.
// At least one of the pair is non-identity when an error occurs.
func (m Model) TwoQubitError(rng *rand.Rand) (layout.Pauli, layout.Pauli) {
	if m.TwoQubit == 0 || rng.Float64() >= m.TwoQubit {
		return layout.PauliI, layout.PauliI
	}
	// 1..15 indexes the non-identity elements of {I,X,Y,Z}^2.
	idx := 1 + rng.IntN(15)

	return layout.Pauli(idx / 4), layout.Pauli(idx % 4)
}

// ReadoutFlip reports whether a measurement result is recorded flipped.
func (m Model) ReadoutFlip(rng *rand.Rand) bool {
	return m.Measure != 0 && rng.Float64() < m.Measure
}

// ResetError samples the Pauli applied after a reset.
func (m Model) ResetError(rng *rand.Rand) layout.Pauli {
	return sampleSingle(rng, m.Measure)
}

func sampleSingle(rng *rand.Rand, p float64) layout.Pauli {
	if p == 0 || rng.Float64() >= p {
		return layout.PauliI
	}

	return singlePaulis[rng.IntN(len(singlePaulis))]
}
