// Package schedule decides where syndrome rounds are inserted into a compiled circuit.
//
// Positions are logical layer boundaries: position p means "after the first p layers of the
// logical circuit". For a circuit with L layers and syndrome rate r the positions are
//
//	0, r, 2r, ... (< L), L
//
// Position 0 verifies the freshly prepared code state and position L is the terminal round
// that immediately precedes the logical readout, even when L is not a multiple of r.
package schedule

import (
	"slices"

	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/internal/hash"
)

// DefaultRate is the default number of logical layers between syndrome rounds.
const DefaultRate = 16

// Schedule is an immutable, strictly increasing list of syndrome round positions.
type Schedule struct {
	layers    int
	rate      int
	positions []int
}

// New computes the schedule for a circuit of the given layer count.
//
// Parameters:
//   - layers: number of logical layers (>= 0)
//   - rate: layers between consecutive syndrome rounds (>= 1)
//
// Returns:
//   - Schedule: the round positions
//   - error: errs.ErrInvalidParameter for a negative layer count or a rate below 1
func New(layers, rate int) (Schedule, error) {
	if rate < 1 {
		return Schedule{}, errs.InvalidParameter("syndrome rate must be >= 1, got %d", rate)
	}
	if layers < 0 {
		return Schedule{}, errs.InvalidParameter("circuit length must be >= 0, got %d", layers)
	}

	positions := make([]int, 0, Rounds(layers, rate))
	for p := 0; p < layers; p += rate {
		positions = append(positions, p)
	}
	positions = append(positions, layers)

	return Schedule{layers: layers, rate: rate, positions: positions}, nil
}

// Rounds returns the number of syndrome rounds New(layers, rate) produces, without
// validating its arguments.
func Rounds(layers, rate int) int {
	if layers <= 0 || rate <= 0 {
		return 1
	}

	return (layers-1)/rate + 2
}

// Layers returns the logical layer count the schedule was built for.
func (s Schedule) Layers() int { return s.layers }

// Rate returns the syndrome rate.
func (s Schedule) Rate() int { return s.rate }

// Len returns the number of syndrome rounds.
func (s Schedule) Len() int { return len(s.positions) }

// Positions returns the round positions in increasing order.
func (s Schedule) Positions() []int { return slices.Clone(s.positions) }

// Final returns the position of the terminal round, which equals Layers.
func (s Schedule) Final() int { return s.positions[len(s.positions)-1] }

// Contains reports whether a round is inserted after the first p layers.
func (s Schedule) Contains(p int) bool {
	_, found := slices.BinarySearch(s.positions, p)
	return found
}

// Round returns the index of the round at position p, or -1 if there is none.
func (s Schedule) Round(p int) int {
	i, found := slices.BinarySearch(s.positions, p)
	if !found {
		return -1
	}

	return i
}

// Fingerprint returns a stable digest of the schedule.
func (s Schedule) Fingerprint() uint64 {
	return hash.NewFingerprint("iceberg/schedule").
		Int(s.layers).
		Int(s.rate).
		Ints(s.positions).
		Sum64()
}
