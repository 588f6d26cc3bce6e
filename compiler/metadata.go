package compiler

import (
	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/internal/hash"
	"github.com/arloliu/iceberg/layout"
	"github.com/arloliu/iceberg/schedule"
)

// Metadata is the compact description of an instrumented circuit that a decoder needs.
//
// Layout and schedule are pure functions of (K, SyndromeRate, Layers), so Metadata is
// enough to rebuild them; Fingerprint guards against mismatched parameters.
type Metadata struct {
	K            int
	SyndromeRate int
	Layers       int
	Rounds       int
	Fingerprint  uint64
}

// NewMetadata derives the metadata of a compile with the given parameters.
func NewMetadata(k, syndromeRate, layers int) (Metadata, error) {
	l, err := layout.Build(k)
	if err != nil {
		return Metadata{}, err
	}
	s, err := schedule.New(layers, syndromeRate)
	if err != nil {
		return Metadata{}, err
	}

	return metadataOf(l, s), nil
}

func metadataOf(l layout.Layout, s schedule.Schedule) Metadata {
	return Metadata{
		K:            l.K(),
		SyndromeRate: s.Rate(),
		Layers:       s.Layers(),
		Rounds:       s.Len(),
		Fingerprint:  fingerprint(l, s),
	}
}

func fingerprint(l layout.Layout, s schedule.Schedule) uint64 {
	return hash.NewFingerprint("iceberg/compile").
		Uint64(l.Fingerprint()).
		Uint64(s.Fingerprint()).
		Sum64()
}

// Rebuild reconstructs layout and schedule and checks them against the recorded round
// count and fingerprint.
//
// Returns:
//   - layout.Layout, schedule.Schedule: the reconstructed structures
//   - error: errs.ErrInvalidParameter if the parameters are invalid or the metadata does
//     not describe what the compiler would produce for them
func (m Metadata) Rebuild() (layout.Layout, schedule.Schedule, error) {
	l, err := layout.Build(m.K)
	if err != nil {
		return layout.Layout{}, schedule.Schedule{}, err
	}
	s, err := schedule.New(m.Layers, m.SyndromeRate)
	if err != nil {
		return layout.Layout{}, schedule.Schedule{}, err
	}
	if s.Len() != m.Rounds {
		return layout.Layout{}, schedule.Schedule{}, errs.InvalidParameter(
			"metadata records %d syndrome rounds, parameters produce %d", m.Rounds, s.Len())
	}
	if fp := fingerprint(l, s); fp != m.Fingerprint {
		return layout.Layout{}, schedule.Schedule{}, errs.InvalidParameter(
			"metadata fingerprint %016x does not match k=%d syndrome_rate=%d layers=%d (%016x)",
			m.Fingerprint, m.K, m.SyndromeRate, m.Layers, fp)
	}

	return l, s, nil
}

// Validate reports whether m is consistent with its own parameters.
func (m Metadata) Validate() error {
	_, _, err := m.Rebuild()
	return err
}
