package decoder

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// resultPreview is the number of logical outcomes shown by Result.String.
const resultPreview = 3

// Result holds the post-selected logical counts of one decode.
type Result struct {
	k        int
	counts   map[string]int
	accepted int
	rejected int
	rounds   int
}

// K returns the logical qubit count.
func (r *Result) K() int { return r.k }

// Counts returns a copy of the accepted logical counts, keyed by k-bit strings with logical
// qubit 0 rightmost.
func (r *Result) Counts() map[string]int { return maps.Clone(r.counts) }

// AcceptedShots returns the number of shots that passed every check.
func (r *Result) AcceptedShots() int { return r.accepted }

// RejectedShots returns the number of discarded shots.
func (r *Result) RejectedShots() int { return r.rejected }

// Shots returns accepted plus rejected shots.
func (r *Result) Shots() int { return r.accepted + r.rejected }

// SyndromeRounds returns the number of syndrome rounds per shot, or -1 if unknown because
// there were no outcomes and none were pinned.
func (r *Result) SyndromeRounds() int { return r.rounds }

// AcceptanceRate returns accepted / total shots, 0 when there were no shots.
func (r *Result) AcceptanceRate() float64 {
	if r.Shots() == 0 {
		return 0
	}

	return float64(r.accepted) / float64(r.Shots())
}

// Probabilities returns the accepted logical distribution. It is empty when no shot was
// accepted.
func (r *Result) Probabilities() map[string]float64 {
	probs := make(map[string]float64, len(r.counts))
	if r.accepted == 0 {
		return probs
	}
	for k, v := range r.counts {
		probs[k] = float64(v) / float64(r.accepted)
	}

	return probs
}

// MostFrequent returns the accepted logical outcomes ordered by count, ties broken by key.
func (r *Result) MostFrequent() []string {
	keys := slices.Collect(maps.Keys(r.counts))
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(r.counts[b], r.counts[a]); c != 0 {
			return c
		}

		return strings.Compare(a, b)
	})

	return keys
}

func (r *Result) String() string {
	var sb strings.Builder
	keys := r.MostFrequent()
	for i, k := range keys[:min(len(keys), resultPreview)] {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %d", k, r.counts[k])
	}
	if len(keys) > resultPreview {
		sb.WriteString(", ...")
	}

	return fmt.Sprintf("Result(shots=%d, acceptance_rate=%.4f, rejected=%d, counts={%s})",
		r.Shots(), r.AcceptanceRate(), r.rejected, sb.String())
}
