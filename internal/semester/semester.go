// Package semester maps timestamps to configured academic-term labels.
package semester

import (
	"sort"
	"time"
)

// Interval is one configured academic term. Both bounds are inclusive.
type Interval struct {
	Label string
	Start time.Time
	End   time.Time
}

// Resolver answers which semester, if any, a timestamp falls into. It is pure
// and safe for concurrent use; the interval set is fixed at construction.
type Resolver struct {
	intervals []Interval
}

// NewResolver builds a resolver over the given intervals. Intervals are
// ordered by start instant ascending, ties broken by label, so that
// resolution is deterministic when intervals overlap: the interval with the
// earliest start wins.
func NewResolver(intervals []Interval) *Resolver {
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].Label < sorted[j].Label
	})
	return &Resolver{intervals: sorted}
}

// Resolve returns the label of the first interval containing now, inclusive
// on both bounds. The second return value is false when no interval matches;
// callers omit the semester rather than treating absence as an error.
func (r *Resolver) Resolve(now time.Time) (string, bool) {
	for _, interval := range r.intervals {
		if !now.Before(interval.Start) && !now.After(interval.End) {
			return interval.Label, true
		}
	}
	return "", false
}

// Intervals returns the configured intervals in resolution order.
func (r *Resolver) Intervals() []Interval {
	return r.intervals
}
