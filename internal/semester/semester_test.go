package semester

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestResolve(t *testing.T) {
	spring := Interval{
		Label: "spring2024",
		Start: mustParse(t, "2024-01-01T00:00:00Z"),
		End:   mustParse(t, "2024-05-15T23:59:59Z"),
	}
	fall := Interval{
		Label: "fall2024",
		Start: mustParse(t, "2024-08-26T00:00:00Z"),
		End:   mustParse(t, "2024-12-20T23:59:59Z"),
	}
	resolver := NewResolver([]Interval{fall, spring})

	tests := []struct {
		name      string
		now       string
		wantLabel string
		wantOK    bool
	}{
		{"start bound is inclusive", "2024-01-01T00:00:00Z", "spring2024", true},
		{"end bound is inclusive", "2024-05-15T23:59:59Z", "spring2024", true},
		{"just past the end", "2024-05-16T00:00:01Z", "", false},
		{"inside the second interval", "2024-10-01T12:00:00Z", "fall2024", true},
		{"between semesters", "2024-06-15T00:00:00Z", "", false},
		{"before any interval", "2023-12-31T23:59:59Z", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := resolver.Resolve(mustParse(t, tt.now))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}

func TestResolveOverlapIsDeterministic(t *testing.T) {
	earlier := Interval{
		Label: "summer2024",
		Start: mustParse(t, "2024-05-01T00:00:00Z"),
		End:   mustParse(t, "2024-08-15T23:59:59Z"),
	}
	later := Interval{
		Label: "fall2024",
		Start: mustParse(t, "2024-08-01T00:00:00Z"),
		End:   mustParse(t, "2024-12-20T23:59:59Z"),
	}
	inOverlap := mustParse(t, "2024-08-10T09:00:00Z")

	// The earliest-start interval wins regardless of configuration order.
	for name, intervals := range map[string][]Interval{
		"earlier first": {earlier, later},
		"later first":   {later, earlier},
	} {
		resolver := NewResolver(intervals)
		label, ok := resolver.Resolve(inOverlap)
		assert.True(t, ok, name)
		assert.Equal(t, "summer2024", label, name)
	}
}

func TestResolveIdenticalStartsBreakTiesByLabel(t *testing.T) {
	a := Interval{
		Label: "sectionA",
		Start: mustParse(t, "2024-01-01T00:00:00Z"),
		End:   mustParse(t, "2024-05-15T23:59:59Z"),
	}
	b := Interval{
		Label: "sectionB",
		Start: mustParse(t, "2024-01-01T00:00:00Z"),
		End:   mustParse(t, "2024-05-15T23:59:59Z"),
	}
	resolver := NewResolver([]Interval{b, a})
	label, ok := resolver.Resolve(mustParse(t, "2024-03-01T00:00:00Z"))
	assert.True(t, ok)
	assert.Equal(t, "sectionA", label)
}

func TestIntervalsReturnsResolutionOrder(t *testing.T) {
	spring := Interval{
		Label: "spring2024",
		Start: mustParse(t, "2024-01-01T00:00:00Z"),
		End:   mustParse(t, "2024-05-15T23:59:59Z"),
	}
	fall := Interval{
		Label: "fall2024",
		Start: mustParse(t, "2024-08-26T00:00:00Z"),
		End:   mustParse(t, "2024-12-20T23:59:59Z"),
	}
	resolver := NewResolver([]Interval{fall, spring})

	intervals := resolver.Intervals()
	require.Len(t, intervals, 2)
	assert.Equal(t, "spring2024", intervals[0].Label)
	assert.Equal(t, "fall2024", intervals[1].Label)
}

func TestResolveNoIntervals(t *testing.T) {
	resolver := NewResolver(nil)
	label, ok := resolver.Resolve(time.Now())
	assert.False(t, ok)
	assert.Empty(t, label)
}
