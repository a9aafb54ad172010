package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Monday 2025-06-02 09:00 UTC as a stable reference week.
var monday = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func newTestFinder() *Finder {
	return NewFinder(DefaultOptions())
}

func TestFindSlotsReturnsUpToMaxResults(t *testing.T) {
	f := newTestFinder()

	sendAt := monday
	found := f.FindSlots(sendAt, sendAt, sendAt.AddDate(0, 0, 7), nil)

	assert.Len(t, found, 3)
	for _, s := range found {
		assert.Equal(t, 30*time.Minute, s.End.Sub(s.Start))
		assert.NotEmpty(t, s.Label)
	}
}

func TestFindSlotsHonorsMinimumLead(t *testing.T) {
	f := newTestFinder()

	sendAt := monday
	found := f.FindSlots(sendAt, sendAt, sendAt.AddDate(0, 0, 7), nil)

	assert.NotEmpty(t, found)
	for _, s := range found {
		assert.False(t, s.Start.Before(sendAt.Add(150*time.Minute)),
			"slot %s starts inside the minimum lead", s.Label)
	}
}

func TestFindSlotsStaysWithinBusinessHours(t *testing.T) {
	f := newTestFinder()

	// Send late in the day so the lead pushes candidates past closing.
	sendAt := time.Date(2025, 6, 2, 16, 0, 0, 0, time.UTC)
	found := f.FindSlots(sendAt, sendAt, sendAt.AddDate(0, 0, 7), nil)

	assert.NotEmpty(t, found)
	for _, s := range found {
		assert.GreaterOrEqual(t, s.Start.Hour(), 9)
		assert.True(t, s.End.Hour() < 17 || (s.End.Hour() == 17 && s.End.Minute() == 0))
	}
}

func TestFindSlotsSkipsWeekends(t *testing.T) {
	f := newTestFinder()

	// Friday afternoon: the lead lands candidates on Saturday unless the
	// finder skips non-working days.
	friday := time.Date(2025, 6, 6, 15, 0, 0, 0, time.UTC)
	found := f.FindSlots(friday, friday, friday.AddDate(0, 0, 7), nil)

	assert.NotEmpty(t, found)
	for _, s := range found {
		assert.NotEqual(t, time.Saturday, s.Start.Weekday())
		assert.NotEqual(t, time.Sunday, s.Start.Weekday())
	}
}

func TestFindSlotsAvoidsBusyIntervals(t *testing.T) {
	f := newTestFinder()

	sendAt := monday
	// Block out Monday and Tuesday working hours entirely.
	busy := []Interval{
		{Start: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
		{Start: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)},
	}

	found := f.FindSlots(sendAt, sendAt, sendAt.AddDate(0, 0, 7), busy)

	assert.NotEmpty(t, found)
	for _, s := range found {
		for _, b := range busy {
			overlaps := s.Start.Before(b.End) && s.End.After(b.Start)
			assert.False(t, overlaps, "slot %s overlaps busy interval", s.Label)
		}
	}
}

func TestFindSlotsBackToBackMeetingsAllowed(t *testing.T) {
	f := newTestFinder()

	sendAt := monday
	// Busy 10:00-10:30; a slot ending exactly at 10:00 or starting exactly at
	// 10:30 must still be offered.
	busy := []Interval{
		{Start: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)},
	}

	raw := f.collectCandidates(sendAt.Add(-3*time.Hour), sendAt, sendAt.Add(8*time.Hour), busy)

	var at1030 bool
	for _, c := range raw {
		assert.False(t, c.Equal(time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)))
		if c.Equal(time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)) {
			at1030 = true
		}
	}
	assert.True(t, at1030, "slot starting at the end of a busy interval should be offered")
}

func TestFindSlotsSpreadsAcrossDays(t *testing.T) {
	f := newTestFinder()

	sendAt := monday
	found := f.FindSlots(sendAt, sendAt, sendAt.AddDate(0, 0, 7), nil)

	assert.Len(t, found, 3)
	days := make(map[string]bool)
	for _, s := range found {
		days[s.Start.Format("2006-01-02")] = true
	}
	assert.Len(t, days, 3, "a week-wide free calendar should yield one slot per day")
}

func TestFindSlotsSpreadReachesLaterDays(t *testing.T) {
	// Five results over a free week must land on five distinct days, which
	// requires scanning past the first couple of days of raw candidates.
	opts := DefaultOptions()
	opts.MaxResults = 5
	f := NewFinder(opts)

	sendAt := monday
	found := f.FindSlots(sendAt, sendAt, sendAt.AddDate(0, 0, 7), nil)

	assert.Len(t, found, 5)
	days := make(map[string]bool)
	for _, s := range found {
		days[s.Start.Format("2006-01-02")] = true
	}
	assert.Len(t, days, 5)
}

func TestFindSlotsSingleFreeDayLimitsAdjacency(t *testing.T) {
	f := newTestFinder()

	// Only Wednesday morning is free; everything else in the window is busy.
	sendAt := monday
	free := time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)
	busy := []Interval{
		{Start: sendAt, End: free},
		{Start: free.Add(3 * time.Hour), End: sendAt.AddDate(0, 0, 7)},
	}

	found := f.FindSlots(sendAt, sendAt, sendAt.AddDate(0, 0, 7), busy)

	assert.Len(t, found, 3)
	adjacent := 0
	for i := 0; i < len(found); i++ {
		for j := i + 1; j < len(found); j++ {
			if found[i].End.Equal(found[j].Start) || found[j].End.Equal(found[i].Start) {
				adjacent++
			}
		}
	}
	assert.LessOrEqual(t, adjacent, 1, "at most one back-to-back pair per day")
}

func TestFindSlotsFullyBookedWindow(t *testing.T) {
	f := newTestFinder()

	sendAt := monday
	busy := []Interval{{Start: sendAt.Add(-24 * time.Hour), End: sendAt.AddDate(0, 0, 8)}}

	found := f.FindSlots(sendAt, sendAt, sendAt.AddDate(0, 0, 7), busy)
	assert.Empty(t, found)
}

func TestFindSlotsAreSorted(t *testing.T) {
	f := newTestFinder()

	sendAt := monday
	found := f.FindSlots(sendAt, sendAt, sendAt.AddDate(0, 0, 7), nil)

	for i := 1; i < len(found); i++ {
		assert.True(t, found[i-1].Start.Before(found[i].Start))
	}
}

func TestRoundUp(t *testing.T) {
	step := 30 * time.Minute

	exact := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, exact, roundUp(exact, step))

	mid := time.Date(2025, 6, 2, 10, 7, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC), roundUp(mid, step))
}

func TestFormatLabel(t *testing.T) {
	start := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	label := formatLabel(start, start.Add(30*time.Minute))
	assert.Equal(t, "Monday, Jun 2 at 3:00 PM - 3:30 PM", label)
}
