package slots

import (
	"fmt"
	"sort"
	"time"

	"meetingbot/internal/model"
)

// Interval is an externally reported occupied time range on a calendar.
// Intervals are half-open: [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Options controls how candidate meeting slots are searched.
type Options struct {
	BusinessStartHour int
	BusinessEndHour   int
	WorkingDays       map[time.Weekday]bool
	SlotDuration      time.Duration
	Step              time.Duration
	MaxResults        int
	// MinLead is the minimum gap between the reference send time and the
	// earliest proposed slot, so a just-sent email never proposes an
	// already-past or immediate time.
	MinLead time.Duration
}

// DefaultOptions returns the standard 09:00-17:00 Mon-Fri search with
// 30 minute slots and a 2.5 hour lead.
func DefaultOptions() Options {
	return Options{
		BusinessStartHour: 9,
		BusinessEndHour:   17,
		WorkingDays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
		SlotDuration: 30 * time.Minute,
		Step:         30 * time.Minute,
		MaxResults:   3,
		MinLead:      150 * time.Minute,
	}
}

// Finder proposes non-conflicting, spaced-out candidate meeting slots.
type Finder struct {
	opts Options
}

func NewFinder(opts Options) *Finder {
	if opts.SlotDuration <= 0 {
		opts.SlotDuration = 30 * time.Minute
	}
	if opts.Step <= 0 {
		opts.Step = 30 * time.Minute
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 3
	}
	if opts.WorkingDays == nil {
		opts.WorkingDays = DefaultOptions().WorkingDays
	}
	if opts.BusinessEndHour <= opts.BusinessStartHour {
		opts.BusinessStartHour = 9
		opts.BusinessEndHour = 17
	}
	return &Finder{opts: opts}
}

// FindSlots scans [minStart, maxEnd] in fixed ticks and returns up to
// MaxResults non-overlapping slots on working days within business hours,
// all starting at least MinLead after sendAt. An empty result means no
// availability, not an error.
func (f *Finder) FindSlots(sendAt, minStart, maxEnd time.Time, busy []Interval) []model.TimeSlot {
	raw := f.collectCandidates(sendAt, minStart, maxEnd, busy)
	if len(raw) == 0 {
		return nil
	}
	picked := f.spread(raw)

	out := make([]model.TimeSlot, 0, len(picked))
	for _, c := range picked {
		out = append(out, model.TimeSlot{
			Start: c,
			End:   c.Add(f.opts.SlotDuration),
			Label: formatLabel(c, c.Add(f.opts.SlotDuration)),
		})
	}
	return out
}

func (f *Finder) collectCandidates(sendAt, minStart, maxEnd time.Time, busy []Interval) []time.Time {
	earliest := minStart
	if lead := sendAt.Add(f.opts.MinLead); lead.After(earliest) {
		earliest = lead
	}
	tick := roundUp(earliest, f.opts.Step)

	// Scan until candidates from MaxResults distinct days are in hand, so
	// the spread pass always sees enough days for one-per-day picks. Extra
	// same-day candidates only matter when the window has fewer days.
	days := make(map[string]bool)

	var raw []time.Time
	for !tick.Add(f.opts.SlotDuration).After(maxEnd) {
		next := tick.Add(f.opts.Step)
		if !f.opts.WorkingDays[tick.Weekday()] {
			tick = next
			continue
		}
		if !f.withinBusinessHours(tick) {
			tick = next
			continue
		}
		if !overlapsAny(tick, tick.Add(f.opts.SlotDuration), busy) {
			day := tick.Format("2006-01-02")
			if len(days) >= f.opts.MaxResults && !days[day] {
				break
			}
			days[day] = true
			raw = append(raw, tick)
		}
		tick = next
	}
	return raw
}

func (f *Finder) withinBusinessHours(start time.Time) bool {
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), f.opts.BusinessStartHour, 0, 0, 0, start.Location())
	dayEnd := time.Date(start.Year(), start.Month(), start.Day(), f.opts.BusinessEndHour, 0, 0, 0, start.Location())
	return !start.Before(dayStart) && !start.Add(f.opts.SlotDuration).After(dayEnd)
}

// spread picks up to MaxResults candidates biased toward one slot per
// calendar day. When there are not enough distinct days, later same-day
// candidates are used, with at most one adjacent pair per day.
func (f *Finder) spread(raw []time.Time) []time.Time {
	if len(raw) <= f.opts.MaxResults {
		return raw
	}

	var picked []time.Time
	seenDay := make(map[string]bool)

	// First slot of each day, in scan order.
	for _, c := range raw {
		if len(picked) >= f.opts.MaxResults {
			break
		}
		day := c.Format("2006-01-02")
		if seenDay[day] {
			continue
		}
		seenDay[day] = true
		picked = append(picked, c)
	}
	if len(picked) >= f.opts.MaxResults {
		return picked
	}

	// Not enough days in the window: fill in remaining candidates but keep
	// same-day clustering down to a single consecutive pair.
	adjacentDay := make(map[string]bool)
	chosen := make(map[time.Time]bool, len(picked))
	for _, c := range picked {
		chosen[c] = true
	}
	for _, c := range raw {
		if len(picked) >= f.opts.MaxResults {
			break
		}
		if chosen[c] {
			continue
		}
		day := c.Format("2006-01-02")
		if isAdjacent(c, picked, f.opts.SlotDuration) {
			if adjacentDay[day] {
				continue
			}
			adjacentDay[day] = true
		}
		chosen[c] = true
		picked = append(picked, c)
	}
	sortTimes(picked)
	return picked
}

func isAdjacent(c time.Time, picked []time.Time, d time.Duration) bool {
	for _, p := range picked {
		if c.Equal(p.Add(d)) || p.Equal(c.Add(d)) {
			return true
		}
	}
	return false
}

func sortTimes(ts []time.Time) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
}

// overlapsAny is the half-open overlap test: [start, end) conflicts with a
// busy interval when start < busy.End && end > busy.Start.
func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if start.Before(b.End) && end.After(b.Start) {
			return true
		}
	}
	return false
}

func roundUp(t time.Time, step time.Duration) time.Time {
	r := t.Truncate(step)
	if r.Before(t) {
		r = r.Add(step)
	}
	return r
}

func formatLabel(start, end time.Time) string {
	return fmt.Sprintf("%s at %s - %s",
		start.Format("Monday, Jan 2"),
		start.Format("3:04 PM"),
		end.Format("3:04 PM"))
}
