package engine

import (
	"math"
	"time"
)

// RangePreset names a supported reporting window.
type RangePreset string

const (
	RangeYesterday RangePreset = "yesterday"
	Range7D        RangePreset = "7d"
	Range30D       RangePreset = "30d"
	RangeCustom    RangePreset = "custom"
)

// DateRange is a concrete inclusive [Start, End] day window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
}

// Contains reports whether a timestamp falls inside the window at day
// resolution.
func (r DateRange) Contains(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// ResolveRange turns a preset (or custom bounds) into a concrete window.
// Trailing presets anchor on yesterday unless includeToday is set, so a
// partially recorded current day never skews the numbers. Reversed custom
// bounds are swapped rather than rejected.
func ResolveRange(preset RangePreset, now time.Time, customStart, customEnd time.Time, includeToday bool) DateRange {
	today := dateOnly(now)
	yesterday := today.AddDate(0, 0, -1)

	switch preset {
	case RangeYesterday:
		return DateRange{Start: yesterday, End: yesterday, Days: 1}
	case RangeCustom:
		start, end := dateOnly(customStart), dateOnly(customEnd)
		if end.Before(start) {
			start, end = end, start
		}
		days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
		return DateRange{Start: start, End: end, Days: days}
	}

	days := 7
	if preset == Range30D {
		days = 30
	}
	end := yesterday
	if includeToday {
		end = today
	}
	return DateRange{Start: end.AddDate(0, 0, -(days - 1)), End: end, Days: days}
}

// PreviousRange shifts a window back by exactly its own length, leaving no
// gap, for period-over-period comparison.
func PreviousRange(r DateRange) DateRange {
	end := r.Start.AddDate(0, 0, -1)
	return DateRange{
		Start: end.AddDate(0, 0, -(r.Days - 1)),
		End:   end,
		Days:  r.Days,
	}
}
