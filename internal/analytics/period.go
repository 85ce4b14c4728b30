// Package analytics is the derived-metrics engine: pure, deterministic
// computations over ledger snapshots. Callers inject "now" and a location;
// nothing here reads a clock, touches storage, or mutates its inputs.
package analytics

import (
	"time"

	"github.com/jask/moneylens/internal/ledger"
)

// Period is a symbolic statistics window selector.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// Interval is a date window. Bounds are optional; Start is inclusive and End
// is exclusive unless EndInclusive is set (custom ranges are closed).
type Interval struct {
	Start        time.Time
	End          time.Time
	HasStart     bool
	HasEnd       bool
	EndInclusive bool
}

// Contains reports whether t falls inside the interval.
func (iv Interval) Contains(t time.Time) bool {
	if iv.HasStart && t.Before(iv.Start) {
		return false
	}
	if iv.HasEnd {
		if iv.EndInclusive {
			if t.After(iv.End) {
				return false
			}
		} else if !t.Before(iv.End) {
			return false
		}
	}
	return true
}

// StatisticsWindow resolves a symbolic period to a calendar-aligned window
// [start, now). Week starts on the ISO Monday, month and year on their
// calendar first day. PeriodAll is unbounded.
func StatisticsWindow(p Period, now time.Time, loc *time.Location) Interval {
	if loc == nil {
		loc = time.Local
	}
	if now.IsZero() {
		// Degenerate input: collapse to an empty window rather than guessing.
		return Interval{Start: now, End: now, HasStart: true, HasEnd: true}
	}
	now = now.In(loc)
	switch p {
	case PeriodWeek:
		return Interval{Start: startOfISOWeek(now), End: now, HasStart: true, HasEnd: true}
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return Interval{Start: start, End: now, HasStart: true, HasEnd: true}
	case PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return Interval{Start: start, End: now, HasStart: true, HasEnd: true}
	case PeriodAll:
		return Interval{}
	default:
		return Interval{Start: now, End: now, HasStart: true, HasEnd: true}
	}
}

// BudgetWindow resolves a budget period to its spend window ending at now.
// Weekly is a rolling seven days; monthly and yearly are calendar-aligned.
func BudgetWindow(p ledger.BudgetPeriod, now time.Time, loc *time.Location) Interval {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	switch p {
	case ledger.PeriodWeekly:
		return Interval{Start: now.AddDate(0, 0, -7), End: now, HasStart: true, HasEnd: true}
	case ledger.PeriodMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return Interval{Start: start, End: now, HasStart: true, HasEnd: true}
	case ledger.PeriodYearly:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return Interval{Start: start, End: now, HasStart: true, HasEnd: true}
	default:
		return Interval{Start: now, End: now, HasStart: true, HasEnd: true}
	}
}

// CustomInterval builds a closed window: from <= d <= to. An inverted range
// collapses to empty.
func CustomInterval(from, to time.Time) Interval {
	if to.Before(from) {
		return Interval{Start: from, End: from, HasStart: true, HasEnd: true}
	}
	return Interval{Start: from, End: to, HasStart: true, HasEnd: true, EndInclusive: true}
}

func startOfISOWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	wd := int(day.Weekday())
	if wd == 0 { // Sunday belongs to the week that started the previous Monday
		wd = 7
	}
	return day.AddDate(0, 0, -(wd - 1))
}

func startOfMonth(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
}
