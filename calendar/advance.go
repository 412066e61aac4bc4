package calendar

import (
	"time"

	"github.com/meenmo/finsec/period"
	"github.com/meenmo/finsec/utils"
)

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal Calendar, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if cal.IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal Calendar, t time.Time) time.Time {
	return rollBackward(cal, utils.EndOfMonth(t))
}

// IsEndOfMonth checks if t is the last business day of its month.
func IsEndOfMonth(cal Calendar, t time.Time) bool {
	return t.Equal(LastBusinessDayOfMonth(cal, t))
}

// Advance moves t by p on cal.
//
// Day tenors count business days. Week, month and year tenors shift the calendar
// date and then adjust with bdc; with eom set, a start on the last business day of
// its month lands on the last business day of the target month. Unadjusted
// rolls test the calendar month end instead.
func Advance(cal Calendar, t time.Time, p period.Period, bdc BusinessDayConvention, eom bool) time.Time {
	switch {
	case p.IsZero():
		return Adjust(cal, t, bdc)
	case p.Unit == period.Days:
		return AddBusinessDays(cal, t, p.Length)
	case p.Unit == period.Weeks:
		return Adjust(cal, p.AddTo(t), bdc)
	}

	d := p.AddTo(t)
	if !eom {
		return Adjust(cal, d, bdc)
	}
	if bdc == Unadjusted {
		if utils.IsEndOfMonth(t) {
			return utils.EndOfMonth(d)
		}
		return d
	}
	if IsEndOfMonth(cal, t) {
		return LastBusinessDayOfMonth(cal, d)
	}
	return Adjust(cal, d, bdc)
}

// Bump advances every date by p with the Following convention, preserving order.
func Bump(cal Calendar, dates []time.Time, p period.Period) []time.Time {
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		out[i] = Advance(cal, d, p, Following, false)
	}
	return out
}
