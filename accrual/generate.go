package accrual

import (
	"time"

	"github.com/meenmo/finsec/calendar"
	"github.com/meenmo/finsec/period"
	"github.com/meenmo/finsec/utils"
)

// generate builds the adjusted, strictly increasing period boundaries.
func (a Info) generate() []time.Time {
	start, end := a.params.Start, a.end
	if a.tenor.IsZero() {
		return a.adjustAll([]time.Time{start, end}, false)
	}

	monthly := a.tenor.Unit == period.Months || a.tenor.Unit == period.Years
	if a.params.Stub == StubBack {
		eom := monthly && a.params.EndOfMonth && calendar.IsEndOfMonth(a.accrualCal, start)
		return a.adjustAll(generateForward(start, end, a.tenor, eom), eom)
	}
	eom := monthly && a.params.EndOfMonth && calendar.IsEndOfMonth(a.accrualCal, end)
	return a.adjustAll(generateBackward(start, end, a.tenor, eom), eom)
}

// generateForward rolls from start; the odd period, if any, is last.
// Every date is computed from the anchor rather than the previous date to avoid drift.
func generateForward(start, end time.Time, tenor period.Period, eom bool) []time.Time {
	dates := []time.Time{start}
	for i := 1; ; i++ {
		next := tenor.Times(i).AddTo(start)
		if eom {
			next = utils.EndOfMonth(next)
		}
		if !next.Before(end) {
			break
		}
		dates = append(dates, next)
	}
	return append(dates, end)
}

// generateBackward rolls from end; the odd period, if any, is first.
func generateBackward(start, end time.Time, tenor period.Period, eom bool) []time.Time {
	reversed := []time.Time{end}
	for i := 1; ; i++ {
		prev := tenor.Times(-i).AddTo(end)
		if eom {
			prev = utils.EndOfMonth(prev)
		}
		if !prev.After(start) {
			break
		}
		reversed = append(reversed, prev)
	}
	reversed = append(reversed, start)

	dates := make([]time.Time, len(reversed))
	for i, d := range reversed {
		dates[len(reversed)-1-i] = d
	}
	return dates
}

// adjustAll applies the business-day convention and drops boundaries that
// collapse onto (or before) their predecessor after adjustment.
func (a Info) adjustAll(raw []time.Time, eom bool) []time.Time {
	bdc := a.params.Convention
	out := make([]time.Time, 0, len(raw))
	for i, d := range raw {
		var adj time.Time
		interior := i > 0 && i < len(raw)-1
		if interior && eom && bdc != calendar.Unadjusted {
			adj = calendar.LastBusinessDayOfMonth(a.accrualCal, d)
		} else {
			adj = calendar.Adjust(a.accrualCal, d, bdc)
		}
		if len(out) > 0 && !adj.After(out[len(out)-1]) {
			if i == len(raw)-1 {
				out[len(out)-1] = adj
			}
			continue
		}
		out = append(out, adj)
	}
	if len(out) < 2 {
		// Adjustment collapsed the whole range onto one business day.
		return []time.Time{raw[0], raw[len(raw)-1]}
	}
	return out
}
