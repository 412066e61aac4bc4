// Package daycount computes accrual year fractions between two dates.
package daycount

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/finsec/utils"
)

// ErrUnknownConvention is returned when a day-count name cannot be parsed.
var ErrUnknownConvention = errors.New("unknown day count convention")

// Convention is a day-count convention.
type Convention string

const (
	Act360      Convention = "ACT/360"
	Act365Fixed Convention = "ACT/365F"
	ActActISDA  Convention = "ACT/ACT"
	Thirty360   Convention = "30/360"
	Thirty360E  Convention = "30E/360"
)

var aliases = map[string]Convention{
	"ACT/360":        Act360,
	"ACTUAL/360":     Act360,
	"ACTUAL360":      Act360,
	"ACT/365F":       Act365Fixed,
	"ACT/365":        Act365Fixed,
	"ACT/365FIXED":   Act365Fixed,
	"ACTUAL365FIXED": Act365Fixed,
	"ACT/ACT":        ActActISDA,
	"ACT/ACT ISDA":   ActActISDA,
	"ACTUALACTUAL":   ActActISDA,
	"30/360":         Thirty360,
	"30/360 US":      Thirty360,
	"THIRTY360":      Thirty360,
	"30E/360":        Thirty360E,
}

// Parse resolves a day-count name case-insensitively.
func Parse(s string) (Convention, error) {
	c, ok := aliases[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("daycount.Parse: %q: %w", s, ErrUnknownConvention)
	}
	return c, nil
}

// Valid reports whether c is a known convention.
func (c Convention) Valid() bool {
	switch c {
	case Act360, Act365Fixed, ActActISDA, Thirty360, Thirty360E:
		return true
	}
	return false
}

// Fraction returns the accrual year fraction from start to end.
//
// Reversed dates give the negated fraction. Unknown conventions fall back to ACT/365F.
func (c Convention) Fraction(start, end time.Time) float64 {
	if end.Before(start) {
		return -c.Fraction(end, start)
	}
	switch c {
	case Act360:
		return float64(utils.Days(start, end)) / 360.0
	case ActActISDA:
		return actActISDA(start, end)
	case Thirty360:
		return thirty360BondBasis(start, end)
	case Thirty360E:
		return thirty360European(start, end)
	default:
		return float64(utils.Days(start, end)) / 365.0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Convention) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Convention) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// actActISDA splits the interval at year boundaries and divides each piece by
// the length of its own year.
func actActISDA(start, end time.Time) float64 {
	if start.Year() == end.Year() {
		return float64(utils.Days(start, end)) / daysInYear(start.Year())
	}
	firstEnd := utils.Date(start.Year()+1, 1, 1)
	lastStart := utils.Date(end.Year(), 1, 1)
	frac := float64(utils.Days(start, firstEnd)) / daysInYear(start.Year())
	frac += float64(end.Year() - start.Year() - 1)
	frac += float64(utils.Days(lastStart, end)) / daysInYear(end.Year())
	return frac
}

func daysInYear(year int) float64 {
	if utils.DaysInMonth(year, time.February) == 29 {
		return 366.0
	}
	return 365.0
}

func thirty360BondBasis(start, end time.Time) float64 {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 && d1 == 30 {
		d2 = 30
	}
	return float64(360*(y2-y1)+30*(int(m2)-int(m1))+(d2-d1)) / 360.0
}

func thirty360European(start, end time.Time) float64 {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	if d1 == 31 {
		d1 = 30
	}
	if d2 == 31 {
		d2 = 30
	}
	return float64(360*(y2-y1)+30*(int(m2)-int(m1))+(d2-d1)) / 360.0
}
