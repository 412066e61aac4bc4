// Package period models tenors such as "3M" or "10Y" and the coupon-frequency
// rules built on top of them.
package period

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/utils"
)

var (
	// ErrParse is returned for malformed tenor text.
	ErrParse = errors.New("malformed period")
	// ErrUnsupportedUnit is returned when a unit cannot express a coupon frequency.
	ErrUnsupportedUnit = errors.New("unsupported period unit")
	// ErrInvalidFrequency is returned when a tenor or frequency does not divide a year.
	ErrInvalidFrequency = errors.New("invalid frequency")
)

// Unit is a time unit of a Period.
type Unit int

const (
	Days Unit = iota
	Weeks
	Months
	Years
)

func (u Unit) String() string {
	switch u {
	case Days:
		return "D"
	case Weeks:
		return "W"
	case Months:
		return "M"
	case Years:
		return "Y"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

func parseUnit(c byte) (Unit, bool) {
	switch c {
	case 'D', 'd':
		return Days, true
	case 'W', 'w':
		return Weeks, true
	case 'M', 'm':
		return Months, true
	case 'Y', 'y':
		return Years, true
	}
	return 0, false
}

// Period is an immutable length of time expressed as a count of units.
//
// A zero-length Period is the "once" tenor used for single-cashflow schedules.
type Period struct {
	Length int
	Unit   Unit
}

// New returns a Period of n units.
func New(n int, unit Unit) Period {
	return Period{Length: n, Unit: unit}
}

// Once is the zero tenor.
var Once = Period{}

// Parse reads a tenor such as "3M", "1y", "2W" or "-2D".
func Parse(text string) (Period, error) {
	s := strings.TrimSpace(text)
	if len(s) < 2 {
		return Period{}, fmt.Errorf("Parse: %q: %w", text, ErrParse)
	}
	unit, ok := parseUnit(s[len(s)-1])
	if !ok {
		return Period{}, fmt.Errorf("Parse: %q: unknown unit: %w", text, ErrParse)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Period{}, fmt.Errorf("Parse: %q: %w", text, ErrParse)
	}
	return Period{Length: n, Unit: unit}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(text string) Period {
	p, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return p
}

// String formats the short tenor code, e.g. "3M".
func (p Period) String() string {
	return strconv.Itoa(p.Length) + p.Unit.String()
}

// IsZero reports whether p is the "once" tenor.
func (p Period) IsZero() bool {
	return p.Length == 0
}

// Neg returns the period with the opposite sign.
func (p Period) Neg() Period {
	return Period{Length: -p.Length, Unit: p.Unit}
}

// Times returns the period scaled by n.
func (p Period) Times(n int) Period {
	return Period{Length: p.Length * n, Unit: p.Unit}
}

// normalized folds years into months and weeks into days.
func (p Period) normalized() Period {
	switch p.Unit {
	case Years:
		return Period{Length: p.Length * 12, Unit: Months}
	case Weeks:
		return Period{Length: p.Length * 7, Unit: Days}
	}
	return p
}

// Equal compares tenors after folding years into months and weeks into days,
// so "1Y" equals "12M".
func (p Period) Equal(o Period) bool {
	if p.IsZero() && o.IsZero() {
		return true
	}
	return p.normalized() == o.normalized()
}

// PaymentsPerYear returns how many periods fit in a year.
//
// Only month and year tenors express coupon frequencies; the month count must
// divide 12 and a year tenor must be exactly one year.
func (p Period) PaymentsPerYear() (int, error) {
	if p.Length <= 0 {
		return 0, fmt.Errorf("PaymentsPerYear: %s: %w", p, ErrInvalidFrequency)
	}
	switch p.Unit {
	case Months:
		if 12%p.Length != 0 {
			return 0, fmt.Errorf("PaymentsPerYear: %s: %w", p, ErrInvalidFrequency)
		}
		return 12 / p.Length, nil
	case Years:
		if 1%p.Length != 0 {
			return 0, fmt.Errorf("PaymentsPerYear: %s: %w", p, ErrInvalidFrequency)
		}
		return 1, nil
	default:
		return 0, fmt.Errorf("PaymentsPerYear: %s: %w", p, ErrUnsupportedUnit)
	}
}

// frequencyTable maps payments per year to coupon tenors.
var frequencyTable = map[int64]Period{
	1:  {1, Years},
	2:  {6, Months},
	3:  {4, Months},
	4:  {3, Months},
	6:  {2, Months},
	12: {1, Months},
	24: {2, Weeks},
	52: {1, Weeks},
}

// FromFrequency maps a payments-per-year frequency onto a coupon tenor.
//
// Zero maps to Once. Frequencies below one map to whole multi-year tenors
// (0.5 -> 2Y). Anything outside the table fails with ErrInvalidFrequency.
func FromFrequency(freq decimal.Decimal) (Period, error) {
	switch {
	case freq.IsZero():
		return Once, nil
	case freq.Sign() < 0:
		return Period{}, fmt.Errorf("FromFrequency: %s: %w", freq, ErrInvalidFrequency)
	case freq.Cmp(decimal.One) < 0:
		inv, err := decimal.One.Div(freq)
		if err != nil {
			return Period{}, fmt.Errorf("FromFrequency: %s: %w", freq, ErrInvalidFrequency)
		}
		years, err := inv.Int64()
		if err != nil {
			return Period{}, fmt.Errorf("FromFrequency: %s: %w", freq, ErrInvalidFrequency)
		}
		return Period{Length: int(years), Unit: Years}, nil
	}

	n, err := freq.Int64()
	if err != nil {
		return Period{}, fmt.Errorf("FromFrequency: %s: %w", freq, ErrInvalidFrequency)
	}
	p, ok := frequencyTable[n]
	if !ok {
		return Period{}, fmt.Errorf("FromFrequency: %s: %w", freq, ErrInvalidFrequency)
	}
	return p, nil
}

// AddTo shifts t by p without any calendar adjustment. Month and year
// arithmetic clamps to the end of the target month.
func (p Period) AddTo(t time.Time) time.Time {
	switch p.Unit {
	case Days:
		return t.AddDate(0, 0, p.Length)
	case Weeks:
		return t.AddDate(0, 0, 7*p.Length)
	case Months:
		return utils.AddMonth(t, p.Length)
	case Years:
		return utils.AddMonth(t, 12*p.Length)
	}
	return t
}

// Years returns the approximate tenor length in years.
func (p Period) Years() float64 {
	switch p.Unit {
	case Days:
		return float64(p.Length) / 365.0
	case Weeks:
		return float64(p.Length) * 7.0 / 365.0
	case Months:
		return float64(p.Length) / 12.0
	default:
		return float64(p.Length)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
