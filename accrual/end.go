package accrual

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/finsec/period"
	"github.com/meenmo/finsec/utils"
)

// ErrParseEnd is returned when an end is neither an ISO date nor a tenor.
var ErrParseEnd = errors.New("end must be a date or a tenor")

// End is the termination of an accrual: a literal date or a tenor from the start.
type End struct {
	date  time.Time
	tenor period.Period
	rel   bool
}

// EndDate terminates on a literal date.
func EndDate(t time.Time) End {
	return End{date: t}
}

// EndTenor terminates a tenor after the start.
func EndTenor(p period.Period) End {
	return End{tenor: p, rel: true}
}

// ParseEnd accepts "2030-06-15" or "5Y".
func ParseEnd(s string) (End, error) {
	if d, err := utils.ParseDate(s); err == nil {
		return EndDate(d), nil
	}
	p, err := period.Parse(s)
	if err != nil {
		return End{}, fmt.Errorf("ParseEnd: %q: %w", s, ErrParseEnd)
	}
	return EndTenor(p), nil
}

// IsZero reports whether no end was given.
func (e End) IsZero() bool {
	return !e.rel && e.date.IsZero()
}

// Tenor returns the relative end, if any.
func (e End) Tenor() (period.Period, bool) {
	return e.tenor, e.rel
}

// Date returns the literal end date, if any.
func (e End) Date() (time.Time, bool) {
	return e.date, !e.rel && !e.date.IsZero()
}

func (e End) String() string {
	if e.rel {
		return e.tenor.String()
	}
	if e.date.IsZero() {
		return ""
	}
	return e.date.Format(utils.DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (e End) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *End) UnmarshalText(text []byte) error {
	parsed, err := ParseEnd(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
