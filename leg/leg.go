// Package leg models a single coupon stream: an accrual schedule, broadcast
// notionals and coupon expressions, an optional currency and payment delay.
package leg

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/finsec/accrual"
	"github.com/meenmo/finsec/calendar"
	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/period"
	"github.com/meenmo/finsec/rate"
	"github.com/meenmo/finsec/security"
)

var (
	// ErrLengthMismatch is returned when a notional or coupon list does not
	// match the number of accrual periods.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrInvalidPayDelay is returned for payment delays not expressed in days.
	ErrInvalidPayDelay = errors.New("invalid payment delay")
)

// Leg is one cashflow stream. A single notional or coupon is broadcast over
// every accrual period.
type Leg struct {
	Accrual   accrual.Info
	Notionals []decimal.Decimal
	Coupons   []rate.Expression
	Currency  *security.Reference
	PayDelay  *period.Period
}

// New builds and validates a leg.
func New(acc accrual.Info, notionals []decimal.Decimal, coupons []rate.Expression) (Leg, error) {
	l := Leg{Accrual: acc, Notionals: notionals, Coupons: coupons}
	if err := l.Validate(); err != nil {
		return Leg{}, err
	}
	return l, nil
}

// Validate checks the broadcast lengths and the payment delay.
func (l Leg) Validate() error {
	if _, err := l.NotionalsArray(); err != nil {
		return err
	}
	if _, err := l.RateArray(); err != nil {
		return err
	}
	if l.PayDelay != nil && (l.PayDelay.Unit != period.Days || l.PayDelay.Length < 0) {
		return fmt.Errorf("leg.Validate: %s: %w", l.PayDelay, ErrInvalidPayDelay)
	}
	return nil
}

// NotionalsArray returns one notional per accrual period.
func (l Leg) NotionalsArray() ([]decimal.Decimal, error) {
	n := l.Accrual.Len()
	switch len(l.Notionals) {
	case 1:
		out := make([]decimal.Decimal, n)
		for i := range out {
			out[i] = l.Notionals[0]
		}
		return out, nil
	case n:
		return append([]decimal.Decimal(nil), l.Notionals...), nil
	}
	return nil, fmt.Errorf("leg.NotionalsArray: %d notionals for %d periods: %w", len(l.Notionals), n, ErrLengthMismatch)
}

// RateArray returns one coupon expression per accrual period.
func (l Leg) RateArray() ([]rate.Expression, error) {
	n := l.Accrual.Len()
	switch len(l.Coupons) {
	case 1:
		out := make([]rate.Expression, n)
		for i := range out {
			out[i] = l.Coupons[0]
		}
		return out, nil
	case n:
		return append([]rate.Expression(nil), l.Coupons...), nil
	}
	return nil, fmt.Errorf("leg.RateArray: %d coupons for %d periods: %w", len(l.Coupons), n, ErrLengthMismatch)
}

// IsConstant reports whether every coupon is fixed.
func (l Leg) IsConstant() bool {
	if len(l.Coupons) == 0 {
		return false
	}
	for _, c := range l.Coupons {
		if !c.IsConstant() {
			return false
		}
	}
	return true
}

// IsFloat reports whether any coupon references a floating index.
func (l Leg) IsFloat() bool {
	for _, c := range l.Coupons {
		if c.IsFloat() {
			return true
		}
	}
	return false
}

// FloatingIndices returns the distinct indices referenced by the coupons.
func (l Leg) FloatingIndices() []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range l.Coupons {
		for _, name := range rate.FloatingIndices(c) {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// PaymentDelay returns the delay in business days between period end and
// payment. A delay on the leg wins over one carried by a floating coupon.
func (l Leg) PaymentDelay() (int, bool) {
	if l.PayDelay != nil {
		return l.PayDelay.Length, true
	}
	for _, c := range l.Coupons {
		for _, leaf := range rate.Leaves(c) {
			if f, ok := leaf.(rate.FloatingRate); ok && f.Type.PayDelay != nil {
				return f.Type.PayDelay.Length, true
			}
		}
	}
	return 0, false
}

// PaymentDates returns the payment date of every period: the period end
// adjusted on the payment calendar, then delayed.
func (l Leg) PaymentDates() []time.Time {
	sched := l.Accrual.Schedule()
	cal := l.Accrual.PaymentCalendar()
	delay, _ := l.PaymentDelay()

	out := make([]time.Time, sched.Len())
	for i, end := range sched.End {
		pay := calendar.Adjust(cal, end, l.Accrual.Convention())
		out[i] = calendar.AddBusinessDays(cal, pay, delay)
	}
	return out
}
