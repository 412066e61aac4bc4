// Package accrual turns accrual conventions into schedules of period boundaries
// and day-count fractions.
package accrual

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/finsec/calendar"
	"github.com/meenmo/finsec/daycount"
	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/period"
)

var (
	// ErrAmbiguousFrequency is returned unless exactly one of Frequency and Period is set.
	ErrAmbiguousFrequency = errors.New("exactly one of frequency and period must be set")
	// ErrInvalidDateRange is returned when the resolved end is not after the start.
	ErrInvalidDateRange = errors.New("end must be after start")
)

// Stub selects where an irregular period goes when the tenor does not divide the range.
type Stub int

const (
	// StubFront generates backward from the end; the odd period comes first.
	StubFront Stub = iota
	// StubBack generates forward from the start; the odd period comes last.
	StubBack
)

func (s Stub) String() string {
	if s == StubBack {
		return "back"
	}
	return "front"
}

// Params describes an accrual. Zero calendars mean calendar.Null and a zero
// Convention means Following.
type Params struct {
	Start           time.Time
	End             End
	DayCount        daycount.Convention
	Frequency       *decimal.Decimal
	Period          *period.Period
	AccrualCalendar calendar.ID
	PaymentCalendar calendar.ID
	Convention      calendar.BusinessDayConvention
	Stub            Stub
	EndOfMonth      bool
}

// Info is a validated, immutable accrual description. Nodes and schedules are
// derived on demand.
type Info struct {
	params     Params
	end        time.Time
	tenor      period.Period
	accrualCal calendar.Calendar
	paymentCal calendar.Calendar
}

// New validates p and resolves its calendars, coupon tenor and end date.
func New(p Params) (Info, error) {
	if (p.Frequency == nil) == (p.Period == nil) {
		return Info{}, fmt.Errorf("accrual.New: %w", ErrAmbiguousFrequency)
	}
	if !p.DayCount.Valid() {
		return Info{}, fmt.Errorf("accrual.New: %q: %w", p.DayCount, daycount.ErrUnknownConvention)
	}
	if p.Start.IsZero() {
		return Info{}, fmt.Errorf("accrual.New: start is required: %w", ErrInvalidDateRange)
	}
	if p.End.IsZero() {
		return Info{}, fmt.Errorf("accrual.New: end is required: %w", ErrInvalidDateRange)
	}
	if p.AccrualCalendar == "" {
		p.AccrualCalendar = calendar.Null
	}
	if p.PaymentCalendar == "" {
		p.PaymentCalendar = calendar.Null
	}
	if p.Convention == "" {
		p.Convention = calendar.Following
	}

	info := Info{params: p}

	var err error
	if info.accrualCal, err = calendar.Resolve(p.AccrualCalendar); err != nil {
		return Info{}, fmt.Errorf("accrual.New: accrual calendar: %w", err)
	}
	if info.paymentCal, err = calendar.Resolve(p.PaymentCalendar); err != nil {
		return Info{}, fmt.Errorf("accrual.New: payment calendar: %w", err)
	}

	if p.Period != nil {
		info.tenor = *p.Period
	} else if info.tenor, err = period.FromFrequency(*p.Frequency); err != nil {
		return Info{}, fmt.Errorf("accrual.New: %w", err)
	}
	if info.tenor.Length < 0 {
		return Info{}, fmt.Errorf("accrual.New: negative tenor %s: %w", info.tenor, period.ErrInvalidFrequency)
	}

	if tenor, ok := p.End.Tenor(); ok {
		info.end = calendar.Advance(info.accrualCal, p.Start, tenor, p.Convention, p.EndOfMonth)
	} else {
		info.end, _ = p.End.Date()
	}
	if !info.end.After(p.Start) {
		return Info{}, fmt.Errorf("accrual.New: start %s, end %s: %w",
			p.Start.Format("2006-01-02"), info.end.Format("2006-01-02"), ErrInvalidDateRange)
	}
	return info, nil
}

// Params returns the normalised parameters.
func (a Info) Params() Params { return a.params }

// Start returns the unadjusted accrual start.
func (a Info) Start() time.Time { return a.params.Start }

// End returns the resolved (unadjusted for literal dates) termination date.
func (a Info) End() time.Time { return a.end }

func (a Info) DayCount() daycount.Convention { return a.params.DayCount }

// CouponPeriod is the regular tenor, derived from Frequency when Period is unset.
func (a Info) CouponPeriod() period.Period { return a.tenor }

func (a Info) Convention() calendar.BusinessDayConvention { return a.params.Convention }

func (a Info) AccrualCalendar() calendar.Calendar { return a.accrualCal }

func (a Info) PaymentCalendar() calendar.Calendar { return a.paymentCal }

func (a Info) Stub() Stub { return a.params.Stub }

func (a Info) EndOfMonth() bool { return a.params.EndOfMonth }

// IsFlat reports whether the accrual is a single period with no regular tenor.
func (a Info) IsFlat() bool { return a.tenor.IsZero() }

// PaymentsPerYear is the coupon frequency implied by the tenor.
func (a Info) PaymentsPerYear() (int, error) {
	return a.tenor.PaymentsPerYear()
}

// Len is the number of accrual periods.
func (a Info) Len() int {
	return len(a.generate()) - 1
}

// Fraction is the day-count year fraction between two dates.
func (a Info) Fraction(d0, d1 time.Time) float64 {
	return a.params.DayCount.Fraction(d0, d1)
}

// Nodes returns every period boundary in ascending order.
func (a Info) Nodes() []time.Time {
	return a.generate()
}

// NodesBetween returns the boundaries inside [from, to]. A zero bound is open.
func (a Info) NodesBetween(from, to time.Time) []time.Time {
	all := a.generate()
	out := make([]time.Time, 0, len(all))
	for _, d := range all {
		if !from.IsZero() && d.Before(from) {
			continue
		}
		if !to.IsZero() && d.After(to) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Schedule zips consecutive nodes into accrual periods.
func (a Info) Schedule() Schedule {
	return a.scheduleOf(a.generate())
}

// ScheduleBetween is Schedule restricted to the nodes inside [from, to].
func (a Info) ScheduleBetween(from, to time.Time) Schedule {
	return a.scheduleOf(a.NodesBetween(from, to))
}

func (a Info) scheduleOf(nodes []time.Time) Schedule {
	if len(nodes) < 2 {
		return Schedule{}
	}
	n := len(nodes) - 1
	s := Schedule{
		Start: make([]time.Time, n),
		End:   make([]time.Time, n),
		Frac:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		s.Start[i] = nodes[i]
		s.End[i] = nodes[i+1]
		s.Frac[i] = a.Fraction(nodes[i], nodes[i+1])
	}
	return s
}
