package swap

import (
	"fmt"
	"time"

	"github.com/meenmo/finsec/accrual"
	"github.com/meenmo/finsec/calendar"
	"github.com/meenmo/finsec/daycount"
	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/leg"
	"github.com/meenmo/finsec/period"
	"github.com/meenmo/finsec/rate"
	"github.com/meenmo/finsec/security"
)

// DefaultOISNotional is used when OISParams.Notional is zero.
var DefaultOISNotional = decimal.NewFromInt(10000)

// OISParams describes a fixed vs overnight index swap. The fixed leg receives
// Notional; the overnight leg pays it.
type OISParams struct {
	Start          time.Time
	End            accrual.End
	Rate           decimal.Decimal
	FixedDayCount  daycount.Convention
	FloatDayCount  daycount.Convention
	FixedFrequency int
	FloatFrequency int
	Index          string
	Notional       decimal.Decimal

	AccrualCalendar calendar.ID
	PaymentCalendar calendar.ID
	Convention      calendar.BusinessDayConvention
	EndOfMonth      bool
	PayDelay        *period.Period
	// Averaged selects arithmetic averaging of overnight fixings instead of
	// compounding.
	Averaged bool
	Currency *security.Reference
}

func (p OISParams) accrual(dc daycount.Convention, freq int) (accrual.Info, error) {
	f := decimal.NewFromInt(int64(freq))
	return accrual.New(accrual.Params{
		Start:           p.Start,
		End:             p.End,
		DayCount:        dc,
		Frequency:       &f,
		AccrualCalendar: p.AccrualCalendar,
		PaymentCalendar: p.PaymentCalendar,
		Convention:      p.Convention,
		EndOfMonth:      p.EndOfMonth,
	})
}

// MakeOIS builds a fixed vs overnight swap.
func MakeOIS(p OISParams) (Swap, error) {
	notional := p.Notional
	if notional.IsZero() {
		notional = DefaultOISNotional
	}

	fixAcc, err := p.accrual(p.FixedDayCount, p.FixedFrequency)
	if err != nil {
		return Swap{}, fmt.Errorf("swap.MakeOIS: fixed leg: %w", err)
	}
	fltAcc, err := p.accrual(p.FloatDayCount, p.FloatFrequency)
	if err != nil {
		return Swap{}, fmt.Errorf("swap.MakeOIS: overnight leg: %w", err)
	}

	fixed := leg.Leg{
		Accrual:   fixAcc,
		Notionals: []decimal.Decimal{notional},
		Coupons:   []rate.Expression{rate.FixedRate{Rate: p.Rate}},
		Currency:  p.Currency,
		PayDelay:  p.PayDelay,
	}
	overnight := leg.Leg{
		Accrual:   fltAcc,
		Notionals: []decimal.Decimal{notional.Neg()},
		Coupons: []rate.Expression{rate.FloatingRate{
			Index: p.Index,
			Type: rate.FloatType{
				Kind:                  rate.Overnight,
				PayDelay:              p.PayDelay,
				CompoundedNotAveraged: !p.Averaged,
			},
		}},
		Currency: p.Currency,
		PayDelay: p.PayDelay,
	}

	s := New(fixed, overnight)
	if err := s.Validate(); err != nil {
		return Swap{}, fmt.Errorf("swap.MakeOIS: %w", err)
	}
	return s, nil
}

// OISPreset holds the market conventions of a standard OIS.
type OISPreset struct {
	Index        string
	Currency     string
	DayCount     daycount.Convention
	Frequency    int
	Calendar     calendar.ID
	Convention   calendar.BusinessDayConvention
	PayDelayDays int
	SpotLagDays  int
}

// Preset conventions for USD and EUR overnight swaps.
var (
	SOFROIS = OISPreset{
		Index:        "SOFR",
		Currency:     "USD",
		DayCount:     daycount.Act360,
		Frequency:    1,
		Calendar:     calendar.USSOFR,
		Convention:   calendar.ModifiedFollowing,
		PayDelayDays: 2,
		SpotLagDays:  2,
	}

	ESTROIS = OISPreset{
		Index:        "ESTR",
		Currency:     "EUR",
		DayCount:     daycount.Act360,
		Frequency:    1,
		Calendar:     calendar.TARGET,
		Convention:   calendar.ModifiedFollowing,
		PayDelayDays: 1,
		SpotLagDays:  2,
	}
)

// Params returns OISParams for a swap traded on trade with the given tenor,
// fixed rate and notional, starting at spot.
func (c OISPreset) Params(trade time.Time, tenor period.Period, fixedRate, notional decimal.Decimal) (OISParams, error) {
	cal, err := calendar.Resolve(c.Calendar)
	if err != nil {
		return OISParams{}, err
	}
	ccy := security.Currency(c.Currency)
	delay := period.New(c.PayDelayDays, period.Days)
	return OISParams{
		Start:           calendar.AddBusinessDays(cal, calendar.Adjust(cal, trade, calendar.Following), c.SpotLagDays),
		End:             accrual.EndTenor(tenor),
		Rate:            fixedRate,
		FixedDayCount:   c.DayCount,
		FloatDayCount:   c.DayCount,
		FixedFrequency:  c.Frequency,
		FloatFrequency:  c.Frequency,
		Index:           c.Index,
		Notional:        notional,
		AccrualCalendar: c.Calendar,
		PaymentCalendar: c.Calendar,
		Convention:      c.Convention,
		EndOfMonth:      true,
		PayDelay:        &delay,
		Currency:        &ccy,
	}, nil
}
