package bond

import (
	"fmt"
	"sort"
	"time"

	"github.com/meenmo/finsec/leg"
)

// Instrument is a fixed-rate bond with its cashflows resolved.
type Instrument struct {
	bond       Bond
	flows      []Cashflow
	coupons    []float64
	notional   float64
	face       float64
	redemption float64
}

// Instrument resolves the coupon schedule. Every coupon must be constant.
func (b Bond) Instrument() (*Instrument, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	rates, err := b.Leg.RateArray()
	if err != nil {
		return nil, err
	}

	sched := b.Leg.Accrual.Schedule()
	pays := b.Leg.PaymentDates()
	i := &Instrument{
		bond:       b,
		notional:   b.Notional.Float64(),
		face:       b.FaceValue().Float64(),
		redemption: b.FinalRedemption().Float64(),
		coupons:    make([]float64, len(rates)),
	}
	for k, r := range rates {
		if !r.IsConstant() {
			return nil, fmt.Errorf("bond.Instrument: coupon %d is %s: %w", k, r, ErrUnsupportedCouponType)
		}
		v, err := r.Fixing(sched.Start[k], nil)
		if err != nil {
			return nil, fmt.Errorf("bond.Instrument: coupon %d: %w", k, err)
		}
		i.coupons[k] = v.Float64()
		i.flows = append(i.flows, Cashflow{
			AccrualStart: sched.Start[k],
			AccrualEnd:   sched.End[k],
			Date:         pays[k],
			Fraction:     sched.Frac[k],
			Coupon:       i.notional * i.coupons[k] * sched.Frac[k],
		})
	}

	last := len(pays) - 1
	i.flows = append(i.flows, Cashflow{
		AccrualStart: sched.Start[last],
		AccrualEnd:   sched.End[last],
		Date:         pays[last],
		Fraction:     1,
		Principal:    i.notional * i.redemption / i.face,
	})
	return i, nil
}

// Bond returns the bond terms.
func (i *Instrument) Bond() Bond { return i.bond }

// Maturity returns the redemption payment date.
func (i *Instrument) Maturity() time.Time { return i.flows[len(i.flows)-1].Date }

// Cashflows returns coupon rows followed by the redemption row.
func (i *Instrument) Cashflows() []Cashflow {
	return append([]Cashflow(nil), i.flows...)
}

// CashflowTable renders the cashflows as leg rows. The redemption row has a
// year fraction of 1 so its implied rate is the redemption per unit notional.
func (i *Instrument) CashflowTable(asOf time.Time) []leg.CashflowRow {
	rows := make([]leg.CashflowRow, len(i.flows))
	for k, cf := range i.flows {
		rows[k] = leg.CashflowRow{
			PeriodStart:  cf.AccrualStart,
			PeriodEnd:    cf.AccrualEnd,
			PaymentDate:  cf.Date,
			YearFraction: cf.Fraction,
			Notional:     i.notional,
			Amount:       cf.Amount(),
			HasSettled:   !asOf.IsZero() && cf.Date.Before(asOf),
			ImpliedRate:  cf.Amount() / cf.Fraction / i.notional,
		}
	}
	return rows
}

// couponIndex returns the coupon period whose accrual contains settle, or -1
// when settle is outside the schedule.
func (i *Instrument) couponIndex(settle time.Time) int {
	n := len(i.coupons)
	k := sort.Search(n, func(k int) bool {
		return i.flows[k].AccrualEnd.After(settle)
	})
	if k == n || settle.Before(i.flows[0].AccrualStart) {
		return -1
	}
	return k
}

// AccruedAmount is the coupon accrued from the current period start to settle,
// in currency units.
func (i *Instrument) AccruedAmount(settle time.Time) float64 {
	k := i.couponIndex(settle)
	if k < 0 {
		return 0
	}
	cf := i.flows[k]
	dc := i.bond.Leg.Accrual.DayCount()
	return i.notional * i.coupons[k] * dc.Fraction(cf.AccrualStart, settle)
}

// Accrued is AccruedAmount per face.
func (i *Instrument) Accrued(settle time.Time) float64 {
	return i.AccruedAmount(settle) / i.notional * i.face
}

// remaining returns the flows paid after settle.
func (i *Instrument) remaining(settle time.Time) []Cashflow {
	var out []Cashflow
	for _, cf := range i.flows {
		if cf.Date.After(settle) {
			out = append(out, cf)
		}
	}
	return out
}
