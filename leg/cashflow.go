package leg

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/meenmo/finsec/curve"
	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/market"
	"github.com/meenmo/finsec/rate"
	"github.com/meenmo/finsec/utils"
)

// CashflowRow is one line of a cashflow table.
type CashflowRow struct {
	PeriodStart  time.Time
	PeriodEnd    time.Time
	PaymentDate  time.Time
	YearFraction float64
	Notional     float64
	Amount       float64
	HasSettled   bool
	ImpliedRate  float64
}

// MarshalJSON writes dates as YYYY-MM-DD.
func (r CashflowRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PeriodStart  string  `json:"period_start"`
		PeriodEnd    string  `json:"period_end"`
		PaymentDate  string  `json:"payment_date"`
		YearFraction float64 `json:"year_fraction"`
		Notional     float64 `json:"notional"`
		Amount       float64 `json:"amount"`
		HasSettled   bool    `json:"has_settled"`
		ImpliedRate  float64 `json:"implied_rate"`
	}{
		PeriodStart:  r.PeriodStart.Format(utils.DateLayout),
		PeriodEnd:    r.PeriodEnd.Format(utils.DateLayout),
		PaymentDate:  r.PaymentDate.Format(utils.DateLayout),
		YearFraction: r.YearFraction,
		Notional:     r.Notional,
		Amount:       r.Amount,
		HasSettled:   r.HasSettled,
		ImpliedRate:  r.ImpliedRate,
	})
}

// CashflowOptions controls how coupons are resolved.
//
// Fixings supplies explicit resets. When Market is set, floating coupons fixing
// before AsOf use Fixings or the index's published fixings, and the rest are
// projected off the index forwarding curve.
type CashflowOptions struct {
	AsOf    time.Time
	Fixings rate.FixingSource
	Market  *market.Lookup
}

// CashflowTable joins the accrual schedule with the per-period amounts.
// Constant coupons always resolve; floating coupons need Fixings or Market.
func (l Leg) CashflowTable(opts CashflowOptions) ([]CashflowRow, error) {
	notionals, err := l.NotionalsArray()
	if err != nil {
		return nil, err
	}
	coupons, err := l.RateArray()
	if err != nil {
		return nil, err
	}

	sched := l.Accrual.Schedule()
	pays := l.PaymentDates()
	rows := make([]CashflowRow, sched.Len())
	for i := range rows {
		start, end, frac := sched.Start[i], sched.End[i], sched.Frac[i]

		var src rate.FixingSource = opts.Fixings
		if opts.Market != nil {
			src = &projector{lookup: opts.Market, history: opts.Fixings, asOf: opts.AsOf, start: start, end: end, frac: frac}
		}
		r, err := coupons[i].Fixing(start, src)
		if err != nil {
			return nil, fmt.Errorf("leg.CashflowTable: period %d (%s): %w", i, start.Format(utils.DateLayout), err)
		}

		notional := notionals[i].Float64()
		coupon := r.Float64()
		rows[i] = CashflowRow{
			PeriodStart:  start,
			PeriodEnd:    end,
			PaymentDate:  pays[i],
			YearFraction: frac,
			Notional:     notional,
			Amount:       notional * coupon * frac,
			HasSettled:   !opts.AsOf.IsZero() && pays[i].Before(opts.AsOf),
			ImpliedRate:  coupon,
		}
	}
	return rows, nil
}

// projector resolves floating leaves for a single accrual period.
type projector struct {
	lookup     *market.Lookup
	history    rate.FixingSource
	asOf       time.Time
	start, end time.Time
	frac       float64
}

func (p *projector) Fixing(f rate.FloatingRate, on time.Time) (decimal.Decimal, error) {
	idx, err := p.lookup.Index(f.Index)
	if err != nil {
		return decimal.Zero, err
	}

	if on.Before(p.asOf) {
		if p.history != nil {
			if v, err := p.history.Fixing(f, on); err == nil {
				return v, nil
			}
		}
		if v, ok := idx.Fixing(on); ok {
			return v, nil
		}
		return decimal.Zero, fmt.Errorf("%s on %s: %w", f.Index, on.Format(utils.DateLayout), rate.ErrUnresolvedFixing)
	}

	fwd := idx.Forwarding()
	if fwd == nil {
		return decimal.Zero, fmt.Errorf("%s has no forwarding curve: %w", f.Index, rate.ErrUnresolvedFixing)
	}
	var v float64
	if f.Type.Kind == rate.Overnight && !f.Type.CompoundedNotAveraged {
		v = curve.LogForwardRate(fwd, p.start, p.end, p.frac)
	} else {
		v = curve.ForwardRate(fwd, p.start, p.end, p.frac)
	}
	return decimal.NewFromFloat(utils.RoundTo(v, 12))
}
