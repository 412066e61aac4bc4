package leg

import (
	"fmt"
	"time"

	"github.com/meenmo/finsec/curve"
	"github.com/meenmo/finsec/market"
	"github.com/meenmo/finsec/pricing"
)

// Instrument is a leg bound to a discount curve and a market snapshot.
type Instrument struct {
	leg      Leg
	discount curve.DiscountCurve
	opts     CashflowOptions
}

// Instrument resolves the funding curve and every floating index of l
// against lookup.
func (l Leg) Instrument(lookup *market.Lookup, funding pricing.FundingSpec, engine pricing.EngineOptions) (*Instrument, error) {
	if lookup == nil {
		return nil, pricing.ErrNilLookup
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	name, err := funding.IndexFor(l.Currency)
	if err != nil {
		return nil, err
	}
	idx, err := lookup.Index(name)
	if err != nil {
		return nil, fmt.Errorf("leg.Instrument: funding: %w", err)
	}
	disc := idx.DefaultCurve()
	if disc == nil {
		return nil, fmt.Errorf("leg.Instrument: %s: %w", name, curve.ErrNilCurve)
	}
	for _, f := range l.FloatingIndices() {
		if _, err := lookup.Index(f); err != nil {
			return nil, fmt.Errorf("leg.Instrument: coupon: %w", err)
		}
	}

	return &Instrument{
		leg:      l,
		discount: disc,
		opts:     CashflowOptions{AsOf: engine.AsOf(lookup), Market: lookup},
	}, nil
}

// Leg returns the underlying leg.
func (i *Instrument) Leg() Leg { return i.leg }

// AsOf returns the valuation date.
func (i *Instrument) AsOf() time.Time { return i.opts.AsOf }

// DiscountCurve returns the funding curve.
func (i *Instrument) DiscountCurve() curve.DiscountCurve { return i.discount }

// Cashflows returns the leg's cashflow table at the valuation date.
func (i *Instrument) Cashflows() ([]CashflowRow, error) {
	return i.leg.CashflowTable(i.opts)
}

// df discounts from pay back to the valuation date.
func (i *Instrument) df(pay time.Time) float64 {
	return i.discount.DF(pay) / i.discount.DF(i.opts.AsOf)
}

// NPV is the discounted sum of unsettled amounts.
func (i *Instrument) NPV() (float64, error) {
	rows, err := i.Cashflows()
	if err != nil {
		return 0, err
	}
	var pv float64
	for _, r := range rows {
		if !r.HasSettled {
			pv += r.Amount * i.df(r.PaymentDate)
		}
	}
	return pv, nil
}

// Annuity is the discounted sum of notional times year fraction over
// unsettled periods: the PV of a unit coupon rate.
func (i *Instrument) Annuity() (float64, error) {
	notionals, err := i.leg.NotionalsArray()
	if err != nil {
		return 0, err
	}
	sched := i.leg.Accrual.Schedule()
	pays := i.leg.PaymentDates()

	var a float64
	for k := range pays {
		if pays[k].Before(i.opts.AsOf) {
			continue
		}
		a += notionals[k].Float64() * sched.Frac[k] * i.df(pays[k])
	}
	return a, nil
}

// BPS is the PV change for a one basis point move in every coupon.
func (i *Instrument) BPS() (float64, error) {
	a, err := i.Annuity()
	if err != nil {
		return 0, err
	}
	return a * 1e-4, nil
}

// Measures implements pricing.Measurer.
func (i *Instrument) Measures() (map[string]float64, error) {
	bps, err := i.BPS()
	if err != nil {
		return nil, err
	}
	return map[string]float64{"bps": bps}, nil
}

// RiskBuilder returns the stage-one builder of l.
func (l Leg) RiskBuilder(funding pricing.FundingSpec, engine pricing.EngineOptions) pricing.Builder {
	return func(lookup *market.Lookup) (*pricing.Handle, error) {
		inst, err := l.Instrument(lookup, funding, engine)
		if err != nil {
			return nil, err
		}
		return pricing.NewHandle(inst, lookup, l.Currency)
	}
}
