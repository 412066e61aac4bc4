package bond

import (
	"fmt"
	"time"

	"github.com/meenmo/finsec/curve"
	"github.com/meenmo/finsec/market"
	"github.com/meenmo/finsec/pricing"
)

// Priced is a bond bound to a discount curve and settlement date.
type Priced struct {
	*Instrument
	curve  curve.DiscountCurve
	settle time.Time
}

// Price binds i to c at settle.
func (i *Instrument) Price(c curve.DiscountCurve, settle time.Time) (*Priced, error) {
	if c == nil {
		return nil, curve.ErrNilCurve
	}
	return &Priced{Instrument: i, curve: c, settle: settle}, nil
}

// Settle returns the settlement date the bond is valued for.
func (p *Priced) Settle() time.Time { return p.settle }

// NPV implements pricing.Instrument.
func (p *Priced) NPV() (float64, error) {
	return p.Instrument.NPV(p.curve, p.settle)
}

// Measures reports prices per face, accrued and the yield of the curve price.
func (p *Priced) Measures() (map[string]float64, error) {
	dirty, err := p.DirtyPrice(p.curve, p.settle)
	if err != nil {
		return nil, err
	}
	accrued := p.Accrued(p.settle)
	ytm, err := p.Yield(dirty, p.settle)
	if err != nil {
		return nil, err
	}
	return map[string]float64{
		"dirty_price": dirty,
		"clean_price": dirty - accrued,
		"accrued":     accrued,
		"yield":       ytm,
	}, nil
}

// discountIndex picks CreditIndex when set, otherwise the funding index of
// the leg currency.
func (b Bond) discountIndex(funding pricing.FundingSpec) (string, error) {
	if b.CreditIndex != "" {
		return b.CreditIndex, nil
	}
	return funding.IndexFor(b.Leg.Currency)
}

// RiskBuilder returns the stage-one builder of b. The bond settles on the
// engine valuation date plus SettleDays.
func (b Bond) RiskBuilder(funding pricing.FundingSpec, engine pricing.EngineOptions) pricing.Builder {
	return func(lookup *market.Lookup) (*pricing.Handle, error) {
		if lookup == nil {
			return nil, pricing.ErrNilLookup
		}
		inst, err := b.Instrument()
		if err != nil {
			return nil, err
		}
		name, err := b.discountIndex(funding)
		if err != nil {
			return nil, err
		}
		idx, err := lookup.Index(name)
		if err != nil {
			return nil, fmt.Errorf("bond.RiskBuilder: %w", err)
		}
		priced, err := inst.Price(idx.DefaultCurve(), b.SettlementDate(engine.AsOf(lookup)))
		if err != nil {
			return nil, err
		}
		return pricing.NewHandle(priced, lookup, b.Leg.Currency)
	}
}
