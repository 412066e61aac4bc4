package swap

import (
	"fmt"

	"github.com/meenmo/finsec/leg"
	"github.com/meenmo/finsec/market"
	"github.com/meenmo/finsec/pricing"
	"github.com/meenmo/finsec/security"
)

// CrossCurrency values each leg in its own currency and reports the sum in
// the first leg's currency.
type CrossCurrency struct {
	legs [2]*leg.Instrument
	// fx converts the second leg into the first leg's currency.
	fx *market.SimpleQuote
}

func (s Swap) crossCurrency(lookup *market.Lookup, funding pricing.FundingSpec, engine pricing.EngineOptions) (*CrossCurrency, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	out := &CrossCurrency{}
	for i := range s.Legs {
		inst, err := s.Legs[i].Instrument(lookup, funding, engine)
		if err != nil {
			return nil, fmt.Errorf("swap.Instrument: leg %d (%s): %w", i, s.Legs[i].Currency, err)
		}
		out.legs[i] = inst
	}

	rate, err := lookup.FX(*s.Legs[1].Currency, *s.Legs[0].Currency)
	if err != nil {
		return nil, fmt.Errorf("swap.Instrument: %w", err)
	}
	out.fx = market.NewSimpleQuote(rate)
	return out, nil
}

// Leg returns the bound leg i (0 or 1).
func (c *CrossCurrency) Leg(i int) *leg.Instrument { return c.legs[i] }

// Currency returns the reporting currency.
func (c *CrossCurrency) Currency() *security.Reference { return c.legs[0].Leg().Currency }

// FX returns the conversion rate captured at build time.
func (c *CrossCurrency) FX() float64 { return c.fx.Value() }

// NPV sums the legs' independent PVs in the first leg's currency.
func (c *CrossCurrency) NPV() (float64, error) {
	first, err := c.legs[0].NPV()
	if err != nil {
		return 0, err
	}
	second, err := c.legs[1].NPV()
	if err != nil {
		return 0, err
	}
	return first + second*c.fx.Value(), nil
}

// Measures implements pricing.Measurer. Leg PVs are in their own currencies.
func (c *CrossCurrency) Measures() (map[string]float64, error) {
	first, err := c.legs[0].NPV()
	if err != nil {
		return nil, err
	}
	second, err := c.legs[1].NPV()
	if err != nil {
		return nil, err
	}
	return map[string]float64{
		"leg0_npv": first,
		"leg1_npv": second,
		"fx":       c.fx.Value(),
	}, nil
}
