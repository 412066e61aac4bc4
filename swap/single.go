package swap

import (
	"fmt"

	"github.com/meenmo/finsec/leg"
	"github.com/meenmo/finsec/market"
	"github.com/meenmo/finsec/pricing"
)

// Single is a single-currency fixed-vs-float swap.
type Single struct {
	fixed    *leg.Instrument
	floating *leg.Instrument
}

func (s Swap) single(lookup *market.Lookup, funding pricing.FundingSpec, engine pricing.EngineOptions) (*Single, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	fix, flt := s.FixedLeg(), s.FloatLeg()
	if fix == nil {
		return nil, fmt.Errorf("swap.Instrument: no fixed leg: %w", ErrMissingLegRole)
	}
	if flt == nil {
		return nil, fmt.Errorf("swap.Instrument: no floating leg: %w", ErrMissingLegRole)
	}

	dFix, okFix := fix.PaymentDelay()
	dFlt, okFlt := flt.PaymentDelay()
	if okFix && okFlt && dFix != dFlt {
		return nil, fmt.Errorf("swap.Instrument: fixed %dD, float %dD: %w", dFix, dFlt, ErrPaymentDelayMismatch)
	}
	if pFix, pFlt := fix.Accrual.CouponPeriod(), flt.Accrual.CouponPeriod(); !pFix.Equal(pFlt) {
		return nil, fmt.Errorf("swap.Instrument: fixed %s, float %s: %w", pFix, pFlt, ErrPeriodMismatch)
	}

	fixInst, err := fix.Instrument(lookup, funding, engine)
	if err != nil {
		return nil, fmt.Errorf("swap.Instrument: fixed leg: %w", err)
	}
	fltInst, err := flt.Instrument(lookup, funding, engine)
	if err != nil {
		return nil, fmt.Errorf("swap.Instrument: floating leg: %w", err)
	}
	return &Single{fixed: fixInst, floating: fltInst}, nil
}

// FixedLeg returns the bound fixed leg.
func (s *Single) FixedLeg() *leg.Instrument { return s.fixed }

// FloatLeg returns the bound floating leg.
func (s *Single) FloatLeg() *leg.Instrument { return s.floating }

// FixedLegNPV is the PV of the fixed leg.
func (s *Single) FixedLegNPV() (float64, error) { return s.fixed.NPV() }

// FloatLegNPV is the PV of the floating leg.
func (s *Single) FloatLegNPV() (float64, error) { return s.floating.NPV() }

// NPV is the sum of both legs.
func (s *Single) NPV() (float64, error) {
	fix, err := s.fixed.NPV()
	if err != nil {
		return 0, err
	}
	flt, err := s.floating.NPV()
	if err != nil {
		return 0, err
	}
	return fix + flt, nil
}

// FixedLegBPS is the fixed leg PV change for a one basis point coupon move.
func (s *Single) FixedLegBPS() (float64, error) { return s.fixed.BPS() }

// FairRate is the fixed rate that sets NPV to zero.
func (s *Single) FairRate() (float64, error) {
	annuity, err := s.fixed.Annuity()
	if err != nil {
		return 0, err
	}
	if annuity == 0 {
		return 0, fmt.Errorf("swap.FairRate: zero fixed leg annuity")
	}
	flt, err := s.floating.NPV()
	if err != nil {
		return 0, err
	}
	return -flt / annuity, nil
}

// Measures implements pricing.Measurer.
func (s *Single) Measures() (map[string]float64, error) {
	fix, err := s.fixed.NPV()
	if err != nil {
		return nil, err
	}
	flt, err := s.floating.NPV()
	if err != nil {
		return nil, err
	}
	fair, err := s.FairRate()
	if err != nil {
		return nil, err
	}
	bps, err := s.FixedLegBPS()
	if err != nil {
		return nil, err
	}
	return map[string]float64{
		"fixed_npv": fix,
		"float_npv": flt,
		"fixed_bps": bps,
		"fair_rate": fair,
	}, nil
}
