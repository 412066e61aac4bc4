// Package swap models two-leg swaps. Single-currency swaps value as one
// fixed-vs-float instrument; cross-currency swaps value each leg on its own
// funding curve and convert into the first leg's currency.
package swap

import (
	"errors"

	"github.com/meenmo/finsec/leg"
	"github.com/meenmo/finsec/market"
	"github.com/meenmo/finsec/pricing"
	"github.com/meenmo/finsec/security"
)

var (
	// ErrMissingLegRole is returned when a single-currency swap lacks a fixed
	// or a floating leg.
	ErrMissingLegRole = errors.New("missing leg role")
	// ErrPeriodMismatch is returned when the fixed and float coupon periods differ.
	ErrPeriodMismatch = errors.New("coupon period mismatch")
	// ErrPaymentDelayMismatch is returned when both legs set different payment delays.
	ErrPaymentDelayMismatch = errors.New("payment delay mismatch")
)

// Swap is exactly two legs. The sign of each leg's notional is its direction:
// positive receives, negative pays.
type Swap struct {
	Legs [2]leg.Leg
}

// New returns a swap of a and b.
func New(a, b leg.Leg) Swap {
	return Swap{Legs: [2]leg.Leg{a, b}}
}

// IsXCCY reports whether the legs are known to be in different currencies.
// A missing currency on either side is not proof of a difference.
func (s Swap) IsXCCY() bool {
	a, b := s.Legs[0].Currency, s.Legs[1].Currency
	if a == nil || b == nil {
		return false
	}
	return security.Differs(*a, *b)
}

// FixedLeg returns the first leg whose coupons are all constant, or nil.
func (s *Swap) FixedLeg() *leg.Leg {
	for i := range s.Legs {
		if s.Legs[i].IsConstant() {
			return &s.Legs[i]
		}
	}
	return nil
}

// FloatLeg returns the first leg with a floating coupon, or nil.
func (s *Swap) FloatLeg() *leg.Leg {
	for i := range s.Legs {
		if s.Legs[i].IsFloat() {
			return &s.Legs[i]
		}
	}
	return nil
}

// Validate checks each leg.
func (s Swap) Validate() error {
	for i := range s.Legs {
		if err := s.Legs[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Instrument binds the swap to lookup: a *Single for single-currency swaps or
// a *CrossCurrency otherwise.
func (s Swap) Instrument(lookup *market.Lookup, funding pricing.FundingSpec, engine pricing.EngineOptions) (pricing.Instrument, error) {
	if s.IsXCCY() {
		x, err := s.crossCurrency(lookup, funding, engine)
		if err != nil {
			return nil, err
		}
		return x, nil
	}
	single, err := s.single(lookup, funding, engine)
	if err != nil {
		return nil, err
	}
	return single, nil
}

// RiskBuilder returns the stage-one builder of s.
func (s Swap) RiskBuilder(funding pricing.FundingSpec, engine pricing.EngineOptions) pricing.Builder {
	return func(lookup *market.Lookup) (*pricing.Handle, error) {
		inst, err := s.Instrument(lookup, funding, engine)
		if err != nil {
			return nil, err
		}
		return pricing.NewHandle(inst, lookup, s.Legs[0].Currency)
	}
}
