// Package market supplies the index, discount curve and FX lookups consumed
// by instrument valuation.
package market

import (
	"strings"
	"time"

	"github.com/meenmo/finsec/curve"
	"github.com/meenmo/finsec/decimal"
)

// ReferenceIndex enumerates the floating benchmarks with known conventions.
type ReferenceIndex string

const (
	ESTR      ReferenceIndex = "ESTR"
	EURIBOR3M ReferenceIndex = "EURIBOR3M"
	EURIBOR6M ReferenceIndex = "EURIBOR6M"
	TONAR     ReferenceIndex = "TONAR"
	TIBOR3M   ReferenceIndex = "TIBOR3M"
	TIBOR6M   ReferenceIndex = "TIBOR6M"
	SOFR      ReferenceIndex = "SOFR"
	CD91D     ReferenceIndex = "CD91D"
)

// IsOvernight reports whether the reference rate is an overnight index.
func IsOvernight(name string) bool {
	switch ReferenceIndex(strings.ToUpper(name)) {
	case ESTR, TONAR, SOFR:
		return true
	default:
		return false
	}
}

// Index is a named rate index with the term structures used to project and
// discount its flows.
type Index interface {
	Name() string
	Forwarding() curve.DiscountCurve
	DefaultCurve() curve.DiscountCurve
	Fixing(on time.Time) (decimal.Decimal, bool)
}

// RateIndex is the map-backed Index implementation.
type RateIndex struct {
	name       string
	forwarding curve.DiscountCurve
	discount   curve.DiscountCurve
	fixings    FixingFeed
}

// NewRateIndex returns an index that projects off forwarding and discounts
// off discount. A nil discount curve means forwarding is used for both.
func NewRateIndex(name string, forwarding, discount curve.DiscountCurve, fixings FixingFeed) *RateIndex {
	if discount == nil {
		discount = forwarding
	}
	return &RateIndex{name: name, forwarding: forwarding, discount: discount, fixings: fixings}
}

func (r *RateIndex) Name() string                      { return r.name }
func (r *RateIndex) Forwarding() curve.DiscountCurve   { return r.forwarding }
func (r *RateIndex) DefaultCurve() curve.DiscountCurve { return r.discount }

// Fixing returns the published fixing on the given date, if any.
func (r *RateIndex) Fixing(on time.Time) (decimal.Decimal, bool) {
	if r.fixings == nil {
		return decimal.Zero, false
	}
	return r.fixings.RateOn(on)
}

// shifted returns a copy of r with both curves moved by bp.
func (r *RateIndex) shifted(bp float64) (*RateIndex, error) {
	fwd, err := curve.NewSpread(r.forwarding, bp, curve.DefaultDayCount)
	if err != nil {
		return nil, err
	}
	out := &RateIndex{name: r.name, forwarding: fwd, discount: fwd, fixings: r.fixings}
	if r.discount != r.forwarding {
		if out.discount, err = curve.NewSpread(r.discount, bp, curve.DefaultDayCount); err != nil {
			return nil, err
		}
	}
	return out, nil
}
