package curve

import (
	"math"
	"time"

	"github.com/meenmo/finsec/daycount"
)

// Spread shifts a base curve's zero rates by a parallel amount.
type Spread struct {
	base     DiscountCurve
	shift    float64
	dayCount daycount.Convention
}

// NewSpread shifts base by bp basis points.
func NewSpread(base DiscountCurve, bp float64, dc daycount.Convention) (*Spread, error) {
	if base == nil {
		return nil, ErrNilCurve
	}
	return &Spread{base: base, shift: bp * 1e-4, dayCount: timeAxis(dc)}, nil
}

func (s *Spread) ReferenceDate() time.Time { return s.base.ReferenceDate() }

func (s *Spread) DF(t time.Time) float64 {
	tau := s.dayCount.Fraction(s.base.ReferenceDate(), t)
	return s.base.DF(t) * math.Exp(-s.shift*tau)
}

func (s *Spread) ZeroRateAt(t time.Time) float64 {
	return s.base.ZeroRateAt(t) + s.shift*100
}
