package curve

import (
	"math"
	"time"

	"github.com/meenmo/finsec/daycount"
)

// Flat is a constant continuously compounded zero curve.
type Flat struct {
	reference time.Time
	rate      float64
	dayCount  daycount.Convention
}

// NewFlat returns a flat curve at rate (decimal, 0.05 == 5%).
func NewFlat(reference time.Time, rate float64, dc daycount.Convention) *Flat {
	return &Flat{reference: reference, rate: rate, dayCount: timeAxis(dc)}
}

func (f *Flat) ReferenceDate() time.Time { return f.reference }

// Rate returns the curve level as a decimal.
func (f *Flat) Rate() float64 { return f.rate }

func (f *Flat) DF(t time.Time) float64 {
	return math.Exp(-f.rate * f.dayCount.Fraction(f.reference, t))
}

func (f *Flat) ZeroRateAt(time.Time) float64 {
	return f.rate * 100
}
