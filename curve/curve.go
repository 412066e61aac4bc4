// Package curve provides the discount term structures consumed by the leg,
// bond and swap instruments. Curves are immutable once built and safe for
// concurrent reads.
package curve

import (
	"errors"
	"math"
	"time"

	"github.com/meenmo/finsec/daycount"
	"github.com/meenmo/finsec/utils"
)

var (
	// ErrNilCurve is returned when a required curve argument is nil.
	ErrNilCurve = errors.New("nil curve")
	// ErrNoNodes is returned when a node curve is built without discount factors.
	ErrNoNodes = errors.New("curve has no nodes")
	// ErrInvalidDiscountFactor is returned for non-positive discount factors.
	ErrInvalidDiscountFactor = errors.New("invalid discount factor")
)

// DefaultDayCount is the time axis used when a curve is built without one.
const DefaultDayCount = daycount.Act365Fixed

// DiscountCurve provides discount factors and zero rates for valuation.
//
// ZeroRateAt returns a continuously compounded zero rate in percent.
type DiscountCurve interface {
	ReferenceDate() time.Time
	DF(t time.Time) float64
	ZeroRateAt(t time.Time) float64
}

// ForwardRate returns the simple forward rate implied by c between start and
// end, using frac as the accrual fraction. It is zero when frac is zero.
func ForwardRate(c DiscountCurve, start, end time.Time, frac float64) float64 {
	if frac == 0 {
		return 0
	}
	return (c.DF(start)/c.DF(end) - 1) / frac
}

// LogForwardRate is the continuously compounded analogue of ForwardRate.
func LogForwardRate(c DiscountCurve, start, end time.Time, frac float64) float64 {
	if frac == 0 {
		return 0
	}
	return math.Log(c.DF(start)/c.DF(end)) / frac
}

func zeroFromDF(df, tau float64) float64 {
	if tau == 0 {
		return 0
	}
	return utils.RoundTo(-math.Log(df)/tau*100, 12)
}

func timeAxis(dc daycount.Convention) daycount.Convention {
	if dc == "" {
		return DefaultDayCount
	}
	return dc
}
