package bond

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/finsec/config"
	"github.com/meenmo/finsec/curve"
	"github.com/meenmo/finsec/utils"
)

// NPV discounts the flows paid after settle back to settle, in currency units.
func (i *Instrument) NPV(c curve.DiscountCurve, settle time.Time) (float64, error) {
	if c == nil {
		return 0, curve.ErrNilCurve
	}
	base := c.DF(settle)
	var pv float64
	for _, cf := range i.remaining(settle) {
		pv += cf.Amount() * c.DF(cf.Date) / base
	}
	return pv, nil
}

// DirtyPrice is the curve value per face.
func (i *Instrument) DirtyPrice(c curve.DiscountCurve, settle time.Time) (float64, error) {
	pv, err := i.NPV(c, settle)
	if err != nil {
		return 0, err
	}
	return pv / i.notional * i.face, nil
}

// CleanPrice is DirtyPrice less accrued, per face.
func (i *Instrument) CleanPrice(c curve.DiscountCurve, settle time.Time) (float64, error) {
	dirty, err := i.DirtyPrice(c, settle)
	if err != nil {
		return 0, err
	}
	return dirty - i.Accrued(settle), nil
}

// periodTimes returns the remaining per-face amounts and their times in
// coupon periods from settle (ACT/ACT ICMA style).
func (i *Instrument) periodTimes(settle time.Time) ([]float64, []float64) {
	k0 := i.couponIndex(settle)
	if k0 < 0 {
		k0 = 0
	}
	first := i.flows[k0]
	t1 := 1.0
	if span := utils.Days(first.AccrualStart, first.AccrualEnd); span > 0 {
		t1 = float64(utils.Days(settle, first.AccrualEnd)) / float64(span)
	}

	var amts, times []float64
	last := len(i.coupons) - 1
	for k, cf := range i.flows {
		if !cf.Date.After(settle) {
			continue
		}
		idx := k
		if k > last {
			idx = last
		}
		amts = append(amts, cf.Amount()/i.notional*i.face)
		times = append(times, t1+float64(idx-k0))
	}
	return amts, times
}

// Yield solves for the yield to maturity, compounded at the coupon frequency,
// that reproduces dirtyPrice (per face) at settle.
func (i *Instrument) Yield(dirtyPrice float64, settle time.Time) (float64, error) {
	freq, err := i.bond.Leg.Accrual.PaymentsPerYear()
	if err != nil || freq <= 0 {
		freq = 1
	}
	amts, times := i.periodTimes(settle)
	if len(amts) == 0 {
		return 0, fmt.Errorf("bond.Yield: no cashflows after %s: %w", settle.Format(utils.DateLayout), ErrNoConvergence)
	}
	y, _, err := solveYield(dirtyPrice, float64(freq), amts, times, config.GetConfig())
	return y, err
}

// solveYield finds y such that priceAndDeriv(y) == target via Newton-Raphson.
func solveYield(target, freq float64, amts, times []float64, cfg config.Config) (float64, int, error) {
	y := clamp(0.025, cfg.YieldFloor, cfg.YieldCeiling)

	for iter := 0; iter < cfg.MaxYieldIterations; iter++ {
		price, dPdy := priceAndDeriv(y, freq, amts, times)
		f := price - target

		if math.Abs(f) < cfg.ConvergenceTolerance {
			return y, iter + 1, nil
		}
		if math.Abs(dPdy) < cfg.DerivativeThreshold {
			return y, iter + 1, fmt.Errorf("bond.Yield: derivative too small at iter %d: %w", iter, ErrNoConvergence)
		}

		y = clamp(y-f/dPdy, cfg.YieldFloor, cfg.YieldCeiling)
	}

	return y, cfg.MaxYieldIterations, fmt.Errorf("bond.Yield: %d iterations: %w", cfg.MaxYieldIterations, ErrNoConvergence)
}

// priceAndDeriv returns (price, dPrice/dy):
//
//	price = Σ CF_k / (1+y/f)^t_k
//	dP/dy = Σ −(t_k/f) · CF_k / (1+y/f)^(t_k+1)
func priceAndDeriv(y, freq float64, amts, times []float64) (float64, float64) {
	base := 1.0 + y/freq
	var price, deriv float64
	for k, amt := range amts {
		t := times[k]
		price += amt / math.Pow(base, t)
		deriv += -(t / freq) * amt / math.Pow(base, t+1)
	}
	return price, deriv
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
