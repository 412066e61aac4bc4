package bond

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/finsec/accrual"
	"github.com/meenmo/finsec/calendar"
	"github.com/meenmo/finsec/curve"
	"github.com/meenmo/finsec/daycount"
	"github.com/meenmo/finsec/period"
)

// ErrZeroPV01 is returned when the asset swap float leg has no remaining periods.
var ErrZeroPV01 = errors.New("zero pv01")

// ASWInput describes the floating leg the spread is quoted over.
type ASWInput struct {
	Settle        time.Time
	DirtyPrice    float64 // per face
	FloatPeriod   period.Period
	FloatDayCount daycount.Convention
	Calendar      calendar.ID
	Convention    calendar.BusinessDayConvention
	DiscountCurve curve.DiscountCurve
}

type ASWResult struct {
	SpreadBP float64
	PVBondRF float64
	PV01     float64
}

// AssetSwapSpread computes the par asset swap spread (in bp) using the
// approximation
//
//	ASW ≈ (PV_bond^{rf} - P_dirty) / PV01
//
// where PV01 is the PV of receiving 1bp per face on the floating leg from
// settle to maturity.
func (i *Instrument) AssetSwapSpread(in ASWInput) (ASWResult, error) {
	if in.Settle.IsZero() {
		return ASWResult{}, fmt.Errorf("bond.AssetSwapSpread: settle is required")
	}
	if in.DiscountCurve == nil {
		return ASWResult{}, fmt.Errorf("bond.AssetSwapSpread: %w", curve.ErrNilCurve)
	}

	maturity := i.Maturity()
	if !maturity.After(in.Settle) {
		return ASWResult{}, fmt.Errorf("bond.AssetSwapSpread: maturity %s must be after settle %s: %w",
			maturity.Format("2006-01-02"), in.Settle.Format("2006-01-02"), accrual.ErrInvalidDateRange)
	}

	pvBondRF, err := i.DirtyPrice(in.DiscountCurve, in.Settle)
	if err != nil {
		return ASWResult{}, err
	}

	fp := in.FloatPeriod
	floatLeg, err := accrual.New(accrual.Params{
		Start:           in.Settle,
		End:             accrual.EndDate(maturity),
		DayCount:        in.FloatDayCount,
		Period:          &fp,
		AccrualCalendar: in.Calendar,
		PaymentCalendar: in.Calendar,
		Convention:      in.Convention,
	})
	if err != nil {
		return ASWResult{}, fmt.Errorf("bond.AssetSwapSpread: float leg schedule: %w", err)
	}

	base := in.DiscountCurve.DF(in.Settle)
	sched := floatLeg.Schedule()
	pv01 := 0.0
	for k := range sched.End {
		pay := calendar.Adjust(floatLeg.PaymentCalendar(), sched.End[k], floatLeg.Convention())
		pv01 += i.face * sched.Frac[k] * 1e-4 * in.DiscountCurve.DF(pay) / base
	}
	if pv01 == 0 {
		return ASWResult{}, fmt.Errorf("bond.AssetSwapSpread: %w", ErrZeroPV01)
	}

	return ASWResult{
		SpreadBP: (pvBondRF - in.DirtyPrice) / pv01,
		PVBondRF: pvBondRF,
		PV01:     pv01,
	}, nil
}
