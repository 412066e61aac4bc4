// Package bond values fixed-rate bonds built on a leg: cashflows, accrued
// interest, curve prices, yield to maturity and asset swap spreads.
package bond

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/finsec/calendar"
	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/leg"
	"github.com/meenmo/finsec/security"
)

var (
	// ErrUnsupportedCouponType is returned when a bond coupon is not constant.
	ErrUnsupportedCouponType = errors.New("unsupported coupon type")
	// ErrInvalidBond is returned for non-positive notionals or negative settle days.
	ErrInvalidBond = errors.New("invalid bond")
	// ErrNoConvergence is returned when the yield solver fails.
	ErrNoConvergence = errors.New("yield did not converge")
)

// DefaultFace is the price quoting basis.
var DefaultFace = decimal.NewFromInt(100)

// Bond is a coupon leg plus the terms needed to settle and redeem it.
type Bond struct {
	Notional    decimal.Decimal
	Leg         leg.Leg
	SettleDays  int
	CreditIndex string
	// Face is the quoting basis; zero means DefaultFace.
	Face decimal.Decimal
	// Settle is the original settlement date; zero means the accrual start.
	Settle time.Time
	// Redemption is the final redemption per Face; nil means Face.
	Redemption *decimal.Decimal
	Security   *security.Reference
}

// FaceValue returns Face or DefaultFace.
func (b Bond) FaceValue() decimal.Decimal {
	if b.Face.IsZero() {
		return DefaultFace
	}
	return b.Face
}

// FinalRedemption returns the redemption price per face.
func (b Bond) FinalRedemption() decimal.Decimal {
	if b.Redemption == nil {
		return b.FaceValue()
	}
	return *b.Redemption
}

// OriginalSettle returns the issue settlement date.
func (b Bond) OriginalSettle() time.Time {
	if !b.Settle.IsZero() {
		return b.Settle
	}
	return b.Leg.Accrual.Start()
}

// SettlementDate returns the settlement date of a trade done on trade.
func (b Bond) SettlementDate(trade time.Time) time.Time {
	cal := b.Leg.Accrual.PaymentCalendar()
	return calendar.AddBusinessDays(cal, calendar.Adjust(cal, trade, calendar.Following), b.SettleDays)
}

// Validate checks the bond terms without requiring constant coupons.
func (b Bond) Validate() error {
	if b.Notional.Sign() <= 0 {
		return fmt.Errorf("bond.Validate: notional %s: %w", b.Notional, ErrInvalidBond)
	}
	if b.SettleDays < 0 {
		return fmt.Errorf("bond.Validate: settle days %d: %w", b.SettleDays, ErrInvalidBond)
	}
	return b.Leg.Validate()
}
