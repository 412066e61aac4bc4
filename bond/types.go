package bond

import "time"

// Cashflow is a single dated bond payment in currency units.
type Cashflow struct {
	AccrualStart time.Time
	AccrualEnd   time.Time
	Date         time.Time
	Fraction     float64
	Coupon       float64
	Principal    float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// IsRedemption reports whether c carries principal only.
func (c Cashflow) IsRedemption() bool {
	return c.Coupon == 0 && c.Principal != 0
}
