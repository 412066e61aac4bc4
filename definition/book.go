// Package definition reads instrument books from YAML or JSON files and turns
// them into legs, bonds, swaps and the market data needed to value them.
package definition

import (
	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/rate"
)

// Book is the on-disk shape of a set of instruments plus their market.
type Book struct {
	ValuationDate string     `yaml:"valuation_date" json:"valuation_date" validate:"required,date"`
	Funding       FundingDef `yaml:"funding" json:"funding"`
	Curves        []CurveDef `yaml:"curves" json:"curves" validate:"required,min=1,dive"`
	FX            []FXDef    `yaml:"fx,omitempty" json:"fx,omitempty" validate:"dive"`
	Legs          []LegDef   `yaml:"legs,omitempty" json:"legs,omitempty" validate:"dive"`
	Bonds         []BondDef  `yaml:"bonds,omitempty" json:"bonds,omitempty" validate:"dive"`
	Swaps         []SwapDef  `yaml:"swaps,omitempty" json:"swaps,omitempty" validate:"dive"`
	OIS           []OISDef   `yaml:"ois,omitempty" json:"ois,omitempty" validate:"dive"`
}

// FundingDef picks discounting curves. ByCurrency wins over Index.
type FundingDef struct {
	Index      string            `yaml:"index,omitempty" json:"index,omitempty"`
	ByCurrency map[string]string `yaml:"by_currency,omitempty" json:"by_currency,omitempty" validate:"dive,keys,iso4217,endkeys,required"`
}

// CurveDef registers one index. Exactly one of Rate, Nodes and Base is set:
// a flat continuously compounded rate, discount factors by date, or a
// parallel spread over a curve registered earlier in the book.
type CurveDef struct {
	Index    string             `yaml:"index" json:"index" validate:"required"`
	DayCount string             `yaml:"day_count,omitempty" json:"day_count,omitempty" validate:"omitempty,daycount"`
	Rate     *float64           `yaml:"rate,omitempty" json:"rate,omitempty" validate:"required_without_all=Nodes Base,excluded_with=Nodes Base"`
	Nodes    map[string]float64 `yaml:"nodes,omitempty" json:"nodes,omitempty" validate:"required_without_all=Rate Base,excluded_with=Base,dive,keys,date,endkeys,gt=0"`
	Base     string             `yaml:"base,omitempty" json:"base,omitempty" validate:"required_without_all=Rate Nodes"`
	SpreadBP float64            `yaml:"spread_bp,omitempty" json:"spread_bp,omitempty"`
	// Discount names the index whose curve discounts this one; empty means self.
	Discount string                     `yaml:"discount,omitempty" json:"discount,omitempty"`
	Fixings  map[string]decimal.Decimal `yaml:"fixings,omitempty" json:"fixings,omitempty" validate:"dive,keys,date,endkeys"`
}

// FXDef quotes one unit of Base in Quote.
type FXDef struct {
	Base  string  `yaml:"base" json:"base" validate:"required,iso4217"`
	Quote string  `yaml:"quote" json:"quote" validate:"required,iso4217,nefield=Base"`
	Rate  float64 `yaml:"rate" json:"rate" validate:"gt=0"`
}

// ScheduleDef mirrors accrual.Params. Set exactly one of Frequency and Period.
type ScheduleDef struct {
	Start           string           `yaml:"start" json:"start" validate:"required,date"`
	End             string           `yaml:"end" json:"end" validate:"required,end"`
	DayCount        string           `yaml:"day_count" json:"day_count" validate:"required,daycount"`
	Frequency       *decimal.Decimal `yaml:"frequency,omitempty" json:"frequency,omitempty" validate:"required_without=Period"`
	Period          string           `yaml:"period,omitempty" json:"period,omitempty" validate:"omitempty,tenor"`
	AccrualCalendar string           `yaml:"accrual_calendar,omitempty" json:"accrual_calendar,omitempty" validate:"omitempty,calendar"`
	PaymentCalendar string           `yaml:"payment_calendar,omitempty" json:"payment_calendar,omitempty" validate:"omitempty,calendar"`
	Convention      string           `yaml:"convention,omitempty" json:"convention,omitempty" validate:"omitempty,bdc"`
	Stub            string           `yaml:"stub,omitempty" json:"stub,omitempty" validate:"omitempty,oneof=front back"`
	EndOfMonth      bool             `yaml:"end_of_month,omitempty" json:"end_of_month,omitempty"`
}

// LegDef is a single cashflow stream. One notional or coupon is broadcast.
type LegDef struct {
	Name      string            `yaml:"name,omitempty" json:"name,omitempty"`
	Schedule  ScheduleDef       `yaml:"schedule" json:"schedule"`
	Notionals []decimal.Decimal `yaml:"notionals" json:"notionals" validate:"required,min=1"`
	Coupons   []rate.Node       `yaml:"coupons" json:"coupons" validate:"required,min=1"`
	Currency  string            `yaml:"currency,omitempty" json:"currency,omitempty" validate:"omitempty,iso4217"`
	PayDelay  string            `yaml:"pay_delay,omitempty" json:"pay_delay,omitempty" validate:"omitempty,tenor"`
}

// BondDef is a fixed coupon bond.
type BondDef struct {
	Name        string           `yaml:"name" json:"name" validate:"required"`
	Security    string           `yaml:"security,omitempty" json:"security,omitempty"`
	Notional    decimal.Decimal  `yaml:"notional" json:"notional"`
	Coupon      rate.Node        `yaml:"coupon" json:"coupon"`
	Schedule    ScheduleDef      `yaml:"schedule" json:"schedule"`
	Currency    string           `yaml:"currency,omitempty" json:"currency,omitempty" validate:"omitempty,iso4217"`
	SettleDays  int              `yaml:"settle_days,omitempty" json:"settle_days,omitempty" validate:"gte=0"`
	CreditIndex string           `yaml:"credit_index,omitempty" json:"credit_index,omitempty"`
	Face        *decimal.Decimal `yaml:"face,omitempty" json:"face,omitempty"`
	Redemption  *decimal.Decimal `yaml:"redemption,omitempty" json:"redemption,omitempty"`
	Settle      string           `yaml:"settle,omitempty" json:"settle,omitempty" validate:"omitempty,date"`
}

// SwapDef pairs two legs.
type SwapDef struct {
	Name string   `yaml:"name" json:"name" validate:"required"`
	Legs []LegDef `yaml:"legs" json:"legs" validate:"len=2,dive"`
}

// OISDef is a standard overnight index swap quoted off a preset.
type OISDef struct {
	Name     string          `yaml:"name" json:"name" validate:"required"`
	Preset   string          `yaml:"preset" json:"preset" validate:"required,oneof=SOFR ESTR"`
	Trade    string          `yaml:"trade" json:"trade" validate:"required,date"`
	Tenor    string          `yaml:"tenor" json:"tenor" validate:"required,tenor"`
	Rate     decimal.Decimal `yaml:"rate" json:"rate"`
	Notional decimal.Decimal `yaml:"notional,omitempty" json:"notional,omitempty"`
	Averaged bool            `yaml:"averaged,omitempty" json:"averaged,omitempty"`
}
