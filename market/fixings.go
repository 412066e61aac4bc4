package market

import (
	"time"

	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/utils"
)

// FixingFeed supplies published index fixings.
type FixingFeed interface {
	RateOn(date time.Time) (decimal.Decimal, bool)
}

// MapFixingFeed is a static map-backed feed keyed by ISO date.
type MapFixingFeed struct {
	rates map[string]decimal.Decimal
}

func NewMapFixingFeed(rates map[string]decimal.Decimal) *MapFixingFeed {
	if rates == nil {
		rates = make(map[string]decimal.Decimal)
	}
	return &MapFixingFeed{rates: rates}
}

func (m *MapFixingFeed) RateOn(date time.Time) (decimal.Decimal, bool) {
	val, ok := m.rates[date.Format(utils.DateLayout)]
	return val, ok
}

// Len returns the number of stored fixings.
func (m *MapFixingFeed) Len() int { return len(m.rates) }
