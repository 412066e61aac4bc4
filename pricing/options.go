package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/finsec/market"
	"github.com/meenmo/finsec/security"
)

// FundingSpec picks the discounting index of a leg: by currency when listed in
// ByCurrency, otherwise Index.
type FundingSpec struct {
	Index      string
	ByCurrency map[string]string
}

// IndexFor returns the funding index name for ccy.
func (f FundingSpec) IndexFor(ccy *security.Reference) (string, error) {
	if ccy != nil {
		if name, ok := f.ByCurrency[strings.ToUpper(ccy.Ticker)]; ok {
			return name, nil
		}
	}
	if f.Index == "" {
		return "", fmt.Errorf("pricing.IndexFor: no funding index for %v: %w", ccy, market.ErrUnknownIndex)
	}
	return f.Index, nil
}

// EngineOptions tunes the discounting engine.
type EngineOptions struct {
	// ValuationDate overrides the lookup's date when set. Flows paid before
	// it are treated as settled.
	ValuationDate time.Time
}

// AsOf returns the effective valuation date against l.
func (o EngineOptions) AsOf(l *market.Lookup) time.Time {
	if !o.ValuationDate.IsZero() {
		return o.ValuationDate
	}
	return l.ValuationDate()
}
