package market

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/meenmo/finsec/security"
)

var (
	// ErrUnknownIndex is returned when a rate index is not in the lookup.
	ErrUnknownIndex = errors.New("unknown index")
	// ErrUnknownFxPair is returned when neither direction of a pair is quoted.
	ErrUnknownFxPair = errors.New("unknown fx pair")
	// ErrDuplicateIndex is returned when an index name is registered twice.
	ErrDuplicateIndex = errors.New("duplicate index")
)

// Lookup resolves indices and FX rates for one valuation date. Populate it
// before sharing; reads are safe for concurrent use afterwards.
type Lookup struct {
	valuationDate time.Time
	indices       map[string]Index
	fx            map[string]*SimpleQuote
}

func NewLookup(valuationDate time.Time) *Lookup {
	return &Lookup{
		valuationDate: valuationDate,
		indices:       make(map[string]Index),
		fx:            make(map[string]*SimpleQuote),
	}
}

// ValuationDate returns the date the lookup's curves and quotes refer to.
func (l *Lookup) ValuationDate() time.Time { return l.valuationDate }

// AddIndex registers idx under its upper-cased name.
func (l *Lookup) AddIndex(idx Index) error {
	key := strings.ToUpper(idx.Name())
	if _, ok := l.indices[key]; ok {
		return fmt.Errorf("market.AddIndex: %s: %w", key, ErrDuplicateIndex)
	}
	l.indices[key] = idx
	return nil
}

// Index returns the index registered under name.
func (l *Lookup) Index(name string) (Index, error) {
	idx, ok := l.indices[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("market.Index: %s: %w", name, ErrUnknownIndex)
	}
	return idx, nil
}

// Indices returns the registered index names, sorted.
func (l *Lookup) Indices() []string {
	out := make([]string, 0, len(l.indices))
	for k := range l.indices {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func pairKey(base, quote security.Reference) string {
	return base.String() + "/" + quote.String()
}

// SetFX quotes one unit of base in quote currency, returning the live quote.
func (l *Lookup) SetFX(base, quote security.Reference, rate float64) *SimpleQuote {
	key := pairKey(base, quote)
	if q, ok := l.fx[key]; ok {
		q.SetValue(rate)
		return q
	}
	q := NewSimpleQuote(rate)
	l.fx[key] = q
	return q
}

// FX returns the price of one unit of base in quote. The inverse quote is used
// when only the opposite direction is set; identical references give 1.
func (l *Lookup) FX(base, quote security.Reference) (float64, error) {
	if !security.Differs(base, quote) {
		return 1, nil
	}
	if q, ok := l.fx[pairKey(base, quote)]; ok {
		return q.Value(), nil
	}
	if q, ok := l.fx[pairKey(quote, base)]; ok {
		if v := q.Value(); v != 0 {
			return 1 / v, nil
		}
	}
	return 0, fmt.Errorf("market.FX: %s/%s: %w", base, quote, ErrUnknownFxPair)
}

// Shifted returns a lookup whose index curves are moved in parallel by bp.
// FX quotes are shared with l.
func (l *Lookup) Shifted(bp float64) (*Lookup, error) {
	out := &Lookup{valuationDate: l.valuationDate, indices: make(map[string]Index, len(l.indices)), fx: l.fx}
	for k, idx := range l.indices {
		ri, ok := idx.(*RateIndex)
		if !ok {
			return nil, fmt.Errorf("market.Shifted: %s: unsupported index type %T", k, idx)
		}
		s, err := ri.shifted(bp)
		if err != nil {
			return nil, fmt.Errorf("market.Shifted: %s: %w", k, err)
		}
		out.indices[k] = s
	}
	return out, nil
}
