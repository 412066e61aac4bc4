package rate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/period"
)

// ErrUnknownFloatKind is returned when a floating type tag cannot be parsed.
var ErrUnknownFloatKind = errors.New("unknown floating rate kind")

// FloatKind is how a floating index fixes over a period.
type FloatKind string

const (
	// Constant fixes once and applies the fixing for the whole period.
	Constant FloatKind = "constant"
	// Overnight compounds or averages daily fixings over the period.
	Overnight FloatKind = "overnight"
	// Term fixes a term rate at the start of the period.
	Term FloatKind = "term"
)

// ParseFloatKind parses "constant", "overnight" or "term".
func ParseFloatKind(s string) (FloatKind, error) {
	switch k := FloatKind(strings.ToLower(strings.TrimSpace(s))); k {
	case Constant, Overnight, Term:
		return k, nil
	}
	return "", fmt.Errorf("rate.ParseFloatKind: %q: %w", s, ErrUnknownFloatKind)
}

// FloatType carries how a floating leaf fixes.
type FloatType struct {
	Kind FloatKind
	// PayDelay is an optional payment lag attached to the index convention.
	PayDelay *period.Period
	// CompoundedNotAveraged applies to Overnight only.
	CompoundedNotAveraged bool
}

// FloatingRate references a rate index by name.
type FloatingRate struct {
	Index string
	Type  FloatType
}

// Float builds a term-style floating leaf for index.
func Float(index string) FloatingRate {
	return FloatingRate{Index: index, Type: FloatType{Kind: Term}}
}

// OvernightCompounded builds a compounded overnight leaf for index.
func OvernightCompounded(index string) FloatingRate {
	return FloatingRate{Index: index, Type: FloatType{Kind: Overnight, CompoundedNotAveraged: true}}
}

func (FloatingRate) isExpression() {}

// Fixing resolves the leaf through src.
func (f FloatingRate) Fixing(on time.Time, src FixingSource) (decimal.Decimal, error) {
	if src == nil {
		return decimal.Zero, fmt.Errorf("rate.Fixing: %s on %s: no fixing source: %w", f.Index, on.Format("2006-01-02"), ErrUnresolvedFixing)
	}
	return src.Fixing(f, on)
}

func (FloatingRate) IsConstant() bool { return false }
func (FloatingRate) IsFloat() bool    { return true }
func (f FloatingRate) String() string { return f.Index }

// ResetLookup holds historical resets keyed by index name and fixing date.
// It is read-only once built.
type ResetLookup map[string]map[string]decimal.Decimal

// NewResetLookup returns an empty lookup.
func NewResetLookup() ResetLookup {
	return ResetLookup{}
}

// Set records a reset. Call during construction only.
func (r ResetLookup) Set(index string, on time.Time, value decimal.Decimal) {
	byDate, ok := r[index]
	if !ok {
		byDate = map[string]decimal.Decimal{}
		r[index] = byDate
	}
	byDate[on.Format("2006-01-02")] = value
}

// Fixing implements FixingSource.
func (r ResetLookup) Fixing(f FloatingRate, on time.Time) (decimal.Decimal, error) {
	if v, ok := r[f.Index][on.Format("2006-01-02")]; ok {
		return v, nil
	}
	return decimal.Zero, fmt.Errorf("rate.ResetLookup: %s on %s: %w", f.Index, on.Format("2006-01-02"), ErrUnresolvedFixing)
}
