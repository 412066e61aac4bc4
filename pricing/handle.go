// Package pricing pairs instruments with a market snapshot. A Builder binds an
// instrument to a market.Lookup (stage one); the returned Handle evaluates it
// (stage two) and may be evaluated any number of times.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meenmo/finsec/market"
	"github.com/meenmo/finsec/security"
)

var (
	// ErrNilLookup is returned when a Builder is called without a lookup.
	ErrNilLookup = errors.New("nil market lookup")
	// ErrNilInstrument is returned when a Handle is built without an instrument.
	ErrNilInstrument = errors.New("nil instrument")
)

// Instrument is anything that can be discounted to a net present value.
type Instrument interface {
	NPV() (float64, error)
}

// Measurer is implemented by instruments that report extra analytics
// (fair rate, BPS, yield...).
type Measurer interface {
	Measures() (map[string]float64, error)
}

// Position is the result of evaluating a Handle.
type Position struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name,omitempty"`
	ValuationDate time.Time           `json:"valuation_date"`
	Currency      *security.Reference `json:"currency,omitempty"`
	NPV           float64             `json:"npv"`
	Measures      map[string]float64  `json:"measures,omitempty"`
}

// Handle is an instrument bound to the lookup it was built against.
type Handle struct {
	ID         uuid.UUID
	Name       string
	Currency   *security.Reference
	instrument Instrument
	lookup     *market.Lookup
}

// NewHandle binds inst to lookup.
func NewHandle(inst Instrument, lookup *market.Lookup, ccy *security.Reference) (*Handle, error) {
	if inst == nil {
		return nil, ErrNilInstrument
	}
	if lookup == nil {
		return nil, ErrNilLookup
	}
	return &Handle{ID: uuid.New(), Currency: ccy, instrument: inst, lookup: lookup}, nil
}

// Instrument returns the bound instrument.
func (h *Handle) Instrument() Instrument { return h.instrument }

// Lookup returns the market snapshot captured at build time.
func (h *Handle) Lookup() *market.Lookup { return h.lookup }

// ValuationDate returns the date of the captured snapshot.
func (h *Handle) ValuationDate() time.Time { return h.lookup.ValuationDate() }

// Evaluate values the instrument against the captured snapshot.
func (h *Handle) Evaluate() (Position, error) {
	npv, err := h.instrument.NPV()
	if err != nil {
		return Position{}, fmt.Errorf("pricing.Evaluate: %w", err)
	}
	pos := Position{
		ID:            h.ID,
		Name:          h.Name,
		ValuationDate: h.ValuationDate(),
		Currency:      h.Currency,
		NPV:           npv,
	}
	if m, ok := h.instrument.(Measurer); ok {
		if pos.Measures, err = m.Measures(); err != nil {
			return Position{}, fmt.Errorf("pricing.Evaluate: measures: %w", err)
		}
	}
	return pos, nil
}

// Builder is stage one of a valuation: it binds an instrument to a lookup.
type Builder func(*market.Lookup) (*Handle, error)

// Named sets the display name on every handle b builds.
func (b Builder) Named(name string) Builder {
	return func(l *market.Lookup) (*Handle, error) {
		h, err := b(l)
		if err != nil {
			return nil, err
		}
		h.Name = name
		return h, nil
	}
}
