// Package rate models coupon rates as expression trees of fixed rates,
// floating index references and composite operations.
package rate

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/finsec/decimal"
)

var (
	// ErrUnsupportedOperand is returned when a value cannot be lifted into an expression.
	ErrUnsupportedOperand = errors.New("unsupported operand type")
	// ErrArity is returned when a composite has the wrong number of children.
	ErrArity = errors.New("wrong number of operands")
	// ErrUnresolvedFixing is returned when a floating leaf has no fixing source or value.
	ErrUnresolvedFixing = errors.New("unresolved fixing")
)

// Expression is a coupon rate: FixedRate, FloatingRate or CompositeRate.
type Expression interface {
	// Fixing evaluates the expression for a period fixing on `on`.
	Fixing(on time.Time, src FixingSource) (decimal.Decimal, error)
	IsConstant() bool
	IsFloat() bool
	String() string
	isExpression()
}

// FixingSource resolves floating leaves.
type FixingSource interface {
	Fixing(index FloatingRate, on time.Time) (decimal.Decimal, error)
}

// FixedRate is a constant rate, e.g. 0.035 for 3.5%.
type FixedRate struct {
	Rate decimal.Decimal
}

// Fixed builds a FixedRate from a decimal literal; it panics on malformed input.
func Fixed(literal string) FixedRate {
	return FixedRate{Rate: decimal.MustFromString(literal)}
}

func (FixedRate) isExpression() {}

func (f FixedRate) Fixing(time.Time, FixingSource) (decimal.Decimal, error) {
	return f.Rate, nil
}

func (FixedRate) IsConstant() bool { return true }
func (FixedRate) IsFloat() bool    { return false }
func (f FixedRate) String() string { return f.Rate.String() }

// Wrap lifts a value into an expression. Integers, floats and decimals become
// FixedRate; expressions pass through unchanged.
func Wrap(v any) (Expression, error) {
	switch x := v.(type) {
	case Expression:
		return x, nil
	case decimal.Decimal:
		return FixedRate{Rate: x}, nil
	case *decimal.Decimal:
		if x == nil {
			return nil, fmt.Errorf("rate.Wrap: nil decimal: %w", ErrUnsupportedOperand)
		}
		return FixedRate{Rate: *x}, nil
	case int:
		return FixedRate{Rate: decimal.NewFromInt(int64(x))}, nil
	case int32:
		return FixedRate{Rate: decimal.NewFromInt(int64(x))}, nil
	case int64:
		return FixedRate{Rate: decimal.NewFromInt(x)}, nil
	case float64:
		d, err := decimal.NewFromFloat(x)
		if err != nil {
			return nil, fmt.Errorf("rate.Wrap: %w: %v", ErrUnsupportedOperand, err)
		}
		return FixedRate{Rate: d}, nil
	case float32:
		return Wrap(float64(x))
	default:
		return nil, fmt.Errorf("rate.Wrap: %T: %w", v, ErrUnsupportedOperand)
	}
}

// MustWrap is Wrap for operands known to be valid.
func MustWrap(v any) Expression {
	e, err := Wrap(v)
	if err != nil {
		panic(err)
	}
	return e
}
