package rate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/meenmo/finsec/decimal"
)

// ErrUnknownOperator is returned when an operator tag cannot be parsed.
var ErrUnknownOperator = errors.New("unknown operator")

// Operator combines the children of a CompositeRate.
type Operator string

const (
	OpAdd Operator = "ADD"
	OpSub Operator = "SUB"
	OpMul Operator = "MUL"
	OpNeg Operator = "NEG"
	OpMax Operator = "MAX"
	OpMin Operator = "MIN"
)

// ParseOperator parses an operator tag case-insensitively.
func ParseOperator(s string) (Operator, error) {
	switch op := Operator(strings.ToUpper(strings.TrimSpace(s))); op {
	case OpAdd, OpSub, OpMul, OpNeg, OpMax, OpMin:
		return op, nil
	}
	return "", fmt.Errorf("rate.ParseOperator: %q: %w", s, ErrUnknownOperator)
}

// CompositeRate applies Operator to Components. Children are stored as built;
// constants are never folded.
type CompositeRate struct {
	Components []Expression
	Operator   Operator
}

func (CompositeRate) isExpression() {}

// Fixing evaluates the children and combines them.
func (c CompositeRate) Fixing(on time.Time, src FixingSource) (decimal.Decimal, error) {
	values := make([]decimal.Decimal, len(c.Components))
	for i, child := range c.Components {
		v, err := child.Fixing(on, src)
		if err != nil {
			return decimal.Zero, err
		}
		values[i] = v
	}

	switch c.Operator {
	case OpAdd:
		acc := decimal.Zero
		for _, v := range values {
			var err error
			if acc, err = acc.Add(v); err != nil {
				return decimal.Zero, err
			}
		}
		return acc, nil
	case OpMul:
		acc := decimal.One
		for _, v := range values {
			var err error
			if acc, err = acc.Mul(v); err != nil {
				return decimal.Zero, err
			}
		}
		return acc, nil
	case OpSub:
		if len(values) != 2 {
			return decimal.Zero, fmt.Errorf("rate.Fixing: SUB with %d operands: %w", len(values), ErrArity)
		}
		return values[0].Sub(values[1])
	case OpNeg:
		if len(values) != 1 {
			return decimal.Zero, fmt.Errorf("rate.Fixing: NEG with %d operands: %w", len(values), ErrArity)
		}
		return values[0].Neg(), nil
	case OpMax, OpMin:
		if len(values) == 0 {
			return decimal.Zero, fmt.Errorf("rate.Fixing: %s with no operands: %w", c.Operator, ErrArity)
		}
		best := values[0]
		for _, v := range values[1:] {
			if (c.Operator == OpMax && v.Cmp(best) > 0) || (c.Operator == OpMin && v.Cmp(best) < 0) {
				best = v
			}
		}
		return best, nil
	default:
		panic(fmt.Sprintf("rate: unhandled operator %q", c.Operator))
	}
}

// IsConstant reports whether every leaf is fixed.
func (c CompositeRate) IsConstant() bool {
	for _, child := range c.Components {
		if !child.IsConstant() {
			return false
		}
	}
	return true
}

// IsFloat reports whether any leaf is floating.
func (c CompositeRate) IsFloat() bool {
	for _, child := range c.Components {
		if child.IsFloat() {
			return true
		}
	}
	return false
}

func (c CompositeRate) String() string {
	parts := make([]string, len(c.Components))
	for i, child := range c.Components {
		parts[i] = child.String()
	}
	return fmt.Sprintf("%s(%s)", c.Operator, strings.Join(parts, ", "))
}

func compose(op Operator, operands ...any) (Expression, error) {
	children := make([]Expression, len(operands))
	for i, o := range operands {
		e, err := Wrap(o)
		if err != nil {
			return nil, err
		}
		children[i] = e
	}
	return CompositeRate{Components: children, Operator: op}, nil
}

// Add returns a + b.
func Add(a, b any) (Expression, error) {
	return compose(OpAdd, a, b)
}

// Mul returns a * b.
func Mul(a, b any) (Expression, error) {
	return compose(OpMul, a, b)
}

// Neg returns a * -1.
func Neg(a any) (Expression, error) {
	return compose(OpMul, a, decimal.MinusOne)
}

// Sub returns a + Neg(b).
func Sub(a, b any) (Expression, error) {
	nb, err := Neg(b)
	if err != nil {
		return nil, err
	}
	return Add(a, nb)
}

// Max returns the largest operand. At least one operand is required.
func Max(operands ...any) (Expression, error) {
	if len(operands) == 0 {
		return nil, fmt.Errorf("rate.Max: %w", ErrArity)
	}
	return compose(OpMax, operands...)
}

// Min returns the smallest operand. At least one operand is required.
func Min(operands ...any) (Expression, error) {
	if len(operands) == 0 {
		return nil, fmt.Errorf("rate.Min: %w", ErrArity)
	}
	return compose(OpMin, operands...)
}

// Leaves returns the FixedRate and FloatingRate leaves in depth-first order.
func Leaves(e Expression) []Expression {
	c, ok := e.(CompositeRate)
	if !ok {
		return []Expression{e}
	}
	var out []Expression
	for _, child := range c.Components {
		out = append(out, Leaves(child)...)
	}
	return out
}

// FloatingIndices returns the distinct floating index names in e.
func FloatingIndices(e Expression) []string {
	seen := map[string]bool{}
	var out []string
	for _, leaf := range Leaves(e) {
		if f, ok := leaf.(FloatingRate); ok && !seen[f.Index] {
			seen[f.Index] = true
			out = append(out, f.Index)
		}
	}
	return out
}
