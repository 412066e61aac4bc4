package rate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/period"
)

// ErrMalformedExpression is returned when an encoded expression is not exactly
// one of fixed, floating or composite.
var ErrMalformedExpression = errors.New("malformed rate expression")

// wire is the tagged-union encoding shared by JSON and YAML:
//
//	{"fixed": 0.035}
//	{"floating": {"index": "SOFR", "kind": "overnight", "compounded": true}}
//	{"composite": {"op": "MAX", "args": [...]}}
type wire struct {
	Fixed     *decimal.Decimal `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	Floating  *floatingWire    `json:"floating,omitempty" yaml:"floating,omitempty"`
	Composite *compositeWire   `json:"composite,omitempty" yaml:"composite,omitempty"`
}

type floatingWire struct {
	Index      string         `json:"index" yaml:"index"`
	Kind       string         `json:"kind,omitempty" yaml:"kind,omitempty"`
	Compounded bool           `json:"compounded,omitempty" yaml:"compounded,omitempty"`
	PayDelay   *period.Period `json:"pay_delay,omitempty" yaml:"pay_delay,omitempty"`
}

type compositeWire struct {
	Op   string `json:"op" yaml:"op"`
	Args []Node `json:"args" yaml:"args"`
}

func toWire(e Expression) (wire, error) {
	switch x := e.(type) {
	case Node:
		return toWire(x.Expression)
	case FixedRate:
		r := x.Rate
		return wire{Fixed: &r}, nil
	case FloatingRate:
		return wire{Floating: &floatingWire{
			Index:      x.Index,
			Kind:       string(x.Type.Kind),
			Compounded: x.Type.CompoundedNotAveraged,
			PayDelay:   x.Type.PayDelay,
		}}, nil
	case CompositeRate:
		args := make([]Node, len(x.Components))
		for i, child := range x.Components {
			args[i] = Node{child}
		}
		return wire{Composite: &compositeWire{Op: string(x.Operator), Args: args}}, nil
	default:
		return wire{}, fmt.Errorf("rate: encode %T: %w", e, ErrUnsupportedOperand)
	}
}

func fromWire(w wire) (Expression, error) {
	set := 0
	for _, present := range []bool{w.Fixed != nil, w.Floating != nil, w.Composite != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("rate: %d variants set: %w", set, ErrMalformedExpression)
	}

	switch {
	case w.Fixed != nil:
		return FixedRate{Rate: *w.Fixed}, nil
	case w.Floating != nil:
		if w.Floating.Index == "" {
			return nil, fmt.Errorf("rate: floating leaf without index: %w", ErrMalformedExpression)
		}
		kind := Term
		if w.Floating.Kind != "" {
			var err error
			if kind, err = ParseFloatKind(w.Floating.Kind); err != nil {
				return nil, err
			}
		}
		return FloatingRate{Index: w.Floating.Index, Type: FloatType{
			Kind:                  kind,
			PayDelay:              w.Floating.PayDelay,
			CompoundedNotAveraged: w.Floating.Compounded,
		}}, nil
	default:
		op, err := ParseOperator(w.Composite.Op)
		if err != nil {
			return nil, err
		}
		children := make([]Expression, len(w.Composite.Args))
		for i, a := range w.Composite.Args {
			if a.Expression == nil {
				return nil, fmt.Errorf("rate: empty operand %d: %w", i, ErrMalformedExpression)
			}
			children[i] = a.Expression
		}
		return CompositeRate{Components: children, Operator: op}, nil
	}
}

// Node wraps an Expression so it can sit in JSON and YAML documents.
type Node struct {
	Expression
}

// MarshalJSON implements json.Marshaler.
func (n Node) MarshalJSON() ([]byte, error) {
	w, err := toWire(n.Expression)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. A bare number is read as a fixed rate.
func (n *Node) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var d decimal.Decimal
		if err := d.UnmarshalJSON(data); err != nil {
			return fmt.Errorf("rate: %w: %v", ErrMalformedExpression, err)
		}
		n.Expression = FixedRate{Rate: d}
		return nil
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e, err := fromWire(w)
	if err != nil {
		return err
	}
	n.Expression = e
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (n Node) MarshalYAML() (any, error) {
	return toWire(n.Expression)
}

// UnmarshalYAML implements yaml.Unmarshaler. A bare scalar is read as a fixed rate.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		d, err := decimal.NewFromString(value.Value)
		if err != nil {
			return fmt.Errorf("rate: %w: %v", ErrMalformedExpression, err)
		}
		n.Expression = FixedRate{Rate: d}
		return nil
	}
	var w wire
	if err := value.Decode(&w); err != nil {
		return err
	}
	e, err := fromWire(w)
	if err != nil {
		return err
	}
	n.Expression = e
	return nil
}

// Marshal encodes e as JSON.
func Marshal(e Expression) ([]byte, error) {
	return json.Marshal(Node{e})
}

// Unmarshal decodes a JSON expression.
func Unmarshal(data []byte) (Expression, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return n.Expression, nil
}
