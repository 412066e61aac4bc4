package decimal

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Decimal is an exact decimal used for rates, notionals and frequencies.
//
// Values are treated as immutable: every arithmetic helper returns a fresh Decimal.
type Decimal struct {
	apd.Decimal
}

// DefaultContext is used for arithmetic operations.
var DefaultContext = apd.BaseContext.WithPrecision(34)

var (
	Zero     = NewFromInt(0)
	One      = NewFromInt(1)
	MinusOne = NewFromInt(-1)
)

// NewFromInt creates a Decimal from an int64.
func NewFromInt(v int64) Decimal {
	d := Decimal{}
	d.SetInt64(v)
	return d
}

// NewFromString parses a decimal literal such as "0.035" or "1e6".
func NewFromString(v string) (Decimal, error) {
	d := Decimal{}
	if _, _, err := d.SetString(strings.TrimSpace(v)); err != nil {
		return d, fmt.Errorf("invalid decimal string %q: %w", v, err)
	}
	return d, nil
}

// MustFromString is NewFromString for literals known to be valid.
func MustFromString(v string) Decimal {
	d, err := NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

// NewFromFloat converts f using its shortest decimal representation.
func NewFromFloat(f float64) (Decimal, error) {
	d := Decimal{}
	if _, err := d.SetFloat64(f); err != nil {
		return d, fmt.Errorf("invalid decimal float %v: %w", f, err)
	}
	return d, nil
}

// String implements the fmt.Stringer interface.
func (d Decimal) String() string {
	return d.Decimal.Text('f')
}

func (d Decimal) Add(other Decimal) (Decimal, error) {
	res := Decimal{}
	if _, err := DefaultContext.Add(&res.Decimal, &d.Decimal, &other.Decimal); err != nil {
		return res, fmt.Errorf("add operation failed: %w", err)
	}
	return res, nil
}

func (d Decimal) Sub(other Decimal) (Decimal, error) {
	res := Decimal{}
	if _, err := DefaultContext.Sub(&res.Decimal, &d.Decimal, &other.Decimal); err != nil {
		return res, fmt.Errorf("sub operation failed: %w", err)
	}
	return res, nil
}

func (d Decimal) Mul(other Decimal) (Decimal, error) {
	res := Decimal{}
	if _, err := DefaultContext.Mul(&res.Decimal, &d.Decimal, &other.Decimal); err != nil {
		return res, fmt.Errorf("mul operation failed: %w", err)
	}
	return res, nil
}

func (d Decimal) Div(other Decimal) (Decimal, error) {
	if other.IsZero() {
		return Zero, fmt.Errorf("division by zero")
	}
	res := Decimal{}
	if _, err := DefaultContext.Quo(&res.Decimal, &d.Decimal, &other.Decimal); err != nil {
		return res, fmt.Errorf("div operation failed: %w", err)
	}
	return res, nil
}

// Neg returns -d.
func (d Decimal) Neg() Decimal {
	res := Decimal{}
	res.Decimal.Neg(&d.Decimal)
	return res
}

func (d Decimal) IsZero() bool {
	return d.Decimal.IsZero()
}

func (d Decimal) Sign() int {
	return d.Decimal.Sign()
}

func (d Decimal) Equal(other Decimal) bool {
	return d.Decimal.Cmp(&other.Decimal) == 0
}

func (d Decimal) Cmp(other Decimal) int {
	return d.Decimal.Cmp(&other.Decimal)
}

// Float64 returns the nearest float64. Out-of-range values saturate to ±Inf.
func (d Decimal) Float64() float64 {
	f, _ := d.Decimal.Float64()
	return f
}

// Int64 returns d as an integer, failing when d has a fractional part.
func (d Decimal) Int64() (int64, error) {
	return d.Decimal.Int64()
}

// Round rounds half-up to the given number of decimal places.
func (d Decimal) Round(places int32) (Decimal, error) {
	res := Decimal{}
	ctx := DefaultContext.WithPrecision(DefaultContext.Precision)
	ctx.Rounding = apd.RoundHalfUp
	if _, err := ctx.Quantize(&res.Decimal, &d.Decimal, -places); err != nil {
		return res, fmt.Errorf("round operation failed: %w", err)
	}
	return res, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 1 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := NewFromString(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler (used by YAML).
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(text []byte) error {
	parsed, err := NewFromString(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
