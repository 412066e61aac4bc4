package decimal_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/finsec/decimal"
)

func TestArithmetic(t *testing.T) {
	t.Parallel()

	a := decimal.MustFromString("0.035")
	b := decimal.MustFromString("0.0015")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "0.0365", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "0.0335", diff.String())

	prod, err := a.Mul(decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, prod.Equal(decimal.MustFromString("0.07")))

	quo, err := decimal.One.Div(decimal.NewFromInt(4))
	require.NoError(t, err)
	assert.True(t, quo.Equal(decimal.MustFromString("0.25")))

	_, err = a.Div(decimal.Zero)
	assert.Error(t, err)

	assert.True(t, a.Neg().Sign() < 0)
	assert.Equal(t, 1, a.Cmp(b))
}

func TestInt64RejectsFraction(t *testing.T) {
	t.Parallel()

	n, err := decimal.NewFromInt(12).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	_, err = decimal.MustFromString("1.5").Int64()
	assert.Error(t, err)
}

func TestNewFromFloat(t *testing.T) {
	t.Parallel()

	d, err := decimal.NewFromFloat(0.05)
	require.NoError(t, err)
	assert.Equal(t, "0.05", d.String())
	assert.InDelta(t, 0.05, d.Float64(), 1e-15)
}

func TestRound(t *testing.T) {
	t.Parallel()

	d, err := decimal.MustFromString("1.23456").Round(2)
	require.NoError(t, err)
	assert.Equal(t, "1.23", d.String())

	d, err = decimal.MustFromString("1.235").Round(2)
	require.NoError(t, err)
	assert.Equal(t, "1.24", d.String())
}

func TestJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Rate decimal.Decimal `json:"rate"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"rate":"0.0425"}`), &p))
	assert.Equal(t, "0.0425", p.Rate.String())

	require.NoError(t, json.Unmarshal([]byte(`{"rate":0.01}`), &p))
	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rate":0.01}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"rate":"abc"}`), &p))
}
