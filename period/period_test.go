package period_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/period"
)

func TestParseFormatRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"1D", "2W", "3M", "6M", "1Y", "10Y", "0D", "-2D"} {
		p, err := period.Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, p.String())
	}

	p, err := period.Parse(" 3m ")
	require.NoError(t, err)
	assert.Equal(t, period.New(3, period.Months), p)
}

func TestParseRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "M", "3X", "three months", "1.5Y"} {
		_, err := period.Parse(s)
		assert.True(t, errors.Is(err, period.ErrParse), "input %q: got %v", s, err)
	}
}

func TestPaymentsPerYear(t *testing.T) {
	t.Parallel()

	cases := map[string]int{"1M": 12, "2M": 6, "3M": 4, "4M": 3, "6M": 2, "12M": 1, "1Y": 1}
	for s, want := range cases {
		got, err := period.MustParse(s).PaymentsPerYear()
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	_, err := period.MustParse("5M").PaymentsPerYear()
	assert.ErrorIs(t, err, period.ErrInvalidFrequency)
	_, err = period.MustParse("2Y").PaymentsPerYear()
	assert.ErrorIs(t, err, period.ErrInvalidFrequency)
	_, err = period.MustParse("1W").PaymentsPerYear()
	assert.ErrorIs(t, err, period.ErrUnsupportedUnit)
	_, err = period.MustParse("10D").PaymentsPerYear()
	assert.ErrorIs(t, err, period.ErrUnsupportedUnit)
}

func TestFromFrequency(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"1": "1Y", "2": "6M", "3": "4M", "4": "3M", "6": "2M",
		"12": "1M", "24": "2W", "52": "1W", "0.5": "2Y", "0.2": "5Y",
	}
	for freq, want := range cases {
		got, err := period.FromFrequency(decimal.MustFromString(freq))
		require.NoError(t, err, freq)
		assert.Equal(t, want, got.String(), freq)
	}

	once, err := period.FromFrequency(decimal.Zero)
	require.NoError(t, err)
	assert.True(t, once.IsZero())

	for _, freq := range []string{"5", "7", "365", "0.3", "-1", "2.5"} {
		_, err := period.FromFrequency(decimal.MustFromString(freq))
		assert.ErrorIs(t, err, period.ErrInvalidFrequency, freq)
	}
}

func TestEqualNormalizesUnits(t *testing.T) {
	t.Parallel()

	assert.True(t, period.MustParse("1Y").Equal(period.MustParse("12M")))
	assert.True(t, period.MustParse("2W").Equal(period.MustParse("14D")))
	assert.False(t, period.MustParse("3M").Equal(period.MustParse("6M")))
}

func TestAddTo(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), period.MustParse("1M").AddTo(start))
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), period.MustParse("1Y").AddTo(start))
	assert.Equal(t, time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), period.MustParse("2W").AddTo(start))
}

func TestTextMarshalling(t *testing.T) {
	t.Parallel()

	var p period.Period
	require.NoError(t, p.UnmarshalText([]byte("6M")))
	out, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "6M", string(out))
	assert.Error(t, p.UnmarshalText([]byte("6Q")))
}
