package market_test

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/finsec/curve"
	"github.com/meenmo/finsec/daycount"
	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/market"
	"github.com/meenmo/finsec/security"
)

var asOf = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func newLookup(t *testing.T) *market.Lookup {
	t.Helper()
	l := market.NewLookup(asOf)
	feed := market.NewMapFixingFeed(map[string]decimal.Decimal{
		"2025-02-28": decimal.MustFromString("0.0433"),
	})
	sofr := market.NewRateIndex("SOFR", curve.NewFlat(asOf, 0.043, daycount.Act365Fixed), nil, feed)
	require.NoError(t, l.AddIndex(sofr))
	return l
}

func TestIndexLookup(t *testing.T) {
	t.Parallel()

	l := newLookup(t)

	idx, err := l.Index("sofr")
	require.NoError(t, err)
	assert.Equal(t, "SOFR", idx.Name())
	assert.Same(t, idx.Forwarding(), idx.DefaultCurve())

	fix, ok := idx.Fixing(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.True(t, fix.Equal(decimal.MustFromString("0.0433")))
	_, ok = idx.Fixing(asOf)
	assert.False(t, ok)

	_, err = l.Index("ESTR")
	assert.ErrorIs(t, err, market.ErrUnknownIndex)

	err = l.AddIndex(market.NewRateIndex("sofr", curve.NewFlat(asOf, 0.01, ""), nil, nil))
	assert.ErrorIs(t, err, market.ErrDuplicateIndex)

	assert.True(t, market.IsOvernight("sofr"))
	assert.False(t, market.IsOvernight(string(market.EURIBOR3M)))
}

func TestFXLookup(t *testing.T) {
	t.Parallel()

	usd, jpy, eur := security.Currency("USD"), security.Currency("JPY"), security.Currency("EUR")
	l := market.NewLookup(asOf)
	q := l.SetFX(usd, jpy, 150)

	v, err := l.FX(usd, jpy)
	require.NoError(t, err)
	assert.Equal(t, 150.0, v)

	v, err = l.FX(jpy, usd)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/150, v, 1e-15)

	v, err = l.FX(usd, usd)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = l.FX(usd, eur)
	assert.ErrorIs(t, err, market.ErrUnknownFxPair)

	q.SetValue(155)
	v, err = l.FX(usd, jpy)
	require.NoError(t, err)
	assert.Equal(t, 155.0, v)
}

func TestShiftedLookup(t *testing.T) {
	t.Parallel()

	l := newLookup(t)
	up, err := l.Shifted(25)
	require.NoError(t, err)

	base, _ := l.Index("SOFR")
	bumped, err := up.Index("SOFR")
	require.NoError(t, err)

	oneYear := asOf.AddDate(0, 0, 365)
	assert.InDelta(t, base.DefaultCurve().DF(oneYear)*math.Exp(-0.0025), bumped.DefaultCurve().DF(oneYear), 1e-12)
	assert.Equal(t, asOf, up.ValuationDate())
}

func TestSimpleQuoteConcurrentAccess(t *testing.T) {
	t.Parallel()

	q := market.NewSimpleQuote(1)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			q.SetValue(v)
			_ = q.Value()
		}(float64(i))
	}
	wg.Wait()
	assert.GreaterOrEqual(t, q.Value(), 0.0)
	assert.Less(t, q.Value(), 8.0)
}
