package swap_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/finsec/accrual"
	"github.com/meenmo/finsec/curve"
	"github.com/meenmo/finsec/daycount"
	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/leg"
	"github.com/meenmo/finsec/market"
	"github.com/meenmo/finsec/period"
	"github.com/meenmo/finsec/pricing"
	"github.com/meenmo/finsec/rate"
	"github.com/meenmo/finsec/security"
	"github.com/meenmo/finsec/swap"
)

var trade = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func fixedLeg(t *testing.T, ccy string, notional int64, coupon string) leg.Leg {
	t.Helper()
	acc, err := accrual.New(accrual.Params{
		Start:    trade,
		End:      accrual.EndTenor(period.MustParse("2Y")),
		DayCount: daycount.Act360,
		Period:   ptr(period.MustParse("6M")),
	})
	require.NoError(t, err)
	l, err := leg.New(acc, []decimal.Decimal{decimal.NewFromInt(notional)}, []rate.Expression{rate.Fixed(coupon)})
	require.NoError(t, err)
	if ccy != "" {
		c := security.Currency(ccy)
		l.Currency = &c
	}
	return l
}

func sofrLookup(t *testing.T) *market.Lookup {
	t.Helper()
	l := market.NewLookup(trade)
	require.NoError(t, l.AddIndex(market.NewRateIndex("SOFR", curve.NewFlat(trade, 0.05, daycount.Act365Fixed), nil, nil)))
	return l
}

var usdFunding = pricing.FundingSpec{ByCurrency: map[string]string{"USD": "SOFR", "JPY": "TONAR"}}

func sofrOIS(t *testing.T, fixedRate decimal.Decimal) swap.Swap {
	t.Helper()
	params, err := swap.SOFROIS.Params(trade, period.MustParse("5Y"), fixedRate, decimal.NewFromInt(10000000))
	require.NoError(t, err)
	s, err := swap.MakeOIS(params)
	require.NoError(t, err)
	return s
}

func TestIsXCCY(t *testing.T) {
	t.Parallel()

	usdJpy := swap.New(fixedLeg(t, "USD", 100, "0.01"), fixedLeg(t, "JPY", -100, "0.01"))
	assert.True(t, usdJpy.IsXCCY())

	usdUsd := swap.New(fixedLeg(t, "USD", 100, "0.01"), fixedLeg(t, "usd", -100, "0.01"))
	assert.False(t, usdUsd.IsXCCY())

	unknown := swap.New(fixedLeg(t, "USD", 100, "0.01"), fixedLeg(t, "", -100, "0.01"))
	assert.False(t, unknown.IsXCCY())
}

func TestTwoConstantLegsMissRole(t *testing.T) {
	t.Parallel()

	s := swap.New(fixedLeg(t, "USD", 100, "0.01"), fixedLeg(t, "USD", -100, "0.02"))
	require.NotNil(t, s.FixedLeg())
	assert.Nil(t, s.FloatLeg())

	_, err := s.Instrument(sofrLookup(t), usdFunding, pricing.EngineOptions{})
	assert.ErrorIs(t, err, swap.ErrMissingLegRole)

	_, err = s.RiskBuilder(usdFunding, pricing.EngineOptions{})(sofrLookup(t))
	assert.ErrorIs(t, err, swap.ErrMissingLegRole)
}

func TestMakeOISLegs(t *testing.T) {
	t.Parallel()

	s := sofrOIS(t, decimal.MustFromString("0.04"))
	require.NotNil(t, s.FixedLeg())
	require.NotNil(t, s.FloatLeg())
	assert.True(t, s.FloatLeg().Notionals[0].Equal(decimal.NewFromInt(-10000000)))
	assert.Equal(t, []string{"SOFR"}, s.FloatLeg().FloatingIndices())
	assert.Equal(t, 5, s.FixedLeg().Accrual.Len())
	// spot is T+2 on the SOFR calendar
	assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), s.FixedLeg().Accrual.Start())

	defaulted, err := swap.MakeOIS(swap.OISParams{
		Start:          trade,
		End:            accrual.EndTenor(period.MustParse("1Y")),
		Rate:           decimal.MustFromString("0.03"),
		FixedDayCount:  daycount.Act360,
		FloatDayCount:  daycount.Act360,
		FixedFrequency: 1,
		FloatFrequency: 1,
		Index:          "ESTR",
	})
	require.NoError(t, err)
	assert.True(t, defaulted.Legs[0].Notionals[0].Equal(swap.DefaultOISNotional))
}

func TestOISFairRateOnFlatCurve(t *testing.T) {
	t.Parallel()

	lookup := sofrLookup(t)
	inst, err := sofrOIS(t, decimal.MustFromString("0.04")).Instrument(lookup, usdFunding, pricing.EngineOptions{})
	require.NoError(t, err)
	single, ok := inst.(*swap.Single)
	require.True(t, ok)

	fair, err := single.FairRate()
	require.NoError(t, err)
	assert.InDelta(t, 0.05, fair, 0.001)

	npv, err := single.NPV()
	require.NoError(t, err)
	assert.Less(t, npv, 0.0, "receiving 4% against a 5% curve loses money")
	bps, err := single.FixedLegBPS()
	require.NoError(t, err)
	assert.Greater(t, bps, 0.0)

	par, err := decimal.NewFromFloat(fair)
	require.NoError(t, err)
	atPar, err := sofrOIS(t, par).Instrument(lookup, usdFunding, pricing.EngineOptions{})
	require.NoError(t, err)
	npv, err = atPar.NPV()
	require.NoError(t, err)
	assert.InDelta(t, 0, npv, 1e-2)
}

func TestSingleCurrencyPreconditions(t *testing.T) {
	t.Parallel()

	s := sofrOIS(t, decimal.MustFromString("0.04"))
	s.Legs[0].PayDelay = ptr(period.MustParse("0D"))
	_, err := s.Instrument(sofrLookup(t), usdFunding, pricing.EngineOptions{})
	assert.ErrorIs(t, err, swap.ErrPaymentDelayMismatch)

	params, err := swap.SOFROIS.Params(trade, period.MustParse("2Y"), decimal.MustFromString("0.04"), decimal.NewFromInt(100))
	require.NoError(t, err)
	params.FloatFrequency = 4
	quarterlyFloat, err := swap.MakeOIS(params)
	require.NoError(t, err)
	_, err = quarterlyFloat.Instrument(sofrLookup(t), usdFunding, pricing.EngineOptions{})
	assert.ErrorIs(t, err, swap.ErrPeriodMismatch)

	empty := market.NewLookup(trade)
	_, err = sofrOIS(t, decimal.MustFromString("0.04")).Instrument(empty, usdFunding, pricing.EngineOptions{})
	assert.ErrorIs(t, err, market.ErrUnknownIndex)
}

func TestCrossCurrencySumsConvertedLegs(t *testing.T) {
	t.Parallel()

	usdLeg := fixedLeg(t, "USD", 1000000, "0.05")
	jpyLeg := fixedLeg(t, "JPY", -150000000, "0.01")
	s := swap.New(usdLeg, jpyLeg)

	lookup := sofrLookup(t)
	require.NoError(t, lookup.AddIndex(market.NewRateIndex("TONAR", curve.NewFlat(trade, 0.005, daycount.Act365Fixed), nil, nil)))

	_, err := s.Instrument(lookup, usdFunding, pricing.EngineOptions{})
	assert.ErrorIs(t, err, market.ErrUnknownFxPair)

	lookup.SetFX(security.Currency("USD"), security.Currency("JPY"), 150)
	h, err := s.RiskBuilder(usdFunding, pricing.EngineOptions{})(lookup)
	require.NoError(t, err)

	xccy, ok := h.Instrument().(*swap.CrossCurrency)
	require.True(t, ok)
	assert.InDelta(t, 1.0/150, xccy.FX(), 1e-15)

	usdPV, err := xccy.Leg(0).NPV()
	require.NoError(t, err)
	jpyPV, err := xccy.Leg(1).NPV()
	require.NoError(t, err)

	pos, err := h.Evaluate()
	require.NoError(t, err)
	assert.InDelta(t, usdPV+jpyPV/150, pos.NPV, 1e-6)
	assert.Equal(t, "USD", pos.Currency.Ticker)
	assert.InDelta(t, jpyPV, pos.Measures["leg1_npv"], 1e-9)
}
