package accrual_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/finsec/accrual"
	"github.com/meenmo/finsec/calendar"
	"github.com/meenmo/finsec/daycount"
	"github.com/meenmo/finsec/decimal"
	"github.com/meenmo/finsec/period"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func mustEnd(t *testing.T, s string) accrual.End {
	t.Helper()
	e, err := accrual.ParseEnd(s)
	require.NoError(t, err)
	return e
}

func assertDates(t *testing.T, got []time.Time, want ...time.Time) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, got[i].Equal(want[i]), "node %d: got %s want %s", i, got[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
	}
}

func TestMonthlyBackStubFromTenorEnd(t *testing.T) {
	t.Parallel()

	info, err := accrual.New(accrual.Params{
		Start:    date(2025, 1, 1),
		End:      mustEnd(t, "3m"),
		DayCount: daycount.Thirty360,
		Period:   ptr(period.MustParse("1m")),
		Stub:     accrual.StubBack,
	})
	require.NoError(t, err)

	assertDates(t, info.Nodes(), date(2025, 1, 1), date(2025, 2, 1), date(2025, 3, 1), date(2025, 4, 1))

	sched := info.Schedule()
	require.Equal(t, 3, sched.Len())
	for i, f := range sched.Frac {
		assert.InDelta(t, 1.0/12.0, f, 1e-9, "fraction %d", i)
	}
	assert.Equal(t, 3, info.Len())
}

func TestStubPlacement(t *testing.T) {
	t.Parallel()

	base := accrual.Params{
		Start:      date(2025, 1, 15),
		End:        accrual.EndDate(date(2025, 12, 31)),
		DayCount:   daycount.Act360,
		Period:     ptr(period.MustParse("3M")),
		Convention: calendar.Unadjusted,
	}

	front, err := accrual.New(base)
	require.NoError(t, err)
	assertDates(t, front.Nodes(),
		date(2025, 1, 15), date(2025, 3, 31), date(2025, 6, 30), date(2025, 9, 30), date(2025, 12, 31))

	base.Stub = accrual.StubBack
	back, err := accrual.New(base)
	require.NoError(t, err)
	assertDates(t, back.Nodes(),
		date(2025, 1, 15), date(2025, 4, 15), date(2025, 7, 15), date(2025, 10, 15), date(2025, 12, 31))
}

func TestFlatSchedule(t *testing.T) {
	t.Parallel()

	info, err := accrual.New(accrual.Params{
		Start:     date(2025, 1, 1),
		End:       mustEnd(t, "2026-01-01"),
		DayCount:  daycount.Act365Fixed,
		Frequency: ptr(decimal.Zero),
	})
	require.NoError(t, err)
	assert.True(t, info.IsFlat())
	assertDates(t, info.Nodes(), date(2025, 1, 1), date(2026, 1, 1))
	assert.Equal(t, 1, info.Len())
	assert.Equal(t, 1, info.Schedule().Len())
}

func TestFrequencyBelowOne(t *testing.T) {
	t.Parallel()

	info, err := accrual.New(accrual.Params{
		Start:     date(2025, 1, 1),
		End:       mustEnd(t, "6Y"),
		DayCount:  daycount.ActActISDA,
		Frequency: ptr(decimal.MustFromString("0.5")),
	})
	require.NoError(t, err)
	assert.Equal(t, "2Y", info.CouponPeriod().String())
	assertDates(t, info.Nodes(), date(2025, 1, 1), date(2027, 1, 1), date(2029, 1, 1), date(2031, 1, 1))
}

func TestEndOfMonthRoll(t *testing.T) {
	t.Parallel()

	info, err := accrual.New(accrual.Params{
		Start:           date(2025, 1, 31),
		End:             accrual.EndDate(date(2025, 12, 31)),
		DayCount:        daycount.Act360,
		Period:          ptr(period.MustParse("1M")),
		AccrualCalendar: calendar.USSettlement,
		Convention:      calendar.ModifiedFollowing,
		Stub:            accrual.StubBack,
		EndOfMonth:      true,
	})
	require.NoError(t, err)

	nodes := info.Nodes()
	require.Len(t, nodes, 12)
	assert.Equal(t, date(2025, 2, 28), nodes[1])
	assert.Equal(t, date(2025, 5, 30), nodes[4])
	assert.Equal(t, date(2025, 8, 29), nodes[7])
	assert.Equal(t, date(2025, 11, 28), nodes[10])
	assert.Equal(t, date(2025, 12, 31), nodes[11])
}

func TestNodeCountInvariant(t *testing.T) {
	t.Parallel()

	for _, freq := range []string{"0", "1", "2", "4", "12", "52"} {
		info, err := accrual.New(accrual.Params{
			Start:           date(2024, 3, 15),
			End:             mustEnd(t, "3Y"),
			DayCount:        daycount.Act365Fixed,
			Frequency:       ptr(decimal.MustFromString(freq)),
			AccrualCalendar: calendar.TARGET,
			Convention:      calendar.ModifiedFollowing,
		})
		require.NoError(t, err, freq)

		nodes := info.Nodes()
		assert.Equal(t, info.Len()+1, len(nodes), freq)
		assert.Equal(t, info.Len(), info.Schedule().Len(), freq)
		for i := 1; i < len(nodes); i++ {
			assert.True(t, nodes[i].After(nodes[i-1]), "freq %s: nodes not increasing at %d", freq, i)
		}
	}
}

func TestOneYearFractionSumsToOne(t *testing.T) {
	t.Parallel()

	info, err := accrual.New(accrual.Params{
		Start:      date(2025, 1, 1),
		End:        accrual.EndDate(date(2026, 1, 1)),
		DayCount:   daycount.Thirty360,
		Frequency:  ptr(decimal.NewFromInt(12)),
		Convention: calendar.Unadjusted,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, info.Len())
	assert.InDelta(t, 1.0, info.Schedule().TotalFraction(), 1e-9)

	ppy, err := info.PaymentsPerYear()
	require.NoError(t, err)
	assert.Equal(t, 12, ppy)
}

func TestNodesBetween(t *testing.T) {
	t.Parallel()

	info, err := accrual.New(accrual.Params{
		Start:    date(2025, 1, 1),
		End:      mustEnd(t, "3M"),
		DayCount: daycount.Thirty360,
		Period:   ptr(period.MustParse("1M")),
		Stub:     accrual.StubBack,
	})
	require.NoError(t, err)

	assertDates(t, info.NodesBetween(date(2025, 2, 1), date(2025, 3, 15)), date(2025, 2, 1), date(2025, 3, 1))
	assertDates(t, info.NodesBetween(time.Time{}, date(2025, 2, 1)), date(2025, 1, 1), date(2025, 2, 1))
	assert.Equal(t, 1, info.ScheduleBetween(date(2025, 2, 1), date(2025, 3, 15)).Len())
	assert.Equal(t, 0, info.ScheduleBetween(date(2025, 3, 2), date(2025, 3, 3)).Len())
}

func TestValidation(t *testing.T) {
	t.Parallel()

	_, err := accrual.New(accrual.Params{
		Start:     date(2025, 1, 1),
		End:       mustEnd(t, "1Y"),
		DayCount:  daycount.Act360,
		Frequency: ptr(decimal.NewFromInt(4)),
		Period:    ptr(period.MustParse("3M")),
	})
	assert.True(t, errors.Is(err, accrual.ErrAmbiguousFrequency))

	_, err = accrual.New(accrual.Params{
		Start:    date(2025, 1, 1),
		End:      mustEnd(t, "1Y"),
		DayCount: daycount.Act360,
	})
	assert.True(t, errors.Is(err, accrual.ErrAmbiguousFrequency))

	_, err = accrual.New(accrual.Params{
		Start:    date(2025, 1, 1),
		End:      accrual.EndDate(date(2024, 1, 1)),
		DayCount: daycount.Act360,
		Period:   ptr(period.MustParse("3M")),
	})
	assert.True(t, errors.Is(err, accrual.ErrInvalidDateRange))

	_, err = accrual.New(accrual.Params{
		Start:     date(2025, 1, 1),
		End:       mustEnd(t, "1Y"),
		DayCount:  daycount.Act360,
		Frequency: ptr(decimal.NewFromInt(5)),
	})
	assert.True(t, errors.Is(err, period.ErrInvalidFrequency))

	_, err = accrual.New(accrual.Params{
		Start:           date(2025, 1, 1),
		End:             mustEnd(t, "1Y"),
		DayCount:        daycount.Act360,
		Period:          ptr(period.MustParse("3M")),
		AccrualCalendar: "mars",
	})
	assert.True(t, errors.Is(err, calendar.ErrUnknownCalendar))

	_, err = accrual.ParseEnd("soon")
	assert.True(t, errors.Is(err, accrual.ErrParseEnd))
}

func TestScheduleJSON(t *testing.T) {
	t.Parallel()

	info, err := accrual.New(accrual.Params{
		Start:     date(2025, 1, 1),
		End:       mustEnd(t, "6M"),
		DayCount:  daycount.Thirty360,
		Frequency: ptr(decimal.NewFromInt(2)),
	})
	require.NoError(t, err)

	out, err := json.Marshal(info.Schedule())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"start":"2025-01-01","end":"2025-07-01","fraction":0.5}]`, string(out))
}
