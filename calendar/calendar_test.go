package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/finsec/calendar"
	"github.com/meenmo/finsec/period"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustResolve(t *testing.T, id calendar.ID) calendar.Calendar {
	t.Helper()
	cal, err := calendar.Resolve(id)
	require.NoError(t, err, id)
	return cal
}

func TestResolve_EveryDeclaredID(t *testing.T) {
	t.Parallel()

	for _, id := range calendar.IDs() {
		assert.Equal(t, string(id), mustResolve(t, id).Name())
	}

	_, err := calendar.Resolve("us/moon")
	assert.ErrorIs(t, err, calendar.ErrUnknownCalendar)
}

func TestParseID(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]calendar.ID{
		"US_SETTLEMENT":      calendar.USSettlement,
		"us-nyse":            calendar.USNYSE,
		"TARGET":             calendar.TARGET,
		"NULL":               calendar.Null,
		"us/government_bond": calendar.USGovernmentBond,
	} {
		got, err := calendar.ParseID(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestHolidays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		id       calendar.ID
		day      time.Time
		business bool
	}{
		{calendar.USSettlement, date(2025, 7, 4), false},
		{calendar.USSettlement, date(2026, 7, 3), false},
		{calendar.USSettlement, date(2022, 6, 20), false},
		{calendar.USSettlement, date(2021, 6, 18), true},
		{calendar.USSettlement, date(2025, 1, 20), false},
		{calendar.USSettlement, date(2025, 5, 26), false},
		{calendar.USSettlement, date(2025, 10, 13), false},
		{calendar.USSettlement, date(2025, 11, 27), false},
		{calendar.USSettlement, date(2021, 12, 31), false},
		{calendar.USSettlement, date(2025, 4, 18), true},
		{calendar.USNYSE, date(2025, 4, 18), false},
		{calendar.USNYSE, date(2025, 10, 13), true},
		{calendar.USNYSE, date(2021, 12, 31), true},
		{calendar.USGovernmentBond, date(2025, 4, 18), false},
		{calendar.USSOFR, date(2025, 4, 18), false},
		{calendar.USFederalReserve, date(2026, 7, 3), true},
		{calendar.USNERC, date(2025, 1, 20), true},
		{calendar.TARGET, date(2025, 4, 21), false},
		{calendar.TARGET, date(2025, 5, 1), false},
		{calendar.TARGET, date(2025, 12, 26), false},
		{calendar.TARGET, date(2025, 7, 4), true},
		{calendar.TARGET, date(2025, 4, 18), false},
		{calendar.TARGET, date(2025, 1, 1), false},
		{calendar.TARGET, date(2001, 12, 31), false},
		{calendar.TARGET, date(2002, 12, 31), true},
		{calendar.USSettlement, date(2024, 7, 4), false},
		{calendar.USSettlement, date(2024, 11, 28), false},
		{calendar.USSettlement, date(2024, 11, 29), true},
		{calendar.USSettlement, date(2023, 1, 2), false},
		{calendar.USSettlement, date(2025, 11, 11), false},
		{calendar.USSettlement, date(2025, 2, 17), false},
		{calendar.USSettlement, date(2025, 9, 1), false},
		{calendar.USNYSE, date(2010, 12, 31), true},
		{calendar.USNYSE, date(1997, 1, 20), true},
		{calendar.USNYSE, date(2025, 1, 20), false},
		{calendar.USGovernmentBond, date(2023, 11, 10), true},
		{calendar.USFederalReserve, date(2022, 6, 20), false},
		{calendar.USFederalReserve, date(2021, 12, 24), true},
		{calendar.USNERC, date(2025, 12, 25), false},
		{calendar.USNERC, date(2025, 10, 13), true},
		{calendar.WeekendsOnly, date(2025, 12, 25), true},
		{calendar.WeekendsOnly, date(2025, 5, 31), false},
		{calendar.Null, date(2025, 5, 31), true},
	}
	for _, tc := range cases {
		cal := mustResolve(t, tc.id)
		assert.Equal(t, tc.business, cal.IsBusinessDay(tc.day), "%s %s", tc.id, tc.day.Format("2006-01-02"))
		assert.Equal(t, !tc.business, calendar.IsHoliday(cal, tc.day), "%s %s", tc.id, tc.day.Format("2006-01-02"))
	}
}

func TestAdjust(t *testing.T) {
	t.Parallel()

	cal := mustResolve(t, calendar.USSettlement)
	cases := []struct {
		bdc  calendar.BusinessDayConvention
		in   time.Time
		want time.Time
	}{
		{calendar.Unadjusted, date(2025, 5, 31), date(2025, 5, 31)},
		{calendar.Following, date(2025, 5, 31), date(2025, 6, 2)},
		{calendar.ModifiedFollowing, date(2025, 5, 31), date(2025, 5, 30)},
		{calendar.Preceding, date(2025, 5, 31), date(2025, 5, 30)},
		{calendar.ModifiedPreceding, date(2025, 6, 1), date(2025, 6, 2)},
		{calendar.HalfMonthModifiedFollowing, date(2025, 2, 15), date(2025, 2, 14)},
		{calendar.Nearest, date(2025, 5, 31), date(2025, 5, 30)},
		{calendar.Nearest, date(2025, 6, 1), date(2025, 6, 2)},
		{calendar.Following, date(2025, 6, 3), date(2025, 6, 3)},
	}
	for _, tc := range cases {
		got := calendar.Adjust(cal, tc.in, tc.bdc)
		assert.Equal(t, tc.want, got, "Adjust(%s, %s)", tc.bdc, tc.in.Format("2006-01-02"))
	}
}

func TestParseConvention(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]calendar.BusinessDayConvention{
		"MF":                 calendar.ModifiedFollowing,
		"modified following": calendar.ModifiedFollowing,
		"hmf":                calendar.HalfMonthModifiedFollowing,
		"Unadjusted":         calendar.Unadjusted,
		"N":                  calendar.Nearest,
	} {
		got, err := calendar.ParseConvention(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := calendar.ParseConvention("sideways")
	assert.ErrorIs(t, err, calendar.ErrUnknownConvention)
}

func TestAdvance(t *testing.T) {
	t.Parallel()

	cal := mustResolve(t, calendar.USSettlement)
	oneMonth := period.New(1, period.Months)

	assert.Equal(t, date(2025, 3, 31), calendar.Advance(cal, date(2025, 2, 28), oneMonth, calendar.ModifiedFollowing, true))
	assert.Equal(t, date(2025, 3, 28), calendar.Advance(cal, date(2025, 2, 28), oneMonth, calendar.ModifiedFollowing, false))
	assert.Equal(t, date(2025, 7, 7), calendar.Advance(cal, date(2025, 7, 3), period.New(1, period.Days), calendar.Following, false))
}

func TestAdvance_UnadjustedEndOfMonth(t *testing.T) {
	t.Parallel()

	cal := mustResolve(t, calendar.USSettlement)
	oneMonth := period.New(1, period.Months)

	// Nov 29 2024 is the last business day but not the last calendar day.
	assert.Equal(t, date(2024, 12, 29), calendar.Advance(cal, date(2024, 11, 29), oneMonth, calendar.Unadjusted, true))
	assert.Equal(t, date(2024, 12, 31), calendar.Advance(cal, date(2024, 11, 30), oneMonth, calendar.Unadjusted, true))
	assert.Equal(t, date(2025, 3, 31), calendar.Advance(cal, date(2025, 2, 28), oneMonth, calendar.Unadjusted, true))
	assert.Equal(t, date(2024, 12, 31), calendar.Advance(cal, date(2024, 11, 29), oneMonth, calendar.ModifiedFollowing, true))
}

func TestBump_PreservesOrder(t *testing.T) {
	t.Parallel()

	cal := mustResolve(t, calendar.WeekendsOnly)
	in := []time.Time{date(2025, 1, 10), date(2025, 1, 3), date(2025, 1, 17)}
	out := calendar.Bump(cal, in, period.New(1, period.Weeks))
	assert.Equal(t, []time.Time{date(2025, 1, 17), date(2025, 1, 10), date(2025, 1, 24)}, out)
}

func TestJoint(t *testing.T) {
	t.Parallel()

	us := mustResolve(t, calendar.USSettlement)
	eu := mustResolve(t, calendar.TARGET)

	holidays := calendar.Joint(us, eu, calendar.JoinHolidays)
	business := calendar.Joint(us, eu, calendar.JoinBusinessDays)

	assert.False(t, holidays.IsBusinessDay(date(2025, 7, 4)))
	assert.False(t, holidays.IsBusinessDay(date(2025, 5, 1)))
	assert.True(t, business.IsBusinessDay(date(2025, 7, 4)))
	assert.True(t, business.IsBusinessDay(date(2025, 5, 1)))
	assert.False(t, business.IsBusinessDay(date(2025, 12, 25)))
}

func TestEndOfMonthHelpers(t *testing.T) {
	t.Parallel()

	cal := mustResolve(t, calendar.USSettlement)
	assert.Equal(t, date(2025, 5, 30), calendar.LastBusinessDayOfMonth(cal, date(2025, 5, 10)))
	assert.True(t, calendar.IsEndOfMonth(cal, date(2025, 5, 30)))
	assert.False(t, calendar.IsEndOfMonth(cal, date(2025, 5, 31)))
	assert.Equal(t, date(2025, 7, 3), calendar.AddBusinessDays(cal, date(2025, 7, 7), -1))
}
