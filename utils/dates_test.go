package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/finsec/utils"
)

func TestAddMonth_ClampsToMonthEnd(t *testing.T) {
	t.Parallel()

	cases := []struct {
		start  time.Time
		months int
		want   time.Time
	}{
		{utils.Date(2025, 1, 31), 1, utils.Date(2025, 2, 28)},
		{utils.Date(2024, 1, 31), 1, utils.Date(2024, 2, 29)},
		{utils.Date(2025, 3, 31), -1, utils.Date(2025, 2, 28)},
		{utils.Date(2025, 1, 15), 12, utils.Date(2026, 1, 15)},
		{utils.Date(2025, 8, 31), -6, utils.Date(2025, 2, 28)},
	}
	for _, tc := range cases {
		got := utils.AddMonth(tc.start, tc.months)
		assert.Equal(t, tc.want, got, "AddMonth(%s, %d)", tc.start.Format(utils.DateLayout), tc.months)
	}
}

func TestAdjacentDates(t *testing.T) {
	t.Parallel()

	dates := []time.Time{utils.Date(2025, 3, 1), utils.Date(2025, 1, 1), utils.Date(2025, 2, 1)}
	utils.SortDates(dates)

	lo, hi := utils.AdjacentDates(utils.Date(2025, 1, 15), dates)
	assert.Equal(t, dates[0], lo)
	assert.Equal(t, dates[1], hi)

	lo, hi = utils.AdjacentDates(utils.Date(2026, 1, 1), dates)
	assert.Equal(t, dates[1], lo)
	assert.Equal(t, dates[2], hi)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := utils.ParseDate("2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, utils.Date(2025, 6, 30), d)

	_, err = utils.ParseDate("30/06/2025")
	assert.Error(t, err)
}

func TestDaysAndMonthEnd(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 365, utils.Days(utils.Date(2025, 1, 1), utils.Date(2026, 1, 1)))
	assert.Equal(t, utils.Date(2024, 2, 29), utils.EndOfMonth(utils.Date(2024, 2, 3)))
	assert.Equal(t, utils.Date(2025, 4, 30), utils.EndOfMonth(utils.Date(2025, 4, 10)))
	assert.Equal(t, 1.235, utils.RoundTo(1.23456, 3))
}

func TestIsEndOfMonth(t *testing.T) {
	t.Parallel()

	assert.True(t, utils.IsEndOfMonth(utils.Date(2024, 2, 29)))
	assert.True(t, utils.IsEndOfMonth(utils.Date(2024, 11, 30)))
	assert.False(t, utils.IsEndOfMonth(utils.Date(2024, 11, 29)))
	assert.False(t, utils.IsEndOfMonth(utils.Date(2025, 2, 27)))
}
