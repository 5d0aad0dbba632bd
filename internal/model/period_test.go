package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindowDefaultsToLastSixMonths(t *testing.T) {
	now := time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC)

	window, err := StatsRequest{}.ResolveWindow(now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, -6, 0), window.From)
	assert.Equal(t, now, window.To)
}

func TestResolveWindowPresets(t *testing.T) {
	now := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		preset PeriodPreset
		from   time.Time
	}{
		{PeriodLastMonth, now.AddDate(0, -1, 0)},
		{PeriodLast3Months, now.AddDate(0, -3, 0)},
		{PeriodLast6Months, now.AddDate(0, -6, 0)},
		{PeriodLastYear, now.AddDate(-1, 0, 0)},
	}

	for _, tc := range cases {
		t.Run(string(tc.preset), func(t *testing.T) {
			window, err := StatsRequest{Period: tc.preset}.ResolveWindow(now)
			require.NoError(t, err)
			assert.Equal(t, tc.from, window.From)
			assert.Equal(t, now, window.To)
		})
	}
}

func TestResolveWindowAllTimeHasOpenStart(t *testing.T) {
	now := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)

	window, err := StatsRequest{Period: PeriodAllTime}.ResolveWindow(now)
	require.NoError(t, err)
	assert.True(t, window.From.IsZero())
	assert.Equal(t, now, window.To)
}

func TestResolveWindowExplicitDatesWinOverPreset(t *testing.T) {
	now := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	window, err := StatsRequest{
		StartDate: &start,
		EndDate:   &end,
		Period:    PeriodLastYear,
	}.ResolveWindow(now)
	require.NoError(t, err)
	assert.Equal(t, start, window.From)
	assert.Equal(t, end, window.To)
}

func TestResolveWindowRejections(t *testing.T) {
	now := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	_, err := StatsRequest{StartDate: &start}.ResolveWindow(now)
	assert.Error(t, err)

	_, err = StatsRequest{EndDate: &end}.ResolveWindow(now)
	assert.Error(t, err)

	_, err = StatsRequest{StartDate: &start, EndDate: &end}.ResolveWindow(now)
	assert.Error(t, err)

	_, err = StatsRequest{Period: "fortnight"}.ResolveWindow(now)
	assert.Error(t, err)
}
