package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-cli/tempo/internal/errors"
)

var now = time.Date(2026, 8, 24, 15, 30, 0, 0, time.UTC) // a Monday

func TestParseTimestamp(t *testing.T) {
	t.Run("empty means now", func(t *testing.T) {
		got, err := ParseTimestamp("", now)
		require.NoError(t, err)
		assert.Equal(t, now, got)
	})

	t.Run("now keyword", func(t *testing.T) {
		got, err := ParseTimestamp("Now", now)
		require.NoError(t, err)
		assert.Equal(t, now, got)
	})

	t.Run("rfc3339", func(t *testing.T) {
		got, err := ParseTimestamp("2026-08-24T09:00:00Z", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC), got)
	})

	t.Run("relative expression", func(t *testing.T) {
		got, err := ParseTimestamp("10 minutes ago", now)
		require.NoError(t, err)
		assert.True(t, got.Equal(now.Add(-10*time.Minute)), "got %s", got)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseTimestamp("not a time at all zzz", now)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestParseRange(t *testing.T) {
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		period    string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"", monday, monday.AddDate(0, 0, 1)},
		{"today", monday, monday.AddDate(0, 0, 1)},
		{"yesterday", monday.AddDate(0, 0, -1), monday},
		{"this week", monday, monday.AddDate(0, 0, 7)},
		{"last week", monday.AddDate(0, 0, -7), monday},
		{"this month", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"last month", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{"this year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		name := tt.period
		if name == "" {
			name = "default"
		}
		t.Run(name, func(t *testing.T) {
			start, end, err := ParseRange(tt.period, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestParseRangeSingleDay(t *testing.T) {
	start, end, err := ParseRange("2026-08-10T00:00:00Z", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, start.AddDate(0, 0, 1), end)
}

func TestParseRangeInvalid(t *testing.T) {
	_, _, err := ParseRange("the before times zzz", now)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestStartOfWeekIsMonday(t *testing.T) {
	// A Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), startOfWeek(sunday))

	monday := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), startOfWeek(monday))
}
