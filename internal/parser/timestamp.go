// Package parser turns user-supplied time expressions into timestamps.
// It sits in the presentation layer: the core state machine only ever
// sees the resolved time.Time values.
package parser

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/tempo-cli/tempo/internal/errors"
)

// ParseTimestamp parses a natural language timestamp expression such as
// "10 minutes ago", "yesterday 17:00" or an RFC 3339 string. An empty
// input or "now" resolves to the supplied now.
func ParseTimestamp(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "now") {
		return now, nil
	}

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return time.Time{}, errors.NewValidationErrorWithValue("timestamp", input,
			"not a recognizable time expression")
	}
	return result.Time, nil
}

// ParseRange resolves a period expression ("today", "yesterday", "this
// week", "last month", ...) into a half-open [start, end) range.
func ParseRange(period string, now time.Time) (start, end time.Time, err error) {
	period = strings.ToLower(strings.TrimSpace(period))

	switch {
	case period == "" || strings.HasPrefix(period, "today"):
		start = startOfDay(now)
		end = start.AddDate(0, 0, 1)

	case strings.HasPrefix(period, "yesterday"):
		start = startOfDay(now).AddDate(0, 0, -1)
		end = start.AddDate(0, 0, 1)

	case strings.Contains(period, "week"):
		start = startOfWeek(now)
		if strings.HasPrefix(period, "last") || strings.HasPrefix(period, "previous") {
			start = start.AddDate(0, 0, -7)
		}
		end = start.AddDate(0, 0, 7)

	case strings.Contains(period, "month"):
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if strings.HasPrefix(period, "last") || strings.HasPrefix(period, "previous") {
			start = start.AddDate(0, -1, 0)
		}
		end = start.AddDate(0, 1, 0)

	case strings.Contains(period, "year"):
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		if strings.HasPrefix(period, "last") || strings.HasPrefix(period, "previous") {
			start = start.AddDate(-1, 0, 0)
		}
		end = start.AddDate(1, 0, 0)

	default:
		// Fall back to a single parseable instant meaning "that day".
		t, perr := ParseTimestamp(period, now)
		if perr != nil {
			return time.Time{}, time.Time{}, errors.NewValidationErrorWithValue("range", period,
				"not a recognizable period")
		}
		start = startOfDay(t)
		end = start.AddDate(0, 0, 1)
	}

	return start, end, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the preceding Monday 00:00.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return time.Date(t.Year(), t.Month(), t.Day()-weekday+1, 0, 0, 0, 0, t.Location())
}
