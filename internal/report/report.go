// Package report derives duration summaries from a set of entries. It is
// read-only: nothing here enforces ledger invariants or mutates state.
package report

import (
	"sort"
	"time"

	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/model"
)

// Window is a half-open time range [From, To). Entries contribute only the
// part of their interval that overlaps the window.
type Window struct {
	From time.Time
	To   time.Time
}

// Validate rejects empty or inverted windows.
func (w Window) Validate() error {
	if !w.From.Before(w.To) {
		return errors.Wrapf(errors.ErrInvalidRange, "from %s is not before to %s",
			w.From.Format(time.RFC3339), w.To.Format(time.RFC3339))
	}
	return nil
}

// Options controls how the open entry is treated.
type Options struct {
	// IncludeOpen counts the open entry as still running, measured against
	// Now. When false the open entry is excluded entirely.
	IncludeOpen bool
	Now         time.Time
}

// ActivityTotal is the summed duration for one activity.
type ActivityTotal struct {
	Activity string        `json:"activity"`
	Duration time.Duration `json:"duration"`
	Count    int           `json:"count"`
}

// TagTotal is the summed duration for one tag. An entry with several tags
// contributes its full clipped duration to each of them.
type TagTotal struct {
	Tag      string        `json:"tag"`
	Duration time.Duration `json:"duration"`
}

// Summary is the aggregate over a window.
type Summary struct {
	Window     Window          `json:"-"`
	Total      time.Duration   `json:"total"`
	Activities []ActivityTotal `json:"activities"`
	Tags       []TagTotal      `json:"tags,omitempty"`
}

// Totals aggregates entry durations within the window, grouped by activity
// and by tag. Partial overlaps are clipped to the window boundary.
func Totals(entries []*model.Entry, w Window, opts Options) (*Summary, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	byActivity := make(map[string]*ActivityTotal)
	byTag := make(map[string]time.Duration)
	var total time.Duration

	for _, e := range entries {
		var end time.Time
		switch {
		case !e.IsOpen():
			end = *e.End
		case opts.IncludeOpen:
			end = opts.Now
		default:
			continue
		}

		d := clip(e.Start, end, w)
		if d <= 0 {
			continue
		}

		total += d
		at := byActivity[e.Activity]
		if at == nil {
			at = &ActivityTotal{Activity: e.Activity}
			byActivity[e.Activity] = at
		}
		at.Duration += d
		at.Count++

		for _, tag := range e.Tags {
			byTag[tag] += d
		}
	}

	summary := &Summary{Window: w, Total: total}
	for _, at := range byActivity {
		summary.Activities = append(summary.Activities, *at)
	}
	sort.Slice(summary.Activities, func(i, j int) bool {
		a, b := summary.Activities[i], summary.Activities[j]
		if a.Duration != b.Duration {
			return a.Duration > b.Duration
		}
		return a.Activity < b.Activity
	})

	for tag, d := range byTag {
		summary.Tags = append(summary.Tags, TagTotal{Tag: tag, Duration: d})
	}
	sort.Slice(summary.Tags, func(i, j int) bool {
		a, b := summary.Tags[i], summary.Tags[j]
		if a.Duration != b.Duration {
			return a.Duration > b.Duration
		}
		return a.Tag < b.Tag
	})

	return summary, nil
}

// clip returns the duration of [start, end) that falls inside the window.
func clip(start, end time.Time, w Window) time.Duration {
	if start.Before(w.From) {
		start = w.From
	}
	if end.After(w.To) {
		end = w.To
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}
