package output

import (
	"time"

	"github.com/tempo-cli/tempo/internal/model"
	"github.com/tempo-cli/tempo/internal/report"
)

// JSONFormatter provides machine-readable output for scripting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

type jsonEnvelope struct {
	Status  string      `json:"status"`
	Result  interface{} `json:"result,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
	Message string      `json:"message,omitempty"`
}

// PrintEntry prints a single entry under a status envelope.
func (j *JSONFormatter) PrintEntry(action string, e *model.Entry) error {
	return j.JSON(jsonEnvelope{
		Status: "ok",
		Result: map[string]interface{}{
			"action": action,
			"entry":  e,
		},
	})
}

// PrintEntries prints a list of entries.
func (j *JSONFormatter) PrintEntries(entries []*model.Entry) error {
	return j.JSON(jsonEnvelope{Status: "ok", Result: entries})
}

// PrintStatus prints the current tracking state.
func (j *JSONFormatter) PrintStatus(e *model.Entry, now time.Time) error {
	result := map[string]interface{}{
		"tracking": e != nil,
	}
	if e != nil {
		result["entry"] = e
		result["duration_seconds"] = int64(e.Duration(now).Seconds())
	}
	return j.JSON(jsonEnvelope{Status: "ok", Result: result})
}

// PrintSummary prints a report summary.
func (j *JSONFormatter) PrintSummary(s *report.Summary) error {
	type activityJSON struct {
		Activity string `json:"activity"`
		Seconds  int64  `json:"seconds"`
		Count    int    `json:"count"`
	}
	type tagJSON struct {
		Tag     string `json:"tag"`
		Seconds int64  `json:"seconds"`
	}

	activities := make([]activityJSON, 0, len(s.Activities))
	for _, at := range s.Activities {
		activities = append(activities, activityJSON{
			Activity: at.Activity,
			Seconds:  int64(at.Duration.Seconds()),
			Count:    at.Count,
		})
	}
	tags := make([]tagJSON, 0, len(s.Tags))
	for _, tt := range s.Tags {
		tags = append(tags, tagJSON{Tag: tt.Tag, Seconds: int64(tt.Duration.Seconds())})
	}

	return j.JSON(jsonEnvelope{
		Status: "ok",
		Result: map[string]interface{}{
			"from":          s.Window.From,
			"to":            s.Window.To,
			"total_seconds": int64(s.Total.Seconds()),
			"activities":    activities,
			"tags":          tags,
		},
	})
}

// PrintSync prints the outcome of a sync run.
func (j *JSONFormatter) PrintSync(added, updated, removed, pushed, conflicts int) error {
	return j.JSON(jsonEnvelope{
		Status: "ok",
		Result: map[string]interface{}{
			"added":     added,
			"updated":   updated,
			"removed":   removed,
			"pushed":    pushed,
			"conflicts": conflicts,
		},
	})
}

// PrintError prints an error envelope.
func (j *JSONFormatter) PrintError(kind, message string) error {
	return j.JSON(jsonEnvelope{Status: "error", Kind: kind, Message: message})
}
