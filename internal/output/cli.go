package output

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/tempo-cli/tempo/internal/model"
	"github.com/tempo-cli/tempo/internal/report"
)

// Styles for CLI output.
var (
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleActivity = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleDuration = lipgloss.NewStyle().
			Bold(true)

	styleNote = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMuted)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	if c.IsColorEnabled() {
		c.Println(styleSuccess.Render("✓ " + text))
	} else {
		c.Println("✓ " + text)
	}
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	if c.IsColorEnabled() {
		c.Println(styleWarning.Render("⚠ " + text))
	} else {
		c.Println("⚠ " + text)
	}
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	if c.IsColorEnabled() {
		c.Println(styleError.Render("✗ " + text))
	} else {
		c.Println("✗ " + text)
	}
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	if c.IsColorEnabled() {
		c.Println(styleMuted.Render(text))
	} else {
		c.Println(text)
	}
}

// ActivityName formats an activity label.
func (c *CLIFormatter) ActivityName(name string) string {
	if c.IsColorEnabled() {
		return styleActivity.Render(name)
	}
	return name
}

// Duration formats a duration with emphasis.
func (c *CLIFormatter) Duration(d time.Duration) string {
	s := FormatDuration(d)
	if c.IsColorEnabled() {
		return styleDuration.Render(s)
	}
	return s
}

// PrintStarted reports a newly started entry.
func (c *CLIFormatter) PrintStarted(e *model.Entry) {
	c.Printf("Started tracking %s\n", c.ActivityName(e.Activity))
	c.Printf("  Started: %s\n", FormatTime(e.Start))
	if len(e.Tags) > 0 {
		c.Printf("  Tags: %v\n", e.Tags)
	}
	if e.Note != "" {
		c.printNote(e.Note)
	}
}

// PrintStopped reports a stopped entry.
func (c *CLIFormatter) PrintStopped(e *model.Entry) {
	c.Printf("Stopped tracking %s\n", c.ActivityName(e.Activity))
	c.Printf("  %s - %s (%s)\n",
		FormatTimeOnly(e.Start), FormatTimeOnly(*e.End), c.Duration(e.Duration(time.Time{})))
}

// PrintStatus reports the current tracking state.
func (c *CLIFormatter) PrintStatus(e *model.Entry, now time.Time) {
	if e == nil {
		c.Muted("Not tracking")
		return
	}
	c.Printf("Tracking %s for %s\n", c.ActivityName(e.Activity), c.Duration(e.Duration(now)))
	c.Printf("  Started: %s\n", FormatTime(e.Start))
	if e.Note != "" {
		c.printNote(e.Note)
	}
}

// PrintSummary renders a report summary as an aligned table.
func (c *CLIFormatter) PrintSummary(s *report.Summary) {
	c.Printf("%s - %s\n\n", FormatDate(s.Window.From), FormatDate(s.Window.To))

	if len(s.Activities) == 0 {
		c.Muted("No entries in range")
		return
	}

	nameWidth := activityColumnWidth(s)
	for _, at := range s.Activities {
		c.Printf("  %-*s %s\n", nameWidth, at.Activity, c.Duration(at.Duration))
	}
	c.Printf("  %-*s %s\n", nameWidth, "total", c.Duration(s.Total))

	if len(s.Tags) > 0 {
		c.Println()
		for _, tt := range s.Tags {
			c.Printf("  #%-*s %s\n", nameWidth-1, tt.Tag, c.Duration(tt.Duration))
		}
	}
}

// PrintSync reports the outcome of a sync run.
func (c *CLIFormatter) PrintSync(added, updated, removed, pushed int) {
	if added+updated+removed+pushed == 0 {
		c.Muted("Already in sync")
		return
	}
	c.Success("Synced")
	c.Printf("  Pulled: %d new, %d updated, %d deleted\n", added, updated, removed)
	c.Printf("  Pushed: %d\n", pushed)
}

func (c *CLIFormatter) printNote(note string) {
	if c.IsColorEnabled() {
		c.Printf("  %s\n", styleNote.Render("\""+note+"\""))
	} else {
		c.Printf("  \"%s\"\n", note)
	}
}

// activityColumnWidth picks a name column width that fits the longest
// activity but stays inside the terminal.
func activityColumnWidth(s *report.Summary) int {
	width := len("total")
	for _, at := range s.Activities {
		if len(at.Activity) > width {
			width = len(at.Activity)
		}
	}

	if termWidth, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && termWidth > 20 {
		if max := termWidth - 16; width > max {
			width = max
		}
	}
	return width + 2
}

// FormatEntryLine renders one entry as a single log line.
func (c *CLIFormatter) FormatEntryLine(e *model.Entry, now time.Time) string {
	end := "(active)"
	if !e.IsOpen() {
		end = FormatTimeOnly(*e.End)
	}
	return fmt.Sprintf("%s  %s - %s  %s",
		c.ActivityName(e.Activity), FormatTimeOnly(e.Start), end, c.Duration(e.Duration(now)))
}
