package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tempo-cli/tempo/internal/model"
	"github.com/tempo-cli/tempo/internal/output"
)

// tickMsg drives the once-a-second duration refresh.
type tickMsg time.Time

// StatusModel is the bubbletea model for `tempo status --watch`. It renders
// a snapshot of the open entry; the ledger itself is not re-read while the
// view is up, so the lock is never held across the watch session.
type StatusModel struct {
	Entry *model.Entry
	Width int
	now   time.Time
}

// NewStatusModel creates a watch model over the given entry snapshot.
func NewStatusModel(entry *model.Entry) StatusModel {
	return StatusModel{
		Entry: entry,
		Width: 60,
		now:   time.Now(),
	}
}

// Init starts the tick loop.
func (m StatusModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles ticks, resizes and quit keys.
func (m StatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the status box.
func (m StatusModel) View() string {
	var content strings.Builder

	width := m.Width
	if width < 30 {
		width = 30
	}

	if m.Entry == nil {
		content.WriteString(StyleInactive.Render("Not tracking"))
		content.WriteString("\n\n")
		content.WriteString(StyleSubtitle.Render("Run 'tempo start ACTIVITY' to begin"))

		box := StyleStatusBox.Width(width - 4)
		return box.Render(content.String()) + "\n" + helpBar()
	}

	content.WriteString(StyleActive.Render("● TRACKING"))
	content.WriteString("\n\n")
	content.WriteString(m.Entry.Activity)
	if len(m.Entry.Tags) > 0 {
		content.WriteString("  ")
		content.WriteString(StyleSubtitle.Render("#" + strings.Join(m.Entry.Tags, " #")))
	}
	content.WriteString("\n\n")

	content.WriteString(StyleDuration.Render(output.FormatDuration(m.Entry.Duration(m.now))))
	content.WriteString("\n\n")
	content.WriteString(StyleSubtitle.Render(fmt.Sprintf("Started: %s", output.FormatTime(m.Entry.Start))))

	if m.Entry.Note != "" {
		content.WriteString("\n\n")
		content.WriteString(StyleNote.Render(fmt.Sprintf("\"%s\"", m.Entry.Note)))
	}

	box := StyleActiveStatusBox.Width(width - 4)
	return box.Render(content.String()) + "\n" + helpBar()
}

func helpBar() string {
	return StyleHelp.Render("q quit")
}

// RunStatusWatch runs the watch view until the user quits.
func RunStatusWatch(entry *model.Entry) error {
	p := tea.NewProgram(NewStatusModel(entry))
	_, err := p.Run()
	return err
}
