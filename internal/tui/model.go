package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"webpify/internal/processor"
)

type Model struct {
	updates    <-chan processor.ProgressUpdate
	started    time.Time
	width      int
	total      int
	converted  int
	failed     int
	bytesSaved int64
	last       string
	bar        progress.Model
	quitting   bool
}

type doneMsg struct{}

type updateMsg processor.ProgressUpdate

func NewModel(updates <-chan processor.ProgressUpdate, total int) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40
	return Model{updates: updates, total: total, started: time.Now(), bar: bar}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.converted += msg.ConvertedDelta
		m.failed += msg.FailedDelta
		m.bytesSaved += msg.BytesSavedDelta
		m.last = msg.Path
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = barWidth(msg.Width)
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	lines := []string{
		titleStyle.Render("webpify"),
		labelStyle.Render(fmt.Sprintf("Images: %d/%d", m.Done(), m.total)) + m.errorCount(),
		labelStyle.Render("Space saved: " + FormatBytes(m.bytesSaved)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		m.bar.ViewAs(m.Ratio()),
	}
	if m.last != "" {
		lines = append(lines, dimStyle.Render(m.last))
	}

	return strings.Join(lines, "\n")
}

func (m Model) errorCount() string {
	text := fmt.Sprintf("  errors:%d", m.failed)
	if m.failed > 0 {
		return errorStyle.Render(text)
	}
	return dimStyle.Render(text)
}

// Done counts finished jobs, successful or not.
func (m Model) Done() int {
	return m.converted + m.failed
}

func (m Model) Ratio() float64 {
	if m.total <= 0 {
		return 0
	}
	ratio := float64(m.Done()) / float64(m.total)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

func listenForUpdates(updates <-chan processor.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func barWidth(termWidth int) int {
	w := termWidth - 10
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
)
