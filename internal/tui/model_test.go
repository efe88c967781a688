package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"webpify/internal/processor"
)

func TestModel_Update(t *testing.T) {
	updates := make(chan processor.ProgressUpdate)
	m := NewModel(updates, 4)

	newM, cmd := m.Update(updateMsg{Path: "a.png", ConvertedDelta: 1, BytesSavedDelta: 2048})
	m = newM.(Model)
	if cmd == nil {
		t.Fatal("expected a listen command after an update")
	}
	newM, _ = m.Update(updateMsg{Path: "bad.png", FailedDelta: 1})
	m = newM.(Model)

	if m.converted != 1 || m.failed != 1 || m.bytesSaved != 2048 {
		t.Fatalf("counts: converted=%d failed=%d saved=%d", m.converted, m.failed, m.bytesSaved)
	}
	if m.Done() != 2 || m.Ratio() != 0.5 {
		t.Fatalf("Done=%d Ratio=%v", m.Done(), m.Ratio())
	}

	view := m.View()
	if !strings.Contains(view, "Images: 2/4") || !strings.Contains(view, "errors:1") {
		t.Errorf("view missing counts:\n%s", view)
	}
	if !strings.Contains(view, "bad.png") {
		t.Errorf("view missing last path:\n%s", view)
	}
}

func TestModel_DoneQuits(t *testing.T) {
	m := NewModel(nil, 1)
	newM, cmd := m.Update(doneMsg{})
	m = newM.(Model)
	if !m.quitting || cmd == nil {
		t.Fatal("expected quit on done")
	}
	if m.View() != "" {
		t.Errorf("view after quit = %q", m.View())
	}
}

func TestModel_WindowSize(t *testing.T) {
	m := NewModel(nil, 1)
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	if w := newM.(Model).bar.Width; w != 60 {
		t.Errorf("bar width = %d, want 60", w)
	}
	newM, _ = m.Update(tea.WindowSizeMsg{Width: 5, Height: 40})
	if w := newM.(Model).bar.Width; w != 20 {
		t.Errorf("bar width = %d, want 20", w)
	}
}

func TestListenForUpdates(t *testing.T) {
	updates := make(chan processor.ProgressUpdate, 1)
	updates <- processor.ProgressUpdate{ConvertedDelta: 1}
	close(updates)

	cmd := listenForUpdates(updates)
	if _, ok := cmd().(updateMsg); !ok {
		t.Fatal("expected updateMsg")
	}
	if _, ok := cmd().(doneMsg); !ok {
		t.Fatal("expected doneMsg after close")
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(SummaryRows(processor.Summary{Total: 3, Converted: 2, Failed: 1, BytesSaved: 1500}))
	for _, want := range []string{"Images found", "Converted", "Failed", "1.5 kB"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Skipped") {
		t.Errorf("skipped row should be hidden when zero:\n%s", out)
	}
}

func TestFormatBytes(t *testing.T) {
	if got := FormatBytes(-2000); got != "-2.0 kB" {
		t.Errorf("FormatBytes(-2000) = %q", got)
	}
	if got := FormatBytes(0); got != "0 B" {
		t.Errorf("FormatBytes(0) = %q", got)
	}
}

func TestModel_ErrorCountStyle(t *testing.T) {
	m := NewModel(nil, 2)
	if got, want := m.errorCount(), dimStyle.Render("  errors:0"); got != want {
		t.Errorf("no failures: %q, want %q", got, want)
	}
	newM, _ := m.Update(updateMsg{FailedDelta: 1})
	if got, want := newM.(Model).errorCount(), errorStyle.Render("  errors:1"); got != want {
		t.Errorf("with failures: %q, want %q", got, want)
	}
}
