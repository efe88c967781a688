package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"webpify/internal/processor"
)

// Display runs the bubbletea view for a batch and prints the summary table
// when it finishes. Keyboard input is not captured, so an interrupt reaches
// the process signal handler and cancels the batch.
type Display struct {
	out   io.Writer
	total int
	err   error
}

func NewDisplay(w io.Writer) *Display {
	return &Display{out: w}
}

func (d *Display) Start(total int) error {
	d.total = total
	return nil
}

// Watch blocks until updates is closed.
func (d *Display) Watch(updates <-chan processor.ProgressUpdate) {
	program := tea.NewProgram(
		NewModel(updates, d.total),
		tea.WithOutput(d.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	_, d.err = program.Run()

	// The program can exit early on a terminal error; keep the producer unblocked.
	for range updates {
	}
}

func (d *Display) Finish(summary processor.Summary) error {
	if d.err != nil {
		return fmt.Errorf("tui: %w", d.err)
	}
	_, err := fmt.Fprintln(d.out, RenderSummary(SummaryRows(summary)))
	return err
}
