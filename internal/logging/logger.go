package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Logger writes leveled lines to a single writer, normally stderr, so that
// stdout only carries the progress bar. Safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool

	info  lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
	debug lipgloss.Style
}

// New returns a Logger writing to w. Level tags are colored only when w is a
// terminal that supports it.
func New(w io.Writer, verbose bool) *Logger {
	r := lipgloss.NewRenderer(w)
	return &Logger{
		out:     w,
		verbose: verbose,
		info:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#88C0D0")),
		warn:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#EBCB8B")),
		err:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#BF616A")),
		debug:   r.NewStyle().Foreground(lipgloss.Color("#7A8291")),
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, false)
}

func (l *Logger) line(style lipgloss.Style, level, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, style.Render(level)+" "+text+"\n")
}

func (l *Logger) Info(format string, args ...any) {
	l.line(l.info, "INFO", fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.line(l.warn, "WARN", fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.line(l.err, "ERROR", fmt.Sprintf(format, args...))
}

// Debug is a no-op unless the logger is verbose.
func (l *Logger) Debug(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.line(l.debug, "DEBUG", fmt.Sprintf(format, args...))
}
