// Package progress renders the plain-text batch progress bar.
//
// The bar is written as "[" followed by one blank slot per job and "]", then
// the cursor is moved back to the first slot with backspaces. Each finished
// job overwrites one slot in completion order: Tick for a success, Fail for a
// failure. Finish pads any unmarked slots and prints the closing bracket and
// a newline. The layout is for humans only.
package progress

import (
	"io"
	"strings"
	"sync"

	"webpify/internal/processor"
)

const (
	TickMark = '-'
	FailMark = 'x'
)

// Bar is safe for concurrent use. Writes are serialised and go straight to
// the writer, so each mark is visible as soon as it is made.
type Bar struct {
	mu    sync.Mutex
	out   io.Writer
	total int
	done  int
}

func NewBar(w io.Writer) *Bar {
	return &Bar{out: w}
}

// Start draws the empty bar with one slot per job.
func (b *Bar) Start(total int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total = total
	b.done = 0
	frame := "[" + strings.Repeat(" ", total) + "]" + strings.Repeat("\b", total+1)
	return b.write(frame)
}

func (b *Bar) Tick() error { return b.mark(TickMark) }

func (b *Bar) Fail() error { return b.mark(FailMark) }

func (b *Bar) mark(r byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.done++
	return b.write(string(r))
}

// Watch marks one slot per update until updates is closed.
func (b *Bar) Watch(updates <-chan processor.ProgressUpdate) {
	for u := range updates {
		for i := 0; i < u.ConvertedDelta; i++ {
			_ = b.Tick()
		}
		for i := 0; i < u.FailedDelta; i++ {
			_ = b.Fail()
		}
	}
}

// Finish prints the closing bracket. Slots left unmarked by an interrupted
// batch are blanked first so the bracket lands at the end of the bar. The
// summary is not rendered.
func (b *Bar) Finish(processor.Summary) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	pad := ""
	if b.done < b.total {
		pad = strings.Repeat(" ", b.total-b.done)
	}
	return b.write(pad + "]\n")
}

// Done reports how many slots have been marked.
func (b *Bar) Done() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done
}

func (b *Bar) write(s string) error {
	_, err := io.WriteString(b.out, s)
	return err
}
