package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Info("scanning %s", "/photos")
	l.Warn("slow file")
	l.Error("decode %s: %v", "bad.png", "boom")
	l.Debug("hidden")

	out := buf.String()
	for _, want := range []string{"INFO scanning /photos\n", "WARN slow file\n", "ERROR decode bad.png: boom\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written without verbose: %q", out)
	}
}

func TestLogger_DebugVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)
	l.Debug("workers=%d", 4)
	if buf.String() != "DEBUG workers=4\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Info("tick")
		}()
	}
	wg.Wait()

	if n := strings.Count(buf.String(), "INFO tick\n"); n != 20 {
		t.Errorf("expected 20 intact lines, got %d", n)
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing")
}
