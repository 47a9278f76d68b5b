package profiler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestTickReportsAfterInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewProfiler(WithClock(clock.now), WithLogger(logger), WithInterval(time.Second))

	for i := 0; i < 59; i++ {
		clock.t = clock.t.Add(10 * time.Millisecond)
		if p.Tick() {
			t.Fatalf("Tick() reported early at frame %d", i)
		}
	}
	clock.t = time.Unix(2, 0)
	if !p.Tick() {
		t.Fatal("Tick() did not report after the interval")
	}
	if got := p.FPS(); got != 30 {
		t.Errorf("FPS() = %v, want 30", got)
	}
	if !strings.Contains(buf.String(), "frame stats") {
		t.Errorf("log output %q missing frame stats", buf.String())
	}
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	if p.updateInterval != time.Second {
		t.Errorf("updateInterval = %v, want 1s", p.updateInterval)
	}
}

func TestFPSZeroBeforeReport(t *testing.T) {
	if got := NewProfiler().FPS(); got != 0 {
		t.Errorf("FPS() = %v, want 0", got)
	}
}
