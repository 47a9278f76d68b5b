package frame

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/Carmen-Shannon/oxy-sdf/engine/event"
)

// fakeWindow hands out one batch of events per PollEvents call.
type fakeWindow struct {
	batches [][]event.Event
	size    WindowSize
	sizeOK  bool
}

func (w *fakeWindow) PollEvents() []event.Event {
	if len(w.batches) == 0 {
		return nil
	}
	b := w.batches[0]
	w.batches = w.batches[1:]
	for _, ev := range b {
		if ev.Kind == event.KindResized {
			w.size = WindowSize{Width: float32(ev.Width), Height: float32(ev.Height)}
			w.sizeOK = true
		}
	}
	return b
}

func (w *fakeWindow) Size() (WindowSize, bool) {
	return w.size, w.sizeOK
}

// fakeDevice records every call in order.
type fakeDevice struct {
	calls     []string
	uniforms  []UniformBlock
	resizes   [][2]int
	clears    [][4]float64
	failOn    string
	failError error
}

func (d *fakeDevice) record(call string) error {
	d.calls = append(d.calls, call)
	if call == d.failOn {
		return d.failError
	}
	return nil
}

func (d *fakeDevice) ReconfigureViews(width, height int) error {
	d.resizes = append(d.resizes, [2]int{width, height})
	return d.record("reconfigure")
}

func (d *fakeDevice) RecordClear(colour [4]float64) {
	d.clears = append(d.clears, colour)
	_ = d.record("clear")
}

func (d *fakeDevice) RecordUpdateUniform(block UniformBlock) error {
	d.uniforms = append(d.uniforms, block)
	return d.record("uniform")
}

func (d *fakeDevice) RecordDraw() error { return d.record("draw") }
func (d *fakeDevice) Flush() error      { return d.record("flush") }
func (d *fakeDevice) Present() error    { return d.record("present") }
func (d *fakeDevice) Cleanup()          { _ = d.record("cleanup") }

func (d *fakeDevice) count(call string) int {
	n := 0
	for _, c := range d.calls {
		if c == call {
			n++
		}
	}
	return n
}

func newFixture(batches ...[]event.Event) (*fakeWindow, *fakeDevice) {
	dev := &fakeDevice{}
	return &fakeWindow{batches: batches, size: WindowSize{Width: 1280, Height: 800}, sizeOK: true}, dev
}

func TestStepSequence(t *testing.T) {
	win, dev := newFixture()
	c := NewController(win, dev)

	drew, err := c.Step()
	if err != nil || !drew {
		t.Fatalf("Step() = %v, %v, want true, nil", drew, err)
	}
	want := []string{"clear", "uniform", "draw", "flush", "present", "cleanup"}
	if !reflect.DeepEqual(dev.calls, want) {
		t.Errorf("calls = %v, want %v", dev.calls, want)
	}
	if dev.clears[0] != Black() {
		t.Errorf("clear colour = %v, want opaque black", dev.clears[0])
	}
	if c.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", c.Frames())
	}
}

func TestColourOnlySkipsUniformUpload(t *testing.T) {
	win, dev := newFixture()
	c := NewController(win, dev, WithCapabilities(CapabilitiesColour))
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if dev.count("uniform") != 0 {
		t.Errorf("uniform uploaded %d times without HasUniforms", dev.count("uniform"))
	}
	if dev.count("draw") != 1 {
		t.Errorf("draw issued %d times, want 1", dev.count("draw"))
	}
}

func TestStopEvents(t *testing.T) {
	tests := []struct {
		name string
		ev   event.Event
	}{
		{"close requested", event.CloseRequested()},
		{"escape", event.KeyPress(common.KeyEsc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win, dev := newFixture(nil, []event.Event{tt.ev})
			c := NewController(win, dev)

			if drew, err := c.Step(); !drew || err != nil {
				t.Fatalf("first Step() = %v, %v", drew, err)
			}
			draws := dev.count("draw")

			drew, err := c.Step()
			if drew || err != nil {
				t.Fatalf("second Step() = %v, %v, want false, nil", drew, err)
			}
			if c.Running() {
				t.Error("controller still RUNNING after stop event")
			}
			if dev.count("draw") != draws {
				t.Errorf("draw issued after stop event")
			}
			if _, err := c.Step(); !errors.Is(err, ErrStopped) {
				t.Errorf("Step() after stop = %v, want ErrStopped", err)
			}
		})
	}
}

func TestOtherKeysKeepRunning(t *testing.T) {
	win, dev := newFixture([]event.Event{
		event.KeyPress(common.KeySpace),
		event.KeyPress(common.KeyQ),
		event.Other(),
	})
	c := NewController(win, dev)
	if drew, err := c.Step(); !drew || err != nil {
		t.Fatalf("Step() = %v, %v, want true, nil", drew, err)
	}
	if !c.Running() {
		t.Error("non-exit key stopped the controller")
	}
}

func TestCustomExitKey(t *testing.T) {
	win, dev := newFixture([]event.Event{event.KeyPress(common.KeyEsc)}, []event.Event{event.KeyPress(common.KeyQ)})
	c := NewController(win, dev, WithExitKey(common.KeyQ))
	if drew, _ := c.Step(); !drew {
		t.Fatal("Escape stopped a controller whose exit key is Q")
	}
	if drew, _ := c.Step(); drew || c.Running() {
		t.Error("Q did not stop the controller")
	}
}

func TestResizeReconfiguresEveryTime(t *testing.T) {
	win, dev := newFixture([]event.Event{event.Resized(800, 600), event.Resized(800, 600)})
	c := NewController(win, dev)
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if got := dev.count("reconfigure"); got != 2 {
		t.Errorf("reconfigure called %d times, want 2", got)
	}
	if !c.Running() {
		t.Error("resize changed the running state")
	}
	if got := c.Uniforms().Resolution; got != [2]float32{800, 600} {
		t.Errorf("uniform resolution = %v, want resized (800, 600)", got)
	}
	if dev.calls[0] != "reconfigure" || dev.calls[2] != "clear" {
		t.Errorf("events were not drained before drawing: %v", dev.calls)
	}
}

func TestEventsAfterCloseStillProcessed(t *testing.T) {
	win, dev := newFixture([]event.Event{event.CloseRequested(), event.Resized(320, 200)})
	c := NewController(win, dev)
	if drew, _ := c.Step(); drew {
		t.Fatal("Step() drew after close")
	}
	if !reflect.DeepEqual(dev.resizes, [][2]int{{320, 200}}) {
		t.Errorf("resizes = %v, want the trailing resize applied", dev.resizes)
	}
	if dev.count("draw") != 0 {
		t.Error("draw issued after close")
	}
}

func TestUniformFallbackWhenSizeUnavailable(t *testing.T) {
	win, dev := newFixture()
	win.sizeOK = false
	c := NewController(win, dev)
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if got := dev.uniforms[0].Resolution; got != DefaultResolution() {
		t.Errorf("uploaded resolution = %v, want default %v", got, DefaultResolution())
	}
	if got := c.Uniforms(); got != dev.uniforms[0] {
		t.Errorf("Uniforms() = %+v, want the uploaded block %+v", got, dev.uniforms[0])
	}
}

func TestUniformTracksWindowSize(t *testing.T) {
	win, dev := newFixture()
	win.size = WindowSize{Width: 640, Height: 480}
	c := NewController(win, dev)
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if got := dev.uniforms[0].Resolution; got != [2]float32{640, 480} {
		t.Errorf("uploaded resolution = %v, want (640, 480)", got)
	}

	win.size = WindowSize{Width: 1920, Height: 1080}
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if got := c.Uniforms().Resolution; got != [2]float32{1920, 1080} {
		t.Errorf("Uniforms().Resolution = %v after resize, want (1920, 1080)", got)
	}
}

func TestFrameFailureStops(t *testing.T) {
	boom := errors.New("surface lost")
	for _, step := range []string{"uniform", "draw", "flush", "present", "reconfigure"} {
		t.Run(step, func(t *testing.T) {
			win, dev := newFixture([]event.Event{event.Resized(10, 10)})
			dev.failOn, dev.failError = step, boom
			c := NewController(win, dev)

			err := c.Run()
			if !errors.Is(err, boom) {
				t.Fatalf("Run() = %v, want wrapped %v", err, boom)
			}
			if c.Running() {
				t.Error("controller still RUNNING after failure")
			}
			if dev.count("cleanup") != 0 {
				t.Error("cleanup ran for a failed frame")
			}
		})
	}
}

func TestRunStopsOnClose(t *testing.T) {
	win, dev := newFixture(nil, nil, nil, []event.Event{event.CloseRequested()})
	c := NewController(win, dev)
	if err := c.Run(); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if c.Frames() != 3 || dev.count("present") != 3 {
		t.Errorf("Frames() = %d, presents = %d, want 3", c.Frames(), dev.count("present"))
	}
}

func TestRunAfterStop(t *testing.T) {
	win, dev := newFixture()
	c := NewController(win, dev)
	c.Stop()
	if err := c.Run(); err != nil {
		t.Fatalf("Run() after Stop() = %v, want nil", err)
	}
	if len(dev.calls) != 0 {
		t.Errorf("device used after Stop(): %v", dev.calls)
	}
}

func TestWithClearColourClamps(t *testing.T) {
	win, dev := newFixture()
	c := NewController(win, dev, WithClearColour([4]float64{2, -1, 0.5, 1}))
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if want := [4]float64{1, 0, 0.5, 1}; dev.clears[0] != want {
		t.Errorf("clear colour = %v, want %v", dev.clears[0], want)
	}
}

func TestWithFrameLimit(t *testing.T) {
	win, dev := newFixture()
	c := NewController(win, dev, WithFrameLimit(50))
	if c.frameLimit != 20*time.Millisecond {
		t.Fatalf("frameLimit = %v, want 20ms", c.frameLimit)
	}
	start := time.Now()
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Step() returned after %v, want at least 20ms", elapsed)
	}

	WithFrameLimit(0)(c)
	if c.frameLimit != 0 {
		t.Errorf("WithFrameLimit(0) left frameLimit = %v", c.frameLimit)
	}
}
