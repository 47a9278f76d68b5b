package engine

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/Carmen-Shannon/oxy-sdf/engine/config"
	"github.com/Carmen-Shannon/oxy-sdf/engine/event"
	"github.com/Carmen-Shannon/oxy-sdf/engine/frame"
	"github.com/Carmen-Shannon/oxy-sdf/engine/noise"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-sdf/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

type fakeWindow struct {
	events []event.Event
	closed bool
}

func (w *fakeWindow) PollEvents() []event.Event {
	evs := w.events
	w.events = nil
	return evs
}

func (w *fakeWindow) Size() (frame.WindowSize, bool)             { return frame.WindowSize{Width: 320, Height: 200}, true }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) Width() int                                 { return 320 }
func (w *fakeWindow) Height() int                                { return 200 }

func (w *fakeWindow) Close() error {
	if w.closed {
		return errors.New("already closed")
	}
	w.closed = true
	return nil
}

var _ window.Window = &fakeWindow{}

type fakeRenderer struct {
	calls    []string
	failOn   string
	pipeline pipeline.Pipeline
	texture  common.TextureStagingData
	released bool
}

func (r *fakeRenderer) record(name string) error {
	r.calls = append(r.calls, name)
	if name == r.failOn {
		return errors.New(name + " failed")
	}
	return nil
}

func (r *fakeRenderer) CreatePipeline(p pipeline.Pipeline) error {
	r.pipeline = p
	return r.record("pipeline")
}

func (r *fakeRenderer) UploadStaticGeometry(_, _ []byte, _ int) error { return r.record("geometry") }
func (r *fakeRenderer) CreateUniformBuffer(uint64) error              { return r.record("uniform buffer") }

func (r *fakeRenderer) CreateNoiseTexture(data common.TextureStagingData) error {
	r.texture = data
	return r.record("noise texture")
}

func (r *fakeRenderer) BuildBindings() error                         { return r.record("bindings") }
func (r *fakeRenderer) Pipeline() pipeline.Pipeline                  { return r.pipeline }
func (r *fakeRenderer) Release()                                     { r.released = true }
func (r *fakeRenderer) ReconfigureViews(_, _ int) error              { return r.record("reconfigure") }
func (r *fakeRenderer) RecordClear([4]float64)                       { _ = r.record("clear") }
func (r *fakeRenderer) RecordUpdateUniform(frame.UniformBlock) error { return r.record("uniform") }
func (r *fakeRenderer) RecordDraw() error                            { return r.record("draw") }
func (r *fakeRenderer) Flush() error                                 { return r.record("flush") }
func (r *fakeRenderer) Present() error                               { return r.record("present") }
func (r *fakeRenderer) Cleanup()                                     { _ = r.record("cleanup") }

var _ renderer.Renderer = &fakeRenderer{}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Noise.Size = 8
	cfg.Noise.Workers = 2
	return cfg
}

func newTestEngine(t *testing.T, cfg config.Config, win *fakeWindow, r *fakeRenderer) (Engine, error) {
	t.Helper()
	return NewEngine(cfg,
		WithWindowFactory(func(config.Config) (window.Window, error) { return win, nil }),
		WithRendererFactory(func(window.Window, config.Config) (renderer.Renderer, error) { return r, nil }),
	)
}

func TestNewEngineAssemblesInOrder(t *testing.T) {
	win, r := &fakeWindow{}, &fakeRenderer{}
	e, err := newTestEngine(t, testConfig(), win, r)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	defer e.Close()

	want := []string{"pipeline", "geometry", "uniform buffer", "noise texture", "bindings"}
	if !reflect.DeepEqual(r.calls, want) {
		t.Errorf("calls = %v, want %v", r.calls, want)
	}
	if !e.NoiseField().Equal(noise.GenerateField(8)) {
		t.Error("noise field differs from sequential generation")
	}
	if r.texture.Width != 8 || r.texture.Height != 8 || len(r.texture.Pixels) != 8*8*4 {
		t.Errorf("texture = %dx%d with %d bytes", r.texture.Width, r.texture.Height, len(r.texture.Pixels))
	}
	if e.Controller().Capabilities() != frame.CapabilitiesAll {
		t.Errorf("controller capabilities = %v", e.Controller().Capabilities())
	}
	if r.pipeline.PipelineKey() != "sdf uniforms+noise" {
		t.Errorf("pipeline key = %q", r.pipeline.PipelineKey())
	}
}

func TestNewEngineColourOnly(t *testing.T) {
	cfg := testConfig()
	cfg.Capabilities = config.CapabilitiesConfig{}
	win, r := &fakeWindow{}, &fakeRenderer{}
	e, err := newTestEngine(t, cfg, win, r)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	want := []string{"pipeline", "geometry", "bindings"}
	if !reflect.DeepEqual(r.calls, want) {
		t.Errorf("calls = %v, want %v", r.calls, want)
	}
	if e.NoiseField() != nil {
		t.Error("noise field generated for colour-only config")
	}
}

func TestNewEngineStageFailures(t *testing.T) {
	for _, stage := range []string{"pipeline", "geometry", "uniform buffer", "noise texture", "bindings"} {
		t.Run(stage, func(t *testing.T) {
			win, r := &fakeWindow{}, &fakeRenderer{failOn: stage}
			_, err := newTestEngine(t, testConfig(), win, r)
			if err == nil {
				t.Fatal("NewEngine() succeeded")
			}
			if !strings.Contains(err.Error(), stage) {
				t.Errorf("error %q does not name stage %q", err, stage)
			}
			if !r.released || !win.closed {
				t.Errorf("released = %v, closed = %v; want both", r.released, win.closed)
			}
		})
	}
}

func TestNewEngineWindowFailure(t *testing.T) {
	_, err := NewEngine(testConfig(),
		WithWindowFactory(func(config.Config) (window.Window, error) { return nil, errors.New("no display") }),
	)
	if err == nil || !strings.Contains(err.Error(), "create window: no display") {
		t.Errorf("NewEngine() error = %v", err)
	}
}

func TestNewEngineRendererFailureClosesWindow(t *testing.T) {
	win := &fakeWindow{}
	_, err := NewEngine(testConfig(),
		WithWindowFactory(func(config.Config) (window.Window, error) { return win, nil }),
		WithRendererFactory(func(window.Window, config.Config) (renderer.Renderer, error) { return nil, errors.New("no adapter") }),
	)
	if err == nil || !strings.Contains(err.Error(), "create renderer") {
		t.Errorf("NewEngine() error = %v", err)
	}
	if !win.closed {
		t.Error("window left open after renderer failure")
	}
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	opened := false
	cfg := testConfig()
	cfg.Window.Width = 0
	_, err := NewEngine(cfg, WithWindowFactory(func(config.Config) (window.Window, error) {
		opened = true
		return &fakeWindow{}, nil
	}))
	if err == nil {
		t.Fatal("invalid config accepted")
	}
	if opened {
		t.Error("window opened for invalid config")
	}
}

func TestRunStopsOnClose(t *testing.T) {
	win, r := &fakeWindow{}, &fakeRenderer{}
	e, err := newTestEngine(t, testConfig(), win, r)
	if err != nil {
		t.Fatal(err)
	}
	win.events = []event.Event{event.CloseRequested()}
	if err := e.Run(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
	if e.Controller().Frames() != 0 {
		t.Errorf("frames = %d, want 0", e.Controller().Frames())
	}

	e.Close()
	e.Close()
	if err := e.Run(); err == nil {
		t.Error("Run() after Close succeeded")
	}
}
