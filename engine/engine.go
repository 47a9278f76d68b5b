package engine

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/Carmen-Shannon/oxy-sdf/engine/config"
	"github.com/Carmen-Shannon/oxy-sdf/engine/frame"
	"github.com/Carmen-Shannon/oxy-sdf/engine/geometry"
	"github.com/Carmen-Shannon/oxy-sdf/engine/noise"
	"github.com/Carmen-Shannon/oxy-sdf/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-sdf/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-sdf/engine/window"
)

// WindowFactory opens the platform window for a configuration.
type WindowFactory func(cfg config.Config) (window.Window, error)

// RendererFactory creates the renderer presenting into a window.
type RendererFactory func(win window.Window, cfg config.Config) (renderer.Renderer, error)

// engine implements the Engine interface.
// It owns the window, the renderer and the frame loop built on top of both.
type engine struct {
	cfg config.Config

	newWindow   WindowFactory
	newRenderer RendererFactory

	window     window.Window
	renderer   renderer.Renderer
	controller *frame.Controller
	field      *noise.Field
}

// Engine is the assembled SDF renderer.
type Engine interface {
	// Run drives the frame loop until the window is closed or a frame fails.
	//
	// Returns:
	//   - error: the wrapped per-frame failure, or nil on a clean stop
	Run() error

	// Close releases the renderer and closes the window. It is safe to call more than once.
	Close()

	// Window returns the underlying window.
	Window() window.Window

	// Renderer returns the underlying renderer.
	Renderer() renderer.Renderer

	// Controller returns the frame loop controller.
	Controller() *frame.Controller

	// NoiseField returns the field uploaded at startup, or nil when the noise stage is disabled.
	NoiseField() *noise.Field
}

var _ Engine = &engine{}

// NewEngine assembles the renderer for a configuration. Stages run in order: window, renderer,
// pipeline, geometry, uniform buffer, noise texture, bindings, controller. Any failure releases what
// was already built and is returned wrapped with the failing stage.
//
// Parameters:
//   - cfg: the validated runtime configuration
//   - options: functional options to configure the engine
//
// Returns:
//   - Engine: the assembled engine, ready to Run
//   - error: error naming the failing startup stage
func NewEngine(cfg config.Config, options ...EngineBuilderOption) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &engine{
		cfg:         cfg,
		newWindow:   openWindow,
		newRenderer: createRenderer,
	}
	for _, opt := range options {
		opt(e)
	}

	if err := e.assemble(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *engine) assemble() error {
	logger := common.Logger()
	caps := e.cfg.Caps()

	win, err := e.newWindow(e.cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	e.window = win

	r, err := e.newRenderer(win, e.cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	e.renderer = r

	vs, fs, err := shader.ForCapabilities(caps)
	if err != nil {
		return fmt.Errorf("load shaders: %w", err)
	}
	p := pipeline.NewPipeline("sdf "+caps.String(),
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	)
	if err := r.CreatePipeline(p); err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	if err := r.UploadStaticGeometry(geometry.VertexBytes(), geometry.IndexBytes(), geometry.IndexCount); err != nil {
		return fmt.Errorf("upload geometry: %w", err)
	}

	if caps.Has(frame.HasUniforms) {
		if err := r.CreateUniformBuffer(frame.UniformBlockSize); err != nil {
			return fmt.Errorf("create uniform buffer: %w", err)
		}
	}

	if caps.Has(frame.HasNoiseTexture) {
		if err := noise.Permutation.Validate(); err != nil {
			return fmt.Errorf("permutation table: %w", err)
		}
		e.field = noise.GenerateFieldConcurrent(e.cfg.Noise.Size, e.cfg.Noise.Workers)
		logger.Info("noise generated", "size", e.field.Size(), "workers", e.cfg.Noise.Workers)
		if err := r.CreateNoiseTexture(e.field.StagingData()); err != nil {
			return fmt.Errorf("create noise texture: %w", err)
		}
	}

	if err := r.BuildBindings(); err != nil {
		return fmt.Errorf("build bindings: %w", err)
	}

	exitKey, err := e.cfg.ExitKey()
	if err != nil {
		return fmt.Errorf("exit key: %w", err)
	}
	controllerOptions := []frame.ControllerBuilderOption{
		frame.WithCapabilities(caps),
		frame.WithExitKey(exitKey),
		frame.WithClearColour(e.cfg.Frame.ClearColour),
		frame.WithFrameLimit(e.cfg.Frame.Limit),
		frame.WithLogger(logger),
	}
	if e.cfg.Profiling {
		controllerOptions = append(controllerOptions, frame.WithProfiler(profiler.NewProfiler(profiler.WithLogger(logger))))
	}
	e.controller = frame.NewController(win, r, controllerOptions...)

	logger.Info("engine ready", "capabilities", caps.String(), "width", win.Width(), "height", win.Height())
	return nil
}

// openWindow is the default WindowFactory.
func openWindow(cfg config.Config) (window.Window, error) {
	return window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithResizable(cfg.Window.Resizable),
	)
}

// createRenderer is the default RendererFactory.
func createRenderer(win window.Window, cfg config.Config) (renderer.Renderer, error) {
	mode, err := renderer.ParsePresentMode(cfg.Renderer.PresentMode)
	if err != nil {
		return nil, err
	}
	return renderer.NewRenderer(win,
		renderer.WithPresentMode(mode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Renderer.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
	)
}

func (e *engine) Run() error {
	if e.controller == nil {
		return errors.New("engine is closed")
	}
	return e.controller.Run()
}

func (e *engine) Close() {
	if e.controller != nil {
		e.controller.Stop()
		e.controller = nil
	}
	if e.renderer != nil {
		e.renderer.Release()
		e.renderer = nil
	}
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			common.Logger().Warn("closing window", "error", err)
		}
		e.window = nil
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Controller() *frame.Controller {
	return e.controller
}

func (e *engine) NoiseField() *noise.Field {
	return e.field
}
