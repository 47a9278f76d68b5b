// Package frame drives the per-frame loop: it drains window events, derives the uniform block
// from the live window size, and issues the clear/update/draw/present sequence on the device.
//
// The controller is single threaded. Cancellation is cooperative and only observed between
// iterations: once a close request or the exit key is seen, the current iteration ends after
// event draining and nothing else is drawn.
package frame

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/Carmen-Shannon/oxy-sdf/engine/event"
	"github.com/Carmen-Shannon/oxy-sdf/engine/profiler"
)

// ErrStopped is returned by Step once the controller has left the RUNNING state.
var ErrStopped = errors.New("frame loop stopped")

// Black returns the opaque clear colour used unless WithClearColour overrides it.
func Black() [4]float64 {
	return [4]float64{0, 0, 0, 1}
}

// Controller owns the running flag and the uniform block for the frame loop.
type Controller struct {
	events EventSource
	device Device

	capabilities Capabilities
	exitKey      common.Key
	clearColour  [4]float64
	frameLimit   time.Duration
	profiler     *profiler.Profiler
	logger       *slog.Logger

	running  bool
	uniforms UniformBlock
	frames   uint64
}

// NewController creates a RUNNING controller over the given backend.
// Defaults: every capability enabled, Escape exits, opaque black clear, uncapped frame rate.
//
// Parameters:
//   - events: the window event source and size query
//   - device: the graphics device the frame is recorded on
//   - options: functional options to configure the controller
//
// Returns:
//   - *Controller: the controller, ready to Run
func NewController(events EventSource, device Device, options ...ControllerBuilderOption) *Controller {
	c := &Controller{
		events:       events,
		device:       device,
		capabilities: CapabilitiesAll,
		exitKey:      common.KeyEsc,
		clearColour:  Black(),
		running:      true,
		uniforms:     BuildUniforms(nil),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.logger == nil {
		c.logger = common.Logger()
	}
	return c
}

// Run steps the loop until the controller stops.
//
// Returns:
//   - error: nil on a clean exit (close request, exit key, Stop), or the first per-frame failure
func (c *Controller) Run() error {
	for {
		drew, err := c.Step()
		if errors.Is(err, ErrStopped) {
			return nil
		}
		if err != nil {
			return err
		}
		if !drew {
			return nil
		}
	}
}

// Step runs one iteration of the loop.
//
// Returns:
//   - bool: true if a frame was drawn and presented
//   - error: ErrStopped if called after the controller stopped, or a wrapped per-frame failure
func (c *Controller) Step() (bool, error) {
	if !c.running {
		return false, ErrStopped
	}
	start := time.Now()

	if err := c.drainEvents(); err != nil {
		return false, err
	}
	if !c.running {
		c.logger.Info("frame loop stopped", "frames", c.frames)
		return false, nil
	}

	c.uniforms = BuildUniforms(c.windowSize())

	c.device.RecordClear(c.clearColour)
	if c.capabilities.Has(HasUniforms) {
		if err := c.device.RecordUpdateUniform(c.uniforms); err != nil {
			return false, c.fail("update uniforms", err)
		}
	}
	if err := c.device.RecordDraw(); err != nil {
		return false, c.fail("draw", err)
	}
	if err := c.device.Flush(); err != nil {
		return false, c.fail("flush", err)
	}
	if err := c.device.Present(); err != nil {
		return false, c.fail("present", err)
	}
	c.device.Cleanup()
	c.frames++

	if c.profiler != nil {
		c.profiler.Tick()
	}
	if c.frameLimit > 0 {
		if remaining := c.frameLimit - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
	return true, nil
}

// drainEvents applies every pending event. All events of the batch are processed even after a
// stop transition so that a trailing resize still reaches the device.
func (c *Controller) drainEvents() error {
	for _, ev := range c.events.PollEvents() {
		switch ev.Kind {
		case event.KindCloseRequested:
			c.running = false
		case event.KindKeyPress:
			if ev.Key == c.exitKey {
				c.running = false
			}
		case event.KindResized:
			c.logger.Debug("reconfiguring views", "width", ev.Width, "height", ev.Height)
			if err := c.device.ReconfigureViews(ev.Width, ev.Height); err != nil {
				return c.fail("reconfigure views", err)
			}
		}
	}
	return nil
}

func (c *Controller) windowSize() *WindowSize {
	size, ok := c.events.Size()
	if !ok {
		return nil
	}
	return &size
}

// fail stops the loop and wraps err with the frame number and step.
// No retry is attempted: a failed frame terminates the loop.
func (c *Controller) fail(step string, err error) error {
	c.running = false
	c.logger.Error("frame failed", "frame", c.frames, "step", step, "err", err)
	return fmt.Errorf("frame %d: %s: %w", c.frames, step, err)
}

// Stop moves the controller to STOPPED. The loop exits at the start of the next iteration.
func (c *Controller) Stop() {
	c.running = false
}

// Running reports whether the controller is still in the RUNNING state.
func (c *Controller) Running() bool {
	return c.running
}

// Frames returns the number of frames presented so far.
func (c *Controller) Frames() uint64 {
	return c.frames
}

// Uniforms returns the uniform block computed for the most recent frame.
func (c *Controller) Uniforms() UniformBlock {
	return c.uniforms
}

// Capabilities returns the feature set this controller drives.
func (c *Controller) Capabilities() Capabilities {
	return c.capabilities
}
