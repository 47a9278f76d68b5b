package frame

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/Carmen-Shannon/oxy-sdf/engine/profiler"
)

// ControllerBuilderOption is a functional option for configuring a Controller.
// Use the With* functions to create options that are applied directly to the controller instance.
type ControllerBuilderOption func(c *Controller)

// WithCapabilities sets which stages the controller drives. Without HasUniforms the uniform
// upload step is skipped.
//
// Parameters:
//   - caps: the capability set
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithCapabilities(caps Capabilities) ControllerBuilderOption {
	return func(c *Controller) {
		c.capabilities = caps
	}
}

// WithExitKey sets the key whose press stops the loop. Defaults to Escape.
//
// Parameters:
//   - key: the exit key
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithExitKey(key common.Key) ControllerBuilderOption {
	return func(c *Controller) {
		c.exitKey = key
	}
}

// WithClearColour sets the render target clear colour. Components are clamped to [0, 1].
//
// Parameters:
//   - colour: RGBA clear colour
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithClearColour(colour [4]float64) ControllerBuilderOption {
	return func(c *Controller) {
		for i, v := range colour {
			c.clearColour[i] = common.Clamp01(v)
		}
	}
}

// WithFrameLimit caps the loop to fps iterations per second. Pass 0 to uncap (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithFrameLimit(fps float64) ControllerBuilderOption {
	return func(c *Controller) {
		if fps <= 0 {
			c.frameLimit = 0
			return
		}
		c.frameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithProfiler ticks p once per presented frame.
//
// Parameters:
//   - p: the profiler, or nil to disable profiling
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) ControllerBuilderOption {
	return func(c *Controller) {
		c.profiler = p
	}
}

// WithLogger sets the controller's logger. Defaults to common.Logger().
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithLogger(l *slog.Logger) ControllerBuilderOption {
	return func(c *Controller) {
		c.logger = l
	}
}
