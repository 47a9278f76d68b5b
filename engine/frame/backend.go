package frame

import "github.com/Carmen-Shannon/oxy-sdf/engine/event"

// EventSource is the window side of the backend.
type EventSource interface {
	// PollEvents returns every pending event without blocking. An empty result is valid.
	PollEvents() []event.Event

	// Size reports the current drawable size. ok is false when the size cannot be queried.
	Size() (size WindowSize, ok bool)
}

// Device is the graphics side of the backend. The controller references the render-target and
// depth views only through ReconfigureViews; it never touches them directly.
type Device interface {
	// ReconfigureViews rebuilds the render-target and depth-stencil views for a new window size.
	ReconfigureViews(width, height int) error

	// RecordClear records a clear of the render target to colour.
	RecordClear(colour [4]float64)

	// RecordUpdateUniform records an upload of the uniform block to the uniform buffer.
	RecordUpdateUniform(block UniformBlock) error

	// RecordDraw records the indexed quad draw with the active pipeline and bindings.
	RecordDraw() error

	// Flush submits the recorded commands to the device.
	Flush() error

	// Present swaps the rendered frame onto the window.
	Present() error

	// Cleanup recycles per-frame backend resources once the frame is complete.
	Cleanup()
}
