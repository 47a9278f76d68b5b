package window

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-sdf/common"
	"github.com/Carmen-Shannon/oxy-sdf/engine/event"
	"github.com/Carmen-Shannon/oxy-sdf/engine/frame"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides the platform window the quad is presented into.
// Input and window events are queued by platform callbacks and handed to the frame loop in batches.
type Window interface {
	// PollEvents pumps the platform message loop without blocking and returns every event
	// received since the previous call, in arrival order.
	//
	// Returns:
	//   - []event.Event: the pending events (possibly empty)
	PollEvents() []event.Event

	// Size returns the current framebuffer size in pixels.
	//
	// Returns:
	//   - frame.WindowSize: width and height in pixels
	//   - bool: false if the size is unavailable (window closed or minimised to 0x0)
	Size() (frame.WindowSize, bool)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the framebuffer width in pixels as last reported by the platform.
	Width() int

	// Height returns the framebuffer height in pixels as last reported by the platform.
	Height() int

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never opened or is already closed
	Close() error
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// resizable controls whether the user may resize the window.
	resizable bool

	// queue collects events from platform callbacks until the next PollEvents.
	queue event.Queue

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any
}

var _ Window = &engineWindow{}
var _ frame.EventSource = &engineWindow{}

// NewWindow creates and opens a Window with the specified options.
// Defaults to a resizable 1280x800 window titled "SDF".
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "SDF",
		width:     1280,
		height:    800,
		resizable: true,
	}
	for _, opt := range options {
		opt(w)
	}
	w.title = common.Coalesce(w.title, "SDF")
	if w.width <= 0 || w.height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", w.width, w.height)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) PollEvents() []event.Event {
	platformProcessMessages(w)
	return w.queue.Drain()
}

func (w *engineWindow) Size() (frame.WindowSize, bool) {
	width, height, ok := platformFramebufferSize(w)
	if !ok || width <= 0 || height <= 0 {
		return frame.WindowSize{}, false
	}
	return frame.WindowSize{Width: float32(width), Height: float32(height)}, true
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}
