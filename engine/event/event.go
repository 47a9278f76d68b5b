// Package event defines the window and input events delivered to the frame loop.
package event

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-sdf/common"
)

// Kind tags the variant held by an Event.
type Kind int

const (
	// KindOther is any event the frame loop does not react to.
	KindOther Kind = iota
	// KindKeyPress is a key transitioning to the pressed state.
	KindKeyPress
	// KindCloseRequested is the user asking the window to close.
	KindCloseRequested
	// KindResized is the drawable surface changing size.
	KindResized
)

func (k Kind) String() string {
	switch k {
	case KindKeyPress:
		return "KeyPress"
	case KindCloseRequested:
		return "CloseRequested"
	case KindResized:
		return "Resized"
	default:
		return "Other"
	}
}

// Event is a tagged variant over {KeyPress{key}, CloseRequested, Resized{width, height}, Other}.
// Only the fields belonging to Kind are meaningful.
type Event struct {
	Kind Kind

	// Key is set for KindKeyPress.
	Key common.Key

	// Width and Height are the new framebuffer size in pixels for KindResized.
	Width, Height int
}

// KeyPress creates a key press event.
func KeyPress(key common.Key) Event {
	return Event{Kind: KindKeyPress, Key: key}
}

// CloseRequested creates a window close request event.
func CloseRequested() Event {
	return Event{Kind: KindCloseRequested}
}

// Resized creates a resize event carrying the new framebuffer size.
func Resized(width, height int) Event {
	return Event{Kind: KindResized, Width: width, Height: height}
}

// Other creates an event the frame loop ignores.
func Other() Event {
	return Event{Kind: KindOther}
}

func (e Event) String() string {
	switch e.Kind {
	case KindKeyPress:
		return fmt.Sprintf("KeyPress{%s}", e.Key)
	case KindResized:
		return fmt.Sprintf("Resized{%dx%d}", e.Width, e.Height)
	default:
		return e.Kind.String()
	}
}
