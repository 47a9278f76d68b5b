package event

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sdf/common"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		kind Kind
		str  string
	}{
		{"key", KeyPress(common.KeyEsc), KindKeyPress, "KeyPress{Escape}"},
		{"close", CloseRequested(), KindCloseRequested, "CloseRequested"},
		{"resize", Resized(640, 480), KindResized, "Resized{640x480}"},
		{"other", Other(), KindOther, "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ev.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.ev.Kind, tt.kind)
			}
			if got := tt.ev.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestResizedCarriesSize(t *testing.T) {
	ev := Resized(800, 600)
	if ev.Width != 800 || ev.Height != 600 {
		t.Errorf("Resized(800, 600) = %dx%d", ev.Width, ev.Height)
	}
}

func TestZeroEventIsOther(t *testing.T) {
	var ev Event
	if ev.Kind != KindOther {
		t.Errorf("zero Event kind = %v, want Other", ev.Kind)
	}
}

func TestQueueDrainOrder(t *testing.T) {
	var q Queue
	if got := q.Drain(); got != nil {
		t.Fatalf("Drain() on empty queue = %v, want nil", got)
	}
	q.Push(Resized(640, 480))
	q.Push(KeyPress(common.KeyQ))
	q.Push(CloseRequested())
	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}

	got := q.Drain()
	want := []Event{Resized(640, 480), KeyPress(common.KeyQ), CloseRequested()}
	if len(got) != len(want) {
		t.Fatalf("Drain() returned %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if q.Len() != 0 {
		t.Errorf("Len() after Drain() = %d, want 0", q.Len())
	}
}
