package event

import "sync"

// Queue is a FIFO of events pushed by window callbacks and drained once per frame.
// It is safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// Push appends an event to the back of the queue.
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain removes and returns every queued event in arrival order.
//
// Returns:
//   - []Event: the pending events, or nil if the queue is empty
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
