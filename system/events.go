package system

import "fmt"

// EventKind identifies what happened during a frame.
type EventKind string

const (
	EventJumped       EventKind = "jumped"
	EventLanded       EventKind = "landed"
	EventSessionEnded EventKind = "session_ended"
)

// Event is emitted by systems while a frame runs. Platform is only meaningful
// for EventLanded.
type Event struct {
	Kind     EventKind
	Frame    int
	Platform int
}

func (e Event) String() string {
	if e.Kind == EventLanded {
		return fmt.Sprintf("%s(platform=%d)@%d", e.Kind, e.Platform, e.Frame)
	}
	return fmt.Sprintf("%s@%d", e.Kind, e.Frame)
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
