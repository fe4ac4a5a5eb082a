package ecs

import "github.com/jakecoffman/cp"

// EventKind identifies grab and landing events.
type EventKind string

const (
	EventGrabbed  EventKind = "grabbed"
	EventReleased EventKind = "released"
	EventGrounded EventKind = "grounded"
)

// Event is emitted by systems for collaborators that react to the grab loop
// (audio, HUD) without holding references to it.
type Event struct {
	Kind   EventKind
	Entity Entity
	Force  cp.Vector
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

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
