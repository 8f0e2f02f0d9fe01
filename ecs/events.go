package ecs

import "github.com/milk9111/jumper/traversal"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventTraversalTransition = "traversal_transition"

// TraversalTransition is the Data of an EventTraversalTransition event.
type TraversalTransition struct {
	Entity Entity
	From   traversal.AvatarState
	To     traversal.AvatarState
}

// EventQueue is a simple FIFO queue. Undrained events are dropped at the
// end of every World.Update.
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

// Peek returns pending events without consuming them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
