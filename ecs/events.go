package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventMatchTransition = "match_transition"
	EventWickIgnited     = "wick_ignited"
	EventWickReset       = "wick_reset"
)

// MatchTransition is the payload of EventMatchTransition.
type MatchTransition struct {
	Entity Entity
	Name   string
	From   string
	To     string
	Tick   uint64
}

// WickChange is the payload of EventWickIgnited and EventWickReset.
type WickChange struct {
	Entity Entity
	Name   string
	Heat   float64
	Tick   uint64
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

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
