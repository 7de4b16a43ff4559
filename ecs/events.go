package ecs

// EventType names a world event.
type EventType string

const (
	EventSpawned     EventType = "spawned"
	EventSpawnFailed EventType = "spawn_failed"
	EventKilled      EventType = "killed"
	EventCorrupted   EventType = "corrupted"
	EventPlayerHurt  EventType = "player_hurt"
)

// Event is a payload produced by one system for later systems in the same tick.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a FIFO queue cleared at the end of every scheduler tick.
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

// Peek returns the pending events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
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
