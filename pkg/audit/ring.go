package audit

import "sync"

// DefaultRingCapacity is the default event buffer size.
const DefaultRingCapacity = 400

// Ring is a bounded in-memory event buffer. When full, the oldest entry is
// dropped. It backs the console's "admin events list" and "admin events
// clear" commands.
type Ring struct {
	mu     sync.Mutex
	events []Event
	cap    int
}

// NewRing creates a ring holding at most capacity events. A non-positive
// capacity selects DefaultRingCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultRingCapacity
	}
	return &Ring{cap: capacity}
}

// Log stores the event, evicting the oldest entry when full.
func (r *Ring) Log(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) == r.cap {
		copy(r.events, r.events[1:])
		r.events = r.events[:len(r.events)-1]
	}
	r.events = append(r.events, event)
}

// Events returns a snapshot of the buffer, oldest first.
func (r *Ring) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Clear discards all buffered events.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = r.events[:0]
}

// Len returns the number of buffered events.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

var _ Logger = (*Ring)(nil)
