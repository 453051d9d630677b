// Package events carries change notifications between services and cached
// views. Events are refresh hints only: no ordering or delivery guarantee,
// and nothing in the engine depends on them for correctness.
package events

import "sync"

type EntityType string

const (
	EntityCategory EntityType = "work_category"
	EntityWorkType EntityType = "work_type"
	EntityTemplate EntityType = "checklist_template"
	EntitySession  EntityType = "work_session"
	EntitySalary   EntityType = "salary"
)

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Change identifies one mutated entity.
type Change struct {
	Entity EntityType
	Event  EventType
	ID     string
}

// Bus is an in-process publish/subscribe fan-out. Slow subscribers drop
// events rather than block publishers.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan Change
	next int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Change)}
}

// Publish delivers the change to every subscriber without blocking.
func (b *Bus) Publish(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// Subscribe registers a buffered listener. The returned cancel func must be
// called to release it; the channel is closed on cancel.
func (b *Bus) Subscribe() (<-chan Change, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan Change, 64)
	b.subs[id] = ch
	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}
