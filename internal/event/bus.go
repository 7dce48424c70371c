package event

import "time"

type subscription[T any] struct {
	handler Handler[T]
}

// Bus is a per-instance registry of named event subscribers.
// It is not safe for concurrent use; the owner serializes access.
type Bus[T any] struct {
	subscribers map[Type][]*subscription[T]
}

// NewBus creates an empty bus
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{
		subscribers: make(map[Type][]*subscription[T]),
	}
}

// On registers handler for the named event and returns a function
// that removes the registration again. Calling it twice is harmless.
func (b *Bus[T]) On(t Type, handler Handler[T]) func() {
	sub := &subscription[T]{handler: handler}
	b.subscribers[t] = append(b.subscribers[t], sub)

	return func() {
		b.remove(t, sub)
	}
}

func (b *Bus[T]) handlerCount(t Type) int {
	return len(b.subscribers[t])
}

func (b *Bus[T]) remove(t Type, sub *subscription[T]) {
	subs := b.subscribers[t]
	for i, s := range subs {
		if s == sub {
			// copy so that a dispatch in progress keeps its snapshot intact
			next := make([]*subscription[T], 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			if len(next) == 0 {
				delete(b.subscribers, t)
			} else {
				b.subscribers[t] = next
			}
			return
		}
	}
}

// Notify delivers a non-cancelable event to all handlers of t
func (b *Bus[T]) Notify(t Type, payload T) {
	b.dispatch(&Event[T]{
		Type:      t,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

// Fire runs the two-phase protocol: a cancelable event of type t is
// delivered first, and if no handler prevented it, apply is executed.
// Fire reports whether apply ran.
func (b *Bus[T]) Fire(t Type, payload T, apply func(e *Event[T])) bool {
	e := &Event[T]{
		Type:       t,
		Timestamp:  time.Now(),
		Payload:    payload,
		cancelable: true,
	}
	b.dispatch(e)

	if e.prevented {
		return false
	}
	if apply != nil {
		apply(e)
	}
	return true
}

func (b *Bus[T]) dispatch(e *Event[T]) {
	for _, sub := range b.subscribers[e.Type] {
		sub.handler(e)
	}
}
