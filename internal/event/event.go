package event

import "time"

// Type names a lifecycle event, e.g. "insertColumn" or "afterInsertColumn"
type Type string

// Event is delivered to every handler subscribed to its Type.
// Payload carries the operation specific data.
type Event[T any] struct {
	Type      Type      // Type of event
	Timestamp time.Time // When the event was fired
	Payload   T         // Operation specific data

	cancelable bool
	prevented  bool
}

// PreventDefault cancels the pending mutation.
// It has no effect on events that are not cancelable ("after" events).
func (e *Event[T]) PreventDefault() {
	if e.cancelable {
		e.prevented = true
	}
}

// DefaultPrevented reports whether a handler cancelled the event
func (e *Event[T]) DefaultPrevented() bool {
	return e.prevented
}

// Cancelable reports whether PreventDefault has any effect
func (e *Event[T]) Cancelable() bool {
	return e.cancelable
}

// Handler receives events of the type it was registered for
type Handler[T any] func(e *Event[T])
