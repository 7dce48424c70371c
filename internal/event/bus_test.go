package event

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestFireRunsApplyWhenNotPrevented(t *testing.T) {
	bus := NewBus[string]()
	var seen []string

	bus.On("save", func(e *Event[string]) {
		seen = append(seen, "before:"+e.Payload)
	})

	ran := bus.Fire("save", "a", func(e *Event[string]) {
		seen = append(seen, "apply:"+e.Payload)
	})

	assert.Assert(t, ran)
	assert.DeepEqual(t, seen, []string{"before:a", "apply:a"})
}

func TestFirePrevented(t *testing.T) {
	bus := NewBus[int]()
	bus.On("save", func(e *Event[int]) {
		assert.Assert(t, e.Cancelable())
		e.PreventDefault()
	})

	applied := false
	ran := bus.Fire("save", 1, func(*Event[int]) { applied = true })

	assert.Assert(t, !ran)
	assert.Assert(t, !applied)
}

func TestNotifyIsNotCancelable(t *testing.T) {
	bus := NewBus[int]()
	var got *Event[int]
	bus.On("afterSave", func(e *Event[int]) {
		e.PreventDefault()
		got = e
	})

	bus.Notify("afterSave", 7)

	assert.Assert(t, got != nil)
	assert.Equal(t, got.Payload, 7)
	assert.Assert(t, !got.Cancelable())
	assert.Assert(t, !got.DefaultPrevented())
	assert.Assert(t, !got.Timestamp.IsZero())
}

func TestDetach(t *testing.T) {
	bus := NewBus[int]()
	calls := 0
	detach := bus.On("x", func(*Event[int]) { calls++ })

	bus.Notify("x", 0)
	detach()
	detach()
	bus.Notify("x", 0)

	assert.Equal(t, calls, 1)
	assert.Equal(t, bus.handlerCount("x"), 0)
}

func TestDetachDuringDispatch(t *testing.T) {
	bus := NewBus[int]()
	calls := 0
	var detachFirst func()
	detachFirst = bus.On("x", func(*Event[int]) {
		calls++
		detachFirst()
	})
	bus.On("x", func(*Event[int]) { calls++ })

	bus.Notify("x", 0)
	assert.Equal(t, calls, 2)

	bus.Notify("x", 0)
	assert.Equal(t, calls, 3)
}

func TestHandlersAreScopedByType(t *testing.T) {
	bus := NewBus[int]()
	calls := 0
	bus.On("a", func(*Event[int]) { calls++ })

	bus.Notify("b", 0)
	assert.Equal(t, calls, 0)
}
