package data

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/rowkit/internal/event"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	return NewTable([]*Row{
		NewRow([]Column{{"id", "a"}, {"n", 1}}),
		NewRow([]Column{{"id", "b"}, {"n", 2}}),
	})
}

func TestNewTableSkipsNilAndDuplicates(t *testing.T) {
	table := NewTable([]*Row{
		NewRow([]Column{{"id", "a"}}),
		nil,
		NewRow([]Column{{"id", "a"}}),
	})

	assert.Equal(t, table.RowCount(), 1)
	assert.Assert(t, table.AutoID())
	assert.Assert(t, table.ID() != "")
}

func TestTableInsertAndLookup(t *testing.T) {
	table := newTestTable(t)
	row := NewRow([]Column{{"id", "c"}})

	assert.Assert(t, table.InsertRow(row))
	assert.Assert(t, !table.InsertRow(row))
	assert.Assert(t, !table.InsertRow(nil))

	got, ok := table.Row("c")
	assert.Assert(t, ok)
	assert.Equal(t, got, row)

	got, ok = table.RowAt(2)
	assert.Assert(t, ok)
	assert.Equal(t, got, row)

	_, ok = table.RowAt(3)
	assert.Assert(t, !ok)
	assert.DeepEqual(t, table.RowIDs(), []string{"a", "b", "c"})
}

func TestTableDeleteRow(t *testing.T) {
	table := newTestTable(t)

	row, ok := table.DeleteRow("a")
	assert.Assert(t, ok)
	assert.Equal(t, row.ID(), "a")
	assert.DeepEqual(t, table.RowIDs(), []string{"b"})

	_, ok = table.DeleteRow("a")
	assert.Assert(t, !ok)
}

func TestTableRowsIsACopy(t *testing.T) {
	table := newTestTable(t)
	rows := table.Rows()
	rows[0] = nil

	first, _ := table.RowAt(0)
	assert.Assert(t, first != nil)
}

func TestTableCancelInsert(t *testing.T) {
	table := newTestTable(t)
	table.On(EventInsertRow, func(e *event.Event[RowChange]) {
		if e.Payload.Row.ID() == "blocked" {
			e.PreventDefault()
		}
	})

	assert.Assert(t, !table.InsertRow(NewRow([]Column{{"id", "blocked"}})))
	assert.Assert(t, table.InsertRow(NewRow([]Column{{"id", "ok"}})))
	assert.DeepEqual(t, table.RowIDs(), []string{"a", "b", "ok"})
}

func TestTableCancelDeleteAndClear(t *testing.T) {
	table := newTestTable(t)
	prevent := func(e *event.Event[RowChange]) { e.PreventDefault() }
	table.On(EventDeleteRow, prevent)
	table.On(EventClearTable, prevent)

	_, ok := table.DeleteRow("a")
	assert.Assert(t, !ok)
	assert.Assert(t, !table.Clear())
	assert.Equal(t, table.RowCount(), 2)
}

func TestTablePropagatesRowChanges(t *testing.T) {
	table := newTestTable(t)
	var changes []RowChange
	table.On(EventAfterUpdateRow, func(e *event.Event[RowChange]) {
		changes = append(changes, e.Payload)
	})

	row, _ := table.Row("a")
	row.UpdateColumn("n", 10)
	row.InsertColumn("m", 5)

	assert.Equal(t, len(changes), 2)
	assert.Equal(t, changes[0].Row, row)
	assert.Equal(t, changes[0].RowEvent, EventAfterUpdateColumn)
	assert.Equal(t, changes[0].ColumnKey, "n")
	assert.Equal(t, changes[0].ColumnValue, 10)
	assert.Equal(t, changes[1].RowEvent, EventAfterInsertColumn)
}

func TestTableStopsWatchingRemovedRows(t *testing.T) {
	table := newTestTable(t)
	updates := 0
	table.On(EventAfterUpdateRow, func(*event.Event[RowChange]) { updates++ })

	removed, _ := table.DeleteRow("a")
	removed.UpdateColumn("n", 3)
	assert.Equal(t, updates, 0)

	kept, _ := table.Row("b")
	assert.Assert(t, table.Clear())
	kept.UpdateColumn("n", 3)
	assert.Equal(t, updates, 0)
	assert.Equal(t, table.RowCount(), 0)
}

func TestTableEvents(t *testing.T) {
	table := NewTable(nil)
	var seen []event.Type
	for _, et := range []event.Type{EventInsertRow, EventAfterInsertRow, EventDeleteRow, EventAfterDeleteRow, EventClearTable, EventAfterClearTable} {
		table.On(et, func(e *event.Event[RowChange]) {
			seen = append(seen, e.Type)
		})
	}

	table.InsertRow(NewRow([]Column{{"id", "x"}}))
	table.DeleteRow("x")
	table.Clear()

	assert.DeepEqual(t, seen, []event.Type{
		EventInsertRow, EventAfterInsertRow,
		EventDeleteRow, EventAfterDeleteRow,
		EventClearTable, EventAfterClearTable,
	})
}
