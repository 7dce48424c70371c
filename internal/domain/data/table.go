package data

import (
	"github.com/leengari/rowkit/internal/event"
)

// RowChange is the payload of table lifecycle events.
// For afterUpdateRow, RowEvent names the row event that caused it.
type RowChange struct {
	Row         *Row
	RowEvent    event.Type
	ColumnKey   string
	ColumnValue any
}

// Table lifecycle events
const (
	EventClearTable      event.Type = "clearTable"
	EventAfterClearTable event.Type = "afterClearTable"
	EventInsertRow       event.Type = "insertRow"
	EventAfterInsertRow  event.Type = "afterInsertRow"
	EventDeleteRow       event.Type = "deleteRow"
	EventAfterDeleteRow  event.Type = "afterDeleteRow"
	EventAfterUpdateRow  event.Type = "afterUpdateRow"
)

var rowChangeEvents = []event.Type{
	EventAfterClearRow,
	EventAfterInsertColumn,
	EventAfterUpdateColumn,
	EventAfterDeleteColumn,
}

// Table is an ordered collection of rows indexed by row id. It can be
// embedded in a row as a column value.
type Table struct {
	id     string
	autoID bool

	rows     []*Row
	rowsByID map[string]*Row
	watchers map[string]func() // detaches the table from a member row

	events *event.Bus[RowChange]
}

// NewTable creates a table holding rows. Nil rows and rows whose id is
// already taken are skipped.
func NewTable(rows []*Row, opts ...Option) *Table {
	o := newOptions(opts)

	t := &Table{
		id:       o.id,
		rows:     make([]*Row, 0, len(rows)),
		rowsByID: make(map[string]*Row, len(rows)),
		watchers: make(map[string]func(), len(rows)),
		events:   event.NewBus[RowChange](),
	}
	if t.id == "" {
		t.autoID = true
		t.id = o.idGenerator()
	}

	for _, row := range rows {
		t.InsertRow(row)
	}
	return t
}

// ID returns the table identity
func (t *Table) ID() string {
	return t.id
}

// AutoID reports whether the identity was generated
func (t *Table) AutoID() bool {
	return t.autoID
}

// On registers handler for the named lifecycle event of this table
func (t *Table) On(e event.Type, handler event.Handler[RowChange]) func() {
	return t.events.On(e, handler)
}

// InsertRow appends row. It is rejected for nil rows and duplicate ids.
func (t *Table) InsertRow(row *Row) bool {
	if row == nil {
		return false
	}
	if _, exists := t.rowsByID[row.ID()]; exists {
		return false
	}

	change := RowChange{Row: row}
	return t.mutate(EventInsertRow, EventAfterInsertRow, change, func() {
		t.rows = append(t.rows, row)
		t.rowsByID[row.ID()] = row
		t.watch(row)
	})
}

// DeleteRow removes the row with the given id and returns it
func (t *Table) DeleteRow(id string) (*Row, bool) {
	row, exists := t.rowsByID[id]
	if !exists {
		return nil, false
	}

	change := RowChange{Row: row}
	ok := t.mutate(EventDeleteRow, EventAfterDeleteRow, change, func() {
		for i, r := range t.rows {
			if r == row {
				t.rows = append(t.rows[:i:i], t.rows[i+1:]...)
				break
			}
		}
		delete(t.rowsByID, id)
		t.unwatch(id)
	})
	if !ok {
		return nil, false
	}
	return row, true
}

// Clear removes every row
func (t *Table) Clear() bool {
	return t.mutate(EventClearTable, EventAfterClearTable, RowChange{}, func() {
		for id := range t.watchers {
			t.unwatch(id)
		}
		t.rows = make([]*Row, 0)
		t.rowsByID = make(map[string]*Row)
	})
}

// Row returns the row with the given id
func (t *Table) Row(id string) (*Row, bool) {
	row, ok := t.rowsByID[id]
	return row, ok
}

// RowAt returns the row at position index
func (t *Table) RowAt(index int) (*Row, bool) {
	if index < 0 || index >= len(t.rows) {
		return nil, false
	}
	return t.rows[index], true
}

// Rows returns a copy of the row list
func (t *Table) Rows() []*Row {
	rows := make([]*Row, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// RowIDs returns the row ids in order
func (t *Table) RowIDs() []string {
	ids := make([]string, len(t.rows))
	for i, r := range t.rows {
		ids[i] = r.ID()
	}
	return ids
}

func (t *Table) RowCount() int {
	return len(t.rows)
}

func (t *Table) mutate(before, after event.Type, change RowChange, apply func()) bool {
	return t.events.Fire(before, change, func(*event.Event[RowChange]) {
		apply()
		t.events.Notify(after, change)
	})
}

// watch re-emits the row's after events as afterUpdateRow
func (t *Table) watch(row *Row) {
	detachers := make([]func(), 0, len(rowChangeEvents))
	for _, rowEvent := range rowChangeEvents {
		detachers = append(detachers, row.On(rowEvent, func(e *event.Event[ColumnChange]) {
			t.events.Notify(EventAfterUpdateRow, RowChange{
				Row:         row,
				RowEvent:    rowEvent,
				ColumnKey:   e.Payload.ColumnKey,
				ColumnValue: e.Payload.ColumnValue,
			})
		}))
	}

	t.watchers[row.ID()] = detachAll(detachers)
}

func (t *Table) unwatch(id string) {
	if detach, ok := t.watchers[id]; ok {
		detach()
		delete(t.watchers, id)
	}
}
