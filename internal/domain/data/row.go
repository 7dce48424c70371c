package data

import (
	"sort"
	"time"

	"github.com/leengari/rowkit/internal/event"
)

// IDColumn is the identity field. It is captured at construction and
// never stored as a mutable column.
const IDColumn = "id"

// Column is a single key/value pair, used where column order matters
type Column struct {
	Key   string
	Value any
}

// ColumnChange is the payload of every row lifecycle event.
// Both fields are empty for clearRow/afterClearRow.
type ColumnChange struct {
	ColumnKey   string
	ColumnValue any
}

// Row lifecycle events. Handlers of the "before" events may cancel the
// mutation with PreventDefault; "after" events observe the new state.
const (
	EventClearRow          event.Type = "clearRow"
	EventAfterClearRow     event.Type = "afterClearRow"
	EventInsertColumn      event.Type = "insertColumn"
	EventAfterInsertColumn event.Type = "afterInsertColumn"
	EventUpdateColumn      event.Type = "updateColumn"
	EventAfterUpdateColumn event.Type = "afterUpdateColumn"
	EventDeleteColumn      event.Type = "deleteColumn"
	EventAfterDeleteColumn event.Type = "afterDeleteColumn"
)

// Row is an ordered, mutable record of typed columns plus an identity.
// A Row is owned by a single goroutine; callers serialize access externally.
type Row struct {
	id     string
	autoID bool

	columnKeys []string       // display/iteration order, never contains "id"
	columns    map[string]any // same key set as columnKeys

	converter Converter
	events    *event.Bus[ColumnChange]
}

// NewRow creates a row from an ordered column set. The input is copied.
// A string "id" column becomes the row identity; otherwise an id is
// generated and AutoID reports true. Any "id" column is removed from the
// stored columns.
func NewRow(columns []Column, opts ...Option) *Row {
	o := newOptions(opts)

	r := &Row{
		columnKeys: make([]string, 0, len(columns)),
		columns:    make(map[string]any, len(columns)),
		converter:  o.converter,
		events:     event.NewBus[ColumnChange](),
	}

	for _, c := range columns {
		if _, exists := r.columns[c.Key]; !exists {
			r.columnKeys = append(r.columnKeys, c.Key)
		}
		r.columns[c.Key] = c.Value
	}

	if id, ok := r.columns[IDColumn].(string); ok {
		r.id = id
	} else {
		r.autoID = true
		r.id = o.idGenerator()
	}

	if _, exists := r.columns[IDColumn]; exists {
		delete(r.columns, IDColumn)
		r.columnKeys = removeKey(r.columnKeys, IDColumn)
	}

	return r
}

// NewRowFromMap creates a row from a map. Go maps are unordered, so the
// columns are ordered by key.
func NewRowFromMap(m map[string]any, opts ...Option) *Row {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	columns := make([]Column, len(keys))
	for i, k := range keys {
		columns[i] = Column{Key: k, Value: m[k]}
	}
	return NewRow(columns, opts...)
}

// ID returns the row identity
func (r *Row) ID() string {
	return r.id
}

// AutoID reports whether the identity was generated rather than supplied
func (r *Row) AutoID() bool {
	return r.autoID
}

// On registers handler for the named lifecycle event of this row.
// The returned function removes the registration.
func (r *Row) On(t event.Type, handler event.Handler[ColumnChange]) func() {
	return r.events.On(t, handler)
}

// Clear removes every column. The identity is kept.
func (r *Row) Clear() bool {
	return r.mutate(EventClearRow, EventAfterClearRow, ColumnChange{}, func() {
		r.columnKeys = make([]string, 0)
		r.columns = make(map[string]any)
	})
}

// InsertColumn adds a new column at the end. It is rejected for "id" and
// for keys that already exist; use UpdateColumn to change a value.
func (r *Row) InsertColumn(key string, value any) bool {
	if key == IDColumn || r.hasKey(key) {
		return false
	}

	change := ColumnChange{ColumnKey: key, ColumnValue: value}
	return r.mutate(EventInsertColumn, EventAfterInsertColumn, change, func() {
		r.columnKeys = append(r.columnKeys, key)
		r.columns[key] = value
	})
}

// UpdateColumn sets the value of a column. An unknown key is appended to
// the column order so keys and values stay in sync.
func (r *Row) UpdateColumn(key string, value any) bool {
	if key == IDColumn {
		return false
	}

	change := ColumnChange{ColumnKey: key, ColumnValue: value}
	return r.mutate(EventUpdateColumn, EventAfterUpdateColumn, change, func() {
		if !r.hasKey(key) {
			r.columnKeys = append(r.columnKeys, key)
		}
		r.columns[key] = value
	})
}

// DeleteColumn removes a column. Deleting an absent key succeeds without
// changing anything.
func (r *Row) DeleteColumn(key string) bool {
	if key == IDColumn {
		return false
	}

	change := ColumnChange{ColumnKey: key, ColumnValue: r.columns[key]}
	return r.mutate(EventDeleteColumn, EventAfterDeleteColumn, change, func() {
		r.columnKeys = removeKey(r.columnKeys, key)
		delete(r.columns, key)
	})
}

// mutate runs apply between the cancelable before event and the after event
func (r *Row) mutate(before, after event.Type, change ColumnChange, apply func()) bool {
	return r.events.Fire(before, change, func(*event.Event[ColumnChange]) {
		apply()
		r.events.Notify(after, change)
	})
}

// Column returns the value stored under key
func (r *Row) Column(key string) (any, bool) {
	v, ok := r.columns[key]
	return v, ok
}

// ColumnAt returns the value of the column at position index
func (r *Row) ColumnAt(index int) (any, bool) {
	if index < 0 || index >= len(r.columnKeys) {
		return nil, false
	}
	return r.Column(r.columnKeys[index])
}

func (r *Row) ColumnAsBoolean(key string) bool {
	v, _ := r.Column(key)
	return r.converter.AsBoolean(v)
}

func (r *Row) ColumnAsBooleanAt(index int) bool {
	v, _ := r.ColumnAt(index)
	return r.converter.AsBoolean(v)
}

func (r *Row) ColumnAsNumber(key string) float64 {
	v, _ := r.Column(key)
	return r.converter.AsNumber(v)
}

func (r *Row) ColumnAsNumberAt(index int) float64 {
	v, _ := r.ColumnAt(index)
	return r.converter.AsNumber(v)
}

func (r *Row) ColumnAsString(key string) string {
	v, _ := r.Column(key)
	return r.converter.AsString(v)
}

func (r *Row) ColumnAsStringAt(index int) string {
	v, _ := r.ColumnAt(index)
	return r.converter.AsString(v)
}

func (r *Row) ColumnAsDate(key string) time.Time {
	v, _ := r.Column(key)
	return r.converter.AsDate(v)
}

func (r *Row) ColumnAsDateAt(index int) time.Time {
	v, _ := r.ColumnAt(index)
	return r.converter.AsDate(v)
}

func (r *Row) ColumnAsDataTable(key string) *Table {
	v, _ := r.Column(key)
	return r.converter.AsDataTable(v)
}

func (r *Row) ColumnAsDataTableAt(index int) *Table {
	v, _ := r.ColumnAt(index)
	return r.converter.AsDataTable(v)
}

// ColumnCount returns the number of columns
func (r *Row) ColumnCount() int {
	return len(r.columnKeys)
}

// ColumnKeys returns a copy of the column keys in order
func (r *Row) ColumnKeys() []string {
	keys := make([]string, len(r.columnKeys))
	copy(keys, r.columnKeys)
	return keys
}

// AllColumns returns a copy of the column mapping
func (r *Row) AllColumns() map[string]any {
	all := make(map[string]any, len(r.columns))
	for k, v := range r.columns {
		all[k] = v
	}
	return all
}

// Columns returns a copy of the columns in order
func (r *Row) Columns() []Column {
	columns := make([]Column, len(r.columnKeys))
	for i, k := range r.columnKeys {
		columns[i] = Column{Key: k, Value: r.columns[k]}
	}
	return columns
}

func (r *Row) hasKey(key string) bool {
	for _, k := range r.columnKeys {
		if k == key {
			return true
		}
	}
	return false
}

func removeKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			out := make([]string, 0, len(keys)-1)
			out = append(out, keys[:i]...)
			return append(out, keys[i+1:]...)
		}
	}
	return keys
}
