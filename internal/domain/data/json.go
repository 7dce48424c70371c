package data

import (
	"fmt"
	"time"

	"github.com/leengari/rowkit/internal/datajson"
)

// $class discriminators
const (
	RowClass   = "Row"
	TableClass = "Table"
)

const rowsKey = "rows"

func init() {
	datajson.Register(RowClass, func(obj *datajson.Object) (any, error) {
		row, err := RowFromJSON(obj)
		if err != nil {
			return nil, err
		}
		return row, nil
	})
	datajson.Register(TableClass, func(obj *datajson.Object) (any, error) {
		table, err := TableFromJSON(obj)
		if err != nil {
			return nil, err
		}
		return table, nil
	})
}

// ToJSON serializes the row. Generated ids are not written, so a reloaded
// row without an explicit id gets a new one.
func (r *Row) ToJSON() *datajson.Object {
	obj := datajson.NewTagged(RowClass)
	if !r.autoID {
		obj.Set(IDColumn, r.id)
	}
	for _, key := range r.columnKeys {
		obj.Set(key, encodeValue(r.columns[key]))
	}
	return obj
}

// MarshalJSON implements json.Marshaler
func (r *Row) MarshalJSON() ([]byte, error) {
	return r.ToJSON().MarshalJSON()
}

// RowFromJSON reconstructs a row from its tagged record. Objects are
// rebuilt through the registry and arrays become nested tables.
func RowFromJSON(obj *datajson.Object, opts ...Option) (*Row, error) {
	keys := obj.Keys()
	columns := make([]Column, 0, len(keys))

	for _, key := range keys {
		if key == datajson.ClassKey {
			continue
		}
		raw, _ := obj.Get(key)
		value, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", key, err)
		}
		columns = append(columns, Column{Key: key, Value: value})
	}

	return NewRow(columns, opts...), nil
}

// ToJSON serializes the table and all of its rows
func (t *Table) ToJSON() *datajson.Object {
	obj := datajson.NewTagged(TableClass)
	if !t.autoID {
		obj.Set(IDColumn, t.id)
	}
	rows := make([]any, len(t.rows))
	for i, row := range t.rows {
		rows[i] = row.ToJSON()
	}
	obj.Set(rowsKey, rows)
	return obj
}

// MarshalJSON implements json.Marshaler
func (t *Table) MarshalJSON() ([]byte, error) {
	return t.ToJSON().MarshalJSON()
}

// TableFromJSON reconstructs a table. Every element of "rows" is read as a
// row record, with or without its $class tag. opts apply to the table and
// to each of its rows.
func TableFromJSON(obj *datajson.Object, opts ...Option) (*Table, error) {
	rowOpts := opts
	if id, ok := obj.Get(IDColumn); ok {
		if s, ok := id.(string); ok {
			opts = append(opts, WithID(s))
		}
	}

	var rows []*Row
	if raw, ok := obj.Get(rowsKey); ok && raw != nil {
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%s must be an array, got %T", rowsKey, raw)
		}
		rows = make([]*Row, 0, len(items))
		for i, item := range items {
			rowObj, ok := item.(*datajson.Object)
			if !ok {
				return nil, fmt.Errorf("row %d must be an object, got %T", i, item)
			}
			row, err := RowFromJSON(rowObj, rowOpts...)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			rows = append(rows, row)
		}
	}

	return NewTable(rows, opts...), nil
}

func encodeValue(v any) any {
	switch val := v.(type) {
	case nil, bool, string:
		return val
	case time.Time:
		return val.UnixMilli()
	case *Table:
		if val == nil {
			return nil
		}
		return val.ToJSON()
	case datajson.Marshaler:
		return val.ToJSON()
	default:
		return val
	}
}

func decodeValue(v any) (any, error) {
	switch val := v.(type) {
	case *datajson.Object:
		return datajson.Reconstruct(val)
	case []any:
		return datajson.Reconstruct(tableEnvelope(val))
	default:
		return val, nil
	}
}

// tableEnvelope wraps a bare row list into a tagged table record
func tableEnvelope(rows []any) *datajson.Object {
	obj := datajson.NewTagged(TableClass)
	obj.Set(rowsKey, rows)
	return obj
}
