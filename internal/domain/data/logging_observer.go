package data

import (
	"log/slog"

	"github.com/leengari/rowkit/internal/event"
)

var tableEvents = []event.Type{
	EventAfterClearTable,
	EventAfterInsertRow,
	EventAfterDeleteRow,
	EventAfterUpdateRow,
}

// WatchRow logs every completed mutation of row with structured fields.
// The returned function stops watching.
func WatchRow(row *Row, logger *slog.Logger) func() {
	if logger == nil {
		logger = slog.Default()
	}

	detachers := make([]func(), 0, len(rowChangeEvents))
	for _, t := range rowChangeEvents {
		detachers = append(detachers, row.On(t, func(e *event.Event[ColumnChange]) {
			logger.Debug("row_lifecycle",
				"event", e.Type,
				"row_id", row.ID(),
				"column", e.Payload.ColumnKey,
				"value", e.Payload.ColumnValue,
				"column_count", row.ColumnCount(),
			)
		}))
	}
	return detachAll(detachers)
}

// WatchTable logs row insertions, deletions and row updates of table
func WatchTable(table *Table, logger *slog.Logger) func() {
	if logger == nil {
		logger = slog.Default()
	}

	detachers := make([]func(), 0, len(tableEvents))
	for _, t := range tableEvents {
		detachers = append(detachers, table.On(t, func(e *event.Event[RowChange]) {
			attrs := []any{
				"event", e.Type,
				"table_id", table.ID(),
				"row_count", table.RowCount(),
			}
			if e.Payload.Row != nil {
				attrs = append(attrs, "row_id", e.Payload.Row.ID())
			}
			if e.Payload.RowEvent != "" {
				attrs = append(attrs,
					"row_event", e.Payload.RowEvent,
					"column", e.Payload.ColumnKey,
				)
			}
			logger.Debug("table_lifecycle", attrs...)
		}))
	}
	return detachAll(detachers)
}

func detachAll(detachers []func()) func() {
	return func() {
		for _, detach := range detachers {
			detach()
		}
	}
}
