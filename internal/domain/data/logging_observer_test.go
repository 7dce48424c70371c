package data

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}

func TestWatchRowLogsMutations(t *testing.T) {
	logger, buf := newBufferLogger()
	row := NewRow([]Column{{"id", "r1"}})

	stop := WatchRow(row, logger)
	row.InsertColumn("a", 1)
	row.DeleteColumn("a")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, len(lines), 2)
	assert.Assert(t, strings.Contains(lines[0], `"event":"afterInsertColumn"`))
	assert.Assert(t, strings.Contains(lines[0], `"row_id":"r1"`))
	assert.Assert(t, strings.Contains(lines[1], `"event":"afterDeleteColumn"`))

	stop()
	buf.Reset()
	row.InsertColumn("b", 2)
	assert.Equal(t, buf.Len(), 0)
}

func TestWatchRowSkipsCancelledMutations(t *testing.T) {
	logger, buf := newBufferLogger()
	row := NewRow(nil)
	WatchRow(row, logger)

	row.InsertColumn("id", 1)
	assert.Equal(t, buf.Len(), 0)
}

func TestWatchTableLogsRowUpdates(t *testing.T) {
	logger, buf := newBufferLogger()
	table := NewTable(nil, WithID("people"))
	stop := WatchTable(table, logger)
	defer stop()

	row := NewRow([]Column{{"id", "r1"}})
	table.InsertRow(row)
	row.UpdateColumn("name", "ada")

	out := buf.String()
	assert.Assert(t, strings.Contains(out, `"event":"afterInsertRow"`))
	assert.Assert(t, strings.Contains(out, `"event":"afterUpdateRow"`))
	assert.Assert(t, strings.Contains(out, `"row_event":"afterUpdateColumn"`))
	assert.Assert(t, strings.Contains(out, `"table_id":"people"`))
}
