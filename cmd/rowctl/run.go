package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leengari/rowkit/internal/datajson"
	"github.com/leengari/rowkit/internal/domain/data"
	"github.com/leengari/rowkit/internal/storage"
)

type setOp struct {
	key   string
	value any
}

type options struct {
	in      string
	out     string
	sets    []setOp
	deletes []string
}

// parseSet splits key=value. The value is read as JSON when possible.
func parseSet(s string) (setOp, error) {
	key, raw, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return setOp{}, fmt.Errorf("expected key=value, got %q", s)
	}

	value, err := datajson.ParseValue([]byte(raw))
	if err != nil || raw == "" {
		value = raw
	}
	if _, nested := value.(*datajson.Object); nested {
		return setOp{}, fmt.Errorf("object values are not supported for %q", key)
	}
	if _, list := value.([]any); list {
		return setOp{}, fmt.Errorf("array values are not supported for %q", key)
	}
	return setOp{key: key, value: value}, nil
}

func run(opts options, stdin io.Reader, stdout io.Writer) error {
	v, err := load(opts.in, stdin)
	if err != nil {
		return err
	}

	var rows []*data.Row
	var doc datajson.Marshaler
	var class string
	switch val := v.(type) {
	case *data.Row:
		stop := data.WatchRow(val, slog.Default())
		defer stop()
		rows = []*data.Row{val}
		doc = val
		class = data.RowClass
	case *data.Table:
		stop := data.WatchTable(val, slog.Default())
		defer stop()
		rows = val.Rows()
		doc = val
		class = data.TableClass
		slog.Info("table loaded",
			"table_id", val.ID(),
			"row_count", val.RowCount(),
		)
	default:
		return fmt.Errorf("unsupported document type %T", v)
	}

	applied := 0
	for _, row := range rows {
		for _, op := range opts.sets {
			if row.UpdateColumn(op.key, op.value) {
				applied++
			}
		}
		for _, key := range opts.deletes {
			if row.DeleteColumn(key) {
				applied++
			}
		}
	}

	slog.Info("document processed",
		"class", class,
		"rows", len(rows),
		"mutations", applied,
	)

	if opts.out == "" || opts.out == "-" {
		return storage.WriteDocument(stdout, doc)
	}
	return storage.Save(opts.out, doc)
}

func load(path string, stdin io.Reader) (any, error) {
	if path == "" || path == "-" {
		obj, err := storage.ReadDocument(stdin)
		if err != nil {
			return nil, err
		}
		return datajson.Reconstruct(obj)
	}
	return storage.Load(path, datajson.Default)
}
