package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leengari/rowkit/internal/datajson"
)

// ReadDocument parses a $class-tagged JSON document from r
func ReadDocument(r io.Reader) (*datajson.Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	obj, err := datajson.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return obj, nil
}

// LoadDocument reads the document at path
func LoadDocument(path string) (*datajson.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	obj, err := ReadDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

// Load reads the document at path and reconstructs it through the registry
func Load(path string, reg *datajson.Registry) (any, error) {
	obj, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	v, err := reg.Reconstruct(obj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("document loaded",
		slog.String("path", path),
		slog.String("class", obj.Class()),
	)
	return v, nil
}

// Encode renders v as indented JSON, keeping the key order of its record
func Encode(v datajson.Marshaler) ([]byte, error) {
	raw, err := v.ToJSON().MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent document: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// WriteDocument writes v to w
func WriteDocument(w io.Writer, v datajson.Marshaler) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Save persists v at path using temp + atomic rename
func Save(path string, v datajson.Marshaler) error {
	if path == "" {
		return fmt.Errorf("cannot save document: missing path")
	}

	data, err := Encode(v)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp → %s: %w", path, err)
	}

	slog.Debug("document saved",
		slog.String("path", path),
		slog.Int("bytes", len(data)),
	)
	return nil
}
