package data

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/leengari/rowkit/internal/datajson"
)

// Converter coerces raw column values into typed values.
// A Row only forwards its raw values; the coercion policy lives here.
type Converter interface {
	AsBoolean(v any) bool
	AsNumber(v any) float64
	AsString(v any) string
	AsDate(v any) time.Time
	AsDataTable(v any) *Table
}

const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// DefaultConverter is the converter rows use unless WithConverter is given
type DefaultConverter struct {
	// Registry reconstructs tables from JSON; nil means datajson.Default
	Registry *datajson.Registry
}

// NewConverter creates a DefaultConverter backed by the default registry
func NewConverter() *DefaultConverter {
	return &DefaultConverter{}
}

func (c *DefaultConverter) AsBoolean(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		if b, err := cast.ToBoolE(val); err == nil {
			return b
		}
		return val != "" && val != "0" && val != "false"
	case time.Time:
		return !val.IsZero()
	case *Table:
		return val != nil && val.RowCount() > 0
	default:
		n := c.AsNumber(val)
		return n != 0 && !math.IsNaN(n)
	}
}

// AsNumber returns NaN for values without a numeric reading
func (c *DefaultConverter) AsNumber(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case time.Time:
		return float64(val.UnixMilli())
	case *Table:
		if val == nil {
			return 0
		}
		return float64(val.RowCount())
	case string:
		v = strings.TrimSpace(val)
	}

	n, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return n
}

func (c *DefaultConverter) AsString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.UTC().Format(dateLayout)
	case *Table:
		if val == nil {
			return ""
		}
		b, err := val.ToJSON().MarshalJSON()
		if err != nil {
			return ""
		}
		return string(b)
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// AsDate reads numbers as epoch milliseconds. The zero time means no date.
func (c *DefaultConverter) AsDate(v any) time.Time {
	switch val := v.(type) {
	case nil, bool, *Table:
		return time.Time{}
	case time.Time:
		return val
	case string:
		t, err := cast.ToTimeE(val)
		if err != nil {
			return time.Time{}
		}
		return t
	}

	n, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return time.Time{}
	}
	return time.UnixMilli(int64(n)).UTC()
}

// AsDataTable returns an empty table when v cannot be read as one
func (c *DefaultConverter) AsDataTable(v any) *Table {
	switch val := v.(type) {
	case *Table:
		if val != nil {
			return val
		}
	case *datajson.Object:
		if t, ok := c.reconstructTable(val); ok {
			return t
		}
	case []any:
		if t, ok := c.reconstructTable(tableEnvelope(val)); ok {
			return t
		}
	case string:
		if obj, err := datajson.Parse([]byte(val)); err == nil {
			if t, ok := c.reconstructTable(obj); ok {
				return t
			}
		}
	}
	return NewTable(nil)
}

func (c *DefaultConverter) reconstructTable(obj *datajson.Object) (*Table, bool) {
	reg := c.Registry
	if reg == nil {
		reg = datajson.Default
	}
	v, err := reg.Reconstruct(obj)
	if err != nil {
		return nil, false
	}
	t, ok := v.(*Table)
	return t, ok
}
