package datajson

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// ClassKey is the discriminator field of every tagged record
const ClassKey = "$class"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Object is a JSON record that keeps its keys in insertion order.
// Values are JSON primitives, nil, *Object or []any.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty record
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// NewTagged creates a record whose first key is the $class discriminator
func NewTagged(class string) *Object {
	o := NewObject()
	o.Set(ClassKey, class)
	return o
}

// Set stores value under key. New keys are appended, existing keys keep their position.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Delete removes key from the record
func (o *Object) Delete(key string) {
	if _, exists := o.values[key]; !exists {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the keys in insertion order
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of keys
func (o *Object) Len() int {
	return len(o.keys)
}

// Class returns the $class discriminator, or "" if the record is untagged
func (o *Object) Class() string {
	class, _ := o.values[ClassKey].(string)
	return class
}

// MarshalJSON writes the record with its keys in insertion order
func (o *Object) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	writeValue(stream, o)
	if stream.Error != nil {
		return nil, stream.Error
	}

	// the stream buffer goes back to the pool
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

// UnmarshalJSON replaces the record's content, keeping the document's key order
func (o *Object) UnmarshalJSON(data []byte) error {
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)

	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return fmt.Errorf("datajson: expected object, got %s", describe(iter.WhatIsNext()))
	}

	parsed, ok := readValue(iter).(*Object)
	if iter.Error != nil {
		return fmt.Errorf("datajson: %w", iter.Error)
	}
	if !ok {
		return fmt.Errorf("datajson: expected object")
	}

	o.keys = parsed.keys
	o.values = parsed.values
	return nil
}

// Parse decodes a JSON document that must be an object
func Parse(data []byte) (*Object, error) {
	o := NewObject()
	if err := o.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return o, nil
}

// ParseValue decodes any JSON value; objects become *Object and arrays []any
func ParseValue(data []byte) (any, error) {
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)

	v := readValue(iter)
	if iter.Error != nil {
		return nil, fmt.Errorf("datajson: %w", iter.Error)
	}
	return v, nil
}

func writeValue(stream *jsoniter.Stream, v any) {
	switch val := v.(type) {
	case *Object:
		if val == nil {
			stream.WriteNil()
			return
		}
		stream.WriteObjectStart()
		for i, k := range val.keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(k)
			writeValue(stream, val.values[k])
		}
		stream.WriteObjectEnd()
	case []any:
		stream.WriteArrayStart()
		for i, item := range val {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, item)
		}
		stream.WriteArrayEnd()
	default:
		stream.WriteVal(val)
	}
}

func readValue(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		obj := NewObject()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			obj.Set(field, readValue(it))
			return it.Error == nil
		})
		return obj
	case jsoniter.ArrayValue:
		items := make([]any, 0)
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			items = append(items, readValue(it))
			return it.Error == nil
		})
		return items
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		return iter.ReadFloat64()
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	default:
		iter.ReportError("readValue", "unexpected token")
		return nil
	}
}

func describe(t jsoniter.ValueType) string {
	switch t {
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "boolean"
	case jsoniter.ArrayValue:
		return "array"
	case jsoniter.ObjectValue:
		return "object"
	default:
		return "invalid input"
	}
}
