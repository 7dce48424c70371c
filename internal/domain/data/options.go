package data

import (
	"sync/atomic"

	"github.com/leengari/rowkit/internal/ident"
)

var defaultIDGenerator atomic.Pointer[ident.Generator]

func init() {
	SetDefaultIDGenerator(ident.UUID)
}

// SetDefaultIDGenerator changes the generator used for auto ids of rows
// and tables created without WithIDGenerator. A nil generator restores UUIDs.
func SetDefaultIDGenerator(gen ident.Generator) {
	if gen == nil {
		gen = ident.UUID
	}
	defaultIDGenerator.Store(&gen)
}

// Option configures a Row or a Table
type Option func(*options)

type options struct {
	converter   Converter
	idGenerator ident.Generator
	id          string
}

// WithConverter sets the converter used by the typed column accessors
func WithConverter(c Converter) Option {
	return func(o *options) {
		o.converter = c
	}
}

// WithIDGenerator sets the generator used when no id is supplied
func WithIDGenerator(gen ident.Generator) Option {
	return func(o *options) {
		o.idGenerator = gen
	}
}

// WithID gives a Table an explicit identity. Rows take theirs from the "id" column.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.converter == nil {
		o.converter = NewConverter()
	}
	if o.idGenerator == nil {
		o.idGenerator = *defaultIDGenerator.Load()
	}
	return o
}
