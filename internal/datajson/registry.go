package datajson

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrMissingClass = errors.New("datajson: record has no $class discriminator")
	ErrUnknownClass = errors.New("datajson: unknown $class")
)

// Reconstructor rebuilds a typed value from its tagged record
type Reconstructor func(obj *Object) (any, error)

// Marshaler is implemented by values that serialize to a tagged record
type Marshaler interface {
	ToJSON() *Object
}

// Registry maps a $class discriminator to its Reconstructor.
// Classes are registered during package initialization and only read afterwards.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]Reconstructor
}

// Default is the process-wide registry
var Default = NewRegistry()

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]Reconstructor)}
}

// Register adds a reconstructor for class.
// It panics on an empty class name, a nil reconstructor or a duplicate class.
func (r *Registry) Register(class string, fn Reconstructor) {
	if class == "" {
		panic("datajson: Register with empty class")
	}
	if fn == nil {
		panic("datajson: Register " + class + " with nil reconstructor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classes[class]; exists {
		panic("datajson: Register called twice for class " + class)
	}
	r.classes[class] = fn
}

// Classes returns the registered class names in sorted order
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reconstruct dispatches obj to the reconstructor registered for its $class
func (r *Registry) Reconstruct(obj *Object) (any, error) {
	if obj == nil {
		return nil, ErrMissingClass
	}
	class := obj.Class()
	if class == "" {
		return nil, ErrMissingClass
	}

	r.mu.RLock()
	fn, ok := r.classes[class]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownClass, class)
	}

	v, err := fn(obj)
	if err != nil {
		return nil, fmt.Errorf("reconstruct %s: %w", class, err)
	}
	return v, nil
}

// Register adds a reconstructor to the Default registry
func Register(class string, fn Reconstructor) {
	Default.Register(class, fn)
}

// Reconstruct dispatches obj through the Default registry
func Reconstruct(obj *Object) (any, error) {
	return Default.Reconstruct(obj)
}
