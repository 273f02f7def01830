package srs

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicateFactory is returned when registering a factory under a type tag
// that is already taken.
var ErrDuplicateFactory = errors.New("srs: duplicate factory registration")

// ErrUnknownType is returned when creating a sub render state for a tag with
// no registered factory.
var ErrUnknownType = errors.New("srs: unknown sub render state type")

// Factory produces instances of one sub render state type and optionally
// claims script properties on its behalf.
type Factory interface {
	// Type retrieves the type tag of the modules this factory produces.
	//
	// Returns:
	//   - string: the type tag
	Type() string

	// Create produces a new module instance in its default configuration.
	//
	// Returns:
	//   - SubRenderState: the new instance
	Create() SubRenderState

	// CreateFromProperty is the script-translator callback: given a property
	// name and its values from an rtshader_system block, the factory either
	// claims the property by returning a configured instance, or declines.
	//
	// Parameters:
	//   - name: the script property name
	//   - values: the property's whitespace-separated values
	//
	// Returns:
	//   - SubRenderState: the configured instance, or nil when declining
	//   - bool: true when the property was claimed
	CreateFromProperty(name string, values []string) (SubRenderState, bool)
}

// Registry is the process-wide mapping from type tag to factory. Built-in
// factories are installed at generator initialization; hosts may add and
// remove their own at any time. Script-property fan-out consults factories in
// insertion order.
type Registry struct {
	ordered []Factory
	byType  map[string]Factory
}

// NewRegistry creates an empty factory registry.
//
// Returns:
//   - *Registry: the new registry
func NewRegistry() *Registry {
	return &Registry{byType: make(map[string]Factory)}
}

// Register adds a factory under its type tag. Duplicate registration under the
// same tag is rejected and the original factory remains in place.
//
// Parameters:
//   - f: the factory to register
//
// Returns:
//   - error: ErrDuplicateFactory if the tag is already taken
func (r *Registry) Register(f Factory) error {
	if _, exists := r.byType[f.Type()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateFactory, f.Type())
	}
	r.byType[f.Type()] = f
	r.ordered = append(r.ordered, f)
	return nil
}

// Unregister removes the factory for a type tag. Removal with live module
// instances is the caller's responsibility to avoid. Unknown tags are ignored.
//
// Parameters:
//   - typeTag: the tag to remove
func (r *Registry) Unregister(typeTag string) {
	if _, exists := r.byType[typeTag]; !exists {
		return
	}
	delete(r.byType, typeTag)
	r.ordered = slices.DeleteFunc(r.ordered, func(f Factory) bool { return f.Type() == typeTag })
}

// Create produces a new module instance for a type tag.
//
// Parameters:
//   - typeTag: the tag of the module to create
//
// Returns:
//   - SubRenderState: the new instance
//   - error: ErrUnknownType if no factory is registered for the tag
func (r *Registry) Create(typeTag string) (SubRenderState, error) {
	f, exists := r.byType[typeTag]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeTag)
	}
	return f.Create(), nil
}

// CreateFromProperty offers a script property to every factory in insertion
// order until one claims it.
//
// Parameters:
//   - name: the script property name
//   - values: the property's values
//
// Returns:
//   - SubRenderState: the configured instance from the claiming factory, or nil
//   - bool: true when some factory claimed the property
func (r *Registry) CreateFromProperty(name string, values []string) (SubRenderState, bool) {
	for _, f := range r.ordered {
		if s, ok := f.CreateFromProperty(name, values); ok {
			return s, true
		}
	}
	return nil, false
}

// Has reports whether a factory is registered for the tag.
//
// Parameters:
//   - typeTag: the tag to look up
//
// Returns:
//   - bool: true when a factory exists
func (r *Registry) Has(typeTag string) bool {
	_, exists := r.byType[typeTag]
	return exists
}

// Factories retrieves the registered factories in insertion order.
//
// Returns:
//   - []Factory: the factories
func (r *Registry) Factories() []Factory {
	return slices.Clone(r.ordered)
}
