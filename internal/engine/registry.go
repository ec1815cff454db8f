package engine

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownComponent is returned when a scene names a component type that
// was never registered.
var ErrUnknownComponent = errors.New("unknown component type")

// Serializable is a component that can round-trip through a scene file.
type Serializable interface {
	Component
	TypeName() string
	Serialize() map[string]any
	Deserialize(data map[string]any) error
}

// ComponentFactory creates a zero-configured component ready for Deserialize.
type ComponentFactory func() Serializable

var componentRegistry = map[string]ComponentFactory{}

// RegisterComponent makes a component type constructible by name. It panics
// on duplicate names; registration happens from init functions.
func RegisterComponent(name string, factory ComponentFactory) {
	if _, exists := componentRegistry[name]; exists {
		panic(fmt.Sprintf("component %q already registered", name))
	}
	componentRegistry[name] = factory
}

// CreateComponent builds a registered component and loads data into it.
func CreateComponent(name string, data map[string]any) (Serializable, error) {
	factory, ok := componentRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	c := factory()
	if err := c.Deserialize(data); err != nil {
		return nil, fmt.Errorf("component %s: %w", name, err)
	}
	return c, nil
}

// RegisteredComponents returns the registered type names in sorted order.
func RegisteredComponents() []string {
	names := make([]string, 0, len(componentRegistry))
	for name := range componentRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
