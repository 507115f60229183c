package ecs

import (
	"reflect"
	"sort"
)

// Storage is the main ECS storage interface. It keeps one component storage
// per registered component type, keyed by entity index. Entities themselves
// are created and destroyed elsewhere; Storage only learns about retired
// entities through Delete or Maintain.
type Storage struct {
	storages map[reflect.Type]iComponentStorage
	registry *ComponentRegistry
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		storages: make(map[reflect.Type]iComponentStorage),
		registry: registry,
	}
}

// storageFor returns the storage of compType, creating it on first use.
func (s *Storage) storageFor(compType reflect.Type) iComponentStorage {
	if cs, ok := s.storages[compType]; ok {
		return cs
	}

	factory := s.registry.getFactory(compType)
	if factory == nil {
		panic("component type " + compType.String() + " not registered")
	}
	cs := factory()
	s.storages[compType] = cs
	return cs
}

// Insert attaches the provided components to the entity, replacing components
// of the same type it already holds.
func (s *Storage) Insert(id Index, components ...any) {
	if len(components) == 0 {
		panic("cannot insert without components")
	}

	for _, comp := range components {
		compType := componentType(comp)
		if !s.storageFor(compType).Insert(id, comp) {
			panic("component of type " + reflect.TypeOf(comp).String() + " could not be stored")
		}
	}
}

// Delete removes all data related to the entity index
func (s *Storage) Delete(id Index) {
	for _, cs := range s.storages {
		cs.Remove(id)
	}
}

// RemoveComponent detaches a component from the entity and reports whether it was present.
func (s *Storage) RemoveComponent(id Index, compType reflect.Type) bool {
	cs, ok := s.storages[compType]
	if !ok {
		return false
	}
	return cs.Remove(id)
}

// GetComponent returns the component for the given entity index and component type
func (s *Storage) GetComponent(id Index, compType reflect.Type) any {
	cs, ok := s.storages[compType]
	if !ok {
		return nil
	}
	return cs.Get(id)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id Index, compType reflect.Type) bool {
	cs, ok := s.storages[compType]
	if !ok {
		return false
	}
	return cs.Has(id)
}

// Maintain drops the components of every entity the liveness set no longer
// contains, across all component types.
func (s *Storage) Maintain(alive Liveness) {
	for _, cs := range s.storages {
		cs.Maintain(alive)
	}
}

// Entities returns the sorted indices of all entities holding a component of compType.
func (s *Storage) Entities(compType reflect.Type) []Index {
	cs, ok := s.storages[compType]
	if !ok {
		return nil
	}

	ids := make([]Index, 0, cs.Len())
	for id := range cs.Iter() {
		ids = append(ids, id)
	}
	return ids
}

// componentType returns the stored type of a component value
func componentType(comp any) reflect.Type {
	compType := reflect.TypeOf(comp)
	if compType == nil {
		panic("components cannot be nil")
	}

	// If it's a pointer, get the underlying type
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
		compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
		panic("components cannot be pointers, maps, channels, or functions")
	}

	return compType
}

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// componentTypes returns the registered-and-used component types sorted by name
func (s *Storage) componentTypes() []reflect.Type {
	types := make([]reflect.Type, 0, len(s.storages))
	for t := range s.storages {
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

type ComponentReader interface {
	GetComponent(Index, reflect.Type) any
}

// ReadComponent returns the component of type T for the entity, or nil.
func ReadComponent[T any](reader ComponentReader, id Index) *T {
	comp := reader.GetComponent(id, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}
