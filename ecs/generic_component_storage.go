package ecs

import (
	"iter"
	"reflect"
)

// StorageKind names the UnprotectedStorage implementation backing a component type.
type StorageKind string

const (
	// KindIDV stores components through an IDVStorage.
	KindIDV StorageKind = "idv"
	// KindVec stores components through a VecStorage.
	KindVec StorageKind = "vec"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a component type stored in an IDVStorage.
// This must be called for each component type before it can be used.
func RegisterComponent[T any](r *ComponentRegistry, options ...IDVOption) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{
			kind:    KindIDV,
			storage: NewMaskedStorage[T](NewIDVStorage[T](options...)),
		}
	}
}

// RegisterVecComponent registers a component type stored in a VecStorage.
func RegisterVecComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{
			kind:    KindVec,
			storage: NewMaskedStorage[T](NewVecStorage[T]()),
		}
	}
}

// RegisterComponentKind registers a component type with the storage named by kind.
func RegisterComponentKind[T any](r *ComponentRegistry, kind StorageKind) {
	switch kind {
	case KindIDV:
		RegisterComponent[T](r)
	case KindVec:
		RegisterVecComponent[T](r)
	default:
		panic("unknown storage kind " + string(kind))
	}
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

// genericComponentStorage adapts a MaskedStorage of a specific type `T` to iComponentStorage.
type genericComponentStorage[T any] struct {
	kind    StorageKind
	storage *MaskedStorage[T]
}

// Insert stores the component for id. Both T and *T are accepted.
func (cs *genericComponentStorage[T]) Insert(id Index, item any) bool {
	var concreteItem T
	if ptr, ok := item.(*T); ok {
		if ptr == nil {
			panic("components cannot be nil")
		}
		concreteItem = *ptr
	} else if val, ok := item.(T); ok {
		concreteItem = val
	} else {
		return false // Invalid type
	}

	cs.storage.Insert(id, concreteItem)
	return true
}

// Get returns a pointer to the component of id, or nil.
func (cs *genericComponentStorage[T]) Get(id Index) any {
	ptr, ok := cs.storage.Get(id)
	if !ok {
		return nil
	}
	return ptr
}

func (cs *genericComponentStorage[T]) Has(id Index) bool {
	return cs.storage.Has(id)
}

func (cs *genericComponentStorage[T]) Remove(id Index) bool {
	_, ok := cs.storage.Remove(id)
	return ok
}

func (cs *genericComponentStorage[T]) Maintain(alive Liveness) {
	cs.storage.Maintain(alive)
}

func (cs *genericComponentStorage[T]) Len() int {
	return cs.storage.Len()
}

func (cs *genericComponentStorage[T]) Kind() StorageKind {
	return cs.kind
}

func (cs *genericComponentStorage[T]) Iter() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		for id := range cs.storage.IDs() {
			if !yield(id) {
				return
			}
		}
	}
}

func (cs *genericComponentStorage[T]) footprint() (slots, occupied int) {
	if f, ok := cs.storage.Inner().(interface{ footprint() (int, int) }); ok {
		return f.footprint()
	}
	return cs.storage.Len(), cs.storage.Len()
}
