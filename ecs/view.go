package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// View joins the component storages of several types by entity index.
// The type T should be a struct with embedded pointer fields for each component type
// Named fields can be marked as optional using the `ecs:"optional"` struct tag
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
}

// NewView creates a new view for the given struct type
// The struct T should have embedded or named fields that are pointers to component types
// Embedded fields are always required, and at least one field must be required
// Named fields can be marked as optional using the `ecs:"optional"` struct tag
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	types := make([]reflect.Type, 0, structType.NumField())
	optional := make([]bool, 0, structType.NumField())
	fieldOffset := make([]uintptr, 0, structType.NumField())

	required := 0
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		types = append(types, fieldType.Elem())
		fieldOffset = append(fieldOffset, field.Offset)

		// Parse struct tag to check if component is optional
		// Embedded fields (field.Anonymous) are always required
		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}
		if !isOptional {
			required++
		}
		optional = append(optional, isOptional)
	}

	if required == 0 {
		panic("View struct needs at least one required component")
	}

	return &View[T]{
		storage:     storage,
		types:       types,
		optional:    optional,
		fieldOffset: fieldOffset,
	}
}

// Fill populates the provided struct pointer with component data for the given entity
// Returns false if the entity is missing any required components
// Optional components are set to nil if not present
func (v *View[T]) Fill(id Index, ptr *T) bool {
	// Use unsafe.Pointer to directly access the struct's memory
	// This avoids reflection overhead in the hot path
	structPtr := unsafe.Pointer(ptr)

	for i, componentType := range v.types {
		component := v.storage.GetComponent(id, componentType)

		// Calculate the address of the field using the pre-computed offset
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		// The interface holds a *Component, so its data word is the component pointer
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}

	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id Index) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// driver returns the storage of the required component held by the fewest
// entities, or nil if some required component has never been stored.
func (v *View[T]) driver() iComponentStorage {
	var best iComponentStorage
	for i, typ := range v.types {
		if v.optional[i] {
			continue
		}
		cs, ok := v.storage.storages[typ]
		if !ok {
			return nil
		}
		if best == nil || cs.Len() < best.Len() {
			best = cs
		}
	}
	return best
}

// Iter returns an iterator over all entities that have all the required components for this view
// The iterator yields (Index, T) pairs in ascending index order
// Inserting components while iterating invalidates the yielded pointers; queue them on Commands instead
func (v *View[T]) Iter() iter.Seq2[Index, T] {
	return func(yield func(Index, T) bool) {
		driver := v.driver()
		if driver == nil {
			return
		}

		var result T
		for id := range driver.Iter() {
			if !v.Fill(id, &result) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity indices)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Insert stores the non-nil components of data for the entity
func (v *View[T]) Insert(id Index, data T) {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, componentType := range v.types {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])
		componentPtr := *(*unsafe.Pointer)(fieldPtr)

		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component is nil in View.Insert")
			}
			continue
		}

		components = append(components, reflect.NewAt(componentType, componentPtr).Elem().Interface())
	}

	v.storage.Insert(id, components...)
}
