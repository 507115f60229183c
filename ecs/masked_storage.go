package ecs

import "iter"

// MaskedStorage pairs an UnprotectedStorage with a mask of the entity indices
// that hold a component, so that callers never violate the unprotected
// contract: lookups of missing indices report absence and inserting twice
// replaces the value instead of leaking a slot.
type MaskedStorage[T any] struct {
	mask  BitSet
	inner UnprotectedStorage[T]
}

// NewMaskedStorage wraps inner, which must be empty.
func NewMaskedStorage[T any](inner UnprotectedStorage[T]) *MaskedStorage[T] {
	return &MaskedStorage[T]{inner: inner}
}

// Insert stores v for id. If id already held a component it is replaced in
// place and returned.
func (m *MaskedStorage[T]) Insert(id Index, v T) (old T, replaced bool) {
	if m.mask.Contains(id) {
		ptr := m.inner.GetMut(id)
		old, *ptr = *ptr, v
		return old, true
	}
	m.inner.Insert(id, v)
	m.mask.Add(id)
	return old, false
}

// Get returns the component of id, or false if id has none.
func (m *MaskedStorage[T]) Get(id Index) (*T, bool) {
	if !m.mask.Contains(id) {
		return nil, false
	}
	return m.inner.Get(id), true
}

// Has reports whether id holds a component.
func (m *MaskedStorage[T]) Has(id Index) bool {
	return m.mask.Contains(id)
}

// Remove takes the component of id out of the storage.
func (m *MaskedStorage[T]) Remove(id Index) (T, bool) {
	if !m.mask.Remove(id) {
		var zero T
		return zero, false
	}
	return m.inner.Remove(id), true
}

// Len returns the number of entities holding a component.
func (m *MaskedStorage[T]) Len() int {
	return m.mask.Len()
}

// Iter yields every entity index and its component in ascending index order.
func (m *MaskedStorage[T]) Iter() iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		for id := range m.mask.Iter() {
			if !yield(id, m.inner.GetMut(id)) {
				return
			}
		}
	}
}

// IDs yields every entity index holding a component in ascending order.
func (m *MaskedStorage[T]) IDs() iter.Seq[Index] {
	return m.mask.Iter()
}

// Maintain drops the components of every entity that is no longer alive.
func (m *MaskedStorage[T]) Maintain(alive Liveness) {
	for id := range m.mask.Iter() {
		if !alive.Contains(id) {
			m.mask.Remove(id)
		}
	}
	m.inner.Clean(alive)
}

// Inner returns the wrapped storage.
func (m *MaskedStorage[T]) Inner() UnprotectedStorage[T] {
	return m.inner
}
