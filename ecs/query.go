package ecs

import "iter"

// Query wraps a View with a per-frame snapshot of its matches.
// Systems may mutate the matched components freely and queue structural
// changes on the frame's Commands while iterating the snapshot.
type Query[T any] struct {
	view *View[T]

	cachedEntities   []Index
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	return &Query[T]{
		view: NewView[T](storage),
	}
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.cacheValid = false
}

// Execute builds the entity and component caches for this frame.
// Called automatically by the Scheduler before the owning system runs.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]

	for id, item := range q.view.Iter() {
		q.cachedEntities = append(q.cachedEntities, id)
		q.cachedComponents = append(q.cachedComponents, item)
	}

	q.cacheValid = true
}

// Len returns the number of matches cached by the last Execute.
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}

// Iter returns an iterator over entity indices and component data.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Iter() iter.Seq2[Index, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(Index, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}
