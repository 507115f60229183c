package ecs

import "iter"

// iComponentStorage is an interface for a type-erased component storage.
type iComponentStorage interface {
	Insert(id Index, item any) bool
	Get(id Index) any
	Has(id Index) bool
	Remove(id Index) bool
	Maintain(alive Liveness)
	Len() int
	Kind() StorageKind
	Iter() iter.Seq[Index]
	footprint() (slots, occupied int)
}
