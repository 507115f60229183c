package ecs

// Index is an entity index as handed out by the entity allocator. Indices are
// small non-negative integers but may be sparse.
type Index uint32

// UnprotectedStorage is the low level contract between a component storage and
// the code tracking which entities hold a component. Implementations trust
// their caller: Get, GetMut and Remove may only be called for indices that
// currently hold a value, and Insert only for indices that do not.
type UnprotectedStorage[T any] interface {
	Insert(id Index, v T)
	Get(id Index) *T
	GetMut(id Index) *T
	Remove(id Index) T
	Clean(alive Liveness)
}

var (
	_ UnprotectedStorage[int] = (*IDVStorage[int])(nil)
	_ UnprotectedStorage[int] = (*VecStorage[int])(nil)
)
