package ecs

import "fmt"

const (
	vecBlockSize = 64
)

// VecStorage stores components directly at their entity index in blocks of
// vecBlockSize. It wastes memory for sparse indices but needs no redirection,
// which makes it the baseline IDVStorage is measured against.
type VecStorage[T any] struct {
	blocks [][vecBlockSize]T
	filled [][vecBlockSize]bool
	count  int
}

// NewVecStorage creates an empty VecStorage.
func NewVecStorage[T any]() *VecStorage[T] {
	return &VecStorage[T]{}
}

// Insert stores v at id, overwriting any previous value.
func (vs *VecStorage[T]) Insert(id Index, v T) {
	blockIdx := int(id / vecBlockSize)
	slotIdx := id % vecBlockSize

	for blockIdx >= len(vs.blocks) {
		vs.blocks = append(vs.blocks, [vecBlockSize]T{})
		vs.filled = append(vs.filled, [vecBlockSize]bool{})
	}

	if !vs.filled[blockIdx][slotIdx] {
		vs.count++
	}
	vs.blocks[blockIdx][slotIdx] = v
	vs.filled[blockIdx][slotIdx] = true
}

// Lookup returns a pointer to the component at id, or false if the slot is empty.
func (vs *VecStorage[T]) Lookup(id Index) (*T, bool) {
	blockIdx := int(id / vecBlockSize)
	slotIdx := id % vecBlockSize

	if blockIdx >= len(vs.blocks) || !vs.filled[blockIdx][slotIdx] {
		return nil, false
	}
	return &vs.blocks[blockIdx][slotIdx], true
}

// Get returns a pointer to the component at id. It panics if the slot is empty.
func (vs *VecStorage[T]) Get(id Index) *T {
	v, ok := vs.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("no component stored for entity %d", id))
	}
	return v
}

// GetMut is Get for callers that intend to modify the component in place.
func (vs *VecStorage[T]) GetMut(id Index) *T {
	return vs.Get(id)
}

// TryRemove takes the component at id out of the storage.
func (vs *VecStorage[T]) TryRemove(id Index) (T, bool) {
	var zero T
	blockIdx := int(id / vecBlockSize)
	slotIdx := id % vecBlockSize

	if blockIdx >= len(vs.blocks) || !vs.filled[blockIdx][slotIdx] {
		return zero, false
	}

	v := vs.blocks[blockIdx][slotIdx]
	vs.blocks[blockIdx][slotIdx] = zero
	vs.filled[blockIdx][slotIdx] = false
	vs.count--
	return v, true
}

// Remove takes the component at id out of the storage. It panics if the slot is empty.
func (vs *VecStorage[T]) Remove(id Index) T {
	v, ok := vs.TryRemove(id)
	if !ok {
		panic(fmt.Sprintf("no component stored for entity %d", id))
	}
	return v
}

// Clean empties every filled slot whose index is not alive.
func (vs *VecStorage[T]) Clean(alive Liveness) {
	var zero T
	for blockIdx := range vs.filled {
		for slotIdx := range vecBlockSize {
			if !vs.filled[blockIdx][slotIdx] {
				continue
			}
			if alive.Contains(Index(blockIdx*vecBlockSize + slotIdx)) {
				continue
			}
			vs.blocks[blockIdx][slotIdx] = zero
			vs.filled[blockIdx][slotIdx] = false
			vs.count--
		}
	}
}

// Len returns the number of stored components.
func (vs *VecStorage[T]) Len() int {
	return vs.count
}

func (vs *VecStorage[T]) footprint() (slots, occupied int) {
	return len(vs.blocks) * vecBlockSize, vs.count
}
