package ecs

import (
	"fmt"

	"github.com/google/btree"
)

// GroupSize is the number of consecutive entity indices whose redirects share a group.
const GroupSize = 4

// freeIndexDegree is the btree degree of the free-slot index.
const freeIndexDegree = 32

// group is one bucket of the group table. Its redirects belong to the entity
// indices 4g..4g+3, while its data cell may be the target of any redirect in
// the table.
type group[T any] struct {
	redirects [GroupSize]uint32
	// owned has bit j set while redirects[j] targets a cell filled for it
	owned    uint8
	occupied bool
	data     T
}

// IDVStorage is an indirect, densely packed component storage. Entity indices
// are grouped into buckets of GroupSize redirects which point into the same
// group table, so components stay contiguous no matter how sparse or how large
// the entity indices are.
//
// The zero value is ready to use. IDVStorage is not safe for concurrent
// mutation, and pointers returned by Get, GetMut and Lookup are invalidated by
// the next Insert.
type IDVStorage[T any] struct {
	groups   []group[T]
	free     *btree.BTreeG[uint32]
	scan     bool
	occupied int
}

// NewIDVStorage creates an empty IDVStorage configured with the given options.
func NewIDVStorage[T any](options ...IDVOption) *IDVStorage[T] {
	var cfg idvConfig
	for _, op := range options {
		op.apply(&cfg)
	}

	s := &IDVStorage[T]{scan: cfg.linearScan}
	if cfg.capacity > 0 {
		s.groups = make([]group[T], 0, (cfg.capacity+GroupSize-1)/GroupSize)
	}
	return s
}

func (s *IDVStorage[T]) freeIndex() *btree.BTreeG[uint32] {
	if s.free == nil {
		s.free = btree.NewG(freeIndexDegree, func(a, b uint32) bool { return a < b })
	}
	return s.free
}

// grow ensures the table holds at least n groups. Appended groups are blank and free.
func (s *IDVStorage[T]) grow(n int) {
	for len(s.groups) < n {
		s.groups = append(s.groups, group[T]{})
		if !s.scan {
			s.freeIndex().ReplaceOrInsert(uint32(len(s.groups) - 1))
		}
	}
}

// findFree returns the position of the first group with an empty data cell,
// appending a blank group when every cell is taken. The returned cell is no
// longer tracked as free.
func (s *IDVStorage[T]) findFree() uint32 {
	if s.scan {
		for i := range s.groups {
			if !s.groups[i].occupied {
				return uint32(i)
			}
		}
	} else if i, ok := s.freeIndex().DeleteMin(); ok {
		return i
	}

	s.groups = append(s.groups, group[T]{})
	return uint32(len(s.groups) - 1)
}

// release empties the data cell at internal and makes it available again.
func (s *IDVStorage[T]) release(internal uint32) T {
	cell := &s.groups[internal]
	value := cell.data

	var zero T
	cell.data = zero
	cell.occupied = false
	s.occupied--

	if !s.scan {
		s.freeIndex().ReplaceOrInsert(internal)
	}
	return value
}

// resolve returns the cell the redirect of id targets, and whether id owns it.
// Indices beyond the table resolve to (0, false).
func (s *IDVStorage[T]) resolve(id Index) (uint32, bool) {
	g, sub := int(id/GroupSize), id%GroupSize
	if g >= len(s.groups) {
		return 0, false
	}
	grp := &s.groups[g]
	return grp.redirects[sub], grp.owned&(1<<sub) != 0
}

// Insert stores v for the entity index id.
//
// The redirect of id is overwritten unconditionally: inserting twice without
// an intervening Remove leaves the first cell occupied and unreachable.
func (s *IDVStorage[T]) Insert(id Index, v T) {
	g, sub := int(id/GroupSize), id%GroupSize
	s.grow(g + 1)

	internal := s.findFree()
	grp := &s.groups[g]
	grp.redirects[sub] = internal
	grp.owned |= 1 << sub

	cell := &s.groups[internal]
	cell.data = v
	cell.occupied = true
	s.occupied++
}

// Lookup returns the component stored for id, or false if there is none.
func (s *IDVStorage[T]) Lookup(id Index) (*T, bool) {
	internal, ok := s.resolve(id)
	if !ok {
		return nil, false
	}
	return &s.groups[internal].data, true
}

// Get returns the component stored for id. The caller must have inserted a
// value for id; Get panics otherwise.
func (s *IDVStorage[T]) Get(id Index) *T {
	v, ok := s.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("no component stored for entity %d", id))
	}
	return v
}

// GetMut is Get for callers that intend to modify the component in place.
func (s *IDVStorage[T]) GetMut(id Index) *T {
	return s.Get(id)
}

// TryRemove takes the component stored for id out of the storage. The
// redirect of id is left as is; its cell becomes free for the next Insert.
func (s *IDVStorage[T]) TryRemove(id Index) (T, bool) {
	internal, ok := s.resolve(id)
	if !ok {
		var zero T
		return zero, false
	}
	s.groups[id/GroupSize].owned &^= 1 << (id % GroupSize)
	return s.release(internal), true
}

// Remove is TryRemove for callers that know id holds a component. It panics
// otherwise.
func (s *IDVStorage[T]) Remove(id Index) T {
	v, ok := s.TryRemove(id)
	if !ok {
		panic(fmt.Sprintf("no component stored for entity %d", id))
	}
	return v
}

// Clean drops the component of every entity index the liveness set no longer
// contains. Components of live entities are left untouched.
func (s *IDVStorage[T]) Clean(alive Liveness) {
	for g := range s.groups {
		grp := &s.groups[g]
		if grp.owned == 0 {
			continue
		}
		for sub := range GroupSize {
			bit := uint8(1) << sub
			if grp.owned&bit == 0 {
				continue
			}
			if alive.Contains(Index(g*GroupSize + sub)) {
				continue
			}
			grp.owned &^= bit
			s.release(grp.redirects[sub])
		}
	}
}

// Len returns the number of groups in the table.
func (s *IDVStorage[T]) Len() int {
	return len(s.groups)
}

// IDVStats describes the occupancy of an IDVStorage.
type IDVStats struct {
	Groups   int
	Occupied int
	Free     int
}

// Stats returns the current occupancy of the group table.
func (s *IDVStorage[T]) Stats() IDVStats {
	return IDVStats{
		Groups:   len(s.groups),
		Occupied: s.occupied,
		Free:     len(s.groups) - s.occupied,
	}
}

func (s *IDVStorage[T]) footprint() (slots, occupied int) {
	return len(s.groups), s.occupied
}
