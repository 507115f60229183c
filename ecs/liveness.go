package ecs

import (
	"iter"
	"math/bits"

	"github.com/kamstrup/intmap"
)

// Liveness answers whether an entity index is still in use. Storages consult
// it during Clean to drop the components of retired entities in bulk.
type Liveness interface {
	Contains(id Index) bool
}

// LivenessFunc adapts a plain function to the Liveness interface.
type LivenessFunc func(id Index) bool

// Contains calls f(id).
func (f LivenessFunc) Contains(id Index) bool {
	return f(id)
}

// EntitySet is a sparse set of entity indices. It suits liveness sets over
// large or widely spread index ranges.
type EntitySet struct {
	ids *intmap.Map[Index, struct{}]
}

// NewEntitySet creates an empty EntitySet sized for capacity indices.
func NewEntitySet(capacity int) *EntitySet {
	return &EntitySet{
		ids: intmap.New[Index, struct{}](capacity),
	}
}

// Add inserts id into the set.
func (s *EntitySet) Add(id Index) {
	s.ids.Put(id, struct{}{})
}

// Remove deletes id from the set and reports whether it was present.
func (s *EntitySet) Remove(id Index) bool {
	if !s.Contains(id) {
		return false
	}
	s.ids.Del(id)
	return true
}

// Contains reports whether id is in the set.
func (s *EntitySet) Contains(id Index) bool {
	_, ok := s.ids.Get(id)
	return ok
}

// Len returns the number of indices in the set.
func (s *EntitySet) Len() int {
	return s.ids.Len()
}

// Clear removes every index from the set.
func (s *EntitySet) Clear() {
	s.ids.Clear()
}

const wordBits = 64

// BitSet is a dense, growable set of entity indices. The zero value is an
// empty set.
type BitSet struct {
	words []uint64
	count int
}

// Add inserts id and reports whether it was newly added.
func (b *BitSet) Add(id Index) bool {
	w, bit := int(id/wordBits), uint64(1)<<(id%wordBits)
	if w >= len(b.words) {
		b.words = append(b.words, make([]uint64, w+1-len(b.words))...)
	}
	if b.words[w]&bit != 0 {
		return false
	}
	b.words[w] |= bit
	b.count++
	return true
}

// Remove deletes id and reports whether it was present.
func (b *BitSet) Remove(id Index) bool {
	w, bit := int(id/wordBits), uint64(1)<<(id%wordBits)
	if w >= len(b.words) || b.words[w]&bit == 0 {
		return false
	}
	b.words[w] &^= bit
	b.count--
	return true
}

// Contains reports whether id is in the set.
func (b *BitSet) Contains(id Index) bool {
	w := int(id / wordBits)
	if w >= len(b.words) {
		return false
	}
	return b.words[w]&(uint64(1)<<(id%wordBits)) != 0
}

// Len returns the number of indices in the set.
func (b *BitSet) Len() int {
	return b.count
}

// Iter yields the indices in ascending order. Removing the index being
// visited is allowed.
func (b *BitSet) Iter() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		for w := range b.words {
			word := b.words[w]
			for word != 0 {
				i := bits.TrailingZeros64(word)
				word &= word - 1
				if !yield(Index(w*wordBits + i)) {
					return
				}
			}
		}
	}
}
