package rangevec

import (
	"fmt"
	"math"

	"github.com/ValentinKolb/rangevec/lib/util"
)

// --------------------------------------------------------------------------
// Core RangeVec structure
// --------------------------------------------------------------------------

// RangeVec returns a value for every uint64 index, but only the smallest
// contiguous range covering all non-default values is stored. The stored values
// live in a ring buffer so that the range can grow and shrink at both ends.
//
// Invariant: whenever the stored range is not empty, its first and its last
// element differ from the default item. Elements in between may equal the
// default item.
//
// The default constructor and the equality function passed at construction
// must be stable for the whole lifetime of the RangeVec: every call of the
// default constructor must return values that are equal to each other. This is
// not checked at runtime, violating it is a logic error.
//
// Thread-safety: A RangeVec is not safe for concurrent use. Concurrent reads
// (Get, Range, Iter, String) are fine as long as no goroutine mutates it.
type RangeVec[T any] struct {
	data        *util.Deque[T]
	offset      uint64 // logical index of data[0], meaningless when data is empty
	defaultItem T
	newDefault  func() T
	equal       func(a, b T) bool
}

// New creates an empty RangeVec whose default item is the zero value of T
// and which compares values with ==.
//
// No memory is allocated for the buffer until the first non-default write.
func New[T comparable]() *RangeVec[T] {
	return NewFunc(
		func() T {
			var zero T
			return zero
		},
		func(a, b T) bool { return a == b },
	)
}

// NewFunc creates an empty RangeVec for an arbitrary element type.
//
//   - newDefault: returns a fresh default value. It is called once to compute the
//     cached default item, and again whenever a slot is filled or a scratch value
//     for a mutation outside the stored range is needed.
//   - equal: reports whether two values are equal. It decides whether a value is
//     the default item.
func NewFunc[T any](newDefault func() T, equal func(a, b T) bool) *RangeVec[T] {
	if newDefault == nil || equal == nil {
		panic("rangevec: NewFunc requires a default constructor and an equality function")
	}
	return &RangeVec[T]{
		data:        util.NewDeque[T](0),
		defaultItem: newDefault(),
		newDefault:  newDefault,
		equal:       equal,
	}
}

// --------------------------------------------------------------------------
// Range information
// --------------------------------------------------------------------------

// Range returns the stored range, exactly covering the leftmost (inclusive) and
// the rightmost (exclusive) non-default value. The boolean is false if there are
// no non-default values.
func (rv *RangeVec[T]) Range() (Span, bool) {
	if rv.data.Len() == 0 {
		return Span{}, false
	}
	return Span{Start: rv.offset, End: rv.offset + uint64(rv.data.Len())}, true
}

// RangeSize returns the number of stored elements.
func (rv *RangeVec[T]) RangeSize() int {
	return rv.data.Len()
}

// IsEmpty returns true if there are no non-default values.
func (rv *RangeVec[T]) IsEmpty() bool {
	return rv.data.Len() == 0
}

// Default returns the default item.
func (rv *RangeVec[T]) Default() T {
	return rv.defaultItem
}

// --------------------------------------------------------------------------
// Index translation & growth
// --------------------------------------------------------------------------

// position translates a logical index into a buffer position.
// The boolean is false if the index lies outside the stored range.
func (rv *RangeVec[T]) position(index uint64) (int, bool) {
	if index < rv.offset {
		return 0, false
	}
	rel := index - rv.offset
	if rel >= uint64(rv.data.Len()) {
		return 0, false
	}
	return int(rel), true
}

func (rv *RangeVec[T]) isDefault(v T) bool {
	return rv.equal(v, rv.defaultItem)
}

func (rv *RangeVec[T]) isNonDefault(v T) bool {
	return !rv.equal(v, rv.defaultItem)
}

// growthCount converts the number of slots to add into an int, panicking if
// the buffer could never hold that many elements.
func growthCount(n uint64) int {
	if n > uint64(math.MaxInt) {
		panic(fmt.Sprintf("rangevec: cannot grow the stored range by %d elements", n))
	}
	return int(n)
}

// growToInclude grows the buffer with default values until index is part of the
// stored range. It never shrinks and never inspects values.
func (rv *RangeVec[T]) growToInclude(index uint64) {
	// the exclusive end of a range containing MaxUint64 is not representable
	if index == math.MaxUint64 {
		panic("rangevec: index math.MaxUint64 cannot be stored")
	}

	n := rv.data.Len()
	switch {
	case n == 0:
		rv.offset = index
		rv.data.PushBack(rv.newDefault())
	case index < rv.offset:
		additional := growthCount(rv.offset - index)
		rv.data.Reserve(additional)
		for i := 0; i < additional; i++ {
			rv.data.PushFront(rv.newDefault())
		}
		rv.offset = index
	case index-rv.offset >= uint64(n):
		additional := growthCount(index - rv.offset - uint64(n) + 1)
		rv.data.Reserve(additional)
		for i := 0; i < additional; i++ {
			rv.data.PushBack(rv.newDefault())
		}
	}
}

// growAndSet stores value at an index outside the stored range, unless it is the
// default item (the range is already minimal with respect to it).
func (rv *RangeVec[T]) growAndSet(index uint64, value T) {
	if rv.isDefault(value) {
		return
	}
	rv.growToInclude(index)
	rv.data.Set(int(index-rv.offset), value)
}

// --------------------------------------------------------------------------
// Shrink logic
// --------------------------------------------------------------------------

// shrinkLeft drops all default values at the start of the buffer
func (rv *RangeVec[T]) shrinkLeft() {
	p := rv.data.IndexFunc(rv.isNonDefault)
	if p < 0 {
		rv.data.Clear()
		return
	}
	rv.data.DropFront(p)
	rv.offset += uint64(p)
}

// shrinkRight drops all default values at the end of the buffer
func (rv *RangeVec[T]) shrinkRight() {
	p := rv.data.LastIndexFunc(rv.isNonDefault)
	if p < 0 {
		rv.data.Clear()
		return
	}
	rv.data.Truncate(p + 1)
}

// shrink restores the invariant after the value at index (inside the stored
// range) was changed. Only a changed boundary can break the invariant.
func (rv *RangeVec[T]) shrink(index uint64) {
	n := rv.data.Len()
	if n == 0 {
		return
	}
	if index == rv.offset {
		rv.shrinkLeft()
	} else if index == rv.offset+uint64(n)-1 {
		rv.shrinkRight()
	}
}

// shrinkAll runs a full pass from both ends, used after bulk mutations
func (rv *RangeVec[T]) shrinkAll() {
	rv.shrinkLeft()
	rv.shrinkRight()
}

// --------------------------------------------------------------------------
// Read & write
// --------------------------------------------------------------------------

// Get returns the value at index, or the default item if index lies outside the
// stored range. Every uint64 is a valid index.
func (rv *RangeVec[T]) Get(index uint64) T {
	if p, ok := rv.position(index); ok {
		return rv.data.At(p)
	}
	return rv.defaultItem
}

// Set stores value at index. Outside the stored range the buffer is only grown
// if value is not the default item. Inside the stored range a default value at
// a boundary shrinks the buffer.
func (rv *RangeVec[T]) Set(index uint64, value T) {
	if p, ok := rv.position(index); ok {
		rv.data.Set(p, value)
		rv.shrink(index)
		return
	}
	rv.growAndSet(index, value)
}

// Reset sets the value at index back to the default item and shrinks the buffer
// accordingly. Outside the stored range this is a no-op.
func (rv *RangeVec[T]) Reset(index uint64) {
	if p, ok := rv.position(index); ok {
		rv.data.Set(p, rv.newDefault())
		rv.shrink(index)
	}
}

// Truncate resets all values outside of span to the default item. An empty span
// clears the RangeVec.
func (rv *RangeVec[T]) Truncate(span Span) {
	if span.IsEmpty() {
		rv.data.Clear()
		return
	}
	if rv.data.Len() == 0 {
		return
	}

	// drop everything right of the span
	newEnd := min(saturatingSub(span.End, rv.offset), uint64(rv.data.Len()))
	rv.data.Truncate(int(newEnd))

	// drop everything left of the span
	newStart := min(saturatingSub(span.Start, rv.offset), uint64(rv.data.Len()))
	rv.data.DropFront(int(newStart))
	rv.offset += newStart

	// the new boundaries may hold default values
	rv.shrinkAll()
}

// Clear resets all values to the default item.
func (rv *RangeVec[T]) Clear() {
	rv.data.Clear()
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}
