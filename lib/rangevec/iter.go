package rangevec

import (
	"iter"
	"slices"
)

// Iter walks an arbitrary index span of a RangeVec from the front and from the
// back. Indices inside the stored range yield the stored value, all others
// yield the default item.
//
// The iterator takes a snapshot of the stored range and of the buffer segments
// when it is created. It must not be used after the RangeVec was mutated: it
// stays memory safe, but may observe stale or partially updated values.
//
// Once exhausted (from either end) it stays exhausted.
type Iter[T any] struct {
	front uint64 // next index from the front
	back  uint64 // one past the next index from the back

	filled        Span // stored range at creation
	first, second []T  // buffer segments at creation
	defaultItem   T
}

// Iter creates an iterator over span.
func (rv *RangeVec[T]) Iter(span Span) *Iter[T] {
	it := &Iter[T]{
		front:       span.Start,
		back:        span.End,
		defaultItem: rv.defaultItem,
	}
	if span.IsEmpty() {
		it.back = it.front
	}
	if filled, ok := rv.Range(); ok {
		it.filled = filled
		it.first, it.second = rv.data.Slices()
	}
	return it
}

func (it *Iter[T]) at(index uint64) T {
	if !it.filled.Contains(index) {
		return it.defaultItem
	}
	rel := index - it.filled.Start
	if split := uint64(len(it.first)); rel >= split {
		return it.second[rel-split]
	}
	return it.first[rel]
}

// Next returns the value at the front and advances. The boolean is false once
// the iterator is exhausted.
func (it *Iter[T]) Next() (T, bool) {
	if it.front >= it.back {
		var zero T
		return zero, false
	}
	v := it.at(it.front)
	it.front++
	return v, true
}

// NextBack returns the value at the back and moves the back end one index to
// the front. The boolean is false once the iterator is exhausted.
func (it *Iter[T]) NextBack() (T, bool) {
	if it.front >= it.back {
		var zero T
		return zero, false
	}
	it.back--
	return it.at(it.back), true
}

// Remaining returns the exact number of values left.
func (it *Iter[T]) Remaining() uint64 {
	if it.front >= it.back {
		return 0
	}
	return it.back - it.front
}

// --------------------------------------------------------------------------
// range-over-func adapters
// --------------------------------------------------------------------------

// All returns a sequence of (index, value) pairs over span in ascending order.
func (rv *RangeVec[T]) All(span Span) iter.Seq2[uint64, T] {
	return func(yield func(uint64, T) bool) {
		it := rv.Iter(span)
		for it.front < it.back {
			index := it.front
			v, _ := it.Next()
			if !yield(index, v) {
				return
			}
		}
	}
}

// Backward returns a sequence of (index, value) pairs over span in descending order.
func (rv *RangeVec[T]) Backward(span Span) iter.Seq2[uint64, T] {
	return func(yield func(uint64, T) bool) {
		it := rv.Iter(span)
		for it.front < it.back {
			v, _ := it.NextBack()
			if !yield(it.back, v) {
				return
			}
		}
	}
}

// Values returns a sequence of the values over span in ascending order.
func (rv *RangeVec[T]) Values(span Span) iter.Seq[T] {
	return func(yield func(T) bool) {
		it := rv.Iter(span)
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Collect returns the values over span as a new slice. Intended for small spans.
func (rv *RangeVec[T]) Collect(span Span) []T {
	return slices.Collect(rv.Values(span))
}
