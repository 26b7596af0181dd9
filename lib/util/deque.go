// Package util
//
// This file provides a growable double-ended queue backed by a ring buffer.
//
// The logical content of the deque always occupies one or two physically
// contiguous runs of the backing slice (see Slices). Pushing and popping at
// either end is amortized O(1); random access by logical position is O(1).
//
// Key properties:
//   - The zero value is an empty deque and allocates nothing until the first push
//   - Capacity doubles on growth (minimum 4 slots), the content is never shifted on push
//   - Removed slots are zeroed so that they do not keep referenced memory alive
//   - MakeContiguous rotates the ring in place instead of allocating a new buffer
//
// Concurrency Considerations:
//   - This implementation is not thread-safe
//   - For concurrent use, external synchronization should be applied
package util

import (
	"fmt"
	"slices"
)

const minDequeCap = 4

// Deque is a double-ended queue on top of a ring buffer.
//
// Invariants:
//   - 0 <= head < len(buf) whenever len(buf) > 0
//   - size <= len(buf)
//   - logical element i lives at buf[(head+i) % len(buf)]
type Deque[T any] struct {
	buf  []T
	head int
	size int
}

// NewDeque creates an empty deque with room for at least capacity elements.
// A capacity <= 0 creates a deque that allocates on the first push.
func NewDeque[T any](capacity int) *Deque[T] {
	d := &Deque[T]{}
	if capacity > 0 {
		d.buf = make([]T, capacity)
	}
	return d
}

// Len returns the number of elements in the deque.
func (d *Deque[T]) Len() int {
	return d.size
}

// Cap returns the number of elements the deque can hold without reallocating.
func (d *Deque[T]) Cap() int {
	return len(d.buf)
}

// physical maps a logical position to an index into buf
func (d *Deque[T]) physical(i int) int {
	p := d.head + i
	if p >= len(d.buf) {
		p -= len(d.buf)
	}
	return p
}

// checkIndex panics like a slice access would for out-of-range positions
func (d *Deque[T]) checkIndex(i int) {
	if i < 0 || i >= d.size {
		panic(fmt.Sprintf("util: deque index %d out of range [0:%d]", i, d.size))
	}
}

// Reserve makes sure that at least additional more elements fit without reallocating.
func (d *Deque[T]) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	need := d.size + additional
	if need < d.size {
		panic("util: deque capacity overflow")
	}
	if need <= len(d.buf) {
		return
	}
	newCap := max(len(d.buf)*2, minDequeCap)
	for newCap < need {
		if newCap > maxInt/2 {
			newCap = need
			break
		}
		newCap *= 2
	}
	d.resize(newCap)
}

// resize moves the content into a new buffer of the given capacity (>= size)
func (d *Deque[T]) resize(capacity int) {
	newBuf := make([]T, capacity)
	first, second := d.Slices()
	n := copy(newBuf, first)
	copy(newBuf[n:], second)
	d.buf = newBuf
	d.head = 0
}

// grow makes room for exactly one more element
func (d *Deque[T]) grow() {
	if d.size == len(d.buf) {
		d.resize(max(len(d.buf)*2, minDequeCap))
	}
}

// PushBack appends v at the back.
func (d *Deque[T]) PushBack(v T) {
	d.grow()
	d.buf[d.physical(d.size)] = v
	d.size++
}

// PushFront prepends v at the front.
func (d *Deque[T]) PushFront(v T) {
	d.grow()
	d.head--
	if d.head < 0 {
		d.head = len(d.buf) - 1
	}
	d.buf[d.head] = v
	d.size++
}

// PopFront removes and returns the first element.
// Returns false if the deque is empty.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.size == 0 {
		return zero, false
	}
	v := d.buf[d.head]
	d.buf[d.head] = zero
	d.head = d.physical(1)
	d.size--
	return v, true
}

// PopBack removes and returns the last element.
// Returns false if the deque is empty.
func (d *Deque[T]) PopBack() (T, bool) {
	var zero T
	if d.size == 0 {
		return zero, false
	}
	p := d.physical(d.size - 1)
	v := d.buf[p]
	d.buf[p] = zero
	d.size--
	return v, true
}

// At returns the element at logical position i. It panics if i is out of range.
func (d *Deque[T]) At(i int) T {
	d.checkIndex(i)
	return d.buf[d.physical(i)]
}

// Ptr returns a pointer to the element at logical position i.
// The pointer is only valid until the next operation that changes the capacity
// or the layout of the deque (push, reserve, MakeContiguous).
func (d *Deque[T]) Ptr(i int) *T {
	d.checkIndex(i)
	return &d.buf[d.physical(i)]
}

// Set overwrites the element at logical position i.
func (d *Deque[T]) Set(i int, v T) {
	d.checkIndex(i)
	d.buf[d.physical(i)] = v
}

// DropFront removes the first n elements (all of them if n >= Len).
func (d *Deque[T]) DropFront(n int) {
	if n <= 0 {
		return
	}
	if n >= d.size {
		d.Clear()
		return
	}
	first, second := d.Slices()
	if n <= len(first) {
		clear(first[:n])
	} else {
		clear(first)
		clear(second[:n-len(first)])
	}
	d.head = d.physical(n)
	d.size -= n
}

// Truncate keeps the first n elements and removes the rest.
func (d *Deque[T]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= d.size {
		return
	}
	first, second := d.Slices()
	if n <= len(first) {
		clear(first[n:])
		clear(second)
	} else {
		clear(second[n-len(first):])
	}
	d.size = n
}

// Clear removes all elements but keeps the allocated buffer.
func (d *Deque[T]) Clear() {
	first, second := d.Slices()
	clear(first)
	clear(second)
	d.head = 0
	d.size = 0
}

// Slices returns the content of the deque as (at most) two physically
// contiguous runs of the backing buffer, in logical order. If the content
// does not wrap around, the second slice is empty.
//
// The slices alias the deque, writes through them are visible in the deque.
func (d *Deque[T]) Slices() ([]T, []T) {
	if d.size == 0 {
		return nil, nil
	}
	end := d.head + d.size
	if end <= len(d.buf) {
		return d.buf[d.head:end], d.buf[:0]
	}
	return d.buf[d.head:], d.buf[:end-len(d.buf)]
}

// MakeContiguous rearranges the backing buffer so that the content is one
// contiguous run and returns it. The ring is rotated in place (three
// reversals), no memory is allocated.
func (d *Deque[T]) MakeContiguous() []T {
	if d.size == 0 {
		return d.buf[:0]
	}
	if d.head+d.size <= len(d.buf) {
		return d.buf[d.head : d.head+d.size]
	}
	// rotate left by head, the unused gap ends up behind the content
	slices.Reverse(d.buf[:d.head])
	slices.Reverse(d.buf[d.head:])
	slices.Reverse(d.buf)
	d.head = 0
	return d.buf[:d.size]
}

// IndexFunc returns the logical position of the first element satisfying f, or -1.
func (d *Deque[T]) IndexFunc(f func(T) bool) int {
	first, second := d.Slices()
	if i := slices.IndexFunc(first, f); i >= 0 {
		return i
	}
	if i := slices.IndexFunc(second, f); i >= 0 {
		return len(first) + i
	}
	return -1
}

// LastIndexFunc returns the logical position of the last element satisfying f, or -1.
func (d *Deque[T]) LastIndexFunc(f func(T) bool) int {
	first, second := d.Slices()
	for i := len(second) - 1; i >= 0; i-- {
		if f(second[i]) {
			return len(first) + i
		}
	}
	for i := len(first) - 1; i >= 0; i-- {
		if f(first[i]) {
			return i
		}
	}
	return -1
}

// Clone returns a copy of the deque with the same logical content.
// Elements are copied by assignment.
func (d *Deque[T]) Clone() *Deque[T] {
	c := &Deque[T]{}
	if d.size > 0 {
		c.buf = make([]T, len(d.buf))
		first, second := d.Slices()
		n := copy(c.buf, first)
		copy(c.buf[n:], second)
		c.size = d.size
	}
	return c
}

// ToSlice returns a newly allocated slice with the content in logical order.
func (d *Deque[T]) ToSlice() []T {
	out := make([]T, d.size)
	first, second := d.Slices()
	n := copy(out, first)
	copy(out[n:], second)
	return out
}

const maxInt = int(^uint(0) >> 1)
