package rangevec

// --------------------------------------------------------------------------
// Closure based mutation
// --------------------------------------------------------------------------

// The value after a mutation decides whether the buffer grows or shrinks, so all
// mutable access goes through callbacks. The callbacks must not retain the
// pointers or slices they receive, and must not access the RangeVec itself.

// Mutate calls f with a pointer to the value at index.
//
// Inside the stored range f mutates the stored value in place and the buffer is
// shrunk if a boundary became the default item. Outside the stored range f
// receives a fresh default value, which is only stored if it differs from the
// default item after f returns.
func (rv *RangeVec[T]) Mutate(index uint64, f func(v *T)) {
	MutateResult(rv, index, func(v *T) struct{} {
		f(v)
		return struct{}{}
	})
}

// MutateResult works like RangeVec.Mutate and returns whatever f returns.
func MutateResult[T, R any](rv *RangeVec[T], index uint64, f func(v *T) R) R {
	if p, ok := rv.position(index); ok {
		ret := f(rv.data.Ptr(p))
		rv.shrink(index)
		return ret
	}

	value := rv.newDefault()
	ret := f(&value)
	rv.growAndSet(index, value)
	return ret
}

// MutateRange calls f for every index in span, in ascending order, with the
// same in-range / out-of-range semantics as Mutate. The buffer is shrunk once at
// the end instead of after every element. An empty span is a no-op.
func (rv *RangeVec[T]) MutateRange(span Span, f func(index uint64, v *T)) {
	if span.IsEmpty() {
		return
	}

	for i := span.Start; i < span.End; i++ {
		if p, ok := rv.position(i); ok {
			f(i, rv.data.Ptr(p))
			continue
		}
		value := rv.newDefault()
		f(i, &value)
		rv.growAndSet(i, value)
	}

	rv.shrinkAll()
}

// MutateNonDefault calls f for every stored value that differs from the default
// item, in ascending index order. Indices holding the default item are never
// visited. The buffer is shrunk once at the end.
func (rv *RangeVec[T]) MutateNonDefault(f func(index uint64, v *T)) {
	n := rv.data.Len()
	if n == 0 {
		return
	}

	for p := 0; p < n; p++ {
		v := rv.data.Ptr(p)
		if rv.isNonDefault(*v) {
			f(rv.offset+uint64(p), v)
		}
	}

	rv.shrinkAll()
}

// --------------------------------------------------------------------------
// Slice access
// --------------------------------------------------------------------------

// WithSegments grows the buffer to cover span and calls f with the stored values
// for span. Because the buffer is a ring buffer the values may be split into two
// slices; if they are not, second is empty. If only one slice is non-empty it is
// always passed as first. The buffer is shrunk afterwards, so f may leave
// default values anywhere.
//
// An empty span calls f with two empty slices and does not touch the buffer.
func (rv *RangeVec[T]) WithSegments(span Span, f func(first, second []T)) {
	if span.IsEmpty() {
		f(nil, nil)
		return
	}

	rv.growToInclude(span.Start)
	rv.growToInclude(span.End - 1)

	left, right := rv.data.Slices()
	start := span.Start - rv.offset
	end := span.End - rv.offset
	split := uint64(len(left))

	// clip both physical segments to the span
	first := left[min(start, split):min(end, split)]
	second := right[max(start, split)-split : max(end, split)-split]
	if len(first) == 0 {
		first, second = second, first
	}

	f(first, second)
	rv.shrinkAll()
}

// WithContiguous grows the buffer to cover span and calls f with the stored
// values for span as one slice. If the values are split across the end of the
// ring buffer, the buffer is rearranged in place first (linear time). The buffer
// is shrunk afterwards.
//
// An empty span calls f with an empty slice and does not touch the buffer.
func (rv *RangeVec[T]) WithContiguous(span Span, f func(s []T)) {
	if span.IsEmpty() {
		f(nil)
		return
	}

	rv.growToInclude(span.Start)
	rv.growToInclude(span.End - 1)

	left, right := rv.data.Slices()
	start := int(span.Start - rv.offset)
	end := int(span.End - rv.offset)
	split := len(left)

	switch {
	case end <= split:
		f(left[start:end])
	case start >= split:
		f(right[start-split : end-split])
	default:
		f(rv.data.MakeContiguous()[start:end])
	}

	rv.shrinkAll()
}
