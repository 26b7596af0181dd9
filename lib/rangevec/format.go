package rangevec

import (
	"fmt"
	"strings"
)

// String renders the stored range and the stored values, e.g.
// "RangeVec { range: 5..10, data: [1, 0, 2, 0, 3] }", or "RangeVec { <empty> }".
func (rv *RangeVec[T]) String() string {
	span, ok := rv.Range()
	if !ok {
		return "RangeVec { <empty> }"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "RangeVec { range: %s, data: [", span)
	first, second := rv.data.Slices()
	for i, v := range first {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, v)
	}
	for _, v := range second {
		sb.WriteString(", ")
		fmt.Fprint(&sb, v)
	}
	sb.WriteString("] }")
	return sb.String()
}

// Clone returns an independent copy. Values are copied by assignment, so
// reference types inside T are shared between the copies.
func (rv *RangeVec[T]) Clone() *RangeVec[T] {
	return &RangeVec[T]{
		data:        rv.data.Clone(),
		offset:      rv.offset,
		defaultItem: rv.defaultItem,
		newDefault:  rv.newDefault,
		equal:       rv.equal,
	}
}

// Equal reports whether both RangeVecs have the same default item and hold the
// same values at every index. The equality function of rv is used.
func (rv *RangeVec[T]) Equal(other *RangeVec[T]) bool {
	if !rv.equal(rv.defaultItem, other.defaultItem) {
		return false
	}

	span, ok := rv.Range()
	otherSpan, otherOk := other.Range()
	if ok != otherOk || span != otherSpan {
		return false
	}

	for p := 0; p < rv.data.Len(); p++ {
		if !rv.equal(rv.data.At(p), other.data.At(p)) {
			return false
		}
	}
	return true
}
