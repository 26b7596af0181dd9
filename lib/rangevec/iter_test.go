package rangevec

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestIter consumes an iterator from both ends
func TestIter(t *testing.T) {
	rv := New[uint8]()
	rv.Set(5, 1)
	rv.Set(6, 2)
	rv.Set(7, 3)

	span, _ := rv.Range()
	require.Equal(t, NewSpan(5, 8), span)

	it := rv.Iter(NewSpan(3, 9))
	require.Equal(t, uint64(6), it.Remaining())

	next := func() uint8 {
		v, ok := it.Next()
		require.True(t, ok)
		return v
	}
	nextBack := func() uint8 {
		v, ok := it.NextBack()
		require.True(t, ok)
		return v
	}

	require.Equal(t, uint8(0), next())
	require.Equal(t, uint8(0), next())
	require.Equal(t, uint8(1), next())
	require.Equal(t, uint8(0), nextBack())
	require.Equal(t, uint8(3), nextBack())
	require.Equal(t, uint64(1), it.Remaining())
	require.Equal(t, uint8(2), next())

	_, ok := it.Next()
	require.False(t, ok)
	_, ok = it.Next()
	require.False(t, ok)
	_, ok = it.NextBack()
	require.False(t, ok)
	require.Equal(t, uint64(0), it.Remaining())
}

// TestIterCollect checks the values of a span overlapping the stored range
func TestIterCollect(t *testing.T) {
	rv := New[uint8]()
	rv.Set(5, 1)
	rv.Set(6, 2)
	rv.Set(7, 3)
	require.Equal(t, []uint8{0, 0, 1, 2, 3, 0}, rv.Collect(NewSpan(3, 9)))
	require.Equal(t, []uint8{0, 0}, rv.Collect(NewSpan(100, 102)))
	require.Empty(t, rv.Collect(NewSpan(9, 3)))
}

// TestIterWrapped reads across both ring segments
func TestIterWrapped(t *testing.T) {
	rv := wrappedRangeVec()
	require.Equal(t, []int{0, 5, 6, 7, 8, -1, 0}, rv.Collect(NewSpan(4, 11)))
}

// TestIterReverse compares backward iteration with the reversed forward result
func TestIterReverse(t *testing.T) {
	rv := wrappedRangeVec()
	for _, span := range []Span{NewSpan(0, 12), NewSpan(6, 8), NewSpan(7, 7), NewSpan(20, 23)} {
		forward := rv.Collect(span)
		slices.Reverse(forward)

		var backward []int
		it := rv.Iter(span)
		for v, ok := it.NextBack(); ok; v, ok = it.NextBack() {
			backward = append(backward, v)
		}
		require.Equal(t, forward, backward, span.String())
	}
}

// TestIterSeq checks the range-over-func adapters
func TestIterSeq(t *testing.T) {
	rv := wrappedRangeVec()

	var indices []uint64
	var values []int
	for i, v := range rv.All(NewSpan(8, 11)) {
		indices = append(indices, i)
		values = append(values, v)
	}
	require.Equal(t, []uint64{8, 9, 10}, indices)
	require.Equal(t, []int{8, -1, 0}, values)

	indices, values = nil, nil
	for i, v := range rv.Backward(NewSpan(4, 7)) {
		indices = append(indices, i)
		values = append(values, v)
	}
	require.Equal(t, []uint64{6, 5, 4}, indices)
	require.Equal(t, []int{6, 5, 0}, values)

	// early break
	count := 0
	for range rv.Values(Full()) {
		count++
		if count == 3 {
			break
		}
	}
	require.Equal(t, 3, count)
}

// TestIterLargeSpan verifies that the remaining length does not depend on the
// stored range
func TestIterLargeSpan(t *testing.T) {
	rv := New[int]()
	rv.Set(10, 1)

	it := rv.Iter(Full())
	require.Equal(t, uint64(math.MaxUint64), it.Remaining())

	v, ok := it.NextBack()
	require.True(t, ok)
	require.Equal(t, 0, v)
	require.Equal(t, uint64(math.MaxUint64-1), it.Remaining())
}

// TestSpan checks span construction and normalisation
func TestSpan(t *testing.T) {
	require.Equal(t, Span{Start: 3, End: 7}, NewSpan(3, 7))
	require.True(t, NewSpan(7, 3).IsEmpty())
	require.Equal(t, uint64(7), NewSpan(7, 3).Start)
	require.Equal(t, uint64(0), NewSpan(7, 3).Len())

	require.Equal(t, NewSpan(3, 8), Inclusive(3, 7))
	require.Equal(t, From(3), Inclusive(3, math.MaxUint64))
	require.True(t, Inclusive(5, 4).IsEmpty())

	require.Equal(t, NewSpan(0, 4), To(4))
	require.Equal(t, uint64(math.MaxUint64), Full().Len())

	require.True(t, NewSpan(3, 5).Contains(3))
	require.False(t, NewSpan(3, 5).Contains(5))
	require.Equal(t, "3..5", NewSpan(3, 5).String())
}
