// Package rangevec implements RangeVec, a sparse, auto-trimming dynamic array.
//
// A RangeVec returns a value for every uint64 index. Almost all indices hold a
// fixed default item; only the smallest contiguous range covering all
// non-default values is stored. It is useful as backing storage for scrolling
// data or for change tracking (e.g. which bytes of an emulated memory changed
// recently), where the interesting values cluster in a small window that moves
// over time.
//
// Key Components:
//
//   - RangeVec: The container. Values are stored in a ring buffer (util.Deque)
//     so that the stored range grows and shrinks at both ends in amortized O(1)
//     per element. After every mutation the stored range is trimmed so that its
//     first and last values are non-default.
//
//   - Span: A half-open index interval [Start, End). Constructors normalise
//     reversed and open-ended bounds to valid spans instead of failing.
//
//   - Iter: A double-ended iterator over any span, synthesising the default item
//     outside the stored range. All, Backward and Values expose the same walk as
//     range-over-func sequences.
//
// Mutation:
//
// Whether the stored range must grow or shrink depends on the value after a
// mutation, so mutable access goes through callbacks:
//   - Set, Reset, Mutate and MutateResult work on a single index and only check
//     the boundary that index may have changed.
//   - MutateRange, MutateNonDefault and Truncate work on many values and trim both
//     ends once at the end.
//   - WithSegments and WithContiguous hand out the stored values of a span as
//     slices. WithSegments avoids moving data by passing the (at most two)
//     physical segments of the ring buffer, WithContiguous rearranges the
//     buffer when the span wraps around.
//
// Because the backing storage is contiguous, a RangeVec is most efficient when
// all non-default values lie close together. For values scattered over a large
// index space use a map instead.
//
// Usage Example:
//
//	rv := rangevec.New[int32]()
//	rv.Set(5, -1)
//	rv.Set(7, 1)
//
//	// increment every value in [5, 9)
//	rv.MutateRange(rangevec.NewSpan(5, 9), func(_ uint64, v *int32) { *v++ })
//
//	span, _ := rv.Range()           // 6..9
//	vals := rv.Collect(span)        // [1 2 1]
//	fmt.Println(rv)                 // RangeVec { range: 6..9, data: [1, 2, 1] }
//
// Thread Safety:
//
//	A RangeVec is not safe for concurrent use. See the registry package for
//	sharing named RangeVecs between goroutines.
package rangevec
