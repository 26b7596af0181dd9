package rangevec

import (
	"fmt"
	"math"
)

// Span is a half-open index interval [Start, End).
//
// A span with Start >= End is empty. The constructors never produce a span
// with Start > End: open-ended and reversed bounds are normalised instead of
// being reported as errors.
type Span struct {
	Start uint64
	End   uint64
}

// NewSpan returns [start, end). A reversed span (start > end) becomes the
// empty span [start, start).
func NewSpan(start, end uint64) Span {
	if end < start {
		end = start
	}
	return Span{Start: start, End: end}
}

// Inclusive returns [start, last+1). The end saturates at math.MaxUint64, so
// Inclusive(x, math.MaxUint64) equals From(x).
func Inclusive(start, last uint64) Span {
	if last < start {
		return Span{Start: start, End: start}
	}
	if last == math.MaxUint64 {
		return Span{Start: start, End: math.MaxUint64}
	}
	return Span{Start: start, End: last + 1}
}

// From returns [start, math.MaxUint64).
func From(start uint64) Span {
	return Span{Start: start, End: math.MaxUint64}
}

// To returns [0, end).
func To(end uint64) Span {
	return Span{Start: 0, End: end}
}

// Full returns [0, math.MaxUint64).
func Full() Span {
	return Span{Start: 0, End: math.MaxUint64}
}

// IsEmpty reports whether the span contains no index.
func (s Span) IsEmpty() bool {
	return s.Start >= s.End
}

// Len returns the number of indices in the span.
func (s Span) Len() uint64 {
	if s.IsEmpty() {
		return 0
	}
	return s.End - s.Start
}

// Contains reports whether index lies within the span.
func (s Span) Contains(index uint64) bool {
	return index >= s.Start && index < s.End
}

// String renders the span as "start..end".
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
