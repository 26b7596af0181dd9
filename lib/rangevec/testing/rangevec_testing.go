package testing

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/ValentinKolb/rangevec/lib/rangevec"
)

// Factory is a function that creates a new, empty RangeVec
type Factory func() *rangevec.RangeVec[int64]

// RunRangeVecTests runs a comprehensive test suite against RangeVecs created by factory.
// The suite works with any default item, so factories may use rangevec.NewFunc.
func RunRangeVecTests(t *testing.T, name string, factory Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("Reset", func(t *testing.T) {
			testReset(t, factory())
		})

		t.Run("MutateNonDefault", func(t *testing.T) {
			testMutateNonDefault(t, factory())
		})

		t.Run("Truncate", func(t *testing.T) {
			testTruncate(t, factory())
		})

		t.Run("SegmentsEqualContiguous", func(t *testing.T) {
			testSegmentsEqualContiguous(t, factory)
		})

		t.Run("IterReverse", func(t *testing.T) {
			testIterReverse(t, factory())
		})

		t.Run("RandomOperations", func(t *testing.T) {
			testRandomOperations(t, factory(), 0)
		})

		t.Run("RandomOperationsHighIndex", func(t *testing.T) {
			testRandomOperations(t, factory(), 1<<40)
		})
	})
}

// --------------------------------------------------------------------------
// Model
// --------------------------------------------------------------------------

// model is the reference implementation: a map holding only non-default values
type model struct {
	values      map[uint64]int64
	defaultItem int64
}

func newModel(defaultItem int64) *model {
	return &model{values: make(map[uint64]int64), defaultItem: defaultItem}
}

func (m *model) set(index uint64, value int64) {
	if value == m.defaultItem {
		delete(m.values, index)
		return
	}
	m.values[index] = value
}

func (m *model) get(index uint64) int64 {
	if v, ok := m.values[index]; ok {
		return v
	}
	return m.defaultItem
}

func (m *model) span() (rangevec.Span, bool) {
	if len(m.values) == 0 {
		return rangevec.Span{}, false
	}
	first := true
	var lo, hi uint64
	for i := range m.values {
		if first || i < lo {
			lo = i
		}
		if first || i > hi {
			hi = i
		}
		first = false
	}
	return rangevec.NewSpan(lo, hi+1), true
}

// check compares rv with the model for every index of window
func (m *model) check(t *testing.T, rv *rangevec.RangeVec[int64], window rangevec.Span, step int) {
	t.Helper()

	want, wantOk := m.span()
	got, gotOk := rv.Range()
	if wantOk != gotOk || want != got {
		t.Fatalf("step %d: expected range %v (%v), got %v (%v)", step, want, wantOk, got, gotOk)
	}
	if gotOk && uint64(rv.RangeSize()) != got.Len() {
		t.Fatalf("step %d: range size %d does not match range %v", step, rv.RangeSize(), got)
	}
	if rv.IsEmpty() != !gotOk {
		t.Fatalf("step %d: IsEmpty does not match Range", step)
	}

	for i := window.Start; i < window.End; i++ {
		if v := rv.Get(i); v != m.get(i) {
			t.Fatalf("step %d: expected value %d at index %d, got %d", step, m.get(i), i, v)
		}
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, rv *rangevec.RangeVec[int64]) {
	d := rv.Default()

	rv.Set(10, d+1)
	if v := rv.Get(10); v != d+1 {
		t.Errorf("Expected value %d after Set, got %d", d+1, v)
	}
	if v := rv.Get(9); v != d {
		t.Errorf("Expected default %d left of the stored range, got %d", d, v)
	}

	rv.Set(20, d+2)
	if span, _ := rv.Range(); span != rangevec.NewSpan(10, 21) {
		t.Errorf("Expected range 10..21, got %v", span)
	}
	if v := rv.Get(15); v != d {
		t.Errorf("Expected default %d inside the stored range, got %d", d, v)
	}

	rv.Set(10, d)
	if v := rv.Get(10); v != d {
		t.Errorf("Expected default after overwriting with the default, got %d", v)
	}
	if span, _ := rv.Range(); span != rangevec.NewSpan(20, 21) {
		t.Errorf("Expected range 20..21 after clearing the left boundary, got %v", span)
	}

	rv.Set(5, d)
	if span, _ := rv.Range(); span != rangevec.NewSpan(20, 21) {
		t.Errorf("Writing the default outside the range must not grow it, got %v", span)
	}
}

func testReset(t *testing.T, rv *rangevec.RangeVec[int64]) {
	d := rv.Default()
	rv.Set(3, d+1)
	rv.Set(4, d+2)

	rv.Reset(4)
	first := rv.String()
	rv.Reset(4)
	if rv.String() != first {
		t.Errorf("Expected a second reset to have no effect, got %s and %s", first, rv.String())
	}

	rv.Reset(100)
	rv.Reset(3)
	if !rv.IsEmpty() {
		t.Errorf("Expected an empty RangeVec after resetting all values, got %s", rv)
	}
}

func testMutateNonDefault(t *testing.T, rv *rangevec.RangeVec[int64]) {
	d := rv.Default()
	rv.Set(100, d+5)
	rv.Set(104, d+1)

	visited := 0
	rv.MutateNonDefault(func(index uint64, v *int64) {
		visited++
		if *v == d {
			t.Errorf("Visited default value at index %d", index)
		}
		*v--
	})
	if visited != 2 {
		t.Errorf("Expected 2 visited values, got %d", visited)
	}
	if span, _ := rv.Range(); span != rangevec.NewSpan(100, 101) {
		t.Errorf("Expected range 100..101, got %v", span)
	}
}

func testTruncate(t *testing.T, rv *rangevec.RangeVec[int64]) {
	d := rv.Default()
	for i := uint64(0); i < 20; i++ {
		if i%3 == 0 {
			rv.Set(i, d+int64(i)+1)
		}
	}

	rv.Truncate(rangevec.NewSpan(4, 14))
	if span, _ := rv.Range(); span != rangevec.NewSpan(6, 13) {
		t.Errorf("Expected range 6..13 after truncate, got %v", span)
	}
	if v := rv.Get(3); v != d {
		t.Errorf("Expected default at index 3 after truncate, got %d", v)
	}

	rv.Truncate(rangevec.NewSpan(50, 60))
	if !rv.IsEmpty() {
		t.Errorf("Expected an empty RangeVec after truncating to a disjoint span, got %s", rv)
	}
}

func testSegmentsEqualContiguous(t *testing.T, factory Factory) {
	build := func() *rangevec.RangeVec[int64] {
		rv := factory()
		d := rv.Default()
		// growing to the left after the first reallocation wraps the ring
		for i := uint64(40); i < 48; i++ {
			rv.Set(i, d+int64(i))
		}
		for i := uint64(39); i > 30; i-- {
			rv.Set(i, d+int64(i))
		}
		return rv
	}

	for _, span := range []rangevec.Span{
		rangevec.NewSpan(20, 60), rangevec.NewSpan(31, 48), rangevec.NewSpan(35, 45),
		rangevec.NewSpan(0, 10), rangevec.NewSpan(44, 44),
	} {
		var viaSegments, viaContiguous []int64
		build().WithSegments(span, func(first, second []int64) {
			if len(first) == 0 && len(second) > 0 {
				t.Errorf("%v: second segment is set while the first is empty", span)
			}
			viaSegments = append(append(viaSegments, first...), second...)
		})
		build().WithContiguous(span, func(s []int64) {
			viaContiguous = append(viaContiguous, s...)
		})
		if !slices.Equal(viaSegments, viaContiguous) {
			t.Errorf("%v: segments %v differ from contiguous %v", span, viaSegments, viaContiguous)
		}
		if uint64(len(viaSegments)) != span.Len() {
			t.Errorf("%v: expected %d values, got %d", span, span.Len(), len(viaSegments))
		}
	}
}

func testIterReverse(t *testing.T, rv *rangevec.RangeVec[int64]) {
	d := rv.Default()
	rv.Set(7, d+7)
	rv.Set(3, d+3)
	rv.Set(12, d+12)

	for _, span := range []rangevec.Span{
		rangevec.NewSpan(0, 20), rangevec.NewSpan(3, 13), rangevec.NewSpan(5, 5), rangevec.NewSpan(8, 30),
	} {
		forward := rv.Collect(span)
		slices.Reverse(forward)

		var backward []int64
		for _, v := range rv.Backward(span) {
			backward = append(backward, v)
		}
		if !slices.Equal(forward, backward) {
			t.Errorf("%v: reversed forward %v differs from backward %v", span, forward, backward)
		}
	}
}

// testRandomOperations applies random operations within a small window starting
// at base and compares the result with the model after every step.
func testRandomOperations(t *testing.T, rv *rangevec.RangeVec[int64], base uint64) {
	const (
		windowSize = 64
		steps      = 2000
	)

	r := rand.New(rand.NewSource(42))
	d := rv.Default()
	m := newModel(d)
	window := rangevec.NewSpan(base, base+windowSize)

	randIndex := func() uint64 { return base + uint64(r.Intn(windowSize)) }
	randValue := func() int64 {
		// default values are frequent on purpose
		if r.Intn(3) == 0 {
			return d
		}
		return d + int64(r.Intn(7)) - 3
	}
	randSpan := func() rangevec.Span {
		a, b := randIndex(), randIndex()
		return rangevec.NewSpan(min(a, b), max(a, b)+1)
	}

	for step := 0; step < steps; step++ {
		switch op := r.Intn(9); op {
		case 0, 1:
			i, v := randIndex(), randValue()
			rv.Set(i, v)
			m.set(i, v)
		case 2:
			i := randIndex()
			rv.Reset(i)
			m.set(i, d)
		case 3:
			i, delta := randIndex(), int64(r.Intn(3))-1
			rv.Mutate(i, func(v *int64) { *v += delta })
			m.set(i, m.get(i)+delta)
		case 4:
			span, v := randSpan(), randValue()
			rv.MutateRange(span, func(_ uint64, x *int64) { *x = v })
			for i := span.Start; i < span.End; i++ {
				m.set(i, v)
			}
		case 5:
			rv.MutateNonDefault(func(_ uint64, x *int64) { *x -= 1 })
			for i, v := range m.values {
				m.set(i, v-1)
			}
		case 6:
			span := randSpan()
			values := make([]int64, span.Len())
			for k := range values {
				values[k] = randValue()
			}
			rv.WithSegments(span, func(first, second []int64) {
				copy(first, values)
				copy(second, values[len(first):])
			})
			for k, v := range values {
				m.set(span.Start+uint64(k), v)
			}
		case 7:
			span := randSpan()
			values := make([]int64, span.Len())
			for k := range values {
				values[k] = randValue()
			}
			rv.WithContiguous(span, func(s []int64) { copy(s, values) })
			for k, v := range values {
				m.set(span.Start+uint64(k), v)
			}
		case 8:
			// truncate rarely, otherwise the RangeVec stays almost empty
			if r.Intn(10) != 0 {
				continue
			}
			span := randSpan()
			rv.Truncate(span)
			for i := range m.values {
				if !span.Contains(i) {
					delete(m.values, i)
				}
			}
		}

		m.check(t, rv, window, step)
	}
}
