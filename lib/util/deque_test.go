package util

import (
	"slices"
	"testing"
)

// fillWrapped builds a deque whose content wraps around the end of the backing buffer
func fillWrapped(t *testing.T) *Deque[int] {
	t.Helper()
	d := NewDeque[int](8)
	for i := 3; i < 7; i++ {
		d.PushBack(i)
	}
	for i := 2; i >= 0; i-- {
		d.PushFront(i)
	}

	first, second := d.Slices()
	if len(second) == 0 {
		t.Fatalf("Expected a wrapped layout, got first=%v second=%v", first, second)
	}
	return d
}

// TestZeroValueDeque tests that the zero value is usable
func TestZeroValueDeque(t *testing.T) {
	var d Deque[int]

	if d.Len() != 0 || d.Cap() != 0 {
		t.Fatalf("Zero deque should be empty without capacity, got len=%d cap=%d", d.Len(), d.Cap())
	}

	first, second := d.Slices()
	if len(first) != 0 || len(second) != 0 {
		t.Errorf("Zero deque should have no segments")
	}

	if _, ok := d.PopFront(); ok {
		t.Error("PopFront on empty deque should fail")
	}
	if _, ok := d.PopBack(); ok {
		t.Error("PopBack on empty deque should fail")
	}

	d.PushBack(1)
	if d.Len() != 1 || d.At(0) != 1 {
		t.Errorf("Expected [1], got %v", d.ToSlice())
	}
	if d.Cap() != minDequeCap {
		t.Errorf("Expected capacity %d after first push, got %d", minDequeCap, d.Cap())
	}
}

// TestPushPopBothEnds tests the basic double-ended operations
func TestPushPopBothEnds(t *testing.T) {
	d := NewDeque[int](0)

	for i := 0; i < 10; i++ {
		d.PushBack(i)
		d.PushFront(-i - 1)
	}

	want := []int{-10, -9, -8, -7, -6, -5, -4, -3, -2, -1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	if got := d.ToSlice(); !slices.Equal(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}

	for i := 0; i < len(want); i++ {
		if d.At(i) != want[i] {
			t.Errorf("At(%d): expected %d, got %d", i, want[i], d.At(i))
		}
	}

	v, ok := d.PopFront()
	if !ok || v != -10 {
		t.Errorf("PopFront: expected -10, got %d (%v)", v, ok)
	}
	v, ok = d.PopBack()
	if !ok || v != 9 {
		t.Errorf("PopBack: expected 9, got %d (%v)", v, ok)
	}
	if d.Len() != len(want)-2 {
		t.Errorf("Expected length %d, got %d", len(want)-2, d.Len())
	}
}

// TestSlicesWrapped tests that a wrapped deque is exposed as two segments in logical order
func TestSlicesWrapped(t *testing.T) {
	d := fillWrapped(t)

	first, second := d.Slices()
	got := append(slices.Clone(first), second...)
	want := []int{0, 1, 2, 3, 4, 5, 6}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	// writes through the segments are visible in the deque
	second[0] = 100
	if d.At(len(first)) != 100 {
		t.Errorf("Write through second segment not visible, got %d", d.At(len(first)))
	}
}

// TestMakeContiguous tests the in-place rotation of a wrapped deque
func TestMakeContiguous(t *testing.T) {
	d := fillWrapped(t)
	capBefore := d.Cap()

	s := d.MakeContiguous()
	want := []int{0, 1, 2, 3, 4, 5, 6}
	if !slices.Equal(s, want) {
		t.Fatalf("Expected %v, got %v", want, s)
	}

	if d.Cap() != capBefore {
		t.Errorf("MakeContiguous should not reallocate, cap %d -> %d", capBefore, d.Cap())
	}

	_, second := d.Slices()
	if len(second) != 0 {
		t.Errorf("Deque should be contiguous, second segment has %d elements", len(second))
	}

	// the deque keeps working after the rotation
	d.PushFront(-1)
	d.PushBack(7)
	want = []int{-1, 0, 1, 2, 3, 4, 5, 6, 7}
	if got := d.ToSlice(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// TestDropFrontAndTruncate tests bulk removal from both ends, also across the wrap point
func TestDropFrontAndTruncate(t *testing.T) {
	d := fillWrapped(t)

	d.DropFront(2)
	want := []int{2, 3, 4, 5, 6}
	if got := d.ToSlice(); !slices.Equal(got, want) {
		t.Fatalf("After DropFront(2): expected %v, got %v", want, got)
	}

	d.Truncate(3)
	want = []int{2, 3, 4}
	if got := d.ToSlice(); !slices.Equal(got, want) {
		t.Fatalf("After Truncate(3): expected %v, got %v", want, got)
	}

	d.Truncate(10)
	if d.Len() != 3 {
		t.Errorf("Truncate beyond length should be a no-op, got len %d", d.Len())
	}

	d.DropFront(10)
	if d.Len() != 0 {
		t.Errorf("DropFront beyond length should empty the deque, got len %d", d.Len())
	}

	// removed slots are zeroed
	for i, v := range d.buf {
		if v != 0 {
			t.Errorf("Slot %d should be zeroed, got %d", i, v)
		}
	}
}

// TestReserve tests that reserving capacity keeps the logical content
func TestReserve(t *testing.T) {
	d := fillWrapped(t)

	d.Reserve(100)
	if d.Cap() < d.Len()+100 {
		t.Errorf("Expected capacity >= %d, got %d", d.Len()+100, d.Cap())
	}

	want := []int{0, 1, 2, 3, 4, 5, 6}
	if got := d.ToSlice(); !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	capBefore := d.Cap()
	for i := 0; i < 100; i++ {
		d.PushFront(i)
	}
	if d.Cap() != capBefore {
		t.Errorf("Pushes within reserved capacity should not reallocate, cap %d -> %d", capBefore, d.Cap())
	}
}

// TestIndexFunc tests searching from both ends across segments
func TestIndexFunc(t *testing.T) {
	d := fillWrapped(t)

	if i := d.IndexFunc(func(v int) bool { return v > 3 }); i != 4 {
		t.Errorf("IndexFunc: expected 4, got %d", i)
	}
	if i := d.LastIndexFunc(func(v int) bool { return v < 3 }); i != 2 {
		t.Errorf("LastIndexFunc: expected 2, got %d", i)
	}
	if i := d.IndexFunc(func(v int) bool { return v > 100 }); i != -1 {
		t.Errorf("IndexFunc without match: expected -1, got %d", i)
	}
	if i := d.LastIndexFunc(func(v int) bool { return v > 100 }); i != -1 {
		t.Errorf("LastIndexFunc without match: expected -1, got %d", i)
	}
}

// TestClone tests that a clone is independent of the original
func TestClone(t *testing.T) {
	d := fillWrapped(t)
	c := d.Clone()

	if !slices.Equal(c.ToSlice(), d.ToSlice()) {
		t.Fatalf("Clone differs: %v vs %v", c.ToSlice(), d.ToSlice())
	}

	c.Set(0, 42)
	if d.At(0) == 42 {
		t.Error("Modifying the clone changed the original")
	}
}

// TestOutOfRangePanics tests that invalid positions panic like slice accesses
func TestOutOfRangePanics(t *testing.T) {
	d := NewDeque[int](0)
	d.PushBack(1)

	for _, i := range []int{-1, 1, 5} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("At(%d) should panic", i)
				}
			}()
			d.At(i)
		}()
	}
}

// BenchmarkPushPop benchmarks alternating pushes and pops at both ends
func BenchmarkPushPop(b *testing.B) {
	d := NewDeque[int](0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.PushBack(i)
		d.PushFront(i)
		if i%2 == 0 {
			d.PopFront()
			d.PopBack()
		}
	}
}
