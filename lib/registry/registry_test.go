package registry

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/rangevec/lib/rangevec"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newRegistry() *Registry[int64] {
	return New(rangevec.New[int64])
}

func TestUpdateView(t *testing.T) {
	reg := newRegistry()

	found := reg.View("missing", func(*rangevec.RangeVec[int64]) { t.Fatal("called for a missing name") })
	require.False(t, found)

	reg.Update("a", func(rv *rangevec.RangeVec[int64]) {
		rv.Set(5, 1)
		rv.Set(7, 2)
	})

	var s string
	found = reg.View("a", func(rv *rangevec.RangeVec[int64]) { s = rv.String() })
	require.True(t, found)
	require.Equal(t, "RangeVec { range: 5..8, data: [1, 0, 2] }", s)

	// an update that leaves the RangeVec empty still creates the entry
	reg.Update("b", func(rv *rangevec.RangeVec[int64]) {})
	require.Equal(t, []string{"a", "b"}, reg.Names())
	require.Equal(t, 2, reg.Len())
}

func TestDelete(t *testing.T) {
	reg := newRegistry()
	reg.Update("a", func(rv *rangevec.RangeVec[int64]) { rv.Set(1, 1) })

	require.True(t, reg.Delete("a"))
	require.False(t, reg.Delete("a"))
	require.Equal(t, 0, reg.Len())

	// a deleted name starts over with a fresh RangeVec
	reg.Update("a", func(rv *rangevec.RangeVec[int64]) {
		require.True(t, rv.IsEmpty())
	})
}

func TestInfo(t *testing.T) {
	reg := newRegistry()
	reg.Update("a", func(rv *rangevec.RangeVec[int64]) { rv.Set(0, 1); rv.Set(3, 1) })
	reg.Update("b", func(rv *rangevec.RangeVec[int64]) { rv.Set(9, 1) })
	reg.Update("c", func(rv *rangevec.RangeVec[int64]) {})

	info := reg.Info()
	require.Equal(t, 3, info.Stores)
	require.Equal(t, 1, info.EmptyStores)
	require.Equal(t, int64(3), info.Updates)
	require.Equal(t, float64(4), info.RangeSizes.Max)
	require.Equal(t, float64(0), info.RangeSizes.Min)
	require.InDelta(t, 5.0/3.0, info.RangeSizes.Mean, 1e-9)
	require.Equal(t, 1, info.MedianSize)
	require.Equal(t, 4, info.P99Size)
	require.Contains(t, info.String(), "Stores")
}

func TestConcurrentUpdates(t *testing.T) {
	const (
		workers    = 8
		iterations = 500
	)
	reg := newRegistry()

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			own := fmt.Sprintf("worker-%d", w)
			for i := 0; i < iterations; i++ {
				reg.Update("shared", func(rv *rangevec.RangeVec[int64]) {
					rv.Mutate(100, func(v *int64) { *v++ })
				})
				reg.Update(own, func(rv *rangevec.RangeVec[int64]) {
					rv.Set(uint64(i), int64(i)+1)
				})
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	reg.View("shared", func(rv *rangevec.RangeVec[int64]) {
		require.Equal(t, int64(workers*iterations), rv.Get(100))
	})
	require.Equal(t, workers+1, reg.Len())
	for w := 0; w < workers; w++ {
		reg.View(fmt.Sprintf("worker-%d", w), func(rv *rangevec.RangeVec[int64]) {
			span, _ := rv.Range()
			require.Equal(t, rangevec.NewSpan(0, iterations), span)
		})
	}
}

func TestConcurrentDelete(t *testing.T) {
	reg := newRegistry()

	var g errgroup.Group
	for w := 0; w < 4; w++ {
		g.Go(func() error {
			for i := 0; i < 200; i++ {
				reg.Update("volatile", func(rv *rangevec.RangeVec[int64]) {
					rv.Set(uint64(i), 1)
				})
				if i%10 == w {
					reg.Delete("volatile")
				}
				reg.View("volatile", func(rv *rangevec.RangeVec[int64]) { _ = rv.String() })
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.LessOrEqual(t, reg.Len(), 1)
}
