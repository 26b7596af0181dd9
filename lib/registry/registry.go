package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/ValentinKolb/rangevec/lib/rangevec"
	"github.com/ValentinKolb/rangevec/lib/util"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("registry")

// entry guards a single RangeVec. deleted is set (under mu) once the entry was
// removed from the map, late writers then retry with a fresh entry.
type entry[T any] struct {
	mu      sync.RWMutex
	vec     *rangevec.RangeVec[T]
	deleted bool
}

// Registry is a set of named RangeVecs that can be shared between goroutines.
// Access to a single RangeVec is serialised with a read-write lock, different
// names can be used in parallel.
type Registry[T any] struct {
	entries *xsync.MapOf[string, *entry[T]]
	factory func() *rangevec.RangeVec[T]
	sizes   *util.SizeHistogram // range sizes observed after updates
}

// New creates an empty registry. factory is called whenever a name is used for
// the first time (or again after it was deleted).
func New[T any](factory func() *rangevec.RangeVec[T]) *Registry[T] {
	return &Registry[T]{
		entries: xsync.NewMapOf[string, *entry[T]](),
		factory: factory,
		sizes:   util.NewSizeHistogram(),
	}
}

// Update calls fn with exclusive access to the RangeVec stored under name,
// creating it if necessary. fn must not retain rv after it returns.
func (r *Registry[T]) Update(name string, fn func(rv *rangevec.RangeVec[T])) {
	for {
		e, loaded := r.entries.LoadOrCompute(name, func() *entry[T] {
			return &entry[T]{vec: r.factory()}
		})
		if !loaded {
			Logger.Debugf("created range vec %q", name)
		}

		if size, ok := r.apply(e, fn); ok {
			r.sizes.AddSample(size)
			return
		}
		// lost a race against Delete, retry with a fresh entry
	}
}

// apply runs fn under the write lock of e. Returns false if e was deleted.
func (r *Registry[T]) apply(e *entry[T], fn func(rv *rangevec.RangeVec[T])) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return 0, false
	}
	fn(e.vec)
	return e.vec.RangeSize(), true
}

// View calls fn with shared access to the RangeVec stored under name.
// It returns false (without calling fn) if there is no such RangeVec.
// fn must not mutate rv.
func (r *Registry[T]) View(name string, fn func(rv *rangevec.RangeVec[T])) bool {
	e, ok := r.entries.Load(name)
	if !ok {
		return false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.deleted {
		return false
	}
	fn(e.vec)
	return true
}

// Delete removes the RangeVec stored under name. Returns false if there was none.
func (r *Registry[T]) Delete(name string) bool {
	e, ok := r.entries.LoadAndDelete(name)
	if !ok {
		return false
	}

	e.mu.Lock()
	e.deleted = true
	e.mu.Unlock()

	Logger.Debugf("deleted range vec %q", name)
	return true
}

// Names returns the names of all RangeVecs in lexical order.
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, r.entries.Size())
	r.entries.Range(func(name string, _ *entry[T]) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// Len returns the number of RangeVecs.
func (r *Registry[T]) Len() int {
	return r.entries.Size()
}

// --------------------------------------------------------------------------
// Info
// --------------------------------------------------------------------------

// Info describes the state of a registry.
type Info struct {
	Stores      int        `json:"stores"`
	EmptyStores int        `json:"empty_stores"` // RangeVecs without non-default values
	RangeSizes  util.Stats `json:"range_sizes"`
	Updates     int64      `json:"updates"`
	MedianSize  int        `json:"median_size"` // estimated from the sizes after each update
	P99Size     int        `json:"p99_size"`
}

// Info collects statistics over all RangeVecs. Every RangeVec is locked for
// reading in turn, so the result is not an atomic snapshot.
func (r *Registry[T]) Info() Info {
	var sizes []float64
	empty := 0
	r.entries.Range(func(_ string, e *entry[T]) bool {
		e.mu.RLock()
		if !e.deleted {
			size := e.vec.RangeSize()
			sizes = append(sizes, float64(size))
			if size == 0 {
				empty++
			}
		}
		e.mu.RUnlock()
		return true
	})

	return Info{
		Stores:      len(sizes),
		EmptyStores: empty,
		RangeSizes:  util.NewStats(sizes),
		Updates:     r.sizes.Count(),
		MedianSize:  r.sizes.Median(),
		P99Size:     r.sizes.Percentile(99),
	}
}

// String renders the info in the same layout as the command line configs.
func (i Info) String() string {
	var sb strings.Builder
	sb.WriteString("Registry:\n")
	fmt.Fprintf(&sb, "  %-22s: %d\n", "Stores", i.Stores)
	fmt.Fprintf(&sb, "  %-22s: %d\n", "Empty Stores", i.EmptyStores)
	fmt.Fprintf(&sb, "  %-22s: %.1f (std %.1f, min %.0f, max %.0f)\n", "Range Size",
		i.RangeSizes.Mean, i.RangeSizes.StdDeviation, i.RangeSizes.Min, i.RangeSizes.Max)
	fmt.Fprintf(&sb, "  %-22s: %d\n", "Updates", i.Updates)
	fmt.Fprintf(&sb, "  %-22s: %d / %d\n", "Median / P99 Size", i.MedianSize, i.P99Size)
	return sb.String()
}
