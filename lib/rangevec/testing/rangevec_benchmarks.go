package testing

import (
	"math/rand"
	"testing"

	"github.com/ValentinKolb/rangevec/lib/rangevec"
)

// BenchmarkFunc benchmarks a single operation on rv. width is the number of
// consecutive indices the benchmark works on.
type BenchmarkFunc func(b *testing.B, rv *rangevec.RangeVec[int64], width uint64)

// NamedBenchmark is a benchmark together with its (command line) name
type NamedBenchmark struct {
	Name string
	Run  BenchmarkFunc
}

// Benchmarks lists all available benchmarks in the order they are run
var Benchmarks = []NamedBenchmark{
	{Name: "set-scroll", Run: benchmarkSetScrolling},
	{Name: "set-scatter", Run: benchmarkSetScatter},
	{Name: "get", Run: benchmarkGet},
	{Name: "mutate", Run: benchmarkMutate},
	{Name: "mutate-range", Run: benchmarkMutateRange},
	{Name: "iter", Run: benchmarkIter},
	{Name: "segments", Run: benchmarkSegments},
	{Name: "contiguous", Run: benchmarkContiguous},
}

// RunRangeVecBenchmarks runs all benchmarks against RangeVecs created by factory
func RunRangeVecBenchmarks(b *testing.B, name string, factory Factory, width uint64) {
	b.Run(name, func(b *testing.B) {
		for _, bm := range Benchmarks {
			b.Run(bm.Name, func(b *testing.B) {
				bm.Run(b, factory(), width)
			})
		}
	})
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// fill writes a non-default value to every index of [start, start+width)
func fill(rv *rangevec.RangeVec[int64], start, width uint64) {
	d := rv.Default()
	rv.MutateRange(rangevec.NewSpan(start, start+width), func(i uint64, v *int64) {
		*v = d + int64(i%7) + 1
	})
}

// fillWrapped fills [width, 2*width) back to front, so that the stored values
// wrap around the end of the ring buffer
func fillWrapped(rv *rangevec.RangeVec[int64], width uint64) {
	d := rv.Default()
	for i := 2 * width; i > width; i-- {
		rv.Set(i-1, d+1)
	}
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

// Benchmark for a window of width values scrolling to the right
func benchmarkSetScrolling(b *testing.B, rv *rangevec.RangeVec[int64], width uint64) {
	d := rv.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		index := uint64(i)
		rv.Set(index, d+1)
		if index >= width {
			rv.Reset(index - width)
		}
	}
}

// Benchmark for Set at random indices
func benchmarkSetScatter(b *testing.B, rv *rangevec.RangeVec[int64], width uint64) {
	d := rv.Default()
	r := rand.New(rand.NewSource(1))
	indices := make([]uint64, 1024)
	for i := range indices {
		indices[i] = uint64(r.Int63n(int64(width)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rv.Set(indices[i%len(indices)], d+int64(i%3))
	}
}

// Benchmark for Get inside and outside the stored range
func benchmarkGet(b *testing.B, rv *rangevec.RangeVec[int64], width uint64) {
	fill(rv, width, width)

	var sink int64
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sink += rv.Get(uint64(i) % (3 * width))
	}
	_ = sink
}

// Benchmark for Mutate toggling a value inside the stored range
func benchmarkMutate(b *testing.B, rv *rangevec.RangeVec[int64], width uint64) {
	fill(rv, 0, width)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rv.Mutate(uint64(i)%width, func(v *int64) { *v ^= 1 << 8 })
	}
}

// Benchmark for MutateRange over the whole window
func benchmarkMutateRange(b *testing.B, rv *rangevec.RangeVec[int64], width uint64) {
	span := rangevec.NewSpan(0, width)
	fill(rv, 0, width)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rv.MutateRange(span, func(_ uint64, v *int64) { *v ^= 1 << 8 })
	}
}

// Benchmark for iterating a span twice as large as the stored range
func benchmarkIter(b *testing.B, rv *rangevec.RangeVec[int64], width uint64) {
	span := rangevec.NewSpan(0, 2*width)
	fill(rv, width/2, width)

	var sink int64
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for v := range rv.Values(span) {
			sink += v
		}
	}
	_ = sink
}

// Benchmark for WithSegments on a wrapped buffer
func benchmarkSegments(b *testing.B, rv *rangevec.RangeVec[int64], width uint64) {
	span := rangevec.NewSpan(width, 2*width)
	fillWrapped(rv, width)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rv.WithSegments(span, func(first, second []int64) {
			for k := range first {
				first[k] ^= 1 << 8
			}
			for k := range second {
				second[k] ^= 1 << 8
			}
		})
	}
}

// Benchmark for WithContiguous on a buffer that is wrapped before every call
func benchmarkContiguous(b *testing.B, rv *rangevec.RangeVec[int64], width uint64) {
	span := rangevec.NewSpan(width, 2*width)
	d := rv.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		rv.Clear()
		fillWrapped(rv, width)
		b.StartTimer()

		rv.WithContiguous(span, func(s []int64) {
			for k := range s {
				s[k] = d + 2
			}
		})
	}
}
