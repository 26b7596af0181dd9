// Package testing provides a standardised test suite and benchmarks for
// rangevec.RangeVec.
//
// The package contains:
//   - testing: A test suite that compares a RangeVec against a simple map based
//     model after every operation, including randomised operation sequences
//   - benchmark: Performance tests for the common access patterns (scrolling
//     writes, scattered writes, reads, bulk mutation, iteration, slice access)
//
// The suite only relies on rv.Default(), so it can be used for RangeVecs with
// any default item. The benchmarks are also used by the perf command.
//
// Example usage:
//
//	factory := func() *rangevec.RangeVec[int64] {
//		return rangevec.NewFunc(func() int64 { return -1 }, func(a, b int64) bool { return a == b })
//	}
//
//	// Running the standard test suite
//	testing.RunRangeVecTests(t, "MinusOneDefault", factory)
//
//	// Running performance benchmarks over a window of 1024 indices
//	testing.RunRangeVecBenchmarks(b, "MinusOneDefault", factory, 1024)
package testing
