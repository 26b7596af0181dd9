// Package util provides the generic building blocks used by the rangevec
// packages.
//
// The package contains:
//   - deque: A growable double-ended queue on top of a ring buffer, exposing its
//     (at most two) physical segments and an in-place MakeContiguous
//   - statistics: Summary statistics (Stats) and a thread-safe SizeHistogram for
//     tracking the distribution of range sizes
//
// This package is particularly useful for:
//   - Containers that need amortized O(1) growth at both ends without shifting content
//   - Monitoring code that reports on many containers without keeping every sample
//
// None of the containers in this package are safe for concurrent use unless stated
// otherwise on the type.
package util
