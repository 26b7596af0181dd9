// Package util
//
// This file implements summary statistics and a size histogram for range sizes.
// The histogram uses exponential bucket sizing (powers of four) so that both tiny
// covering ranges and ranges of millions of elements are tracked with a fixed,
// small amount of memory.
//
// Key features include:
//   - Stats: mean, standard deviation and min/max over a sample slice
//   - SizeHistogram: thread-safe streaming histogram with median and percentile estimates
package util

import (
	"math"
	"sync"
)

// ----------------------------------------------------------------------------
// Stats
// ----------------------------------------------------------------------------

type Stats struct {
	Count        int     `json:"count"`
	StdDeviation float64 `json:"std_deviation"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
}

// NewStats computes count, mean, standard deviation (population formula),
// minimum and maximum of the given values.
func NewStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	minV, maxV := values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	mean := sum / float64(len(values))

	var sumSquaredDiffs float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiffs += diff * diff
	}

	return Stats{
		Count:        len(values),
		StdDeviation: math.Sqrt(sumSquaredDiffs / float64(len(values))),
		Min:          minV,
		Max:          maxV,
		Mean:         mean,
	}
}

// ----------------------------------------------------------------------------
// SizeHistogram
// ----------------------------------------------------------------------------

// sizeBoundaries are the inclusive upper bounds of the histogram buckets (in elements)
var sizeBoundaries = []int{
	0, 1, 4, 16, 64, 256, // empty to a few hundred elements
	1 << 10, 1 << 12, 1 << 14, 1 << 16, // up to 64Ki elements
	1 << 18, 1 << 20, 1 << 22, 1 << 24, // up to 16Mi elements
}

// SizeHistogram tracks the distribution of range sizes.
// Values above the last boundary are collected in an overflow bucket.
type SizeHistogram struct {
	mutex   sync.RWMutex
	buckets []int64
	count   int64
	sum     int64
	max     int
}

// NewSizeHistogram creates an empty histogram
func NewSizeHistogram() *SizeHistogram {
	return &SizeHistogram{
		buckets: make([]int64, len(sizeBoundaries)+1),
	}
}

// AddSample records one size
//
// Thread-safe: This method is safe for concurrent use
func (h *SizeHistogram) AddSample(size int) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	bucket := len(sizeBoundaries)
	for i, boundary := range sizeBoundaries {
		if size <= boundary {
			bucket = i
			break
		}
	}

	h.buckets[bucket]++
	h.count++
	h.sum += int64(size)
	h.max = max(h.max, size)
}

// Count returns the total number of samples
//
// Thread-safe: This method is safe for concurrent use
func (h *SizeHistogram) Count() int64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.count
}

// Average returns the mean of all samples
//
// Thread-safe: This method is safe for concurrent use
func (h *SizeHistogram) Average() float64 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if h.count == 0 {
		return 0
	}
	return float64(h.sum) / float64(h.count)
}

// Percentile estimates the given percentile (0-100). The estimate is the upper
// bound of the bucket containing the percentile, clipped to the largest sample.
//
// Thread-safe: This method is safe for concurrent use
func (h *SizeHistogram) Percentile(percentile float64) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if h.count == 0 || percentile < 0 || percentile > 100 {
		return 0
	}

	target := int64(math.Ceil(float64(h.count) * percentile / 100.0))
	if target == 0 {
		target = 1
	}

	var cumulative int64
	for i, n := range h.buckets {
		cumulative += n
		if cumulative >= target {
			if i < len(sizeBoundaries) {
				return min(sizeBoundaries[i], h.max)
			}
			return h.max
		}
	}
	return h.max
}

// Median estimates the 50th percentile
//
// Thread-safe: This method is safe for concurrent use
func (h *SizeHistogram) Median() int {
	return h.Percentile(50)
}

// Reset clears all samples
//
// Thread-safe: This method is safe for concurrent use
func (h *SizeHistogram) Reset() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	clear(h.buckets)
	h.count = 0
	h.sum = 0
	h.max = 0
}
