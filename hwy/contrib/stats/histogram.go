// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stats

import (
	"sort"

	"github.com/capnhook/capnhook/hwy"
	"github.com/capnhook/capnhook/hwy/contrib/workerpool"
)

// ValidEdges reports whether edges can define histogram bins: at least two
// edges, non-decreasing, and no NaN.
func ValidEdges[T hwy.Lanes](edges []T) bool {
	if len(edges) < 2 {
		return false
	}
	for i, e := range edges {
		if e != e {
			return false
		}
		if i > 0 && e < edges[i-1] {
			return false
		}
	}
	return true
}

// Histogram counts values into the len(edges)-1 bins defined by edges.
//
// Bin i covers [edges[i], edges[i+1]); the last bin is closed on both ends,
// [edges[k-1], edges[k]]. Values outside [edges[0], edges[k]] and NaN are
// skipped. counts is cleared first and must have at least len(edges)-1
// entries. edges must satisfy ValidEdges.
//
// Example:
//
//	values := []int32{0, 1, 2, 1, 0, 2, 2, 1, 0}
//	edges := []int32{0, 1, 2, 3}
//	counts := make([]uint, 3)
//	Histogram(values, edges, counts)  // counts is now {3, 3, 3}
func Histogram[T hwy.Lanes](values, edges []T, counts []uint) {
	numBins := len(edges) - 1
	clear(counts[:numBins])
	for _, v := range values {
		if b := binIndex(v, edges); b >= 0 {
			counts[b]++
		}
	}
}

// binIndex returns the bin holding v, or -1 if v falls outside the edges or
// is NaN. Lookup is a binary search for the last edge <= v.
func binIndex[T hwy.Lanes](v T, edges []T) int {
	last := len(edges) - 1
	if !(v >= edges[0] && v <= edges[last]) {
		return -1
	}
	b := sort.Search(len(edges), func(i int) bool { return edges[i] > v }) - 1
	return min(b, last-1)
}

// ParallelHistogram is Histogram with values split into fixed chunks of
// chunkSize counted concurrently on pool. Per-chunk counts are summed in
// chunk order into counts.
func ParallelHistogram[T hwy.Lanes](pool *workerpool.Pool, values, edges []T, counts []uint, chunkSize int) {
	numBins := len(edges) - 1
	numChunks := workerpool.NumChunks(len(values), chunkSize)
	if numChunks <= 1 {
		Histogram(values, edges, counts)
		return
	}

	partials := make([]uint, numChunks*numBins)
	pool.ParallelChunks(len(values), chunkSize, func(chunk, start, end int) {
		Histogram(values[start:end], edges, partials[chunk*numBins:(chunk+1)*numBins])
	})

	clear(counts[:numBins])
	for c := range numChunks {
		for b, cnt := range partials[c*numBins : (c+1)*numBins] {
			counts[b] += cnt
		}
	}
}

// HistogramExact counts, for every bins[b], how many values are exactly
// equal to it. counts must have at least len(bins) entries and is
// overwritten. A NaN bin never matches.
//
// Each bin value is broadcast once and compared against whole vectors of
// values; the matching lanes are counted from the comparison mask.
func HistogramExact[T hwy.Lanes](values, bins []T, counts []uint) {
	lanes := hwy.MaxLanes[T]()
	for b, bin := range bins {
		vBin := hwy.Set(bin)
		var cnt int

		var i int
		for i = 0; i+lanes <= len(values); i += lanes {
			cnt += hwy.Equal(hwy.Load(values[i:]), vBin).CountTrue()
		}
		for ; i < len(values); i++ {
			if values[i] == bin {
				cnt++
			}
		}
		counts[b] = uint(cnt)
	}
}
