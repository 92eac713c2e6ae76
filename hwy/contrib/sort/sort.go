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

package sort

import (
	stdmath "math"

	"github.com/capnhook/capnhook/hwy"
	"github.com/capnhook/capnhook/hwy/contrib/vec"
)

// sortInsertionThreshold: use insertion sort for arrays this size or smaller.
const sortInsertionThreshold = 32

// Sort sorts data in-place in ascending order.
//
// This is an introsort variant that combines:
//   - Insertion sort for small arrays
//   - 3-way quicksort partitioning around a sampled pivot
//   - Heapsort fallback for worst-case guarantee
func Sort[T hwy.Lanes](data []T) {
	if len(data) <= 1 {
		return
	}
	sortImpl(data, depthLimit(len(data)))
}

// depthLimit returns the max recursion depth: 2 * floor(log2(n)).
func depthLimit(n int) int {
	maxDepth := 0
	for tmp := n; tmp > 0; tmp >>= 1 {
		maxDepth++
	}
	return maxDepth * 2
}

// sortImpl is the recursive implementation of Sort.
func sortImpl[T hwy.Lanes](data []T, depthLimit int) {
	n := len(data)

	if n <= sortInsertionThreshold {
		InsertionSortSmall(data)
		return
	}

	// Fallback to heapsort if recursion too deep
	if depthLimit == 0 {
		sortHeap(data)
		return
	}

	pivot := PivotSampled(data)
	lt, gt := partition3Way(data, pivot)

	if lt > 0 {
		sortImpl(data[:lt], depthLimit-1)
	}
	if gt < n {
		sortImpl(data[gt:], depthLimit-1)
	}
}

// sortHeap is heapsort for O(n log n) worst-case guarantee.
func sortHeap[T hwy.Lanes](data []T) {
	n := len(data)

	// Build max-heap
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(data, i, n)
	}

	// Extract elements
	for i := n - 1; i > 0; i-- {
		data[0], data[i] = data[i], data[0]
		siftDown(data, 0, i)
	}
}

func siftDown[T hwy.Lanes](data []T, i, n int) {
	for {
		largest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && data[left] > data[largest] {
			largest = left
		}
		if right < n && data[right] > data[largest] {
			largest = right
		}

		if largest == i {
			break
		}

		data[i], data[largest] = data[largest], data[i]
		i = largest
	}
}

// NthElement rearranges data such that the element at index k
// is the element that would be at that position if data were sorted.
// Elements before k are <= data[k], elements after are >= data[k].
//
// Runs in expected O(n) time.
func NthElement[T hwy.Lanes](data []T, k int) {
	if k < 0 || k >= len(data) {
		return
	}
	nthElementImpl(data, k, depthLimit(len(data)))
}

func nthElementImpl[T hwy.Lanes](data []T, k, depthLimit int) {
	for {
		n := len(data)
		if n <= 1 {
			return
		}
		if depthLimit == 0 || n <= sortInsertionThreshold {
			sortImpl(data, depthLimit)
			return
		}

		pivot := PivotSampled(data)
		lt, gt := partition3Way(data, pivot)

		switch {
		case k < lt:
			data = data[:lt]
		case k >= gt:
			data = data[gt:]
			k -= gt
		default:
			// k is in the equal partition - done
			return
		}
		depthLimit--
	}
}

// Median returns the median of data: the middle element for odd lengths and
// the mean of the two middle elements for even lengths, in float64.
//
// data is not modified; selection runs on a private copy. Returns NaN if
// any element is NaN. Panics if data is empty.
func Median[T hwy.Lanes](data []T) float64 {
	return MedianInPlace(append([]T(nil), data...))
}

// MedianInPlace is Median without the copy: it reorders scratch.
func MedianInPlace[T hwy.Lanes](scratch []T) float64 {
	n := len(scratch)
	if n == 0 {
		panic("sort: Median called on empty slice")
	}
	if hasNaN(scratch) {
		return stdmath.NaN()
	}

	mid := n / 2
	NthElement(scratch, mid)
	upper := float64(scratch[mid])
	if n%2 == 1 {
		return upper
	}
	// Everything before mid is <= scratch[mid]; the lower middle is its max.
	lower := float64(vec.Max(scratch[:mid]))
	return (lower + upper) / 2
}

// hasNaN reports whether a float slice holds a NaN. Integer slices never do.
func hasNaN[T hwy.Lanes](data []T) bool {
	for _, x := range data {
		if x != x {
			return true
		}
	}
	return false
}
