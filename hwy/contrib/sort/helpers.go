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

import "github.com/capnhook/capnhook/hwy"

// Helper functions for sorting that are shared across all implementations.

// InsertionSortSmall is a simple insertion sort for small arrays.
func InsertionSortSmall[T hwy.Lanes](data []T) {
	for i := 1; i < len(data); i++ {
		key := data[i]
		j := i - 1
		for j >= 0 && data[j] > key {
			data[j+1] = data[j]
			j--
		}
		data[j+1] = key
	}
}

// PivotMedianOf3 selects pivot as median of first, middle, and last elements.
func PivotMedianOf3[T hwy.Lanes](data []T) T {
	n := len(data)
	if n <= 2 {
		return data[0]
	}

	a := data[0]
	b := data[n/2]
	c := data[n-1]

	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
		if a > b {
			b = a
		}
	}
	return b
}

// PivotSampled selects pivot by sampling elements at regular intervals.
// For larger arrays, this gives a better pivot estimate than median-of-3.
func PivotSampled[T hwy.Lanes](data []T) T {
	n := len(data)
	if n <= 8 {
		return PivotMedianOf3(data)
	}

	samples := [5]T{
		data[0],
		data[n/4],
		data[n/2],
		data[3*n/4],
		data[n-1],
	}

	InsertionSortSmall(samples[:])
	return samples[2]
}

// partition3Way performs 3-way partitioning (Dutch National Flag).
// On return data[:lt] < pivot, data[lt:gt] == pivot and data[gt:] > pivot.
func partition3Way[T hwy.Lanes](data []T, pivot T) (lt, gt int) {
	gt = len(data)
	i := 0

	for i < gt {
		if data[i] < pivot {
			data[lt], data[i] = data[i], data[lt]
			lt++
			i++
		} else if data[i] > pivot {
			gt--
			data[i], data[gt] = data[gt], data[i]
		} else {
			i++
		}
	}

	return lt, gt
}

// IsSorted reports whether data is in ascending order.
func IsSorted[T hwy.Lanes](data []T) bool {
	for i := 1; i < len(data); i++ {
		if data[i] < data[i-1] {
			return false
		}
	}
	return true
}
