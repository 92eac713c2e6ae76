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

package vec

import (
	"math"

	"github.com/capnhook/capnhook/hwy"
)

// Sum computes the sum of all elements, accumulated in float64.
//
// Returns 0 if the slice is empty.
//
// Example:
//
//	data := []float32{1, 2, 3, 4}
//	result := Sum(data)  // 10
func Sum[T hwy.Lanes](v []T) float64 {
	lanes := hwy.MaxLanes[T]()
	acc := hwy.ZeroF64[T]()

	// Process full vectors
	var i int
	for i = 0; i+lanes <= len(v); i += lanes {
		acc = hwy.Add(acc, hwy.PromoteF64(hwy.Load(v[i:])))
	}

	// Reduce vector sum to scalar
	result := hwy.ReduceSum(acc)

	// Handle tail elements with scalar code
	for ; i < len(v); i++ {
		result += float64(v[i])
	}
	return result
}

// Mean returns the arithmetic mean Sum(v) / len(v).
//
// Panics if the slice is empty.
func Mean[T hwy.Lanes](v []T) float64 {
	if len(v) == 0 {
		panic("vec: Mean called on empty slice")
	}
	return Sum(v) / float64(len(v))
}

// Min returns the minimum value in a slice.
//
// Panics if the slice is empty.
//
// NaN propagates: if any element is NaN the result is NaN.
//
// Example:
//
//	data := []float32{3, 1, 4, 1, 5}
//	result := Min(data)  // 1
func Min[T hwy.Lanes](v []T) T {
	if len(v) == 0 {
		panic("vec: Min called on empty slice")
	}

	lanes := hwy.MaxLanes[T]()

	// If slice is shorter than one vector, use scalar code
	if len(v) < lanes {
		result := v[0]
		for _, x := range v[1:] {
			result = min(result, x)
		}
		return result
	}

	minVec := hwy.Load(v)
	var i int
	for i = lanes; i+lanes <= len(v); i += lanes {
		minVec = hwy.Min(minVec, hwy.Load(v[i:]))
	}

	result := hwy.ReduceMin(minVec)
	for ; i < len(v); i++ {
		result = min(result, v[i])
	}
	return result
}

// Max returns the maximum value in a slice.
//
// Panics if the slice is empty.
//
// NaN propagates: if any element is NaN the result is NaN.
func Max[T hwy.Lanes](v []T) T {
	if len(v) == 0 {
		panic("vec: Max called on empty slice")
	}

	lanes := hwy.MaxLanes[T]()
	if len(v) < lanes {
		result := v[0]
		for _, x := range v[1:] {
			result = max(result, x)
		}
		return result
	}

	maxVec := hwy.Load(v)
	var i int
	for i = lanes; i+lanes <= len(v); i += lanes {
		maxVec = hwy.Max(maxVec, hwy.Load(v[i:]))
	}

	result := hwy.ReduceMax(maxVec)
	for ; i < len(v); i++ {
		result = max(result, v[i])
	}
	return result
}

// SumSquaredDev returns Σ (v[i] - mean)², accumulated in float64.
// It is the second pass of the two-pass variance.
func SumSquaredDev[T hwy.Lanes](v []T, mean float64) float64 {
	lanes := hwy.MaxLanes[T]()
	acc := hwy.ZeroF64[T]()
	vMean := hwy.SetF64[T](mean)

	var i int
	for i = 0; i+lanes <= len(v); i += lanes {
		d := hwy.Sub(hwy.PromoteF64(hwy.Load(v[i:])), vMean)
		acc = hwy.MulAdd(d, d, acc)
	}

	result := hwy.ReduceSum(acc)
	for ; i < len(v); i++ {
		d := float64(v[i]) - mean
		result += d * d
	}
	return result
}

// Variance returns the sample variance (ddof = 1) of v using the two-pass
// algorithm. A single element has variance 0.
//
// Panics if the slice is empty.
func Variance[T hwy.Lanes](v []T) float64 {
	if len(v) == 0 {
		panic("vec: Variance called on empty slice")
	}
	if len(v) == 1 {
		return 0
	}
	return SumSquaredDev(v, Mean(v)) / float64(len(v)-1)
}

// StdDev returns the sample standard deviation sqrt(Variance(v)).
//
// Panics if the slice is empty.
func StdDev[T hwy.Lanes](v []T) float64 {
	return math.Sqrt(Variance(v))
}
