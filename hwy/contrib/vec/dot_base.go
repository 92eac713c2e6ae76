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

// Dot computes the dot product Σ a[i]*b[i], with each product formed and
// accumulated in float64.
//
// Returns 0 if either slice is empty. Uses the minimum length.
//
// Example:
//
//	a := []float32{1, 2, 3}
//	b := []float32{4, 5, 6}
//	result := Dot(a, b)  // 1*4 + 2*5 + 3*6 = 32
func Dot[T hwy.Lanes](a, b []T) float64 {
	n := min(len(a), len(b))
	lanes := hwy.MaxLanes[T]()
	acc := hwy.ZeroF64[T]()

	// Process full vectors
	var i int
	for i = 0; i+lanes <= n; i += lanes {
		va := hwy.PromoteF64(hwy.Load(a[i:]))
		vb := hwy.PromoteF64(hwy.Load(b[i:]))
		acc = hwy.MulAdd(va, vb, acc)
	}

	// Reduce vector sum to scalar
	result := hwy.ReduceSum(acc)

	// Handle tail elements with scalar code
	for ; i < n; i++ {
		result += float64(a[i]) * float64(b[i])
	}
	return result
}

// SquaredNorm computes the squared L2 norm Σ v[i]², equivalent to Dot(v, v).
//
// Example:
//
//	v := []float32{3, 4}
//	result := SquaredNorm(v)  // 25
func SquaredNorm[T hwy.Lanes](v []T) float64 {
	return Dot(v, v)
}

// Norm computes the L2 norm (Euclidean magnitude) sqrt(Σ v[i]²).
//
// Returns 0 if the slice is empty.
//
// Example:
//
//	v := []float32{3, 4}
//	result := Norm(v)  // 5
func Norm[T hwy.Lanes](v []T) float64 {
	return math.Sqrt(SquaredNorm(v))
}

// CrossDev returns Σ (a[i] - meanA)(b[i] - meanB), the numerator of the
// sample covariance. Uses the minimum length.
func CrossDev[T hwy.Lanes](a, b []T, meanA, meanB float64) float64 {
	n := min(len(a), len(b))
	lanes := hwy.MaxLanes[T]()
	acc := hwy.ZeroF64[T]()
	vMeanA := hwy.SetF64[T](meanA)
	vMeanB := hwy.SetF64[T](meanB)

	var i int
	for i = 0; i+lanes <= n; i += lanes {
		da := hwy.Sub(hwy.PromoteF64(hwy.Load(a[i:])), vMeanA)
		db := hwy.Sub(hwy.PromoteF64(hwy.Load(b[i:])), vMeanB)
		acc = hwy.MulAdd(da, db, acc)
	}

	result := hwy.ReduceSum(acc)
	for ; i < n; i++ {
		result += (float64(a[i]) - meanA) * (float64(b[i]) - meanB)
	}
	return result
}
