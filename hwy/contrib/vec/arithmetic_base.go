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

// Package vec provides the elementwise arithmetic, reduction and vector
// linear-algebra kernels of capnhook.
//
// Elementwise kernels write dst[i] = op(a[i], b[i]) and never allocate.
// Reductions accumulate in float64 whatever the element type, so float32
// buffers of millions of elements keep full single-precision accuracy.
//
// Kernels assume their inputs were validated by the caller: when slices
// have different lengths, the operation uses the minimum length.
package vec

import "github.com/capnhook/capnhook/hwy"

// AddTo performs element-wise addition: dst[i] = a[i] + b[i].
//
// Example:
//
//	a := []float32{1, 2, 3, 4}
//	b := []float32{5, 6, 7, 8}
//	dst := make([]float32, 4)
//	AddTo(dst, a, b)  // dst is now {6, 8, 10, 12}
func AddTo[T hwy.Lanes](dst, a, b []T) {
	n := min(len(dst), len(a), len(b))
	lanes := hwy.MaxLanes[T]()

	// Process full vectors
	var i int
	for i = 0; i+lanes <= n; i += lanes {
		hwy.Store(hwy.Add(hwy.Load(a[i:]), hwy.Load(b[i:])), dst[i:])
	}

	// Handle tail elements with scalar code
	for ; i < n; i++ {
		dst[i] = a[i] + b[i]
	}
}

// SubTo performs element-wise subtraction: dst[i] = a[i] - b[i].
func SubTo[T hwy.Lanes](dst, a, b []T) {
	n := min(len(dst), len(a), len(b))
	lanes := hwy.MaxLanes[T]()

	var i int
	for i = 0; i+lanes <= n; i += lanes {
		hwy.Store(hwy.Sub(hwy.Load(a[i:]), hwy.Load(b[i:])), dst[i:])
	}
	for ; i < n; i++ {
		dst[i] = a[i] - b[i]
	}
}

// MulTo performs element-wise multiplication: dst[i] = a[i] * b[i].
func MulTo[T hwy.Lanes](dst, a, b []T) {
	n := min(len(dst), len(a), len(b))
	lanes := hwy.MaxLanes[T]()

	var i int
	for i = 0; i+lanes <= n; i += lanes {
		hwy.Store(hwy.Mul(hwy.Load(a[i:]), hwy.Load(b[i:])), dst[i:])
	}
	for ; i < n; i++ {
		dst[i] = a[i] * b[i]
	}
}

// DivTo performs guarded element-wise division: dst[i] = a[i] / b[i], and
// dst[i] = 0 wherever b[i] == 0. The guard also covers 0/0, so the output
// never holds a NaN or Inf produced by a zero divisor.
//
// Example:
//
//	a := []float64{6, 1, 9}
//	b := []float64{3, 0, 3}
//	DivTo(dst, a, b)  // dst is now {2, 0, 3}
func DivTo[T hwy.Floats](dst, a, b []T) {
	n := min(len(dst), len(a), len(b))
	lanes := hwy.MaxLanes[T]()
	vZero := hwy.Zero[T]()

	var i int
	for i = 0; i+lanes <= n; i += lanes {
		va := hwy.Load(a[i:])
		vb := hwy.Load(b[i:])
		nonZero := hwy.NotEqual(vb, vZero)
		hwy.Store(hwy.IfThenElseZero(nonZero, hwy.Div(va, vb)), dst[i:])
	}
	for ; i < n; i++ {
		if b[i] == 0 {
			dst[i] = 0
		} else {
			dst[i] = a[i] / b[i]
		}
	}
}

// DivToInt is the integer form of DivTo: truncated division, 0 where
// b[i] == 0. Integer lanes have no vector divide, so it runs scalar.
func DivToInt[T hwy.Integers](dst, a, b []T) {
	n := min(len(dst), len(a), len(b))
	for i := range n {
		if b[i] == 0 {
			dst[i] = 0
		} else {
			dst[i] = a[i] / b[i]
		}
	}
}

// ScaleTo multiplies every element by c: dst[i] = c * s[i].
func ScaleTo[T hwy.Lanes](dst []T, c T, s []T) {
	n := min(len(dst), len(s))
	lanes := hwy.MaxLanes[T]()
	vc := hwy.Set(c)

	var i int
	for i = 0; i+lanes <= n; i += lanes {
		hwy.Store(hwy.Mul(vc, hwy.Load(s[i:])), dst[i:])
	}
	for ; i < n; i++ {
		dst[i] = c * s[i]
	}
}
