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

package math

import (
	stdmath "math"

	"github.com/capnhook/capnhook/hwy"
)

// BaseExpVec computes e^x for a single vector, returning the result.
func BaseExpVec[T hwy.Floats](x hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Map(x, exp[T])
}

// BaseLogVec computes ln(x) for a single vector.
func BaseLogVec[T hwy.Floats](x hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Map(x, log[T])
}

// BaseSinVec computes sin(x) for a single vector.
func BaseSinVec[T hwy.Floats](x hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Map(x, sin[T])
}

// BaseCosVec computes cos(x) for a single vector.
func BaseCosVec[T hwy.Floats](x hwy.Vec[T]) hwy.Vec[T] {
	return hwy.Map(x, cos[T])
}

func exp[T hwy.Floats](x T) T { return T(stdmath.Exp(float64(x))) }
func log[T hwy.Floats](x T) T { return T(stdmath.Log(float64(x))) }
func sin[T hwy.Floats](x T) T { return T(stdmath.Sin(float64(x))) }
func cos[T hwy.Floats](x T) T { return T(stdmath.Cos(float64(x))) }

// transform applies vecFn over full vectors of src and scalarFn over the
// tail, writing to dst.
func transform[T hwy.Floats](dst, src []T, vecFn func(hwy.Vec[T]) hwy.Vec[T], scalarFn func(T) T) {
	n := min(len(dst), len(src))
	lanes := hwy.MaxLanes[T]()

	var i int
	for i = 0; i+lanes <= n; i += lanes {
		hwy.Store(vecFn(hwy.Load(src[i:])), dst[i:])
	}
	for ; i < n; i++ {
		dst[i] = scalarFn(src[i])
	}
}

// ExpTo computes dst[i] = e^src[i].
//
// Example:
//
//	src := []float64{0, 1}
//	ExpTo(dst, src)  // dst is now {1, 2.718281828459045}
func ExpTo[T hwy.Floats](dst, src []T) {
	transform(dst, src, BaseExpVec[T], exp[T])
}

// LogTo computes dst[i] = ln(src[i]).
func LogTo[T hwy.Floats](dst, src []T) {
	transform(dst, src, BaseLogVec[T], log[T])
}

// SqrtTo computes dst[i] = sqrt(src[i]).
func SqrtTo[T hwy.Floats](dst, src []T) {
	transform(dst, src, hwy.Sqrt[T], func(x T) T { return T(stdmath.Sqrt(float64(x))) })
}

// SinTo computes dst[i] = sin(src[i]).
func SinTo[T hwy.Floats](dst, src []T) {
	transform(dst, src, BaseSinVec[T], sin[T])
}

// CosTo computes dst[i] = cos(src[i]).
func CosTo[T hwy.Floats](dst, src []T) {
	transform(dst, src, BaseCosVec[T], cos[T])
}
