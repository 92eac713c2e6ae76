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

package hwy

import "math"

// This file provides the portable implementations of all lane operations.
// Every operation works on the active lanes of its operands; binary
// operations use the lane count of the first operand.

// Load creates a vector from the first MaxLanes elements of src.
// If src is shorter than a full vector, only len(src) lanes are active.
func Load[T Lanes](src []T) Vec[T] {
	var v Vec[T]
	v.n = min(len(src), MaxLanes[T]())
	copy(v.data[:v.n], src)
	return v
}

// LoadN creates a vector from the first n elements of src, leaving the
// remaining lanes zero. It is used for tails shorter than a vector.
func LoadN[T Lanes](src []T, n int) Vec[T] {
	var v Vec[T]
	v.n = MaxLanes[T]()
	copy(v.data[:min(n, v.n, len(src))], src)
	return v
}

// Store writes a vector's lanes to dst, up to len(dst).
func Store[T Lanes](v Vec[T], dst []T) {
	n := min(len(dst), v.n)
	copy(dst[:n], v.data[:n])
}

// Set creates a vector with all lanes set to the same value.
func Set[T Lanes](value T) Vec[T] {
	var v Vec[T]
	v.n = MaxLanes[T]()
	for i := range v.n {
		v.data[i] = value
	}
	return v
}

// Const creates a vector with all lanes set to the given float64 constant
// converted to T. This allows writing generic code without T(constant)
// conversions: hwy.Const[T](1.0).
func Const[T Lanes](val float64) Vec[T] {
	return Set(T(val))
}

// Zero creates a vector with all lanes set to zero.
func Zero[T Lanes]() Vec[T] {
	return Vec[T]{n: MaxLanes[T]()}
}

// Add performs element-wise addition.
func Add[T Lanes](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] += b.data[i]
	}
	return a
}

// Sub performs element-wise subtraction.
func Sub[T Lanes](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] -= b.data[i]
	}
	return a
}

// Mul performs element-wise multiplication.
func Mul[T Lanes](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] *= b.data[i]
	}
	return a
}

// Div performs element-wise division with IEEE semantics (x/0 is ±Inf or NaN).
func Div[T Floats](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] /= b.data[i]
	}
	return a
}

// MulAdd computes a*b + c element-wise.
func MulAdd[T Floats](a, b, c Vec[T]) Vec[T] {
	for i := range a.n {
		c.data[i] += a.data[i] * b.data[i]
	}
	return c
}

// Neg negates each lane.
func Neg[T Lanes](v Vec[T]) Vec[T] {
	for i := range v.n {
		v.data[i] = -v.data[i]
	}
	return v
}

// Abs computes the absolute value of each lane.
func Abs[T Floats](v Vec[T]) Vec[T] {
	for i := range v.n {
		v.data[i] = T(math.Abs(float64(v.data[i])))
	}
	return v
}

// Min returns the lane-wise minimum. A NaN in either lane yields NaN.
func Min[T Lanes](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] = min(a.data[i], b.data[i])
	}
	return a
}

// Max returns the lane-wise maximum. A NaN in either lane yields NaN.
func Max[T Lanes](a, b Vec[T]) Vec[T] {
	for i := range a.n {
		a.data[i] = max(a.data[i], b.data[i])
	}
	return a
}

// Sqrt computes the square root of each lane.
func Sqrt[T Floats](v Vec[T]) Vec[T] {
	for i := range v.n {
		v.data[i] = T(math.Sqrt(float64(v.data[i])))
	}
	return v
}

// ReduceSum returns the sum of all lanes, added in lane order.
func ReduceSum[T Lanes](v Vec[T]) T {
	var sum T
	for i := range v.n {
		sum += v.data[i]
	}
	return sum
}

// ReduceMin returns the minimum lane. A NaN lane yields NaN.
func ReduceMin[T Lanes](v Vec[T]) T {
	if v.n == 0 {
		return 0
	}
	result := v.data[0]
	for i := 1; i < v.n; i++ {
		result = min(result, v.data[i])
	}
	return result
}

// ReduceMax returns the maximum lane. A NaN lane yields NaN.
func ReduceMax[T Lanes](v Vec[T]) T {
	if v.n == 0 {
		return 0
	}
	result := v.data[0]
	for i := 1; i < v.n; i++ {
		result = max(result, v.data[i])
	}
	return result
}

func compare[T Lanes](a, b Vec[T], pred func(x, y T) bool) Mask[T] {
	m := Mask[T]{n: a.n}
	for i := range a.n {
		if pred(a.data[i], b.data[i]) {
			m.bits |= 1 << i
		}
	}
	return m
}

// Equal returns a mask of lanes where a == b.
func Equal[T Lanes](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x == y })
}

// NotEqual returns a mask of lanes where a != b.
func NotEqual[T Lanes](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x != y })
}

// Less returns a mask of lanes where a < b.
func Less[T Lanes](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x < y })
}

// Greater returns a mask of lanes where a > b.
func Greater[T Lanes](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x > y })
}

// LessEqual returns a mask of lanes where a <= b.
func LessEqual[T Lanes](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x <= y })
}

// GreaterEqual returns a mask of lanes where a >= b.
func GreaterEqual[T Lanes](a, b Vec[T]) Mask[T] {
	return compare(a, b, func(x, y T) bool { return x >= y })
}

// IsNaN returns a mask of lanes holding NaN.
func IsNaN[T Floats](v Vec[T]) Mask[T] {
	return compare(v, v, func(x, y T) bool { return x != y })
}

// IfThenElse selects a's lane where mask is set and b's lane otherwise.
func IfThenElse[T Lanes](mask Mask[T], a, b Vec[T]) Vec[T] {
	for i := range b.n {
		if mask.bits&(1<<i) != 0 {
			b.data[i] = a.data[i]
		}
	}
	return b
}

// IfThenElseZero returns a's lane where mask is set and zero otherwise.
func IfThenElseZero[T Lanes](mask Mask[T], a Vec[T]) Vec[T] {
	return IfThenElse(mask, a, Vec[T]{n: a.n})
}

// PromoteF64 widens every lane to float64, keeping the lane count.
// Reductions over float32 buffers accumulate in the promoted vectors.
func PromoteF64[T Lanes](v Vec[T]) Vec[float64] {
	out := Vec[float64]{n: v.n}
	for i := range v.n {
		out.data[i] = float64(v.data[i])
	}
	return out
}

// ZeroF64 returns a float64 vector with the lane count of T, the accumulator
// shape used together with PromoteF64.
func ZeroF64[T Lanes]() Vec[float64] {
	return Vec[float64]{n: MaxLanes[T]()}
}

// SetF64 returns a float64 vector with the lane count of T and every lane set
// to value, for combining with promoted vectors.
func SetF64[T Lanes](value float64) Vec[float64] {
	out := ZeroF64[T]()
	for i := range out.n {
		out.data[i] = value
	}
	return out
}

// Map applies fn to every active lane. Kernels use it for functions with no
// lane-parallel formulation, such as the standard library transcendentals.
func Map[T Lanes](v Vec[T], fn func(T) T) Vec[T] {
	for i := range v.n {
		v.data[i] = fn(v.data[i])
	}
	return v
}
