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

// Package hwy provides the portable lane primitives the capnhook kernels are
// written against, together with runtime CPU dispatch detection.
//
// Kernels load fixed-width vectors from caller buffers, combine them with
// lane-wise operations and reduce them back to scalars:
//
//	sum := hwy.Zero[float32]()
//	for i = 0; i+lanes <= len(v); i += lanes {
//		sum = hwy.Add(sum, hwy.Load(v[i:]))
//	}
//	total := hwy.ReduceSum(sum)
//
// The lane count follows the widest vector unit reported by the CPU (see
// CurrentWidth), so loop shapes and reduction trees match the hardware even
// though the lanes are evaluated in portable Go.
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in vector lanes.
type Lanes interface {
	Floats | Integers
}

// maxVecLanes is the largest lane count any dispatch level produces:
// 64-byte vectors of 4-byte elements.
const maxVecLanes = 16

// Vec is a portable vector handle. It is a value type: lanes live in a fixed
// array so that loads, arithmetic and stores never allocate.
//
// Vec instances should not be created directly; use Load, Set, or Zero instead.
type Vec[T Lanes] struct {
	data [maxVecLanes]T
	n    int
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return v.n
}

// Data returns a copy of the active lanes.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T]) Data() []T {
	out := make([]T, v.n)
	copy(out, v.data[:v.n])
	return out
}

// Store writes the vector's lanes to dst.
// This is the method form of the hwy.Store function.
func (v Vec[T]) Store(dst []T) {
	Store(v, dst)
}

// Mask represents the result of a lane-wise comparison.
// Bit i is set when lane i compared true.
type Mask[T Lanes] struct {
	bits uint32
	n    int
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return m.n
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	return m.bits == uint32(1)<<m.n-1
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	return m.bits != 0
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask[T]) CountTrue() int {
	count := 0
	for b := m.bits; b != 0; b &= b - 1 {
		count++
	}
	return count
}

// GetBit returns whether lane i is active.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= m.n {
		return false
	}
	return m.bits&(1<<i) != 0
}

// FirstN returns a mask with the first n lanes active.
func FirstN[T Lanes](n int) Mask[T] {
	lanes := MaxLanes[T]()
	n = max(0, min(n, lanes))
	return Mask[T]{bits: uint32(1)<<n - 1, n: lanes}
}
