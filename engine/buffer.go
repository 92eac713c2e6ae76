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

package engine

import (
	"fmt"
	"math"
)

// Buffer is a non-owning view of caller memory: a contiguous 1D vector or a
// row-major 2D matrix of a single dtype. The engine never copies the data
// of an input Buffer and never reallocates an output Buffer.
//
// The zero Buffer is invalid. Constructors return an invalid Buffer when the
// shape does not match the data; every operation rejects it with
// ErrInvalidBuffer.
type Buffer struct {
	dtype DType
	ndim  int
	rows  int
	cols  int
	data  any
}

// Float32s returns a 1D Buffer over data.
func Float32s(data []float32) Buffer { return vector(Float32, data, len(data)) }

// Float64s returns a 1D Buffer over data.
func Float64s(data []float64) Buffer { return vector(Float64, data, len(data)) }

// Int32s returns a 1D Buffer over data.
func Int32s(data []int32) Buffer { return vector(Int32, data, len(data)) }

// Uints returns a 1D Buffer over data.
func Uints(data []uint) Buffer { return vector(Uint, data, len(data)) }

// Matrix32 returns a rows×cols row-major Buffer over data.
// len(data) must equal rows*cols.
func Matrix32(rows, cols int, data []float32) Buffer {
	return matrix(Float32, rows, cols, data, len(data))
}

// Matrix64 returns a rows×cols row-major Buffer over data.
// len(data) must equal rows*cols.
func Matrix64(rows, cols int, data []float64) Buffer {
	return matrix(Float64, rows, cols, data, len(data))
}

// MatrixInt32 returns a rows×cols row-major Buffer over data.
// len(data) must equal rows*cols.
func MatrixInt32(rows, cols int, data []int32) Buffer {
	return matrix(Int32, rows, cols, data, len(data))
}

func vector(dt DType, data any, n int) Buffer {
	return Buffer{dtype: dt, ndim: 1, rows: n, cols: 1, data: data}
}

func matrix(dt DType, rows, cols int, data any, n int) Buffer {
	if rows < 0 || cols < 0 || (cols != 0 && rows > math.MaxInt/cols) || rows*cols != n {
		return Buffer{}
	}
	return Buffer{dtype: dt, ndim: 2, rows: rows, cols: cols, data: data}
}

// IsZero reports whether b is the zero (invalid) Buffer.
func (b Buffer) IsZero() bool { return b.ndim == 0 }

// DType returns the element type.
func (b Buffer) DType() DType { return b.dtype }

// NDim returns 1 for vectors, 2 for matrices and 0 for an invalid Buffer.
func (b Buffer) NDim() int { return b.ndim }

// Len returns the number of elements.
func (b Buffer) Len() int { return b.rows * b.cols }

// Rows returns the number of rows; a vector is a single column of Len rows.
func (b Buffer) Rows() int { return b.rows }

// Cols returns the number of columns; 1 for a vector.
func (b Buffer) Cols() int { return b.cols }

// Shape returns [Len] for a vector and [Rows, Cols] for a matrix.
func (b Buffer) Shape() []int {
	switch b.ndim {
	case 1:
		return []int{b.rows}
	case 2:
		return []int{b.rows, b.cols}
	default:
		return nil
	}
}

// Contiguous reports whether the elements are densely packed. Every Buffer
// built by this package is.
func (b Buffer) Contiguous() bool { return !b.IsZero() }

// Float32 returns the underlying slice, or nil if b is not Float32.
func (b Buffer) Float32() []float32 { s, _ := b.data.([]float32); return s }

// Float64 returns the underlying slice, or nil if b is not Float64.
func (b Buffer) Float64() []float64 { s, _ := b.data.([]float64); return s }

// Int32 returns the underlying slice, or nil if b is not Int32.
func (b Buffer) Int32() []int32 { s, _ := b.data.([]int32); return s }

// Uint returns the underlying slice, or nil if b is not Uint.
func (b Buffer) Uint() []uint { s, _ := b.data.([]uint); return s }

// String formats the descriptor, not the data: "float32[3x4]".
func (b Buffer) String() string {
	switch b.ndim {
	case 1:
		return fmt.Sprintf("%s[%d]", b.dtype, b.rows)
	case 2:
		return fmt.Sprintf("%s[%dx%d]", b.dtype, b.rows, b.cols)
	default:
		return "invalid"
	}
}

// sameShape reports whether a and b have identical dimensions.
func sameShape(a, b Buffer) bool {
	return a.ndim == b.ndim && a.rows == b.rows && a.cols == b.cols
}

// like allocates a Buffer of the given dtype with b's shape.
func like(b Buffer, dt DType) Buffer {
	return alloc(dt, b.ndim, b.rows, b.cols)
}

func alloc(dt DType, ndim, rows, cols int) Buffer {
	n := rows * cols
	var data any
	switch dt {
	case Float32:
		data = make([]float32, n)
	case Float64:
		data = make([]float64, n)
	case Int32:
		data = make([]int32, n)
	case Uint:
		data = make([]uint, n)
	}
	return Buffer{dtype: dt, ndim: ndim, rows: rows, cols: cols, data: data}
}
