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
	"github.com/capnhook/capnhook/hwy/contrib/matmul"
	"github.com/capnhook/capnhook/hwy/contrib/vec"
)

// Dot returns Σ a[i]·b[i] accumulated in float64. a and b must have the
// same length; the dot product of two empty buffers is 0.
func (e *Engine) Dot(a, b Buffer) (float64, error) {
	if err := checkOperands(opDot, numericTypes, a, b); err != nil {
		return 0, err
	}
	chunk := e.cfg.ReductionChunk
	switch a.dtype {
	case Float32:
		return vec.ParallelDot(e.poolFor(a.Len()), a.Float32(), b.Float32(), chunk), nil
	case Float64:
		return vec.ParallelDot(e.poolFor(a.Len()), a.Float64(), b.Float64(), chunk), nil
	default:
		return vec.ParallelDot(e.poolFor(a.Len()), a.Int32(), b.Int32(), chunk), nil
	}
}

// Norm returns the Euclidean norm sqrt(Dot(a, a)).
func (e *Engine) Norm(a Buffer) (float64, error) {
	if err := checkOperands(opNorm, numericTypes, a); err != nil {
		return 0, err
	}
	chunk := e.cfg.ReductionChunk
	switch a.dtype {
	case Float32:
		return vec.ParallelNorm(e.poolFor(a.Len()), a.Float32(), chunk), nil
	case Float64:
		return vec.ParallelNorm(e.poolFor(a.Len()), a.Float64(), chunk), nil
	default:
		return vec.ParallelNorm(e.poolFor(a.Len()), a.Int32(), chunk), nil
	}
}

// MatMul returns the m×n product of the m×k matrix a and the k×n matrix b.
func (e *Engine) MatMul(a, b Buffer) (Buffer, error) {
	if err := checkMatMul(a, b); err != nil {
		return Buffer{}, err
	}
	out := alloc(a.dtype, 2, a.rows, b.cols)
	e.matMul(out, a, b)
	return out, nil
}

// MatMulInto writes a·b to the m×n matrix out, which must not share memory
// with a or b.
func (e *Engine) MatMulInto(out, a, b Buffer) error {
	if err := checkMatMul(a, b); err != nil {
		return err
	}
	if out.IsZero() {
		return opError(opMatMul, ErrInvalidBuffer, "output is not a valid buffer")
	}
	if out.dtype != a.dtype {
		return opError(opMatMul, ErrDTypeMismatch, "output %s, operands %s", out.dtype, a.dtype)
	}
	if out.ndim != 2 || out.rows != a.rows || out.cols != b.cols {
		return opError(opMatMul, ErrDimensionMismatch, "output %s, want %dx%d", out, a.rows, b.cols)
	}
	e.matMul(out, a, b)
	return nil
}

func checkMatMul(a, b Buffer) error {
	if err := checkValid(opMatMul, a, b); err != nil {
		return err
	}
	if err := checkSameDType(opMatMul, a, b); err != nil {
		return err
	}
	if err := checkDType(opMatMul, a, numericTypes); err != nil {
		return err
	}
	if a.ndim != 2 || b.ndim != 2 {
		return opError(opMatMul, ErrInvalidBuffer, "operands must be matrices, got %s and %s", a, b)
	}
	if a.cols != b.rows {
		return opError(opMatMul, ErrDimensionMismatch, "%s x %s", a, b)
	}
	return nil
}

func (e *Engine) matMul(out, a, b Buffer) {
	m, n, k := a.rows, b.cols, a.cols
	switch a.dtype {
	case Float32:
		matmul.ParallelMatMul(e.poolFor(m*n*k), a.Float32(), b.Float32(), out.Float32(), m, n, k)
	case Float64:
		matmul.ParallelMatMul(e.poolFor(m*n*k), a.Float64(), b.Float64(), out.Float64(), m, n, k)
	case Int32:
		matmul.ParallelMatMul(e.poolFor(m*n*k), a.Int32(), b.Int32(), out.Int32(), m, n, k)
	}
}

// Trace returns the sum of the diagonal of the square matrix a.
func (e *Engine) Trace(a Buffer) (float64, error) {
	if err := checkOperands(opTrace, numericTypes, a); err != nil {
		return 0, err
	}
	if a.ndim != 2 || a.rows != a.cols {
		return 0, opError(opTrace, ErrDimensionMismatch, "want a square matrix, got %s", a)
	}
	switch a.dtype {
	case Float32:
		return matmul.Trace(a.Float32(), a.rows), nil
	case Float64:
		return matmul.Trace(a.Float64(), a.rows), nil
	default:
		return matmul.Trace(a.Int32(), a.rows), nil
	}
}

// Transpose returns the cols×rows transpose of the matrix a.
func (e *Engine) Transpose(a Buffer) (Buffer, error) {
	if err := checkOperands(opTranspose, numericTypes, a); err != nil {
		return Buffer{}, err
	}
	if a.ndim != 2 {
		return Buffer{}, opError(opTranspose, ErrInvalidBuffer, "want a matrix, got %s", a)
	}
	out := alloc(a.dtype, 2, a.cols, a.rows)
	switch a.dtype {
	case Float32:
		matmul.Transpose(a.Float32(), a.rows, a.cols, out.Float32())
	case Float64:
		matmul.Transpose(a.Float64(), a.rows, a.cols, out.Float64())
	case Int32:
		matmul.Transpose(a.Int32(), a.rows, a.cols, out.Int32())
	}
	return out, nil
}
