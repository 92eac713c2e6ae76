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
	"github.com/capnhook/capnhook/hwy"
	"github.com/capnhook/capnhook/hwy/contrib/activation"
	"github.com/capnhook/capnhook/hwy/contrib/math"
	"github.com/capnhook/capnhook/hwy/contrib/nn"
	"github.com/capnhook/capnhook/hwy/contrib/vec"
	"github.com/capnhook/capnhook/hwy/contrib/workerpool"
)

// binaryKernels holds one kernel per supported dtype.
type binaryKernels struct {
	f32 func(dst, a, b []float32)
	f64 func(dst, a, b []float64)
	i32 func(dst, a, b []int32)
}

var (
	addKernels = binaryKernels{vec.AddTo[float32], vec.AddTo[float64], vec.AddTo[int32]}
	subKernels = binaryKernels{vec.SubTo[float32], vec.SubTo[float64], vec.SubTo[int32]}
	mulKernels = binaryKernels{vec.MulTo[float32], vec.MulTo[float64], vec.MulTo[int32]}
	divKernels = binaryKernels{vec.DivTo[float32], vec.DivTo[float64], vec.DivToInt[int32]}
)

// unaryFn writes f(src) to dst, splitting the work across pool.
type unaryFn[T hwy.Floats] func(pool *workerpool.Pool, dst, src []T)

type unaryKernels struct {
	f32 unaryFn[float32]
	f64 unaryFn[float64]
}

var (
	expKernels  = unaryKernels{split(math.ExpTo[float32]), split(math.ExpTo[float64])}
	logKernels  = unaryKernels{split(math.LogTo[float32]), split(math.LogTo[float64])}
	sqrtKernels = unaryKernels{split(math.SqrtTo[float32]), split(math.SqrtTo[float64])}
	sinKernels  = unaryKernels{split(math.SinTo[float32]), split(math.SinTo[float64])}
	cosKernels  = unaryKernels{split(math.CosTo[float32]), split(math.CosTo[float64])}
	reluKernels = unaryKernels{relu[float32], relu[float64]}
)

// split lifts a sequential slice kernel to one that runs contiguous ranges
// on the pool.
func split[T hwy.Floats](fn func(dst, src []T)) unaryFn[T] {
	return func(pool *workerpool.Pool, dst, src []T) {
		vec.ParallelApply(pool, len(dst), func(start, end int) {
			fn(dst[start:end], src[start:end])
		})
	}
}

func relu[T hwy.Floats](pool *workerpool.Pool, dst, src []T) {
	activation.ParallelReLU(pool, src, dst)
}

// Add returns a + b. Operands must share dtype and length.
func (e *Engine) Add(a, b Buffer) (Buffer, error) { return e.newBinary(opAdd, addKernels, a, b) }

// AddInto writes a + b to out.
func (e *Engine) AddInto(out, a, b Buffer) error { return e.binary(opAdd, addKernels, out, a, b) }

// Sub returns a - b.
func (e *Engine) Sub(a, b Buffer) (Buffer, error) { return e.newBinary(opSub, subKernels, a, b) }

// SubInto writes a - b to out.
func (e *Engine) SubInto(out, a, b Buffer) error { return e.binary(opSub, subKernels, out, a, b) }

// Mul returns the elementwise product a * b.
func (e *Engine) Mul(a, b Buffer) (Buffer, error) { return e.newBinary(opMul, mulKernels, a, b) }

// MulInto writes a * b to out.
func (e *Engine) MulInto(out, a, b Buffer) error { return e.binary(opMul, mulKernels, out, a, b) }

// Div returns a / b, with 0 wherever b is 0.
func (e *Engine) Div(a, b Buffer) (Buffer, error) { return e.newBinary(opDiv, divKernels, a, b) }

// DivInto writes a / b to out, with 0 wherever b is 0.
func (e *Engine) DivInto(out, a, b Buffer) error { return e.binary(opDiv, divKernels, out, a, b) }

func (e *Engine) newBinary(op string, k binaryKernels, a, b Buffer) (Buffer, error) {
	if err := checkOperands(op, numericTypes, a, b); err != nil {
		return Buffer{}, err
	}
	out := like(a, a.dtype)
	if err := e.binary(op, k, out, a, b); err != nil {
		return Buffer{}, err
	}
	return out, nil
}

func (e *Engine) binary(op string, k binaryKernels, out, a, b Buffer) error {
	if err := checkOperands(op, numericTypes, a, b); err != nil {
		return err
	}
	if err := checkOutput(op, out, a); err != nil {
		return err
	}
	switch a.dtype {
	case Float32:
		runBinary(e, k.f32, out.Float32(), a.Float32(), b.Float32())
	case Float64:
		runBinary(e, k.f64, out.Float64(), a.Float64(), b.Float64())
	case Int32:
		runBinary(e, k.i32, out.Int32(), a.Int32(), b.Int32())
	}
	return nil
}

func runBinary[T hwy.Lanes](e *Engine, fn func(dst, a, b []T), dst, a, b []T) {
	vec.ParallelApply(e.poolFor(len(dst)), len(dst), func(start, end int) {
		fn(dst[start:end], a[start:end], b[start:end])
	})
}

// Exp returns e^a for a float buffer.
func (e *Engine) Exp(a Buffer) (Buffer, error) { return e.newUnary(opExp, expKernels, a) }

// ExpInto writes e^a to out.
func (e *Engine) ExpInto(out, a Buffer) error { return e.unary(opExp, expKernels, out, a) }

// Log returns the natural logarithm of a. Negative inputs give NaN.
func (e *Engine) Log(a Buffer) (Buffer, error) { return e.newUnary(opLog, logKernels, a) }

// LogInto writes the natural logarithm of a to out.
func (e *Engine) LogInto(out, a Buffer) error { return e.unary(opLog, logKernels, out, a) }

// Sqrt returns the square root of a. Negative inputs give NaN.
func (e *Engine) Sqrt(a Buffer) (Buffer, error) { return e.newUnary(opSqrt, sqrtKernels, a) }

// SqrtInto writes the square root of a to out.
func (e *Engine) SqrtInto(out, a Buffer) error { return e.unary(opSqrt, sqrtKernels, out, a) }

// Sin returns the sine of a, in radians.
func (e *Engine) Sin(a Buffer) (Buffer, error) { return e.newUnary(opSin, sinKernels, a) }

// SinInto writes the sine of a to out.
func (e *Engine) SinInto(out, a Buffer) error { return e.unary(opSin, sinKernels, out, a) }

// Cos returns the cosine of a, in radians.
func (e *Engine) Cos(a Buffer) (Buffer, error) { return e.newUnary(opCos, cosKernels, a) }

// CosInto writes the cosine of a to out.
func (e *Engine) CosInto(out, a Buffer) error { return e.unary(opCos, cosKernels, out, a) }

// ReLU returns max(a, 0). NaN stays NaN.
func (e *Engine) ReLU(a Buffer) (Buffer, error) { return e.newUnary(opReLU, reluKernels, a) }

// ReLUInto writes max(a, 0) to out.
func (e *Engine) ReLUInto(out, a Buffer) error { return e.unary(opReLU, reluKernels, out, a) }

func (e *Engine) newUnary(op string, k unaryKernels, a Buffer) (Buffer, error) {
	if err := checkOperands(op, floatTypes, a); err != nil {
		return Buffer{}, err
	}
	out := like(a, a.dtype)
	if err := e.unary(op, k, out, a); err != nil {
		return Buffer{}, err
	}
	return out, nil
}

func (e *Engine) unary(op string, k unaryKernels, out, a Buffer) error {
	if err := checkOperands(op, floatTypes, a); err != nil {
		return err
	}
	if err := checkOutput(op, out, a); err != nil {
		return err
	}
	pool := e.poolFor(a.Len())
	switch a.dtype {
	case Float32:
		k.f32(pool, out.Float32(), a.Float32())
	case Float64:
		k.f64(pool, out.Float64(), a.Float64())
	}
	return nil
}

// Softmax returns the numerically stable softmax of a, normalized over
// every element of the buffer whatever its rank.
func (e *Engine) Softmax(a Buffer) (Buffer, error) { return e.newRowwise(opSoftmax, a) }

// SoftmaxInto writes Softmax(a) to out.
func (e *Engine) SoftmaxInto(out, a Buffer) error { return e.rowwise(opSoftmax, out, a) }

// SoftmaxRows normalizes each row of the matrix a independently. A vector
// is a single row.
func (e *Engine) SoftmaxRows(a Buffer) (Buffer, error) { return e.newRowwise(opSoftmaxRows, a) }

// SoftmaxRowsInto writes SoftmaxRows(a) to out.
func (e *Engine) SoftmaxRowsInto(out, a Buffer) error { return e.rowwise(opSoftmaxRows, out, a) }

// LogSoftmax returns log(Softmax(a)), computed without forming Softmax.
func (e *Engine) LogSoftmax(a Buffer) (Buffer, error) { return e.newRowwise(opLogSoftmax, a) }

// LogSoftmaxInto writes LogSoftmax(a) to out.
func (e *Engine) LogSoftmaxInto(out, a Buffer) error { return e.rowwise(opLogSoftmax, out, a) }

func (e *Engine) newRowwise(op string, a Buffer) (Buffer, error) {
	if err := checkOperands(op, floatTypes, a); err != nil {
		return Buffer{}, err
	}
	out := like(a, a.dtype)
	if err := e.rowwise(op, out, a); err != nil {
		return Buffer{}, err
	}
	return out, nil
}

func (e *Engine) rowwise(op string, out, a Buffer) error {
	if err := checkOperands(op, floatTypes, a); err != nil {
		return err
	}
	if err := checkNonEmpty(op, a); err != nil {
		return err
	}
	if err := checkOutput(op, out, a); err != nil {
		return err
	}
	rows, cols := 1, a.Len()
	if op == opSoftmaxRows && a.ndim == 2 {
		rows, cols = a.rows, a.cols
	}
	pool := e.poolFor(a.Len())
	switch a.dtype {
	case Float32:
		applyRows(pool, op, out.Float32(), a.Float32(), rows, cols)
	case Float64:
		applyRows(pool, op, out.Float64(), a.Float64(), rows, cols)
	}
	return nil
}

func applyRows[T hwy.Floats](pool *workerpool.Pool, op string, dst, src []T, rows, cols int) {
	if op == opLogSoftmax {
		nn.ParallelLogSoftmax(pool, src, dst, rows, cols)
		return
	}
	nn.ParallelSoftmax(pool, src, dst, rows, cols)
}
