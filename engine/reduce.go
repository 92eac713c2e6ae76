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
	"github.com/capnhook/capnhook/hwy/contrib/sort"
	"github.com/capnhook/capnhook/hwy/contrib/stats"
	"github.com/capnhook/capnhook/hwy/contrib/vec"
)

// Reductions accept Float32, Float64 and Int32 buffers of any rank and
// reduce over every element. Sums are accumulated in float64; large
// buffers are reduced in fixed chunks of Config.ReductionChunk elements
// merged in order, so the result never depends on the worker count.

// Sum returns the sum of the elements of a.
func (e *Engine) Sum(a Buffer) (float64, error) { return e.reduce(opSum, a) }

// Mean returns the arithmetic mean of a.
func (e *Engine) Mean(a Buffer) (float64, error) { return e.reduce(opMean, a) }

// Max returns the largest element of a, or NaN if any element is NaN.
func (e *Engine) Max(a Buffer) (float64, error) { return e.reduce(opMax, a) }

// Min returns the smallest element of a, or NaN if any element is NaN.
func (e *Engine) Min(a Buffer) (float64, error) { return e.reduce(opMin, a) }

// Median returns the middle element of a, or the mean of the two middle
// elements for an even length. a is not reordered. NaN propagates.
func (e *Engine) Median(a Buffer) (float64, error) { return e.reduce(opMedian, a) }

// Mode returns the most frequent element of a. Ties go to the value that
// occurs first; NaN never equals anything, itself included.
func (e *Engine) Mode(a Buffer) (float64, error) { return e.reduce(opMode, a) }

// Variance returns the sample variance (ddof = 1) of a, 0 for one element.
func (e *Engine) Variance(a Buffer) (float64, error) { return e.reduce(opVariance, a) }

// StdDev returns the sample standard deviation of a, 0 for one element.
func (e *Engine) StdDev(a Buffer) (float64, error) { return e.reduce(opStdDev, a) }

func (e *Engine) reduce(op string, a Buffer) (float64, error) {
	if err := checkOperands(op, numericTypes, a); err != nil {
		return 0, err
	}
	if err := checkNonEmpty(op, a); err != nil {
		return 0, err
	}
	switch a.dtype {
	case Float32:
		return reduceSlice(e, op, a.Float32()), nil
	case Float64:
		return reduceSlice(e, op, a.Float64()), nil
	default:
		return reduceSlice(e, op, a.Int32()), nil
	}
}

func reduceSlice[T hwy.Lanes](e *Engine, op string, v []T) float64 {
	pool, chunk := e.poolFor(len(v)), e.cfg.ReductionChunk
	switch op {
	case opSum:
		return vec.ParallelSum(pool, v, chunk)
	case opMean:
		return vec.ParallelMean(pool, v, chunk)
	case opMax:
		return float64(vec.ParallelMax(pool, v, chunk))
	case opMin:
		return float64(vec.ParallelMin(pool, v, chunk))
	case opMedian:
		return sort.Median(v)
	case opMode:
		return float64(stats.Mode(v))
	case opVariance:
		return vec.ParallelVariance(pool, v, chunk)
	case opStdDev:
		return vec.ParallelStdDev(pool, v, chunk)
	}
	panic("engine: unknown reduction " + op)
}
