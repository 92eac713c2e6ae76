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
	"github.com/samber/lo"

	"github.com/capnhook/capnhook/hwy"
	"github.com/capnhook/capnhook/hwy/contrib/stats"
	"github.com/capnhook/capnhook/hwy/contrib/workerpool"
)

// Covariance returns the sample covariance (ddof = 1) of x and y, 0 when
// they hold a single element.
func (e *Engine) Covariance(x, y Buffer) (float64, error) {
	return e.pairwise(opCovariance, x, y)
}

// Correlation returns the Pearson correlation of x and y in [-1, 1], 0 when
// either is constant.
func (e *Engine) Correlation(x, y Buffer) (float64, error) {
	return e.pairwise(opCorrelation, x, y)
}

func (e *Engine) pairwise(op string, x, y Buffer) (float64, error) {
	if err := checkOperands(op, numericTypes, x, y); err != nil {
		return 0, err
	}
	if err := checkNonEmpty(op, x); err != nil {
		return 0, err
	}
	switch x.dtype {
	case Float32:
		return pair(op, x.Float32(), y.Float32()), nil
	case Float64:
		return pair(op, x.Float64(), y.Float64()), nil
	default:
		return pair(op, x.Int32(), y.Int32()), nil
	}
}

func pair[T hwy.Lanes](op string, x, y []T) float64 {
	if op == opCorrelation {
		return stats.Correlation(x, y)
	}
	return stats.Covariance(x, y)
}

// CovMatrix writes the k×k covariance matrix of vs into out, a Float64
// matrix of k rows and k columns. The result is exactly symmetric.
func (e *Engine) CovMatrix(out Buffer, vs ...Buffer) error {
	return e.matrixStat(opCovMatrix, out, vs)
}

// CorrMatrix writes the k×k correlation matrix of vs into out. The
// diagonal is 1, or 0 for a constant vector.
func (e *Engine) CorrMatrix(out Buffer, vs ...Buffer) error {
	return e.matrixStat(opCorrMatrix, out, vs)
}

func (e *Engine) matrixStat(op string, out Buffer, vs []Buffer) error {
	if len(vs) == 0 {
		return opError(op, ErrInvalidBuffer, "no input vectors")
	}
	if err := checkOperands(op, numericTypes, vs...); err != nil {
		return err
	}
	if err := checkNonEmpty(op, vs[0]); err != nil {
		return err
	}
	k := len(vs)
	if out.IsZero() {
		return opError(op, ErrInvalidBuffer, "output is not a valid buffer")
	}
	if out.dtype != Float64 {
		return opError(op, ErrDTypeMismatch, "output must be float64, got %s", out.dtype)
	}
	if out.ndim != 2 || out.rows != k || out.cols != k {
		return opError(op, ErrDimensionMismatch, "output %s, want %dx%d", out, k, k)
	}

	pool := e.poolFor(k * k * vs[0].Len())
	switch vs[0].dtype {
	case Float32:
		matrixKernel(pool, op, out.Float64(), lo.Map(vs, func(b Buffer, _ int) []float32 { return b.Float32() }))
	case Float64:
		matrixKernel(pool, op, out.Float64(), lo.Map(vs, func(b Buffer, _ int) []float64 { return b.Float64() }))
	case Int32:
		matrixKernel(pool, op, out.Float64(), lo.Map(vs, func(b Buffer, _ int) []int32 { return b.Int32() }))
	}
	return nil
}

func matrixKernel[T hwy.Lanes](pool *workerpool.Pool, op string, out []float64, vs [][]T) {
	if op == opCorrMatrix {
		stats.CorrMatrix(pool, out, vs)
		return
	}
	stats.CovMatrix(pool, out, vs)
}

// Histogram counts values into the bins delimited by edges: bin i is
// [edges[i], edges[i+1]) and the last bin is closed. counts must be a Uint
// buffer of len(edges)-1 elements; it is cleared first. Values outside the
// edges and NaN are not counted. edges must be non-decreasing, NaN-free and
// hold at least two elements.
func (e *Engine) Histogram(values, edges, counts Buffer) error {
	if err := checkValid(opHistogram, values, edges, counts); err != nil {
		return err
	}
	if err := checkSameDType(opHistogram, values, edges); err != nil {
		return err
	}
	if err := checkDType(opHistogram, values, numericTypes); err != nil {
		return err
	}
	if counts.dtype != Uint {
		return opError(opHistogram, ErrDTypeMismatch, "counts must be uint, got %s", counts.dtype)
	}

	var ok bool
	switch edges.dtype {
	case Float32:
		ok = stats.ValidEdges(edges.Float32())
	case Float64:
		ok = stats.ValidEdges(edges.Float64())
	case Int32:
		ok = stats.ValidEdges(edges.Int32())
	}
	if !ok {
		return opError(opHistogram, ErrInvalidBuffer, "edges must be at least two non-decreasing values")
	}
	if counts.Len() != edges.Len()-1 {
		return opError(opHistogram, ErrInvalidBuffer, "counts %s, want %d bins", counts, edges.Len()-1)
	}

	pool, chunk := e.poolFor(values.Len()), e.cfg.ReductionChunk
	switch values.dtype {
	case Float32:
		stats.ParallelHistogram(pool, values.Float32(), edges.Float32(), counts.Uint(), chunk)
	case Float64:
		stats.ParallelHistogram(pool, values.Float64(), edges.Float64(), counts.Uint(), chunk)
	case Int32:
		stats.ParallelHistogram(pool, values.Int32(), edges.Int32(), counts.Uint(), chunk)
	}
	return nil
}

// HistogramExact writes to counts[b] the number of values exactly equal to
// bins[b]. counts must be a Uint buffer as long as bins.
func (e *Engine) HistogramExact(values, bins, counts Buffer) error {
	if err := checkValid(opHistogramExact, values, bins, counts); err != nil {
		return err
	}
	if err := checkSameDType(opHistogramExact, values, bins); err != nil {
		return err
	}
	if err := checkDType(opHistogramExact, values, numericTypes); err != nil {
		return err
	}
	if counts.dtype != Uint {
		return opError(opHistogramExact, ErrDTypeMismatch, "counts must be uint, got %s", counts.dtype)
	}
	if counts.Len() != bins.Len() {
		return opError(opHistogramExact, ErrInvalidBuffer, "counts %s, want %d bins", counts, bins.Len())
	}

	switch values.dtype {
	case Float32:
		stats.HistogramExact(values.Float32(), bins.Float32(), counts.Uint())
	case Float64:
		stats.HistogramExact(values.Float64(), bins.Float64(), counts.Uint())
	case Int32:
		stats.HistogramExact(values.Int32(), bins.Int32(), counts.Uint())
	}
	return nil
}
