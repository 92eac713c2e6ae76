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

package stats

import (
	stdmath "math"

	"github.com/capnhook/capnhook/hwy"
	"github.com/capnhook/capnhook/hwy/contrib/vec"
	"github.com/capnhook/capnhook/hwy/contrib/workerpool"
)

// Covariance returns the sample covariance of x and y:
// Σ (x[i] - mean(x))(y[i] - mean(y)) / (n - 1).
//
// Returns 0 when n <= 1.
func Covariance[T hwy.Lanes](x, y []T) float64 {
	n := min(len(x), len(y))
	if n <= 1 {
		return 0
	}
	x, y = x[:n], y[:n]
	return vec.CrossDev(x, y, vec.Mean(x), vec.Mean(y)) / float64(n-1)
}

// Correlation returns the Pearson correlation coefficient of x and y.
//
// Returns 0 if either input is constant (zero variance) or n <= 1. The
// result is clamped to [-1, 1]; Correlation(x, x) is exactly 1 for any
// non-constant x.
func Correlation[T hwy.Lanes](x, y []T) float64 {
	n := min(len(x), len(y))
	if n <= 1 {
		return 0
	}
	x, y = x[:n], y[:n]
	meanX, meanY := vec.Mean(x), vec.Mean(y)
	return pearson(
		vec.CrossDev(x, y, meanX, meanY),
		vec.SumSquaredDev(x, meanX),
		vec.SumSquaredDev(y, meanY),
	)
}

// pearson combines a cross deviation and the two squared deviations into a
// correlation coefficient. The (n - 1) factors cancel.
func pearson(cross, ssX, ssY float64) float64 {
	if ssX == 0 || ssY == 0 {
		return 0
	}
	r := cross / stdmath.Sqrt(ssX*ssY)
	return max(-1, min(1, r))
}

// CovMatrix writes the k×k sample covariance matrix of the k vectors in vs
// into out (row-major, len(out) >= k*k): out[i*k+j] = Covariance(vs[i], vs[j]).
//
// Only the upper triangle is computed; the lower triangle is mirrored from
// it, so out is exactly symmetric. Rows of the upper triangle are spread
// across pool (nil runs sequentially).
func CovMatrix[T hwy.Lanes](pool *workerpool.Pool, out []float64, vs [][]T) {
	k := len(vs)
	if k == 0 {
		return
	}
	n := len(vs[0])
	means := columnMeans(vs)

	upperTriangle(pool, k, n, func(i, j int) {
		if n <= 1 {
			out[i*k+j] = 0
			return
		}
		out[i*k+j] = vec.CrossDev(vs[i], vs[j], means[i], means[j]) / float64(n-1)
	})
	mirror(out, k)
}

// CorrMatrix writes the k×k Pearson correlation matrix of the k vectors in
// vs into out (row-major, len(out) >= k*k).
//
// The diagonal is 1 for non-constant vectors and 0 for constant ones;
// off-diagonal entries involving a constant vector are 0. out is exactly
// symmetric.
func CorrMatrix[T hwy.Lanes](pool *workerpool.Pool, out []float64, vs [][]T) {
	k := len(vs)
	if k == 0 {
		return
	}
	n := len(vs[0])
	means := columnMeans(vs)

	ss := make([]float64, k)
	pool.ParallelForAtomic(k, func(i int) {
		ss[i] = vec.SumSquaredDev(vs[i], means[i])
	})

	upperTriangle(pool, k, n, func(i, j int) {
		switch {
		case n <= 1 || ss[i] == 0 || ss[j] == 0:
			out[i*k+j] = 0
		case i == j:
			out[i*k+j] = 1
		default:
			out[i*k+j] = pearson(vec.CrossDev(vs[i], vs[j], means[i], means[j]), ss[i], ss[j])
		}
	})
	mirror(out, k)
}

// minParallelMatrixOps is the k*k*n work size below which matrix statistics
// run on the calling goroutine.
const minParallelMatrixOps = 1 << 16

func columnMeans[T hwy.Lanes](vs [][]T) []float64 {
	means := make([]float64, len(vs))
	for i, v := range vs {
		if len(v) > 0 {
			means[i] = vec.Mean(v)
		}
	}
	return means
}

// upperTriangle calls fn(i, j) for every 0 <= i <= j < k. Row i has k - i
// entries, so rows are handed out one at a time for load balance.
func upperTriangle(pool *workerpool.Pool, k, n int, fn func(i, j int)) {
	row := func(i int) {
		for j := i; j < k; j++ {
			fn(i, j)
		}
	}
	if k*k*n < minParallelMatrixOps {
		pool = nil
	}
	pool.ParallelForAtomic(k, row)
}

// mirror copies the upper triangle of the k×k matrix m onto its lower
// triangle.
func mirror(m []float64, k int) {
	for i := 1; i < k; i++ {
		for j := range i {
			m[i*k+j] = m[j*k+i]
		}
	}
}
