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

package vec

import (
	"math"

	"github.com/capnhook/capnhook/hwy"
	"github.com/capnhook/capnhook/hwy/contrib/workerpool"
)

// The parallel reductions split the input into fixed chunks of chunkSize
// elements, reduce each chunk with the sequential kernel and merge the
// partials in chunk order. Chunk boundaries depend only on len(v) and
// chunkSize, so results are identical for any worker count. A nil pool runs
// every chunk on the calling goroutine.

// ParallelSum is the chunked form of Sum.
func ParallelSum[T hwy.Lanes](pool *workerpool.Pool, v []T, chunkSize int) float64 {
	partials := make([]float64, workerpool.NumChunks(len(v), chunkSize))
	pool.ParallelChunks(len(v), chunkSize, func(chunk, start, end int) {
		partials[chunk] = Sum(v[start:end])
	})
	var total float64
	for _, p := range partials {
		total += p
	}
	return total
}

// ParallelMean is the chunked form of Mean. Panics if v is empty.
func ParallelMean[T hwy.Lanes](pool *workerpool.Pool, v []T, chunkSize int) float64 {
	if len(v) == 0 {
		panic("vec: ParallelMean called on empty slice")
	}
	return ParallelSum(pool, v, chunkSize) / float64(len(v))
}

// ParallelMin is the chunked form of Min. Panics if v is empty.
func ParallelMin[T hwy.Lanes](pool *workerpool.Pool, v []T, chunkSize int) T {
	if len(v) == 0 {
		panic("vec: ParallelMin called on empty slice")
	}
	partials := make([]T, workerpool.NumChunks(len(v), chunkSize))
	pool.ParallelChunks(len(v), chunkSize, func(chunk, start, end int) {
		partials[chunk] = Min(v[start:end])
	})
	return Min(partials)
}

// ParallelMax is the chunked form of Max. Panics if v is empty.
func ParallelMax[T hwy.Lanes](pool *workerpool.Pool, v []T, chunkSize int) T {
	if len(v) == 0 {
		panic("vec: ParallelMax called on empty slice")
	}
	partials := make([]T, workerpool.NumChunks(len(v), chunkSize))
	pool.ParallelChunks(len(v), chunkSize, func(chunk, start, end int) {
		partials[chunk] = Max(v[start:end])
	})
	return Max(partials)
}

// ParallelSumSquaredDev is the chunked form of SumSquaredDev.
func ParallelSumSquaredDev[T hwy.Lanes](pool *workerpool.Pool, v []T, mean float64, chunkSize int) float64 {
	partials := make([]float64, workerpool.NumChunks(len(v), chunkSize))
	pool.ParallelChunks(len(v), chunkSize, func(chunk, start, end int) {
		partials[chunk] = SumSquaredDev(v[start:end], mean)
	})
	var total float64
	for _, p := range partials {
		total += p
	}
	return total
}

// ParallelVariance is the chunked form of Variance. Panics if v is empty.
func ParallelVariance[T hwy.Lanes](pool *workerpool.Pool, v []T, chunkSize int) float64 {
	if len(v) == 0 {
		panic("vec: ParallelVariance called on empty slice")
	}
	if len(v) == 1 {
		return 0
	}
	mean := ParallelMean(pool, v, chunkSize)
	return ParallelSumSquaredDev(pool, v, mean, chunkSize) / float64(len(v)-1)
}

// ParallelStdDev is the chunked form of StdDev.
func ParallelStdDev[T hwy.Lanes](pool *workerpool.Pool, v []T, chunkSize int) float64 {
	return math.Sqrt(ParallelVariance(pool, v, chunkSize))
}

// ParallelDot is the chunked form of Dot.
func ParallelDot[T hwy.Lanes](pool *workerpool.Pool, a, b []T, chunkSize int) float64 {
	n := min(len(a), len(b))
	partials := make([]float64, workerpool.NumChunks(n, chunkSize))
	pool.ParallelChunks(n, chunkSize, func(chunk, start, end int) {
		partials[chunk] = Dot(a[start:end], b[start:end])
	})
	var total float64
	for _, p := range partials {
		total += p
	}
	return total
}

// ParallelNorm is the chunked form of Norm.
func ParallelNorm[T hwy.Lanes](pool *workerpool.Pool, v []T, chunkSize int) float64 {
	return math.Sqrt(ParallelDot(pool, v, v, chunkSize))
}

// ParallelApply runs an elementwise kernel over [0, n) in contiguous ranges.
// Elementwise outputs do not depend on how the range is split.
//
// Example:
//
//	vec.ParallelApply(pool, len(dst), func(start, end int) {
//		vec.AddTo(dst[start:end], a[start:end], b[start:end])
//	})
func ParallelApply(pool *workerpool.Pool, n int, fn func(start, end int)) {
	pool.ParallelFor(n, fn)
}
