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

package matmul

import (
	"github.com/capnhook/capnhook/hwy"
	"github.com/capnhook/capnhook/hwy/contrib/workerpool"
)

const (
	// MinParallelOps is the minimum number of multiply-adds (m*n*k) before
	// parallelizing.
	MinParallelOps = 64 * 64 * 64

	// RowsPerStrip defines how many rows each worker processes at a time.
	// Tuned for good load balancing while keeping strips large enough for cache efficiency.
	RowsPerStrip = 64
)

// ParallelMatMul computes C = A * B using the pool's workers.
// Divides C into horizontal strips of RowsPerStrip rows and runs MatMul on
// each strip. Every output element is written by exactly one strip.
//
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major)
//
// Falls back to MatMul when pool is nil or m*n*k < MinParallelOps.
func ParallelMatMul[T hwy.Lanes](pool *workerpool.Pool, a, b, c []T, m, n, k int) {
	if pool == nil || m*n*k < MinParallelOps || m <= RowsPerStrip {
		MatMul(a, b, c, m, n, k)
		return
	}
	checkSizes(a, b, c, m, n, k)

	numStrips := (m + RowsPerStrip - 1) / RowsPerStrip
	pool.ParallelForAtomic(numStrips, func(strip int) {
		rowStart := strip * RowsPerStrip
		rowEnd := min(rowStart+RowsPerStrip, m)

		aStrip := a[rowStart*k : rowEnd*k]
		cStrip := c[rowStart*n : rowEnd*n]
		MatMul(aStrip, b, cStrip, rowEnd-rowStart, n, k)
	})
}
