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

package nn

import (
	"github.com/capnhook/capnhook/hwy"
	"github.com/capnhook/capnhook/hwy/contrib/workerpool"
)

// MinParallelSoftmaxOps is the minimum total element count before rows are
// spread across workers.
const MinParallelSoftmaxOps = 16384

// ParallelApplyRows applies fn to each row of a [rows, cols] matrix in
// parallel. fn receives the input and output slices for a single row.
//
// Falls back to sequential execution when pool is nil or the total element
// count is below MinParallelSoftmaxOps.
func ParallelApplyRows[T hwy.Floats](pool *workerpool.Pool, input, output []T, rows, cols int, fn func(input, output []T)) {
	if pool == nil || rows*cols < MinParallelSoftmaxOps {
		for r := range rows {
			off := r * cols
			fn(input[off:off+cols], output[off:off+cols])
		}
		return
	}

	pool.ParallelForAtomic(rows, func(r int) {
		off := r * cols
		fn(input[off:off+cols], output[off:off+cols])
	})
}

// ParallelSoftmax applies Softmax independently to each row of a [rows, cols]
// matrix in parallel.
func ParallelSoftmax[T hwy.Floats](pool *workerpool.Pool, input, output []T, rows, cols int) {
	ParallelApplyRows(pool, input, output, rows, cols, Softmax[T])
}

// ParallelLogSoftmax applies LogSoftmax independently to each row of a
// [rows, cols] matrix in parallel.
func ParallelLogSoftmax[T hwy.Floats](pool *workerpool.Pool, input, output []T, rows, cols int) {
	ParallelApplyRows(pool, input, output, rows, cols, LogSoftmax[T])
}
