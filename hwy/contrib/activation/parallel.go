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

package activation

import (
	"github.com/capnhook/capnhook/hwy"
	"github.com/capnhook/capnhook/hwy/contrib/workerpool"
)

// MinParallelActivationOps is the minimum element count before
// parallelizing memory-bound activation operations.
const MinParallelActivationOps = 16384

// ParallelReLU applies ReLU element-wise, splitting the buffer across the
// pool's workers.
//
// Falls back to sequential execution when pool is nil or the element count
// is below MinParallelActivationOps.
func ParallelReLU[T hwy.Lanes](pool *workerpool.Pool, input, output []T) {
	size := min(len(input), len(output))
	if pool == nil || size < MinParallelActivationOps {
		ReLU(input[:size], output[:size])
		return
	}

	pool.ParallelFor(size, func(start, end int) {
		ReLU(input[start:end], output[start:end])
	})
}
