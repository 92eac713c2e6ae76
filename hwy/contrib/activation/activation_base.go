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

// Package activation provides elementwise activation kernels.
package activation

import "github.com/capnhook/capnhook/hwy"

// ReLU computes the Rectified Linear Unit: output[i] = max(input[i], 0).
//
// NaN inputs stay NaN. Operates on min(len(input), len(output)) elements;
// input and output may be the same slice.
func ReLU[T hwy.Lanes](input, output []T) {
	size := min(len(input), len(output))
	if size == 0 {
		return
	}

	vZero := hwy.Zero[T]()
	lanes := vZero.NumLanes()
	ii := 0

	// Process full vectors
	for ; ii+lanes <= size; ii += lanes {
		x := hwy.Load(input[ii:])

		// ReLU(x) = max(0, x)
		result := hwy.Max(x, vZero)

		hwy.Store(result, output[ii:])
	}

	// Handle tail elements
	for i := ii; i < size; i++ {
		output[i] = max(input[i], 0)
	}
}
