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
	stdmath "math"

	"github.com/capnhook/capnhook/hwy"
	"github.com/capnhook/capnhook/hwy/contrib/math"
	"github.com/capnhook/capnhook/hwy/contrib/vec"
)

// Softmax computes output[i] = exp(input[i] - max) / Σ exp(input[j] - max).
//
// Subtracting the maximum keeps every exponent at or below zero, so no
// finite input overflows. The normalizing sum is accumulated in float64.
// A NaN anywhere in the input makes every output NaN.
//
// Operates on min(len(input), len(output)) elements; input and output may
// be the same slice.
func Softmax[T hwy.Floats](input, output []T) {
	size := min(len(input), len(output))
	if size == 0 {
		return
	}
	input, output = input[:size], output[:size]

	maxVal := vec.Max(input)
	vMax := hwy.Set(maxVal)
	lanes := vMax.NumLanes()

	// output = exp(input - max)
	ii := 0
	for ; ii+lanes <= size; ii += lanes {
		x := hwy.Sub(hwy.Load(input[ii:]), vMax)
		hwy.Store(math.BaseExpVec(x), output[ii:])
	}
	for i := ii; i < size; i++ {
		output[i] = T(stdmath.Exp(float64(input[i] - maxVal)))
	}

	// Normalize by the sum of exponentials
	sum := vec.Sum(output)
	vec.ScaleTo(output, T(1/sum), output)
}

// LogSoftmax computes output[i] = input[i] - max - log(Σ exp(input[j] - max)).
//
// Operates on min(len(input), len(output)) elements; input and output may
// be the same slice.
func LogSoftmax[T hwy.Floats](input, output []T) {
	size := min(len(input), len(output))
	if size == 0 {
		return
	}
	input, output = input[:size], output[:size]

	maxVal := float64(vec.Max(input))
	var sum float64
	for _, x := range input {
		sum += stdmath.Exp(float64(x) - maxVal)
	}
	logSum := maxVal + stdmath.Log(sum)
	for i, x := range input {
		output[i] = T(float64(x) - logSum)
	}
}
