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
	"fmt"
	stdmath "math"
	"testing"
)

func TestSoftmax(t *testing.T) {
	tests := []struct {
		name  string
		input []float32
	}{
		{
			name:  "simple",
			input: []float32{1.0, 2.0, 3.0, 4.0},
		},
		{
			name:  "negative",
			input: []float32{-1.0, -2.0, -3.0, -4.0},
		},
		{
			name:  "mixed",
			input: []float32{-2.0, -1.0, 0.0, 1.0, 2.0},
		},
		{
			name:  "large values",
			input: []float32{100.0, 101.0, 102.0, 103.0},
		},
		{
			name:  "simd width",
			input: []float32{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			name:  "larger than simd",
			input: []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := make([]float32, len(tt.input))
			Softmax(tt.input, output)

			// Verify properties of softmax:
			// 1. All values between 0 and 1
			// 2. Sum equals 1
			var sum float32
			for i, v := range output {
				if v < 0 || v > 1 {
					t.Errorf("output[%d] = %v, want value in [0, 1]", i, v)
				}
				sum += v
			}

			if stdmath.Abs(float64(sum-1.0)) > 1e-5 {
				t.Errorf("sum of softmax = %v, want 1.0", sum)
			}

			// Verify relative ordering is preserved (larger input -> larger output)
			for i := 0; i < len(tt.input)-1; i++ {
				for j := i + 1; j < len(tt.input); j++ {
					if tt.input[i] > tt.input[j] && output[i] <= output[j] {
						t.Errorf("ordering not preserved: input[%d]=%v > input[%d]=%v but output[%d]=%v <= output[%d]=%v",
							i, tt.input[i], j, tt.input[j], i, output[i], j, output[j])
					}
				}
			}
		})
	}
}

func TestSoftmax64(t *testing.T) {
	input := []float64{1.0, 2.0, 3.0, 4.0}
	output := make([]float64, len(input))

	Softmax(input, output)

	var sum float64
	for _, v := range output {
		sum += v
	}

	if stdmath.Abs(sum-1.0) > 1e-10 {
		t.Errorf("sum of softmax = %v, want 1.0", sum)
	}
}

func TestLogSoftmax(t *testing.T) {
	tests := []struct {
		name  string
		input []float32
	}{
		{
			name:  "simple",
			input: []float32{1.0, 2.0, 3.0, 4.0},
		},
		{
			name:  "negative",
			input: []float32{-1.0, -2.0, -3.0, -4.0},
		},
		{
			name:  "mixed",
			input: []float32{-2.0, -1.0, 0.0, 1.0, 2.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := make([]float32, len(tt.input))
			LogSoftmax(tt.input, output)

			// Verify properties of log-softmax:
			// 1. All values <= 0 (log of probability)
			// 2. exp(log_softmax).sum() = 1
			for i, v := range output {
				if v > 0 {
					t.Errorf("output[%d] = %v, want value <= 0", i, v)
				}
			}

			// Check exp(log_softmax) sums to 1
			var sum float32
			for _, v := range output {
				sum += float32(stdmath.Exp(float64(v)))
			}
			if stdmath.Abs(float64(sum-1.0)) > 1e-5 {
				t.Errorf("sum of exp(log_softmax) = %v, want 1.0", sum)
			}
		})
	}
}

func TestSoftmaxMatchesReference(t *testing.T) {
	input := make([]float64, 37)
	for i := range input {
		input[i] = float64(i%11)*0.6 - 3
	}
	output := make([]float64, len(input))
	Softmax(input, output)

	var denom float64
	for _, x := range input {
		denom += stdmath.Exp(x)
	}
	for i, x := range input {
		want := stdmath.Exp(x) / denom
		if stdmath.Abs(output[i]-want) > 1e-12 {
			t.Errorf("output[%d] = %v, want %v", i, output[i], want)
		}
	}
}

func TestSoftmaxNoOverflow(t *testing.T) {
	input := []float32{1000, 1000, 999, -1000, 1000, 998, 997, 1000, 1000}
	output := make([]float32, len(input))
	Softmax(input, output)
	var sum float64
	for i, v := range output {
		if stdmath.IsNaN(float64(v)) || stdmath.IsInf(float64(v), 0) {
			t.Fatalf("output[%d] = %v, want finite", i, v)
		}
		sum += float64(v)
	}
	if stdmath.Abs(sum-1) > 1e-5 {
		t.Errorf("sum of softmax = %v, want 1.0", sum)
	}
}

func TestSoftmaxInPlace(t *testing.T) {
	data := []float64{1, 2, 3}
	want := make([]float64, len(data))
	Softmax(data, want)
	Softmax(data, data)
	for i := range data {
		if data[i] != want[i] {
			t.Errorf("in-place output[%d] = %v, want %v", i, data[i], want[i])
		}
	}
}

func TestSoftmaxEmpty(t *testing.T) {
	// Must not panic.
	Softmax([]float32{}, []float32{})
	LogSoftmax([]float64(nil), nil)
}

func TestLogSoftmaxMatchesLogOfSoftmax(t *testing.T) {
	input := []float64{0.5, -1, 3, 2, 2, 0, -4, 1, 7, 0.25}
	soft := make([]float64, len(input))
	logSoft := make([]float64, len(input))
	Softmax(input, soft)
	LogSoftmax(input, logSoft)
	for i := range input {
		if want := stdmath.Log(soft[i]); stdmath.Abs(logSoft[i]-want) > 1e-12 {
			t.Errorf("LogSoftmax[%d] = %v, want %v", i, logSoft[i], want)
		}
	}
}

func BenchmarkSoftmax(b *testing.B) {
	for _, n := range []int{64, 4096} {
		input := make([]float32, n)
		for i := range input {
			input[i] = float32(i%32) * 0.1
		}
		output := make([]float32, n)
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for b.Loop() {
				Softmax(input, output)
			}
		})
	}
}
