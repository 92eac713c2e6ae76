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
	"fmt"
	"slices"
	"testing"
)

func TestTranspose(t *testing.T) {
	sizes := []struct{ m, k int }{
		{1, 1}, {4, 4}, {16, 16}, {32, 32}, {64, 64},
		{5, 7}, {17, 23}, {100, 200}, {1, 9}, {9, 1}, // Non-aligned
	}
	for _, size := range sizes {
		t.Run(fmt.Sprintf("%dx%d", size.m, size.k), func(t *testing.T) {
			src := make([]float32, size.m*size.k)
			for i := range src {
				src[i] = float32(i)
			}

			got := make([]float32, size.k*size.m)
			want := make([]float32, size.k*size.m)

			// Reference scalar transpose
			for i := 0; i < size.m; i++ {
				for j := 0; j < size.k; j++ {
					want[j*size.m+i] = src[i*size.k+j]
				}
			}

			Transpose(src, size.m, size.k, got)

			if !slices.Equal(got, want) {
				for i := range got {
					if got[i] != want[i] {
						t.Fatalf("first difference at index %d: got %v, want %v", i, got[i], want[i])
					}
				}
			}
		})
	}
}

func TestTransposeTwiceIsIdentity(t *testing.T) {
	m, k := 19, 37
	src := make([]int32, m*k)
	for i := range src {
		src[i] = int32(i * 3)
	}
	tmp := make([]int32, m*k)
	back := make([]int32, m*k)
	Transpose(src, m, k, tmp)
	Transpose(tmp, k, m, back)
	if !slices.Equal(src, back) {
		t.Errorf("transpose(transpose(A)) != A")
	}
}

func TestTrace(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		n    int
		want float64
	}{
		{"diag 1 5 9", []float64{1, 0, 0, 0, 5, 0, 0, 0, 9}, 3, 15},
		{"full 3x3", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, 3, 15},
		{"1x1", []float64{-2.5}, 1, -2.5},
		{"empty", nil, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Trace(tt.a, tt.n); got != tt.want {
				t.Errorf("Trace = %v, want %v", got, tt.want)
			}
		})
	}
}

func BenchmarkTranspose(b *testing.B) {
	for _, size := range []int{256, 1024} {
		src := make([]float32, size*size)
		dst := make([]float32, size*size)
		b.Run(sizeStr(size), func(b *testing.B) {
			for b.Loop() {
				Transpose(src, size, size, dst)
			}
		})
	}
}
