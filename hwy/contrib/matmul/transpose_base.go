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

import "github.com/capnhook/capnhook/hwy"

// transposeTile is the square tile edge used by Transpose. A 16×16 tile of
// float64 is 2KB, so source and destination tiles stay in L1.
const transposeTile = 16

// Transpose writes the transpose of the M×K matrix src into the K×M matrix
// dst: dst[j*m + i] = src[i*k + j].
//
// The matrix is walked in square tiles so that both the row-major reads and
// the column-major writes stay cache resident.
func Transpose[T hwy.Lanes](src []T, m, k int, dst []T) {
	if len(src) < m*k {
		panic("matmul: src slice too short")
	}
	if len(dst) < m*k {
		panic("matmul: dst slice too short")
	}

	for i0 := 0; i0 < m; i0 += transposeTile {
		iEnd := min(i0+transposeTile, m)
		for j0 := 0; j0 < k; j0 += transposeTile {
			jEnd := min(j0+transposeTile, k)
			for i := i0; i < iEnd; i++ {
				row := src[i*k : i*k+k]
				for j := j0; j < jEnd; j++ {
					dst[j*m+i] = row[j]
				}
			}
		}
	}
}

// Trace returns the sum of the diagonal of the n×n matrix a, accumulated in
// float64.
func Trace[T hwy.Lanes](a []T, n int) float64 {
	if len(a) < n*n {
		panic("matmul: matrix slice too short")
	}
	var sum float64
	for i := range n {
		sum += float64(a[i*n+i])
	}
	return sum
}
