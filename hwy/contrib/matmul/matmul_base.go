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

// BaseMatMul computes C = A * B with the i-p-j triple loop, for every lane
// type. Integer matrices use it directly; float matrices use it as the
// reference for BlockedMatMul.
//
// C[i,j] = sum(A[i,p] * B[p,j]) for p in 0..K-1
func BaseMatMul[T hwy.Lanes](a, b, c []T, m, n, k int) {
	checkSizes(a, b, c, m, n, k)

	// Clear output
	clear(c[:m*n])

	for i := range m {
		cRow := c[i*n : (i+1)*n]
		for p := range k {
			aip := a[i*k+p]
			bRow := b[p*n : (p+1)*n]
			for j := range n {
				cRow[j] += aip * bRow[j]
			}
		}
	}
}

// MatMul computes C = A * B, choosing BlockedMatMul for float types.
//
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major)
func MatMul[T hwy.Lanes](a, b, c []T, m, n, k int) {
	switch av := any(a).(type) {
	case []float32:
		BlockedMatMul(av, any(b).([]float32), any(c).([]float32), m, n, k)
	case []float64:
		BlockedMatMul(av, any(b).([]float64), any(c).([]float64), m, n, k)
	default:
		BaseMatMul(a, b, c, m, n, k)
	}
}

func checkSizes[T hwy.Lanes](a, b, c []T, m, n, k int) {
	if len(a) < m*k {
		panic("matmul: A slice too short")
	}
	if len(b) < k*n {
		panic("matmul: B slice too short")
	}
	if len(c) < m*n {
		panic("matmul: C slice too short")
	}
}
