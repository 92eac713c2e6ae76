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

// Block size tuned for L1 cache (32KB typical).
// 3 blocks of 48x48 float32 = 3 * 48 * 48 * 4 = 27KB < 32KB L1.
// Must be a multiple of 16 for AVX-512 alignment.
const BlockSize = 48

// microRows is the number of rows in a register micro-tile.
const microRows = 4

// BlockedMatMul computes C = A * B using cache-tiled blocking with register
// accumulation.
//
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major)
//
// Accumulators are held across the entire K dimension to minimize memory
// traffic. Each micro-tile covers 4 rows × 2 vector widths of output;
// leftover rows are handled in pairs, then singly.
func BlockedMatMul[T hwy.Floats](a, b, c []T, m, n, k int) {
	checkSizes(a, b, c, m, n, k)
	if m == 0 || n == 0 {
		return
	}
	if k == 0 {
		clear(c[:m*n])
		return
	}

	// Block over output dimensions (i, j) for cache locality.
	// Process full K dimension per (i,j) block to maximize register reuse.
	for i0 := 0; i0 < m; i0 += BlockSize {
		iEnd := min(i0+BlockSize, m)

		for j0 := 0; j0 < n; j0 += BlockSize {
			jEnd := min(j0+BlockSize, n)

			i := i0
			for ; i+microRows <= iEnd; i += microRows {
				tile4Rows(a, b, c, i, j0, jEnd, n, k)
			}
			for ; i+2 <= iEnd; i += 2 {
				tile2Rows(a, b, c, i, j0, jEnd, n, k)
			}
			if i < iEnd {
				tile1Row(a, b, c, i, j0, jEnd, n, k)
			}
		}
	}
}

// tile4Rows computes C[i:i+4, j0:jEnd].
func tile4Rows[T hwy.Floats](a, b, c []T, i, j0, jEnd, n, k int) {
	lanes := hwy.MaxLanes[T]()
	nr := lanes * 2 // Columns per micro-tile (2 vector widths)
	a0, a1, a2, a3 := a[i*k:], a[(i+1)*k:], a[(i+2)*k:], a[(i+3)*k:]

	j := j0
	for ; j+nr <= jEnd; j += nr {
		// 8 accumulators (4 rows × 2 column strips)
		acc00, acc01 := hwy.Zero[T](), hwy.Zero[T]()
		acc10, acc11 := hwy.Zero[T](), hwy.Zero[T]()
		acc20, acc21 := hwy.Zero[T](), hwy.Zero[T]()
		acc30, acc31 := hwy.Zero[T](), hwy.Zero[T]()

		for p := range k {
			vA0 := hwy.Set(a0[p])
			vA1 := hwy.Set(a1[p])
			vA2 := hwy.Set(a2[p])
			vA3 := hwy.Set(a3[p])

			bRow := b[p*n+j:]
			vB0 := hwy.Load(bRow)
			vB1 := hwy.Load(bRow[lanes:])

			acc00 = hwy.MulAdd(vA0, vB0, acc00)
			acc01 = hwy.MulAdd(vA0, vB1, acc01)
			acc10 = hwy.MulAdd(vA1, vB0, acc10)
			acc11 = hwy.MulAdd(vA1, vB1, acc11)
			acc20 = hwy.MulAdd(vA2, vB0, acc20)
			acc21 = hwy.MulAdd(vA2, vB1, acc21)
			acc30 = hwy.MulAdd(vA3, vB0, acc30)
			acc31 = hwy.MulAdd(vA3, vB1, acc31)
		}

		hwy.Store(acc00, c[i*n+j:])
		hwy.Store(acc01, c[i*n+j+lanes:])
		hwy.Store(acc10, c[(i+1)*n+j:])
		hwy.Store(acc11, c[(i+1)*n+j+lanes:])
		hwy.Store(acc20, c[(i+2)*n+j:])
		hwy.Store(acc21, c[(i+2)*n+j+lanes:])
		hwy.Store(acc30, c[(i+3)*n+j:])
		hwy.Store(acc31, c[(i+3)*n+j+lanes:])
	}

	// Single column strip
	for ; j+lanes <= jEnd; j += lanes {
		acc0, acc1, acc2, acc3 := hwy.Zero[T](), hwy.Zero[T](), hwy.Zero[T](), hwy.Zero[T]()
		for p := range k {
			vB := hwy.Load(b[p*n+j:])
			acc0 = hwy.MulAdd(hwy.Set(a0[p]), vB, acc0)
			acc1 = hwy.MulAdd(hwy.Set(a1[p]), vB, acc1)
			acc2 = hwy.MulAdd(hwy.Set(a2[p]), vB, acc2)
			acc3 = hwy.MulAdd(hwy.Set(a3[p]), vB, acc3)
		}
		hwy.Store(acc0, c[i*n+j:])
		hwy.Store(acc1, c[(i+1)*n+j:])
		hwy.Store(acc2, c[(i+2)*n+j:])
		hwy.Store(acc3, c[(i+3)*n+j:])
	}

	// Scalar tail
	for ; j < jEnd; j++ {
		var sum0, sum1, sum2, sum3 T
		for p := range k {
			bpj := b[p*n+j]
			sum0 += a0[p] * bpj
			sum1 += a1[p] * bpj
			sum2 += a2[p] * bpj
			sum3 += a3[p] * bpj
		}
		c[i*n+j] = sum0
		c[(i+1)*n+j] = sum1
		c[(i+2)*n+j] = sum2
		c[(i+3)*n+j] = sum3
	}
}

// tile2Rows computes C[i:i+2, j0:jEnd] for the rows left over when the
// block height is not a multiple of 4.
func tile2Rows[T hwy.Floats](a, b, c []T, i, j0, jEnd, n, k int) {
	lanes := hwy.MaxLanes[T]()
	a0, a1 := a[i*k:], a[(i+1)*k:]

	j := j0
	for ; j+lanes <= jEnd; j += lanes {
		acc0, acc1 := hwy.Zero[T](), hwy.Zero[T]()
		for p := range k {
			vB := hwy.Load(b[p*n+j:])
			acc0 = hwy.MulAdd(hwy.Set(a0[p]), vB, acc0)
			acc1 = hwy.MulAdd(hwy.Set(a1[p]), vB, acc1)
		}
		hwy.Store(acc0, c[i*n+j:])
		hwy.Store(acc1, c[(i+1)*n+j:])
	}

	for ; j < jEnd; j++ {
		var sum0, sum1 T
		for p := range k {
			bp := b[p*n+j]
			sum0 += a0[p] * bp
			sum1 += a1[p] * bp
		}
		c[i*n+j] = sum0
		c[(i+1)*n+j] = sum1
	}
}

// tile1Row computes C[i, j0:jEnd].
func tile1Row[T hwy.Floats](a, b, c []T, i, j0, jEnd, n, k int) {
	lanes := hwy.MaxLanes[T]()
	aRow := a[i*k:]

	j := j0
	for ; j+lanes <= jEnd; j += lanes {
		acc := hwy.Zero[T]()
		for p := range k {
			acc = hwy.MulAdd(hwy.Set(aRow[p]), hwy.Load(b[p*n+j:]), acc)
		}
		hwy.Store(acc, c[i*n+j:])
	}

	for ; j < jEnd; j++ {
		var sum T
		for p := range k {
			sum += aRow[p] * b[p*n+j]
		}
		c[i*n+j] = sum
	}
}
