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

// Package matmul provides matrix multiplication, transpose and trace over
// row-major matrices.
//
// Example usage:
//
//	// C = A * B where A is MxK, B is KxN, C is MxN
//	a := make([]float32, M*K)  // row-major
//	b := make([]float32, K*N)  // row-major
//	c := make([]float32, M*N)  // output, row-major
//
//	matmul.MatMul(a, b, c, M, N, K)
//
// MatMul runs the cache-blocked kernel for float types and the scalar
// triple loop for integer types. ParallelMatMul hands row strips of C to a
// workerpool.Pool once the problem exceeds MinParallelOps multiply-adds.
package matmul
