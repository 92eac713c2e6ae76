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

// Package nn provides normalization kernels over probability vectors.
//
// # Supported Operations
//
//   - Softmax - numerically stabilized softmax over a slice
//   - LogSoftmax - log of softmax, computed without forming the softmax
//   - ParallelSoftmax / ParallelLogSoftmax - the same, row by row over a
//     [rows, cols] matrix
//
// # Example Usage
//
//	func ComputeSoftmax(logits []float32) []float32 {
//	    probs := make([]float32, len(logits))
//	    nn.Softmax(logits, probs)
//	    return probs
//	}
package nn
