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

// Package math provides the elementwise transcendental kernels of capnhook:
// Exp, Log, Sqrt, Sin and Cos over float32 and float64 buffers.
//
// # Vector Functions
//
// The Base*Vec functions work on a single hwy.Vec and are the building
// blocks for composed kernels such as softmax:
//   - BaseExpVec(x hwy.Vec[T]) hwy.Vec[T] - e^x
//   - BaseLogVec(x hwy.Vec[T]) hwy.Vec[T] - ln(x)
//   - BaseSinVec(x hwy.Vec[T]) hwy.Vec[T]
//   - BaseCosVec(x hwy.Vec[T]) hwy.Vec[T]
//
// Sqrt is a core op in the hwy package (hwy.Sqrt).
//
// # Slice Functions
//
// The *To functions write dst[i] = f(src[i]) over min(len(dst), len(src))
// elements without allocating:
//
//	math.ExpTo(dst, src)
//	math.LogTo(dst, src)
//
// Every lane is evaluated in float64 with the Go standard library and
// rounded once to T. There is no domain clamping: log and sqrt of a
// negative input yield NaN, log(0) yields -Inf and exp overflow yields +Inf.
package math
