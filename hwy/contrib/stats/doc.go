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

// Package stats provides descriptive and relationship statistics over
// numeric slices: covariance and correlation (pairwise and as matrices),
// edge-based and exact-value histograms, and the mode.
//
// All statistics are sample statistics (ddof = 1) accumulated in float64.
// Pairwise kernels take equal-length slices; like the other hwy/contrib
// packages they assume validated input and use the minimum length.
package stats
