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

// Package sort provides in-place sorting and order-statistic selection for
// numeric slices, the building blocks of Median.
//
// # Supported Types
//
// Every hwy.Lanes type is supported: float32, float64, the signed and
// unsigned integers.
//
// # Example Usage
//
//	func ProcessData(data []float32) {
//	    sort.Sort(data)  // In-place ascending sort
//	}
//
//	func Middle(data []float64) float64 {
//	    return sort.Median(data)  // data is left untouched
//	}
//
// # NaN Handling
//
// Sort and NthElement order slices by the < operator and assume NaN-free
// input. Median checks for NaN first and returns NaN if any is present.
package sort
