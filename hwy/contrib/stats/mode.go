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

package stats

import "github.com/capnhook/capnhook/hwy"

// Mode returns the most frequent value in v. Ties go to the value whose
// first occurrence comes earliest in v. NaN never equals anything, so each
// NaN counts as a distinct value seen once.
//
// Panics if v is empty.
func Mode[T hwy.Lanes](v []T) T {
	if len(v) == 0 {
		panic("stats: Mode called on empty slice")
	}

	counts := make(map[T]int, len(v))
	maxCount := 0
	for _, x := range v {
		if x != x {
			maxCount = max(maxCount, 1)
			continue
		}
		counts[x]++
		maxCount = max(maxCount, counts[x])
	}

	// The first element reaching maxCount is the earliest first occurrence
	// among the most frequent values.
	for _, x := range v {
		c := 1
		if x == x {
			c = counts[x]
		}
		if c == maxCount {
			return x
		}
	}
	return v[0]
}
