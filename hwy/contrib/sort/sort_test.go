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

package sort

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"testing"
)

// TestSortEmpty tests sorting empty slices
func TestSortEmpty(t *testing.T) {
	var empty []float32
	Sort(empty)
	if len(empty) != 0 {
		t.Errorf("Sort(empty) should not modify empty slice")
	}
}

// TestSortSingle tests sorting single element slices
func TestSortSingle(t *testing.T) {
	data := []float32{42.0}
	Sort(data)
	if data[0] != 42.0 {
		t.Errorf("Sort([42]) = %v, want [42]", data)
	}
}

func TestSortPatterns(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	patterns := map[string]func(n int) []float64{
		"random": func(n int) []float64 {
			d := make([]float64, n)
			for i := range d {
				d[i] = rng.NormFloat64()
			}
			return d
		},
		"sorted": func(n int) []float64 {
			d := make([]float64, n)
			for i := range d {
				d[i] = float64(i)
			}
			return d
		},
		"reverse": func(n int) []float64 {
			d := make([]float64, n)
			for i := range d {
				d[i] = float64(n - i)
			}
			return d
		},
		"few distinct": func(n int) []float64 {
			d := make([]float64, n)
			for i := range d {
				d[i] = float64(rng.Intn(4))
			}
			return d
		},
	}
	for name, gen := range patterns {
		for _, n := range []int{2, 31, 32, 33, 100, 10_000} {
			t.Run(fmt.Sprintf("%s/n=%d", name, n), func(t *testing.T) {
				data := gen(n)
				want := slices.Clone(data)
				slices.Sort(want)
				Sort(data)
				if !slices.Equal(data, want) {
					t.Errorf("Sort(%s) mismatch", name)
				}
			})
		}
	}
}

func TestSortUnsigned(t *testing.T) {
	data := []uint{9, 3, 7, 1, 0, ^uint(0), 5, 5}
	Sort(data)
	if !IsSorted(data) {
		t.Errorf("Sort(uint) produced unsorted result: %v", data)
	}
}

func TestHeapsortFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]int32, 500)
	for i := range data {
		data[i] = rng.Int31n(1000) - 500
	}
	want := slices.Clone(data)
	slices.Sort(want)
	sortImpl(data, 0)
	if !slices.Equal(data, want) {
		t.Errorf("sortImpl with depth 0 did not sort")
	}
}

func TestNthElement(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, n := range []int{1, 5, 64, 1001} {
		base := make([]float32, n)
		for i := range base {
			base[i] = float32(rng.Intn(50))
		}
		sorted := slices.Clone(base)
		slices.Sort(sorted)
		for _, k := range []int{0, n / 3, n / 2, n - 1} {
			data := slices.Clone(base)
			NthElement(data, k)
			if data[k] != sorted[k] {
				t.Fatalf("NthElement(n=%d, k=%d) = %v, want %v", n, k, data[k], sorted[k])
			}
			for i := range k {
				if data[i] > data[k] {
					t.Fatalf("NthElement(n=%d, k=%d): data[%d]=%v > pivot %v", n, k, i, data[i], data[k])
				}
			}
			for i := k + 1; i < n; i++ {
				if data[i] < data[k] {
					t.Fatalf("NthElement(n=%d, k=%d): data[%d]=%v < pivot %v", n, k, i, data[i], data[k])
				}
			}
		}
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{"single", []float64{7}, 7},
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"duplicates", []float64{5, 5, 5, 1, 9, 5}, 5},
		{"negative", []float64{-3, -1, -2, -4}, -2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.data); got != tt.want {
				t.Errorf("Median(%v) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestMedianLarge(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, n := range []int{1000, 1001} {
		data := make([]float64, n)
		for i := range data {
			data[i] = rng.Float64()
		}
		sorted := slices.Clone(data)
		slices.Sort(sorted)
		want := sorted[n/2]
		if n%2 == 0 {
			want = (sorted[n/2-1] + sorted[n/2]) / 2
		}
		if got := Median(data); got != want {
			t.Errorf("Median(n=%d) = %v, want %v", n, got, want)
		}
	}
}

func TestMedianLeavesInputUntouched(t *testing.T) {
	data := []float32{9, 1, 8, 2, 7, 3, 6, 4, 5}
	orig := slices.Clone(data)
	_ = Median(data)
	if !slices.Equal(data, orig) {
		t.Errorf("Median modified its input: %v, was %v", data, orig)
	}
}

func TestMedianNaN(t *testing.T) {
	if got := Median([]float64{1, math.NaN(), 3}); !math.IsNaN(got) {
		t.Errorf("Median with NaN = %v, want NaN", got)
	}
}

func TestMedianInt32(t *testing.T) {
	if got := Median([]int32{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("Median(int32) = %v, want 2.5", got)
	}
}

func BenchmarkMedian(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	data := make([]float32, 1<<16)
	for i := range data {
		data[i] = rng.Float32()
	}
	for b.Loop() {
		_ = Median(data)
	}
}
