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

package main

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/samber/lo"

	"github.com/capnhook/capnhook/engine"
)

var dtypeNames = map[string]engine.DType{
	"float32": engine.Float32,
	"float64": engine.Float64,
	"int32":   engine.Int32,
	"uint":    engine.Uint,
}

// parseDTypes maps dtype names to DTypes, rejecting unknown names.
func parseDTypes(names []string) ([]engine.DType, error) {
	dts := make([]engine.DType, 0, len(names))
	for _, name := range names {
		dt, ok := dtypeNames[name]
		if !ok {
			known := lo.Keys(dtypeNames)
			slices.Sort(known)
			return nil, fmt.Errorf("unknown dtype %q (want one of %v)", name, known)
		}
		dts = append(dts, dt)
	}
	return lo.Uniq(dts), nil
}

// vector builds a 1D buffer of dt holding vals.
func vector(dt engine.DType, vals ...float64) engine.Buffer {
	switch dt {
	case engine.Float32:
		return engine.Float32s(lo.Map(vals, func(v float64, _ int) float32 { return float32(v) }))
	case engine.Int32:
		return engine.Int32s(lo.Map(vals, func(v float64, _ int) int32 { return int32(v) }))
	default:
		return engine.Float64s(slices.Clone(vals))
	}
}

// matrix builds a rows×cols buffer of dt holding vals in row-major order.
func matrix(dt engine.DType, rows, cols int, vals ...float64) engine.Buffer {
	switch dt {
	case engine.Float32:
		return engine.Matrix32(rows, cols, lo.Map(vals, func(v float64, _ int) float32 { return float32(v) }))
	case engine.Int32:
		return engine.MatrixInt32(rows, cols, lo.Map(vals, func(v float64, _ int) int32 { return int32(v) }))
	default:
		return engine.Matrix64(rows, cols, slices.Clone(vals))
	}
}

// values widens the elements of b to float64.
func values(b engine.Buffer) []float64 {
	switch b.DType() {
	case engine.Float32:
		return lo.Map(b.Float32(), func(v float32, _ int) float64 { return float64(v) })
	case engine.Int32:
		return lo.Map(b.Int32(), func(v int32, _ int) float64 { return float64(v) })
	case engine.Uint:
		return lo.Map(b.Uint(), func(v uint, _ int) float64 { return float64(v) })
	default:
		return b.Float64()
	}
}

// random returns n values in [low, high); whole numbers for Int32 so that
// the int32 buffer holds exactly the same values.
func random(rng *rand.Rand, dt engine.DType, n int, low, high float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		v := low + rng.Float64()*(high-low)
		if dt == engine.Int32 {
			v = float64(int64(v))
		}
		out[i] = v
	}
	return out
}
