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

package engine

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDType(t *testing.T) {
	tests := []struct {
		dt    DType
		name  string
		size  int
		float bool
	}{
		{Float32, "float32", 4, true},
		{Float64, "float64", 8, true},
		{Int32, "int32", 4, false},
		{Uint, "uint", uintSize, false},
		{Invalid, "invalid", 0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.dt.String())
		assert.Equal(t, tt.size, tt.dt.Size(), tt.name)
		assert.Equal(t, tt.float, tt.dt.IsFloat(), tt.name)
	}
	assert.Contains(t, []int{4, 8}, Uint.Size())
}

func TestBufferVector(t *testing.T) {
	data := []float32{1, 2, 3}
	b := Float32s(data)

	assert.False(t, b.IsZero())
	assert.True(t, b.Contiguous())
	assert.Equal(t, Float32, b.DType())
	assert.Equal(t, 1, b.NDim())
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 3, b.Rows())
	assert.Equal(t, 1, b.Cols())
	assert.Equal(t, []int{3}, b.Shape())
	assert.Equal(t, "float32[3]", b.String())

	b.Float32()[0] = 9
	assert.Equal(t, float32(9), data[0], "buffers alias caller memory")

	assert.Nil(t, b.Float64())
	assert.Nil(t, b.Int32())
	assert.Nil(t, b.Uint())
}

func TestBufferMatrix(t *testing.T) {
	b := Matrix64(2, 3, make([]float64, 6))
	assert.Equal(t, 2, b.NDim())
	assert.Equal(t, 6, b.Len())
	assert.Equal(t, []int{2, 3}, b.Shape())
	assert.Equal(t, "float64[2x3]", b.String())

	empty := Matrix32(0, 5, nil)
	assert.False(t, empty.IsZero())
	assert.Equal(t, 0, empty.Len())
}

// wrapDim squared wraps int to exactly 0.
const wrapDim = 1 << (strconv.IntSize / 2)

func TestBufferInvalid(t *testing.T) {
	for name, b := range map[string]Buffer{
		"zero":         {},
		"short data":   Matrix32(2, 2, make([]float32, 3)),
		"long data":    Matrix64(2, 2, make([]float64, 5)),
		"negative dim": MatrixInt32(-1, -2, make([]int32, 2)),
		"overflow":     Matrix64(wrapDim, wrapDim, nil),
		"overflow max": Matrix32(math.MaxInt, 2, make([]float32, 2)),
	} {
		assert.True(t, b.IsZero(), name)
		assert.False(t, b.Contiguous(), name)
		assert.Nil(t, b.Shape(), name)
		assert.Equal(t, "invalid", b.String(), name)
	}
}

func TestOverflowingMatrixIsRejected(t *testing.T) {
	e := newEngine(t, sequentialConfig())
	b := Matrix64(wrapDim, wrapDim, nil)
	require.NotPanics(t, func() {
		_, err := e.Trace(b)
		requireOpError(t, err, opTrace, ErrInvalidBuffer)
	})
}

func TestBufferTypedAccessors(t *testing.T) {
	assert.Equal(t, []float64{1}, Float64s([]float64{1}).Float64())
	assert.Equal(t, []int32{1}, Int32s([]int32{1}).Int32())
	assert.Equal(t, []uint{1}, Uints([]uint{1}).Uint())
	assert.Equal(t, Uint, Uints(nil).DType())
}

func TestLike(t *testing.T) {
	src := MatrixInt32(2, 3, make([]int32, 6))
	b := like(src, Int32)
	assert.True(t, sameShape(src, b))
	assert.Len(t, b.Int32(), 6)

	u := alloc(Uint, 1, 4, 1)
	assert.Len(t, u.Uint(), 4)
}
