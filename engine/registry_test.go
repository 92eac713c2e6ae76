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
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperations(t *testing.T) {
	names := Operations()
	assert.True(t, slices.IsSorted(names))
	for _, want := range []string{
		"add", "sub", "mul", "div", "exp", "log", "sqrt", "sin", "cos", "relu",
		"softmax", "sum", "mean", "max", "min", "median", "mode", "variance",
		"stddev", "dot", "matmul", "norm", "trace", "covariance", "correlation",
		"covMatrix", "corrMatrix", "histogram", "logsoftmax", "transpose", "histogramExact",
		"softmaxRows",
	} {
		assert.Contains(t, names, want)
	}
	assert.Len(t, names, 32)
}

func TestSupports(t *testing.T) {
	e := newEngine(t, sequentialConfig())
	assert.True(t, e.Supports("matmul"))
	assert.False(t, e.Supports("fft"))
	assert.False(t, e.Supports("MatMul"), "names are case sensitive")
}

func TestDescribe(t *testing.T) {
	info, ok := Describe("exp")
	require.True(t, ok)
	assert.Equal(t, OpInfo{Name: "exp", Arity: 1, DTypes: []DType{Float32, Float64}, Result: ResultBuffer}, info)

	info, ok = Describe("covMatrix")
	require.True(t, ok)
	assert.Equal(t, -1, info.Arity)
	assert.Equal(t, ResultNone, info.Result)
	assert.Equal(t, []DType{Float32, Float64, Int32}, info.DTypes)

	info.DTypes[0] = Uint
	again, _ := Describe("covMatrix")
	assert.Equal(t, Float32, again.DTypes[0], "Describe returns a copy")

	_, ok = Describe("fft")
	assert.False(t, ok)
}

func TestCall(t *testing.T) {
	e := newEngine(t, sequentialConfig())
	x := Float64s([]float64{1, 2, 3, 4})

	res, err := e.Call("mean", x)
	require.NoError(t, err)
	assert.Equal(t, ResultScalar, res.Kind)
	assert.Equal(t, 2.5, res.Scalar)

	res, err = e.Call("add", x, x)
	require.NoError(t, err)
	assert.Equal(t, ResultBuffer, res.Kind)
	assert.Equal(t, []float64{2, 4, 6, 8}, res.Buffer.Float64())

	counts := make([]uint, 2)
	res, err = e.Call("histogram", x, Float64s([]float64{0, 2.5, 5}), Uints(counts))
	require.NoError(t, err)
	assert.Equal(t, ResultNone, res.Kind)
	assert.Equal(t, []uint{2, 2}, counts)

	out := make([]float64, 4)
	_, err = e.Call("covMatrix", Matrix64(2, 2, out), x, x)
	require.NoError(t, err)
	assert.Equal(t, []float64{5.0 / 3, 5.0 / 3, 5.0 / 3, 5.0 / 3}, out)
}

func TestCallErrors(t *testing.T) {
	e := newEngine(t, sequentialConfig())
	x := Float32s([]float32{1, 2})

	_, err := e.Call("fft", x)
	requireOpError(t, err, "fft", ErrUnsupportedOperation)

	_, err = e.Call("add", x)
	requireOpError(t, err, "add", ErrInvalidBuffer)

	_, err = e.Call("sum")
	requireOpError(t, err, "sum", ErrInvalidBuffer)

	_, err = e.Call("corrMatrix", Matrix64(1, 1, make([]float64, 1)))
	requireOpError(t, err, "corrMatrix", ErrInvalidBuffer)

	_, err = e.Call("exp", Int32s([]int32{1}))
	requireOpError(t, err, "exp", ErrUnsupportedDType)
}

func TestResultKindString(t *testing.T) {
	assert.Equal(t, "scalar", ResultScalar.String())
	assert.Equal(t, "buffer", ResultBuffer.String())
	assert.Equal(t, "in-place", ResultNone.String())
}
