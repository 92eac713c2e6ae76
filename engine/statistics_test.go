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
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCovarianceCorrelation(t *testing.T) {
	e := newEngine(t, sequentialConfig())

	for _, pair := range [][2]Buffer{
		{Float64s(sampleX), Float64s(sampleY)},
		{Float32s(to32(sampleX)), Float32s(to32(sampleY))},
	} {
		cov, err := e.Covariance(pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, cmp.Equal(0.6154444444444445, cov, approx), "cov %s = %v", pair[0].DType(), cov)

		corr, err := e.Correlation(pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, cmp.Equal(0.9259292726922456, corr, approx), "corr %s = %v", pair[0].DType(), corr)
	}
}

func TestCorrelationEdgeCases(t *testing.T) {
	e := newEngine(t, sequentialConfig())

	self, err := e.Correlation(Float64s(sampleX), Float64s(sampleX))
	require.NoError(t, err)
	assert.Equal(t, 1.0, self)

	flat, err := e.Correlation(Float64s([]float64{2, 2, 2}), Float64s([]float64{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, flat)

	one, err := e.Covariance(Int32s([]int32{4}), Int32s([]int32{9}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, one)

	_, err = e.Covariance(Float64s(nil), Float64s(nil))
	requireOpError(t, err, opCovariance, ErrEmptyBuffer)

	_, err = e.Correlation(Float64s(sampleX), Float64s(sampleY[:9]))
	requireOpError(t, err, opCorrelation, ErrShapeMismatch)
}

func TestCovMatrix(t *testing.T) {
	e := newEngine(t, sequentialConfig())
	want := []float64{
		0.6165555555555556, 0.6154444444444445, -0.6722222222222223,
		0.6154444444444445, 0.7165555555555556, -1.0166666666666666,
		-0.6722222222222223, -1.0166666666666666, 9.166666666666666,
	}

	out := make([]float64, 9)
	err := e.CovMatrix(Matrix64(3, 3, out), Float64s(sampleX), Float64s(sampleY), Float64s(sampleZ))
	require.NoError(t, err)
	assert.True(t, cmp.Equal(want, out, approx), cmp.Diff(want, out, approx))
	assertSymmetric(t, out, 3)

	out32 := make([]float64, 9)
	err = e.CovMatrix(Matrix64(3, 3, out32), Float32s(to32(sampleX)), Float32s(to32(sampleY)), Float32s(to32(sampleZ)))
	require.NoError(t, err)
	assert.True(t, cmp.Equal(want, out32, approx), cmp.Diff(want, out32, approx))
}

func TestCorrMatrix(t *testing.T) {
	e := newEngine(t, sequentialConfig())
	want := []float64{
		1, 0.9259292726922456, -0.2827619955517919,
		0.9259292726922456, 1, -0.39668696626464284,
		-0.2827619955517919, -0.39668696626464284, 1,
	}

	out := make([]float64, 9)
	err := e.CorrMatrix(Matrix64(3, 3, out), Float64s(sampleX), Float64s(sampleY), Float64s(sampleZ))
	require.NoError(t, err)
	assert.True(t, cmp.Equal(want, out, approx), cmp.Diff(want, out, approx))
	assertSymmetric(t, out, 3)

	single := make([]float64, 1)
	require.NoError(t, e.CorrMatrix(Matrix64(1, 1, single), Int32s([]int32{5, 5, 5})))
	assert.Equal(t, []float64{0}, single, "constant vector has a zero diagonal")
}

func TestMatrixStatsParallel(t *testing.T) {
	seq := newEngine(t, sequentialConfig())
	par := newEngine(t, parallelConfig())
	rng := rand.New(rand.NewSource(17))

	k, n := 12, 8000
	vs := make([]Buffer, k)
	for i := range vs {
		vs[i] = Float32s(randFloat32s(rng, n))
	}

	want := make([]float64, k*k)
	got := make([]float64, k*k)
	require.NoError(t, seq.CorrMatrix(Matrix64(k, k, want), vs...))
	require.NoError(t, par.CorrMatrix(Matrix64(k, k, got), vs...))
	assert.Equal(t, want, got)
	assertSymmetric(t, got, k)
}

func TestMatrixStatsErrors(t *testing.T) {
	e := newEngine(t, sequentialConfig())
	x, y := Float64s(sampleX), Float64s(sampleY)

	err := e.CovMatrix(Matrix64(2, 2, make([]float64, 4)))
	requireOpError(t, err, opCovMatrix, ErrInvalidBuffer)

	out := []float64{-1, -1, -1, -1}
	err = e.CovMatrix(Matrix64(2, 2, out), x, Float64s(sampleY[:5]))
	requireOpError(t, err, opCovMatrix, ErrShapeMismatch)
	assert.Equal(t, []float64{-1, -1, -1, -1}, out)

	err = e.CorrMatrix(Matrix64(2, 2, out), x, Float32s(to32(sampleY)))
	requireOpError(t, err, opCorrMatrix, ErrDTypeMismatch)

	err = e.CorrMatrix(Matrix32(2, 2, make([]float32, 4)), x, y)
	requireOpError(t, err, opCorrMatrix, ErrDTypeMismatch)

	err = e.CorrMatrix(Matrix64(3, 3, make([]float64, 9)), x, y)
	requireOpError(t, err, opCorrMatrix, ErrDimensionMismatch)

	err = e.CorrMatrix(Float64s(make([]float64, 4)), x, y)
	requireOpError(t, err, opCorrMatrix, ErrDimensionMismatch)

	err = e.CovMatrix(Matrix64(1, 1, make([]float64, 1)), Float64s(nil))
	requireOpError(t, err, opCovMatrix, ErrEmptyBuffer)
	assert.Equal(t, []float64{-1, -1, -1, -1}, out)
}

func TestHistogram(t *testing.T) {
	e := newEngine(t, sequentialConfig())
	values := []int32{0, 1, 2, 1, 0, 2, 2, 1, 0}
	edges := []int32{0, 1, 2, 3}

	counts := []uint{99, 99, 99}
	require.NoError(t, e.Histogram(Int32s(values), Int32s(edges), Uints(counts)))
	assert.Equal(t, []uint{3, 3, 3}, counts)

	counts = []uint{99, 99, 99}
	require.NoError(t, e.Histogram(Float32s([]float32{0, 1, 2, 1, 0, 2, 2, 1, 0}), Float32s([]float32{0, 1, 2, 3}), Uints(counts)))
	assert.Equal(t, []uint{3, 3, 3}, counts)

	counts = []uint{99, 99, 99}
	require.NoError(t, e.Histogram(Float64s([]float64{0, 1, 2, 1, 0, 2, 2, 1, 0}), Float64s([]float64{0, 1, 2, 3}), Uints(counts)))
	assert.Equal(t, []uint{3, 3, 3}, counts)
}

func TestHistogramSkipsOutOfRange(t *testing.T) {
	e := newEngine(t, sequentialConfig())
	counts := make([]uint, 2)
	values := Float64s([]float64{-1, 0.5, 3, 3.5, math.NaN(), 1})
	require.NoError(t, e.Histogram(values, Float64s([]float64{0, 1, 3}), Uints(counts)))
	assert.Equal(t, []uint{1, 2}, counts, "last bin is closed")

	require.NoError(t, e.Histogram(Float64s(nil), Float64s([]float64{0, 1, 3}), Uints(counts)))
	assert.Equal(t, []uint{0, 0}, counts)
}

func TestHistogramParallel(t *testing.T) {
	seq := newEngine(t, sequentialConfig())
	par := newEngine(t, parallelConfig())
	rng := rand.New(rand.NewSource(23))

	values := Float32s(randFloat32s(rng, 50_000))
	edges := Float32s([]float32{-100, -50, -10, 0, 10, 50, 100})
	want := make([]uint, 6)
	got := make([]uint, 6)
	require.NoError(t, seq.Histogram(values, edges, Uints(want)))
	require.NoError(t, par.Histogram(values, edges, Uints(got)))
	assert.Equal(t, want, got)

	var total uint
	for _, c := range got {
		total += c
	}
	assert.Equal(t, uint(50_000), total)
}

func TestHistogramErrors(t *testing.T) {
	e := newEngine(t, sequentialConfig())
	values := Float64s([]float64{1, 2})
	counts := []uint{7, 7}

	tests := []struct {
		name   string
		edges  Buffer
		counts Buffer
		want   error
	}{
		{"decreasing edges", Float64s([]float64{0, 2, 1}), Uints(counts), ErrInvalidBuffer},
		{"single edge", Float64s([]float64{0}), Uints(counts[:0]), ErrInvalidBuffer},
		{"nan edge", Float64s([]float64{0, math.NaN(), 2}), Uints(counts), ErrInvalidBuffer},
		{"counts too short", Float64s([]float64{0, 1, 2}), Uints(counts[:1]), ErrInvalidBuffer},
		{"counts not uint", Float64s([]float64{0, 1, 2}), Float64s(make([]float64, 2)), ErrDTypeMismatch},
		{"edges dtype", Float32s([]float32{0, 1, 2}), Uints(counts), ErrDTypeMismatch},
		{"zero counts", Float64s([]float64{0, 1, 2}), Buffer{}, ErrInvalidBuffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Histogram(values, tt.edges, tt.counts)
			requireOpError(t, err, opHistogram, tt.want)
			assert.Equal(t, []uint{7, 7}, counts)
		})
	}
}

func TestHistogramExact(t *testing.T) {
	e := newEngine(t, sequentialConfig())
	counts := []uint{5, 5, 5}
	values := Int32s([]int32{1, 2, 2, 3, 3, 3, 1, 3, 9, 2, 3, 3, 3, 3, 3, 3, 3, 3})
	require.NoError(t, e.HistogramExact(values, Int32s([]int32{3, 2, 7}), Uints(counts)))
	assert.Equal(t, []uint{12, 3, 0}, counts)

	err := e.HistogramExact(values, Int32s([]int32{3, 2}), Uints(counts))
	requireOpError(t, err, opHistogramExact, ErrInvalidBuffer)
}

func assertSymmetric(t *testing.T, m []float64, k int) {
	t.Helper()
	for i := range k {
		for j := range i {
			require.Equal(t, m[i*k+j], m[j*k+i], "m[%d][%d]", i, j)
		}
	}
}
