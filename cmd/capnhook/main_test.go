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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capnhook/capnhook/engine"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestInfoCommand(t *testing.T) {
	out, err := execute(t, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Dispatch\n")
	assert.Contains(t, out, "Level: ")
	assert.Contains(t, out, "Cpu Features")
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv(engine.EnvWorkers, "3")
	t.Setenv(engine.EnvReductionChunk, "512")

	out, err := execute(t, "--workers", "5", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Workers: 5")
	assert.Contains(t, out, "ReductionChunk: 512")

	_, err = execute(t, "--parallel-threshold", "0", "info")
	require.ErrorIs(t, err, engine.ErrInvalidConfig)
}

func TestOpsCommand(t *testing.T) {
	out, err := execute(t, "ops", "--dtype", "int32")
	require.NoError(t, err)
	assert.Contains(t, out, "matmul")
	assert.Contains(t, out, "histogram")
	assert.NotContains(t, out, "softmax")

	out, err = execute(t, "ops", "--result", "in-place")
	require.NoError(t, err)
	assert.Contains(t, out, "covMatrix")
	assert.NotContains(t, out, "dot")

	_, err = execute(t, "ops", "--dtype", "complex64")
	require.Error(t, err)

	_, err = execute(t, "ops", "--dtype", "uint")
	require.ErrorContains(t, err, "histogram counts")

	_, err = execute(t, "ops", "--result", "tensor")
	require.Error(t, err)
}

func TestListOps(t *testing.T) {
	all, err := listOps("", "")
	require.NoError(t, err)
	assert.Len(t, all, len(engine.Operations()))

	scalars, err := listOps("float64", "scalar")
	require.NoError(t, err)
	for _, info := range scalars {
		assert.Equal(t, engine.ResultScalar, info.Result, info.Name)
	}
}

func TestBenchCommand(t *testing.T) {
	out, err := execute(t, "bench", "--size", "300", "--repeat", "1",
		"--op", "add,exp,matmul,histogram,covMatrix,trace", "--dtype", "float32,int32")
	require.NoError(t, err)
	assert.Contains(t, out, "matmul")
	assert.Contains(t, out, "covMatrix")

	_, err = execute(t, "bench", "--op", "fft")
	require.Error(t, err)

	_, err = execute(t, "bench", "--size", "0")
	require.Error(t, err)
}

func TestVerifyCommand(t *testing.T) {
	out, err := execute(t, "--workers", "2", "verify")
	require.NoError(t, err, out)
	assert.NotContains(t, out, "FAIL")
	assert.Contains(t, out, "int32")
	assert.Contains(t, out, "skip", "softmax is float only")
}

func TestRunSuite(t *testing.T) {
	seq, err := engine.New(engine.Config{Workers: 1, ParallelThreshold: 1 << 15, ReductionChunk: 1 << 12})
	require.NoError(t, err)
	defer seq.Close()
	par, err := engine.New(engine.Config{Workers: 3, ParallelThreshold: 1, ReductionChunk: 1 << 12})
	require.NoError(t, err)
	defer par.Close()

	for _, dt := range []engine.DType{engine.Float32, engine.Float64, engine.Int32} {
		for _, o := range runSuite(seq, par, dt) {
			assert.NoError(t, o.err, "%s: %s", dt, o.check)
		}
	}
}

func TestBufferHelpers(t *testing.T) {
	b := vector(engine.Int32, 1, 2.9, -3)
	assert.Equal(t, []int32{1, 2, -3}, b.Int32())
	assert.Equal(t, []float64{1, 2, -3}, values(b))

	m := matrix(engine.Float32, 2, 1, 0.5, 1.5)
	assert.Equal(t, []int{2, 1}, m.Shape())

	dts, err := parseDTypes([]string{"float32", "float32", "uint"})
	require.NoError(t, err)
	assert.Equal(t, []engine.DType{engine.Float32, engine.Uint}, dts)
}
