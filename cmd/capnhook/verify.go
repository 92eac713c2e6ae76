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
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"slices"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/capnhook/capnhook/engine"
)

// check is one engine property verified for a single dtype. seq never uses
// its worker pool; par sends every operation to the pool.
type check struct {
	name      string
	floatOnly bool
	run       func(seq, par *engine.Engine, dt engine.DType) error
}

type outcome struct {
	check   string
	skipped bool
	err     error
}

var checks = []check{
	{name: "elementwise add is exact", run: checkAdd},
	{name: "division by zero yields zero", run: checkDivZero},
	{name: "softmax sums to one", floatOnly: true, run: checkSoftmax},
	{name: "single element spread is zero", run: checkSingleSpread},
	{name: "empty reductions are rejected", run: checkEmpty},
	{name: "self correlation is one", run: checkSelfCorrelation},
	{name: "covariance matrix is symmetric", run: checkSymmetry},
	{name: "histogram counts", run: checkHistogram},
	{name: "dot rejects length mismatch", run: checkDotMismatch},
	{name: "identity matmul", run: checkIdentity},
	{name: "trace of a diagonal", run: checkTrace},
	{name: "parallel matches sequential", run: checkParallel},
}

func newVerifyCmd(flags *engineFlags) *cobra.Command {
	var dtypes []string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "check engine properties for every dtype",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dts, err := parseDTypes(dtypes)
			if err != nil {
				return err
			}
			cfg, err := flags.config(cmd.Flags())
			if err != nil {
				return err
			}

			seqCfg, parCfg := cfg, cfg
			seqCfg.Workers = 1
			parCfg.Workers = max(cfg.Workers, 2)
			parCfg.ParallelThreshold = 1
			seq, err := engine.New(seqCfg)
			if err != nil {
				return err
			}
			defer seq.Close()
			par, err := engine.New(parCfg)
			if err != nil {
				return err
			}
			defer par.Close()

			results := make([][]outcome, len(dts))
			var g errgroup.Group
			for i, dt := range dts {
				g.Go(func() error {
					results[i] = runSuite(seq, par, dt)
					if n := countFailed(results[i]); n > 0 {
						return fmt.Errorf("%s: %d checks failed", dt, n)
					}
					return nil
				})
			}
			err = g.Wait()

			report(cmd.OutOrStdout(), dts, results)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&dtypes, "dtype", []string{"float32", "float64", "int32"}, "dtypes to verify")
	return cmd
}

func runSuite(seq, par *engine.Engine, dt engine.DType) []outcome {
	return lo.Map(checks, func(c check, _ int) outcome {
		if c.floatOnly && !dt.IsFloat() {
			return outcome{check: c.name, skipped: true}
		}
		return outcome{check: c.name, err: c.run(seq, par, dt)}
	})
}

func countFailed(outcomes []outcome) int {
	return lo.CountBy(outcomes, func(o outcome) bool { return o.err != nil })
}

func report(w io.Writer, dts []engine.DType, results [][]outcome) {
	heading(w, "verification")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	for i, dt := range dts {
		for _, o := range results[i] {
			status := "ok"
			switch {
			case o.skipped:
				status = "skip"
			case o.err != nil:
				status = "FAIL: " + o.err.Error()
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", dt, o.check, status)
		}
	}
}

func checkAdd(seq, _ *engine.Engine, dt engine.DType) error {
	a := lo.Map(lo.Range(9), func(i int, _ int) float64 { return float64(i + 1) })
	b := lo.Map(a, func(v float64, _ int) float64 { return 10 - v })
	got, err := seq.Add(vector(dt, a...), vector(dt, b...))
	if err != nil {
		return err
	}
	if !slices.Equal(values(got), slices.Repeat([]float64{10}, 9)) {
		return fmt.Errorf("got %v", values(got))
	}
	return nil
}

func checkDivZero(seq, _ *engine.Engine, dt engine.DType) error {
	got, err := seq.Div(vector(dt, 4, 6, 8), vector(dt, 2, 0, 4))
	if err != nil {
		return err
	}
	if want := []float64{2, 0, 2}; !slices.Equal(values(got), want) {
		return fmt.Errorf("got %v, want %v", values(got), want)
	}
	return nil
}

func checkSoftmax(seq, _ *engine.Engine, dt engine.DType) error {
	rng := rand.New(rand.NewSource(2))
	got, err := seq.Softmax(vector(dt, random(rng, dt, 1000, -5, 5)...))
	if err != nil {
		return err
	}
	if sum := lo.Sum(values(got)); math.Abs(sum-1) > 1e-5 {
		return fmt.Errorf("sum = %v", sum)
	}
	return nil
}

func checkSingleSpread(seq, _ *engine.Engine, dt engine.DType) error {
	for _, fn := range []func(engine.Buffer) (float64, error){seq.Variance, seq.StdDev} {
		v, err := fn(vector(dt, 7))
		if err != nil {
			return err
		}
		if v != 0 {
			return fmt.Errorf("got %v", v)
		}
	}
	return nil
}

func checkEmpty(seq, _ *engine.Engine, dt engine.DType) error {
	for _, op := range []string{"sum", "mean", "max", "min", "median", "mode", "variance", "stddev"} {
		if _, err := seq.Call(op, vector(dt)); !errors.Is(err, engine.ErrEmptyBuffer) {
			return fmt.Errorf("%s: got %v, want %v", op, err, engine.ErrEmptyBuffer)
		}
	}
	return nil
}

func checkSelfCorrelation(seq, _ *engine.Engine, dt engine.DType) error {
	rng := rand.New(rand.NewSource(3))
	x := vector(dt, random(rng, dt, 200, -1000, 1000)...)
	r, err := seq.Correlation(x, x)
	if err != nil {
		return err
	}
	if r != 1 {
		return fmt.Errorf("got %v", r)
	}
	return nil
}

func checkSymmetry(_, par *engine.Engine, dt engine.DType) error {
	rng := rand.New(rand.NewSource(4))
	const k = 5
	vs := make([]engine.Buffer, k)
	for i := range vs {
		vs[i] = vector(dt, random(rng, dt, 300, -50, 50)...)
	}
	out := make([]float64, k*k)
	if err := par.CovMatrix(engine.Matrix64(k, k, out), vs...); err != nil {
		return err
	}
	for i := range k {
		for j := range i {
			if out[i*k+j] != out[j*k+i] {
				return fmt.Errorf("out[%d][%d] = %v, out[%d][%d] = %v", i, j, out[i*k+j], j, i, out[j*k+i])
			}
		}
	}
	return nil
}

func checkHistogram(seq, _ *engine.Engine, dt engine.DType) error {
	counts := make([]uint, 3)
	err := seq.Histogram(vector(dt, 0, 1, 2, 1, 0, 2, 2, 1, 0), vector(dt, 0, 1, 2, 3), engine.Uints(counts))
	if err != nil {
		return err
	}
	if want := []uint{3, 3, 3}; !slices.Equal(counts, want) {
		return fmt.Errorf("got %v, want %v", counts, want)
	}
	return nil
}

func checkDotMismatch(seq, _ *engine.Engine, dt engine.DType) error {
	_, err := seq.Dot(vector(dt, make([]float64, 999)...), vector(dt, make([]float64, 1000)...))
	if !errors.Is(err, engine.ErrShapeMismatch) {
		return fmt.Errorf("got %v, want %v", err, engine.ErrShapeMismatch)
	}
	return nil
}

func checkIdentity(seq, _ *engine.Engine, dt engine.DType) error {
	const n = 9
	rng := rand.New(rand.NewSource(5))
	id := make([]float64, n*n)
	for i := range n {
		id[i*n+i] = 1
	}
	m := random(rng, dt, n*n, -10, 10)
	got, err := seq.MatMul(matrix(dt, n, n, id...), matrix(dt, n, n, m...))
	if err != nil {
		return err
	}
	if !slices.Equal(values(got), values(matrix(dt, n, n, m...))) {
		return errors.New("I x M != M")
	}
	return nil
}

func checkTrace(seq, _ *engine.Engine, dt engine.DType) error {
	got, err := seq.Trace(matrix(dt, 3, 3, 1, 0, 0, 0, 5, 0, 0, 0, 9))
	if err != nil {
		return err
	}
	if got != 15 {
		return fmt.Errorf("got %v", got)
	}
	return nil
}

func checkParallel(seq, par *engine.Engine, dt engine.DType) error {
	rng := rand.New(rand.NewSource(6))
	a := vector(dt, random(rng, dt, 100_000, -100, 100)...)
	b := vector(dt, random(rng, dt, 100_000, -100, 100)...)

	for _, op := range []string{"sum", "mean", "max", "variance", "median"} {
		want, err := seq.Call(op, a)
		if err != nil {
			return err
		}
		got, err := par.Call(op, a)
		if err != nil {
			return err
		}
		if got.Scalar != want.Scalar {
			return fmt.Errorf("%s: parallel %v, sequential %v", op, got.Scalar, want.Scalar)
		}
	}

	want, err := seq.Mul(a, b)
	if err != nil {
		return err
	}
	got, err := par.Mul(a, b)
	if err != nil {
		return err
	}
	if !slices.Equal(values(got), values(want)) {
		return errors.New("mul: parallel and sequential buffers differ")
	}
	return nil
}
