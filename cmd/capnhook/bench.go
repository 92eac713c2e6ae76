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
	"math"
	"math/rand"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/capnhook/capnhook/engine"
)

// defaultBenchOps mirrors the operation mix of the reference benchmark.
var defaultBenchOps = []string{
	"add", "mul", "div", "exp", "softmax",
	"sum", "mean", "variance", "median",
	"dot", "matmul", "histogram",
}

func newBenchCmd(flags *engineFlags) *cobra.Command {
	var (
		size, repeat int
		ops, dtypes  []string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "time operations on random buffers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if size < 1 || repeat < 1 {
				return fmt.Errorf("--size and --repeat must be positive")
			}
			dts, err := parseDTypes(dtypes)
			if err != nil {
				return err
			}
			if unknown := lo.Filter(ops, func(op string, _ int) bool {
				_, ok := engine.Describe(op)
				return !ok
			}); len(unknown) > 0 {
				return fmt.Errorf("unknown operations %v, see 'capnhook ops'", unknown)
			}

			e, err := flags.newEngine(cmd.Flags())
			if err != nil {
				return err
			}
			defer e.Close()

			w := cmd.OutOrStdout()
			heading(w, fmt.Sprintf("benchmark (%d workers)", e.Config().Workers))
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "OP\tDTYPE\tELEMENTS\tNS/OP\tMELEM/S\t")

			rng := rand.New(rand.NewSource(1))
			for _, op := range lo.Uniq(ops) {
				info, _ := engine.Describe(op)
				for _, dt := range dts {
					if !lo.Contains(info.DTypes, dt) {
						continue
					}
					args, elems := benchArgs(rng, info, dt, size)
					per, err := timeOp(e, op, args, repeat)
					if err != nil {
						return fmt.Errorf("%s/%s: %w", op, dt, err)
					}
					rate := float64(elems) / per.Seconds() / 1e6
					fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.1f\t\n", op, dt, elems, per.Nanoseconds(), rate)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&size, "size", 1<<20, "elements per input buffer")
	cmd.Flags().IntVar(&repeat, "repeat", 10, "timed calls per operation")
	cmd.Flags().StringSliceVar(&ops, "op", defaultBenchOps, "operations to time")
	cmd.Flags().StringSliceVar(&dtypes, "dtype", []string{"float32", "float64"}, "dtypes to time")
	return cmd
}

// maxBenchSide caps square matrix operands so matmul stays interactive.
const maxBenchSide = 512

// benchArgs builds the operands for one timed call and returns the number
// of input elements they hold.
func benchArgs(rng *rand.Rand, info engine.OpInfo, dt engine.DType, size int) ([]engine.Buffer, int) {
	vec := func(n int) engine.Buffer { return vector(dt, random(rng, dt, n, 1, 100)...) }
	side := min(maxBenchSide, max(1, int(math.Sqrt(float64(size)))))
	square := func() engine.Buffer { return matrix(dt, side, side, random(rng, dt, side*side, 1, 100)...) }

	switch info.Name {
	case "matmul":
		return []engine.Buffer{square(), square()}, 2 * side * side
	case "trace", "transpose":
		return []engine.Buffer{square()}, side * side
	case "histogram":
		edges := lo.Map(lo.Range(11), func(i int, _ int) float64 { return float64(i * 10) })
		return []engine.Buffer{vec(size), vector(dt, edges...), engine.Uints(make([]uint, 10))}, size
	case "histogramExact":
		bins := lo.Map(lo.Range(10), func(i int, _ int) float64 { return float64(i + 1) })
		return []engine.Buffer{vec(size), vector(dt, bins...), engine.Uints(make([]uint, 10))}, size
	case "covMatrix", "corrMatrix":
		const k = 4
		n := max(2, size/k)
		args := []engine.Buffer{engine.Matrix64(k, k, make([]float64, k*k))}
		for range k {
			args = append(args, vec(n))
		}
		return args, k * n
	}
	if info.Arity == 2 {
		return []engine.Buffer{vec(size), vec(size)}, 2 * size
	}
	return []engine.Buffer{vec(size)}, size
}

// timeOp runs op once untimed, then returns the mean duration of repeat
// calls.
func timeOp(e *engine.Engine, op string, args []engine.Buffer, repeat int) (time.Duration, error) {
	if _, err := e.Call(op, args...); err != nil {
		return 0, err
	}
	start := time.Now()
	for range repeat {
		if _, err := e.Call(op, args...); err != nil {
			return 0, err
		}
	}
	return max(time.Since(start)/time.Duration(repeat), time.Nanosecond), nil
}
