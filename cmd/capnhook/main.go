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

// Command capnhook inspects, benchmarks and self-checks the capnhook engine.
//
// Usage:
//
//	capnhook info                       # CPU features and dispatch level
//	capnhook ops [--dtype int32]        # registered operations
//	capnhook bench --size 1048576 --op add,sum,matmul
//	capnhook verify                     # property checks for every dtype
//
// Engine settings come from the CAPNHOOK_WORKERS,
// CAPNHOOK_PARALLEL_THRESHOLD and CAPNHOOK_REDUCTION_CHUNK environment
// variables; the --workers, --parallel-threshold and --reduction-chunk
// flags override them.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/capnhook/capnhook/engine"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "capnhook:", err)
		os.Exit(1)
	}
}

// engineFlags are the persistent flags overriding engine.ConfigFromEnv.
type engineFlags struct {
	workers           int
	parallelThreshold int
	reductionChunk    int
}

func newRootCmd() *cobra.Command {
	var flags engineFlags
	root := &cobra.Command{
		Use:           "capnhook",
		Short:         "SIMD array-math engine diagnostics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.IntVar(&flags.workers, "workers", 0, "worker pool size (overrides $"+engine.EnvWorkers+")")
	pf.IntVar(&flags.parallelThreshold, "parallel-threshold", 0, "elements before work is split across the pool (overrides $"+engine.EnvParallelThreshold+")")
	pf.IntVar(&flags.reductionChunk, "reduction-chunk", 0, "elements per reduction partial (overrides $"+engine.EnvReductionChunk+")")

	root.AddCommand(
		newInfoCmd(&flags),
		newOpsCmd(),
		newBenchCmd(&flags),
		newVerifyCmd(&flags),
	)
	return root
}

// config resolves the engine configuration: environment first, then any
// flag set explicitly on the command line.
func (f *engineFlags) config(fs *pflag.FlagSet) (engine.Config, error) {
	cfg, err := engine.ConfigFromEnv()
	if err != nil {
		return engine.Config{}, err
	}
	if fs.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fs.Changed("parallel-threshold") {
		cfg.ParallelThreshold = f.parallelThreshold
	}
	if fs.Changed("reduction-chunk") {
		cfg.ReductionChunk = f.reductionChunk
	}
	return cfg, cfg.Validate()
}

func (f *engineFlags) newEngine(fs *pflag.FlagSet) (*engine.Engine, error) {
	cfg, err := f.config(fs)
	if err != nil {
		return nil, err
	}
	return engine.New(cfg)
}

var title = cases.Title(language.English)

// heading prints an underlined section title.
func heading(w io.Writer, s string) {
	s = title.String(s)
	fmt.Fprintf(w, "%s\n%s\n", s, strings.Repeat("=", len(s)))
}
