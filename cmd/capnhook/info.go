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
	"io"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/capnhook/capnhook/hwy"
)

func newInfoCmd(flags *engineFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "print CPU features, dispatch level and engine configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.config(cmd.Flags())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			heading(w, "platform")
			fmt.Fprintf(w, "GOOS: %s\nGOARCH: %s\nNumCPU: %d\n\n", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

			heading(w, "dispatch")
			fmt.Fprintf(w, "Level: %s\nWidth: %d bytes\nNoSimd: %v\n", hwy.CurrentLevel(), hwy.CurrentWidth(), hwy.NoSimdEnv())
			fmt.Fprintf(w, "Lanes: float32=%d float64=%d int32=%d\n\n",
				hwy.MaxLanes[float32](), hwy.MaxLanes[float64](), hwy.MaxLanes[int32]())

			heading(w, "cpu features")
			printFeatures(w)
			fmt.Fprintln(w)

			heading(w, "engine")
			fmt.Fprintf(w, "Workers: %d\nParallelThreshold: %d\nReductionChunk: %d\n",
				cfg.Workers, cfg.ParallelThreshold, cfg.ReductionChunk)
			return nil
		},
	}
}

func printFeatures(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	switch runtime.GOARCH {
	case "amd64":
		fmt.Fprintf(tw, "SSE2\t%v\n", cpu.X86.HasSSE2)
		fmt.Fprintf(tw, "SSE41\t%v\n", cpu.X86.HasSSE41)
		fmt.Fprintf(tw, "AVX\t%v\n", cpu.X86.HasAVX)
		fmt.Fprintf(tw, "AVX2\t%v\n", cpu.X86.HasAVX2)
		fmt.Fprintf(tw, "FMA\t%v\n", cpu.X86.HasFMA)
		fmt.Fprintf(tw, "AVX512F\t%v\n", cpu.X86.HasAVX512F)
		fmt.Fprintf(tw, "AVX512BW\t%v\n", cpu.X86.HasAVX512BW)
		fmt.Fprintf(tw, "AVX512VL\t%v\n", cpu.X86.HasAVX512VL)
	case "arm64":
		fmt.Fprintf(tw, "ASIMD\t%v\t(NEON baseline)\n", cpu.ARM64.HasASIMD)
		fmt.Fprintf(tw, "FP\t%v\n", cpu.ARM64.HasFP)
		fmt.Fprintf(tw, "ASIMDHP\t%v\t(FP16 NEON)\n", cpu.ARM64.HasASIMDHP)
		fmt.Fprintf(tw, "SVE\t%v\n", cpu.ARM64.HasSVE)
		fmt.Fprintf(tw, "SVE2\t%v\n", cpu.ARM64.HasSVE2)
	default:
		fmt.Fprintf(tw, "none detected\t(portable lanes)\n")
	}
}
