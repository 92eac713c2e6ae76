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
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/capnhook/capnhook/engine"
)

func newOpsCmd() *cobra.Command {
	var dtype, result string
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "list the operations accepted by Engine.Call",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := listOps(dtype, result)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			heading(w, "operations")
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tARITY\tRESULT\tDTYPES")
			for _, info := range infos {
				arity := fmt.Sprint(info.Arity)
				if info.Arity < 0 {
					arity = "1+k"
				}
				dts := lo.Map(info.DTypes, func(dt engine.DType, _ int) string { return dt.String() })
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, arity, info.Result, strings.Join(dts, ","))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&dtype, "dtype", "", "only operations accepting this dtype")
	cmd.Flags().StringVar(&result, "result", "", "only operations with this result kind (scalar, buffer, in-place)")
	return cmd
}

// listOps returns the registered operations, optionally filtered by dtype
// name and result kind.
func listOps(dtype, result string) ([]engine.OpInfo, error) {
	infos := lo.Map(engine.Operations(), func(name string, _ int) engine.OpInfo {
		info, _ := engine.Describe(name)
		return info
	})
	if dtype != "" {
		dts, err := parseDTypes([]string{dtype})
		if err != nil {
			return nil, err
		}
		if dts[0] == engine.Uint {
			return nil, errors.New("dtype uint is only accepted as histogram counts, not as an operand")
		}
		infos = lo.Filter(infos, func(info engine.OpInfo, _ int) bool {
			return lo.Contains(info.DTypes, dts[0])
		})
	}
	if result != "" {
		kinds := []engine.ResultKind{engine.ResultNone, engine.ResultScalar, engine.ResultBuffer}
		kind, ok := lo.Find(kinds, func(k engine.ResultKind) bool { return k.String() == result })
		if !ok {
			return nil, fmt.Errorf("unknown result kind %q", result)
		}
		infos = lo.Filter(infos, func(info engine.OpInfo, _ int) bool { return info.Result == kind })
	}
	return infos, nil
}
