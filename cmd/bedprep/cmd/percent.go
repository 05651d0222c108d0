// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bedprep/coverage"
	"v.io/x/lib/cmdline"
)

func newCmdPercent() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "percent",
		Short:    "Print the percentage of a genome covered by a BED feature set",
		ArgsName: "genome.fai features.bed",
	}
	opts := coverage.DefaultOpts
	cmd.Flags.BoolVar(&opts.Merge, "merge", false, "Count bases covered by overlapping features once. Input must be sorted.")
	cmd.Flags.BoolVar(&opts.Invert, "invert", false, "Count the gaps between features on each chromosome instead. Input must be sorted.")
	cmd.Flags.IntVar(&opts.MinFields, "min-fields", opts.MinFields, "Minimum number of columns per feature")
	cmd.Flags.StringVar(&opts.Label, "label", opts.Label, "Feature set name used in the report")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("percent takes genome.fai features.bed, but found %v", argv)
		}
		res, err := coverage.Compute(vcontext.Background(), argv[0], argv[1], opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, res)
		return nil
	})
	return cmd
}
