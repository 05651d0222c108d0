// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bedprep/roc"
	"v.io/x/lib/cmdline"
)

func newCmdROC() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "roc",
		Short: "Plot the ROC curve of scored predictions against an overlap truth",
		Long: `
Without -truth, input is a whitespace separated 'bedtools intersect -loj' style
file: columns 1-3 are the prediction, column 5 its score and columns 6-8 the
overlapping truth interval, or '. -1 -1'.  With -truth, input is a BED whose
fifth column is the score and labels come from overlap with the truth BED.

Every overlapping prediction is kept and an equal number of non-overlapping ones
is sampled.  The AUC is printed and used as the plot legend.`,
		ArgsName: "input plot.png",
	}
	opts := roc.DefaultOpts
	cmd.Flags.Int64Var(&opts.Seed, "seed", opts.Seed, "Seed for negative sampling")
	cmd.Flags.StringVar(&opts.Curve, "curve", "", "If set, write the curve points to this TSV")
	cmd.Flags.StringVar(&opts.Truth, "truth", "", "If set, label predictions by overlap with this BED")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("roc takes input plot.png, but found %v", argv)
		}
		opts.Input, opts.Plot = argv[0], argv[1]
		c, err := roc.Evaluate(vcontext.Background(), opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "AUC: %.1f%%\n", 100*c.AUC)
		return nil
	})
	return cmd
}
