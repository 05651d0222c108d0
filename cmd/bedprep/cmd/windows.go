// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bedprep/window"
	"v.io/x/lib/cmdline"
)

func newCmdWindows() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "windows",
		Short: "Expand each interval into windows around its start and end",
		Long: `
Each input record chrom/start/end/fields... produces two output records with the
same trailing fields: one for [start-H, start+H) and one for [end-H, end+H), where
H = w/2 + 1.  Coordinates are not clamped, so they can be negative or run past the
end of the contig.

A malformed record aborts the run and no output file is left behind.  An output
path ending in .gz is gzip compressed; one ending in .bgz is BGZF compressed.`,
		ArgsName: "in.bed out.bed",
	}
	opts := window.DefaultOpts
	cmd.Flags.IntVar(&opts.Size, "w", opts.Size, "Window size; must be odd")
	cmd.Flags.StringVar(&opts.Region, "region", "", `If set, only expand records intersecting this region.
Format is 'chr:begin-end', 1-based and closed like samtools.`)
	cmd.Flags.StringVar(&opts.Regions, "regions", "", "If set, only expand records intersecting an interval of this sorted BED")
	cmd.Flags.BoolVar(&opts.RegionsOneBased, "regions-one-based", false, "Read -regions as one-based closed intervals")
	cmd.Flags.BoolVar(&opts.CountLines, "progress", false, "Count input lines first and log progress against the total")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 2 {
			return fmt.Errorf("windows takes in.bed out.bed, but found %v", argv)
		}
		stats, err := window.ExpandFile(vcontext.Background(), argv[0], argv[1], opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "%d records, %d windows\n", stats.Records, stats.Windows)
		return nil
	})
	return cmd
}
