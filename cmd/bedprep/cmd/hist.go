// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bedprep/encoding/bed"
	"github.com/grailbio/bedprep/hist"
	"v.io/x/lib/cmdline"
)

func newCmdHist() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "hist",
		Short:    "Draw interval length histograms, one per label in column 1 and one overall",
		ArgsName: "classification.bed",
	}
	opts := hist.DefaultOpts
	cmd.Flags.IntVar(&opts.Bins, "bins", opts.Bins, "Number of bins per histogram")
	out := cmd.Flags.String("out", "histograms", "Output directory")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("hist takes one pathname argument, but got %v", argv)
		}
		if opts.Bins <= 0 {
			return fmt.Errorf("hist: -bins must be positive, got %d", opts.Bins)
		}
		paths, err := writeHistograms(argv[0], *out, opts)
		for _, path := range paths {
			fmt.Fprintln(env.Stdout, path)
		}
		return err
	})
	return cmd
}

func writeHistograms(path, dir string, opts hist.Opts) (paths []string, err error) {
	ctx := vcontext.Background()
	in, err := bed.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	groups, err := hist.ReadLengths(in, opts)
	if cerr := in.Close(ctx); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return nil, errors.E(err, path)
	}
	return hist.WriteAll(ctx, groups, dir, opts)
}
