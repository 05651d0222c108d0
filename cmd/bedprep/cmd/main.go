// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmd

import (
	"log"

	"v.io/x/lib/cmdline"
)

// Root returns the bedprep command tree.
func Root() *cmdline.Command {
	return &cmdline.Command{
		Name:     "bedprep",
		Short:    "Tools for preparing and evaluating BED interval datasets",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdWindows(),
			newCmdPercent(),
			newCmdROC(),
			newCmdHist(),
		},
	}
}

func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(Root())
}
