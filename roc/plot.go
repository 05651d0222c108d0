// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package roc

import (
	"context"
	"fmt"

	"github.com/grailbio/bedprep/figure"
	"github.com/pkg/errors"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultPlotOpts renders a 6x4 inch figure with 16pt labels.
var DefaultPlotOpts = figure.Opts{Width: 6 * vg.Inch, Height: 4 * vg.Inch, LabelSize: vg.Points(16)}

// Plot draws c on unit axes, labelled with its AUC as a percentage, and
// saves it to path.
func Plot(ctx context.Context, c Curve, path string, opts figure.Opts) error {
	p := figure.New("", "False Positive Rate", "True Positive Rate", opts)
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	xys := make(plotter.XYs, len(c.FPR))
	for i := range c.FPR {
		xys[i].X, xys[i].Y = c.FPR[i], c.TPR[i]
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return errors.Wrapf(err, "roc: plot %s", path)
	}
	p.Add(line)
	p.Legend.Add(fmt.Sprintf("%.1f%%", 100*c.AUC), line)
	p.Legend.Top = false
	return figure.Save(ctx, p, path, opts)
}
