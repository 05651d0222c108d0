// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package figure renders gonum plots to any path supported by
// github.com/grailbio/base/file.
package figure

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Opts controls the size and text of a figure.
type Opts struct {
	// Width and Height of the rendered figure.
	Width, Height vg.Length
	// LabelSize is the font size of the axis labels and legend.  Zero leaves
	// the gonum defaults.
	LabelSize vg.Length
}

// DefaultOpts is a 10x8 inch figure.
var DefaultOpts = Opts{Width: 10 * vg.Inch, Height: 8 * vg.Inch}

// New returns an empty plot with the given title and axis labels.
func New(title, xLabel, yLabel string, opts Opts) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	if opts.LabelSize > 0 {
		p.X.Label.TextStyle.Font.Size = opts.LabelSize
		p.Y.Label.TextStyle.Font.Size = opts.LabelSize
		p.Legend.TextStyle.Font.Size = opts.LabelSize
	}
	return p
}

// Format returns the image format implied by the extension of path, "png"
// when there is none.
func Format(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "png"
	}
	return ext
}

// Save renders p to path.  The format is chosen by Format(path).
func Save(ctx context.Context, p *plot.Plot, path string, opts Opts) (err error) {
	wt, err := p.WriterTo(opts.Width, opts.Height, Format(path))
	if err != nil {
		return errors.Wrapf(err, "figure: render %s", path)
	}
	f, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, f, &err)
	_, err = wt.WriteTo(f.Writer(ctx))
	return errors.Wrapf(err, "figure: write %s", path)
}
