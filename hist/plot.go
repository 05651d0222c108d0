// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hist

import (
	"context"
	"fmt"
	"image/color"
	"os"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bedprep/figure"
	"github.com/pkg/errors"
	"gonum.org/v1/plot/plotter"
)

// OverallFileName is the base name of the histogram over every group.  It
// cannot collide with FileName of any label.
const OverallFileName = "all_genomes_lengths_histogram.png"

// OverallTitle titles the histogram over every group.
var OverallTitle = Title("All")

var barColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// Title returns the histogram title for label.
func Title(label string) string {
	return fmt.Sprintf("Lengths of %s Genomes", label)
}

// FileName returns the base name of the histogram image for label.
func FileName(label string) string {
	return label + "_genome_lengths_histogram.png"
}

// PlotGroup draws the histogram of one label's values and saves it to path.
func PlotGroup(ctx context.Context, label string, values []float64, path string, opts Opts) error {
	return plotLengths(ctx, Title(label), values, path, opts)
}

func plotLengths(ctx context.Context, title string, values []float64, path string, opts Opts) error {
	bins := Binned(values, opts.Bins)
	if bins == nil {
		return errors.Errorf("hist: %s: no lengths to plot", title)
	}
	h := &plotter.Histogram{
		Bins:      make([]plotter.HistogramBin, len(bins)),
		Width:     bins[0].Max - bins[0].Min,
		FillColor: barColor,
		LineStyle: plotter.DefaultLineStyle,
	}
	for i, b := range bins {
		h.Bins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: b.Count}
	}
	p := figure.New(title, "Length", "Frequency", opts.Figure)
	p.Add(h)
	return figure.Save(ctx, p, path, opts.Figure)
}

// WriteAll writes one histogram per group and one over all groups into dir,
// creating dir if it is local.  It returns the paths written.
func WriteAll(ctx context.Context, groups Groups, dir string, opts Opts) ([]string, error) {
	if scheme, _, err := file.ParsePath(dir); err == nil && scheme == "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	var paths []string
	write := func(title string, values []float64, name string) error {
		path := file.Join(dir, name)
		if err := plotLengths(ctx, title, values, path, opts); err != nil {
			return err
		}
		log.Printf("hist: %s: %d lengths -> %s", title, len(values), path)
		paths = append(paths, path)
		return nil
	}
	for _, g := range groups {
		if err := write(Title(g.Label), g.Lengths, FileName(g.Label)); err != nil {
			return paths, err
		}
	}
	if err := write(OverallTitle, groups.All(), OverallFileName); err != nil {
		return paths, err
	}
	return paths, nil
}
