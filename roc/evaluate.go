// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package roc

import (
	"context"
	"math/rand"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bedprep/encoding/bed"
	"github.com/grailbio/bedprep/figure"
)

// Opts configures Evaluate.
type Opts struct {
	// Input is the prediction file.  Without Truth it is a joined file (see
	// ReadJoined); with Truth it is a scored BED (see ReadScored).
	Input string
	// Truth, if set, is a BED of ground truth intervals used to label Input.
	Truth string
	// Plot is the path of the rendered curve.  Empty means no plot.
	Plot string
	// Curve, if set, receives the curve points as TSV.
	Curve string
	// Seed seeds the negative sampling.
	Seed int64
	// PlotOpts sizes the rendered curve.
	PlotOpts figure.Opts
}

// DefaultOpts uses a fixed seed so that repeated runs agree.
var DefaultOpts = Opts{Seed: 1, PlotOpts: DefaultPlotOpts}

// Evaluate reads and labels the predictions, balances the classes, computes
// the curve, and writes the plot and curve table requested by opts.
func Evaluate(ctx context.Context, opts Opts) (c Curve, err error) {
	preds, err := readPredictions(ctx, opts)
	if err != nil {
		return
	}
	overlapping := 0
	for _, p := range preds {
		if p.Overlaps {
			overlapping++
		}
	}
	log.Printf("roc: %s: %d predictions, %d overlapping", opts.Input, len(preds), overlapping)

	samples, err := Balance(preds, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return
	}
	if c, err = NewCurve(samples); err != nil {
		return
	}
	log.Printf("roc: AUC %.4f over %d positive and %d negative samples", c.AUC, c.Positives, c.Negatives)

	if opts.Plot != "" {
		if err = Plot(ctx, c, opts.Plot, opts.PlotOpts); err != nil {
			return
		}
	}
	if opts.Curve != "" {
		err = writeCurveFile(ctx, c, opts.Curve)
	}
	return
}

func readPredictions(ctx context.Context, opts Opts) (preds []Prediction, err error) {
	in, err := bed.Open(ctx, opts.Input)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if opts.Truth == "" {
		if preds, err = ReadJoined(in); err != nil {
			return nil, errors.E(err, opts.Input)
		}
		return preds, nil
	}
	if preds, err = ReadScored(in); err != nil {
		return nil, errors.E(err, opts.Input)
	}
	truth, err := readTruth(ctx, opts.Truth)
	if err != nil {
		return nil, err
	}
	return preds, LabelByOverlap(preds, truth)
}

func readTruth(ctx context.Context, path string) (truth []bed.Record, err error) {
	in, err := bed.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	var (
		rec bed.Record
		sc  = bed.NewScanner(in, bed.Opts{MinFields: 3, SkipHeaders: true})
	)
	for sc.Scan(&rec) {
		truth = append(truth, bed.Record{Chrom: rec.Chrom, Start: rec.Start, End: rec.End})
	}
	if err = sc.Err(); err != nil {
		return nil, errors.E(err, path)
	}
	return truth, nil
}

func writeCurveFile(ctx context.Context, c Curve, path string) error {
	out, err := bed.Create(ctx, path)
	if err != nil {
		return err
	}
	if err := WriteCurve(out, c); err != nil {
		out.Discard(ctx)
		return errors.E(err, path)
	}
	return out.Close(ctx)
}
