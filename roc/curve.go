// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package roc

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Sample is a labelled score.
type Sample struct {
	Score    float64
	Positive bool
}

// Balance keeps every overlapping prediction as a positive sample and draws,
// without replacement, an equal number of non-overlapping predictions as
// negatives.  Positives precede negatives in the result.  It is an error for
// there to be fewer negatives than positives.
func Balance(preds []Prediction, rng *rand.Rand) ([]Sample, error) {
	var pos, neg []int
	for i := range preds {
		if preds[i].Overlaps {
			pos = append(pos, i)
		} else {
			neg = append(neg, i)
		}
	}
	if len(neg) < len(pos) {
		return nil, errors.E(errors.Invalid,
			fmt.Sprintf("roc: cannot sample %d negatives from %d non-overlapping predictions", len(pos), len(neg)))
	}
	samples := make([]Sample, 0, 2*len(pos))
	for _, i := range pos {
		samples = append(samples, Sample{Score: preds[i].Score, Positive: true})
	}
	for _, j := range rng.Perm(len(neg))[:len(pos)] {
		samples = append(samples, Sample{Score: preds[neg[j]].Score})
	}
	return samples, nil
}

// Curve is a receiver operating characteristic.  FPR and TPR are
// non-decreasing; point i is the classifier "score >= Thresholds[i]".  The
// first threshold is +Inf, so every curve starts at (0, 0) and ends at (1, 1).
type Curve struct {
	FPR, TPR, Thresholds []float64
	AUC                  float64
	Positives, Negatives int
}

// NewCurve computes the ROC of samples.  Both classes must be present.
func NewCurve(samples []Sample) (Curve, error) {
	c := Curve{}
	scores := make([]float64, len(samples))
	labels := make([]bool, len(samples))
	for i, s := range samples {
		scores[i], labels[i] = s.Score, s.Positive
		if s.Positive {
			c.Positives++
		} else {
			c.Negatives++
		}
	}
	if c.Positives == 0 || c.Negatives == 0 {
		return c, errors.E(errors.Invalid,
			fmt.Sprintf("roc: need both classes, have %d positive and %d negative samples", c.Positives, c.Negatives))
	}
	stat.SortWeightedLabeled(scores, labels, nil)
	c.TPR, c.FPR, c.Thresholds = stat.ROC(nil, scores, labels, nil)
	c.AUC = integrate.Trapezoidal(c.FPR, c.TPR)
	return c, nil
}

// WriteCurve writes c as a three column TSV with a "fpr tpr threshold"
// header.
func WriteCurve(w io.Writer, c Curve) error {
	tw := tsv.NewWriter(w)
	tw.WriteString("fpr")
	tw.WriteString("tpr")
	tw.WriteString("threshold")
	if err := tw.EndLine(); err != nil {
		return err
	}
	for i := range c.FPR {
		tw.WriteFloat64(c.FPR[i], 'g', -1)
		tw.WriteFloat64(c.TPR[i], 'g', -1)
		tw.WriteFloat64(c.Thresholds[i], 'g', -1)
		if err := tw.EndLine(); err != nil {
			return err
		}
	}
	return tw.Flush()
}
