// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package coverage computes the percentage of a genome covered by a BED
// feature set.
package coverage

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bedprep/encoding/bed"
	"github.com/grailbio/bedprep/genome"
	"github.com/grailbio/bedprep/interval"
)

// Opts controls how feature length is computed.
type Opts struct {
	// MinFields is the minimum number of columns each feature line must have.
	// The default, 9, matches the extended BED classification files this tool
	// is normally run on.
	MinFields int
	// Merge counts each covered base once, even if several features overlap
	// it.  The BED must then be sorted by chromosome and start.  Without Merge,
	// feature lengths are simply summed.
	Merge bool
	// Invert counts the bases in the gaps between features instead: on each
	// chromosome, the positions between its first and last feature that no
	// feature covers.  It implies Merge.
	Invert bool
	// Label names the feature set in Result.String.
	Label string
}

// DefaultOpts mirrors the TAD-percentage configuration.
var DefaultOpts = Opts{MinFields: 9, Label: "TAD"}

// Result is the outcome of Compute.
type Result struct {
	Label         string
	GenomeLength  int64
	FeatureLength int64
	Percent       float64
}

// String formats the result as a one-line report, e.g. "Percent TAD: 12.34%".
func (r Result) String() string {
	return fmt.Sprintf("Percent %s: %.2f%%", r.Label, r.Percent)
}

// FeatureLength returns the summed end-start of every record in r.
// Overlapping records are counted once each.
func FeatureLength(r io.Reader, opts Opts) (int64, error) {
	sc := bed.NewScanner(r, bed.Opts{MinFields: opts.MinFields})
	var (
		rec bed.Record
		n   int64
	)
	for sc.Scan(&rec) {
		if rec.Len() < 0 {
			return 0, errors.E(errors.Invalid, fmt.Sprintf("coverage: line %d: end %d precedes start %d", sc.Line(), rec.End, rec.Start))
		}
		n += rec.Len()
	}
	return n, sc.Err()
}

// MergedLength returns the number of bases covered by at least one record
// in the sorted BED r, or with opts.Invert, the number of gap bases.
func MergedLength(r io.Reader, opts Opts) (int64, error) {
	u, err := interval.NewBEDUnion(r, interval.NewBEDOpts{Invert: opts.Invert})
	if err != nil {
		return 0, errors.E(errors.Invalid, err)
	}
	if !opts.Invert {
		for _, chr := range u.Chroms() {
			log.Debug.Printf("coverage: %s: %d base(s)", chr, u.ChromBases(chr))
		}
	}
	return u.Bases(), nil
}

// Percent returns 100*featureLen/genomeLen.
func Percent(genomeLen, featureLen int64) (float64, error) {
	if genomeLen <= 0 {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("coverage: genome length must be positive, got %d", genomeLen))
	}
	return 100 * float64(featureLen) / float64(genomeLen), nil
}

// Compute reads the genome index at faiPath and the features at bedPath and
// returns the covered percentage.
func Compute(ctx context.Context, faiPath, bedPath string, opts Opts) (res Result, err error) {
	res.Label = opts.Label
	contigs, err := genome.ReadFaiPath(ctx, faiPath)
	if err != nil {
		return
	}
	res.GenomeLength = genome.TotalLength(contigs)

	in, err := bed.Open(ctx, bedPath)
	if err != nil {
		return
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if opts.Merge || opts.Invert {
		res.FeatureLength, err = MergedLength(in, opts)
	} else {
		res.FeatureLength, err = FeatureLength(in, opts)
	}
	if err != nil {
		err = errors.E(err, bedPath)
		return
	}
	if res.Percent, err = Percent(res.GenomeLength, res.FeatureLength); err != nil {
		return
	}
	log.Printf("coverage: %s: %d of %d bases (%d contigs)", bedPath, res.FeatureLength, res.GenomeLength, len(contigs))
	return
}
