// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package hist draws histograms of interval lengths, one per label of a
// classification BED plus one over every record.
package hist

import (
	"io"
	"math"
	"sort"

	"github.com/grailbio/bedprep/encoding/bed"
	"github.com/grailbio/bedprep/figure"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Opts configures ReadLengths and WriteAll.
type Opts struct {
	// Bins is the number of equal-width bins per histogram.
	Bins int
	// MinFields is the minimum column count of each input record.
	MinFields int
	// Figure sizes each rendered histogram.
	Figure figure.Opts
}

// DefaultOpts draws 30 bins on a 10x8 inch figure.
var DefaultOpts = Opts{Bins: 30, MinFields: 3, Figure: figure.DefaultOpts}

// Group is the lengths of every record with one label.
type Group struct {
	Label   string
	Lengths []float64
}

// Groups is sorted by Label.
type Groups []Group

// All returns every length across all groups, in group order.
func (g Groups) All() []float64 {
	var all []float64
	for _, grp := range g {
		all = append(all, grp.Lengths...)
	}
	return all
}

// ReadLengths reads a BED and groups end-start by the first column.  Within a
// group, lengths keep input order.
func ReadLengths(r io.Reader, opts Opts) (Groups, error) {
	var (
		rec    bed.Record
		sc     = bed.NewScanner(r, bed.Opts{MinFields: opts.MinFields})
		byName = map[string]int{}
		groups Groups
	)
	for sc.Scan(&rec) {
		i, ok := byName[rec.Chrom]
		if !ok {
			i = len(groups)
			byName[rec.Chrom] = i
			groups = append(groups, Group{Label: rec.Chrom})
		}
		groups[i].Lengths = append(groups[i].Lengths, float64(rec.Len()))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Label < groups[j].Label })
	return groups, nil
}

// Bin is one histogram bar covering [Min, Max).  The last bin also includes
// Max.
type Bin struct {
	Min, Max float64
	Count    float64
}

// Binned splits the range of values into n equal-width bins and counts the
// values in each.  When all values are equal the range is widened to one
// unit centered on them.  It returns nil for no values.
func Binned(values []float64, n int) []Bin {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	x := append([]float64(nil), values...)
	sort.Float64s(x)
	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	dividers := floats.Span(make([]float64, n+1), lo, hi)
	// stat.Histogram wants every value strictly below the last divider.
	dividers[n] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, x, nil)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Min: dividers[i], Max: dividers[i+1], Count: counts[i]}
	}
	bins[n-1].Max = hi
	return bins
}
