// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package roc

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/biogo/store/interval"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/bedprep/encoding/bed"
)

// Prediction is one scored interval.
type Prediction struct {
	Chrom      string
	Start, End int64
	Score      float64
	// Overlaps is true iff the interval overlaps the ground truth.
	Overlaps bool
}

// Column layout of a joined file.  Column 3 (the prediction name) and any
// columns past 7 are ignored.
const (
	colChrom      = 0
	colStart      = 1
	colEnd        = 2
	colScore      = 4
	colTruthStart = 6
	joinedColumns = 8
)

// ReadJoined parses a whitespace-separated joined file, one prediction per
// line.  Columns 0-2 are the prediction interval, column 4 its score, and
// columns 5-7 the overlapping truth interval, ". -1 -1" when there is none.
// Blank lines are skipped.
func ReadJoined(r io.Reader) ([]Prediction, error) {
	var (
		preds []Prediction
		sc    = bufio.NewScanner(r)
		line  int
	)
	sc.Buffer(nil, math.MaxInt32)
	for sc.Scan() {
		line++
		cols := strings.Fields(sc.Text())
		if len(cols) == 0 {
			continue
		}
		if len(cols) < joinedColumns {
			return nil, malformed(line, "expected at least %d columns, found %d", joinedColumns, len(cols))
		}
		p := Prediction{Chrom: cols[colChrom]}
		var err error
		if p.Start, err = strconv.ParseInt(cols[colStart], 10, 64); err != nil {
			return nil, malformed(line, "start %q is not an integer", cols[colStart])
		}
		if p.End, err = strconv.ParseInt(cols[colEnd], 10, 64); err != nil {
			return nil, malformed(line, "end %q is not an integer", cols[colEnd])
		}
		if p.Score, err = strconv.ParseFloat(cols[colScore], 64); err != nil {
			return nil, malformed(line, "score %q is not a number", cols[colScore])
		}
		truthStart, err := strconv.ParseInt(cols[colTruthStart], 10, 64)
		if err != nil {
			return nil, malformed(line, "truth start %q is not an integer", cols[colTruthStart])
		}
		p.Overlaps = truthStart != -1
		preds = append(preds, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return preds, nil
}

// ReadScored parses a BED whose fifth column holds the prediction score.
// Overlaps is left false; see LabelByOverlap.
func ReadScored(r io.Reader) ([]Prediction, error) {
	var (
		preds []Prediction
		rec   bed.Record
		sc    = bed.NewScanner(r, bed.Opts{MinFields: colScore + 1, SkipHeaders: true})
	)
	for sc.Scan(&rec) {
		// Fields starts at column 3.
		s := rec.Fields[colScore-3]
		score, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, malformed(sc.Line(), "score %q is not a number", s)
		}
		preds = append(preds, Prediction{Chrom: rec.Chrom, Start: rec.Start, End: rec.End, Score: score})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return preds, nil
}

func malformed(line int, format string, args ...interface{}) error {
	return errors.E(errors.Invalid, fmt.Sprintf("roc: line %d: ", line)+fmt.Sprintf(format, args...))
}

// span is a half-open truth interval stored in an interval.IntTree.
type span struct {
	start, end int
	id         uintptr
}

// Overlap reports whether [s.start, s.end) and [b.Start, b.End) share a base.
func (s span) Overlap(b interval.IntRange) bool {
	return s.start < b.End && b.Start < s.end
}
func (s span) ID() uintptr { return s.id }
func (s span) Range() interval.IntRange {
	return interval.IntRange{Start: s.start, End: s.end}
}

// LabelByOverlap sets Overlaps on every prediction that shares at least one
// base with a truth record.  The truth set need not be sorted.  Empty truth
// records never overlap anything.
func LabelByOverlap(preds []Prediction, truth []bed.Record) error {
	trees := map[string]*interval.IntTree{}
	for i := range truth {
		t := &truth[i]
		if t.Len() <= 0 {
			continue
		}
		tree := trees[t.Chrom]
		if tree == nil {
			tree = &interval.IntTree{}
			trees[t.Chrom] = tree
		}
		if err := tree.Insert(span{start: int(t.Start), end: int(t.End), id: uintptr(i)}, true); err != nil {
			return errors.E(err, fmt.Sprintf("roc: truth interval %s:%d-%d", t.Chrom, t.Start, t.End))
		}
	}
	for _, tree := range trees {
		tree.AdjustRanges()
	}
	for i := range preds {
		p := &preds[i]
		tree := trees[p.Chrom]
		p.Overlaps = tree != nil && p.End > p.Start &&
			len(tree.Get(span{start: int(p.Start), end: int(p.End)})) > 0
	}
	return nil
}
