// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package window expands BED intervals into fixed-size windows around their
// boundaries.  Every input interval yields two windows, one centered on its
// start and one centered on its end, in that order, with the interval's
// trailing annotation fields copied to both.
package window

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bedprep/encoding/bed"
	"github.com/grailbio/bedprep/interval"
)

// progressInterval is the number of input records between progress messages.
const progressInterval = 1 << 20

// Opts configures an Expander.
type Opts struct {
	// Size is the nominal window size W.  It must be odd and positive.  Each
	// window extends Radius(Size) bases to both sides of the boundary, so the
	// emitted windows are 2*Radius(Size) wide, i.e. Size+1.
	Size int
	// Region, if nonempty, restricts expansion to input records intersecting
	// it.  Format is that of interval.ParseRegionString.
	Region string
	// Regions, if nonempty, is the path of a sorted BED; only input records
	// intersecting one of its intervals are expanded.  Combined with Region, a
	// record must intersect both.
	Regions string
	// RegionsOneBased reads Regions as one-based closed intervals.
	RegionsOneBased bool
	// CountLines makes ExpandFile count the input lines before the main pass,
	// so that progress messages can report a total.  It costs an extra read of
	// the input and has no effect on the output.
	CountLines bool
}

// DefaultOpts is the reference configuration.
var DefaultOpts = Opts{Size: 1001}

// Stats summarizes one expansion pass.
type Stats struct {
	// Records is the number of input records expanded.
	Records int
	// Windows is the number of windows written; always 2*Records.
	Windows int
	// Skipped is the number of records outside Opts.Region.
	Skipped int
}

// Radius returns the number of bases a window extends to each side of the
// boundary it is centered on: floor(size/2)+1.
func Radius(size int) int64 {
	return int64(size/2) + 1
}

// Expand returns the windows centered on rec's start and end.  Both share
// rec.Fields; callers that retain them past the next Scan must Clone.
// Coordinates are not clamped, so the start window of an interval near the
// beginning of a contig has a negative start.
func Expand(rec *bed.Record, radius int64) (startWin, endWin bed.Record) {
	startWin = bed.Record{Chrom: rec.Chrom, Start: rec.Start - radius, End: rec.Start + radius, Fields: rec.Fields}
	endWin = bed.Record{Chrom: rec.Chrom, Start: rec.End - radius, End: rec.End + radius, Fields: rec.Fields}
	return
}

// Expander streams BED records into boundary windows.
type Expander struct {
	opts   Opts
	radius int64
	// filters holds the Region and Regions unions; a record is expanded only
	// if it intersects every one.
	filters []*interval.BEDUnion
	// total is the expected number of input lines, or 0 if unknown.
	total int
	name  string
}

// New validates opts, loads opts.Regions if set, and returns an Expander.
func New(ctx context.Context, opts Opts) (*Expander, error) {
	if opts.Size <= 0 || opts.Size%2 == 0 {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("window: size must be a positive odd integer, got %d", opts.Size))
	}
	e := &Expander{opts: opts, radius: Radius(opts.Size), name: "input"}
	if opts.Region != "" {
		region, err := interval.ParseRegionString(opts.Region)
		if err != nil {
			return nil, errors.E(errors.Invalid, err, "window: region", opts.Region)
		}
		u, err := interval.NewBEDUnionFromEntries([]interval.Entry{region}, interval.NewBEDOpts{})
		if err != nil {
			return nil, errors.E(errors.Invalid, err, "window: region", opts.Region)
		}
		e.filters = append(e.filters, &u)
	}
	if opts.Regions != "" {
		u, err := interval.NewBEDUnionFromPath(ctx, opts.Regions, interval.NewBEDOpts{OneBasedInput: opts.RegionsOneBased})
		if err != nil {
			return nil, errors.E(err, "window: regions", opts.Regions)
		}
		log.Printf("window: %s: %d region base(s) on %d chromosome(s)", opts.Regions, u.Bases(), len(u.Chroms()))
		e.filters = append(e.filters, &u)
	}
	return e, nil
}

// Radius returns the per-side extension used by e.
func (e *Expander) Radius() int64 {
	return e.radius
}

func (e *Expander) inRegion(rec *bed.Record) bool {
	for _, u := range e.filters {
		if !u.IntersectsByName(rec.Chrom, interval.PosType(rec.Start), interval.PosType(rec.End)) {
			return false
		}
	}
	return true
}

// checkRange reports a malformed record if a window boundary of rec would
// overflow int64.
func (e *Expander) checkRange(rec *bed.Record, line int) error {
	lo, hi := math.MinInt64+e.radius, math.MaxInt64-e.radius
	for _, c := range [...]int64{rec.Start, rec.End} {
		if c < lo || c > hi {
			return errors.E(errors.Invalid, fmt.Sprintf("window: line %d: coordinate %d is too large for radius %d", line, c, e.radius))
		}
	}
	return nil
}

// Run reads BED records from in and writes two windows per record to out.
// Records are processed strictly one at a time.  The first malformed record
// stops the pass with an error for which bed.IsMalformed is true; the windows
// of the records before it have already been written (and are flushed), and
// nothing is written for it or anything after it.
func (e *Expander) Run(in io.Reader, out io.Writer) (stats Stats, err error) {
	sc := bed.NewScanner(in, bed.DefaultOpts)
	w := bed.NewWriter(out)
	defer func() {
		if ferr := w.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}()
	var rec bed.Record
	for sc.Scan(&rec) {
		if !e.inRegion(&rec) {
			stats.Skipped++
			continue
		}
		if err = e.checkRange(&rec, sc.Line()); err != nil {
			return
		}
		startWin, endWin := Expand(&rec, e.radius)
		if err = w.Write(&startWin); err != nil {
			return
		}
		if err = w.Write(&endWin); err != nil {
			return
		}
		stats.Records++
		stats.Windows += 2
		if sc.Line()%progressInterval == 0 {
			e.logProgress(sc.Line())
		}
	}
	if err = sc.Err(); err != nil {
		return
	}
	log.Debug.Printf("window: %s: %d records, %d windows, %d skipped", e.name, stats.Records, stats.Windows, stats.Skipped)
	return
}

func (e *Expander) logProgress(line int) {
	if e.total > 0 {
		log.Printf("window: %s: %d/%d lines (%.1f%%)", e.name, line, e.total, 100*float64(line)/float64(e.total))
		return
	}
	log.Printf("window: %s: %dMi lines", e.name, line/progressInterval)
}

// ExpandFile expands the BED file at inPath into outPath.  Both files are
// closed on every return path.  If the pass fails for any reason, the
// partially written outPath is removed, so a failed run leaves no output.
func ExpandFile(ctx context.Context, inPath, outPath string, opts Opts) (stats Stats, err error) {
	e, err := New(ctx, opts)
	if err != nil {
		return
	}
	e.name = inPath
	if opts.CountLines {
		if e.total, err = bed.CountLines(ctx, inPath); err != nil {
			return
		}
		log.Printf("window: %s: %d lines", inPath, e.total)
	}
	in, err := bed.Open(ctx, inPath)
	if err != nil {
		return
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	out, err := bed.Create(ctx, outPath)
	if err != nil {
		return
	}
	if stats, err = e.Run(in, out); err != nil {
		out.Discard(ctx)
		err = errors.E(err, fmt.Sprintf("window: expand %s", inPath))
		return
	}
	if err = out.Close(ctx); err != nil {
		err = errors.E(err, fmt.Sprintf("window: close %s", outPath))
		return
	}
	log.Printf("window: wrote %d windows (W=%d, radius=%d) to %s", stats.Windows, opts.Size, e.radius, outPath)
	return
}
