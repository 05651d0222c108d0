// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package interval

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bedprep/encoding/bed"
)

// NewBEDOpts defines behavior of this package's BED-loading function(s).
type NewBEDOpts struct {
	// Invert causes the complement of the interval-union to be returned.  The
	// complement extends down to position -1 at the beginning of each
	// chromosome, and up to PosTypeMax at the end.  Only the chromosomes
	// mentioned in the BED are included.  (A single empty interval qualifies as
	// a "mention".)
	Invert bool
	// OneBasedInput interprets the BED interval boundaries as one-based [start,
	// end] instead of the usual zero-based [start, end).
	OneBasedInput bool
}

// PosType is BEDUnion's coordinate type.
type PosType int64

// PosTypeMax is the exclusive upper bound on BEDUnion coordinates.
const PosTypeMax = math.MaxInt64

// searchPosType returns the index of x in a[], or the position where x would
// be inserted if x isn't in a (this could be len(a)).
func searchPosType(a []PosType, x PosType) int {
	return sort.Search(len(a), func(i int) bool { return a[i] >= x })
}

// BEDUnion is a collection of length-2N sequences, one per chromosome, where N
// is the number of disjoint intervals on that chromosome.  The (0-based) start
// of interval #k is in element [2k] and its end in element [2k+1], and the
// intervals are stored in increasing order.  A position p is covered iff the
// number of endpoints <= p is odd.
type BEDUnion struct {
	// nameMap is a chromosome-keyed map with disjoint-interval-set values.
	// Always initialized.
	nameMap map[string][]PosType
	// chroms lists nameMap's keys in file order.
	chroms []string
	invert bool
}

func initBEDUnion(invert bool) BEDUnion {
	return BEDUnion{nameMap: make(map[string][]PosType), invert: invert}
}

// unionBuilder merges a sorted stream of intervals into a BEDUnion.
type unionBuilder struct {
	u            BEDUnion
	prevChr      string
	prevStart    PosType
	prevEnd      PosType
	chrIntervals []PosType
}

// add merges [start, end) on chr.  what identifies the interval in errors.
func (b *unionBuilder) add(chr string, start, end PosType, what string) error {
	if start < 0 {
		return fmt.Errorf("interval: negative start coordinate %d (%s)", start, what)
	}
	if end < start || end >= PosTypeMax {
		return fmt.Errorf("interval: invalid coordinate pair [%d, %d) (%s)", start, end, what)
	}
	if chr != b.prevChr {
		b.finishChr()
		if _, found := b.u.nameMap[chr]; found {
			return fmt.Errorf("interval: unsorted input (split chromosome %s, %s)", chr, what)
		}
		b.prevChr = chr
		b.chrIntervals = []PosType{}
		if b.u.invert {
			b.chrIntervals = append(b.chrIntervals, -1)
		}
		if end == start {
			// Distinguish between 'mentioned' chromosomes without any covered
			// bases and unmentioned chromosomes.
			b.prevStart, b.prevEnd = -1, -1
		} else {
			b.prevStart, b.prevEnd = start, end
		}
		return nil
	}
	if end == start {
		return nil
	}
	if b.prevEnd == -1 {
		b.prevStart, b.prevEnd = start, end
		return nil
	}
	if start > b.prevEnd {
		b.chrIntervals = append(b.chrIntervals, b.prevStart, b.prevEnd)
		b.prevStart, b.prevEnd = start, end
		return nil
	}
	if start < b.prevStart {
		return fmt.Errorf("interval: unsorted input (%s)", what)
	}
	if end > b.prevEnd {
		b.prevEnd = end
	}
	return nil
}

func (b *unionBuilder) finishChr() {
	if b.prevChr == "" {
		return
	}
	if b.prevEnd != -1 {
		b.chrIntervals = append(b.chrIntervals, b.prevStart, b.prevEnd)
	}
	if b.u.invert {
		b.chrIntervals = append(b.chrIntervals, PosTypeMax)
	}
	b.u.nameMap[b.prevChr] = b.chrIntervals
	b.u.chroms = append(b.u.chroms, b.prevChr)
}

func (b *unionBuilder) finish() BEDUnion {
	b.finishChr()
	b.prevChr = ""
	return b.u
}

// NewBEDUnion loads the intervals from a BED sorted by chromosome and then
// start, merging touching/overlapping intervals and eliminating empty ones in
// the process.  Columns past the third are ignored.
func NewBEDUnion(reader io.Reader, opts NewBEDOpts) (BEDUnion, error) {
	b := unionBuilder{u: initBEDUnion(opts.Invert)}
	var startSubtract int64
	if opts.OneBasedInput {
		startSubtract = 1
	}
	sc := bed.NewScanner(reader, bed.Opts{SkipHeaders: true})
	var rec bed.Record
	for sc.Scan(&rec) {
		what := "line " + strconv.Itoa(sc.Line())
		if err := b.add(rec.Chrom, PosType(rec.Start-startSubtract), PosType(rec.End), what); err != nil {
			return BEDUnion{}, err
		}
	}
	if err := sc.Err(); err != nil {
		return BEDUnion{}, err
	}
	u := b.finish()
	log.Debug.Printf("interval: BED loaded, %d base(s) covered", u.Bases())
	return u, nil
}

// NewBEDUnionFromPath is a wrapper for NewBEDUnion that takes a path instead
// of an io.Reader.  Gzipped input is decompressed.
func NewBEDUnionFromPath(ctx context.Context, path string, opts NewBEDOpts) (u BEDUnion, err error) {
	in, err := bed.Open(ctx, path)
	if err != nil {
		return
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return NewBEDUnion(in, opts)
}

// Entry represents a single interval, with 0-based coordinates.
type Entry struct {
	ChrName string
	Start0  PosType
	End     PosType
}

// NewBEDUnionFromEntries initializes a BEDUnion from a sorted []Entry.
// This ignores opts.OneBasedInput, since Start0 is defined to be zero-based.
func NewBEDUnionFromEntries(entries []Entry, opts NewBEDOpts) (BEDUnion, error) {
	b := unionBuilder{u: initBEDUnion(opts.Invert)}
	for i, e := range entries {
		if err := b.add(e.ChrName, e.Start0, e.End, "entry "+strconv.Itoa(i)); err != nil {
			return BEDUnion{}, err
		}
	}
	return b.finish(), nil
}

// Chroms returns the chromosomes mentioned by the BED, in input order.
func (u *BEDUnion) Chroms() []string {
	return u.chroms
}

// Bases returns the number of positions covered by the union.  For an
// inverted union, the unbounded flanks are excluded: only the gaps between
// the first and last input interval of each chromosome are counted.
func (u *BEDUnion) Bases() int64 {
	var n int64
	for _, endpoints := range u.nameMap {
		lo, hi := 0, len(endpoints)
		if u.invert {
			// Drop [-1, firstStart) and [lastEnd, PosTypeMax).
			lo, hi = 2, len(endpoints)-1
		}
		for i := lo; i+1 < hi; i += 2 {
			n += int64(endpoints[i+1] - endpoints[i])
		}
	}
	return n
}

// ChromBases returns the number of positions covered on one chromosome of a
// non-inverted union.
func (u *BEDUnion) ChromBases(chrName string) int64 {
	endpoints := u.nameMap[chrName]
	var n int64
	for i := 0; i+1 < len(endpoints); i += 2 {
		n += int64(endpoints[i+1] - endpoints[i])
	}
	return n
}

// IntersectsByName checks whether [start, end) shares at least one position
// with the BEDUnion.  It returns false for an empty query.
func (u *BEDUnion) IntersectsByName(chrName string, start, end PosType) bool {
	if end <= start {
		return false
	}
	endpoints := u.nameMap[chrName]
	if endpoints == nil {
		return false
	}
	idx := searchPosType(endpoints, start+1)
	if idx&1 == 1 {
		return true
	}
	return idx != len(endpoints) && end > endpoints[idx]
}

// ParseRegionString parses a region string of one of the forms
//   [contig ID]:[1-based first pos]-[last pos]
//   [contig ID]:[1-based pos]
//   [contig ID]
// returning a contig ID and 0-based interval boundaries.  The interval
// [0, PosTypeMax - 1) is returned if there is no positional restriction.
func ParseRegionString(region string) (result Entry, err error) {
	if len(region) == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty region string")
		return
	}
	colonPos := strings.LastIndexByte(region, ':')
	if colonPos == -1 {
		result = Entry{ChrName: region, Start0: 0, End: PosTypeMax - 1}
		return
	}
	if colonPos == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty contig ID")
		return
	}
	result.ChrName = region[:colonPos]
	rangeStr := strings.Replace(region[colonPos+1:], ",", "", -1)
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		var pos1 int64
		if pos1, err = strconv.ParseInt(rangeStr, 10, 64); err != nil {
			return
		}
		if pos1 <= 0 {
			err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", rangeStr)
			return
		}
		result.Start0 = PosType(pos1 - 1)
		result.End = PosType(pos1)
		return
	}
	var start1, end0 int64
	if start1, err = strconv.ParseInt(rangeStr[:dashPos], 10, 64); err != nil {
		return
	}
	if start1 <= 0 {
		err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", rangeStr[:dashPos])
		return
	}
	if end0, err = strconv.ParseInt(rangeStr[dashPos+1:], 10, 64); err != nil {
		return
	}
	if end0 < start1 || end0 >= PosTypeMax {
		err = fmt.Errorf("interval.ParseRegionString: invalid range string %v", rangeStr)
		return
	}
	result.Start0 = PosType(start1 - 1)
	result.End = PosType(end0)
	return
}
