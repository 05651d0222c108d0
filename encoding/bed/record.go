// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bed

import (
	"fmt"
	"strings"
)

// Record is one BED line.  Start is 0-based inclusive, End is exclusive.
// Fields holds every column after End, unparsed.
//
// Start and End are not range-checked: window expansion is allowed to produce
// negative coordinates, so Record must be able to hold them.
type Record struct {
	Chrom  string
	Start  int64
	End    int64
	Fields []string
}

// Len returns End - Start.  It is negative for an inverted record.
func (r *Record) Len() int64 {
	return r.End - r.Start
}

// Clone returns a deep copy of r.  Scanner reuses the Fields backing array of
// the record passed to Scan, so callers that retain records must clone them.
func (r *Record) Clone() Record {
	c := *r
	if r.Fields != nil {
		c.Fields = make([]string, len(r.Fields))
		copy(c.Fields, r.Fields)
	}
	return c
}

// String formats r as a BED line, without the trailing newline.
func (r Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%d\t%d", r.Chrom, r.Start, r.End)
	for _, f := range r.Fields {
		b.WriteByte('\t')
		b.WriteString(f)
	}
	return b.String()
}
