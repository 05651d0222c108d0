// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package genome reads genome-length indexes.  The supported format is the
// five-column FASTA index written by "samtools faidx"
// (http://www.htslib.org/doc/faidx.html).
package genome

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
)

// Contig is one row of a .fai file.
type Contig struct {
	Name      string
	Length    int64
	Offset    int64
	LineBases int64
	LineWidth int64
}

// ReadFai parses a .fai index.  Contigs are returned in file order.
func ReadFai(r io.Reader) ([]Contig, error) {
	tr := tsv.NewReader(r)
	tr.Comment = '#'
	tr.LazyQuotes = true
	var (
		contigs []Contig
		seen    = map[string]bool{}
	)
	for line := 1; ; line++ {
		var c Contig
		if err := tr.Read(&c); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(errors.Invalid, err, fmt.Sprintf("genome: fai line %d", line))
		}
		if c.Length < 0 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("genome: fai line %d: negative length %d for %s", line, c.Length, c.Name))
		}
		if seen[c.Name] {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("genome: fai line %d: duplicate contig %s", line, c.Name))
		}
		seen[c.Name] = true
		contigs = append(contigs, c)
	}
	return contigs, nil
}

// ReadFaiPath is a wrapper for ReadFai that takes a path.
func ReadFaiPath(ctx context.Context, path string) (contigs []Contig, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	if contigs, err = ReadFai(in.Reader(ctx)); err != nil {
		err = errors.E(err, path)
	}
	return
}

// TotalLength returns the summed length of all contigs.
func TotalLength(contigs []Contig) int64 {
	var n int64
	for _, c := range contigs {
		n += c.Length
	}
	return n
}
