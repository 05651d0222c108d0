// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bed

import (
	"io"

	"github.com/grailbio/base/tsv"
)

// Writer writes Records as tab-separated BED lines.  Output is buffered;
// callers must call Flush once done.
type Writer struct {
	w *tsv.Writer
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: tsv.NewWriter(w)}
}

// Write writes a single record.
func (w *Writer) Write(rec *Record) error {
	w.w.WriteString(rec.Chrom)
	w.w.WriteInt64(rec.Start)
	w.w.WriteInt64(rec.End)
	for _, f := range rec.Fields {
		w.w.WriteString(f)
	}
	return w.w.EndLine()
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
