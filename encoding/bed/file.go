// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bed

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/bgzf"
	"github.com/klauspost/compress/gzip"
)

// Input is an open BED file.  Gzip and BGZF input is decompressed
// transparently.
type Input struct {
	io.Reader
	f  file.File
	gz *gzip.Reader
}

// Open opens path for reading.  The caller must Close the result.
func Open(ctx context.Context, path string) (*Input, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	in := &Input{Reader: f.Reader(ctx), f: f}
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if in.gz, err = gzip.NewReader(in.Reader); err != nil {
			_ = f.Close(ctx)
			return nil, errors.E(err, "bed.Open", path)
		}
		in.Reader = in.gz
	}
	return in, nil
}

// Close releases the file.
func (in *Input) Close(ctx context.Context) error {
	var err errors.Once
	if in.gz != nil {
		err.Set(in.gz.Close())
	}
	err.Set(in.f.Close(ctx))
	return err.Err()
}

// Output is a BED file being written.  A path ending in ".bgz" is BGZF
// compressed (tabix-compatible), one ending in ".gz" is gzip compressed, and
// anything else is written as plain text.
//
// Exactly one of Close or Discard must be called.
type Output struct {
	io.Writer
	f    file.File
	path string
	zw   io.WriteCloser
}

// Create creates (or truncates) path for writing.
func Create(ctx context.Context, path string) (*Output, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, err
	}
	out := &Output{Writer: f.Writer(ctx), f: f, path: path}
	switch {
	case strings.HasSuffix(path, ".bgz"):
		out.zw = bgzf.NewWriter(out.Writer, 1)
	case fileio.DetermineType(path) == fileio.Gzip:
		out.zw = gzip.NewWriter(out.Writer)
	}
	if out.zw != nil {
		out.Writer = out.zw
	}
	return out, nil
}

// Close finalizes the compressed stream, if any, and closes the file.  If
// either step fails, the file is removed, since its contents are incomplete.
func (out *Output) Close(ctx context.Context) error {
	var err errors.Once
	if out.zw != nil {
		err.Set(out.zw.Close())
	}
	err.Set(out.f.Close(ctx))
	if err.Err() != nil {
		if rerr := file.Remove(ctx, out.path); rerr != nil {
			log.Printf("bed: remove partial output %s: %v", out.path, rerr)
		}
	}
	return err.Err()
}

// Discard abandons the output: the file is closed and removed, so a failed
// pass leaves nothing behind.
func (out *Output) Discard(ctx context.Context) {
	if out.zw != nil {
		_ = out.zw.Close()
	}
	if err := out.f.Close(ctx); err != nil {
		log.Debug.Printf("bed: close %s: %v", out.path, err)
	}
	if err := file.Remove(ctx, out.path); err != nil {
		log.Printf("bed: remove partial output %s: %v", out.path, err)
	}
}

// CountLines returns the number of newline-terminated lines in path (plus one
// for a final unterminated line).  It is only used to size progress reports,
// and costs a full extra read of the input.
func CountLines(ctx context.Context, path string) (n int, err error) {
	in, err := Open(ctx, path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	buf := make([]byte, 256<<10)
	last := byte('\n')
	for {
		nRead, rerr := in.Read(buf)
		if nRead > 0 {
			n += bytes.Count(buf[:nRead], []byte{'\n'})
			last = buf[nRead-1]
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return n, rerr
		}
	}
	if last != '\n' {
		n++
	}
	return n, nil
}
