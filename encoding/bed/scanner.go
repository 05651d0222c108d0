// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bed

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
)

var errEOF = errors.New("eof")

// Opts controls Scanner behavior.
type Opts struct {
	// MinFields is the minimum number of tab-separated fields per line.  Values
	// below 3 are treated as 3, since chrom/start/end are always required.
	MinFields int
	// SkipHeaders skips blank lines and UCSC "#", "track" and "browser" header
	// lines instead of reporting them as malformed records.
	SkipHeaders bool
}

// DefaultOpts is the strict three-column configuration.
var DefaultOpts = Opts{MinFields: 3}

// Scanner reads Records from a BED stream.  The Scan method fills the next
// record, returning a boolean indicating whether the read succeeded.  Once
// Scan returns false it never returns true again; the caller must then check
// Err to distinguish end-of-input from failure.  Scanners are not threadsafe.
type Scanner struct {
	r    *bufio.Reader
	buf  []byte
	opts Opts
	line int
	err  error
}

// NewScanner constructs a Scanner reading from r.
func NewScanner(r io.Reader, opts Opts) *Scanner {
	if opts.MinFields < 3 {
		opts.MinFields = 3
	}
	return &Scanner{r: bufio.NewReaderSize(r, 64<<10), opts: opts}
}

// readLine returns the next line, including its newline if any.  Lines longer
// than the reader's buffer are accumulated in s.buf, so there is no length
// limit.  A final unterminated line is returned with a nil error.
func (s *Scanner) readLine() ([]byte, error) {
	line, err := s.r.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		s.buf = append(s.buf[:0], line...)
		for err == bufio.ErrBufferFull {
			line, err = s.r.ReadSlice('\n')
			s.buf = append(s.buf, line...)
		}
		line = s.buf
	}
	if err == io.EOF && len(line) > 0 {
		err = nil
	}
	return line, err
}

// Scan reads the next record into rec.  rec.Fields is overwritten in place,
// reusing its backing array.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err != nil {
		return false
	}
	for {
		raw, err := s.readLine()
		if err != nil {
			if s.err = err; err == io.EOF {
				s.err = errEOF
			}
			return false
		}
		s.line++
		line := bytes.TrimSpace(raw)
		if s.opts.SkipHeaders && isHeader(line) {
			continue
		}
		if s.err = s.parse(string(line), rec); s.err != nil {
			return false
		}
		return true
	}
}

// Err returns the error that stopped the scan, or nil if the input was
// consumed completely.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

// Line returns the 1-based number of the line most recently read.
func (s *Scanner) Line() int {
	return s.line
}

func isHeader(line []byte) bool {
	return len(line) == 0 ||
		line[0] == '#' ||
		bytes.HasPrefix(line, []byte("track")) ||
		bytes.HasPrefix(line, []byte("browser"))
}

func (s *Scanner) parse(line string, rec *Record) error {
	rec.Fields = rec.Fields[:0]
	nField := strings.Count(line, "\t") + 1
	if nField < s.opts.MinFields {
		return s.malformed("expected at least %d fields, found %d", s.opts.MinFields, nField)
	}
	chrom, rest := cut(line)
	startStr, rest := cut(rest)
	endStr, rest := cut(rest)
	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return s.malformed("start coordinate %q is not an integer", startStr)
	}
	end, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return s.malformed("end coordinate %q is not an integer", endStr)
	}
	rec.Chrom = chrom
	rec.Start = start
	rec.End = end
	for nField > 3 {
		var f string
		f, rest = cut(rest)
		rec.Fields = append(rec.Fields, f)
		nField--
	}
	return nil
}

// cut splits s at the first tab.
func cut(s string) (field, rest string) {
	if i := strings.IndexByte(s, '\t'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

func (s *Scanner) malformed(format string, args ...interface{}) error {
	return errors.E(errors.Invalid, fmt.Sprintf("bed: line %d: ", s.line)+fmt.Sprintf(format, args...))
}

// IsMalformed reports whether err was caused by a malformed BED record, as
// opposed to an I/O failure.
func IsMalformed(err error) bool {
	return err != nil && errors.Is(errors.Invalid, err)
}
