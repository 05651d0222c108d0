// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*Package bed reads and writes BED-like interval files: tab-separated lines of
  the form

    chrom  start  end  [extra fields...]

  with a 0-based inclusive start and an exclusive end.  Fields after the end
  coordinate are opaque to this package and are carried through verbatim.

  Scanner is strict by default: every line must be a record, and a line with
  too few fields or a non-integer coordinate stops the scan with an
  errors.Invalid error (see IsMalformed).  There is no skip-and-continue mode.
*/
package bed
