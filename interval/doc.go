// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*Package interval implements interval-union operations over genomic
  coordinates loaded from BED files.
  (Note the 'union'.  Overlapping and touching intervals are merged, not
  tracked separately; use roc's overlap index when individual features
  matter.)
  Its main use here is counting the bases covered by a feature set without
  double-counting overlaps.
*/
package interval
