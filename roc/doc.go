// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package roc scores a set of interval predictions against an overlap-based
// ground truth.
//
// A prediction is positive when it overlaps at least one truth interval.  The
// positives are kept whole, an equal number of negatives is sampled, and the
// prediction scores of the balanced set are turned into a receiver operating
// characteristic curve and its area (AUC).
//
// Overlap labels come either from a bedtools "intersect -loj" style joined
// file (ReadJoined) or from a truth BED queried directly (LabelByOverlap).
package roc
