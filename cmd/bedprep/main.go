// Copyright 2020 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

// bedprep prepares BED interval datasets and evaluates predictions made on
// them.
//
// Usage:
//
//	bedprep windows [-w 1001] [-region chr:a-b] [-regions r.bed] [-progress] in.bed out.bed
//	bedprep percent [-merge] [-invert] [-min-fields 9] [-label TAD] genome.fai features.bed
//	bedprep roc [-seed N] [-curve out.tsv] [-truth truth.bed] input plot.png
//	bedprep hist [-bins 30] [-out histograms] classification.bed

import "github.com/grailbio/bedprep/cmd/bedprep/cmd"

func main() {
	cmd.Run()
}
