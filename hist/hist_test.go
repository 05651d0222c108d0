package hist_test

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bedprep/encoding/bed"
	"github.com/grailbio/bedprep/hist"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

const classification = "PcG\t0\t100\tx\t0\t.\t0\t100\t0,0,255\n" +
	"Active\t0\t40\tx\t0\t.\t0\t40\t255,0,0\n" +
	"PcG\t200\t210\tx\t0\t.\t200\t210\t0,0,255\n" +
	"Null\t5\t35\tx\t0\t.\t5\t35\t0,0,0\n"

func TestReadLengths(t *testing.T) {
	groups, err := hist.ReadLengths(strings.NewReader(classification), hist.DefaultOpts)
	assert.NoError(t, err)
	expect.EQ(t, groups, hist.Groups{
		{Label: "Active", Lengths: []float64{40}},
		{Label: "Null", Lengths: []float64{30}},
		{Label: "PcG", Lengths: []float64{100, 10}},
	})
	expect.EQ(t, groups.All(), []float64{40, 30, 100, 10})

	_, err = hist.ReadLengths(strings.NewReader("PcG\t0\n"), hist.DefaultOpts)
	expect.True(t, bed.IsMalformed(err))
}

func TestBinned(t *testing.T) {
	bins := hist.Binned([]float64{10, 0, 5, 10, 2.5}, 4)
	expect.EQ(t, len(bins), 4)
	var counts []float64
	for _, b := range bins {
		counts = append(counts, b.Count)
	}
	expect.EQ(t, counts, []float64{1, 1, 1, 2})
	expect.EQ(t, bins[0].Min, 0.0)
	expect.EQ(t, bins[3].Max, 10.0)

	bins = hist.Binned([]float64{7, 7}, 2)
	expect.EQ(t, bins, []hist.Bin{{Min: 6.5, Max: 7, Count: 0}, {Min: 7, Max: 7.5, Count: 2}})

	expect.EQ(t, len(hist.Binned(nil, 30)), 0)
}

func TestFileName(t *testing.T) {
	expect.EQ(t, hist.FileName("PcG"), "PcG_genome_lengths_histogram.png")
	expect.EQ(t, hist.FileName("All"), "All_genome_lengths_histogram.png")
	expect.True(t, hist.FileName("all") != hist.OverallFileName)
	expect.EQ(t, hist.Title("PcG"), "Lengths of PcG Genomes")
}

func TestWriteAll(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	groups, err := hist.ReadLengths(strings.NewReader(classification), hist.DefaultOpts)
	assert.NoError(t, err)
	dir := filepath.Join(tmpdir, "histograms")
	paths, err := hist.WriteAll(ctx, groups, dir, hist.DefaultOpts)
	assert.NoError(t, err)
	expect.EQ(t, paths, []string{
		filepath.Join(dir, "Active_genome_lengths_histogram.png"),
		filepath.Join(dir, "Null_genome_lengths_histogram.png"),
		filepath.Join(dir, "PcG_genome_lengths_histogram.png"),
		filepath.Join(dir, "all_genomes_lengths_histogram.png"),
	})
	for _, path := range paths {
		data, err := ioutil.ReadFile(path)
		assert.NoError(t, err)
		expect.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), path)
	}
}

func TestWriteAllLabelNamedAll(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	groups, err := hist.ReadLengths(strings.NewReader("All\t0\t10\nPcG\t0\t100\n"), hist.DefaultOpts)
	assert.NoError(t, err)
	paths, err := hist.WriteAll(ctx, groups, tmpdir, hist.DefaultOpts)
	assert.NoError(t, err)
	expect.EQ(t, paths, []string{
		filepath.Join(tmpdir, "All_genome_lengths_histogram.png"),
		filepath.Join(tmpdir, "PcG_genome_lengths_histogram.png"),
		filepath.Join(tmpdir, hist.OverallFileName),
	})
	for _, path := range paths {
		_, err := ioutil.ReadFile(path)
		assert.NoError(t, err)
	}
}
