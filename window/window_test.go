package window_test

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bedprep/encoding/bed"
	"github.com/grailbio/bedprep/window"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, opts window.Opts, input string) (string, window.Stats, error) {
	e, err := window.New(vcontext.Background(), opts)
	require.NoError(t, err)
	var out bytes.Buffer
	stats, err := e.Run(strings.NewReader(input), &out)
	return out.String(), stats, err
}

func TestRadius(t *testing.T) {
	assert.Equal(t, int64(501), window.Radius(1001))
	assert.Equal(t, int64(1), window.Radius(1))
	assert.Equal(t, int64(51), window.Radius(101))
}

func TestExpandReferenceScenario(t *testing.T) {
	got, stats, err := run(t, window.DefaultOpts, "chr1\t1000\t2000\tgeneA\t0\t+\n")
	require.NoError(t, err)
	assert.Equal(t, "chr1\t499\t1501\tgeneA\t0\t+\nchr1\t1499\t2501\tgeneA\t0\t+\n", got)
	assert.Equal(t, window.Stats{Records: 1, Windows: 2}, stats)
}

func TestExpandNoClamping(t *testing.T) {
	got, _, err := run(t, window.DefaultOpts, "chr2\t0\t10\n")
	require.NoError(t, err)
	assert.Equal(t, "chr2\t-501\t501\nchr2\t-491\t511\n", got)
}

func TestExpandPreservesOrder(t *testing.T) {
	got, _, err := run(t, window.Opts{Size: 11}, "chrB\t100\t200\tsecond-first\nchrA\t50\t60\tfirst-second\n")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"chrB\t94\t106\tsecond-first",
		"chrB\t194\t206\tsecond-first",
		"chrA\t44\t56\tfirst-second",
		"chrA\t54\t66\tfirst-second",
	}, strings.Split(strings.TrimSuffix(got, "\n"), "\n"))
}

// Every record must produce exactly two windows of width 2*Radius, each with
// the source's trailing fields.
func TestExpandProperties(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for _, size := range []int{1, 3, 101, 1001, 4095} {
		radius := window.Radius(size)
		var input strings.Builder
		var srcs []bed.Record
		for i := 0; i < 200; i++ {
			start := r.Int63n(1 << 30)
			rec := bed.Record{
				Chrom: fmt.Sprintf("chr%d", r.Intn(22)+1),
				Start: start,
				End:   start + r.Int63n(100000),
			}
			for j := r.Intn(6); j > 0; j-- {
				rec.Fields = append(rec.Fields, fmt.Sprintf("f%d", r.Intn(1000)))
			}
			srcs = append(srcs, rec)
			input.WriteString(rec.String())
			input.WriteByte('\n')
		}
		got, stats, err := run(t, window.Opts{Size: size}, input.String())
		require.NoError(t, err)
		assert.Equal(t, 2*len(srcs), stats.Windows)

		sc := bed.NewScanner(strings.NewReader(got), bed.DefaultOpts)
		var win bed.Record
		for i := 0; sc.Scan(&win); i++ {
			src := srcs[i/2]
			center := src.Start
			if i%2 == 1 {
				center = src.End
			}
			assert.Equal(t, 2*radius, win.Len())
			assert.Equal(t, center-radius, win.Start)
			assert.Equal(t, src.Chrom, win.Chrom)
			assert.Equal(t, len(src.Fields), len(win.Fields))
			for k := range src.Fields {
				assert.Equal(t, src.Fields[k], win.Fields[k])
			}
		}
		require.NoError(t, sc.Err())
	}
}

func TestExpandMalformedStops(t *testing.T) {
	got, stats, err := run(t, window.DefaultOpts, "chr1\t1000\t2000\nchr1\t1000\nchr1\t5000\t6000\n")
	require.Error(t, err)
	assert.True(t, bed.IsMalformed(err))
	assert.Equal(t, 1, stats.Records)
	assert.Equal(t, "chr1\t499\t1501\nchr1\t1499\t2501\n", got)
}

func TestExpandRegion(t *testing.T) {
	input := "chr1\t100\t200\ta\nchr1\t5000\t6000\tb\nchr2\t100\t200\tc\n"
	got, stats, err := run(t, window.Opts{Size: 1001, Region: "chr1:1-1000"}, input)
	require.NoError(t, err)
	assert.Equal(t, window.Stats{Records: 1, Windows: 2, Skipped: 2}, stats)
	assert.Equal(t, "chr1\t-401\t601\ta\nchr1\t-301\t701\ta\n", got)
}

func TestExpandRegionsFile(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	regions := filepath.Join(tmpdir, "regions.bed")
	require.NoError(t, ioutil.WriteFile(regions, []byte("track name=enhancers\nchr1\t150\t160\nchr2\t1\t100\n"), 0644))
	input := "chr1\t100\t200\ta\nchr1\t145\t150\tb\nchr2\t100\t200\tc\nchr2\t99\t200\td\n"

	got, stats, err := run(t, window.Opts{Size: 1, Regions: regions}, input)
	require.NoError(t, err)
	assert.Equal(t, window.Stats{Records: 2, Windows: 4, Skipped: 2}, stats)
	assert.Equal(t, "chr1\t99\t101\ta\nchr1\t199\t201\ta\nchr2\t98\t100\td\nchr2\t199\t201\td\n", got)

	// One-based [150, 160] is zero-based [149, 160), which reaches b.
	_, stats, err = run(t, window.Opts{Size: 1, Regions: regions, RegionsOneBased: true}, input)
	require.NoError(t, err)
	assert.Equal(t, window.Stats{Records: 3, Windows: 6, Skipped: 1}, stats)

	_, stats, err = run(t, window.Opts{Size: 1, Regions: regions, Region: "chr2"}, input)
	require.NoError(t, err)
	assert.Equal(t, window.Stats{Records: 1, Windows: 2, Skipped: 3}, stats)
}

func TestExpandLongLine(t *testing.T) {
	long := strings.Repeat("x", 2<<20)
	got, stats, err := run(t, window.DefaultOpts, "chr1\t1000\t2000\t"+long+"\n")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Records)
	assert.Equal(t, "chr1\t499\t1501\t"+long+"\nchr1\t1499\t2501\t"+long+"\n", got)
}

func TestExpandCoordinateOverflow(t *testing.T) {
	for _, input := range []string{
		"chr1\t0\t9223372036854775800\n",
		"chr1\t-9223372036854775800\t0\n",
	} {
		got, _, err := run(t, window.DefaultOpts, input)
		require.Error(t, err, input)
		assert.True(t, bed.IsMalformed(err), input)
		assert.Equal(t, "", got)
	}
	got, _, err := run(t, window.DefaultOpts, "chr1\t0\t9223372036854775306\n")
	require.NoError(t, err)
	assert.Equal(t, "chr1\t-501\t501\nchr1\t9223372036854774805\t9223372036854775807\n", got)
}

func TestNewRejectsBadOpts(t *testing.T) {
	for _, opts := range []window.Opts{{Size: 0}, {Size: -3}, {Size: 1000}, {Size: 11, Region: ":1-2"}, {Size: 11, Regions: "/nonexistent/regions.bed"}} {
		_, err := window.New(vcontext.Background(), opts)
		assert.Error(t, err, "%+v", opts)
	}
}

func TestExpandFile(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	inPath := filepath.Join(tmpdir, "tad_classification.bed")
	require.NoError(t, ioutil.WriteFile(inPath, []byte("chr1\t1000\t2000\tgeneA\t0\t+\nchr2\t0\t10\tgeneB\t1\t-\n"), 0644))

	for _, name := range []string{"1001_tad_classification.bed", "1001_tad_classification.bed.gz"} {
		outPath := filepath.Join(tmpdir, name)
		opts := window.DefaultOpts
		opts.CountLines = true
		stats, err := window.ExpandFile(ctx, inPath, outPath, opts)
		require.NoError(t, err)
		assert.Equal(t, 4, stats.Windows)

		in, err := bed.Open(ctx, outPath)
		require.NoError(t, err)
		data, err := ioutil.ReadAll(in)
		require.NoError(t, err)
		require.NoError(t, in.Close(ctx))
		assert.Equal(t, "chr1\t499\t1501\tgeneA\t0\t+\n"+
			"chr1\t1499\t2501\tgeneA\t0\t+\n"+
			"chr2\t-501\t501\tgeneB\t1\t-\n"+
			"chr2\t-491\t511\tgeneB\t1\t-\n", string(data))
	}
}

func TestExpandFileMalformedLeavesNoOutput(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	inPath := filepath.Join(tmpdir, "bad.bed")
	require.NoError(t, ioutil.WriteFile(inPath, []byte("chr1\t1000\n"), 0644))
	outPath := filepath.Join(tmpdir, "out.bed")
	_, err := window.ExpandFile(ctx, inPath, outPath, window.DefaultOpts)
	require.Error(t, err)
	assert.True(t, bed.IsMalformed(err))
	_, err = os.Stat(outPath)
	assert.True(t, os.IsNotExist(err))
}

func TestExpandFileMissingInput(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	_, err := window.ExpandFile(ctx, filepath.Join(tmpdir, "missing.bed"), filepath.Join(tmpdir, "out.bed"), window.DefaultOpts)
	require.Error(t, err)
	assert.False(t, bed.IsMalformed(err))
}
