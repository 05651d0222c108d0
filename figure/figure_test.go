package figure_test

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bedprep/figure"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"gonum.org/v1/plot/plotter"
)

func TestFormat(t *testing.T) {
	expect.EQ(t, figure.Format("roc.png"), "png")
	expect.EQ(t, figure.Format("s3://bucket/roc.SVG"), "svg")
	expect.EQ(t, figure.Format("roc"), "png")
}

func TestSave(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	p := figure.New("title", "x", "y", figure.Opts{LabelSize: 16})
	l, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	assert.NoError(t, err)
	p.Add(l)

	path := filepath.Join(tmpdir, "line.png")
	assert.NoError(t, figure.Save(ctx, p, path, figure.DefaultOpts))
	data, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	expect.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	err = figure.Save(ctx, p, filepath.Join(tmpdir, "line.bogus"), figure.DefaultOpts)
	expect.HasSubstr(t, err.Error(), "unsupported format")
}
