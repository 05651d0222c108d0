package genome_test

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bedprep/genome"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

// First rows of dm3.fa.fai.
const dm3Fai = "chr2L\t23011544\t7\t50\t51\n" +
	"chr2LHet\t368872\t23471782\t50\t51\n" +
	"chr2R\t21146708\t23848037\t50\t51\n"

func TestReadFai(t *testing.T) {
	contigs, err := genome.ReadFai(strings.NewReader(dm3Fai))
	assert.NoError(t, err)
	expect.EQ(t, contigs, []genome.Contig{
		{"chr2L", 23011544, 7, 50, 51},
		{"chr2LHet", 368872, 23471782, 50, 51},
		{"chr2R", 21146708, 23848037, 50, 51},
	})
	expect.EQ(t, genome.TotalLength(contigs), int64(23011544+368872+21146708))
}

func TestReadFaiErrors(t *testing.T) {
	for _, input := range []string{
		"chr1\tabc\t0\t50\t51\n",
		"chr1\t-1\t0\t50\t51\n",
		"chr1\t10\t0\t50\t51\nchr1\t10\t20\t50\t51\n",
	} {
		_, err := genome.ReadFai(strings.NewReader(input))
		expect.True(t, errors.Is(errors.Invalid, err), input)
	}
}

func TestReadFaiPath(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	path := filepath.Join(tmpdir, "dm3.fa.fai")
	assert.NoError(t, ioutil.WriteFile(path, []byte(dm3Fai), 0644))

	contigs, err := genome.ReadFaiPath(vcontext.Background(), path)
	assert.NoError(t, err)
	expect.EQ(t, len(contigs), 3)

	_, err = genome.ReadFaiPath(vcontext.Background(), filepath.Join(tmpdir, "missing.fai"))
	expect.NotNil(t, err)
}
