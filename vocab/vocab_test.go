package vocab

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subwordml/prepseq/split/words"
)

func TestCounterFromViews(t *testing.T) {
	tok := words.New(nil)
	v, err := tok.Tokenize("read read write")
	require.NoError(t, err)

	c := NewCounter()
	c.AddSubTokens(v)

	assert.Equal(t, []Entry{
		{Token: "read</t>", Count: 2},
		{Token: "write</t>", Count: 1},
	}, c.Entries())
}

func TestCounterFullTokens(t *testing.T) {
	tok := words.New(nil)
	v, err := tok.Tokenize("readFile readFile")
	require.NoError(t, err)

	c := NewCounter()
	c.AddFullTokens(v.FullView())

	assert.Equal(t, []Entry{{Token: "readFile</t>", Count: 2}}, c.Entries())
}

func TestMergeAndOrdering(t *testing.T) {
	a := NewCounter()
	a.counts["x"] = 3
	a.counts["y"] = 1

	b := NewCounter()
	b.counts["y"] = 2
	b.counts["z"] = 3

	a.Merge(b)
	assert.Equal(t, []Entry{
		{Token: "x", Count: 3},
		{Token: "y", Count: 3},
		{Token: "z", Count: 3},
	}, a.Entries())
}

func TestAddCorpusFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte("a b\nb  c\n"), 0o644))

	c := NewCounter()
	require.NoError(t, c.AddCorpusFile(path))

	assert.Equal(t, []Entry{
		{Token: "b", Count: 2},
		{Token: "a", Count: 1},
		{Token: "c", Count: 1},
	}, c.Entries())
}

func TestAddCorpusFileEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	c := NewCounter()
	require.NoError(t, c.AddCorpusFile(path))
	assert.Empty(t, c.Entries())
}

func TestWriteReadRoundTrip(t *testing.T) {
	c := NewCounter()
	c.counts["re</t>"] = 5
	c.counts["the"] = 7

	dir := t.TempDir()
	path := filepath.Join(dir, "vocab")
	require.NoError(t, c.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "the 7\nre</t> 5\n", string(data))

	entries, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, c.Entries(), entries)
}

func TestReadFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab")
	require.NoError(t, os.WriteFile(path, []byte("justatoken\n"), 0o644))

	_, err := ReadFile(path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "malformed"))
}
