package searchindex

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaussref/refbuild/core"
)

func indexChunk(id, title string, keywords ...string) *core.Chunk {
	return &core.Chunk{
		ID:       id,
		Type:     core.TypeConceptExplanation,
		Priority: core.PriorityMedium,
		Title:    title,
		Summary:  "summary",
		Content:  "content",
		Keywords: keywords,
	}
}

func buildTestIndex(t *testing.T, chunks []*core.Chunk) *Reader {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "index")
	digest, err := Build(dir, chunks, "heuristic-chars4", nil)
	require.NoError(t, err)
	require.Len(t, digest, 64)

	reader, err := Open(dir, nil)
	require.NoError(t, err)
	t.Cleanup(func() { reader.Close() })
	return reader
}

func TestBuildDigestDeterministic(t *testing.T) {
	chunks := []*core.Chunk{
		indexChunk("b", "Beta", "beta"),
		indexChunk("a", "Alpha", "alpha"),
	}
	reversed := []*core.Chunk{chunks[1], chunks[0]}

	first, err := Build(filepath.Join(t.TempDir(), "one"), chunks, "s", nil)
	require.NoError(t, err)
	second, err := Build(filepath.Join(t.TempDir(), "two"), reversed, "s", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second, "logical digest must not depend on input order")
}

func TestExactLookup(t *testing.T) {
	reader := buildTestIndex(t, []*core.Chunk{
		indexChunk("transpose-gotcha", "Transpose operator", "Transpose", "operator"),
		indexChunk("indexing", "Matrix indexing", "matrix"),
	})

	ids, err := reader.Lookup("transpose")
	require.NoError(t, err)
	assert.Equal(t, []string{"transpose-gotcha"}, ids)

	// Case-insensitive: keywords were stored lower-cased.
	ids, err = reader.Lookup("TRANSPOSE")
	require.NoError(t, err)
	assert.Equal(t, []string{"transpose-gotcha"}, ids)
}

func TestLookupMissingKeyword(t *testing.T) {
	reader := buildTestIndex(t, []*core.Chunk{
		indexChunk("a", "Alpha", "alpha"),
	})

	_, err := reader.Lookup("nope")
	assert.True(t, errors.Is(err, ErrKeywordNotFound))
}

func TestTitleTokensIndexed(t *testing.T) {
	reader := buildTestIndex(t, []*core.Chunk{
		indexChunk("indexing", "Indexing a Matrix"),
	})

	// Title tokens are indexed; stop words are not.
	ids, err := reader.Lookup("matrix")
	require.NoError(t, err)
	assert.Equal(t, []string{"indexing"}, ids)

	_, err = reader.Lookup("a")
	assert.ErrorIs(t, err, ErrKeywordNotFound)
}

func TestPostingsSortedAndDeduplicated(t *testing.T) {
	reader := buildTestIndex(t, []*core.Chunk{
		indexChunk("zeta", "Zeta", "shared"),
		// "shared" both declared and in the title: still one posting.
		indexChunk("alpha", "Shared things", "shared"),
	})

	ids, err := reader.Lookup("shared")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, ids)
}

func TestPrefixLookup(t *testing.T) {
	reader := buildTestIndex(t, []*core.Chunk{
		indexChunk("m1", "One", "matrix"),
		indexChunk("m2", "Two", "matmul"),
		indexChunk("o1", "Three", "operator"),
	})

	results, err := reader.PrefixLookup("mat")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"m1"}, results["matrix"])
	assert.Equal(t, []string{"m2"}, results["matmul"])
}

func TestPrefixLookupNoMatches(t *testing.T) {
	reader := buildTestIndex(t, []*core.Chunk{
		indexChunk("a", "Alpha", "alpha"),
	})

	results, err := reader.PrefixLookup("zz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSizerNameRecorded(t *testing.T) {
	reader := buildTestIndex(t, []*core.Chunk{
		indexChunk("a", "Alpha", "alpha"),
	})

	name, err := reader.SizerName()
	require.NoError(t, err)
	assert.Equal(t, "heuristic-chars4", name)
}

func TestKeywordsFor(t *testing.T) {
	c := indexChunk("x", "The Transpose Operator!", "Transpose", "transpose", "  ")
	keywords := keywordsFor(c)
	assert.Equal(t, []string{"operator", "transpose"}, keywords)
}
