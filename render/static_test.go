package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaussref/refbuild/core"
)

func conceptChunk(id string, p core.Priority) *core.Chunk {
	return &core.Chunk{
		ID:       id,
		Type:     core.TypeConceptExplanation,
		Priority: p,
		Title:    "Title " + id,
		Summary:  "Summary for " + id + ".",
		Content:  "Content for " + id + ".",
	}
}

func gotchaChunk(id string, p core.Priority) *core.Chunk {
	return &core.Chunk{
		ID:       id,
		Type:     core.TypeMistakePattern,
		Priority: p,
		Title:    "Gotcha " + id,
		Summary:  "Summary for " + id + ".",
		Content:  "Content for " + id + ".",
		Wrong:    &core.CodeExample{Code: "y = transpose(x);", Explanation: "no such builtin"},
		Right:    &core.CodeExample{Code: "y = x';"},
	}
}

func TestRenderDocumentSectionOrder(t *testing.T) {
	selected := []*core.Chunk{
		gotchaChunk("g-low", core.PriorityMedium),
		conceptChunk("syntax-a", core.PriorityHigh),
		gotchaChunk("g-crit", core.PriorityCritical),
	}

	doc := NewStaticRenderer().RenderDocument(selected)
	text := string(doc.Data)

	syntaxAt := strings.Index(text, "## Core syntax")
	gotchasAt := strings.Index(text, "## Gotchas")
	summariesAt := strings.Index(text, "## Topic summaries")
	require.True(t, syntaxAt >= 0 && gotchasAt >= 0 && summariesAt >= 0, "missing sections:\n%s", text)
	assert.Less(t, syntaxAt, gotchasAt, "core syntax must precede gotchas")
	assert.Less(t, gotchasAt, summariesAt, "gotchas must precede summaries")

	// Gotchas ordered by descending priority.
	critAt := strings.Index(text, "Gotcha g-crit")
	lowAt := strings.Index(text, "Gotcha g-low")
	assert.Less(t, critAt, lowAt, "critical gotcha must come first")

	// Every selected chunk appears in the summary list.
	for _, c := range selected {
		assert.Contains(t, text, "**"+c.Title+"**")
	}
}

func TestRenderDocumentDeterministic(t *testing.T) {
	a := conceptChunk("a", core.PriorityHigh)
	b := gotchaChunk("b", core.PriorityHigh)

	first := NewStaticRenderer().RenderDocument([]*core.Chunk{a, b})
	second := NewStaticRenderer().RenderDocument([]*core.Chunk{b, a})
	assert.Equal(t, first.Data, second.Data, "document must be byte-identical regardless of input order")
}

func TestRenderTopicsOneFilePerChunk(t *testing.T) {
	chunks := []*core.Chunk{
		conceptChunk("beta", core.PriorityLow),
		conceptChunk("alpha", core.PriorityCritical),
	}

	artifacts := NewStaticRenderer().RenderTopics(chunks)
	require.Len(t, artifacts, 2)
	// Ascending identifier order.
	assert.Equal(t, "topics/alpha.md", artifacts[0].Path)
	assert.Equal(t, "topics/beta.md", artifacts[1].Path)

	// Low-priority chunks get topic files even though the quick reference
	// never includes them.
	assert.Contains(t, string(artifacts[1].Data), "Summary for beta.")
}

func TestRenderTopicsIncludesPayloadAndRelations(t *testing.T) {
	c := gotchaChunk("transpose", core.PriorityCritical)
	c.Related = []string{"indexing"}
	c.SeeAlso = []string{"https://docs.example.com/transpose"}
	c.Params = []core.Param{{Name: "x", Description: "input matrix"}}

	artifacts := NewStaticRenderer().RenderTopics([]*core.Chunk{c})
	require.Len(t, artifacts, 1)
	text := string(artifacts[0].Data)

	assert.Contains(t, text, "**Wrong:**")
	assert.Contains(t, text, "y = transpose(x);")
	assert.Contains(t, text, "**Right:**")
	assert.Contains(t, text, "**Related:** indexing")
	assert.Contains(t, text, "https://docs.example.com/transpose")
}
