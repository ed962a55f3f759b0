// Copyright 2026 Gaussref Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package render

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gaussref/refbuild/core"
)

// Artifact is one rendered output file, addressed relative to the output
// root. The orchestrator stages and commits artifacts; renderers only
// produce bytes.
type Artifact struct {
	Path string
	Data []byte
}

// StaticRenderer produces the concatenated quick-reference document from
// the budgeted subset, plus one full-detail file per validated chunk.
type StaticRenderer struct{}

// NewStaticRenderer creates a StaticRenderer.
func NewStaticRenderer() *StaticRenderer {
	return &StaticRenderer{}
}

// RenderDocument renders the budgeted subset into a single document with a
// stable section order: core syntax first, then gotchas by descending
// priority, then condensed one-line summaries of everything included.
// Within a section, order is ascending identifier, so identical input
// produces identical bytes.
func (r *StaticRenderer) RenderDocument(selected []*core.Chunk) Artifact {
	var gotchas, syntax []*core.Chunk
	for _, c := range selected {
		if c.Type == core.TypeMistakePattern {
			gotchas = append(gotchas, c)
		} else {
			syntax = append(syntax, c)
		}
	}
	sort.Slice(syntax, func(i, j int) bool { return syntax[i].ID < syntax[j].ID })
	sort.Slice(gotchas, func(i, j int) bool {
		if gotchas[i].Priority != gotchas[j].Priority {
			return gotchas[i].Priority > gotchas[j].Priority
		}
		return gotchas[i].ID < gotchas[j].ID
	})

	var b strings.Builder
	b.WriteString("# Quick Reference\n")

	b.WriteString("\n## Core syntax\n")
	for _, c := range syntax {
		writeChunkSection(&b, c)
	}

	b.WriteString("\n## Gotchas\n")
	for _, c := range gotchas {
		writeChunkSection(&b, c)
	}

	b.WriteString("\n## Topic summaries\n\n")
	summaries := make([]*core.Chunk, len(selected))
	copy(summaries, selected)
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	for _, c := range summaries {
		fmt.Fprintf(&b, "- **%s**: %s\n", c.Title, c.Summary)
	}

	return Artifact{Path: "reference.md", Data: []byte(b.String())}
}

// RenderTopics renders one detail file per validated chunk. Topic files are
// not budget-limited; they carry the full chunk regardless of tier,
// including low-priority chunks the quick reference never includes.
func (r *StaticRenderer) RenderTopics(chunks []*core.Chunk) []Artifact {
	ordered := make([]*core.Chunk, len(chunks))
	copy(ordered, chunks)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	artifacts := make([]Artifact, 0, len(ordered))
	for _, c := range ordered {
		var b strings.Builder
		writeChunkDetail(&b, c)
		artifacts = append(artifacts, Artifact{
			Path: path.Join("topics", c.ID+".md"),
			Data: []byte(b.String()),
		})
	}
	return artifacts
}

func writeChunkSection(b *strings.Builder, c *core.Chunk) {
	fmt.Fprintf(b, "\n### %s\n\n", c.Title)
	b.WriteString(c.Summary)
	b.WriteString("\n\n")
	b.WriteString(c.Content)
	b.WriteString("\n")

	if c.Signature != "" {
		fmt.Fprintf(b, "\n```\n%s\n```\n", c.Signature)
	}
	if c.Wrong != nil {
		b.WriteString("\n**Wrong:**\n\n")
		writeExample(b, c.Wrong)
	}
	if c.Right != nil {
		b.WriteString("\n**Right:**\n\n")
		writeExample(b, c.Right)
	}
}

func writeChunkDetail(b *strings.Builder, c *core.Chunk) {
	fmt.Fprintf(b, "# %s\n\n", c.Title)
	fmt.Fprintf(b, "- ID: `%s`\n- Type: %s\n- Priority: %s\n", c.ID, c.Type, c.Priority)
	if c.IntroducedIn != "" {
		fmt.Fprintf(b, "- Introduced in: %s\n", c.IntroducedIn)
	}
	if c.Deprecated != "" {
		fmt.Fprintf(b, "- Deprecated: %s\n", c.Deprecated)
	}
	b.WriteString("\n")
	b.WriteString(c.Summary)
	b.WriteString("\n\n")
	b.WriteString(c.Content)
	b.WriteString("\n")

	if c.Signature != "" {
		fmt.Fprintf(b, "\n```\n%s\n```\n", c.Signature)
	}
	if len(c.Params) > 0 {
		b.WriteString("\n**Parameters:**\n\n")
		for _, p := range c.Params {
			fmt.Fprintf(b, "- `%s`: %s\n", p.Name, p.Description)
		}
	}
	if c.Wrong != nil {
		b.WriteString("\n**Wrong:**\n\n")
		writeExample(b, c.Wrong)
	}
	if c.Right != nil {
		b.WriteString("\n**Right:**\n\n")
		writeExample(b, c.Right)
	}
	if len(c.Related) > 0 {
		b.WriteString("\n**Related:** ")
		b.WriteString(strings.Join(c.Related, ", "))
		b.WriteString("\n")
	}
	if len(c.SeeAlso) > 0 {
		b.WriteString("\n**See also:**\n\n")
		for _, link := range c.SeeAlso {
			fmt.Fprintf(b, "- %s\n", link)
		}
	}
}

func writeExample(b *strings.Builder, ex *core.CodeExample) {
	fmt.Fprintf(b, "```\n%s\n```\n", ex.Code)
	if ex.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(ex.Explanation)
		b.WriteString("\n")
	}
}
