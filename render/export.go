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
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/gaussref/refbuild/core"
	"github.com/gaussref/refbuild/selection"
)

// ExportRecord is one retrieval-ready record: identifier, flattened text,
// and the metadata an external embedding collaborator needs. Split records
// carry the originating chunk in ParentID.
type ExportRecord struct {
	ID           string   `json:"id"`
	ParentID     string   `json:"parent_id,omitempty"`
	Type         string   `json:"type"`
	Priority     string   `json:"priority"`
	Text         string   `json:"text"`
	Keywords     []string `json:"keywords,omitempty"`
	Related      []string `json:"related,omitempty"`
	Source       string   `json:"source,omitempty"`
	IntroducedIn string   `json:"introduced_in,omitempty"`
	Deprecated   string   `json:"deprecated,omitempty"`
}

// DefaultCeilings are the per-type token ceilings for export records.
// Gotchas target a smaller ceiling than concept explanations: retrieval
// works better when a gotcha is a single tight record.
var DefaultCeilings = map[core.ChunkType]int{
	core.TypeMistakePattern:     320,
	core.TypeOperatorReference:  320,
	core.TypeFunctionReference:  400,
	core.TypeUsagePattern:       480,
	core.TypeConceptExplanation: 640,
}

// ExportRenderer produces the flattened JSONL export for retrieval systems.
// Oversized chunks are split along natural boundaries, never truncated.
type ExportRenderer struct {
	sizer    selection.Sizer
	ceilings map[core.ChunkType]int
}

// ExportOption configures an ExportRenderer.
type ExportOption func(*ExportRenderer)

// WithCeilings overrides the per-type token ceilings. Types absent from the
// map keep their defaults.
func WithCeilings(ceilings map[core.ChunkType]int) ExportOption {
	return func(r *ExportRenderer) {
		for t, c := range ceilings {
			if c > 0 {
				r.ceilings[t] = c
			}
		}
	}
}

// NewExportRenderer creates an ExportRenderer using the given sizer. The
// sizer must be the same one the selection engine uses so ceiling and budget
// units agree.
func NewExportRenderer(sizer selection.Sizer, opts ...ExportOption) *ExportRenderer {
	r := &ExportRenderer{
		sizer:    sizer,
		ceilings: make(map[core.ChunkType]int, len(DefaultCeilings)),
	}
	for t, c := range DefaultCeilings {
		r.ceilings[t] = c
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render flattens every validated chunk into JSONL, one record per line,
// ordered by record identifier. Chunks above their type's ceiling are split
// into sibling records sharing a parent identifier.
func (r *ExportRenderer) Render(chunks []*core.Chunk) (Artifact, error) {
	var records []ExportRecord
	for _, c := range chunks {
		recs, err := r.recordsFor(c)
		if err != nil {
			return Artifact{}, fmt.Errorf("export %s: %w", c.ID, err)
		}
		records = append(records, recs...)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return Artifact{}, err
		}
	}
	return Artifact{Path: "chunks.jsonl", Data: buf.Bytes()}, nil
}

func (r *ExportRenderer) recordsFor(c *core.Chunk) ([]ExportRecord, error) {
	ceiling := r.ceilings[c.Type]
	full := c.FlattenedText()

	if ceiling <= 0 || r.sizer.Size(full) <= ceiling {
		return []ExportRecord{r.record(c, c.ID, "", full)}, nil
	}

	// Natural boundaries first: a mistake-pattern splits into the prose
	// plus sibling wrong/right records.
	if c.Type == core.TypeMistakePattern && (c.Wrong != nil || c.Right != nil) {
		return r.splitMistakePattern(c, ceiling)
	}
	return r.splitProse(c, c.ID, "", full, ceiling)
}

func (r *ExportRenderer) splitMistakePattern(c *core.Chunk, ceiling int) ([]ExportRecord, error) {
	prose := c.Title + "\n\n" + c.Summary + "\n\n" + c.Content

	var records []ExportRecord
	base, err := r.splitProse(c, c.ID, "", prose, ceiling)
	if err != nil {
		return nil, err
	}
	records = append(records, base...)

	if c.Wrong != nil {
		text := c.Title + " (wrong)\n\n" + c.Wrong.Code
		if c.Wrong.Explanation != "" {
			text += "\n\n" + c.Wrong.Explanation
		}
		wrong, err := r.splitProse(c, c.ID+"#wrong", c.ID, text, ceiling)
		if err != nil {
			return nil, err
		}
		records = append(records, wrong...)
	}
	if c.Right != nil {
		text := c.Title + " (right)\n\n" + c.Right.Code
		if c.Right.Explanation != "" {
			text += "\n\n" + c.Right.Explanation
		}
		right, err := r.splitProse(c, c.ID+"#right", c.ID, text, ceiling)
		if err != nil {
			return nil, err
		}
		records = append(records, right...)
	}
	return records, nil
}

// splitProse breaks long prose on paragraph and sentence boundaries using a
// recursive character splitter, then checks every part against the sizer so
// no emitted record exceeds the ceiling.
func (r *ExportRenderer) splitProse(c *core.Chunk, id, parent, text string, ceiling int) ([]ExportRecord, error) {
	if r.sizer.Size(text) <= ceiling {
		return []ExportRecord{r.record(c, id, parent, text)}, nil
	}

	parts, err := r.splitToCeiling(text, ceiling)
	if err != nil {
		return nil, err
	}

	if parent == "" {
		parent = id
	}
	records := make([]ExportRecord, 0, len(parts))
	for i, part := range parts {
		records = append(records, r.record(c, fmt.Sprintf("%s#part%d", id, i+1), parent, part))
	}
	return records, nil
}

// splitToCeiling splits text until every part sizes under the ceiling. The
// split size starts at the usual four-characters-per-token ratio; when the
// sizer still counts a part over the ceiling, the size halves and the text
// re-splits. The splitter never truncates, it only chooses split points, so
// an unbreakable run longer than the ceiling ends in ErrUnsplittable rather
// than a silently oversized record.
func (r *ExportRenderer) splitToCeiling(text string, ceiling int) ([]string, error) {
	for charSize := ceiling * 4; charSize >= 1; charSize /= 2 {
		splitter := textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(charSize),
			textsplitter.WithChunkOverlap(0),
			textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", " "}),
		)
		parts, err := splitter.SplitText(text)
		if err != nil {
			return nil, err
		}
		fits := true
		for _, part := range parts {
			if r.sizer.Size(part) > ceiling {
				fits = false
				break
			}
		}
		if fits {
			return parts, nil
		}
	}
	return nil, fmt.Errorf("%w: ceiling %d", ErrUnsplittable, ceiling)
}

func (r *ExportRenderer) record(c *core.Chunk, id, parent, text string) ExportRecord {
	return ExportRecord{
		ID:           id,
		ParentID:     parent,
		Type:         string(c.Type),
		Priority:     c.Priority.String(),
		Text:         text,
		Keywords:     c.Keywords,
		Related:      c.Related,
		Source:       c.SourcePath,
		IntroducedIn: c.IntroducedIn,
		Deprecated:   c.Deprecated,
	}
}
