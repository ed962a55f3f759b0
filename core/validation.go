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


package core

import (
	"fmt"
	"strings"
)

// typeRules maps each chunk type to its payload-shape check. Adding a chunk
// type means adding a vocabulary constant and one entry here; the validator
// itself does not change.
var typeRules = map[ChunkType]func(raw *RawChunk) []error{
	TypeMistakePattern:     validateMistakePattern,
	TypeFunctionReference:  validateFunctionReference,
	TypeUsagePattern:       validateNoPayload,
	TypeConceptExplanation: validateNoPayload,
	TypeOperatorReference:  validateOperatorReference,
}

// ValidateRaw checks a raw chunk record against the schema and returns
// either a validated Chunk or the list of every problem found, never both.
// Errors accumulate rather than short-circuiting so a single report covers
// the whole record.
//
// Rules, in order:
//  1. Required envelope fields present and non-empty after trimming:
//     id, type, title, summary, content.
//  2. Type tag is a member of the fixed vocabulary.
//  3. Type-dependent payload shape, per typeRules.
//  4. Priority tier recognized; absent priority defaults to medium.
//
// Corpus-level identifier uniqueness is checked separately with
// CheckUniqueIDs, since it needs the full set.
func ValidateRaw(raw *RawChunk) (*Chunk, []error) {
	if raw == nil {
		return nil, []error{fmt.Errorf("%w: record is nil", ErrInvalidChunk)}
	}

	var errs []error

	required := []struct {
		name  string
		value string
	}{
		{"id", raw.ID},
		{"type", raw.Type},
		{"title", raw.Title},
		{"summary", raw.Summary},
		{"content", raw.Content},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingField, f.name))
		}
	}

	chunkType := ChunkType(strings.TrimSpace(raw.Type))
	if raw.Type != "" && !chunkType.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownType, raw.Type))
	}

	if rule, ok := typeRules[chunkType]; ok {
		errs = append(errs, rule(raw)...)
	}

	priority, err := ParsePriority(strings.TrimSpace(raw.Priority))
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: %q", err, raw.Priority))
	}

	if len(errs) > 0 {
		return nil, errs
	}

	chunk := &Chunk{
		ID:           strings.TrimSpace(raw.ID),
		Type:         chunkType,
		Priority:     priority,
		Title:        strings.TrimSpace(raw.Title),
		Summary:      strings.TrimSpace(raw.Summary),
		Content:      strings.TrimSpace(raw.Content),
		Keywords:     trimAll(raw.Keywords),
		Related:      trimAll(raw.Related),
		SeeAlso:      trimAll(raw.SeeAlso),
		IntroducedIn: strings.TrimSpace(raw.IntroducedIn),
		Deprecated:   strings.TrimSpace(raw.Deprecated),
		Signature:    strings.TrimSpace(raw.Signature),
		SourcePath:   raw.SourcePath,
	}
	if raw.Wrong != nil {
		chunk.Wrong = &CodeExample{Code: raw.Wrong.Code, Explanation: raw.Wrong.Explanation}
	}
	if raw.Right != nil {
		chunk.Right = &CodeExample{Code: raw.Right.Code, Explanation: raw.Right.Explanation}
	}
	for _, p := range raw.Params {
		chunk.Params = append(chunk.Params, Param{Name: p.Name, Description: p.Description})
	}

	return chunk, nil
}

// CheckUniqueIDs returns, for each identifier declared by more than one
// chunk, the indices of every offender in the input slice. All offenders
// are invalid, not just the later ones.
func CheckUniqueIDs(chunks []*Chunk) map[string][]int {
	seen := make(map[string][]int, len(chunks))
	for i, c := range chunks {
		seen[c.ID] = append(seen[c.ID], i)
	}
	dups := make(map[string][]int)
	for id, idxs := range seen {
		if len(idxs) > 1 {
			dups[id] = idxs
		}
	}
	if len(dups) == 0 {
		return nil
	}
	return dups
}

func validateMistakePattern(raw *RawChunk) []error {
	var errs []error
	if raw.Wrong == nil {
		errs = append(errs, fmt.Errorf("%w: mistake-pattern requires a wrong example", ErrPayloadShape))
	} else if strings.TrimSpace(raw.Wrong.Code) == "" {
		errs = append(errs, fmt.Errorf("%w: wrong example has no code sample", ErrPayloadShape))
	}
	if raw.Right == nil {
		errs = append(errs, fmt.Errorf("%w: mistake-pattern requires a right example", ErrPayloadShape))
	} else if strings.TrimSpace(raw.Right.Code) == "" {
		errs = append(errs, fmt.Errorf("%w: right example has no code sample", ErrPayloadShape))
	}
	return errs
}

func validateFunctionReference(raw *RawChunk) []error {
	var errs []error
	if strings.TrimSpace(raw.Signature) == "" {
		errs = append(errs, fmt.Errorf("%w: function-reference requires a signature", ErrPayloadShape))
	}
	for i, p := range raw.Params {
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("%w: param %d has no name", ErrPayloadShape, i))
		}
	}
	return errs
}

// Operator references may carry a signature but need nothing beyond the
// envelope. Wrong/right payloads belong to mistake-pattern only.
func validateOperatorReference(raw *RawChunk) []error {
	return validateNoPayload(raw)
}

func validateNoPayload(raw *RawChunk) []error {
	var errs []error
	if raw.Wrong != nil || raw.Right != nil {
		errs = append(errs, fmt.Errorf("%w: wrong/right examples are only valid on mistake-pattern", ErrPayloadShape))
	}
	return errs
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
