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

import "strings"

// FlattenedText linearizes a chunk into a single prose string: title,
// summary, body, then structured payload fields in a fixed order. The result is
// canonical for a given chunk, so it doubles as the digest input and as the
// text the export renderer sizes against.
func (c *Chunk) FlattenedText() string {
	var b strings.Builder
	b.WriteString(c.Title)
	b.WriteString("\n\n")
	b.WriteString(c.Summary)
	b.WriteString("\n\n")
	b.WriteString(c.Content)

	if c.Signature != "" {
		b.WriteString("\n\nSignature: ")
		b.WriteString(c.Signature)
	}
	for _, p := range c.Params {
		b.WriteString("\n- ")
		b.WriteString(p.Name)
		if p.Description != "" {
			b.WriteString(": ")
			b.WriteString(p.Description)
		}
	}
	if c.Wrong != nil {
		b.WriteString("\n\nWrong:\n")
		b.WriteString(c.Wrong.Code)
		if c.Wrong.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(c.Wrong.Explanation)
		}
	}
	if c.Right != nil {
		b.WriteString("\n\nRight:\n")
		b.WriteString(c.Right.Code)
		if c.Right.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(c.Right.Explanation)
		}
	}
	return b.String()
}
