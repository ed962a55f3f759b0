package searchindex

import (
	"sort"
	"strings"

	"github.com/gaussref/refbuild/core"
)

// Stop words filtered out of title tokens; they would bloat the index
// without helping a lookup.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// keywordsFor returns the deduplicated, lower-cased keyword set for a chunk:
// its declared keyword list plus its title tokens, minus stop words. The
// result is sorted so index construction is deterministic.
func keywordsFor(c *core.Chunk) []string {
	seen := make(map[string]bool)
	for _, kw := range c.Keywords {
		if cleaned := cleanToken(kw); cleaned != "" {
			seen[cleaned] = true
		}
	}
	for _, word := range strings.Fields(c.Title) {
		cleaned := cleanToken(word)
		if cleaned != "" && !stopWords[cleaned] {
			seen[cleaned] = true
		}
	}

	keywords := make([]string, 0, len(seen))
	for kw := range seen {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

// cleanToken lowercases and trims surrounding whitespace and punctuation.
func cleanToken(word string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(word), ".,!?;:'\"-()[]{}"))
}
