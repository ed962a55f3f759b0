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


package searchindex

import (
	"bytes"
	"log/slog"
	"sort"

	"github.com/gaussref/refbuild/core"
)

// Build renders the search-index artifact: a Badger directory mapping each
// keyword to the sorted identifiers of the chunks carrying it. The directory
// is expected to live in the orchestrator's staging area; committing it is
// the orchestrator's job.
//
// sizerName is recorded in the index so the consuming lookup server knows
// which units the corresponding manifest's sizes are in.
//
// The returned digest hashes the logical index content (sorted keywords and
// postings), not the database files: Badger's on-disk bytes are not stable
// across runs, the mapping is.
func Build(dir string, chunks []*core.Chunk, sizerName string, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	postings := make(map[string][]string)
	for _, c := range chunks {
		for _, kw := range keywordsFor(c) {
			postings[kw] = append(postings[kw], c.ID)
		}
	}

	keywords := make([]string, 0, len(postings))
	for kw := range postings {
		ids := postings[kw]
		sort.Strings(ids)
		postings[kw] = dedupeSorted(ids)
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	b, err := openBackend(dir, false, logger)
	if err != nil {
		return "", err
	}

	var canonical bytes.Buffer
	wb := b.db.NewWriteBatch()
	for _, kw := range keywords {
		value := marshalPostings(postings[kw])
		if err := wb.Set(makeKeywordKey(kw), value); err != nil {
			wb.Cancel()
			b.Close()
			return "", err
		}
		canonical.WriteString(kw)
		canonical.WriteByte(0)
		canonical.Write(value)
	}
	if err := wb.Set([]byte(metaKey), []byte(sizerName)); err != nil {
		wb.Cancel()
		b.Close()
		return "", err
	}
	if err := wb.Flush(); err != nil {
		b.Close()
		return "", err
	}

	logger.Debug("search index built", "dir", dir, "keywords", len(keywords))
	return core.DigestBytes(canonical.Bytes()), b.Close()
}

func dedupeSorted(ids []string) []string {
	out := ids[:0]
	for i, id := range ids {
		if i == 0 || ids[i-1] != id {
			out = append(out, id)
		}
	}
	return out
}
