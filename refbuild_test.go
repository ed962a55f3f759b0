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


package refbuild

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaussref/refbuild/build"
	"github.com/gaussref/refbuild/selection"
)

func writeCorpusFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const validChunk = `id: matrix-indexing
type: concept-explanation
priority: critical
title: Matrix indexing
summary: Indexing is one-based and uses parentheses.
content: Use a(i, j) to read element i, j. Ranges use the colon operator.
keywords: [indexing, matrix]
`

const invalidChunk = `id: broken
type: concept-explanation
title: Broken
summary: ""
content: Content.
`

func TestBuildProducesCommittedArtifacts(t *testing.T) {
	content := t.TempDir()
	out := filepath.Join(t.TempDir(), "dist")
	writeCorpusFile(t, content, "indexing.yaml", validChunk)

	manifest, err := Build(context.Background(),
		build.Config{ContentRoot: content, OutputDir: out, Budget: 10000},
		build.WithSizer(selection.HeuristicSizer{}),
	)
	require.NoError(t, err)
	assert.Equal(t, build.StatusCompleted, manifest.Status)

	_, err = os.Stat(filepath.Join(out, "reference.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "manifest.json"))
	assert.NoError(t, err)
}

func TestBuildRejectsBadConfig(t *testing.T) {
	_, err := Build(context.Background(), build.Config{})
	assert.ErrorIs(t, err, build.ErrConfig)
}

func TestValidateCleanCorpus(t *testing.T) {
	content := t.TempDir()
	writeCorpusFile(t, content, "indexing.yaml", validChunk)

	report, err := Validate(context.Background(), content, nil)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Equal(t, 1, report.Checked)
}

func TestValidateReportsInvalidChunks(t *testing.T) {
	content := t.TempDir()
	writeCorpusFile(t, content, "good.yaml", validChunk)
	writeCorpusFile(t, content, "bad.yaml", invalidChunk)
	writeCorpusFile(t, content, "mangled.yaml", "chunks: [{")

	report, err := Validate(context.Background(), content, nil)
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Len(t, report.LoadErrors, 1)
	require.Len(t, report.Invalid, 1)
	assert.Equal(t, "broken", report.Invalid[0].ID)
	assert.NotEmpty(t, report.Invalid[0].Errors)
}

func TestValidateReportsDuplicateIDs(t *testing.T) {
	content := t.TempDir()
	writeCorpusFile(t, content, "one.yaml", validChunk)
	writeCorpusFile(t, content, "two.yaml", validChunk)

	report, err := Validate(context.Background(), content, nil)
	require.NoError(t, err)
	assert.False(t, report.OK())
	assert.Len(t, report.Invalid, 2)
}

func TestOpenIndexAfterBuild(t *testing.T) {
	content := t.TempDir()
	out := filepath.Join(t.TempDir(), "dist")
	writeCorpusFile(t, content, "indexing.yaml", validChunk)

	_, err := Build(context.Background(),
		build.Config{ContentRoot: content, OutputDir: out, Budget: 10000},
		build.WithSizer(selection.HeuristicSizer{}),
	)
	require.NoError(t, err)

	reader, err := OpenIndex(filepath.Join(out, "index"), nil)
	require.NoError(t, err)
	defer reader.Close()

	ids, err := reader.Lookup("indexing")
	require.NoError(t, err)
	assert.Equal(t, []string{"matrix-indexing"}, ids)
}
