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


package build

import (
	"encoding/json"
	"time"
)

// Status is the overall outcome of a build run.
type Status string

const (
	// StatusCompleted means every chunk validated and every renderer ran.
	StatusCompleted Status = "completed"
	// StatusCompletedWithIssues means the run produced artifacts but
	// recorded localized problems: load errors, invalid chunks, or a
	// skipped budget-constrained renderer.
	StatusCompletedWithIssues Status = "completed_with_issues"
	// StatusFailed means an unrecoverable error aborted the run; no new
	// artifacts were committed.
	StatusFailed Status = "failed"
)

// ChunkRecord is the per-chunk validation outcome in the manifest.
type ChunkRecord struct {
	ID     string   `json:"id,omitempty"`
	Source string   `json:"source,omitempty"`
	Status string   `json:"status"`
	Errors []string `json:"errors,omitempty"`
	Digest string   `json:"digest,omitempty"`
}

// SelectionRecord is one selection decision for the budgeted output.
type SelectionRecord struct {
	ID       string `json:"id"`
	Priority string `json:"priority"`
	Size     int    `json:"size"`
	Selected bool   `json:"selected"`
	Reason   string `json:"reason"`
}

// ReferenceIssue is one dangling reference in the corpus.
type ReferenceIssue struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ArtifactRecord names one produced artifact and its content hash.
type ArtifactRecord struct {
	Path string `json:"path"`
	Hash string `json:"hash"`
	Size int    `json:"size,omitempty"`
}

// Manifest is the machine-readable report of one build run. It is owned by
// the orchestrator, created fresh per run, and never mutated after the run
// completes; the next run's manifest supersedes it.
type Manifest struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Status     Status    `json:"status"`
	Stage      string    `json:"stage"`
	Sizer      string    `json:"sizer"`
	Budget     int       `json:"budget"`

	Chunks     []ChunkRecord     `json:"chunks"`
	LoadErrors []string          `json:"load_errors,omitempty"`
	Dangling   []ReferenceIssue  `json:"dangling_references,omitempty"`
	Cycles     [][]string        `json:"cycles,omitempty"`
	Selection  []SelectionRecord `json:"selection,omitempty"`
	Artifacts  []ArtifactRecord  `json:"artifacts,omitempty"`
	Issues     []string          `json:"issues,omitempty"`

	// BudgetViolation is set when the critical tier alone exceeds the
	// budget. The static document is skipped but the other artifacts still
	// commit; callers treat the run as a failure for exit-status purposes.
	BudgetViolation string `json:"budget_violation,omitempty"`
}

// HasIssues reports whether the run recorded any localized problems.
func (m *Manifest) HasIssues() bool {
	return len(m.Issues) > 0
}

// Encode renders the manifest as indented JSON.
func (m *Manifest) Encode() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
