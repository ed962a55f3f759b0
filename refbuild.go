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
	"log/slog"

	"github.com/gaussref/refbuild/build"
	"github.com/gaussref/refbuild/core"
	"github.com/gaussref/refbuild/loader"
	"github.com/gaussref/refbuild/searchindex"
)

// Build runs one full pipeline over the content root and commits the
// artifact set to the output directory. It owns the orchestrator for the
// duration of the run.
func Build(ctx context.Context, cfg build.Config, opts ...build.Option) (*build.Manifest, error) {
	orch, err := build.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	defer orch.Release()
	return orch.Run(ctx)
}

// ChunkIssue describes one chunk that failed validation.
type ChunkIssue struct {
	ID     string
	Source string
	Errors []string
}

// ValidationReport is the outcome of a validation-only pass.
type ValidationReport struct {
	Checked    int
	LoadErrors []string
	Invalid    []ChunkIssue
}

// OK reports whether the corpus parsed and validated cleanly.
func (r *ValidationReport) OK() bool {
	return len(r.LoadErrors) == 0 && len(r.Invalid) == 0
}

// Validate parses and validates the corpus without producing artifacts.
func Validate(ctx context.Context, contentRoot string, logger *slog.Logger) (*ValidationReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	loaded, err := loader.New(loader.WithLogger(logger)).Load(ctx, contentRoot)
	if err != nil {
		return nil, err
	}

	report := &ValidationReport{Checked: len(loaded.Raw)}
	for _, le := range loaded.Errors {
		report.LoadErrors = append(report.LoadErrors, le.Error())
	}

	valid := make([]*core.Chunk, 0, len(loaded.Raw))
	for _, raw := range loaded.Raw {
		chunk, errs := core.ValidateRaw(raw)
		if len(errs) == 0 {
			valid = append(valid, chunk)
			continue
		}
		issue := ChunkIssue{ID: raw.ID, Source: raw.SourcePath}
		for _, e := range errs {
			issue.Errors = append(issue.Errors, e.Error())
		}
		report.Invalid = append(report.Invalid, issue)
	}

	for id, idxs := range core.CheckUniqueIDs(valid) {
		for _, idx := range idxs {
			report.Invalid = append(report.Invalid, ChunkIssue{
				ID:     id,
				Source: valid[idx].SourcePath,
				Errors: []string{core.ErrDuplicateID.Error()},
			})
		}
	}
	return report, nil
}

// OpenIndex opens a committed search-index artifact for lookups.
func OpenIndex(dir string, logger *slog.Logger) (*searchindex.Reader, error) {
	return searchindex.Open(dir, logger)
}
