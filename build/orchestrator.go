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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/gaussref/refbuild/core"
	"github.com/gaussref/refbuild/loader"
	"github.com/gaussref/refbuild/render"
	"github.com/gaussref/refbuild/resolve"
	"github.com/gaussref/refbuild/searchindex"
	"github.com/gaussref/refbuild/selection"
)

// Config holds the knobs for one build run.
type Config struct {
	// ContentRoot is the directory tree of chunk source files.
	ContentRoot string
	// OutputDir receives the committed artifact set. The previous build at
	// this location survives untouched unless the new run commits.
	OutputDir string
	// Budget is the size ceiling for the static quick-reference document,
	// in the sizer's units.
	Budget int
	// SkipIndex disables the search-index artifact.
	SkipIndex bool
	// Ceilings overrides per-type export record ceilings.
	Ceilings map[core.ChunkType]int
}

// Orchestrator sequences one build run through its stages and commits the
// artifact set atomically. Each run is independent; rerunning on unchanged
// input produces byte-identical artifacts.
type Orchestrator struct {
	cfg    Config
	loader *loader.Loader
	sizer  selection.Sizer
	pool   *ants.Pool
	logger *slog.Logger
	stage  Stage
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// WithSizer sets the sizer used for budgets and export ceilings.
// Default resolves via selection.NewSizer.
func WithSizer(sizer selection.Sizer) Option {
	return func(o *Orchestrator) error {
		o.sizer = sizer
		return nil
	}
}

// WithPoolSize sets the worker pool size for the parallel validation stage.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}
		if o.pool != nil {
			o.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// New creates an Orchestrator for the given configuration.
func New(cfg Config, opts ...Option) (*Orchestrator, error) {
	if cfg.ContentRoot == "" {
		return nil, fmt.Errorf("%w: content root required", ErrConfig)
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("%w: output directory required", ErrConfig)
	}
	if cfg.Budget <= 0 {
		return nil, fmt.Errorf("%w: budget must be positive", ErrConfig)
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		cfg:    cfg,
		pool:   pool,
		logger: slog.Default(),
		stage:  StageIdle,
	}
	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}
	if o.sizer == nil {
		o.sizer = selection.NewSizer(o.logger)
	}
	o.loader = loader.New(loader.WithLogger(o.logger))
	return o, nil
}

// Stage returns the orchestrator's current stage.
func (o *Orchestrator) Stage() Stage {
	return o.stage
}

// Release releases the worker pool. The orchestrator should not be used
// after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}

// validated pairs one raw record with its validation outcome, keeping slot
// order so parallel workers never contend on shared state.
type validated struct {
	chunk *core.Chunk
	errs  []error
}

// Run executes one full build. Per-chunk errors are recorded in the
// manifest and the run proceeds; a returned error means the run failed
// before committing and the previous artifacts are untouched.
func (o *Orchestrator) Run(ctx context.Context) (*Manifest, error) {
	manifest := &Manifest{
		StartedAt: time.Now().UTC(),
		Budget:    o.cfg.Budget,
		Sizer:     o.sizer.Name(),
	}

	fail := func(err error) (*Manifest, error) {
		o.stage = StageFailed
		manifest.Stage = StageFailed.String()
		manifest.Status = StatusFailed
		manifest.Issues = append(manifest.Issues, err.Error())
		manifest.FinishedAt = time.Now().UTC()
		o.logger.Error("build failed", "stage", o.stage, "err", err)
		return manifest, err
	}

	// Loading
	o.stage = StageLoading
	loaded, err := o.loader.Load(ctx, o.cfg.ContentRoot)
	if err != nil {
		return fail(err)
	}
	for _, le := range loaded.Errors {
		manifest.LoadErrors = append(manifest.LoadErrors, le.Error())
		manifest.Issues = append(manifest.Issues, le.Error())
		manifest.Chunks = append(manifest.Chunks, ChunkRecord{
			Source: le.Path,
			Status: "unparseable",
			Errors: []string{le.Err.Error()},
		})
	}

	// Validating: per-chunk work is independent, so it fans out over the
	// pool. Results land in preallocated slots; no shared accumulator.
	o.stage = StageValidating
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	results := make([]validated, len(loaded.Raw))
	var wg sync.WaitGroup
	for i, raw := range loaded.Raw {
		i, raw := i, raw
		wg.Add(1)
		task := func() {
			defer wg.Done()
			chunk, errs := core.ValidateRaw(raw)
			results[i] = validated{chunk: chunk, errs: errs}
		}
		if err := o.pool.Submit(task); err != nil {
			// Pool saturated or released: do the work inline.
			task()
		}
	}
	wg.Wait()

	valid := make([]*core.Chunk, 0, len(results))
	for _, r := range results {
		if len(r.errs) == 0 {
			valid = append(valid, r.chunk)
		}
	}

	// Corpus-level uniqueness: every offender fails, not just the later
	// declaration.
	duplicate := make(map[*core.Chunk]bool)
	if dups := core.CheckUniqueIDs(valid); dups != nil {
		for id, idxs := range dups {
			o.logger.Warn("duplicate chunk identifier", "id", id, "count", len(idxs))
			for _, idx := range idxs {
				duplicate[valid[idx]] = true
			}
		}
		kept := valid[:0]
		for _, c := range valid {
			if !duplicate[c] {
				kept = append(kept, c)
			}
		}
		valid = kept
	}

	for i, r := range results {
		raw := loaded.Raw[i]
		switch {
		case len(r.errs) > 0:
			record := ChunkRecord{ID: raw.ID, Source: raw.SourcePath, Status: "invalid"}
			for _, e := range r.errs {
				record.Errors = append(record.Errors, e.Error())
			}
			manifest.Chunks = append(manifest.Chunks, record)
			manifest.Issues = append(manifest.Issues,
				fmt.Sprintf("invalid chunk %s (%s): %d problem(s)", raw.ID, raw.SourcePath, len(r.errs)))
		case duplicate[r.chunk]:
			manifest.Chunks = append(manifest.Chunks, ChunkRecord{
				ID:     r.chunk.ID,
				Source: r.chunk.SourcePath,
				Status: "invalid",
				Errors: []string{core.ErrDuplicateID.Error()},
			})
			manifest.Issues = append(manifest.Issues,
				fmt.Sprintf("invalid chunk %s (%s): %s", r.chunk.ID, r.chunk.SourcePath, core.ErrDuplicateID))
		default:
			manifest.Chunks = append(manifest.Chunks, ChunkRecord{
				ID:     r.chunk.ID,
				Source: r.chunk.SourcePath,
				Status: "valid",
				Digest: core.ContentDigest(r.chunk),
			})
		}
	}
	o.logger.Info("validation complete",
		"records", len(loaded.Raw), "valid", len(valid), "load_errors", len(loaded.Errors))

	// Resolving: dangling references and cycles are corpus-health
	// warnings; chunks stay in the build either way.
	o.stage = StageResolving
	res := resolve.Resolve(valid)
	for _, d := range res.Dangling {
		manifest.Dangling = append(manifest.Dangling, ReferenceIssue{From: d.From, To: d.To})
		o.logger.Warn("dangling reference", "from", d.From, "to", d.To)
	}
	manifest.Cycles = res.Cycles
	for _, cycle := range res.Cycles {
		o.logger.Warn("reference cycle", "cycle", cycle)
	}

	// Selecting
	o.stage = StageSelecting
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	engine := selection.NewEngine(o.sizer)
	sel, selErr := engine.Select(valid, o.cfg.Budget)
	if selErr != nil {
		if !errors.Is(selErr, selection.ErrBudgetExceeded) {
			return fail(selErr)
		}
		// Fatal for the static document only; everything else proceeds,
		// but the violation is recorded for a non-zero exit downstream.
		manifest.BudgetViolation = selErr.Error()
		manifest.Issues = append(manifest.Issues, selErr.Error())
		o.logger.Error("static document skipped", "err", selErr)
		sel = nil
	} else {
		for _, d := range sel.Decisions {
			manifest.Selection = append(manifest.Selection, SelectionRecord{
				ID:       d.ID,
				Priority: d.Priority.String(),
				Size:     d.Size,
				Selected: d.Selected,
				Reason:   d.Reason,
			})
		}
	}

	// Rendering
	o.stage = StageRendering
	staticRenderer := render.NewStaticRenderer()
	var artifacts []render.Artifact
	if sel != nil {
		artifacts = append(artifacts, staticRenderer.RenderDocument(sel.Selected))
	}
	artifacts = append(artifacts, staticRenderer.RenderTopics(valid)...)

	exportRenderer := render.NewExportRenderer(o.sizer, render.WithCeilings(o.cfg.Ceilings))
	export, err := exportRenderer.Render(valid)
	if err != nil {
		return fail(err)
	}
	artifacts = append(artifacts, export)

	// Writing: stage everything, then swap into place in one rename.
	o.stage = StageWriting
	staging, err := o.makeStaging()
	if err != nil {
		return fail(err)
	}
	cleanup := func() { os.RemoveAll(staging) }

	for _, a := range artifacts {
		target := filepath.Join(staging, filepath.FromSlash(a.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			cleanup()
			return fail(fmt.Errorf("%w: %v", ErrStaging, err))
		}
		if err := os.WriteFile(target, a.Data, 0644); err != nil {
			cleanup()
			return fail(fmt.Errorf("%w: %v", ErrStaging, err))
		}
		manifest.Artifacts = append(manifest.Artifacts, ArtifactRecord{
			Path: a.Path,
			Hash: core.DigestBytes(a.Data),
			Size: len(a.Data),
		})
	}

	if !o.cfg.SkipIndex {
		digest, err := searchindex.Build(filepath.Join(staging, "index"), valid, o.sizer.Name(), o.logger)
		if err != nil {
			cleanup()
			return fail(fmt.Errorf("%w: %v", ErrStaging, err))
		}
		manifest.Artifacts = append(manifest.Artifacts, ArtifactRecord{Path: "index", Hash: digest})
	}
	sort.Slice(manifest.Artifacts, func(i, j int) bool {
		return manifest.Artifacts[i].Path < manifest.Artifacts[j].Path
	})

	manifest.Stage = StageDone.String()
	manifest.Status = StatusCompleted
	if manifest.HasIssues() {
		manifest.Status = StatusCompletedWithIssues
	}
	manifest.FinishedAt = time.Now().UTC()

	encoded, err := manifest.Encode()
	if err != nil {
		cleanup()
		return fail(err)
	}
	if err := os.WriteFile(filepath.Join(staging, "manifest.json"), encoded, 0644); err != nil {
		cleanup()
		return fail(fmt.Errorf("%w: %v", ErrStaging, err))
	}

	if err := o.commit(staging); err != nil {
		cleanup()
		return fail(err)
	}

	o.stage = StageDone
	o.logger.Info("build complete",
		"status", manifest.Status, "chunks", len(manifest.Chunks),
		"artifacts", len(manifest.Artifacts), "issues", len(manifest.Issues))
	return manifest, nil
}

// makeStaging creates the staging directory as a sibling of the output
// directory, so the final rename stays on one filesystem.
func (o *Orchestrator) makeStaging() (string, error) {
	out := filepath.Clean(o.cfg.OutputDir)
	parent := filepath.Dir(out)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStaging, err)
	}
	staging := filepath.Join(parent,
		fmt.Sprintf(".%s.staging-%d-%d", filepath.Base(out), os.Getpid(), time.Now().UnixNano()))
	if err := os.MkdirAll(staging, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStaging, err)
	}
	return staging, nil
}

// commit swaps staging into the output location. The previous build is
// moved aside first and restored if the swap fails, so the output directory
// always holds either the old complete build or the new one.
func (o *Orchestrator) commit(staging string) error {
	out := filepath.Clean(o.cfg.OutputDir)
	old := fmt.Sprintf("%s.old-%d", out, time.Now().UnixNano())

	hadPrevious := false
	if _, err := os.Stat(out); err == nil {
		hadPrevious = true
		if err := os.Rename(out, old); err != nil {
			return fmt.Errorf("%w: %v", ErrCommit, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}

	if err := os.Rename(staging, out); err != nil {
		if hadPrevious {
			if restoreErr := os.Rename(old, out); restoreErr != nil {
				o.logger.Error("failed to restore previous build", "err", restoreErr)
			}
		}
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}

	if hadPrevious {
		if err := os.RemoveAll(old); err != nil {
			o.logger.Warn("could not remove superseded build", "path", old, "err", err)
		}
	}
	return nil
}
