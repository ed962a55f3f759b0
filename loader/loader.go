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


package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gaussref/refbuild/core"
)

// LoadError records a single file that could not be parsed into chunk
// records. It is localized to one file and never aborts a run.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Result is the outcome of one traversal of the content root: the raw chunk
// records that parsed, plus the per-file errors for those that did not.
type Result struct {
	Raw    []*core.RawChunk
	Errors []*LoadError
}

// chunkFile is the on-disk shape of a chunk source file: either a single
// chunk document or a compact family under a chunks key.
type chunkFile struct {
	Chunks []*core.RawChunk `yaml:"chunks"`
}

// Loader reads chunk source files from a content root. It only reads; every
// build re-reads from storage, so the sequence is restartable by calling
// Load again.
type Loader struct {
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load walks the content root and parses every .yaml/.yml file into raw
// chunk records. Category subdirectories are traversal grouping only; they
// carry no meaning in the data model. Files that fail to parse are recorded
// as LoadErrors and the walk continues. A missing or unreadable root is
// fatal and wraps ErrContentRoot.
//
// Files are visited in sorted path order so the raw sequence is stable,
// though nothing downstream depends on it.
func (l *Loader) Load(ctx context.Context, root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrContentRoot, root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrContentRoot, err)
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	result := &Result{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raws, err := l.loadFile(root, path)
		if err != nil {
			rel := relPath(root, path)
			l.logger.Warn("skipping unparseable chunk file", "path", rel, "err", err)
			result.Errors = append(result.Errors, &LoadError{Path: rel, Err: err})
			continue
		}
		result.Raw = append(result.Raw, raws...)
	}

	l.logger.Debug("content root loaded",
		"root", root, "records", len(result.Raw), "load_errors", len(result.Errors))
	return result, nil
}

// loadFile parses one source file. A file is either a single chunk document
// or a compact family of chunks under a top-level chunks key.
func (l *Loader) loadFile(root, path string) ([]*core.RawChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rel := relPath(root, path)

	// Probe for the compact-family shape first so an empty chunks list
	// yields zero records instead of one all-empty record.
	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	if _, isFamily := probe["chunks"]; isFamily {
		var family chunkFile
		if err := yaml.Unmarshal(data, &family); err != nil {
			return nil, err
		}
		raws := make([]*core.RawChunk, 0, len(family.Chunks))
		for _, raw := range family.Chunks {
			if raw == nil {
				continue
			}
			raw.SourcePath = rel
			raws = append(raws, raw)
		}
		return raws, nil
	}

	var raw core.RawChunk
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	raw.SourcePath = rel
	return []*core.RawChunk{&raw}, nil
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
