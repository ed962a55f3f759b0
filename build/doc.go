// Package build orchestrates a full pipeline run.
//
// A run advances through fixed stages: loading, validating, resolving,
// selecting, rendering, writing. Per-chunk problems (a malformed file, a
// failed validation) are recorded and the run proceeds without the chunk;
// only run-level problems (unreadable content root, unwritable staging
// area) abort it. Loading and validating fan out over a worker pool; every
// later stage needs the complete set and runs sequentially.
//
// Artifacts are written to a staging directory and swapped into place in
// one rename, so an interrupted run never corrupts the previously committed
// build. The manifest is the run's final artifact, written alongside the
// rest.
package build
