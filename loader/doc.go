// Package loader reads structured chunk source files into raw records.
//
// The loader walks a content root directory, parsing each YAML file into one
// or more RawChunk records. Malformed files are reported as LoadErrors and
// skipped; only an unreadable content root aborts the run. The loader never
// writes.
package loader
