// Package render turns the validated chunk set into output artifacts.
//
// Two renderers live here: the static-document renderer, which emits the
// budget-constrained quick reference plus per-topic detail files, and the
// chunk-export renderer, which emits retrieval-ready JSONL records under
// per-type token ceilings. The search-index renderer lives in package
// searchindex since it writes a database artifact rather than flat files.
//
// Renderers are pure: they consume chunks and produce bytes. Staging and
// atomic commit belong to the build orchestrator.
package render
