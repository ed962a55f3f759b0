// Package core defines the chunk domain model and its validation rules.
//
// A Chunk is the atomic unit of reference content: a common required
// envelope (identifier, type, title, summary, content) plus a payload whose
// shape depends on the type tag. Validation is table-driven per type, so new
// chunk types extend the vocabulary without touching the validator.
//
// Chunks are immutable once validated. Loaders produce RawChunk records;
// everything downstream of validation works with Chunk values only.
package core
