// Package resolve cross-checks inter-chunk references.
//
// Relationships between chunks form a directed graph with possible cycles.
// The resolver annotates every reference as resolved or dangling and reports
// the first cycle found per connected component. Neither condition excludes
// a chunk from the build; both are corpus-health signals surfaced in the
// build manifest.
package resolve
