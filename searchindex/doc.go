// Package searchindex renders and reads the keyword lookup artifact.
//
// The artifact is a BadgerDB directory mapping lower-cased, deduplicated
// keywords to sorted chunk-identifier posting lists, serialized in MUS
// format. Exact lookup is a point read; prefix lookup rides Badger's
// lexicographic prefix iteration. The pipeline only builds the artifact;
// serving it belongs to an external lookup collaborator, for which Reader
// is the reference access path.
package searchindex
