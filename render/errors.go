package render

import "errors"

// ErrUnsplittable indicates prose that has no split points fine enough to
// bring every part under the record ceiling.
var ErrUnsplittable = errors.New("text cannot be split under the record ceiling")
