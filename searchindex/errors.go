package searchindex

import "errors"

var (
	// ErrKeywordNotFound indicates an exact lookup matched no keyword.
	ErrKeywordNotFound = errors.New("keyword not found in index")
)
