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


package searchindex

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Reader answers exact and prefix keyword lookups against a built index.
// This is the collaborator-facing half: a lookup server or the search CLI
// command opens the committed artifact read-only.
type Reader struct {
	backend *backend
}

// Open opens a built index directory for reading.
func Open(dir string, logger *slog.Logger) (*Reader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	b, err := openBackend(dir, true, logger)
	if err != nil {
		return nil, err
	}
	return &Reader{backend: b}, nil
}

// Lookup returns the chunk identifiers carrying the exact keyword, sorted
// ascending. A keyword with no postings returns ErrKeywordNotFound.
func (r *Reader) Lookup(keyword string) ([]string, error) {
	keyword = cleanToken(keyword)

	var ids []string
	err := r.backend.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeKeywordKey(keyword))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeywordNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			ids, err = unmarshalPostings(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// PrefixLookup returns every keyword starting with the prefix, each with its
// posting list, in ascending keyword order.
func (r *Reader) PrefixLookup(prefix string) (map[string][]string, error) {
	prefix = strings.ToLower(prefix)

	results := make(map[string][]string)
	err := r.backend.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeKeywordPrefix(prefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			keyword := keywordFromKey(item.Key())
			err := item.Value(func(val []byte) error {
				ids, err := unmarshalPostings(val)
				if err != nil {
					return err
				}
				results[keyword] = ids
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SizerName returns the name of the sizer the build recorded, or empty if
// the index predates the marker.
func (r *Reader) SizerName() (string, error) {
	var name string
	err := r.backend.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(metaKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			name = string(val)
			return nil
		})
	})
	return name, err
}

// Close closes the underlying database.
func (r *Reader) Close() error {
	return r.backend.Close()
}
