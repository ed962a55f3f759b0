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
	"github.com/mus-format/mus-go/ord"
)

// postingsSer serializes a sorted list of chunk identifiers in MUS format.
var postingsSer = ord.NewSliceSer[string](ord.String)

// marshalPostings serializes a posting list to bytes.
func marshalPostings(ids []string) []byte {
	buf := make([]byte, postingsSer.Size(ids))
	postingsSer.Marshal(ids, buf)
	return buf
}

// unmarshalPostings deserializes a posting list from bytes.
func unmarshalPostings(data []byte) ([]string, error) {
	ids, _, err := postingsSer.Unmarshal(data)
	return ids, err
}
