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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunk indicates a raw chunk record failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrMissingField indicates a required envelope field is absent or
	// empty after trimming whitespace.
	ErrMissingField = errors.New("required field missing or empty")

	// ErrUnknownType indicates the type tag is not in the fixed vocabulary.
	ErrUnknownType = errors.New("unknown chunk type")

	// ErrUnknownPriority indicates an unrecognized priority tier name.
	ErrUnknownPriority = errors.New("unknown priority tier")

	// ErrPayloadShape indicates the type-dependent payload does not match
	// the shape the chunk's type requires.
	ErrPayloadShape = errors.New("payload does not match chunk type")

	// ErrDuplicateID indicates two chunks in the same corpus declared the
	// same identifier. Both offenders fail validation.
	ErrDuplicateID = errors.New("duplicate chunk identifier")
)
