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


package selection

import (
	"log/slog"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Sizer estimates the size of text in abstract budget units. Budgets and
// export ceilings are expressed in the same units, so a build must use one
// sizer throughout; the manifest records which one ran.
type Sizer interface {
	// Size returns the estimated size of text. Always >= 0.
	Size(text string) int
	// Name identifies the sizer in the build manifest.
	Name() string
}

// TokenSizer counts tokens with a tiktoken BPE encoding.
type TokenSizer struct {
	enc *tiktoken.Tiktoken
}

// NewTokenSizer creates a token-count sizer using the cl100k_base encoding.
// The encoding is fetched on first use; in offline environments this fails
// and callers should fall back to NewSizer's heuristic path.
func NewTokenSizer() (*TokenSizer, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, err
	}
	return &TokenSizer{enc: enc}, nil
}

func (s *TokenSizer) Size(text string) int {
	return len(s.enc.Encode(text, nil, nil))
}

func (s *TokenSizer) Name() string { return "tiktoken-cl100k" }

// HeuristicSizer approximates token counts as ceil(runes / 4), the common
// rough ratio for English prose with embedded code. It needs no external
// data, so it is always available and fully deterministic.
type HeuristicSizer struct{}

func (HeuristicSizer) Size(text string) int {
	runes := utf8.RuneCountInString(text)
	return (runes + 3) / 4
}

func (HeuristicSizer) Name() string { return "heuristic-chars4" }

// NewSizer returns the token sizer when the encoding is available and the
// heuristic otherwise. The fallback is logged so operators know which units
// a manifest's numbers are in.
func NewSizer(logger *slog.Logger) Sizer {
	if logger == nil {
		logger = slog.Default()
	}
	ts, err := NewTokenSizer()
	if err != nil {
		logger.Warn("token encoding unavailable, sizing heuristically", "err", err)
		return HeuristicSizer{}
	}
	return ts
}
