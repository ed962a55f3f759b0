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
	"fmt"
	"sort"

	"github.com/gaussref/refbuild/core"
)

// Decision records why one chunk was or was not selected.
type Decision struct {
	ID       string
	Priority core.Priority
	Size     int
	Selected bool
	Reason   string
}

// Result is a deterministic selection: the chosen chunks in final order plus
// a per-chunk decision trail for the manifest.
type Result struct {
	Selected  []*core.Chunk
	Decisions []Decision
	TotalSize int
	Budget    int
}

// Engine selects chunks for size-constrained outputs.
type Engine struct {
	sizer Sizer
}

// NewEngine creates a selection engine using the given sizer.
func NewEngine(sizer Sizer) *Engine {
	return &Engine{sizer: sizer}
}

// Select picks the subset of chunks that fits the budget.
//
// Policy: every critical chunk is included regardless of budget; if the
// critical tier alone exceeds the budget, Select returns ErrBudgetExceeded
// rather than overflowing silently. High, then medium chunks fill the
// remainder in tier order. Low chunks are never selected here; they stay
// available to renderers without a budget.
//
// Within a tier, chunks are taken in ascending identifier order, so two runs
// over the same input always select the same set in the same order.
func (e *Engine) Select(chunks []*core.Chunk, budget int) (*Result, error) {
	byTier := make(map[core.Priority][]*core.Chunk)
	for _, c := range chunks {
		byTier[c.Priority] = append(byTier[c.Priority], c)
	}
	for _, tier := range byTier {
		sort.Slice(tier, func(i, j int) bool { return tier[i].ID < tier[j].ID })
	}

	result := &Result{Budget: budget}

	criticalTotal := 0
	for _, c := range byTier[core.PriorityCritical] {
		criticalTotal += e.sizer.Size(c.FlattenedText())
	}
	if criticalTotal > budget {
		return nil, fmt.Errorf("%w: critical tier needs %d of %d budget units",
			ErrBudgetExceeded, criticalTotal, budget)
	}

	remaining := budget
	for _, c := range byTier[core.PriorityCritical] {
		size := e.sizer.Size(c.FlattenedText())
		remaining -= size
		result.Selected = append(result.Selected, c)
		result.TotalSize += size
		result.Decisions = append(result.Decisions, Decision{
			ID: c.ID, Priority: c.Priority, Size: size,
			Selected: true, Reason: "critical floor",
		})
	}

	for _, tier := range []core.Priority{core.PriorityHigh, core.PriorityMedium} {
		for _, c := range byTier[tier] {
			size := e.sizer.Size(c.FlattenedText())
			d := Decision{ID: c.ID, Priority: c.Priority, Size: size}
			if size <= remaining {
				remaining -= size
				result.Selected = append(result.Selected, c)
				result.TotalSize += size
				d.Selected = true
				d.Reason = "within budget"
			} else {
				d.Reason = "budget exhausted"
			}
			result.Decisions = append(result.Decisions, d)
		}
	}

	for _, c := range byTier[core.PriorityLow] {
		result.Decisions = append(result.Decisions, Decision{
			ID: c.ID, Priority: c.Priority, Size: e.sizer.Size(c.FlattenedText()),
			Reason: "low tier excluded from budgeted output",
		})
	}

	return result, nil
}
