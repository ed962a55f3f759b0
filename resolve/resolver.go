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


package resolve

import (
	"sort"

	"github.com/gaussref/refbuild/core"
)

// Reference is one annotated relationship edge: the chunk that declared it,
// the target identifier, and whether the target exists in this build.
type Reference struct {
	From     string
	To       string
	Resolved bool
}

// Resolution is the annotated view of a validated chunk set. Chunks are
// indexed by identifier; edges stay identifier lists, never live pointers,
// so relationship cycles cannot become ownership cycles.
type Resolution struct {
	Chunks   []*core.Chunk
	ByID     map[string]*core.Chunk
	Refs     []Reference
	Dangling []Reference
	// Cycles holds the first cycle found per connected component, each as
	// the identifier path around the loop. Cycles are legal content
	// relationships and are reported for corpus health only.
	Cycles [][]string
}

// Resolve cross-checks every relationship reference in the chunk set.
// Dangling references are reported, never dropped; the declaring chunk
// stays in the build. Detection is membership against an ID lookup plus a
// depth-first traversal of the directed related-graph for cycles.
//
// Chunks are processed in ascending identifier order so the report is
// deterministic regardless of input order.
func Resolve(chunks []*core.Chunk) *Resolution {
	res := &Resolution{
		Chunks: chunks,
		ByID:   make(map[string]*core.Chunk, len(chunks)),
	}
	for _, c := range chunks {
		res.ByID[c.ID] = c
	}

	ordered := make([]*core.Chunk, len(chunks))
	copy(ordered, chunks)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, c := range ordered {
		for _, target := range c.Related {
			_, ok := res.ByID[target]
			ref := Reference{From: c.ID, To: target, Resolved: ok}
			res.Refs = append(res.Refs, ref)
			if !ok {
				res.Dangling = append(res.Dangling, ref)
			}
		}
	}

	res.Cycles = findCycles(ordered, res.ByID)
	return res
}

const (
	colorWhite = iota // unvisited
	colorGray         // on the current DFS path
	colorBlack        // fully explored
)

// findCycles runs a depth-first search over the related-graph, treating
// edges as directed. It reports the first cycle discovered from each DFS
// root; once a component yields a cycle, the rest of that component stops
// looking.
func findCycles(ordered []*core.Chunk, byID map[string]*core.Chunk) [][]string {
	color := make(map[string]int, len(ordered))
	var cycles [][]string

	var path []string
	onPath := make(map[string]int) // id -> index in path

	var dfs func(id string) []string
	dfs = func(id string) []string {
		color[id] = colorGray
		onPath[id] = len(path)
		path = append(path, id)

		chunk := byID[id]
		for _, target := range chunk.Related {
			next, ok := byID[target]
			if !ok {
				continue // dangling, reported elsewhere
			}
			switch color[next.ID] {
			case colorGray:
				// Back edge: the cycle is the path segment from the
				// target onward, closed by this edge.
				start := onPath[next.ID]
				cycle := make([]string, len(path)-start)
				copy(cycle, path[start:])
				return cycle
			case colorWhite:
				if cycle := dfs(next.ID); cycle != nil {
					return cycle
				}
			}
		}

		color[id] = colorBlack
		delete(onPath, id)
		path = path[:len(path)-1]
		return nil
	}

	for _, c := range ordered {
		if color[c.ID] != colorWhite {
			continue
		}
		path = path[:0]
		clear(onPath)
		if cycle := dfs(c.ID); cycle != nil {
			cycles = append(cycles, cycle)
			// Mark the whole component explored: one cycle per
			// component is enough for the report.
			markComponentBlack(c.ID, byID, color)
		}
	}
	return cycles
}

// markComponentBlack walks everything reachable from id and closes it out so
// later DFS roots do not rediscover cycles in the same component.
func markComponentBlack(id string, byID map[string]*core.Chunk, color map[string]int) {
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if color[cur] == colorBlack {
			continue
		}
		color[cur] = colorBlack
		if chunk, ok := byID[cur]; ok {
			for _, target := range chunk.Related {
				if _, exists := byID[target]; exists && color[target] != colorBlack {
					stack = append(stack, target)
				}
			}
		}
	}
}
