package selection

import (
	"errors"
	"strings"
	"testing"

	"github.com/gaussref/refbuild/core"
)

// fixedSizer sizes every chunk at a constant, keeping budgets easy to reason
// about in tests.
type fixedSizer struct{ per int }

func (f fixedSizer) Size(string) int { return f.per }
func (f fixedSizer) Name() string    { return "fixed" }

func tierChunk(id string, p core.Priority) *core.Chunk {
	return &core.Chunk{
		ID:       id,
		Type:     core.TypeConceptExplanation,
		Priority: p,
		Title:    id,
		Summary:  "summary",
		Content:  "content",
	}
}

func TestSelectCriticalFloor(t *testing.T) {
	chunks := []*core.Chunk{
		tierChunk("crit-1", core.PriorityCritical),
		tierChunk("crit-2", core.PriorityCritical),
		tierChunk("high-1", core.PriorityHigh),
	}

	engine := NewEngine(fixedSizer{per: 10})
	result, err := engine.Select(chunks, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Selected) != 2 {
		t.Fatalf("expected only critical chunks, got %d", len(result.Selected))
	}
	for _, c := range result.Selected {
		if c.Priority != core.PriorityCritical {
			t.Errorf("non-critical chunk selected under exact-fit budget: %s", c.ID)
		}
	}
}

func TestSelectCriticalOverBudgetFails(t *testing.T) {
	chunks := []*core.Chunk{
		tierChunk("crit-1", core.PriorityCritical),
		tierChunk("crit-2", core.PriorityCritical),
	}

	engine := NewEngine(fixedSizer{per: 100})
	_, err := engine.Select(chunks, 150)
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("expected ErrBudgetExceeded, got %v", err)
	}
}

func TestSelectTierOrder(t *testing.T) {
	chunks := []*core.Chunk{
		tierChunk("med-1", core.PriorityMedium),
		tierChunk("high-1", core.PriorityHigh),
		tierChunk("crit-1", core.PriorityCritical),
	}

	engine := NewEngine(fixedSizer{per: 10})
	result, err := engine.Select(chunks, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"crit-1", "high-1", "med-1"}
	if len(result.Selected) != len(want) {
		t.Fatalf("expected %d selected, got %d", len(want), len(result.Selected))
	}
	for i, id := range want {
		if result.Selected[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, result.Selected[i].ID)
		}
	}
}

func TestSelectAscendingIDTieBreak(t *testing.T) {
	// Two high chunks of identical size, budget fits exactly one:
	// "alpha" wins by ascending identifier order.
	chunks := []*core.Chunk{
		tierChunk("beta", core.PriorityHigh),
		tierChunk("alpha", core.PriorityHigh),
	}

	engine := NewEngine(fixedSizer{per: 10})
	result, err := engine.Select(chunks, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Selected) != 1 {
		t.Fatalf("expected exactly 1 selected, got %d", len(result.Selected))
	}
	if result.Selected[0].ID != "alpha" {
		t.Errorf("expected alpha selected, got %s", result.Selected[0].ID)
	}
}

func TestSelectLowNeverIncluded(t *testing.T) {
	chunks := []*core.Chunk{
		tierChunk("low-1", core.PriorityLow),
	}

	engine := NewEngine(fixedSizer{per: 1})
	result, err := engine.Select(chunks, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Selected) != 0 {
		t.Fatalf("low chunks must never be selected, got %d", len(result.Selected))
	}
	if len(result.Decisions) != 1 || result.Decisions[0].Selected {
		t.Errorf("expected a single excluded decision for the low chunk, got %+v", result.Decisions)
	}
}

func TestSelectDeterministicAcrossInputOrder(t *testing.T) {
	build := func(chunks []*core.Chunk) *Result {
		engine := NewEngine(HeuristicSizer{})
		result, err := engine.Select(chunks, 100)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return result
	}

	a := tierChunk("a", core.PriorityHigh)
	b := tierChunk("b", core.PriorityHigh)
	c := tierChunk("c", core.PriorityCritical)

	first := build([]*core.Chunk{a, b, c})
	second := build([]*core.Chunk{c, b, a})

	if len(first.Selected) != len(second.Selected) {
		t.Fatal("selection count differs across input orders")
	}
	for i := range first.Selected {
		if first.Selected[i].ID != second.Selected[i].ID {
			t.Errorf("selection order differs at %d", i)
		}
	}
}

func TestSelectDecisionsCoverEveryChunk(t *testing.T) {
	chunks := []*core.Chunk{
		tierChunk("crit-1", core.PriorityCritical),
		tierChunk("high-1", core.PriorityHigh),
		tierChunk("med-1", core.PriorityMedium),
		tierChunk("low-1", core.PriorityLow),
	}

	engine := NewEngine(fixedSizer{per: 10})
	result, err := engine.Select(chunks, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Decisions) != len(chunks) {
		t.Fatalf("expected a decision per chunk, got %d", len(result.Decisions))
	}

	selected := map[string]bool{}
	for _, d := range result.Decisions {
		selected[d.ID] = d.Selected
	}
	if !selected["crit-1"] || selected["high-1"] || selected["med-1"] || selected["low-1"] {
		t.Errorf("unexpected decisions: %+v", result.Decisions)
	}
}

func TestHeuristicSizer(t *testing.T) {
	s := HeuristicSizer{}
	if got := s.Size(""); got != 0 {
		t.Errorf("empty text should size to 0, got %d", got)
	}
	if got := s.Size("abcd"); got != 1 {
		t.Errorf("4 runes should size to 1, got %d", got)
	}
	if got := s.Size("abcde"); got != 2 {
		t.Errorf("5 runes should round up to 2, got %d", got)
	}

	long := strings.Repeat("word ", 100)
	if first, second := s.Size(long), s.Size(long); first != second {
		t.Error("heuristic sizer must be deterministic")
	}
}
