package core

// ChunkType classifies a chunk and determines which payload fields the
// validator requires and how renderers lay the chunk out.
type ChunkType string

const (
	// TypeMistakePattern documents a common mistake with wrong and right examples.
	TypeMistakePattern ChunkType = "mistake-pattern"
	// TypeFunctionReference documents a single function with its signature.
	TypeFunctionReference ChunkType = "function-reference"
	// TypeUsagePattern documents an idiomatic usage pattern.
	TypeUsagePattern ChunkType = "usage-pattern"
	// TypeConceptExplanation explains a language concept in prose.
	TypeConceptExplanation ChunkType = "concept-explanation"
	// TypeOperatorReference documents an operator.
	TypeOperatorReference ChunkType = "operator-reference"
)

// ChunkTypes returns the fixed type vocabulary in declaration order.
func ChunkTypes() []ChunkType {
	return []ChunkType{
		TypeMistakePattern,
		TypeFunctionReference,
		TypeUsagePattern,
		TypeConceptExplanation,
		TypeOperatorReference,
	}
}

// Valid reports whether t is a member of the fixed type vocabulary.
func (t ChunkType) Valid() bool {
	switch t {
	case TypeMistakePattern, TypeFunctionReference, TypeUsagePattern,
		TypeConceptExplanation, TypeOperatorReference:
		return true
	}
	return false
}

// Priority controls inclusion of a chunk in size-budgeted outputs.
// Higher values are more important.
type Priority int

const (
	// PriorityLow chunks are never included in budgeted outputs.
	PriorityLow Priority = iota + 1
	// PriorityMedium is the default tier when a chunk declares none.
	PriorityMedium
	// PriorityHigh chunks are included after all critical chunks fit.
	PriorityHigh
	// PriorityCritical chunks are a hard floor for budgeted outputs.
	PriorityCritical
)

// Valid reports whether p is one of the four recognized tiers.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	}
	return "unknown"
}

// ParsePriority parses a priority tier name. The empty string parses to
// PriorityMedium, the documented default.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "":
		return PriorityMedium, nil
	case "critical":
		return PriorityCritical, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return 0, ErrUnknownPriority
}

// CodeExample pairs a code sample with its explanation. Used by
// mistake-pattern chunks for the wrong and right variants.
type CodeExample struct {
	Code        string
	Explanation string
}

// Param describes one parameter of a function-reference chunk.
type Param struct {
	Name        string
	Description string
}

// Chunk is the atomic validated unit of reference content. Identity is the
// ID, unique across the corpus and immutable once assigned. A Chunk is only
// constructed by validation; renderers never see raw records.
type Chunk struct {
	ID       string
	Type     ChunkType
	Priority Priority
	Title    string
	Summary  string
	Content  string

	// Keywords feed the search index. Matching is case-insensitive.
	Keywords []string

	// Related lists identifiers of related chunks, in declared order.
	// The relation is informational relevance, not ownership; cycles are
	// legal. SeeAlso carries external reference links.
	Related []string
	SeeAlso []string

	// Advisory version markers.
	IntroducedIn string
	Deprecated   string

	// Type-dependent payload. Wrong/Right are set for mistake-pattern,
	// Signature for function-reference and operator-reference, Params for
	// function-reference.
	Wrong     *CodeExample
	Right     *CodeExample
	Signature string
	Params    []Param

	// SourcePath is the content-root-relative path the chunk came from.
	SourcePath string
}

// RawChunk is the loader's pre-validation view of a chunk file. All fields
// are optional here; the validator decides what is missing or malformed.
type RawChunk struct {
	ID           string      `yaml:"id"`
	Type         string      `yaml:"type"`
	Priority     string      `yaml:"priority"`
	Title        string      `yaml:"title"`
	Summary      string      `yaml:"summary"`
	Content      string      `yaml:"content"`
	Keywords     []string    `yaml:"keywords"`
	Related      []string    `yaml:"related"`
	SeeAlso      []string    `yaml:"see_also"`
	IntroducedIn string      `yaml:"introduced_in"`
	Deprecated   string      `yaml:"deprecated"`
	Wrong        *RawExample `yaml:"wrong"`
	Right        *RawExample `yaml:"right"`
	Signature    string      `yaml:"signature"`
	Params       []RawParam  `yaml:"params"`

	SourcePath string `yaml:"-"`
}

// RawExample mirrors CodeExample on the wire.
type RawExample struct {
	Code        string `yaml:"code"`
	Explanation string `yaml:"explanation"`
}

// RawParam mirrors Param on the wire.
type RawParam struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}
