package build

// Stage identifies where the orchestrator is in a run. Stages advance
// strictly in order; Failed is terminal and reachable from any stage on an
// unrecoverable error.
type Stage int

const (
	StageIdle Stage = iota
	StageLoading
	StageValidating
	StageResolving
	StageSelecting
	StageRendering
	StageWriting
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageLoading:
		return "loading"
	case StageValidating:
		return "validating"
	case StageResolving:
		return "resolving"
	case StageSelecting:
		return "selecting"
	case StageRendering:
		return "rendering"
	case StageWriting:
		return "writing"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	}
	return "unknown"
}
