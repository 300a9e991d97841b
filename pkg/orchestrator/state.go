package orchestrator

// JobState is the lifecycle state of a job.
type JobState int

const (
	StateCreated JobState = iota
	StateExtracting
	StateScoring
	StateFiltering
	StateEncoding
	StateDone
	StateFailed
)

func (s JobState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateExtracting:
		return "extracting"
	case StateScoring:
		return "scoring"
	case StateFiltering:
		return "filtering"
	case StateEncoding:
		return "encoding"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s JobState) Terminal() bool {
	return s == StateDone || s == StateFailed
}
