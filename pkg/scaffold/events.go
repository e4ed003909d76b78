package scaffold

// Stage names one step of the scaffolding pipeline
type Stage string

// Pipeline stages, in execution order
const (
	StageResolvingAccess   Stage = "resolving-access"
	StageValidatingPath    Stage = "validating-path"
	StageCollectingAnswers Stage = "collecting-answers"
	StageCloning           Stage = "cloning"
	StageInstallingDeps    Stage = "installing-deps"
	StagePruning           Stage = "pruning"
	StageMaterializingEnv  Stage = "materializing-env"
	StageLaunching         Stage = "launching"
)

// EventKind is the lifecycle state an event reports
type EventKind int

const (
	// StageStarted fires when a stage begins
	StageStarted EventKind = iota
	// StageSucceeded fires when a stage completes
	StageSucceeded
	// StageFailed fires when a stage aborts the run
	StageFailed
)

// Event is one discrete lifecycle notification. Rendering is entirely
// up to the consumer; the pipeline never prints.
type Event struct {
	Stage Stage
	Kind  EventKind
	Err   error // set for StageFailed
}

// EventSink receives pipeline events. A nil sink discards them.
type EventSink func(Event)

func (s EventSink) emit(e Event) {
	if s != nil {
		s(e)
	}
}
