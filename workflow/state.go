package workflow

import "github.com/hupe1980/ragmesh/core"

// State identifies a step in the pipeline state machine.
type State int

const (
	// StateInit is the entry state before routing.
	StateInit State = iota
	// StateIngesting runs the ingestion stage.
	StateIngesting
	// StateRouting dispatches a query invocation towards retrieval.
	StateRouting
	// StateRetrieving runs the retrieval stage.
	StateRetrieving
	// StateAnswering runs the response stage.
	StateAnswering
	// StateDone terminates the run.
	StateDone
)

// String returns a human-readable state name for logging.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateIngesting:
		return "ingesting"
	case StateRouting:
		return "routing"
	case StateRetrieving:
		return "retrieving"
	case StateAnswering:
		return "answering"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// WorkflowState carries the data of a single invocation through the state
// machine. Exactly one of DocumentPath and Query is set; the stage results
// are filled in as the run progresses.
type WorkflowState struct {
	DocumentPath string
	Query        string
	TraceID      string

	IngestionResult *core.Message
	RetrievalResult *core.Message
	FinalResponse   *core.Message
}

// transition is the pure routing function of the state machine. It decides
// the next state from the current one and the invocation data, without side
// effects.
func transition(current State, ws *WorkflowState) State {
	switch current {
	case StateInit:
		if ws.DocumentPath != "" {
			return StateIngesting
		}
		return StateRouting
	case StateIngesting:
		if ws.Query != "" {
			return StateRetrieving
		}
		return StateDone
	case StateRouting:
		return StateRetrieving
	case StateRetrieving:
		return StateAnswering
	case StateAnswering:
		return StateDone
	}
	return StateDone
}
