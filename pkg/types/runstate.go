package types

import "fmt"

// RunState tracks the whole-run state machine. Transitions only move
// forward within a single invocation; there is no retry edge.
type RunState string

const (
	StateStart     RunState = "start"
	StateElevating RunState = "elevating"
	StateProbing   RunState = "probing"
	StateRunning   RunState = "running"
	StateReporting RunState = "reporting"
	StateDone      RunState = "done"
	StateAborted   RunState = "aborted"
)

// IsTerminal reports whether the state ends the run.
func (s RunState) IsTerminal() bool {
	return s == StateDone || s == StateAborted
}

// Transition validates and returns the next state. An invalid edge is
// a programming error surfaced as an error rather than a silent jump.
func Transition(from, to RunState) (RunState, error) {
	if allowedTransition(from, to) {
		return to, nil
	}
	return from, fmt.Errorf("disallowed run transition: %s -> %s", from, to)
}

func allowedTransition(from, to RunState) bool {
	switch from {
	case StateStart:
		return to == StateElevating
	case StateElevating:
		return to == StateProbing || to == StateAborted
	case StateProbing:
		return to == StateRunning
	case StateRunning:
		return to == StateReporting || to == StateAborted
	case StateReporting:
		return to == StateDone
	default:
		return false
	}
}
