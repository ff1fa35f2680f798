package domain

import (
	"strings"

	"clockit/internal/errors"
)

// State is the lifecycle position of a task.
type State int

const (
	StateCreated State = iota
	StateStarted
	StatePaused
	StateEnded
)

// States lists every state in lifecycle order.
var States = []State{StateCreated, StateStarted, StatePaused, StateEnded}

// sqlCodes is the persistence vocabulary. Matching is case-sensitive.
var sqlCodes = map[string]State{
	"created": StateCreated,
	"started": StateStarted,
	"paused":  StatePaused,
	"ended":   StateEnded,
}

// shortCodes is the user command vocabulary. Keys are lower case; input is folded before lookup.
var shortCodes = map[string]State{
	"create": StateCreated,
	"c":      StateCreated,
	"start":  StateStarted,
	"s":      StateStarted,
	"pause":  StatePaused,
	"p":      StatePaused,
	"end":    StateEnded,
	"e":      StateEnded,
}

// Char returns the one-letter tag used in display lines.
func (s State) Char() rune {
	switch s {
	case StateCreated:
		return 'C'
	case StateStarted:
		return 'S'
	case StatePaused:
		return 'P'
	case StateEnded:
		return 'E'
	default:
		return '?'
	}
}

// SQLCode returns the code stored in the state column.
func (s State) SQLCode() string {
	switch s {
	case StateCreated:
		return "created"
	case StateStarted:
		return "started"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Order returns the command word that leads to the state.
func (s State) Order() string {
	switch s {
	case StateCreated:
		return "create"
	case StateStarted:
		return "start"
	case StatePaused:
		return "pause"
	case StateEnded:
		return "end"
	default:
		return "unknown"
	}
}

// String implements fmt.Stringer.
func (s State) String() string {
	return s.SQLCode()
}

// IsTerminal reports whether no transition leaves the state.
func (s State) IsTerminal() bool {
	return s == StateEnded
}

// ParseSQLCode parses a stored state code. Only the exact lower-case codes are accepted.
func ParseSQLCode(code string) (State, error) {
	if state, ok := sqlCodes[code]; ok {
		return state, nil
	}
	return StateCreated, errors.NewInvalidStateCodeError(code)
}

// ParseShortCode parses a user-supplied state command such as "start" or "p", ignoring case.
func ParseShortCode(code string) (State, error) {
	if state, ok := shortCodes[strings.ToLower(code)]; ok {
		return state, nil
	}
	return StateCreated, errors.NewInvalidStateCodeError(code)
}
