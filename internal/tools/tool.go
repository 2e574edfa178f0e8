// Package tools maps named operations with typed arguments onto the
// calculation engine. Each tool validates its arguments, executes one
// engine function, and returns a structured result plus a display
// summary.
package tools

import (
	"retirement-engine/internal/finance"
	"retirement-engine/internal/model"
)

// State is the profile snapshot threaded through one calculation. Tools
// that mutate the profile set Dirty; the engine persists once at the end.
type State struct {
	Profile *model.UserProfile
	Returns finance.AssetReturns
	Dirty   bool
	Deleted bool
}

// Outcome carries a tool's structured result and the human-readable
// summary the conversational layer displays verbatim.
type Outcome struct {
	Result  any
	Summary string
}

// ToolHandler defines the contract for all tool implementations. Validate
// checks arguments and profile preconditions; Execute performs the
// calculation. Both report conditions through calculation messages, and
// a CRITICAL message from either aborts the calculation.
type ToolHandler interface {
	Validate(state *State, call *model.ToolCall) []model.CalculationMessage
	Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage)
}
