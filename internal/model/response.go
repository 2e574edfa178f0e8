package model

import json "github.com/goccy/go-json"

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	SessionID              string `json:"session_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationResult struct {
	Messages       []CalculationMessage `json:"messages"`
	ToolResults    []ToolCallResult     `json:"tool_results"`
	Profile        *UserProfile         `json:"profile"`
	ProfileChanges json.RawMessage      `json:"profile_changes,omitempty"` // RFC 6902 patch, initial -> end profile
	ProfileSaved   bool                 `json:"profile_saved"`
	ProfileDeleted bool                 `json:"profile_deleted,omitempty"`
}

// ToolCallResult echoes the call alongside its structured result and the
// display summary the conversational layer shows verbatim.
type ToolCallResult struct {
	Call                      ToolCall        `json:"call"`
	Result                    json.RawMessage `json:"result,omitempty"`
	Summary                   string          `json:"summary,omitempty"`
	CalculationMessageIndexes []int           `json:"calculation_message_indexes,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
