package model

import json "github.com/goccy/go-json"

type CalculationRequest struct {
	SessionID               string                  `json:"session_id"`
	CalculationInstructions CalculationInstructions `json:"calculation_instructions"`
}

type CalculationInstructions struct {
	ToolCalls []ToolCall `json:"tool_calls"`
}

// ToolCall names one engine operation together with its typed arguments.
// ToolProperties is decoded per tool; unknown tools are rejected.
type ToolCall struct {
	CallID         string          `json:"call_id"`
	ToolName       string          `json:"tool_name"`
	ToolProperties json.RawMessage `json:"tool_properties"`
}
