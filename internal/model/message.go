package model

// CalculationMessage reports a validation or execution condition raised
// while processing a tool call. CRITICAL aborts the calculation; WARNING
// is informational and processing continues.
type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)
