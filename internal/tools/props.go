package tools

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"retirement-engine/internal/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeProps unmarshals a tool's properties payload and runs struct
// validation on it.
func decodeProps(raw json.RawMessage, props any) error {
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, props); err != nil {
			return fmt.Errorf("malformed tool properties: %w", err)
		}
	}
	if err := validate.Struct(props); err != nil {
		return err
	}
	return nil
}

func critical(code, message string) []model.CalculationMessage {
	return []model.CalculationMessage{{Level: model.LevelCritical, Code: code, Message: message}}
}

func warning(code, message string) []model.CalculationMessage {
	return []model.CalculationMessage{{Level: model.LevelWarning, Code: code, Message: message}}
}

func invalidArguments(err error) []model.CalculationMessage {
	return critical("INVALID_ARGUMENTS", err.Error())
}

// formatMoney renders a whole-unit amount as $1,234,567 for summaries.
func formatMoney(v float64) string {
	neg := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', 0, 64)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

// formatPercent renders a decimal fraction as a display percentage.
// Display rounding only; calculations keep the raw fraction.
func formatPercent(v float64) string {
	s := strconv.FormatFloat(v*100, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + "%"
}
