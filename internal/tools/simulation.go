package tools

import (
	"fmt"
	"strings"

	"retirement-engine/internal/finance"
	"retirement-engine/internal/model"
)

type simulateStrategyProps struct {
	Strategy         string   `json:"strategy" validate:"required"`
	InitialPortfolio *float64 `json:"initial_portfolio" validate:"required,gte=0"`
	Years            *int     `json:"years" validate:"required,gt=0"`
	AnnualReturn     *float64 `json:"annual_return" validate:"required,gte=-1"`

	// constant_dollar
	InitialWithdrawal *float64 `json:"initial_withdrawal" validate:"omitempty,gte=0"`
	InflationRate     *float64 `json:"inflation_rate" validate:"omitempty,gt=-1"`

	// constant_percentage
	WithdrawalRate *float64 `json:"withdrawal_rate"`

	// guardrails, all optional with stock defaults
	Guardrails *model.GuardrailsConfig `json:"guardrails"`
}

// SimulateStrategyHandler runs one decumulation strategy year by year.
type SimulateStrategyHandler struct{}

func (h *SimulateStrategyHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	var props simulateStrategyProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}

	switch props.Strategy {
	case finance.StrategyConstantDollar:
		if props.InitialWithdrawal == nil {
			return critical("INVALID_ARGUMENTS", "constant_dollar requires initial_withdrawal")
		}
	case finance.StrategyConstantPercentage:
		if props.WithdrawalRate == nil {
			return critical("INVALID_ARGUMENTS", "constant_percentage requires withdrawal_rate")
		}
		if *props.WithdrawalRate <= 0 || *props.WithdrawalRate >= 1 {
			return critical("INVALID_WITHDRAWAL_RATE",
				fmt.Sprintf("withdrawal rate must be in (0, 1), got %v", *props.WithdrawalRate))
		}
	case finance.StrategyGuardrails:
		// Config is optional; defaults apply.
	case finance.StrategyBucket:
		return critical("UNSUPPORTED_STRATEGY",
			"the bucket strategy is descriptive only and has no executable simulation")
	default:
		return critical("UNKNOWN_STRATEGY", fmt.Sprintf("unknown strategy: %s", props.Strategy))
	}
	return nil
}

func (h *SimulateStrategyHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props simulateStrategyProps
	decodeProps(call.ToolProperties, &props)

	var result model.StrategySimulationResult
	switch props.Strategy {
	case finance.StrategyConstantDollar:
		inflation := finance.DefaultInflationRate
		if props.InflationRate != nil {
			inflation = *props.InflationRate
		}
		result = finance.SimulateConstantDollar(*props.InitialPortfolio, *props.InitialWithdrawal, *props.Years, *props.AnnualReturn, inflation)
	case finance.StrategyConstantPercentage:
		result = finance.SimulateConstantPercentage(*props.InitialPortfolio, *props.WithdrawalRate, *props.Years, *props.AnnualReturn)
	case finance.StrategyGuardrails:
		cfg := finance.DefaultGuardrailsConfig()
		if props.Guardrails != nil {
			cfg = *props.Guardrails
		}
		result = finance.SimulateGuardrails(*props.InitialPortfolio, *props.Years, *props.AnnualReturn, cfg)
	}

	return &Outcome{
		Result:  result,
		Summary: summarizeSimulation(result),
	}, nil
}

type compareStrategiesProps struct {
	InitialPortfolio *float64 `json:"initial_portfolio" validate:"required,gte=0"`
	Years            *int     `json:"years" validate:"required,gt=0"`
	AnnualReturn     *float64 `json:"annual_return" validate:"required,gte=-1"`
	MonthlyExpenses  *float64 `json:"monthly_expenses" validate:"omitempty,gte=0"`
}

// CompareStrategiesHandler runs all three executable strategies against
// the same inputs for a side-by-side view. Monthly expenses fall back to
// the profile's.
type CompareStrategiesHandler struct{}

func (h *CompareStrategiesHandler) expenses(state *State, call *model.ToolCall) (float64, []model.CalculationMessage) {
	var props compareStrategiesProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return 0, invalidArguments(err)
	}
	if props.MonthlyExpenses != nil {
		return *props.MonthlyExpenses, nil
	}
	if state.Profile != nil && state.Profile.ExpectedMonthlyExpenses != nil {
		return *state.Profile.ExpectedMonthlyExpenses, nil
	}
	return 0, critical("MISSING_EXPENSES", "monthly_expenses was not provided and the profile has no expected monthly expenses")
}

func (h *CompareStrategiesHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	_, msgs := h.expenses(state, call)
	return msgs
}

func (h *CompareStrategiesHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props compareStrategiesProps
	decodeProps(call.ToolProperties, &props)

	expenses, msgs := h.expenses(state, call)
	if msgs != nil {
		return nil, msgs
	}

	results := finance.CompareStrategies(*props.InitialPortfolio, *props.Years, *props.AnnualReturn, expenses)

	var b strings.Builder
	fmt.Fprintf(&b, "Comparing %s over %d years at %s:\n",
		formatMoney(*props.InitialPortfolio), *props.Years, formatPercent(*props.AnnualReturn))
	for _, r := range results {
		fmt.Fprintf(&b, "- %s\n", summarizeSimulation(r))
	}

	return &Outcome{
		Result:  map[string]any{"results": results},
		Summary: strings.TrimRight(b.String(), "\n"),
	}, nil
}

func summarizeSimulation(r model.StrategySimulationResult) string {
	if r.RanOutOfMoney && r.DepletionYear != nil {
		return fmt.Sprintf("%s: withdrew %s in total but the portfolio ran out of money in year %d.",
			r.Strategy, formatMoney(r.TotalWithdrawn), *r.DepletionYear)
	}
	return fmt.Sprintf("%s: withdrew %s in total (avg %s/year), ending with %s after %d years.",
		r.Strategy, formatMoney(r.TotalWithdrawn), formatMoney(r.AverageWithdrawal),
		formatMoney(r.FinalBalance), r.Years)
}
