package tools

import (
	"fmt"

	"retirement-engine/internal/finance"
	"retirement-engine/internal/model"
)

type compoundGrowthProps struct {
	Principal           *float64 `json:"principal" validate:"required,gte=0"`
	MonthlyContribution *float64 `json:"monthly_contribution" validate:"required,gte=0"`
	AnnualRate          *float64 `json:"annual_rate" validate:"omitempty,gt=-1"`
	Years               *int     `json:"years" validate:"required,gte=0"`
}

// CompoundGrowthHandler projects savings growth under monthly
// compounding. When annual_rate is omitted, the rate comes from the
// profile: the asset allocation's expected return when one is set,
// otherwise the risk-tolerance return.
type CompoundGrowthHandler struct{}

func (h *CompoundGrowthHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	var props compoundGrowthProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}
	return nil
}

func (h *CompoundGrowthHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props compoundGrowthProps
	decodeProps(call.ToolProperties, &props)

	rate := finance.ProfileReturn(state.Profile, state.Returns)
	if props.AnnualRate != nil {
		rate = *props.AnnualRate
	}

	result := finance.CalculateCompoundGrowth(*props.Principal, *props.MonthlyContribution, rate, *props.Years)

	return &Outcome{
		Result: result,
		Summary: fmt.Sprintf("Starting with %s and contributing %s/month at %s, you'd have %s in %d years (%s of growth).",
			formatMoney(*props.Principal), formatMoney(*props.MonthlyContribution), formatPercent(rate),
			formatMoney(result.FutureValue), *props.Years, formatMoney(result.TotalGrowth)),
	}, nil
}

type adjustInflationProps struct {
	FutureAmount  *float64 `json:"future_amount" validate:"required,gte=0"`
	Years         *int     `json:"years" validate:"required,gte=0"`
	InflationRate *float64 `json:"inflation_rate" validate:"omitempty,gt=-1"`
}

type AdjustForInflationHandler struct{}

func (h *AdjustForInflationHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	var props adjustInflationProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}
	return nil
}

func (h *AdjustForInflationHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props adjustInflationProps
	decodeProps(call.ToolProperties, &props)

	rate := finance.DefaultInflationRate
	if props.InflationRate != nil {
		rate = *props.InflationRate
	}

	adjusted := finance.AdjustForInflation(*props.FutureAmount, *props.Years, rate)

	return &Outcome{
		Result: map[string]any{
			"future_amount":   *props.FutureAmount,
			"adjusted_amount": adjusted,
			"years":           *props.Years,
			"inflation_rate":  rate,
		},
		Summary: fmt.Sprintf("%s in %d years is worth about %s in today's dollars at %s inflation.",
			formatMoney(*props.FutureAmount), *props.Years, formatMoney(adjusted), formatPercent(rate)),
	}, nil
}

type retirementTargetProps struct {
	MonthlyExpenses *float64 `json:"monthly_expenses" validate:"omitempty,gte=0"`
}

// RetirementTargetHandler sizes a savings target with the 4% rule's 25x
// multiplier. Falls back to the profile's expected monthly expenses.
type RetirementTargetHandler struct{}

func (h *RetirementTargetHandler) monthlyExpenses(state *State, call *model.ToolCall) (float64, []model.CalculationMessage) {
	var props retirementTargetProps
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

func (h *RetirementTargetHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	_, msgs := h.monthlyExpenses(state, call)
	return msgs
}

func (h *RetirementTargetHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	expenses, msgs := h.monthlyExpenses(state, call)
	if msgs != nil {
		return nil, msgs
	}

	target := finance.CalculateRetirementTarget(expenses)

	return &Outcome{
		Result: map[string]any{
			"monthly_expenses": expenses,
			"target":           target,
			"withdrawal_rate":  0.04,
		},
		Summary: fmt.Sprintf("To cover %s/month in retirement you'd need about %s saved (4%% rule).",
			formatMoney(expenses), formatMoney(target)),
	}, nil
}

type retirementTargetSWRProps struct {
	MonthlyExpenses *float64 `json:"monthly_expenses" validate:"required,gte=0"`
	WithdrawalRate  *float64 `json:"withdrawal_rate" validate:"required"`
}

type RetirementTargetSWRHandler struct{}

func (h *RetirementTargetSWRHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	var props retirementTargetSWRProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}
	if *props.WithdrawalRate <= 0 || *props.WithdrawalRate > 1 {
		return critical("INVALID_WITHDRAWAL_RATE",
			fmt.Sprintf("withdrawal rate must be in (0, 1], got %v", *props.WithdrawalRate))
	}
	return nil
}

func (h *RetirementTargetSWRHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props retirementTargetSWRProps
	decodeProps(call.ToolProperties, &props)

	target, err := finance.CalculateRetirementTargetWithSWR(*props.MonthlyExpenses, *props.WithdrawalRate)
	if err != nil {
		return nil, critical("INVALID_WITHDRAWAL_RATE", err.Error())
	}

	return &Outcome{
		Result: map[string]any{
			"monthly_expenses": *props.MonthlyExpenses,
			"withdrawal_rate":  *props.WithdrawalRate,
			"target":           target,
		},
		Summary: fmt.Sprintf("At a %s withdrawal rate, %s/month of expenses needs about %s saved.",
			formatPercent(*props.WithdrawalRate), formatMoney(*props.MonthlyExpenses), formatMoney(target)),
	}, nil
}

type suggestWithdrawalRateProps struct {
	RetirementYears *int `json:"retirement_years" validate:"required,gte=0"`
}

type SuggestWithdrawalRateHandler struct{}

func (h *SuggestWithdrawalRateHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	var props suggestWithdrawalRateProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}
	return nil
}

func (h *SuggestWithdrawalRateHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props suggestWithdrawalRateProps
	decodeProps(call.ToolProperties, &props)

	suggestion := finance.SuggestWithdrawalRate(*props.RetirementYears)

	return &Outcome{
		Result: suggestion,
		Summary: fmt.Sprintf("For a %d-year retirement: %s standard, %s conservative. %s.",
			*props.RetirementYears, formatPercent(suggestion.StandardRate),
			formatPercent(suggestion.ConservativeRate), suggestion.Description),
	}, nil
}

type projectRetirementAgeProps struct {
	CurrentAge          *int     `json:"current_age" validate:"omitempty,gte=0"`
	CurrentSavings      *float64 `json:"current_savings" validate:"omitempty,gte=0"`
	MonthlyContribution *float64 `json:"monthly_contribution" validate:"omitempty,gte=0"`
	TargetAmount        *float64 `json:"target_amount" validate:"required,gte=0"`
	AnnualRate          *float64 `json:"annual_rate" validate:"omitempty,gt=-1"`
	MaxAge              *int     `json:"max_age" validate:"omitempty,gte=0"`
}

// ProjectRetirementAgeHandler scans ages year by year for the first at
// which projected savings reach the target. Missing inputs come from the
// profile.
type ProjectRetirementAgeHandler struct{}

func (h *ProjectRetirementAgeHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	var props projectRetirementAgeProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}
	if state.Profile == nil && (props.CurrentAge == nil || props.CurrentSavings == nil || props.MonthlyContribution == nil) {
		return critical("PROFILE_NOT_FOUND",
			"no profile exists; current_age, current_savings and monthly_contribution must be provided")
	}
	return nil
}

func (h *ProjectRetirementAgeHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props projectRetirementAgeProps
	decodeProps(call.ToolProperties, &props)

	currentAge := 0
	savings := 0.0
	contribution := 0.0
	if state.Profile != nil {
		currentAge = state.Profile.Age
		savings = state.Profile.CurrentSavings
		contribution = state.Profile.MonthlyContribution
	}
	if props.CurrentAge != nil {
		currentAge = *props.CurrentAge
	}
	if props.CurrentSavings != nil {
		savings = *props.CurrentSavings
	}
	if props.MonthlyContribution != nil {
		contribution = *props.MonthlyContribution
	}

	rate := finance.ProfileReturn(state.Profile, state.Returns)
	if props.AnnualRate != nil {
		rate = *props.AnnualRate
	}
	maxAge := finance.DefaultMaxProjectionAge
	if props.MaxAge != nil {
		maxAge = *props.MaxAge
	}

	age, ok := finance.ProjectRetirementAge(currentAge, savings, contribution, *props.TargetAmount, rate, maxAge)

	result := map[string]any{
		"target_amount": *props.TargetAmount,
		"annual_rate":   rate,
		"max_age":       maxAge,
		"achievable":    ok,
	}
	if ok {
		result["retirement_age"] = age
		return &Outcome{
			Result: result,
			Summary: fmt.Sprintf("You could reach %s at age %d, saving %s/month at %s.",
				formatMoney(*props.TargetAmount), age, formatMoney(contribution), formatPercent(rate)),
		}, nil
	}

	return &Outcome{
		Result: result,
		Summary: fmt.Sprintf("%s is not reachable by age %d at the current savings pace.",
			formatMoney(*props.TargetAmount), maxAge),
	}, nil
}
