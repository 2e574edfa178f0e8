package tools

import (
	"fmt"

	"github.com/google/uuid"

	"retirement-engine/internal/finance"
	"retirement-engine/internal/model"
)

type monthlyIncomeProps struct {
	Age *int `json:"age" validate:"required,gte=0"`
}

type MonthlyIncomeAtAgeHandler struct{}

func (h *MonthlyIncomeAtAgeHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	if state.Profile == nil {
		return critical("PROFILE_NOT_FOUND", "no profile exists")
	}
	var props monthlyIncomeProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}
	return nil
}

func (h *MonthlyIncomeAtAgeHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props monthlyIncomeProps
	decodeProps(call.ToolProperties, &props)

	total := finance.MonthlyIncomeAtAge(state.Profile.IncomeFlows, *props.Age)

	return &Outcome{
		Result: map[string]any{
			"age":            *props.Age,
			"monthly_income": total,
		},
		Summary: fmt.Sprintf("At age %d your income flows pay %s/month.", *props.Age, formatMoney(total)),
	}, nil
}

type lifetimeValueProps struct {
	FlowID         string   `json:"flow_id" validate:"required"`
	RetirementAge  *int     `json:"retirement_age" validate:"omitempty,gte=0"`
	LifeExpectancy *int     `json:"life_expectancy" validate:"omitempty,gte=0"`
	InflationRate  *float64 `json:"inflation_rate" validate:"omitempty,gt=-1"`
}

type IncomeFlowLifetimeValueHandler struct{}

func (h *IncomeFlowLifetimeValueHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	if state.Profile == nil {
		return critical("PROFILE_NOT_FOUND", "no profile exists")
	}
	var props lifetimeValueProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}
	return nil
}

func (h *IncomeFlowLifetimeValueHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props lifetimeValueProps
	decodeProps(call.ToolProperties, &props)

	var flow *model.IncomeFlow
	for i := range state.Profile.IncomeFlows {
		if state.Profile.IncomeFlows[i].ID == props.FlowID {
			flow = &state.Profile.IncomeFlows[i]
			break
		}
	}
	if flow == nil {
		return &Outcome{
			Result:  map[string]any{"found": false},
			Summary: fmt.Sprintf("No income flow with id %s exists.", props.FlowID),
		}, warning("FLOW_NOT_FOUND", fmt.Sprintf("income flow %s not found", props.FlowID))
	}

	retirementAge := state.Profile.TargetRetirementAge
	if props.RetirementAge != nil {
		retirementAge = *props.RetirementAge
	}
	life := finance.DefaultLifeExpectancy
	if props.LifeExpectancy != nil {
		life = *props.LifeExpectancy
	}
	inflation := finance.DefaultInflationRate
	if props.InflationRate != nil {
		inflation = *props.InflationRate
	}

	value := finance.IncomeFlowLifetimeValue(*flow, retirementAge, life, inflation)

	return &Outcome{
		Result: map[string]any{
			"found":          true,
			"flow":           flow,
			"lifetime_value": value,
		},
		Summary: fmt.Sprintf("%s is worth about %s over your retirement (through age %d).",
			flow.Name, formatMoney(value), life),
	}, nil
}

type incomeSummaryProps struct {
	RetirementAge  *int     `json:"retirement_age" validate:"omitempty,gte=0"`
	LifeExpectancy *int     `json:"life_expectancy" validate:"omitempty,gte=0"`
	InflationRate  *float64 `json:"inflation_rate" validate:"omitempty,gt=-1"`
}

// IncomeFlowSummaryHandler aggregates the profile's income flows into
// monthly income at retirement, lifetime value, and the savings-target
// reduction they buy.
type IncomeFlowSummaryHandler struct{}

func (h *IncomeFlowSummaryHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	if state.Profile == nil {
		return critical("PROFILE_NOT_FOUND", "no profile exists")
	}
	var props incomeSummaryProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}
	return nil
}

func (h *IncomeFlowSummaryHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props incomeSummaryProps
	decodeProps(call.ToolProperties, &props)

	retirementAge := state.Profile.TargetRetirementAge
	if props.RetirementAge != nil {
		retirementAge = *props.RetirementAge
	}
	life := finance.DefaultLifeExpectancy
	if props.LifeExpectancy != nil {
		life = *props.LifeExpectancy
	}
	inflation := finance.DefaultInflationRate
	if props.InflationRate != nil {
		inflation = *props.InflationRate
	}

	summary := finance.CalculateIncomeFlowSummary(state.Profile.IncomeFlows, retirementAge, life, inflation)

	return &Outcome{
		Result: summary,
		Summary: fmt.Sprintf("Guaranteed income at %d: %s/month, %s lifetime, reducing your savings target by %s.",
			retirementAge, formatMoney(summary.TotalMonthlyIncome),
			formatMoney(summary.TotalLifetimeValue), formatMoney(summary.SavingsReduction)),
	}, nil
}

type addIncomeFlowProps struct {
	Name              string   `json:"name" validate:"required"`
	Type              string   `json:"type" validate:"required,oneof=social_security pension annuity part_time_work other"`
	MonthlyAmount     *float64 `json:"monthly_amount" validate:"required,gte=0"`
	StartAge          *int     `json:"start_age" validate:"required,gte=0"`
	EndAge            *int     `json:"end_age" validate:"omitempty,gte=0"`
	InflationAdjusted bool     `json:"inflation_adjusted"`
}

// AddIncomeFlowHandler appends a flow with a freshly generated id. Flows
// are only ever replaced whole: edits go through remove and re-add.
type AddIncomeFlowHandler struct{}

func (h *AddIncomeFlowHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	if state.Profile == nil {
		return critical("PROFILE_NOT_FOUND", "no profile exists")
	}

	var props addIncomeFlowProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}

	if props.EndAge != nil && *props.EndAge <= *props.StartAge {
		return critical("INVALID_AGE_RANGE", "end_age must be after start_age")
	}

	var msgs []model.CalculationMessage
	for _, f := range state.Profile.IncomeFlows {
		if f.Name == props.Name && f.Type == props.Type {
			msgs = append(msgs, warning("DUPLICATE_FLOW",
				fmt.Sprintf("an income flow named %q of type %s already exists", props.Name, props.Type))...)
			break
		}
	}
	return msgs
}

func (h *AddIncomeFlowHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props addIncomeFlowProps
	decodeProps(call.ToolProperties, &props)

	flow := model.IncomeFlow{
		ID:                uuid.New().String(),
		Name:              props.Name,
		Type:              props.Type,
		MonthlyAmount:     *props.MonthlyAmount,
		StartAge:          *props.StartAge,
		EndAge:            props.EndAge,
		InflationAdjusted: props.InflationAdjusted,
	}
	state.Profile.IncomeFlows = append(state.Profile.IncomeFlows, flow)
	state.Dirty = true

	return &Outcome{
		Result: flow,
		Summary: fmt.Sprintf("Added %s: %s/month starting at age %d.",
			flow.Name, formatMoney(flow.MonthlyAmount), flow.StartAge),
	}, nil
}

type removeIncomeFlowProps struct {
	FlowID string `json:"flow_id" validate:"required"`
}

type RemoveIncomeFlowHandler struct{}

func (h *RemoveIncomeFlowHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	if state.Profile == nil {
		return critical("PROFILE_NOT_FOUND", "no profile exists")
	}
	var props removeIncomeFlowProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}
	return nil
}

func (h *RemoveIncomeFlowHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props removeIncomeFlowProps
	decodeProps(call.ToolProperties, &props)

	flows := state.Profile.IncomeFlows
	for i := range flows {
		if flows[i].ID == props.FlowID {
			removed := flows[i]
			state.Profile.IncomeFlows = append(flows[:i:i], flows[i+1:]...)
			state.Dirty = true
			return &Outcome{
				Result:  map[string]any{"removed": true, "flow": removed},
				Summary: fmt.Sprintf("Removed %s.", removed.Name),
			}, nil
		}
	}

	// Not-found is an ordinary negative result, not a failure.
	return &Outcome{
		Result:  map[string]any{"removed": false},
		Summary: fmt.Sprintf("No income flow with id %s exists.", props.FlowID),
	}, warning("FLOW_NOT_FOUND", fmt.Sprintf("income flow %s not found", props.FlowID))
}
