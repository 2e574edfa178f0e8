package tools

import (
	"fmt"

	"retirement-engine/internal/finance"
	"retirement-engine/internal/model"
)

type allocationProps struct {
	Allocation *model.AssetAllocation `json:"allocation" validate:"required"`
}

type optionalAllocationProps struct {
	Allocation *model.AssetAllocation `json:"allocation"`
}

// resolveAllocation picks the allocation from the call, falling back to
// the profile's.
func resolveAllocation(state *State, props optionalAllocationProps) (*model.AssetAllocation, []model.CalculationMessage) {
	if props.Allocation != nil {
		return props.Allocation, nil
	}
	if state.Profile != nil && state.Profile.AssetAllocation != nil {
		return state.Profile.AssetAllocation, nil
	}
	return nil, critical("NO_ALLOCATION", "no allocation was provided and the profile has none set")
}

// ValidateAllocationHandler reports whether an allocation is usable.
// Invalidity is the result payload here, never a failure.
type ValidateAllocationHandler struct{}

func (h *ValidateAllocationHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	var props allocationProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}
	return nil
}

func (h *ValidateAllocationHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props allocationProps
	decodeProps(call.ToolProperties, &props)

	if err := finance.ValidateAssetAllocation(*props.Allocation); err != nil {
		return &Outcome{
			Result:  map[string]any{"valid": false, "reason": err.Error()},
			Summary: fmt.Sprintf("That allocation isn't usable: %s.", err.Error()),
		}, nil
	}

	return &Outcome{
		Result:  map[string]any{"valid": true},
		Summary: fmt.Sprintf("The allocation is valid (%s).", finance.DescribeAllocationStyle(*props.Allocation)),
	}, nil
}

type ExpectedReturnHandler struct{}

func (h *ExpectedReturnHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	var props optionalAllocationProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}
	a, msgs := resolveAllocation(state, props)
	if msgs != nil {
		return msgs
	}
	if err := finance.ValidateAssetAllocation(*a); err != nil {
		return critical("INVALID_ALLOCATION", err.Error())
	}
	return nil
}

func (h *ExpectedReturnHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props optionalAllocationProps
	decodeProps(call.ToolProperties, &props)

	a, msgs := resolveAllocation(state, props)
	if msgs != nil {
		return nil, msgs
	}

	expected, err := finance.CalculateExpectedReturn(*a, state.Returns)
	if err != nil {
		return nil, critical("INVALID_ALLOCATION", err.Error())
	}

	style := finance.DescribeAllocationStyle(*a)
	return &Outcome{
		Result: map[string]any{
			"expected_return": expected,
			"style":           style,
		},
		Summary: fmt.Sprintf("This %s allocation has an expected nominal return of %s per year.",
			style, formatPercent(expected)),
	}, nil
}

type DescribeAllocationStyleHandler struct{}

func (h *DescribeAllocationStyleHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	var props optionalAllocationProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}
	_, msgs := resolveAllocation(state, props)
	return msgs
}

func (h *DescribeAllocationStyleHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props optionalAllocationProps
	decodeProps(call.ToolProperties, &props)

	a, msgs := resolveAllocation(state, props)
	if msgs != nil {
		return nil, msgs
	}

	style := finance.DescribeAllocationStyle(*a)
	stocks := a.USStocks + a.InternationalStocks

	return &Outcome{
		Result: map[string]any{
			"style":            style,
			"stock_percentage": stocks,
		},
		Summary: fmt.Sprintf("With %.0f%% in stocks, this is a %s allocation.", stocks, style),
	}, nil
}

type suggestAllocationProps struct {
	YearsToRetirement *int `json:"years_to_retirement" validate:"omitempty,gte=0"`
}

// SuggestAllocationHandler derives a starting-point allocation from the
// time horizon, defaulting to the profile's years until target
// retirement.
type SuggestAllocationHandler struct{}

func (h *SuggestAllocationHandler) years(state *State, call *model.ToolCall) (int, []model.CalculationMessage) {
	var props suggestAllocationProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return 0, invalidArguments(err)
	}
	if props.YearsToRetirement != nil {
		return *props.YearsToRetirement, nil
	}
	if state.Profile != nil {
		years := state.Profile.TargetRetirementAge - state.Profile.Age
		if years < 0 {
			years = 0
		}
		return years, nil
	}
	return 0, critical("PROFILE_NOT_FOUND", "no profile exists; years_to_retirement must be provided")
}

func (h *SuggestAllocationHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	_, msgs := h.years(state, call)
	return msgs
}

func (h *SuggestAllocationHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	years, msgs := h.years(state, call)
	if msgs != nil {
		return nil, msgs
	}

	suggested := finance.SuggestAllocationByTimeHorizon(years)
	style := finance.DescribeAllocationStyle(suggested)

	return &Outcome{
		Result: map[string]any{
			"years_to_retirement": years,
			"allocation":          suggested,
			"style":               style,
		},
		Summary: fmt.Sprintf("%d years out, a %s mix: %.0f%% US stocks, %.0f%% international, %.0f%% bonds, %.0f%% cash.",
			years, style, suggested.USStocks, suggested.InternationalStocks, suggested.Bonds, suggested.Cash),
	}, nil
}

// SetAllocationHandler writes a validated allocation to the profile.
type SetAllocationHandler struct{}

func (h *SetAllocationHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	if state.Profile == nil {
		return critical("PROFILE_NOT_FOUND", "no profile exists")
	}
	var props allocationProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}
	if err := finance.ValidateAssetAllocation(*props.Allocation); err != nil {
		return critical("INVALID_ALLOCATION", err.Error())
	}
	return nil
}

func (h *SetAllocationHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props allocationProps
	decodeProps(call.ToolProperties, &props)

	a := *props.Allocation
	state.Profile.AssetAllocation = &a
	state.Dirty = true

	expected, _ := finance.CalculateExpectedReturn(a, state.Returns)
	style := finance.DescribeAllocationStyle(a)

	return &Outcome{
		Result: map[string]any{
			"allocation":      a,
			"style":           style,
			"expected_return": expected,
		},
		Summary: fmt.Sprintf("Asset allocation saved: a %s mix with an expected return of %s.",
			style, formatPercent(expected)),
	}, nil
}
