package tools

import (
	"fmt"

	"retirement-engine/internal/model"
)

type saveProfileProps struct {
	Age                     *int     `json:"age" validate:"omitempty,gte=0,lte=120"`
	TargetRetirementAge     *int     `json:"target_retirement_age" validate:"omitempty,gte=0,lte=120"`
	MaritalStatus           *string  `json:"marital_status" validate:"omitempty,oneof=single married"`
	CurrentSavings          *float64 `json:"current_savings" validate:"omitempty,gte=0"`
	MonthlyContribution     *float64 `json:"monthly_contribution" validate:"omitempty,gte=0"`
	RiskTolerance           *string  `json:"risk_tolerance" validate:"omitempty,oneof=conservative moderate aggressive"`
	ExpectedMonthlyExpenses *float64 `json:"expected_monthly_expenses" validate:"omitempty,gte=0"`
}

// SaveProfileHandler creates the profile or merges the provided fields
// into the existing one. Income flows and the asset allocation are
// managed by their own tools and survive a merge untouched.
type SaveProfileHandler struct{}

func (h *SaveProfileHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	var props saveProfileProps
	if err := decodeProps(call.ToolProperties, &props); err != nil {
		return invalidArguments(err)
	}

	age := props.Age
	target := props.TargetRetirementAge
	if state.Profile != nil {
		if age == nil {
			age = &state.Profile.Age
		}
		if target == nil {
			target = &state.Profile.TargetRetirementAge
		}
	}
	if age != nil && target != nil && *target < *age {
		return warning("TARGET_AGE_IN_PAST",
			fmt.Sprintf("target retirement age %d is below current age %d", *target, *age))
	}
	return nil
}

func (h *SaveProfileHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	var props saveProfileProps
	decodeProps(call.ToolProperties, &props)

	created := false
	if state.Profile == nil {
		state.Profile = &model.UserProfile{
			RiskTolerance: model.RiskModerate,
			IncomeFlows:   []model.IncomeFlow{},
		}
		created = true
	}

	p := state.Profile
	if props.Age != nil {
		p.Age = *props.Age
	}
	if props.TargetRetirementAge != nil {
		p.TargetRetirementAge = *props.TargetRetirementAge
	}
	if props.MaritalStatus != nil {
		p.MaritalStatus = *props.MaritalStatus
	}
	if props.CurrentSavings != nil {
		p.CurrentSavings = *props.CurrentSavings
	}
	if props.MonthlyContribution != nil {
		p.MonthlyContribution = *props.MonthlyContribution
	}
	if props.RiskTolerance != nil {
		p.RiskTolerance = *props.RiskTolerance
	}
	if props.ExpectedMonthlyExpenses != nil {
		p.ExpectedMonthlyExpenses = props.ExpectedMonthlyExpenses
	}
	state.Dirty = true

	verb := "updated"
	if created {
		verb = "created"
	}
	return &Outcome{
		Result: p,
		Summary: fmt.Sprintf("Profile %s: age %d, retiring at %d, %s saved, %s/month contributions.",
			verb, p.Age, p.TargetRetirementAge, formatMoney(p.CurrentSavings), formatMoney(p.MonthlyContribution)),
	}, nil
}

type GetProfileHandler struct{}

func (h *GetProfileHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	return nil
}

func (h *GetProfileHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	if state.Profile == nil {
		return &Outcome{
			Result:  map[string]any{"found": false},
			Summary: "No profile has been saved yet.",
		}, nil
	}

	return &Outcome{
		Result: map[string]any{"found": true, "profile": state.Profile},
		Summary: fmt.Sprintf("Age %d, retiring at %d, %s saved, %d income flows.",
			state.Profile.Age, state.Profile.TargetRetirementAge,
			formatMoney(state.Profile.CurrentSavings), len(state.Profile.IncomeFlows)),
	}, nil
}

type DeleteProfileHandler struct{}

func (h *DeleteProfileHandler) Validate(state *State, call *model.ToolCall) []model.CalculationMessage {
	return nil
}

func (h *DeleteProfileHandler) Execute(state *State, call *model.ToolCall) (*Outcome, []model.CalculationMessage) {
	if state.Profile == nil {
		return &Outcome{
			Result:  map[string]any{"deleted": false},
			Summary: "There was no profile to delete.",
		}, nil
	}

	state.Profile = nil
	state.Deleted = true
	state.Dirty = false

	return &Outcome{
		Result:  map[string]any{"deleted": true},
		Summary: "Profile deleted.",
	}, nil
}
