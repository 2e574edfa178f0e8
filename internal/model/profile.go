package model

import "time"

const (
	MaritalSingle  = "single"
	MaritalMarried = "married"
)

const (
	RiskConservative = "conservative"
	RiskModerate     = "moderate"
	RiskAggressive   = "aggressive"
)

const (
	FlowSocialSecurity = "social_security"
	FlowPension        = "pension"
	FlowAnnuity        = "annuity"
	FlowPartTimeWork   = "part_time_work"
	FlowOther          = "other"
)

// UserProfile is the single persisted record per installation. Optional
// fields are pointers so that absence survives a JSON round trip.
type UserProfile struct {
	Age                     int              `json:"age"`
	TargetRetirementAge     int              `json:"target_retirement_age"`
	MaritalStatus           string           `json:"marital_status"`
	CurrentSavings          float64          `json:"current_savings"`
	MonthlyContribution     float64          `json:"monthly_contribution"`
	RiskTolerance           string           `json:"risk_tolerance"`
	AssetAllocation         *AssetAllocation `json:"asset_allocation,omitempty"`
	ExpectedMonthlyExpenses *float64         `json:"expected_monthly_expenses,omitempty"`
	IncomeFlows             []IncomeFlow     `json:"income_flows"`
	SavedAt                 *time.Time       `json:"saved_at,omitempty"` // set by the store on every write
}

// AssetAllocation holds percentages per asset class. Must sum to 100
// within tolerance; validated before any calculation uses it.
type AssetAllocation struct {
	USStocks            float64 `json:"us_stocks"`
	InternationalStocks float64 `json:"international_stocks"`
	Bonds               float64 `json:"bonds"`
	Cash                float64 `json:"cash"`
}

// IncomeFlow is one guaranteed income stream (Social Security, pension,
// annuity, ...). EndAge is exclusive; nil means the flow pays for life.
type IncomeFlow struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	MonthlyAmount     float64 `json:"monthly_amount"`
	StartAge          int     `json:"start_age"`
	EndAge            *int    `json:"end_age,omitempty"`
	InflationAdjusted bool    `json:"inflation_adjusted"`
}
