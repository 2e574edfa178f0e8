package model

// GuardrailsConfig parameterizes the guardrails withdrawal strategy.
// Convention: FloorGuardrail > InitialRate > CeilingGuardrail, all in (0,1).
type GuardrailsConfig struct {
	InitialRate       float64 `json:"initial_rate"`
	FloorGuardrail    float64 `json:"floor_guardrail"`
	CeilingGuardrail  float64 `json:"ceiling_guardrail"`
	AdjustmentPercent float64 `json:"adjustment_percent"`
}

// YearlyWithdrawal is one simulated year of a decumulation run.
type YearlyWithdrawal struct {
	Year            int     `json:"year"`
	StartingBalance float64 `json:"starting_balance"`
	Withdrawal      float64 `json:"withdrawal"`
	EndingBalance   float64 `json:"ending_balance"`
	WithdrawalRate  float64 `json:"withdrawal_rate"`
}

// StrategySimulationResult is a derived value, recomputed on every call
// and never persisted.
type StrategySimulationResult struct {
	Strategy          string             `json:"strategy"`
	InitialPortfolio  float64            `json:"initial_portfolio"`
	Years             int                `json:"years"`
	AnnualReturn      float64            `json:"annual_return"`
	YearlyWithdrawals []YearlyWithdrawal `json:"yearly_withdrawals"`
	TotalWithdrawn    float64            `json:"total_withdrawn"`
	FinalBalance      float64            `json:"final_balance"`
	AverageWithdrawal float64            `json:"average_withdrawal"`
	MinWithdrawal     float64            `json:"min_withdrawal"`
	MaxWithdrawal     float64            `json:"max_withdrawal"`
	RanOutOfMoney     bool               `json:"ran_out_of_money"`
	DepletionYear     *int               `json:"depletion_year,omitempty"`
}
