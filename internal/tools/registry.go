package tools

var registry = map[string]ToolHandler{
	"calculate_compound_growth":            &CompoundGrowthHandler{},
	"adjust_for_inflation":                 &AdjustForInflationHandler{},
	"calculate_retirement_target":          &RetirementTargetHandler{},
	"calculate_retirement_target_swr":      &RetirementTargetSWRHandler{},
	"suggest_withdrawal_rate":              &SuggestWithdrawalRateHandler{},
	"project_retirement_age":               &ProjectRetirementAgeHandler{},
	"validate_asset_allocation":            &ValidateAllocationHandler{},
	"calculate_expected_return":            &ExpectedReturnHandler{},
	"describe_allocation_style":            &DescribeAllocationStyleHandler{},
	"suggest_allocation_by_time_horizon":   &SuggestAllocationHandler{},
	"set_asset_allocation":                 &SetAllocationHandler{},
	"calculate_monthly_income_at_age":      &MonthlyIncomeAtAgeHandler{},
	"calculate_income_flow_lifetime_value": &IncomeFlowLifetimeValueHandler{},
	"calculate_income_flow_summary":        &IncomeFlowSummaryHandler{},
	"add_income_flow":                      &AddIncomeFlowHandler{},
	"remove_income_flow":                   &RemoveIncomeFlowHandler{},
	"simulate_withdrawal_strategy":         &SimulateStrategyHandler{},
	"compare_strategies":                   &CompareStrategiesHandler{},
	"save_profile":                         &SaveProfileHandler{},
	"get_profile":                          &GetProfileHandler{},
	"delete_profile":                       &DeleteProfileHandler{},
}

func Get(name string) (ToolHandler, bool) {
	h, ok := registry[name]
	return h, ok
}
