package finance

import (
	"math"

	"retirement-engine/internal/model"
)

// MonthlyIncomeAtAge sums the monthly amounts of every flow active at the
// given age. Start age is inclusive, end age exclusive.
func MonthlyIncomeAtAge(flows []model.IncomeFlow, age int) float64 {
	var total float64
	for _, f := range flows {
		if age < f.StartAge {
			continue
		}
		if f.EndAge != nil && age >= *f.EndAge {
			continue
		}
		total += f.MonthlyAmount
	}
	return roundMoney(total)
}

// IncomeFlowLifetimeValue totals what a flow pays out between retirement
// and life expectancy, in today's dollars. Inflation-adjusted flows keep
// their purchasing power, so their nominal sum stands as-is; fixed
// nominal flows erode, so each year is discounted back at the inflation
// rate.
func IncomeFlowLifetimeValue(flow model.IncomeFlow, retirementAge, lifeExpectancy int, inflationRate float64) float64 {
	effectiveStart := flow.StartAge
	if retirementAge > effectiveStart {
		effectiveStart = retirementAge
	}
	effectiveEnd := lifeExpectancy
	if flow.EndAge != nil {
		effectiveEnd = *flow.EndAge
	}
	if effectiveStart >= effectiveEnd {
		return 0
	}

	years := effectiveEnd - effectiveStart
	annualAmount := flow.MonthlyAmount * 12

	if flow.InflationAdjusted {
		return roundMoney(annualAmount * float64(years))
	}

	var value float64
	for y := 0; y < years; y++ {
		value += annualAmount / math.Pow(1+inflationRate, float64(y))
	}
	return roundMoney(value)
}

type IncomeFlowBreakdown struct {
	Name          string  `json:"name"`
	MonthlyAmount float64 `json:"monthly_amount"`
	LifetimeValue float64 `json:"lifetime_value"`
}

type IncomeFlowSummary struct {
	TotalMonthlyIncome float64               `json:"total_monthly_income"`
	TotalLifetimeValue float64               `json:"total_lifetime_value"`
	SavingsReduction   float64               `json:"savings_reduction"`
	Breakdown          []IncomeFlowBreakdown `json:"breakdown"`
}

// CalculateIncomeFlowSummary aggregates all income flows into monthly
// income at retirement, total lifetime value, and the amount by which
// guaranteed income reduces the savings target (25x its annual value,
// the same multiple used for target sizing).
func CalculateIncomeFlowSummary(flows []model.IncomeFlow, retirementAge, lifeExpectancy int, inflationRate float64) IncomeFlowSummary {
	summary := IncomeFlowSummary{
		TotalMonthlyIncome: MonthlyIncomeAtAge(flows, retirementAge),
		Breakdown:          make([]IncomeFlowBreakdown, 0, len(flows)),
	}

	for _, f := range flows {
		value := IncomeFlowLifetimeValue(f, retirementAge, lifeExpectancy, inflationRate)
		summary.Breakdown = append(summary.Breakdown, IncomeFlowBreakdown{
			Name:          f.Name,
			MonthlyAmount: f.MonthlyAmount,
			LifetimeValue: value,
		})
		summary.TotalLifetimeValue += value
	}

	summary.SavingsReduction = roundMoney(summary.TotalMonthlyIncome * 12 * 25)
	return summary
}
