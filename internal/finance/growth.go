package finance

import (
	"fmt"
	"math"
)

type GrowthResult struct {
	FutureValue        float64 `json:"future_value"`
	TotalContributions float64 `json:"total_contributions"`
	TotalGrowth        float64 `json:"total_growth"`
}

// CalculateCompoundGrowth projects a principal plus a monthly contribution
// stream under monthly compounding. TotalGrowth is derived from the
// already-rounded future value and contributions, so
// FutureValue == TotalContributions + TotalGrowth holds exactly.
func CalculateCompoundGrowth(principal, monthlyContribution, annualRate float64, years int) GrowthResult {
	if years <= 0 {
		p := roundMoney(principal)
		return GrowthResult{FutureValue: p, TotalContributions: p, TotalGrowth: 0}
	}

	monthlyRate := annualRate / 12
	months := years * 12
	m := float64(months)

	principalFV := principal * math.Pow(1+monthlyRate, m)

	var contributionFV float64
	if monthlyRate == 0 {
		contributionFV = monthlyContribution * m
	} else {
		contributionFV = monthlyContribution * (math.Pow(1+monthlyRate, m) - 1) / monthlyRate
	}

	futureValue := roundMoney(principalFV + contributionFV)
	totalContributions := roundMoney(principal + monthlyContribution*m)

	return GrowthResult{
		FutureValue:        futureValue,
		TotalContributions: totalContributions,
		TotalGrowth:        futureValue - totalContributions,
	}
}

// AdjustForInflation discounts a future amount back to today's purchasing
// power.
func AdjustForInflation(futureAmount float64, years int, inflationRate float64) float64 {
	if years <= 0 {
		return roundMoney(futureAmount)
	}
	return roundMoney(futureAmount / math.Pow(1+inflationRate, float64(years)))
}

// CalculateRetirementTarget sizes a savings target from monthly expenses
// using the 4% rule's fixed 25x multiplier.
func CalculateRetirementTarget(monthlyExpenses float64) float64 {
	return roundMoney(monthlyExpenses * 12 * 25)
}

// CalculateRetirementTargetWithSWR sizes a savings target for a custom
// safe withdrawal rate.
func CalculateRetirementTargetWithSWR(monthlyExpenses, withdrawalRate float64) (float64, error) {
	if withdrawalRate <= 0 || withdrawalRate > 1 {
		return 0, fmt.Errorf("withdrawal rate must be in (0, 1], got %v", withdrawalRate)
	}
	return roundMoney(monthlyExpenses * 12 / withdrawalRate), nil
}

type WithdrawalRateSuggestion struct {
	StandardRate     float64 `json:"standard_rate"`
	ConservativeRate float64 `json:"conservative_rate"`
	Description      string  `json:"description"`
}

// Ascending retirement-length brackets. Lookup is by ceiling: the first
// bracket whose horizon is >= the requested retirement length wins, so 22
// years selects the 25-year bracket.
var swrBrackets = []struct {
	maxYears   int
	suggestion WithdrawalRateSuggestion
}{
	{20, WithdrawalRateSuggestion{0.050, 0.045, "A retirement of up to 20 years supports a 5% withdrawal rate"}},
	{25, WithdrawalRateSuggestion{0.045, 0.040, "A retirement of up to 25 years supports a 4.5% withdrawal rate"}},
	{30, WithdrawalRateSuggestion{0.040, 0.035, "A 30-year retirement matches the classic 4% rule"}},
	{35, WithdrawalRateSuggestion{0.035, 0.030, "A retirement of up to 35 years calls for a reduced 3.5% rate"}},
	{40, WithdrawalRateSuggestion{0.033, 0.030, "Retirements of 40 years or more call for the most conservative rate"}},
}

// SuggestWithdrawalRate picks a safe withdrawal rate for the expected
// retirement length. Horizons beyond the table fall to the most
// conservative bracket.
func SuggestWithdrawalRate(retirementYears int) WithdrawalRateSuggestion {
	for _, b := range swrBrackets {
		if retirementYears <= b.maxYears {
			return b.suggestion
		}
	}
	return swrBrackets[len(swrBrackets)-1].suggestion
}

// ProjectRetirementAge scans integer ages from currentAge to maxAge and
// returns the first age at which projected savings reach targetAmount.
// The second return is false when the target is not reachable by maxAge;
// that is a normal outcome, not an error.
func ProjectRetirementAge(currentAge int, currentSavings, monthlyContribution, targetAmount, annualRate float64, maxAge int) (int, bool) {
	for age := currentAge; age <= maxAge; age++ {
		projected := CalculateCompoundGrowth(currentSavings, monthlyContribution, annualRate, age-currentAge)
		if projected.FutureValue >= targetAmount {
			return age, true
		}
	}
	return 0, false
}
