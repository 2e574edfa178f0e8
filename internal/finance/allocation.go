package finance

import (
	"fmt"
	"math"

	"retirement-engine/internal/model"
)

// AssetReturns holds the expected nominal annual return per asset class.
type AssetReturns struct {
	USStocks            float64 `json:"us_stocks"`
	InternationalStocks float64 `json:"international_stocks"`
	Bonds               float64 `json:"bonds"`
	Cash                float64 `json:"cash"`
}

// HistoricalReturns are the fixed long-run nominal returns used when no
// external assumptions registry is configured.
var HistoricalReturns = AssetReturns{
	USStocks:            0.10,
	InternationalStocks: 0.08,
	Bonds:               0.04,
	Cash:                0.02,
}

const allocationSumTolerance = 0.01

// ValidateAssetAllocation checks that the four percentages form a usable
// allocation. A nil error means valid; it never mutates the allocation.
func ValidateAssetAllocation(a model.AssetAllocation) error {
	sum := a.USStocks + a.InternationalStocks + a.Bonds + a.Cash
	if math.Abs(sum-100) > allocationSumTolerance {
		return fmt.Errorf("allocation percentages sum to %.1f, expected 100", sum)
	}
	if a.USStocks < 0 || a.InternationalStocks < 0 || a.Bonds < 0 || a.Cash < 0 {
		return fmt.Errorf("allocation percentages must be non-negative")
	}
	return nil
}

// CalculateExpectedReturn computes the percentage-weighted expected
// nominal return of an allocation. The result is a raw decimal fraction;
// rounding for display belongs to the presentation boundary. Fails if the
// allocation is invalid, since callers are expected to validate upstream.
func CalculateExpectedReturn(a model.AssetAllocation, returns AssetReturns) (float64, error) {
	if err := ValidateAssetAllocation(a); err != nil {
		return 0, err
	}
	weighted := a.USStocks*returns.USStocks +
		a.InternationalStocks*returns.InternationalStocks +
		a.Bonds*returns.Bonds +
		a.Cash*returns.Cash
	return weighted / 100, nil
}

// DescribeAllocationStyle labels an allocation by its combined stock
// percentage. Bands are inclusive at the lower bound, so exactly 80 is
// "very aggressive".
func DescribeAllocationStyle(a model.AssetAllocation) string {
	stocks := a.USStocks + a.InternationalStocks
	switch {
	case stocks >= 80:
		return "very aggressive"
	case stocks >= 65:
		return "aggressive"
	case stocks >= 45:
		return "balanced"
	case stocks >= 25:
		return "conservative"
	default:
		return "very conservative"
	}
}

// SuggestAllocationByTimeHorizon derives a starting-point allocation from
// the years left until retirement. The stock split, cash, and bonds are
// rounded in that order; the parts can miss 100 by a point because each
// is rounded independently. Known artifact, kept so outputs stay stable.
func SuggestAllocationByTimeHorizon(yearsToRetirement int) model.AssetAllocation {
	stocks := 40 + 2*float64(yearsToRetirement)
	if stocks < 20 {
		stocks = 20
	}
	if stocks > 90 {
		stocks = 90
	}

	usStocks := math.Round(stocks * 0.7)
	intlStocks := math.Round(stocks * 0.3)

	cash := 15 - float64(yearsToRetirement)
	if cash < 3 {
		cash = 3
	}
	if cash > 10 {
		cash = 10
	}

	bonds := 100 - usStocks - intlStocks - cash
	if bonds < 0 {
		bonds = 0
	}

	return model.AssetAllocation{
		USStocks:            usStocks,
		InternationalStocks: intlStocks,
		Bonds:               bonds,
		Cash:                cash,
	}
}

// RiskToleranceReturn maps a risk-tolerance level to its fixed nominal
// annual return. The second return is false for unknown levels.
func RiskToleranceReturn(riskTolerance string) (float64, bool) {
	switch riskTolerance {
	case model.RiskConservative:
		return 0.05, true
	case model.RiskModerate:
		return 0.07, true
	case model.RiskAggressive:
		return 0.09, true
	default:
		return 0, false
	}
}

// ProfileReturn resolves the expected annual return for a profile. A
// valid asset allocation overrides the riskTolerance-derived return;
// profiles with neither fall back to the moderate return.
func ProfileReturn(p *model.UserProfile, returns AssetReturns) float64 {
	if p != nil && p.AssetAllocation != nil {
		if r, err := CalculateExpectedReturn(*p.AssetAllocation, returns); err == nil {
			return r
		}
	}
	if p != nil {
		if r, ok := RiskToleranceReturn(p.RiskTolerance); ok {
			return r
		}
	}
	r, _ := RiskToleranceReturn(model.RiskModerate)
	return r
}
