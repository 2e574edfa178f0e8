package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompoundGrowthInvariant(t *testing.T) {
	cases := []struct {
		name         string
		principal    float64
		contribution float64
		rate         float64
		years        int
	}{
		{"typical", 50000, 500, 0.07, 20},
		{"zero principal", 0, 1000, 0.05, 10},
		{"zero contribution", 100000, 0, 0.09, 30},
		{"zero rate", 10000, 250, 0, 15},
		{"negative rate", 75000, 300, -0.02, 8},
		{"fractional inputs", 12345.67, 123.45, 0.063, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateCompoundGrowth(tc.principal, tc.contribution, tc.rate, tc.years)
			assert.Equal(t, got.FutureValue, got.TotalContributions+got.TotalGrowth,
				"future value must equal contributions plus growth exactly")
		})
	}
}

func TestCompoundGrowthZeroYears(t *testing.T) {
	got := CalculateCompoundGrowth(280000, 1500, 0.07, 0)
	assert.Equal(t, 280000.0, got.FutureValue)
	assert.Equal(t, 280000.0, got.TotalContributions)
	assert.Equal(t, 0.0, got.TotalGrowth)
}

func TestCompoundGrowthZeroRate(t *testing.T) {
	// With a zero rate the contribution stream degenerates to a plain sum.
	got := CalculateCompoundGrowth(1000, 100, 0, 2)
	assert.Equal(t, 1000.0+100*24, got.FutureValue)
	assert.Equal(t, 0.0, got.TotalGrowth)
}

func TestAdjustForInflation(t *testing.T) {
	assert.Equal(t, 1000.0, AdjustForInflation(1000, 0, 0.03))
	assert.Equal(t, 1000.0, AdjustForInflation(1000.4, 0, 0.08))

	// 1000 / 1.03^10
	assert.Equal(t, 744.0, AdjustForInflation(1000, 10, 0.03))
}

func TestCalculateRetirementTarget(t *testing.T) {
	assert.Equal(t, 1_200_000.0, CalculateRetirementTarget(4000))
	assert.Equal(t, 1_500_000.0, CalculateRetirementTarget(5000))
}

func TestCalculateRetirementTargetWithSWR(t *testing.T) {
	got, err := CalculateRetirementTargetWithSWR(4000, 0.04)
	require.NoError(t, err)
	assert.Equal(t, 1_200_000.0, got)

	got, err = CalculateRetirementTargetWithSWR(4000, 0.03)
	require.NoError(t, err)
	assert.Equal(t, 1_600_000.0, got)

	_, err = CalculateRetirementTargetWithSWR(4000, 0)
	assert.Error(t, err)
	_, err = CalculateRetirementTargetWithSWR(4000, -0.04)
	assert.Error(t, err)
	_, err = CalculateRetirementTargetWithSWR(4000, 1.5)
	assert.Error(t, err)
}

func TestSuggestWithdrawalRate(t *testing.T) {
	assert.Equal(t, 0.05, SuggestWithdrawalRate(20).StandardRate)

	// 22 <= 25, so the 25-year bracket wins. Ceiling lookup, not
	// interpolation.
	assert.Equal(t, 0.045, SuggestWithdrawalRate(22).StandardRate)

	assert.Equal(t, 0.04, SuggestWithdrawalRate(30).StandardRate)
	assert.Equal(t, 0.035, SuggestWithdrawalRate(31).StandardRate)

	// Beyond the table falls to the most conservative bracket.
	assert.Equal(t, 0.033, SuggestWithdrawalRate(55).StandardRate)
}

func TestProjectRetirementAgeAlreadyAtTarget(t *testing.T) {
	age, ok := ProjectRetirementAge(50, 1_500_000, 1000, 1_000_000, 0.07, DefaultMaxProjectionAge)
	require.True(t, ok)
	assert.Equal(t, 50, age)
}

func TestProjectRetirementAgeUnreachable(t *testing.T) {
	_, ok := ProjectRetirementAge(60, 10000, 100, 2_000_000, 0.07, 80)
	assert.False(t, ok, "target beyond max age is a normal not-reachable outcome")
}

func TestEndToEndScenario(t *testing.T) {
	// Age 42, retiring at 60, $280k saved, $1,500/month at 7%.
	growth := CalculateCompoundGrowth(280000, 1500, 0.07, 18)
	assert.GreaterOrEqual(t, growth.FutureValue, 1_600_000.0)
	assert.LessOrEqual(t, growth.FutureValue, 1_700_000.0)

	age, ok := ProjectRetirementAge(42, 280000, 1500, 1_250_000, 0.07, DefaultMaxProjectionAge)
	require.True(t, ok)
	assert.GreaterOrEqual(t, age, 55)
	assert.LessOrEqual(t, age, 58)
}
