package finance

import (
	"retirement-engine/internal/model"
)

const (
	StrategyConstantDollar     = "constant_dollar"
	StrategyConstantPercentage = "constant_percentage"
	StrategyGuardrails         = "guardrails"

	// Described to users as a concept but has no executable simulation;
	// attempts to simulate it are rejected as unsupported.
	StrategyBucket = "bucket"
)

// DefaultGuardrailsConfig returns the stock guardrails parameters: start
// at 5%, cut spending 10% when the realized rate drifts above 6%, raise
// it 10% when the rate drifts below 4%.
func DefaultGuardrailsConfig() model.GuardrailsConfig {
	return model.GuardrailsConfig{
		InitialRate:       0.05,
		FloorGuardrail:    0.06,
		CeilingGuardrail:  0.04,
		AdjustmentPercent: 0.10,
	}
}

// SimulateConstantDollar runs the constant-dollar strategy: a fixed
// first-year withdrawal escalated by inflation each following year. When
// the balance can no longer cover the target, the withdrawal is clamped
// to what remains, the run is marked depleted, and every later year
// withdraws zero. The loop always runs the full year count.
func SimulateConstantDollar(initialPortfolio, initialWithdrawal float64, years int, annualReturn, inflationRate float64) model.StrategySimulationResult {
	res := model.StrategySimulationResult{
		Strategy:         StrategyConstantDollar,
		InitialPortfolio: initialPortfolio,
		Years:            years,
		AnnualReturn:     annualReturn,
	}

	balance := roundMoney(initialPortfolio)
	target := roundMoney(initialWithdrawal)

	for year := 1; year <= years; year++ {
		starting := balance
		if year > 1 {
			target = roundMoney(target * (1 + inflationRate))
		}

		withdrawal := target
		if balance <= 0 {
			withdrawal = 0
		} else if balance < target {
			withdrawal = balance
			if !res.RanOutOfMoney {
				res.RanOutOfMoney = true
				depleted := year
				res.DepletionYear = &depleted
			}
		}

		balance = roundMoney((balance - withdrawal) * (1 + annualReturn))
		res.YearlyWithdrawals = append(res.YearlyWithdrawals, yearRecord(year, starting, withdrawal, balance))
	}

	finalizeSimulation(&res)
	return res
}

// SimulateConstantPercentage withdraws a fixed fraction of the current
// balance every year. The withdrawal is always a fraction of whatever is
// left, so this strategy can never run the portfolio to depletion.
func SimulateConstantPercentage(initialPortfolio, withdrawalRate float64, years int, annualReturn float64) model.StrategySimulationResult {
	res := model.StrategySimulationResult{
		Strategy:         StrategyConstantPercentage,
		InitialPortfolio: initialPortfolio,
		Years:            years,
		AnnualReturn:     annualReturn,
	}

	balance := roundMoney(initialPortfolio)

	for year := 1; year <= years; year++ {
		starting := balance
		withdrawal := roundMoney(balance * withdrawalRate)
		balance = roundMoney((balance - withdrawal) * (1 + annualReturn))
		res.YearlyWithdrawals = append(res.YearlyWithdrawals, yearRecord(year, starting, withdrawal, balance))
	}

	finalizeSimulation(&res)
	return res
}

// SimulateGuardrails runs the guardrails strategy. Each year splits into
// two sequential steps: withdraw and grow, then decide the next year's
// target from the rate just realized. A realized rate above the floor
// guardrail cuts next year's target; a rate below the ceiling guardrail
// raises it. The adjustment always uses the current year's rate, never
// the following year's balance.
func SimulateGuardrails(initialPortfolio float64, years int, annualReturn float64, cfg model.GuardrailsConfig) model.StrategySimulationResult {
	res := model.StrategySimulationResult{
		Strategy:         StrategyGuardrails,
		InitialPortfolio: initialPortfolio,
		Years:            years,
		AnnualReturn:     annualReturn,
	}

	balance := roundMoney(initialPortfolio)
	target := roundMoney(initialPortfolio * cfg.InitialRate)

	for year := 1; year <= years; year++ {
		starting := balance

		withdrawal := target
		if balance <= 0 {
			withdrawal = 0
		} else if balance < target {
			withdrawal = balance
			if !res.RanOutOfMoney {
				res.RanOutOfMoney = true
				depleted := year
				res.DepletionYear = &depleted
			}
		}

		var rate float64
		if starting > 0 {
			rate = withdrawal / starting
		}

		balance = roundMoney((balance - withdrawal) * (1 + annualReturn))

		switch {
		case rate > cfg.FloorGuardrail:
			target = roundMoney(target * (1 - cfg.AdjustmentPercent))
		case rate < cfg.CeilingGuardrail:
			target = roundMoney(target * (1 + cfg.AdjustmentPercent))
		}

		res.YearlyWithdrawals = append(res.YearlyWithdrawals, yearRecord(year, starting, withdrawal, balance))
	}

	finalizeSimulation(&res)
	return res
}

// CompareStrategies runs all three executable strategies against the same
// portfolio, horizon, and return: constant dollar seeded with a year of
// expenses and default inflation, constant percentage at a fixed 4%, and
// guardrails with the default config.
func CompareStrategies(initialPortfolio float64, years int, annualReturn, monthlyExpenses float64) []model.StrategySimulationResult {
	return []model.StrategySimulationResult{
		SimulateConstantDollar(initialPortfolio, monthlyExpenses*12, years, annualReturn, DefaultInflationRate),
		SimulateConstantPercentage(initialPortfolio, 0.04, years, annualReturn),
		SimulateGuardrails(initialPortfolio, years, annualReturn, DefaultGuardrailsConfig()),
	}
}

func yearRecord(year int, starting, withdrawal, ending float64) model.YearlyWithdrawal {
	var rate float64
	if starting > 0 {
		rate = withdrawal / starting
	}
	return model.YearlyWithdrawal{
		Year:            year,
		StartingBalance: starting,
		Withdrawal:      withdrawal,
		EndingBalance:   ending,
		WithdrawalRate:  rate,
	}
}

func finalizeSimulation(res *model.StrategySimulationResult) {
	if len(res.YearlyWithdrawals) == 0 {
		return
	}

	min := res.YearlyWithdrawals[0].Withdrawal
	max := min
	var total float64
	for _, y := range res.YearlyWithdrawals {
		total += y.Withdrawal
		if y.Withdrawal < min {
			min = y.Withdrawal
		}
		if y.Withdrawal > max {
			max = y.Withdrawal
		}
	}

	res.TotalWithdrawn = roundMoney(total)
	res.FinalBalance = res.YearlyWithdrawals[len(res.YearlyWithdrawals)-1].EndingBalance
	res.AverageWithdrawal = roundMoney(total / float64(len(res.YearlyWithdrawals)))
	res.MinWithdrawal = min
	res.MaxWithdrawal = max
}
