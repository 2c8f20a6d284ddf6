package service

import (
	"math"

	"debt-tracker/domain"
)

// Summarize calcula las cifras del tablero para un respaldo guardado
func Summarize(backup domain.Backup) domain.DebtSummary {
	data := backup.Data
	income := finiteOrZero(data.Income)
	monthlyIncome := income / 12
	payments := monthlyDebtPayments(data.Debts)

	totalDebt := 0.0
	for _, debt := range data.Debts {
		totalDebt += math.Max(0, finiteOrZero(debt.Balance))
	}

	summary := domain.DebtSummary{
		TotalDebt:         roundTo2Decimals(totalDebt),
		MonthlyPayments:   roundTo2Decimals(payments),
		MonthlyIncome:     roundTo2Decimals(monthlyIncome),
		AvailableCashFlow: roundTo2Decimals(math.Max(0, monthlyIncome-payments)),
		DebtCount:         len(data.Debts),
		GoalCount:         len(data.Goals),
		RecommendedExtra:  RecommendedExtraPayment(income, data.Debts),
	}

	progress := 0.0
	for _, goal := range data.Goals {
		if goal.CurrentAmount >= goal.TargetAmount {
			summary.CompletedGoals++
		}
		if goal.TargetAmount > 0 {
			progress += math.Min(100, math.Max(0, goal.CurrentAmount/goal.TargetAmount*100))
		} else {
			progress += 100
		}
	}
	if len(data.Goals) > 0 {
		summary.GoalProgressPct = roundTo2Decimals(progress / float64(len(data.Goals)))
	}

	if valid := validDebts(data.Debts); len(valid) > 0 {
		summary.HighestRateDebt = orderDebts(valid, domain.StrategyAvalanche)[0].Name
		summary.SmallestBalanceDebt = orderDebts(valid, domain.StrategySnowball)[0].Name
	}
	return summary
}
