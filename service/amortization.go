package service

import (
	"math"

	"debt-tracker/domain"
)

// minimumOnlyMonths estima en forma cerrada cuántos meses tarda una deuda
// pagando solo el mínimo
func minimumOnlyMonths(debt domain.Debt) float64 {
	monthlyRate := (debt.Rate / 100) / 12
	if monthlyRate == 0 {
		return debt.Balance / debt.MinimumPayment
	}
	return math.Log(1+(debt.Balance*monthlyRate)/debt.MinimumPayment) /
		math.Log(1+monthlyRate)
}

// minimumOnlyCost suma lo pagado por cada deuda por separado con solo mínimos
func minimumOnlyCost(debts []domain.Debt) float64 {
	total := 0.0
	for _, debt := range debts {
		total += debt.MinimumPayment * minimumOnlyMonths(debt)
	}
	return total
}

// RecommendedExtraPayment sugiere destinar el 20% del ingreso mensual que
// queda libre tras los pagos mínimos. income es anual.
func RecommendedExtraPayment(income float64, debts []domain.Debt) float64 {
	monthlyIncome := finiteOrZero(income) / 12
	available := monthlyIncome - monthlyDebtPayments(debts)
	return roundTo2Decimals(math.Max(0, available*RecommendedExtraShare))
}

func monthlyDebtPayments(debts []domain.Debt) float64 {
	total := 0.0
	for _, debt := range debts {
		total += finiteOrZero(debt.MinimumPayment)
	}
	return total
}
