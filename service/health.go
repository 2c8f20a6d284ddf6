package service

import "debt-tracker/domain"

type tier struct {
	min       float64
	inclusive bool
	score     int
	status    domain.HealthLevel
}

var (
	emergencyTiers = []tier{
		{2, true, 20, domain.HealthExcellent},
		{1, true, 15, domain.HealthGood},
		{0.5, true, 10, domain.HealthFair},
		{0, false, 5, domain.HealthPoor},
	}
	savingsTiers = []tier{
		{0.20, true, 20, domain.HealthExcellent},
		{0.15, true, 15, domain.HealthGood},
		{0.10, true, 10, domain.HealthFair},
		{0, false, 5, domain.HealthPoor},
	}
)

// ScoreHealth calcula el puntaje de salud financiera de 0 a 100. income es
// anual, savings es el fondo de emergencia y monthlyExpenses no incluye los
// pagos de deudas. Entradas no finitas cuentan como cero; nunca falla.
func ScoreHealth(
	income float64,
	debts []domain.Debt,
	savings float64,
	monthlyExpenses float64,
) domain.HealthScore {

	income = finiteOrZero(income)
	savings = finiteOrZero(savings)
	monthlyExpenses = finiteOrZero(monthlyExpenses)

	monthlyIncome := income / 12
	payments := monthlyDebtPayments(debts)

	breakdown := make(map[string]domain.CategoryScore, 5)

	// Estabilidad de ingreso (20)
	if income > 0 {
		breakdown[domain.CategoryIncome] = domain.CategoryScore{Score: 20, Max: 20, Status: domain.HealthGood}
	} else {
		breakdown[domain.CategoryIncome] = domain.CategoryScore{Score: 0, Max: 20, Status: domain.HealthPoor}
	}

	// Relación deuda/ingreso (25); sin ingreso cuenta como ratio 1
	debtRatio := 1.0
	if monthlyIncome > 0 {
		debtRatio = payments / monthlyIncome
	}
	switch {
	case debtRatio <= 0.20:
		breakdown[domain.CategoryDebt] = domain.CategoryScore{Score: 25, Max: 25, Status: domain.HealthExcellent}
	case debtRatio <= 0.36:
		breakdown[domain.CategoryDebt] = domain.CategoryScore{Score: 20, Max: 25, Status: domain.HealthGood}
	case debtRatio <= 0.50:
		breakdown[domain.CategoryDebt] = domain.CategoryScore{Score: 10, Max: 25, Status: domain.HealthFair}
	default:
		breakdown[domain.CategoryDebt] = domain.CategoryScore{Score: 0, Max: 25, Status: domain.HealthPoor}
	}

	// Fondo de emergencia (20)
	emergencyRatio := 0.0
	if monthlyIncome > 0 {
		emergencyRatio = savings / (monthlyIncome * EmergencyFundMonths)
	}
	breakdown[domain.CategoryEmergency] = scoreTier(emergencyRatio, 20, emergencyTiers)

	// Tasa de ahorro (20)
	savingsRate := 0.0
	if monthlyIncome > 0 {
		savingsRate = (monthlyIncome - monthlyExpenses - payments) / monthlyIncome
	}
	breakdown[domain.CategorySavings] = scoreTier(savingsRate, 20, savingsTiers)

	// Diversificación (15), solo hay nivel Fair definido
	if len(debts) > 0 && savings > 0 {
		breakdown[domain.CategoryDiversification] = domain.CategoryScore{Score: 10, Max: 15, Status: domain.HealthFair}
	} else {
		breakdown[domain.CategoryDiversification] = domain.CategoryScore{Score: 0, Max: 15, Status: domain.HealthPoor}
	}

	score := 0
	for _, category := range breakdown {
		score += category.Score
	}

	return domain.HealthScore{
		Score:     score,
		MaxScore:  100,
		Level:     healthLevel(score),
		Breakdown: breakdown,
	}
}

// ScoreSnapshot puntúa una foto financiera inmutable
func ScoreSnapshot(snapshot domain.FinancialSnapshot) domain.HealthScore {
	return ScoreHealth(snapshot.Income, snapshot.Debts, snapshot.Savings, snapshot.MonthlyExpenses)
}

func scoreTier(value float64, max int, tiers []tier) domain.CategoryScore {
	for _, t := range tiers {
		if value > t.min || (t.inclusive && value == t.min) {
			return domain.CategoryScore{Score: t.score, Max: max, Status: t.status}
		}
	}
	return domain.CategoryScore{Score: 0, Max: max, Status: domain.HealthPoor}
}

func healthLevel(score int) domain.HealthLevel {
	switch {
	case score >= 80:
		return domain.HealthExcellent
	case score >= 65:
		return domain.HealthGood
	case score >= 50:
		return domain.HealthFair
	}
	return domain.HealthPoor
}
