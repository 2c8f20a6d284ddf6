package service

import (
	"math"
	"sort"

	"debt-tracker/domain"
)

type workingDebt struct {
	domain.Debt
	balance        float64
	interest       float64
	monthsToPayoff int
}

// Simulate corre mes a mes el pago de las deudas con la estrategia dada y
// envía todo el extraPayment a la primera deuda con saldo de cada mes. Las
// deudas inválidas se ignoran; el ciclo se corta en MaxPayoffMonths.
func Simulate(
	debts []domain.Debt,
	extraPayment float64,
	strategy domain.Strategy,
) domain.SimulationResult {

	valid := validDebts(debts)
	if len(valid) == 0 {
		return emptyResult(strategy)
	}
	if !isFinite(extraPayment) || extraPayment < 0 {
		extraPayment = 0
	}

	ordered := orderDebts(valid, strategy)
	working := make([]workingDebt, len(ordered))
	for i, debt := range ordered {
		working[i] = workingDebt{Debt: debt, balance: debt.Balance}
	}

	totalInterest := 0.0
	totalPaid := 0.0
	month := 0

	for month < MaxPayoffMonths && hasOutstanding(working) {
		month++

		// Pagos mínimos en orden de estrategia
		for i := range working {
			debt := &working[i]
			if debt.balance <= 0 {
				continue
			}
			interest := debt.balance * (debt.Rate / 100) / 12
			// Sin recorte en cero: si el interés supera el mínimo el saldo crece
			principal := math.Min(debt.MinimumPayment-interest, debt.balance)
			totalPaid += debt.MinimumPayment

			// Un saldo que ya no cabe en float64 queda congelado en su último
			// valor finito hasta el tope de meses
			if !isFinite(debt.balance-principal) || !isFinite(totalInterest+interest) {
				continue
			}

			debt.balance -= principal
			debt.interest += interest
			totalInterest += interest

			if debt.balance <= 0 {
				debt.balance = 0
				debt.monthsToPayoff = month
			}
		}

		if extraPayment <= 0 {
			continue
		}

		// Todo el pago extra va a la primera deuda con saldo
		for i := range working {
			target := &working[i]
			if target.balance <= 0 {
				continue
			}
			applied := math.Min(extraPayment, target.balance)
			target.balance -= applied
			totalPaid += applied
			if target.balance <= 0 {
				target.balance = 0
				target.monthsToPayoff = month
			}
			break
		}
	}

	baseline := minimumOnlyCost(valid)
	monthlySavings := finiteOrZero(math.Max(0, (baseline-totalPaid)/math.Max(1, float64(month))))

	plan := make([]domain.PayoffEntry, len(working))
	for i, debt := range working {
		plan[i] = domain.PayoffEntry{
			Name:             debt.Name,
			OriginalBalance:  debt.Balance,
			MonthsToPayoff:   debt.monthsToPayoff,
			TotalInterest:    roundTo2Decimals(debt.interest),
			RemainingBalance: roundTo2Decimals(debt.balance),
		}
	}

	return domain.SimulationResult{
		Strategy:       strategy,
		TotalMonths:    month,
		TotalInterest:  roundTo2Decimals(totalInterest),
		TotalPaid:      roundTo2Decimals(totalPaid),
		PayoffPlan:     plan,
		MonthlySavings: roundTo2Decimals(monthlySavings),
	}
}

func emptyResult(strategy domain.Strategy) domain.SimulationResult {
	return domain.SimulationResult{
		Strategy:   strategy,
		PayoffPlan: []domain.PayoffEntry{},
	}
}

// IsValidDebt indica si una deuda participa en la simulación
func IsValidDebt(debt domain.Debt) bool {
	return isFinite(debt.Balance) && debt.Balance > 0 &&
		isFinite(debt.Rate) && debt.Rate >= 0 &&
		isFinite(debt.MinimumPayment) && debt.MinimumPayment > 0
}

func validDebts(debts []domain.Debt) []domain.Debt {
	valid := make([]domain.Debt, 0, len(debts))
	for _, debt := range debts {
		if IsValidDebt(debt) {
			valid = append(valid, debt)
		}
	}
	return valid
}

// orderDebts devuelve una copia ordenada; empates conservan el orden original
func orderDebts(debts []domain.Debt, strategy domain.Strategy) []domain.Debt {
	ordered := make([]domain.Debt, len(debts))
	copy(ordered, debts)

	switch strategy {
	case domain.StrategySnowball:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Balance < ordered[j].Balance
		})
	default:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Rate > ordered[j].Rate
		})
	}
	return ordered
}

func hasOutstanding(debts []workingDebt) bool {
	for _, debt := range debts {
		if debt.balance > 0 {
			return true
		}
	}
	return false
}
