package service

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"debt-tracker/domain"
)

var (
	ErrInvalidScenarioRange = errors.New("invalid extra payment range")
	ErrTooManyScenarios     = fmt.Errorf("extra payment range exceeds %d scenarios", MaxExtraPaymentScenarios)
)

// ScenarioInput describe un barrido de pagos extra. Income es anual y solo
// alimenta el pago extra recomendado.
type ScenarioInput struct {
	Debts    []domain.Debt
	Strategy domain.Strategy
	Income   float64
	MinExtra float64
	MaxExtra float64
	Step     float64
}

// CompareStrategies corre avalanche y snowball en paralelo sobre las mismas
// deudas e informa cuánto ahorra el plan más barato.
func CompareStrategies(debts []domain.Debt, extraPayment float64) domain.Comparison {
	var avalanche, snowball domain.SimulationResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		avalanche = Simulate(debts, extraPayment, domain.StrategyAvalanche)
	}()
	go func() {
		defer wg.Done()
		snowball = Simulate(debts, extraPayment, domain.StrategySnowball)
	}()
	wg.Wait()

	return buildComparison(avalanche, snowball)
}

func buildComparison(avalanche, snowball domain.SimulationResult) domain.Comparison {
	comparison := domain.Comparison{
		Avalanche:   avalanche,
		Snowball:    snowball,
		Recommended: domain.StrategyAvalanche,
	}
	// Empate en intereses favorece avalanche
	if snowball.TotalInterest < avalanche.TotalInterest {
		comparison.Recommended = domain.StrategySnowball
	}
	comparison.Savings.InterestSaved = roundTo2Decimals(
		math.Max(0, snowball.TotalInterest-avalanche.TotalInterest),
	)
	comparison.Savings.MonthsSaved = snowball.TotalMonths - avalanche.TotalMonths
	return comparison
}

// ExtraPaymentScenarios simula cada pago extra de minExtra a maxExtra en
// incrementos de step (DefaultScenarioStep cuando step es 0). El ahorro se
// mide contra el primer escenario del rango.
func ExtraPaymentScenarios(
	debts []domain.Debt,
	strategy domain.Strategy,
	minExtra, maxExtra, step float64,
) ([]domain.ExtraPaymentScenario, error) {

	if step == 0 {
		step = DefaultScenarioStep
	}
	if !isFinite(minExtra) || !isFinite(maxExtra) || !isFinite(step) ||
		minExtra < 0 || maxExtra < minExtra || step < 0 {
		return nil, ErrInvalidScenarioRange
	}

	// Validar el tamaño del rango en float antes de convertir a int: un paso
	// diminuto desborda la conversión
	span := (maxExtra-minExtra)/step + 1e-9
	if !isFinite(span) || span >= MaxExtraPaymentScenarios {
		return nil, ErrTooManyScenarios
	}
	count := int(math.Floor(span)) + 1

	scenarios := make([]domain.ExtraPaymentScenario, 0, count)
	var base domain.SimulationResult
	for i := 0; i < count; i++ {
		extra := roundTo2Decimals(minExtra + float64(i)*step)
		result := Simulate(debts, extra, strategy)
		if i == 0 {
			base = result
		}
		scenarios = append(scenarios, domain.ExtraPaymentScenario{
			ExtraPayment:  extra,
			TotalMonths:   result.TotalMonths,
			TotalInterest: result.TotalInterest,
			TotalPaid:     result.TotalPaid,
			InterestSaved: roundTo2Decimals(math.Max(0, base.TotalInterest-result.TotalInterest)),
			MonthsSaved:   base.TotalMonths - result.TotalMonths,
		})
	}
	return scenarios, nil
}
