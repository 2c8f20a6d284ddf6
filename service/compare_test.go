package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-tracker/domain"
)

func TestCompareStrategies(t *testing.T) {
	debts := samplePortfolio()

	comparison := CompareStrategies(debts, 200)

	assert.Equal(t, Simulate(debts, 200, domain.StrategyAvalanche), comparison.Avalanche)
	assert.Equal(t, Simulate(debts, 200, domain.StrategySnowball), comparison.Snowball)
	assert.Equal(t, domain.StrategyAvalanche, comparison.Recommended)
	assert.GreaterOrEqual(t, comparison.Savings.InterestSaved, 0.0)
	assert.Equal(t,
		comparison.Snowball.TotalMonths-comparison.Avalanche.TotalMonths,
		comparison.Savings.MonthsSaved,
	)
}

func TestBuildComparison_PrefersSnowballWhenCheaper(t *testing.T) {
	avalanche := domain.SimulationResult{Strategy: domain.StrategyAvalanche, TotalInterest: 500, TotalMonths: 20}
	snowball := domain.SimulationResult{Strategy: domain.StrategySnowball, TotalInterest: 450, TotalMonths: 21}

	comparison := buildComparison(avalanche, snowball)

	assert.Equal(t, domain.StrategySnowball, comparison.Recommended)
	assert.Equal(t, 0.0, comparison.Savings.InterestSaved)
	assert.Equal(t, 1, comparison.Savings.MonthsSaved)
}

func TestBuildComparison_TieFavorsAvalanche(t *testing.T) {
	same := domain.SimulationResult{TotalInterest: 100, TotalMonths: 10}

	comparison := buildComparison(same, same)

	assert.Equal(t, domain.StrategyAvalanche, comparison.Recommended)
	assert.Equal(t, 0, comparison.Savings.MonthsSaved)
}

func TestExtraPaymentScenarios(t *testing.T) {
	debts := samplePortfolio()

	scenarios, err := ExtraPaymentScenarios(debts, domain.StrategyAvalanche, 0, 200, 50)

	require.NoError(t, err)
	require.Len(t, scenarios, 5)
	assert.Equal(t, []float64{0, 50, 100, 150, 200}, scenarioExtras(scenarios))
	assert.Equal(t, 0.0, scenarios[0].InterestSaved)
	assert.Equal(t, 0, scenarios[0].MonthsSaved)
	for i := 1; i < len(scenarios); i++ {
		assert.GreaterOrEqual(t, scenarios[i].InterestSaved, scenarios[i-1].InterestSaved)
		assert.GreaterOrEqual(t, scenarios[i].MonthsSaved, scenarios[i-1].MonthsSaved)
	}

	last := Simulate(debts, 200, domain.StrategyAvalanche)
	assert.Equal(t, last.TotalInterest, scenarios[4].TotalInterest)
	assert.Equal(t, last.TotalMonths, scenarios[4].TotalMonths)
}

func TestExtraPaymentScenarios_DefaultStep(t *testing.T) {
	scenarios, err := ExtraPaymentScenarios(samplePortfolio(), domain.StrategySnowball, 100, 200, 0)

	require.NoError(t, err)
	assert.Equal(t, []float64{100, 150, 200}, scenarioExtras(scenarios))
}

func TestExtraPaymentScenarios_InvalidRange(t *testing.T) {
	debts := samplePortfolio()

	_, err := ExtraPaymentScenarios(debts, domain.StrategyAvalanche, 300, 100, 50)
	assert.ErrorIs(t, err, ErrInvalidScenarioRange)

	_, err = ExtraPaymentScenarios(debts, domain.StrategyAvalanche, -10, 100, 50)
	assert.ErrorIs(t, err, ErrInvalidScenarioRange)

	_, err = ExtraPaymentScenarios(debts, domain.StrategyAvalanche, 0, 100, -5)
	assert.ErrorIs(t, err, ErrInvalidScenarioRange)

	_, err = ExtraPaymentScenarios(debts, domain.StrategyAvalanche, 0, 10000, 1)
	assert.ErrorIs(t, err, ErrTooManyScenarios)
}

func TestExtraPaymentScenarios_TinyStepIsRejected(t *testing.T) {
	debts := samplePortfolio()

	for _, step := range []float64{1e-300, 5e-324, 1e-12} {
		assert.NotPanics(t, func() {
			scenarios, err := ExtraPaymentScenarios(debts, domain.StrategyAvalanche, 0, 500, step)
			assert.ErrorIs(t, err, ErrTooManyScenarios, "step %g", step)
			assert.Nil(t, scenarios)
		})
	}
}

func TestExtraPaymentScenarios_ScenarioLimit(t *testing.T) {
	debts := []domain.Debt{{Name: "Card", Balance: 1000, Rate: 12, MinimumPayment: 50}}

	scenarios, err := ExtraPaymentScenarios(debts, domain.StrategyAvalanche, 0, 119, 1)
	require.NoError(t, err)
	assert.Len(t, scenarios, MaxExtraPaymentScenarios)

	_, err = ExtraPaymentScenarios(debts, domain.StrategyAvalanche, 0, 120, 1)
	assert.ErrorIs(t, err, ErrTooManyScenarios)
}

func scenarioExtras(scenarios []domain.ExtraPaymentScenario) []float64 {
	extras := make([]float64, len(scenarios))
	for i, scenario := range scenarios {
		extras[i] = scenario.ExtraPayment
	}
	return extras
}
