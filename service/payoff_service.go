package service

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"debt-tracker/domain"
	"debt-tracker/metrics"
	"debt-tracker/repository"
)

// PayoffService envuelve el simulador con caché de resultados, métricas y
// explicaciones del plan.
type PayoffService struct {
	cache       repository.CacheRepository
	explanation *ExplanationService
	logger      *zap.Logger
}

func NewPayoffService(
	cache repository.CacheRepository,
	explanation *ExplanationService,
	logger *zap.Logger,
) *PayoffService {
	if cache == nil {
		cache = repository.NoopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayoffService{
		cache:       cache,
		explanation: explanation,
		logger:      logger,
	}
}

// Simulate devuelve la simulación de pago, desde la caché cuando la misma
// entrada ya se simuló.
func (s *PayoffService) Simulate(
	ctx context.Context,
	debts []domain.Debt,
	extraPayment float64,
	strategy domain.Strategy,
) domain.SimulationResult {

	key, keyErr := simulationCacheKey(debts, extraPayment, strategy)
	if keyErr == nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			var result domain.SimulationResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				metrics.CacheLookups.WithLabelValues("hit").Inc()
				return result
			}
			s.logger.Warn("discarding unreadable cached simulation", zap.String("key", key))
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	result := Simulate(debts, extraPayment, strategy)
	elapsed := time.Since(start)

	metrics.SimulationsTotal.WithLabelValues(strategy.String()).Inc()
	metrics.SimulationDuration.WithLabelValues(strategy.String()).Observe(elapsed.Seconds())
	if reachedCap(result) {
		metrics.SimulationsCapped.WithLabelValues(strategy.String()).Inc()
		s.logger.Warn("payoff simulation reached the period cap",
			zap.String("strategy", strategy.String()),
			zap.Int("months", result.TotalMonths),
		)
	}

	if keyErr != nil {
		return result
	}
	// Guardar en caché (no crítico si falla)
	if payload, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(payload)); err != nil {
			s.logger.Warn("failed to cache simulation", zap.String("key", key), zap.Error(err))
		}
	}
	return result
}

// Compare simula ambas estrategias en paralelo y explica el resultado
func (s *PayoffService) Compare(
	ctx context.Context,
	debts []domain.Debt,
	extraPayment float64,
) domain.Comparison {

	var avalanche, snowball domain.SimulationResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		avalanche = s.Simulate(ctx, debts, extraPayment, domain.StrategyAvalanche)
	}()
	go func() {
		defer wg.Done()
		snowball = s.Simulate(ctx, debts, extraPayment, domain.StrategySnowball)
	}()
	wg.Wait()

	comparison := buildComparison(avalanche, snowball)
	if s.explanation != nil && len(comparison.Avalanche.PayoffPlan) > 0 {
		comparison.Explanation = s.explanation.ExplainComparison(ctx, comparison)
	}
	return comparison
}

// Scenarios barre pagos extra de input.MinExtra a input.MaxExtra
func (s *PayoffService) Scenarios(
	ctx context.Context,
	input ScenarioInput,
) (domain.ExtraPaymentScenarioResult, error) {

	scenarios, err := ExtraPaymentScenarios(
		input.Debts, input.Strategy, input.MinExtra, input.MaxExtra, input.Step,
	)
	if err != nil {
		return domain.ExtraPaymentScenarioResult{}, err
	}
	s.logger.Debug("extra payment scenarios computed",
		zap.String("strategy", input.Strategy.String()),
		zap.Int("count", len(scenarios)),
	)

	return domain.ExtraPaymentScenarioResult{
		Strategy:    input.Strategy,
		Recommended: RecommendedExtraPayment(input.Income, input.Debts),
		Scenarios:   scenarios,
	}, nil
}

// simulationCacheKey identifica una simulación por estrategia y hash de la entrada
func simulationCacheKey(
	debts []domain.Debt,
	extraPayment float64,
	strategy domain.Strategy,
) (string, error) {

	payload, err := json.Marshal(struct {
		Debts        []domain.Debt `json:"debts"`
		ExtraPayment float64       `json:"extraPayment"`
	}{debts, extraPayment})
	if err != nil {
		return "", err
	}
	return "payoff:" + strategy.String() + ":" + strconv.FormatUint(xxhash.Sum64(payload), 16), nil
}

func reachedCap(result domain.SimulationResult) bool {
	if result.TotalMonths < MaxPayoffMonths {
		return false
	}
	for _, entry := range result.PayoffPlan {
		if entry.RemainingBalance > 0 {
			return true
		}
	}
	return false
}
