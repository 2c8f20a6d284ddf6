package service

import (
	"go.uber.org/zap"

	"debt-tracker/domain"
	"debt-tracker/metrics"
)

// HealthService puntúa fotos financieras y registra el nivel resultante
type HealthService struct {
	logger *zap.Logger
}

func NewHealthService(logger *zap.Logger) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{logger: logger}
}

func (s *HealthService) Score(snapshot domain.FinancialSnapshot) domain.HealthScore {
	score := ScoreSnapshot(snapshot)
	metrics.HealthScoresTotal.WithLabelValues(string(score.Level)).Inc()
	s.logger.Debug("health score computed",
		zap.Int("score", score.Score),
		zap.String("level", string(score.Level)),
		zap.Int("debts", len(snapshot.Debts)),
	)
	return score
}
