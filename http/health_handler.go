package http

import (
	"net/http"

	"go.uber.org/zap"

	"debt-tracker/domain"
	"debt-tracker/service"
)

type HealthHandler struct {
	service *service.HealthService
	logger  *zap.Logger
}

func NewHealthHandler(service *service.HealthService, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{service: service, logger: logger}
}

func (h *HealthHandler) Score(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req healthRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	score := h.service.Score(domain.FinancialSnapshot{
		Debts:           toDomainDebts(req.Debts),
		Income:          req.Income,
		Savings:         req.Savings,
		MonthlyExpenses: req.MonthlyExpenses,
	})
	writeJSON(w, h.logger, http.StatusOK, score)
}
