package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"debt-tracker/domain"
	"debt-tracker/service"
)

type PayoffHandler struct {
	service *service.PayoffService
	logger  *zap.Logger
}

func NewPayoffHandler(service *service.PayoffService, logger *zap.Logger) *PayoffHandler {
	return &PayoffHandler{service: service, logger: logger}
}

func (h *PayoffHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req simulateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	strategy, err := domain.ParseStrategy(req.Strategy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := h.service.Simulate(r.Context(), toDomainDebts(req.Debts), req.ExtraPayment, strategy)
	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *PayoffHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req compareRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comparison := h.service.Compare(r.Context(), toDomainDebts(req.Debts), req.ExtraPayment)
	writeJSON(w, h.logger, http.StatusOK, comparison)
}

func (h *PayoffHandler) Scenarios(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req scenariosRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	strategy, err := domain.ParseStrategy(req.Strategy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Scenarios(r.Context(), service.ScenarioInput{
		Debts:    toDomainDebts(req.Debts),
		Strategy: strategy,
		Income:   req.Income,
		MinExtra: req.MinExtra,
		MaxExtra: req.MaxExtra,
		Step:     req.Step,
	})
	if errors.Is(err, service.ErrInvalidScenarioRange) || errors.Is(err, service.ErrTooManyScenarios) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("extra payment scenarios failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}
