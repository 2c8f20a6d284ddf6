package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"debt-tracker/domain"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

type debtRequest struct {
	ID             string  `json:"id,omitempty" validate:"max=64"`
	Name           string  `json:"name" validate:"max=120"`
	Type           string  `json:"type,omitempty" validate:"max=60"`
	Balance        float64 `json:"balance" validate:"lte=100000000"`
	Rate           float64 `json:"rate" validate:"lte=1000"`
	MinimumPayment float64 `json:"minimumPayment" validate:"lte=100000000"`
}

type simulateRequest struct {
	Debts        []debtRequest `json:"debts" validate:"max=50,dive"`
	ExtraPayment float64       `json:"extraPayment" validate:"gte=0,lte=10000000"`
	Strategy     string        `json:"strategy" validate:"omitempty,oneof=avalanche snowball"`
}

type compareRequest struct {
	Debts        []debtRequest `json:"debts" validate:"max=50,dive"`
	ExtraPayment float64       `json:"extraPayment" validate:"gte=0,lte=10000000"`
}

type scenariosRequest struct {
	Debts    []debtRequest `json:"debts" validate:"max=50,dive"`
	Strategy string        `json:"strategy" validate:"omitempty,oneof=avalanche snowball"`
	Income   float64       `json:"income" validate:"gte=0"`
	MinExtra float64       `json:"minExtra" validate:"gte=0"`
	MaxExtra float64       `json:"maxExtra" validate:"gtefield=MinExtra,lte=10000000"`
	Step     float64       `json:"step" validate:"gte=0"`
}

type healthRequest struct {
	Income          float64       `json:"income" validate:"gte=0"`
	Debts           []debtRequest `json:"debts" validate:"max=50,dive"`
	Savings         float64       `json:"savings" validate:"gte=0"`
	MonthlyExpenses float64       `json:"monthlyExpenses" validate:"gte=0"`
}

type goalRequest struct {
	ID            string  `json:"id,omitempty" validate:"max=64"`
	Title         string  `json:"title" validate:"required,max=120"`
	Description   string  `json:"description,omitempty" validate:"max=500"`
	Category      string  `json:"category" validate:"max=60"`
	TargetAmount  float64 `json:"targetAmount" validate:"gte=0"`
	CurrentAmount float64 `json:"currentAmount" validate:"gte=0"`
	Priority      string  `json:"priority,omitempty" validate:"max=20"`
}

type saveSnapshotRequest struct {
	Debts    []debtRequest    `json:"debts" validate:"max=50,dive"`
	Goals    []goalRequest    `json:"goals" validate:"max=100,dive"`
	Income   float64          `json:"income" validate:"gte=0"`
	Settings *domain.Settings `json:"settings"`
}

func toDomainDebts(debts []debtRequest) []domain.Debt {
	out := make([]domain.Debt, len(debts))
	for i, d := range debts {
		out[i] = domain.Debt{
			ID:             d.ID,
			Name:           d.Name,
			Type:           d.Type,
			Balance:        d.Balance,
			Rate:           d.Rate,
			MinimumPayment: d.MinimumPayment,
		}
	}
	return out
}

func (r saveSnapshotRequest) toBackupData() domain.BackupData {
	goals := make([]domain.Goal, len(r.Goals))
	for i, g := range r.Goals {
		goals[i] = domain.Goal{
			ID:            g.ID,
			Title:         g.Title,
			Description:   g.Description,
			Category:      g.Category,
			TargetAmount:  g.TargetAmount,
			CurrentAmount: g.CurrentAmount,
			Priority:      g.Priority,
		}
	}
	settings := domain.DefaultSettings()
	if r.Settings != nil {
		settings = *r.Settings
	}
	return domain.BackupData{
		Debts:    toDomainDebts(r.Debts),
		Goals:    goals,
		Income:   r.Income,
		Settings: settings,
	}
}

// decodeJSON lee y valida el cuerpo; escribe la respuesta de error y
// devuelve false si algo falla
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		http.Error(w, validationMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return "invalid request"
	}
	problems := make([]string, 0, len(invalid))
	for _, fe := range invalid {
		if fe.Param() != "" {
			problems = append(problems, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			problems = append(problems, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return "validation failed: " + strings.Join(problems, "; ")
}

// writeJSON codifica en buffer primero para no escribir el header si falla
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("error encoding response", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("error writing response", zap.Error(err))
	}
}
