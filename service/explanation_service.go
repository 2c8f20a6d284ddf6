package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"debt-tracker/config"
	"debt-tracker/domain"
)

const explanationSystemPrompt = "You are a personal finance coach. You explain debt payoff plans in " +
	"plain, encouraging language, quote the exact figures you are given and never invent numbers."

// ExplanationService redacta un resumen breve de una comparación de planes.
// Usa un endpoint de chat compatible con OpenAI cuando hay API key y, si no,
// una plantilla fija.
type ExplanationService struct {
	cfg        config.ExplanationConfig
	httpClient *http.Client
	logger     *zap.Logger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewExplanationService(cfg config.ExplanationConfig, logger *zap.Logger) *ExplanationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExplanationService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: config.GetDuration(cfg.Timeout),
		},
		logger: logger,
	}
}

// ExplainComparison devuelve la explicación de la estrategia recomendada
func (s *ExplanationService) ExplainComparison(ctx context.Context, comparison domain.Comparison) string {
	if !s.cfg.Enabled() {
		return FallbackExplanation(comparison)
	}

	explanation, err := s.callLLM(ctx, comparisonPrompt(comparison))
	if err != nil {
		s.logger.Warn("explanation request failed, using fallback", zap.Error(err))
		return FallbackExplanation(comparison)
	}
	return explanation
}

// FallbackExplanation arma la explicación de plantilla usada sin modelo
func FallbackExplanation(comparison domain.Comparison) string {
	recommended := comparison.Avalanche
	if comparison.Recommended == domain.StrategySnowball {
		recommended = comparison.Snowball
	}

	text := fmt.Sprintf(
		"With the %s strategy you pay $%.2f in interest and clear every debt in %d months (%.1f years). %s",
		comparison.Recommended, recommended.TotalInterest, recommended.TotalMonths,
		float64(recommended.TotalMonths)/12.0, strategyTip(comparison.Recommended),
	)
	if comparison.Savings.InterestSaved > 0 {
		text += fmt.Sprintf(" Compared with snowball, avalanche saves $%.2f in interest.", comparison.Savings.InterestSaved)
	}
	if reachedCap(recommended) {
		text += fmt.Sprintf(" Some balances are still open after %d months: raise the payments on debts whose minimum does not cover the interest.", MaxPayoffMonths)
	}
	return text
}

func strategyTip(strategy domain.Strategy) string {
	if strategy == domain.StrategySnowball {
		return "Paying the smallest balances first gives quick wins that help you stay on track."
	}
	return "Paying the highest rates first keeps the total interest as low as possible."
}

func comparisonPrompt(comparison domain.Comparison) string {
	var debts strings.Builder
	for _, entry := range comparison.Avalanche.PayoffPlan {
		fmt.Fprintf(&debts, "- %s: $%.2f, paid off in %d months, $%.2f interest\n",
			entry.Name, entry.OriginalBalance, entry.MonthsToPayoff, entry.TotalInterest)
	}

	return fmt.Sprintf(`Explain this debt payoff plan in 3-4 sentences.

RECOMMENDED STRATEGY: %s

AVALANCHE (highest rate first): $%.2f interest, %d months
SNOWBALL (smallest balance first): $%.2f interest, %d months
Interest saved by avalanche: $%.2f, months saved: %d

DEBTS:
%s
Explain how the recommended strategy works, why it fits these numbers and give one practical tip to stay on plan.`,
		comparison.Recommended,
		comparison.Avalanche.TotalInterest, comparison.Avalanche.TotalMonths,
		comparison.Snowball.TotalInterest, comparison.Snowball.TotalMonths,
		comparison.Savings.InterestSaved, comparison.Savings.MonthsSaved,
		debts.String(),
	)
}

func (s *ExplanationService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: explanationSystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", errors.New("no response from model")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
