package domain

import (
	"fmt"
	"strings"
)

type Debt struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	Type           string  `json:"type,omitempty"`
	Balance        float64 `json:"balance"`
	Rate           float64 `json:"rate"` // annual percentage, 18.5 means 18.5%
	MinimumPayment float64 `json:"minimumPayment"`
}

// Strategy es el orden de pago que decide qué deuda recibe el pago extra
// cada mes.
type Strategy int

const (
	StrategyAvalanche Strategy = iota // highest rate first
	StrategySnowball                  // smallest balance first
)

func ParseStrategy(value string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "avalanche", "":
		return StrategyAvalanche, nil
	case "snowball":
		return StrategySnowball, nil
	}
	return StrategyAvalanche, fmt.Errorf("unknown payoff strategy %q", value)
}

func (s Strategy) String() string {
	if s == StrategySnowball {
		return "snowball"
	}
	return "avalanche"
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type PayoffEntry struct {
	Name            string  `json:"name"`
	OriginalBalance float64 `json:"originalBalance"`
	MonthsToPayoff  int     `json:"monthsToPayoff"`
	TotalInterest   float64 `json:"totalInterest"`
	// RemainingBalance solo es distinto de cero cuando la simulación llegó al
	// tope de meses antes de saldar esta deuda
	RemainingBalance float64 `json:"remainingBalance"`
}

type SimulationResult struct {
	Strategy       Strategy      `json:"strategy"`
	TotalMonths    int           `json:"totalMonths"`
	TotalInterest  float64       `json:"totalInterest"`
	TotalPaid      float64       `json:"totalPaid"`
	PayoffPlan     []PayoffEntry `json:"payoffPlan"`
	MonthlySavings float64       `json:"monthlySavings"`
}

type Comparison struct {
	Avalanche   SimulationResult `json:"avalanche"`
	Snowball    SimulationResult `json:"snowball"`
	Recommended Strategy         `json:"recommended"`
	Savings     struct {
		InterestSaved float64 `json:"interestSaved"`
		MonthsSaved   int     `json:"monthsSaved"`
	} `json:"savings"`
	Explanation string `json:"explanation,omitempty"`
}

type ExtraPaymentScenario struct {
	ExtraPayment  float64 `json:"extraPayment"`
	TotalMonths   int     `json:"totalMonths"`
	TotalInterest float64 `json:"totalInterest"`
	TotalPaid     float64 `json:"totalPaid"`
	InterestSaved float64 `json:"interestSaved"`
	MonthsSaved   int     `json:"monthsSaved"`
}

type ExtraPaymentScenarioResult struct {
	Strategy    Strategy               `json:"strategy"`
	Recommended float64                `json:"recommendedExtraPayment"`
	Scenarios   []ExtraPaymentScenario `json:"scenarios"`
}
