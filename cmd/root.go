package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"debt-tracker/config"
	"debt-tracker/domain"
	"debt-tracker/logger"
)

var (
	flagConfig   string
	flagLogLevel string
)

var validate = validator.New()

var rootCmd = &cobra.Command{
	Use:           "debt-tracker",
	Short:         "Debt payoff simulator and financial health scorer",
	Long:          "Simulate avalanche and snowball payoff plans, score financial health and serve both over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to config.yaml (default: ./configs/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", outputJSON, "Output format: json or table")
}

// loadConfig is the shared config path used by all commands.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *zap.Logger {
	return logger.New(cfg.Logging.Level, cfg.Logging.Format)
}

// readDebts accepts either a bare JSON array of debts or an object with a
// "debts" field. path "-" reads stdin.
func readDebts(path string, stdin io.Reader) ([]domain.Debt, error) {
	if path == "" {
		return nil, fmt.Errorf("a debts file is required (use -f)")
	}

	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading debts: %w", err)
	}

	var debts []domain.Debt
	if err := json.Unmarshal(raw, &debts); err != nil {
		var wrapped struct {
			Debts []domain.Debt `json:"debts"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("parsing debts: %w", err)
		}
		debts = wrapped.Debts
	}

	if err := validateDebts(debts); err != nil {
		return nil, err
	}
	return debts, nil
}

// validateDebts applies the same bounds as the HTTP API.
func validateDebts(debts []domain.Debt) error {
	if err := validate.Var(debts, "max=50"); err != nil {
		return fmt.Errorf("at most 50 debts are supported")
	}
	for i, debt := range debts {
		if err := validate.Var(debt.Balance, "lte=100000000"); err != nil {
			return fmt.Errorf("debt %d (%s): balance must be at most 100000000", i, debt.Name)
		}
		if err := validate.Var(debt.Rate, "lte=1000"); err != nil {
			return fmt.Errorf("debt %d (%s): rate must be at most 1000", i, debt.Name)
		}
		if err := validate.Var(debt.MinimumPayment, "lte=100000000"); err != nil {
			return fmt.Errorf("debt %d (%s): minimumPayment must be at most 100000000", i, debt.Name)
		}
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
