package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"debt-tracker/domain"
	"debt-tracker/repository"
	"debt-tracker/service"
)

var (
	flagDebtsFile string
	flagExtra     float64
	flagStrategy  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a payoff plan for one strategy",
	RunE:  runSimulate,
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare avalanche and snowball for the same debts",
	RunE:  runCompare,
}

func init() {
	for _, c := range []*cobra.Command{simulateCmd, compareCmd} {
		c.Flags().StringVarP(&flagDebtsFile, "file", "f", "", "JSON file with the debts (- for stdin)")
		c.Flags().Float64Var(&flagExtra, "extra", 0, "Extra monthly payment")
	}
	simulateCmd.Flags().StringVarP(&flagStrategy, "strategy", "s", "avalanche", "avalanche or snowball")

	rootCmd.AddCommand(simulateCmd, compareCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	strategy, err := domain.ParseStrategy(flagStrategy)
	if err != nil {
		return err
	}
	if flagExtra < 0 {
		return fmt.Errorf("--extra must not be negative")
	}
	debts, err := readDebts(flagDebtsFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), service.Simulate(debts, flagExtra, strategy))
}

func runCompare(cmd *cobra.Command, _ []string) error {
	if flagExtra < 0 {
		return fmt.Errorf("--extra must not be negative")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	debts, err := readDebts(flagDebtsFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer func() { _ = log.Sync() }()

	payoff := service.NewPayoffService(
		repository.NoopCache{},
		service.NewExplanationService(cfg.Explanation, log),
		log,
	)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return render(cmd.OutOrStdout(), payoff.Compare(ctx, debts, flagExtra))
}
