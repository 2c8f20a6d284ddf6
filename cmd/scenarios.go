package cmd

import (
	"github.com/spf13/cobra"

	"debt-tracker/domain"
	"debt-tracker/service"
)

var (
	flagMinExtra float64
	flagMaxExtra float64
	flagStep     float64
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Sweep extra monthly payments and show months and interest saved",
	RunE:  runScenarios,
}

func init() {
	scenariosCmd.Flags().StringVarP(&flagDebtsFile, "file", "f", "", "JSON file with the debts (- for stdin)")
	scenariosCmd.Flags().StringVarP(&flagStrategy, "strategy", "s", "avalanche", "avalanche or snowball")
	scenariosCmd.Flags().Float64Var(&flagIncome, "income", 0, "Annual income, used for the recommended extra payment")
	scenariosCmd.Flags().Float64Var(&flagMinExtra, "min", 0, "Smallest extra payment")
	scenariosCmd.Flags().Float64Var(&flagMaxExtra, "max", 500, "Largest extra payment")
	scenariosCmd.Flags().Float64Var(&flagStep, "step", service.DefaultScenarioStep, "Increment between scenarios")

	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(cmd *cobra.Command, _ []string) error {
	strategy, err := domain.ParseStrategy(flagStrategy)
	if err != nil {
		return err
	}
	debts, err := readDebts(flagDebtsFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	scenarios, err := service.ExtraPaymentScenarios(debts, strategy, flagMinExtra, flagMaxExtra, flagStep)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), domain.ExtraPaymentScenarioResult{
		Strategy:    strategy,
		Recommended: service.RecommendedExtraPayment(flagIncome, debts),
		Scenarios:   scenarios,
	})
}
