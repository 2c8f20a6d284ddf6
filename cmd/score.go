package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"debt-tracker/domain"
	"debt-tracker/service"
)

var (
	flagIncome   float64
	flagSavings  float64
	flagExpenses float64
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the 0-100 financial health score",
	Long:  "Compute the financial health score. --income is annual, --expenses is monthly and excludes debt payments.",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&flagDebtsFile, "file", "f", "", "JSON file with the debts (- for stdin)")
	scoreCmd.Flags().Float64Var(&flagIncome, "income", 0, "Annual income")
	scoreCmd.Flags().Float64Var(&flagSavings, "savings", 0, "Emergency savings")
	scoreCmd.Flags().Float64Var(&flagExpenses, "expenses", 0, "Monthly expenses excluding debt payments")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if flagIncome < 0 || flagSavings < 0 || flagExpenses < 0 {
		return fmt.Errorf("--income, --savings and --expenses must not be negative")
	}

	var debts []domain.Debt
	if flagDebtsFile != "" {
		var err error
		if debts, err = readDebts(flagDebtsFile, cmd.InOrStdin()); err != nil {
			return err
		}
	}

	return render(cmd.OutOrStdout(), service.ScoreSnapshot(domain.FinancialSnapshot{
		Debts:           debts,
		Income:          flagIncome,
		Savings:         flagSavings,
		MonthlyExpenses: flagExpenses,
	}))
}
