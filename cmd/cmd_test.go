package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debt-tracker/domain"
)

const debtsJSON = `[
	{"name": "Card", "balance": 3000, "rate": 24, "minimumPayment": 90},
	{"name": "Loan", "balance": 800, "rate": 6, "minimumPayment": 40}
]`

func writeDebts(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "debts.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flagOutput = outputJSON
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(debtsJSON))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestReadDebts(t *testing.T) {
	debts, err := readDebts(writeDebts(t, debtsJSON), nil)
	require.NoError(t, err)
	assert.Len(t, debts, 2)

	debts, err = readDebts(writeDebts(t, `{"debts": `+debtsJSON+`}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "Loan", debts[1].Name)

	debts, err = readDebts("-", strings.NewReader(debtsJSON))
	require.NoError(t, err)
	assert.Len(t, debts, 2)

	_, err = readDebts("", nil)
	assert.Error(t, err)

	_, err = readDebts(writeDebts(t, `nope`), nil)
	assert.Error(t, err)
}

func TestReadDebts_RejectsOutOfRangeValues(t *testing.T) {
	_, err := readDebts(writeDebts(t, `[{"name": "Shark", "balance": 1000, "rate": 10000000, "minimumPayment": 10}]`), nil)
	assert.ErrorContains(t, err, "rate must be at most 1000")

	_, err = readDebts(writeDebts(t, `{"debts": [{"name": "Huge", "balance": 1e12, "rate": 5, "minimumPayment": 10}]}`), nil)
	assert.ErrorContains(t, err, "balance must be at most")
}

func TestSimulateCommand(t *testing.T) {
	out, err := run(t, "simulate", "-f", writeDebts(t, debtsJSON), "--extra", "100", "--strategy", "snowball")
	require.NoError(t, err)

	var result domain.SimulationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, domain.StrategySnowball, result.Strategy)
	assert.Equal(t, "Loan", result.PayoffPlan[0].Name)
	assert.Greater(t, result.TotalMonths, 0)
}

func TestSimulateCommand_FromStdin(t *testing.T) {
	out, err := run(t, "simulate", "-f", "-", "--extra", "0", "--strategy", "avalanche")
	require.NoError(t, err)
	assert.Contains(t, out, `"strategy": "avalanche"`)
}

func TestSimulateCommand_RejectsBadInput(t *testing.T) {
	_, err := run(t, "simulate", "-f", writeDebts(t, debtsJSON), "--extra", "0", "--strategy", "random")
	assert.Error(t, err)

	_, err = run(t, "simulate", "-f", writeDebts(t, debtsJSON), "--extra=-5", "--strategy", "avalanche")
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	out, err := run(t, "compare", "-f", writeDebts(t, debtsJSON), "--extra", "150")
	require.NoError(t, err)

	var comparison domain.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &comparison))
	assert.Equal(t, "Card", comparison.Avalanche.PayoffPlan[0].Name)
	assert.Equal(t, "Loan", comparison.Snowball.PayoffPlan[0].Name)
	assert.NotEmpty(t, comparison.Explanation)
}

func TestScoreCommand(t *testing.T) {
	out, err := run(t, "score", "-f", writeDebts(t, debtsJSON), "--income", "60000", "--savings", "7500", "--expenses", "2000")
	require.NoError(t, err)

	var score domain.HealthScore
	require.NoError(t, json.Unmarshal([]byte(out), &score))
	assert.Equal(t, 100, score.MaxScore)
	assert.Equal(t, 25, score.Breakdown[domain.CategoryDebt].Score)
	assert.Equal(t, 10, score.Breakdown[domain.CategoryDiversification].Score)
}

func TestScenariosCommand(t *testing.T) {
	out, err := run(t, "scenarios", "-f", writeDebts(t, debtsJSON), "--strategy", "avalanche",
		"--income", "48000", "--min", "0", "--max", "200", "--step", "100")
	require.NoError(t, err)

	var result domain.ExtraPaymentScenarioResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Scenarios, 3)
	assert.Equal(t, 774.0, result.Recommended)
}

func TestSimulateCommand_TableOutput(t *testing.T) {
	out, err := run(t, "simulate", "-f", writeDebts(t, debtsJSON), "--extra", "100", "--strategy", "avalanche", "-o", "table")
	require.NoError(t, err)

	assert.Contains(t, out, "avalanche plan")
	assert.Contains(t, out, "Card")
	assert.Contains(t, out, "3000.00")
	assert.Less(t, strings.Index(out, "Card"), strings.Index(out, "Loan"))
}

func TestScoreCommand_TableOutput(t *testing.T) {
	out, err := run(t, "score", "--income", "0", "--savings", "0", "--expenses", "0", "-f", "", "-o", "table")
	require.NoError(t, err)

	assert.Contains(t, out, "health 0/100 Poor")
	for _, category := range domain.HealthCategories {
		assert.Contains(t, out, category)
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := run(t, "score", "--income", "1000", "-f", "", "-o", "yaml")
	assert.ErrorContains(t, err, "unknown --output")
}
