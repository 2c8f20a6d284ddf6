package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"debt-tracker/domain"
)

const (
	outputJSON  = "json"
	outputTable = "table"
)

var flagOutput string

var (
	colorBorder = lipgloss.Color("#575653")
	colorAccent = lipgloss.Color("#3AA99F")
	colorWarn   = lipgloss.Color("#DA702C")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
)

// render writes v as indented JSON or, with --output table, as bordered
// tables for the result types the CLI produces.
func render(w io.Writer, v any) error {
	switch flagOutput {
	case "", outputJSON:
		return printJSON(w, v)
	case outputTable:
	default:
		return fmt.Errorf("unknown --output %q (json or table)", flagOutput)
	}

	var out string
	switch result := v.(type) {
	case domain.SimulationResult:
		out = renderSimulation(result)
	case domain.Comparison:
		out = renderComparison(result)
	case domain.HealthScore:
		out = renderHealth(result)
	case domain.ExtraPaymentScenarioResult:
		out = renderScenarios(result)
	default:
		return printJSON(w, v)
	}
	_, err := io.WriteString(w, out)
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func renderSimulation(result domain.SimulationResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s plan", result.Strategy)))
	b.WriteString("\n")

	t := newTable("Debt", "Balance", "Months", "Interest", "Remaining")
	for _, entry := range result.PayoffPlan {
		t.Row(entry.Name, money(entry.OriginalBalance), strconv.Itoa(entry.MonthsToPayoff),
			money(entry.TotalInterest), money(entry.RemainingBalance))
	}
	b.WriteString(t.Render())
	b.WriteString("\n")

	fmt.Fprintf(&b, "months %d  interest %s  paid %s  monthly savings %s\n",
		result.TotalMonths, money(result.TotalInterest), money(result.TotalPaid), money(result.MonthlySavings))
	for _, entry := range result.PayoffPlan {
		if entry.RemainingBalance > 0 {
			b.WriteString(warnStyle.Render(fmt.Sprintf("%s is still open after %d months", entry.Name, result.TotalMonths)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderComparison(comparison domain.Comparison) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("avalanche vs snowball"))
	b.WriteString("\n")

	t := newTable("Strategy", "Months", "Interest", "Paid")
	for _, result := range []domain.SimulationResult{comparison.Avalanche, comparison.Snowball} {
		t.Row(result.Strategy.String(), strconv.Itoa(result.TotalMonths), money(result.TotalInterest), money(result.TotalPaid))
	}
	b.WriteString(t.Render())
	b.WriteString("\n")

	fmt.Fprintf(&b, "recommended %s  interest saved %s  months saved %d\n",
		comparison.Recommended, money(comparison.Savings.InterestSaved), comparison.Savings.MonthsSaved)
	if comparison.Explanation != "" {
		b.WriteString(comparison.Explanation)
		b.WriteString("\n")
	}
	return b.String()
}

func renderHealth(score domain.HealthScore) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("health %d/%d %s", score.Score, score.MaxScore, score.Level)))
	b.WriteString("\n")

	t := newTable("Category", "Score", "Status")
	for _, category := range domain.HealthCategories {
		c := score.Breakdown[category]
		t.Row(category, fmt.Sprintf("%d/%d", c.Score, c.Max), string(c.Status))
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

func renderScenarios(result domain.ExtraPaymentScenarioResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s extra payment scenarios", result.Strategy)))
	b.WriteString("\n")

	t := newTable("Extra", "Months", "Interest", "Paid", "Interest saved", "Months saved")
	for _, s := range result.Scenarios {
		t.Row(money(s.ExtraPayment), strconv.Itoa(s.TotalMonths), money(s.TotalInterest),
			money(s.TotalPaid), money(s.InterestSaved), strconv.Itoa(s.MonthsSaved))
	}
	b.WriteString(t.Render())
	b.WriteString("\n")

	fmt.Fprintf(&b, "recommended extra payment %s\n", money(result.Recommended))
	return b.String()
}
