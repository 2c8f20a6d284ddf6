package domain

import "time"

const BackupVersion = "1.0"

const GoalCategoryEmergency = "Emergency"

type Goal struct {
	ID            string     `json:"id,omitempty"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Category      string     `json:"category"`
	TargetAmount  float64    `json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	TargetDate    *time.Time `json:"targetDate,omitempty"`
	Priority      string     `json:"priority,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

type Settings struct {
	Currency        string   `json:"currency"`
	DateFormat      string   `json:"dateFormat"`
	Theme           string   `json:"theme"`
	Notifications   bool     `json:"notifications"`
	AutoSave        bool     `json:"autoSave"`
	DefaultStrategy Strategy `json:"defaultStrategy"`
}

func DefaultSettings() Settings {
	return Settings{
		Currency:        "USD",
		DateFormat:      "MM/DD/YYYY",
		Theme:           "light",
		Notifications:   true,
		AutoSave:        true,
		DefaultStrategy: StrategyAvalanche,
	}
}

type BackupData struct {
	Debts    []Debt   `json:"debts"`
	Goals    []Goal   `json:"goals"`
	Income   float64  `json:"income"`
	Settings Settings `json:"settings"`
}

// Backup es el sobre de exportación que se guarda por clave y se intercambia
// al exportar e importar.
type Backup struct {
	ID         string     `json:"id,omitempty"`
	Version    string     `json:"version"`
	ExportDate time.Time  `json:"exportDate"`
	Data       BackupData `json:"data"`
}

func DefaultBackup() Backup {
	return Backup{
		Version: BackupVersion,
		Data: BackupData{
			Debts:    []Debt{},
			Goals:    []Goal{},
			Settings: DefaultSettings(),
		},
	}
}

// MonthlyMinimumPayments suma el pago mínimo de cada deuda guardada
func (d BackupData) MonthlyMinimumPayments() float64 {
	total := 0.0
	for _, debt := range d.Debts {
		total += debt.MinimumPayment
	}
	return total
}

// FinancialSnapshot arma la entrada del puntaje de salud desde los datos
// guardados: el ahorro sale de la primera meta de emergencia y los gastos
// mensuales son los pagos mínimos de las deudas.
func (b Backup) FinancialSnapshot() FinancialSnapshot {
	savings := 0.0
	for _, goal := range b.Data.Goals {
		if goal.Category == GoalCategoryEmergency {
			savings = goal.CurrentAmount
			break
		}
	}
	return FinancialSnapshot{
		Debts:           b.Data.Debts,
		Income:          b.Data.Income,
		Savings:         savings,
		MonthlyExpenses: b.Data.MonthlyMinimumPayments(),
	}
}

type DebtSummary struct {
	TotalDebt           float64 `json:"totalDebt"`
	MonthlyPayments     float64 `json:"monthlyPayments"`
	MonthlyIncome       float64 `json:"monthlyIncome"`
	AvailableCashFlow   float64 `json:"availableCashFlow"`
	DebtCount           int     `json:"debtCount"`
	GoalCount           int     `json:"goalCount"`
	CompletedGoals      int     `json:"completedGoals"`
	GoalProgressPct     float64 `json:"goalProgressPct"`
	RecommendedExtra    float64 `json:"recommendedExtraPayment"`
	HighestRateDebt     string  `json:"highestRateDebt,omitempty"`
	SmallestBalanceDebt string  `json:"smallestBalanceDebt,omitempty"`
}
