package domain

type HealthLevel string

const (
	HealthPoor      HealthLevel = "Poor"
	HealthFair      HealthLevel = "Fair"
	HealthGood      HealthLevel = "Good"
	HealthExcellent HealthLevel = "Excellent"
)

// Categorías del desglose
const (
	CategoryIncome          = "income"
	CategoryDebt            = "debt"
	CategoryEmergency       = "emergency"
	CategorySavings         = "savings"
	CategoryDiversification = "diversification"
)

// HealthCategories lista las categorías en orden de presentación
var HealthCategories = []string{
	CategoryIncome,
	CategoryDebt,
	CategoryEmergency,
	CategorySavings,
	CategoryDiversification,
}

type CategoryScore struct {
	Score  int         `json:"score"`
	Max    int         `json:"max"`
	Status HealthLevel `json:"status"`
}

type HealthScore struct {
	Score     int                      `json:"score"`
	MaxScore  int                      `json:"maxScore"`
	Level     HealthLevel              `json:"level"`
	Breakdown map[string]CategoryScore `json:"breakdown"`
}

// FinancialSnapshot es la entrada inmutable del puntaje de salud. Income es
// anual; MonthlyExpenses no incluye los pagos mínimos de deudas.
type FinancialSnapshot struct {
	Debts           []Debt  `json:"debts"`
	Income          float64 `json:"income"`
	Savings         float64 `json:"savings"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
}
