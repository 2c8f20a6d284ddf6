package service

const (
	MaxPayoffMonths = 600 // 50 años, guarda de terminación del simulador

	// Parte del ingreso disponible sugerida como pago extra
	RecommendedExtraShare = 0.20

	// Límites del barrido de escenarios de pago extra
	MaxExtraPaymentScenarios = 120
	DefaultScenarioStep      = 50.0

	// Meses de ingreso que cubren un fondo de emergencia completo
	EmergencyFundMonths = 3
)
