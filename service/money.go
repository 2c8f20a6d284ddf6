package service

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundTo2Decimals redondea a centavos, mitad lejos de cero
func roundTo2Decimals(value float64) float64 {
	if !isFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// finiteOrZero convierte NaN e infinitos en 0
func finiteOrZero(value float64) float64 {
	if !isFinite(value) {
		return 0
	}
	return value
}
