package utils

import "math"

// Currency is the only currency the payment processor is configured for.
const Currency = "INR"

// RoundMoney rounds an amount to the currency's minor-unit precision
// (two decimals).
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ToMinorUnits converts a major-unit amount to the processor's minor-unit
// convention (rupees to paise).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
