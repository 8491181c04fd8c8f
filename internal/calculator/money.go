package calculator

import "github.com/shopspring/decimal"

// Tolerance is the settlement threshold: an obligation whose remaining value
// is below it counts as paid.
var Tolerance = decimal.New(1, -2)

// MaxAmount is the largest monetary value the ledger accepts. Sums of many
// amounts stay well inside int64 cents.
var MaxAmount = decimal.New(1, 12)

// RoundCents rounds d half away from zero to two decimal places.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// HasCentPrecision reports whether d has no digits below the cent.
func HasCentPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}

// ExceedsMax reports whether d is above MaxAmount.
func ExceedsMax(d decimal.Decimal) bool {
	return d.GreaterThan(MaxAmount)
}

// IsSettled reports whether value-paid is below Tolerance.
func IsSettled(value, paid decimal.Decimal) bool {
	return value.Sub(paid).LessThan(Tolerance)
}
