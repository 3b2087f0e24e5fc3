package kernel

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the number of decimal places kept on currency fields.
const CurrencyPlaces = 2

var (
	// PlaceholderPriceMin and PlaceholderPriceMax bound the price substituted for a
	// product missing from the catalog: [min, max).
	PlaceholderPriceMin = decimal.NewFromInt(5)
	PlaceholderPriceMax = decimal.NewFromInt(50)
)

// RoundCurrency rounds half away from zero to CurrencyPlaces.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// PlaceholderPrice draws a whole-cent price in [PlaceholderPriceMin, PlaceholderPriceMax).
// The generator is injected so a fixed seed gives a reproducible price.
func PlaceholderPrice(r *rand.Rand) decimal.Decimal {
	minCents := PlaceholderPriceMin.Shift(CurrencyPlaces).IntPart()
	maxCents := PlaceholderPriceMax.Shift(CurrencyPlaces).IntPart()
	cents := minCents + r.Int64N(maxCents-minCents) //nolint:gosec // placeholder data, not security relevant
	return decimal.New(cents, -CurrencyPlaces)
}
