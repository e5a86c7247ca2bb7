package utils

import "github.com/shopspring/decimal"

// RoundHalfAwayFromZero arredonda para places casas decimais (2.345 -> 2.35, -2.345 -> -2.35)
func RoundHalfAwayFromZero(d decimal.Decimal, places int32) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}

	return d.Round(places)
}

// Mean calcula a média aritmética de sum/count arredondada em places casas
func Mean(sum int64, count int, places int32) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}

	return RoundHalfAwayFromZero(decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(count))), places)
}
