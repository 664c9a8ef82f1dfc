package calculator

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnRate computes the percentage change from buy to sell:
// (sell - buy) / buy * 100. A zero buy price yields 0, not an error.
func ReturnRate(buy, sell decimal.Decimal) float64 {
	if buy.IsZero() {
		return 0
	}
	rate, _ := sell.Sub(buy).Div(buy).Mul(decimal.NewFromInt(100)).Float64()
	return rate
}

// PredictionAccuracy scores a predicted price against the realized one:
// 100 - |actual - predicted| / actual * 100, floored at 0. A prediction
// far off in either direction drives the score toward zero; equality
// gives exactly 100. A zero actual price yields 0.
func PredictionAccuracy(actual, predicted decimal.Decimal) float64 {
	if actual.IsZero() {
		return 0
	}
	miss, _ := actual.Sub(predicted).Abs().Div(actual).Mul(decimal.NewFromInt(100)).Float64()
	accuracy := 100 - miss
	if accuracy < 0 {
		return 0
	}
	return accuracy
}

// ProfitLoss returns sell - buy, signed.
func ProfitLoss(buy, sell decimal.Decimal) decimal.Decimal {
	return sell.Sub(buy)
}

// PeriodDays returns the elapsed whole calendar days between two dates,
// never negative.
func PeriodDays(start, end time.Time) int {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	s := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	days := int(e.Sub(s).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
