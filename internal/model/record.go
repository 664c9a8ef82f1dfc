package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AnalysisPeriod is the holding period of a stock-selection experiment.
type AnalysisPeriod string

const (
	Period1Week   AnalysisPeriod = "1w"
	Period1Month  AnalysisPeriod = "1m"
	Period3Months AnalysisPeriod = "3m"
	Period6Months AnalysisPeriod = "6m"
	Period1Year   AnalysisPeriod = "1y"
)

// AnalysisPeriods lists all valid periods in ascending length order.
var AnalysisPeriods = []AnalysisPeriod{
	Period1Week, Period1Month, Period3Months, Period6Months, Period1Year,
}

// Days returns the nominal holding period in calendar days.
func (p AnalysisPeriod) Days() int {
	switch p {
	case Period1Week:
		return 7
	case Period1Month:
		return 30
	case Period3Months:
		return 90
	case Period6Months:
		return 180
	case Period1Year:
		return 365
	}
	return 0
}

// ParseAnalysisPeriod validates a period string from user input.
func ParseAnalysisPeriod(s string) (AnalysisPeriod, error) {
	p := AnalysisPeriod(s)
	if p.Days() == 0 {
		return "", fmt.Errorf("unknown analysis period %q (want 1w, 1m, 3m, 6m or 1y)", s)
	}
	return p, nil
}

// FixedStockRecord is one completed prediction-accuracy experiment:
// the model predicted a price for a fixed stock and the prediction is
// scored against the realized sell price.
type FixedStockRecord struct {
	ID                 int64
	ExecutedAt         time.Time
	ModelID            string
	StockCode          string
	BuyDate            time.Time // resolved trading day
	BuyPrice           decimal.Decimal
	SellDate           time.Time // resolved trading day
	SellPrice          decimal.Decimal
	PredictedPrice     decimal.Decimal
	ProfitLoss         decimal.Decimal
	ReturnRate         float64 // percent
	PredictionAccuracy float64 // percent, [0, 100]
	PeriodDays         int
	Notes              string
}

// SelectionRecord is one completed stock-selection experiment: the model
// picked a stock for a given holding period and is scored on the return.
type SelectionRecord struct {
	ID              int64
	ExecutedAt      time.Time
	Period          AnalysisPeriod
	ModelID         string
	StockCode       string
	SelectionReason string
	BuyDate         time.Time
	BuyPrice        decimal.Decimal
	SellDate        time.Time
	SellPrice       decimal.Decimal
	ProfitLoss      decimal.Decimal
	ReturnRate      float64
	PeriodDays      int
	Notes           string
}

// PendingSelection is a queued selection experiment whose holding period
// has not elapsed yet. It holds only the inputs; the simulation runs once
// the derived sell date has passed.
type PendingSelection struct {
	ID              int64
	CreatedAt       time.Time
	Period          AnalysisPeriod
	ModelID         string
	StockCode       string
	SelectionReason string
	BuyDate         time.Time
	Notes           string
}

// SellDate returns the nominal sell date derived from the buy date and period.
func (p *PendingSelection) SellDate() time.Time {
	return p.BuyDate.AddDate(0, 0, p.Period.Days())
}
