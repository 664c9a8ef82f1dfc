package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is a single daily closing price for a symbol.
type PriceQuote struct {
	Symbol string
	Date   time.Time // calendar date, midnight, no time-of-day component
	Close  decimal.Decimal
}

// ResolvedPrice is the outcome of a nearest-trading-day lookup.
// ResolvedDate is the trading day actually used, which may differ
// from RequestedDate when that day was a weekend or holiday.
type ResolvedPrice struct {
	RequestedDate time.Time
	ResolvedDate  time.Time
	Price         decimal.Decimal
}
