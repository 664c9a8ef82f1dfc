package collector

import (
	"context"
	"errors"
	"time"

	"LLMTradeLab/internal/model"
)

// ErrNoData indicates the source returned no quotes for the requested
// symbol and window. Callers must treat this as "no data", never as a
// series of zero prices.
var ErrNoData = errors.New("no price data returned")

// Fetcher defines the interface for fetching daily market data.
type Fetcher interface {
	// FetchDailyCloses returns the daily closing prices for symbol between
	// start and end (inclusive), in chronological order. An empty window
	// yields ErrNoData.
	FetchDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]model.PriceQuote, error)
	Name() string
}
