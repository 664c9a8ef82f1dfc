package collector

import (
	"context"
	"fmt"
	"time"

	"LLMTradeLab/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Quotes []model.PriceQuote
	Err    error

	// LastSymbol records the symbol of the most recent fetch, letting
	// tests assert on symbol normalization.
	LastSymbol string
}

func (m *MockFetcher) Name() string { return "mock" }

// FetchDailyCloses returns the configured quotes that fall inside
// [start, end], preserving their order.
func (m *MockFetcher) FetchDailyCloses(_ context.Context, symbol string, start, end time.Time) ([]model.PriceQuote, error) {
	m.LastSymbol = symbol
	if m.Err != nil {
		return nil, m.Err
	}
	var out []model.PriceQuote
	for _, q := range m.Quotes {
		if q.Date.Before(start) || q.Date.After(end) {
			continue
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("mock: symbol %s: %w", symbol, ErrNoData)
	}
	return out, nil
}
