package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"LLMTradeLab/internal/collector"
	"LLMTradeLab/internal/model"
)

// DefaultSearchWindowDays is how far around the target date the resolver
// looks for a trading day. Ten days clears any run of weekends plus
// exchange holidays (e.g. the Japanese new-year break).
const DefaultSearchWindowDays = 10

// ErrDataUnavailable indicates the data source had nothing for the
// requested symbol and window: bad symbol, no trading activity, or a
// provider failure. The resolver does not retry or widen the window.
var ErrDataUnavailable = errors.New("price data unavailable")

// Resolver finds the closing price of the trading day nearest to a
// target calendar date. It holds no mutable state and is safe for
// concurrent use.
type Resolver struct {
	Fetcher    collector.Fetcher
	WindowDays int
}

// New creates a Resolver with the given search window. A non-positive
// window falls back to DefaultSearchWindowDays.
func New(fetcher collector.Fetcher, windowDays int) *Resolver {
	if windowDays <= 0 {
		windowDays = DefaultSearchWindowDays
	}
	return &Resolver{Fetcher: fetcher, WindowDays: windowDays}
}

// Resolve returns the close of the trading day nearest to target.
// When two trading days are equally distant, the earlier one wins.
func (r *Resolver) Resolve(ctx context.Context, symbol string, target time.Time) (model.ResolvedPrice, error) {
	day := dateOnly(target)
	start := day.AddDate(0, 0, -r.WindowDays)
	end := day.AddDate(0, 0, r.WindowDays)

	quotes, err := r.Fetcher.FetchDailyCloses(ctx, NormalizeSymbol(symbol), start, end)
	if err != nil {
		return model.ResolvedPrice{}, fmt.Errorf("resolve %s around %s: %w: %v",
			symbol, day.Format("2006-01-02"), ErrDataUnavailable, err)
	}
	if len(quotes) == 0 {
		return model.ResolvedPrice{}, fmt.Errorf("resolve %s around %s: %w",
			symbol, day.Format("2006-01-02"), ErrDataUnavailable)
	}

	// First minimum wins: with the series in chronological order a strict
	// comparison makes the earlier of two equidistant days the result.
	best := 0
	bestDist := distanceDays(dateOnly(quotes[0].Date), day)
	for i := 1; i < len(quotes); i++ {
		if d := distanceDays(dateOnly(quotes[i].Date), day); d < bestDist {
			best = i
			bestDist = d
		}
	}

	return model.ResolvedPrice{
		RequestedDate: day,
		ResolvedDate:  dateOnly(quotes[best].Date),
		Price:         quotes[best].Close,
	}, nil
}

// NormalizeSymbol maps bare numeric codes to Tokyo Stock Exchange
// tickers by appending the ".T" market suffix. Anything already
// suffixed or non-numeric passes through unchanged.
func NormalizeSymbol(code string) string {
	if code == "" {
		return code
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return code
		}
	}
	return code + ".T"
}

// dateOnly strips the time-of-day and timezone, keeping the wall-clock
// calendar date. Source data may carry timezone-aware timestamps; the
// distance comparison must run on plain dates.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// distanceDays returns |a - b| in whole days for two midnight-UTC dates.
func distanceDays(a, b time.Time) int {
	d := int(a.Sub(b).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}
