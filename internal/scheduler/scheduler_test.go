package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LLMTradeLab/internal/collector"
	"LLMTradeLab/internal/model"
	"LLMTradeLab/internal/recorder"
	"LLMTradeLab/internal/resolver"
	"LLMTradeLab/internal/simulator"
)

// maturedWatcher wires a watcher over an in-memory store with a mock
// data source that has daily closes around the pending buy and sell dates.
func maturedWatcher(t *testing.T, fetcher collector.Fetcher) (*Watcher, *recorder.MemoryStore) {
	t.Helper()
	store := recorder.NewMemoryStore()
	sim := simulator.New(resolver.New(fetcher, 10))
	return NewWatcher(sim, store), store
}

func enqueue(t *testing.T, store recorder.Store, code string, buy time.Time) *model.PendingSelection {
	t.Helper()
	p := &model.PendingSelection{
		CreatedAt:       buy,
		Period:          model.Period1Week,
		ModelID:         "gpt-4o",
		StockCode:       code,
		SelectionReason: "momentum",
		BuyDate:         buy,
	}
	require.NoError(t, store.EnqueuePending(p))
	return p
}

// dailyCloses builds one quote per calendar day over [from, to].
func dailyCloses(symbol string, from, to time.Time, close int64) []model.PriceQuote {
	var quotes []model.PriceQuote
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		quotes = append(quotes, model.PriceQuote{
			Symbol: symbol,
			Date:   d,
			Close:  decimal.NewFromInt(close),
		})
	}
	return quotes
}

func TestFinalizeMatured(t *testing.T) {
	buy := time.Now().AddDate(0, 0, -20)
	fetcher := &collector.MockFetcher{
		Quotes: dailyCloses("7203.T", buy.AddDate(0, 0, -10), time.Now(), 2500),
	}
	w, store := maturedWatcher(t, fetcher)
	p := enqueue(t, store, "7203", buy)

	n, err := w.FinalizeMatured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	recs, err := store.ListSelection()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "7203", recs[0].StockCode)
	assert.Equal(t, model.Period1Week, recs[0].Period)

	pending, err := store.ListPending()
	require.NoError(t, err)
	assert.Empty(t, pending, "finalized selection leaves the queue")

	err = store.DeletePending(p.ID)
	assert.ErrorIs(t, err, recorder.ErrNotFound)
}

func TestFinalizeSkipsUnmatured(t *testing.T) {
	w, store := maturedWatcher(t, &collector.MockFetcher{})
	enqueue(t, store, "7203", time.Now()) // sell date a week out

	n, err := w.FinalizeMatured(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	pending, err := store.ListPending()
	require.NoError(t, err)
	assert.Len(t, pending, 1, "unmatured selection stays queued")

	recs, err := store.ListSelection()
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestFinalizeKeepsPendingWhenDataUnavailable(t *testing.T) {
	// Matured, but the data source has nothing for the symbol.
	w, store := maturedWatcher(t, &collector.MockFetcher{})
	enqueue(t, store, "0000", time.Now().AddDate(0, 0, -20))

	n, err := w.FinalizeMatured(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	pending, err := store.ListPending()
	require.NoError(t, err)
	assert.Len(t, pending, 1, "data gap keeps the row queued for retry")
}

func TestFinalizeMixedQueue(t *testing.T) {
	buy := time.Now().AddDate(0, 0, -20)
	fetcher := &collector.MockFetcher{
		Quotes: dailyCloses("7203.T", buy.AddDate(0, 0, -10), time.Now(), 2500),
	}
	w, store := maturedWatcher(t, fetcher)
	enqueue(t, store, "7203", buy) // matured, data available
	future := enqueue(t, store, "7203", time.Now())

	n, err := w.FinalizeMatured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	pending, err := store.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, future.ID, pending[0].ID)
}

func TestRegisterRejectsBadSpec(t *testing.T) {
	w, _ := maturedWatcher(t, &collector.MockFetcher{})
	require.Error(t, w.Register("not a cron spec"))
	require.NoError(t, w.Register("0 0 18 * * 1-5"))
}
