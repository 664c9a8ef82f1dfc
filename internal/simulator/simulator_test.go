package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LLMTradeLab/internal/collector"
	"LLMTradeLab/internal/model"
	"LLMTradeLab/internal/resolver"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func quote(date time.Time, close int64) model.PriceQuote {
	return model.PriceQuote{Symbol: "7203.T", Date: date, Close: decimal.NewFromInt(close)}
}

// toyotaJanuary covers a nominal one-month hold of 7203 where both the
// buy and sell dates fall on non-trading days.
func toyotaJanuary() *collector.MockFetcher {
	return &collector.MockFetcher{Quotes: []model.PriceQuote{
		quote(day(2024, 1, 4), 2500),  // Thursday, last session before the target Friday holiday
		quote(day(2024, 1, 9), 2510),  // Tuesday
		quote(day(2024, 2, 2), 2700),  // Friday
		quote(day(2024, 2, 5), 2750),  // Monday, nearest to Sunday Feb 4
	}}
}

func newSim(f collector.Fetcher) *Simulator {
	return New(resolver.New(f, 10))
}

func TestFixedInputValidate(t *testing.T) {
	valid := FixedInput{
		ModelID:        "gpt-4o",
		StockCode:      "7203",
		PredictedPrice: decimal.NewFromInt(2750),
		BuyDate:        day(2024, 1, 5),
		SellDate:       day(2024, 2, 5),
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*FixedInput)
	}{
		{"missing model", func(in *FixedInput) { in.ModelID = " " }},
		{"missing code", func(in *FixedInput) { in.StockCode = "" }},
		{"zero predicted price", func(in *FixedInput) { in.PredictedPrice = decimal.Zero }},
		{"negative predicted price", func(in *FixedInput) { in.PredictedPrice = decimal.NewFromInt(-1) }},
		{"sell not after buy", func(in *FixedInput) { in.SellDate = in.BuyDate }},
		{"sell before buy", func(in *FixedInput) { in.SellDate = in.BuyDate.AddDate(0, 0, -1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSelectionInputValidate(t *testing.T) {
	valid := SelectionInput{
		Period:          model.Period1Month,
		ModelID:         "gpt-4o",
		StockCode:       "7203",
		SelectionReason: "strong earnings momentum",
		BuyDate:         day(2024, 1, 5),
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*SelectionInput)
	}{
		{"unknown period", func(in *SelectionInput) { in.Period = "2w" }},
		{"missing model", func(in *SelectionInput) { in.ModelID = "" }},
		{"missing code", func(in *SelectionInput) { in.StockCode = "  " }},
		{"missing reason", func(in *SelectionInput) { in.SelectionReason = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRunFixed_InvalidInputSkipsFetch(t *testing.T) {
	fetcher := &collector.MockFetcher{}
	sim := newSim(fetcher)

	_, err := sim.RunFixed(context.Background(), FixedInput{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, fetcher.LastSymbol, "validation failure must not hit the data source")
}

func TestRunFixed(t *testing.T) {
	fetcher := toyotaJanuary()
	sim := newSim(fetcher)

	rec, err := sim.RunFixed(context.Background(), FixedInput{
		ModelID:        "gpt-4o",
		StockCode:      "7203",
		PredictedPrice: decimal.NewFromInt(2750),
		BuyDate:        day(2024, 1, 5), // Friday holiday
		SellDate:       day(2024, 2, 4), // Sunday
		Notes:          "earnings play",
	})
	require.NoError(t, err)

	// Numeric code is resolved against the Tokyo ticker.
	assert.Equal(t, "7203.T", fetcher.LastSymbol)
	assert.Equal(t, "7203", rec.StockCode)

	// Dates shift to the nearest trading days, earlier on ties.
	assert.Equal(t, day(2024, 1, 4), rec.BuyDate)
	assert.Equal(t, day(2024, 2, 5), rec.SellDate)
	assert.True(t, rec.BuyPrice.Equal(decimal.NewFromInt(2500)))
	assert.True(t, rec.SellPrice.Equal(decimal.NewFromInt(2750)))

	assert.True(t, rec.ProfitLoss.Equal(decimal.NewFromInt(250)))
	assert.InDelta(t, 10.0, rec.ReturnRate, 1e-9)
	// Prediction matched the realized sell price exactly.
	assert.InDelta(t, 100.0, rec.PredictionAccuracy, 1e-9)
	// Period is measured between resolved dates, not the requested ones.
	assert.Equal(t, 32, rec.PeriodDays)

	assert.Equal(t, "gpt-4o", rec.ModelID)
	assert.Equal(t, "earnings play", rec.Notes)
	assert.False(t, rec.ExecutedAt.IsZero())
}

func TestRunFixed_DataUnavailable(t *testing.T) {
	sim := newSim(&collector.MockFetcher{})

	_, err := sim.RunFixed(context.Background(), FixedInput{
		ModelID:        "gpt-4o",
		StockCode:      "0000",
		PredictedPrice: decimal.NewFromInt(100),
		BuyDate:        day(2024, 1, 5),
		SellDate:       day(2024, 2, 5),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrDataUnavailable)
}

func TestRunSelection(t *testing.T) {
	fetcher := toyotaJanuary()
	sim := newSim(fetcher)

	rec, err := sim.RunSelection(context.Background(), SelectionInput{
		Period:          model.Period1Month,
		ModelID:         "claude-sonnet",
		StockCode:       "7203",
		SelectionReason: "undervalued on forward earnings",
		BuyDate:         day(2024, 1, 5),
	})
	require.NoError(t, err)

	assert.Equal(t, model.Period1Month, rec.Period)
	// Sell target is buy date + 30 days (Feb 4), resolving to Monday Feb 5.
	assert.Equal(t, day(2024, 1, 4), rec.BuyDate)
	assert.Equal(t, day(2024, 2, 5), rec.SellDate)
	assert.True(t, rec.BuyPrice.Equal(decimal.NewFromInt(2500)))
	assert.True(t, rec.SellPrice.Equal(decimal.NewFromInt(2750)))
	assert.InDelta(t, 10.0, rec.ReturnRate, 1e-9)
	assert.Equal(t, 32, rec.PeriodDays)
	assert.Equal(t, "undervalued on forward earnings", rec.SelectionReason)
}
