package simulator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"LLMTradeLab/internal/calculator"
	"LLMTradeLab/internal/model"
	"LLMTradeLab/internal/resolver"
)

// ErrInvalidInput indicates malformed or missing required fields.
// Validation runs before any market-data call is made.
var ErrInvalidInput = errors.New("invalid input")

// Simulator runs one experiment end to end: validate the input, resolve
// the buy and sell prices, derive the metrics and build the record.
type Simulator struct {
	Resolver *resolver.Resolver
}

func New(r *resolver.Resolver) *Simulator {
	return &Simulator{Resolver: r}
}

// FixedInput is the user input for a prediction-accuracy experiment.
type FixedInput struct {
	ModelID        string
	StockCode      string
	PredictedPrice decimal.Decimal
	BuyDate        time.Time
	SellDate       time.Time
	Notes          string
}

func (in *FixedInput) Validate() error {
	if strings.TrimSpace(in.ModelID) == "" {
		return fmt.Errorf("%w: model id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.StockCode) == "" {
		return fmt.Errorf("%w: stock code is required", ErrInvalidInput)
	}
	if !in.PredictedPrice.IsPositive() {
		return fmt.Errorf("%w: predicted price must be positive", ErrInvalidInput)
	}
	if !in.SellDate.After(in.BuyDate) {
		return fmt.Errorf("%w: sell date must be after buy date", ErrInvalidInput)
	}
	return nil
}

// SelectionInput is the user input for a stock-selection experiment.
// The sell date is not part of the input; it is derived from the
// analysis period.
type SelectionInput struct {
	Period          model.AnalysisPeriod
	ModelID         string
	StockCode       string
	SelectionReason string
	BuyDate         time.Time
	Notes           string
}

func (in *SelectionInput) Validate() error {
	if in.Period.Days() == 0 {
		return fmt.Errorf("%w: unknown analysis period %q", ErrInvalidInput, in.Period)
	}
	if strings.TrimSpace(in.ModelID) == "" {
		return fmt.Errorf("%w: model id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.StockCode) == "" {
		return fmt.Errorf("%w: stock code is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.SelectionReason) == "" {
		return fmt.Errorf("%w: selection reason is required", ErrInvalidInput)
	}
	return nil
}

// RunFixed simulates a fixed-stock experiment. The record carries the
// resolved trading days, and the prediction is scored against the
// realized sell price.
func (s *Simulator) RunFixed(ctx context.Context, in FixedInput) (*model.FixedStockRecord, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	buy, err := s.Resolver.Resolve(ctx, in.StockCode, in.BuyDate)
	if err != nil {
		return nil, fmt.Errorf("buy price: %w", err)
	}
	sell, err := s.Resolver.Resolve(ctx, in.StockCode, in.SellDate)
	if err != nil {
		return nil, fmt.Errorf("sell price: %w", err)
	}

	return &model.FixedStockRecord{
		ExecutedAt:         time.Now(),
		ModelID:            in.ModelID,
		StockCode:          in.StockCode,
		BuyDate:            buy.ResolvedDate,
		BuyPrice:           buy.Price,
		SellDate:           sell.ResolvedDate,
		SellPrice:          sell.Price,
		PredictedPrice:     in.PredictedPrice,
		ProfitLoss:         calculator.ProfitLoss(buy.Price, sell.Price),
		ReturnRate:         calculator.ReturnRate(buy.Price, sell.Price),
		PredictionAccuracy: calculator.PredictionAccuracy(sell.Price, in.PredictedPrice),
		PeriodDays:         calculator.PeriodDays(buy.ResolvedDate, sell.ResolvedDate),
		Notes:              in.Notes,
	}, nil
}

// RunSelection simulates a stock-selection experiment over the holding
// period derived from the analysis period.
func (s *Simulator) RunSelection(ctx context.Context, in SelectionInput) (*model.SelectionRecord, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	sellDate := in.BuyDate.AddDate(0, 0, in.Period.Days())

	buy, err := s.Resolver.Resolve(ctx, in.StockCode, in.BuyDate)
	if err != nil {
		return nil, fmt.Errorf("buy price: %w", err)
	}
	sell, err := s.Resolver.Resolve(ctx, in.StockCode, sellDate)
	if err != nil {
		return nil, fmt.Errorf("sell price: %w", err)
	}

	return &model.SelectionRecord{
		ExecutedAt:      time.Now(),
		Period:          in.Period,
		ModelID:         in.ModelID,
		StockCode:       in.StockCode,
		SelectionReason: in.SelectionReason,
		BuyDate:         buy.ResolvedDate,
		BuyPrice:        buy.Price,
		SellDate:        sell.ResolvedDate,
		SellPrice:       sell.Price,
		ProfitLoss:      calculator.ProfitLoss(buy.Price, sell.Price),
		ReturnRate:      calculator.ReturnRate(buy.Price, sell.Price),
		PeriodDays:      calculator.PeriodDays(buy.ResolvedDate, sell.ResolvedDate),
		Notes:           in.Notes,
	}, nil
}
