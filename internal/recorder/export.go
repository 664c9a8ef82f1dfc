package recorder

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"LLMTradeLab/internal/model"
)

// ExportFixedCSV writes fixed-stock records as CSV with a header row.
// Dates are ISO calendar dates, prices decimal strings.
func ExportFixedCSV(w io.Writer, recs []model.FixedStockRecord) error {
	cw := csv.NewWriter(w)
	header := []string{
		"execution_date", "model_id", "stock_code",
		"buy_date", "buy_price", "sell_date", "sell_price", "predicted_price",
		"profit_loss", "return_rate", "prediction_accuracy", "period_days", "notes",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range recs {
		row := []string{
			r.ExecutedAt.Format("2006-01-02 15:04:05"),
			r.ModelID,
			r.StockCode,
			r.BuyDate.Format(dateLayout),
			r.BuyPrice.String(),
			r.SellDate.Format(dateLayout),
			r.SellPrice.String(),
			r.PredictedPrice.String(),
			r.ProfitLoss.String(),
			strconv.FormatFloat(r.ReturnRate, 'f', -1, 64),
			strconv.FormatFloat(r.PredictionAccuracy, 'f', -1, 64),
			strconv.Itoa(r.PeriodDays),
			r.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportSelectionCSV writes selection records as CSV with a header row.
func ExportSelectionCSV(w io.Writer, recs []model.SelectionRecord) error {
	cw := csv.NewWriter(w)
	header := []string{
		"execution_date", "analysis_period", "model_id", "stock_code", "selection_reason",
		"buy_date", "buy_price", "sell_date", "sell_price",
		"profit_loss", "return_rate", "period_days", "notes",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range recs {
		row := []string{
			r.ExecutedAt.Format("2006-01-02 15:04:05"),
			string(r.Period),
			r.ModelID,
			r.StockCode,
			r.SelectionReason,
			r.BuyDate.Format(dateLayout),
			r.BuyPrice.String(),
			r.SellDate.Format(dateLayout),
			r.SellPrice.String(),
			r.ProfitLoss.String(),
			strconv.FormatFloat(r.ReturnRate, 'f', -1, 64),
			strconv.Itoa(r.PeriodDays),
			r.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
