package main

import (
	"fmt"
	"strings"

	"LLMTradeLab/internal/model"
	"LLMTradeLab/internal/stats"
)

// formatFixedRecord renders one finished prediction experiment.
func formatFixedRecord(rec *model.FixedStockRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("fixed-stock experiment | %s on %s\n\n", rec.ModelID, rec.StockCode))
	b.WriteString(fmt.Sprintf("  buy : %s @ %s\n", rec.BuyDate.Format("2006-01-02"), rec.BuyPrice.StringFixed(2)))
	b.WriteString(fmt.Sprintf("  sell: %s @ %s\n", rec.SellDate.Format("2006-01-02"), rec.SellPrice.StringFixed(2)))
	b.WriteString(fmt.Sprintf("  predicted: %s (miss %s)\n\n",
		rec.PredictedPrice.StringFixed(2), rec.SellPrice.Sub(rec.PredictedPrice).Abs().StringFixed(2)))
	b.WriteString(fmt.Sprintf("  profit/loss: %s\n", rec.ProfitLoss.StringFixed(2)))
	b.WriteString(fmt.Sprintf("  return rate: %+.2f%%\n", rec.ReturnRate))
	b.WriteString(fmt.Sprintf("  prediction accuracy: %.1f%%\n", rec.PredictionAccuracy))
	b.WriteString(fmt.Sprintf("  holding period: %d day(s)\n", rec.PeriodDays))
	if rec.Notes != "" {
		b.WriteString(fmt.Sprintf("  notes: %s\n", rec.Notes))
	}
	return b.String()
}

// formatSelectionRecord renders one finished stock-pick experiment.
func formatSelectionRecord(rec *model.SelectionRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("selection experiment | %s picked %s (%s)\n\n", rec.ModelID, rec.StockCode, rec.Period))
	b.WriteString(fmt.Sprintf("  reason: %s\n\n", rec.SelectionReason))
	b.WriteString(fmt.Sprintf("  buy : %s @ %s\n", rec.BuyDate.Format("2006-01-02"), rec.BuyPrice.StringFixed(2)))
	b.WriteString(fmt.Sprintf("  sell: %s @ %s\n\n", rec.SellDate.Format("2006-01-02"), rec.SellPrice.StringFixed(2)))
	b.WriteString(fmt.Sprintf("  profit/loss: %s\n", rec.ProfitLoss.StringFixed(2)))
	b.WriteString(fmt.Sprintf("  return rate: %+.2f%%\n", rec.ReturnRate))
	b.WriteString(fmt.Sprintf("  holding period: %d day(s)\n", rec.PeriodDays))
	if rec.Notes != "" {
		b.WriteString(fmt.Sprintf("  notes: %s\n", rec.Notes))
	}
	return b.String()
}

func formatPending(pending []model.PendingSelection) string {
	if len(pending) == 0 {
		return "no pending selections\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d pending selection(s):\n", len(pending)))
	for _, p := range pending {
		b.WriteString(fmt.Sprintf("  #%-4d %-4s %-14s %-8s buy %s, finalizes after %s\n",
			p.ID, p.Period, p.ModelID, p.StockCode,
			p.BuyDate.Format("2006-01-02"), p.SellDate().Format("2006-01-02")))
	}
	return b.String()
}

func formatFixedHistory(recs []model.FixedStockRecord) string {
	if len(recs) == 0 {
		return "no fixed-stock experiments recorded\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-5s %-16s %-14s %-8s %-11s %-11s %9s %9s %9s %6s\n",
		"id", "executed", "model", "stock", "buy", "sell", "return%", "accuracy%", "p/l", "days"))
	for _, r := range recs {
		b.WriteString(fmt.Sprintf("%-5d %-16s %-14s %-8s %-11s %-11s %+9.2f %9.1f %9s %6d\n",
			r.ID, r.ExecutedAt.Format("2006-01-02 15:04"), r.ModelID, r.StockCode,
			r.BuyDate.Format("2006-01-02"), r.SellDate.Format("2006-01-02"),
			r.ReturnRate, r.PredictionAccuracy, r.ProfitLoss.StringFixed(2), r.PeriodDays))
	}
	return b.String()
}

func formatSelectionHistory(recs []model.SelectionRecord) string {
	if len(recs) == 0 {
		return "no selection experiments recorded\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-5s %-16s %-4s %-14s %-8s %-11s %-11s %9s %9s %6s\n",
		"id", "executed", "per", "model", "stock", "buy", "sell", "return%", "p/l", "days"))
	for _, r := range recs {
		b.WriteString(fmt.Sprintf("%-5d %-16s %-4s %-14s %-8s %-11s %-11s %+9.2f %9s %6d\n",
			r.ID, r.ExecutedAt.Format("2006-01-02 15:04"), r.Period, r.ModelID, r.StockCode,
			r.BuyDate.Format("2006-01-02"), r.SellDate.Format("2006-01-02"),
			r.ReturnRate, r.ProfitLoss.StringFixed(2), r.PeriodDays))
	}
	return b.String()
}

func formatSummaryLine(s stats.Summary, withAccuracy bool) string {
	line := fmt.Sprintf("count %d | win rate %.1f%% | avg return %+.2f%% | total p/l %s",
		s.Count, s.WinRate, s.AvgReturn, s.TotalProfitLoss.StringFixed(2))
	if withAccuracy {
		line += fmt.Sprintf(" | avg accuracy %.1f%%", s.AvgAccuracy)
	}
	line += fmt.Sprintf(" | avg period %.0f day(s)", s.AvgPeriodDays)
	return line
}

func formatStatsReport(fixedOuts, selectionOuts []stats.Outcome) string {
	var b strings.Builder

	b.WriteString("=== fixed-stock experiments ===\n")
	b.WriteString("  " + formatSummaryLine(stats.Summarize(fixedOuts), true) + "\n\n")

	b.WriteString("=== selection experiments ===\n")
	b.WriteString("  " + formatSummaryLine(stats.Summarize(selectionOuts), false) + "\n\n")

	all := append(append([]stats.Outcome{}, fixedOuts...), selectionOuts...)
	b.WriteString("=== overall ===\n")
	b.WriteString("  " + formatSummaryLine(stats.Summarize(all), false) + "\n")
	b.WriteString(fmt.Sprintf("  models evaluated: %d\n\n", stats.DistinctModels(all)))

	byModel := stats.GroupByModel(all)
	if len(byModel) > 0 {
		b.WriteString("=== model ranking by win rate ===\n")
		for i, m := range stats.RankByWinRate(byModel) {
			b.WriteString(fmt.Sprintf("  %2d. %-16s win rate %.1f%% (avg return %+.2f%%, %d run(s))\n",
				i+1, m.ModelID, m.WinRate, m.AvgReturn, m.Count))
		}
		b.WriteString("\n=== model ranking by average return ===\n")
		for i, m := range stats.RankByAvgReturn(byModel) {
			b.WriteString(fmt.Sprintf("  %2d. %-16s avg return %+.2f%% (win rate %.1f%%, %d run(s))\n",
				i+1, m.ModelID, m.AvgReturn, m.WinRate, m.Count))
		}
		b.WriteString("\n")
	}

	byPeriod := stats.GroupByPeriod(selectionOuts)
	if len(byPeriod) > 0 {
		b.WriteString("=== selection performance by period ===\n")
		for _, p := range byPeriod {
			b.WriteString(fmt.Sprintf("  %-4s %s\n", p.Period, formatSummaryLine(p.Summary, false)))
		}
		b.WriteString("\n")
	}

	points := stats.CumulativeReturns(all)
	if len(points) > 0 {
		b.WriteString("=== cumulative return over time ===\n")
		for _, pt := range points {
			b.WriteString(fmt.Sprintf("  %s  %+8.2f%%\n", pt.ExecutedAt.Format("2006-01-02"), pt.Cumulative))
		}
	}

	return b.String()
}
