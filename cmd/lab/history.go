package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"LLMTradeLab/internal/model"
	"LLMTradeLab/internal/stats"
)

func newHistoryCmd() *cobra.Command {
	var (
		kind        string
		modelID     string
		stockCode   string
		minAccuracy float64
		period      string
		profitOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved experiments",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			switch kind {
			case "fixed":
				recs, err := store.ListFixed()
				if err != nil {
					return err
				}
				recs = filterFixed(recs, modelID, stockCode, minAccuracy)
				fmt.Print(formatFixedHistory(recs))
			case "selection":
				recs, err := store.ListSelection()
				if err != nil {
					return err
				}
				recs = filterSelection(recs, modelID, stockCode, period, profitOnly)
				fmt.Print(formatSelectionHistory(recs))
			default:
				return fmt.Errorf("unknown kind %q (want fixed or selection)", kind)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "fixed", "experiment kind: fixed or selection")
	cmd.Flags().StringVar(&modelID, "model", "", "only this LLM model")
	cmd.Flags().StringVar(&stockCode, "stock", "", "only this stock code")
	cmd.Flags().Float64Var(&minAccuracy, "min-accuracy", 0, "minimum prediction accuracy percent (fixed only)")
	cmd.Flags().StringVar(&period, "period", "", "only this analysis period (selection only)")
	cmd.Flags().BoolVar(&profitOnly, "profit-only", false, "only profitable experiments (selection only)")

	return cmd
}

func filterFixed(recs []model.FixedStockRecord, modelID, stockCode string, minAccuracy float64) []model.FixedStockRecord {
	out := recs[:0]
	for _, r := range recs {
		if modelID != "" && r.ModelID != modelID {
			continue
		}
		if stockCode != "" && r.StockCode != stockCode {
			continue
		}
		if minAccuracy > 0 && r.PredictionAccuracy < minAccuracy {
			continue
		}
		out = append(out, r)
	}
	return out
}

func filterSelection(recs []model.SelectionRecord, modelID, stockCode, period string, profitOnly bool) []model.SelectionRecord {
	out := recs[:0]
	for _, r := range recs {
		if modelID != "" && r.ModelID != modelID {
			continue
		}
		if stockCode != "" && r.StockCode != stockCode {
			continue
		}
		if period != "" && string(r.Period) != period {
			continue
		}
		if profitOnly && r.ReturnRate <= 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Aggregate statistics and model rankings over saved experiments",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			fixed, err := store.ListFixed()
			if err != nil {
				return err
			}
			selection, err := store.ListSelection()
			if err != nil {
				return err
			}

			fixedOuts := stats.FromFixed(fixed)
			selectionOuts := stats.FromSelection(selection)
			fmt.Print(formatStatsReport(fixedOuts, selectionOuts))
			return nil
		},
	}
}
