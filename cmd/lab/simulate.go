package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"LLMTradeLab/internal/model"
	"LLMTradeLab/internal/simulator"
)

func newFixedCmd() *cobra.Command {
	var (
		modelID   string
		stockCode string
		predicted string
		buy       string
		sell      string
		notes     string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "fixed",
		Short: "Score an LLM price prediction for a fixed stock",
		RunE: func(c *cobra.Command, args []string) error {
			predictedPrice, err := decimal.NewFromString(predicted)
			if err != nil {
				return fmt.Errorf("invalid predicted price %q: %w", predicted, err)
			}
			buyDate, err := parseDay(buy)
			if err != nil {
				return err
			}
			sellDate, err := parseDay(sell)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			rec, err := newSimulator(cfg).RunFixed(c.Context(), simulator.FixedInput{
				ModelID:        modelID,
				StockCode:      stockCode,
				PredictedPrice: predictedPrice,
				BuyDate:        buyDate,
				SellDate:       sellDate,
				Notes:          notes,
			})
			if err != nil {
				return err
			}

			fmt.Print(formatFixedRecord(rec))

			if dryRun {
				fmt.Println("dry run, not saved")
				return nil
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.AppendFixed(rec); err != nil {
				return fmt.Errorf("result computed but not saved, rerun with the same inputs to retry: %w", err)
			}
			fmt.Printf("saved as fixed experiment #%d\n", rec.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelID, "model", "", "LLM model name (required)")
	cmd.Flags().StringVar(&stockCode, "code", "", "stock code, e.g. 7203 (required)")
	cmd.Flags().StringVar(&predicted, "predicted", "", "price the model predicted (required)")
	cmd.Flags().StringVar(&buy, "buy", "", "buy date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&sell, "sell", "", "sell date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute and print without saving")
	cmd.MarkFlagRequired("model")
	cmd.MarkFlagRequired("code")
	cmd.MarkFlagRequired("predicted")
	cmd.MarkFlagRequired("buy")
	cmd.MarkFlagRequired("sell")

	return cmd
}

func newSelectCmd() *cobra.Command {
	var (
		period    string
		modelID   string
		stockCode string
		reason    string
		buy       string
		notes     string
		queue     bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Score an LLM stock pick over a holding period",
		RunE: func(c *cobra.Command, args []string) error {
			p, err := model.ParseAnalysisPeriod(period)
			if err != nil {
				return err
			}
			buyDate, err := parseDay(buy)
			if err != nil {
				return err
			}

			in := simulator.SelectionInput{
				Period:          p,
				ModelID:         modelID,
				StockCode:       stockCode,
				SelectionReason: reason,
				BuyDate:         buyDate,
				Notes:           notes,
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if queue {
				if err := in.Validate(); err != nil {
					return err
				}
				store, err := openStore(cfg)
				if err != nil {
					return err
				}
				defer store.Close()

				pending := &model.PendingSelection{
					CreatedAt:       time.Now(),
					Period:          in.Period,
					ModelID:         in.ModelID,
					StockCode:       in.StockCode,
					SelectionReason: in.SelectionReason,
					BuyDate:         in.BuyDate,
					Notes:           in.Notes,
				}
				if err := store.EnqueuePending(pending); err != nil {
					return err
				}
				fmt.Printf("queued as pending selection #%d, finalizes after %s\n",
					pending.ID, pending.SellDate().Format("2006-01-02"))
				return nil
			}

			rec, err := newSimulator(cfg).RunSelection(c.Context(), in)
			if err != nil {
				return err
			}

			fmt.Print(formatSelectionRecord(rec))

			if dryRun {
				fmt.Println("dry run, not saved")
				return nil
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.AppendSelection(rec); err != nil {
				return fmt.Errorf("result computed but not saved, rerun with the same inputs to retry: %w", err)
			}
			fmt.Printf("saved as selection experiment #%d\n", rec.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "analysis period: 1w, 1m, 3m, 6m or 1y (required)")
	cmd.Flags().StringVar(&modelID, "model", "", "LLM model name (required)")
	cmd.Flags().StringVar(&stockCode, "code", "", "stock code the model picked (required)")
	cmd.Flags().StringVar(&reason, "reason", "", "the model's selection reasoning (required)")
	cmd.Flags().StringVar(&buy, "buy", "", "buy date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().BoolVar(&queue, "queue", false, "queue for finalization once the period elapses")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute and print without saving")
	cmd.MarkFlagRequired("period")
	cmd.MarkFlagRequired("model")
	cmd.MarkFlagRequired("code")
	cmd.MarkFlagRequired("reason")
	cmd.MarkFlagRequired("buy")

	return cmd
}
