package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"LLMTradeLab/internal/recorder"
)

func newExportCmd() *cobra.Command {
	var (
		kind string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved experiments as CSV",
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

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()

			switch kind {
			case "fixed":
				recs, err := store.ListFixed()
				if err != nil {
					return err
				}
				if err := recorder.ExportFixedCSV(f, recs); err != nil {
					return err
				}
				fmt.Printf("exported %d fixed experiment(s) to %s\n", len(recs), out)
			case "selection":
				recs, err := store.ListSelection()
				if err != nil {
					return err
				}
				if err := recorder.ExportSelectionCSV(f, recs); err != nil {
					return err
				}
				fmt.Printf("exported %d selection experiment(s) to %s\n", len(recs), out)
			default:
				return fmt.Errorf("unknown kind %q (want fixed or selection)", kind)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "fixed", "experiment kind: fixed or selection")
	cmd.Flags().StringVar(&out, "out", "", "output CSV path (required)")
	cmd.MarkFlagRequired("out")

	return cmd
}

func newDeleteCmd() *cobra.Command {
	var (
		kind string
		id   int64
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete one saved experiment by id",
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
				err = store.DeleteFixed(id)
			case "selection":
				err = store.DeleteSelection(id)
			case "pending":
				err = store.DeletePending(id)
			default:
				return fmt.Errorf("unknown kind %q (want fixed, selection or pending)", kind)
			}
			if err != nil {
				return err
			}
			fmt.Printf("deleted %s record #%d\n", kind, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "record kind: fixed, selection or pending (required)")
	cmd.Flags().Int64Var(&id, "id", 0, "record id (required)")
	cmd.MarkFlagRequired("kind")
	cmd.MarkFlagRequired("id")

	return cmd
}
