package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"LLMTradeLab/internal/scheduler"
)

func newPendingCmd() *cobra.Command {
	var finalize bool

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List queued selection experiments, optionally finalizing matured ones",
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

			if finalize {
				w := scheduler.NewWatcher(newSimulator(cfg), store)
				n, err := w.FinalizeMatured(c.Context())
				if err != nil {
					return err
				}
				fmt.Printf("finalized %d experiment(s)\n", n)
			}

			pending, err := store.ListPending()
			if err != nil {
				return err
			}
			fmt.Print(formatPending(pending))
			return nil
		},
	}

	cmd.Flags().BoolVar(&finalize, "finalize", false, "finalize pending selections whose period has elapsed")
	return cmd
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run as a daemon, finalizing matured pending selections on a schedule",
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

			w := scheduler.NewWatcher(newSimulator(cfg), store)
			if err := w.Register(cfg.Watch.Cron); err != nil {
				return err
			}

			// One pass at startup so a long-stopped watcher catches up
			// before the first scheduled run.
			go func() {
				if n, err := w.FinalizeMatured(c.Context()); err != nil {
					log.Printf("[ERROR] startup finalize pass: %v", err)
				} else if n > 0 {
					log.Printf("[INFO] startup finalize pass completed %d experiment(s)", n)
				}
			}()

			w.Start()
			defer w.Stop()
			log.Printf("[INFO] watching on schedule %q, press Ctrl+C to stop", cfg.Watch.Cron)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			log.Println("[INFO] shutdown signal received, stopping")
			return nil
		},
	}
}
