package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"LLMTradeLab/internal/collector"
	"LLMTradeLab/internal/config"
	"LLMTradeLab/internal/recorder"
	"LLMTradeLab/internal/resolver"
	"LLMTradeLab/internal/simulator"
)

var cfgPath string

func main() {
	log.SetFlags(log.LstdFlags)

	root := &cobra.Command{
		Use:           "lab",
		Short:         "Log and score LLM investment-idea experiments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "config file path")

	root.AddCommand(
		newFixedCmd(),
		newSelectCmd(),
		newPendingCmd(),
		newWatchCmd(),
		newHistoryCmd(),
		newStatsCmd(),
		newExportCmd(),
		newDeleteCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newSimulator(cfg *config.Config) *simulator.Simulator {
	fetcher := collector.NewYahooFetcher(cfg.Market.Proxy)
	return simulator.New(resolver.New(fetcher, cfg.Market.SearchWindowDays))
}

func openStore(cfg *config.Config) (recorder.Store, error) {
	if dir := filepath.Dir(cfg.Database.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return recorder.NewSQLiteStore(cfg.Database.SQLitePath)
}

func parseDay(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
