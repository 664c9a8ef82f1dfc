package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"LLMTradeLab/internal/recorder"
	"LLMTradeLab/internal/resolver"
	"LLMTradeLab/internal/simulator"
)

// Watcher finalizes queued selection experiments once their holding
// period has elapsed: it runs the simulation, appends the finished
// record and removes the pending row.
type Watcher struct {
	Cron      *cron.Cron
	Simulator *simulator.Simulator
	Store     recorder.Store
}

// NewWatcher creates a Watcher.
func NewWatcher(sim *simulator.Simulator, store recorder.Store) *Watcher {
	return &Watcher{
		Cron:      cron.New(cron.WithSeconds()),
		Simulator: sim,
		Store:     store,
	}
}

// Register schedules the finalization pass on the given cron spec.
func (w *Watcher) Register(spec string) error {
	if _, err := w.Cron.AddFunc(spec, w.runOnce); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (w *Watcher) Start() {
	w.Cron.Start()
	log.Println("[INFO] watcher started")
}

// Stop stops the cron scheduler gracefully.
func (w *Watcher) Stop() {
	w.Cron.Stop()
	log.Println("[INFO] watcher stopped")
}

func (w *Watcher) runOnce() {
	n, err := w.FinalizeMatured(context.Background())
	if err != nil {
		log.Printf("[ERROR] finalize pass: %v", err)
		return
	}
	log.Printf("[INFO] finalize pass done, %d experiment(s) completed", n)
}

// FinalizeMatured runs the finalization pass once and returns how many
// pending selections were completed. A pending row whose simulation or
// save fails stays queued so a later pass can retry it.
func (w *Watcher) FinalizeMatured(ctx context.Context) (int, error) {
	pending, err := w.Store.ListPending()
	if err != nil {
		return 0, fmt.Errorf("list pending selections: %w", err)
	}

	today := time.Now()
	done := 0
	for i := range pending {
		p := pending[i]
		if p.SellDate().After(today) {
			continue
		}

		rec, err := w.Simulator.RunSelection(ctx, simulator.SelectionInput{
			Period:          p.Period,
			ModelID:         p.ModelID,
			StockCode:       p.StockCode,
			SelectionReason: p.SelectionReason,
			BuyDate:         p.BuyDate,
			Notes:           p.Notes,
		})
		if err != nil {
			if errors.Is(err, resolver.ErrDataUnavailable) {
				log.Printf("[WARN] pending %d (%s): data unavailable, will retry: %v", p.ID, p.StockCode, err)
				continue
			}
			log.Printf("[ERROR] pending %d (%s): simulation failed: %v", p.ID, p.StockCode, err)
			continue
		}

		if err := w.Store.AppendSelection(rec); err != nil {
			log.Printf("[ERROR] pending %d (%s): save failed: %v", p.ID, p.StockCode, err)
			continue
		}
		if err := w.Store.DeletePending(p.ID); err != nil {
			log.Printf("[WARN] pending %d: dequeue failed: %v", p.ID, err)
			continue
		}
		done++
	}
	return done, nil
}
