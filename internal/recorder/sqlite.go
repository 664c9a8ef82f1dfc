package recorder

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"LLMTradeLab/internal/model"
)

const dateLayout = "2006-01-02"

// SQLiteStore persists experiment records to a SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so history reads don't block in-flight saves.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fixed_experiments (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			executed_at         INTEGER NOT NULL,
			model_id            TEXT NOT NULL,
			stock_code          TEXT NOT NULL,
			buy_date            TEXT NOT NULL,
			buy_price           TEXT NOT NULL,
			sell_date           TEXT NOT NULL,
			sell_price          TEXT NOT NULL,
			predicted_price     TEXT NOT NULL,
			profit_loss         TEXT NOT NULL,
			return_rate         REAL NOT NULL,
			prediction_accuracy REAL NOT NULL,
			period_days         INTEGER NOT NULL,
			notes               TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fixed_executed ON fixed_experiments(executed_at)`,

		`CREATE TABLE IF NOT EXISTS selection_experiments (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			executed_at      INTEGER NOT NULL,
			analysis_period  TEXT NOT NULL,
			model_id         TEXT NOT NULL,
			stock_code       TEXT NOT NULL,
			selection_reason TEXT NOT NULL,
			buy_date         TEXT NOT NULL,
			buy_price        TEXT NOT NULL,
			sell_date        TEXT NOT NULL,
			sell_price       TEXT NOT NULL,
			profit_loss      TEXT NOT NULL,
			return_rate      REAL NOT NULL,
			period_days      INTEGER NOT NULL,
			notes            TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_selection_executed ON selection_experiments(executed_at)`,

		`CREATE TABLE IF NOT EXISTS pending_selections (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at       INTEGER NOT NULL,
			analysis_period  TEXT NOT NULL,
			model_id         TEXT NOT NULL,
			stock_code       TEXT NOT NULL,
			selection_reason TEXT NOT NULL,
			buy_date         TEXT NOT NULL,
			notes            TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// fixedRow mirrors the fixed_experiments table. Dates are stored as ISO
// calendar dates and prices as decimal strings so a listed record
// reproduces the appended one without drift.
type fixedRow struct {
	ID                 int64           `db:"id"`
	ExecutedAt         int64           `db:"executed_at"`
	ModelID            string          `db:"model_id"`
	StockCode          string          `db:"stock_code"`
	BuyDate            string          `db:"buy_date"`
	BuyPrice           decimal.Decimal `db:"buy_price"`
	SellDate           string          `db:"sell_date"`
	SellPrice          decimal.Decimal `db:"sell_price"`
	PredictedPrice     decimal.Decimal `db:"predicted_price"`
	ProfitLoss         decimal.Decimal `db:"profit_loss"`
	ReturnRate         float64         `db:"return_rate"`
	PredictionAccuracy float64         `db:"prediction_accuracy"`
	PeriodDays         int             `db:"period_days"`
	Notes              string          `db:"notes"`
}

type selectionRow struct {
	ID              int64           `db:"id"`
	ExecutedAt      int64           `db:"executed_at"`
	AnalysisPeriod  string          `db:"analysis_period"`
	ModelID         string          `db:"model_id"`
	StockCode       string          `db:"stock_code"`
	SelectionReason string          `db:"selection_reason"`
	BuyDate         string          `db:"buy_date"`
	BuyPrice        decimal.Decimal `db:"buy_price"`
	SellDate        string          `db:"sell_date"`
	SellPrice       decimal.Decimal `db:"sell_price"`
	ProfitLoss      decimal.Decimal `db:"profit_loss"`
	ReturnRate      float64         `db:"return_rate"`
	PeriodDays      int             `db:"period_days"`
	Notes           string          `db:"notes"`
}

type pendingRow struct {
	ID              int64  `db:"id"`
	CreatedAt       int64  `db:"created_at"`
	AnalysisPeriod  string `db:"analysis_period"`
	ModelID         string `db:"model_id"`
	StockCode       string `db:"stock_code"`
	SelectionReason string `db:"selection_reason"`
	BuyDate         string `db:"buy_date"`
	Notes           string `db:"notes"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func (s *SQLiteStore) AppendFixed(rec *model.FixedStockRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.NamedExec(`INSERT INTO fixed_experiments
		(executed_at, model_id, stock_code, buy_date, buy_price, sell_date, sell_price,
		 predicted_price, profit_loss, return_rate, prediction_accuracy, period_days, notes)
		VALUES (:executed_at, :model_id, :stock_code, :buy_date, :buy_price, :sell_date, :sell_price,
		 :predicted_price, :profit_loss, :return_rate, :prediction_accuracy, :period_days, :notes)`,
		&fixedRow{
			ExecutedAt:         rec.ExecutedAt.Unix(),
			ModelID:            rec.ModelID,
			StockCode:          rec.StockCode,
			BuyDate:            rec.BuyDate.Format(dateLayout),
			BuyPrice:           rec.BuyPrice,
			SellDate:           rec.SellDate.Format(dateLayout),
			SellPrice:          rec.SellPrice,
			PredictedPrice:     rec.PredictedPrice,
			ProfitLoss:         rec.ProfitLoss,
			ReturnRate:         rec.ReturnRate,
			PredictionAccuracy: rec.PredictionAccuracy,
			PeriodDays:         rec.PeriodDays,
			Notes:              rec.Notes,
		})
	if err != nil {
		return fmt.Errorf("%w: insert fixed experiment: %v", ErrPersistence, err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: fixed experiment id: %v", ErrPersistence, err)
	}
	return nil
}

func (s *SQLiteStore) AppendSelection(rec *model.SelectionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.NamedExec(`INSERT INTO selection_experiments
		(executed_at, analysis_period, model_id, stock_code, selection_reason,
		 buy_date, buy_price, sell_date, sell_price, profit_loss, return_rate, period_days, notes)
		VALUES (:executed_at, :analysis_period, :model_id, :stock_code, :selection_reason,
		 :buy_date, :buy_price, :sell_date, :sell_price, :profit_loss, :return_rate, :period_days, :notes)`,
		&selectionRow{
			ExecutedAt:      rec.ExecutedAt.Unix(),
			AnalysisPeriod:  string(rec.Period),
			ModelID:         rec.ModelID,
			StockCode:       rec.StockCode,
			SelectionReason: rec.SelectionReason,
			BuyDate:         rec.BuyDate.Format(dateLayout),
			BuyPrice:        rec.BuyPrice,
			SellDate:        rec.SellDate.Format(dateLayout),
			SellPrice:       rec.SellPrice,
			ProfitLoss:      rec.ProfitLoss,
			ReturnRate:      rec.ReturnRate,
			PeriodDays:      rec.PeriodDays,
			Notes:           rec.Notes,
		})
	if err != nil {
		return fmt.Errorf("%w: insert selection experiment: %v", ErrPersistence, err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: selection experiment id: %v", ErrPersistence, err)
	}
	return nil
}

func (s *SQLiteStore) ListFixed() ([]model.FixedStockRecord, error) {
	var rows []fixedRow
	if err := s.db.Select(&rows, `SELECT * FROM fixed_experiments ORDER BY id DESC`); err != nil {
		return nil, fmt.Errorf("%w: list fixed experiments: %v", ErrPersistence, err)
	}

	recs := make([]model.FixedStockRecord, 0, len(rows))
	for _, r := range rows {
		buyDate, err := parseDate(r.BuyDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fixed experiment %d buy date: %v", ErrPersistence, r.ID, err)
		}
		sellDate, err := parseDate(r.SellDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fixed experiment %d sell date: %v", ErrPersistence, r.ID, err)
		}
		recs = append(recs, model.FixedStockRecord{
			ID:                 r.ID,
			ExecutedAt:         time.Unix(r.ExecutedAt, 0),
			ModelID:            r.ModelID,
			StockCode:          r.StockCode,
			BuyDate:            buyDate,
			BuyPrice:           r.BuyPrice,
			SellDate:           sellDate,
			SellPrice:          r.SellPrice,
			PredictedPrice:     r.PredictedPrice,
			ProfitLoss:         r.ProfitLoss,
			ReturnRate:         r.ReturnRate,
			PredictionAccuracy: r.PredictionAccuracy,
			PeriodDays:         r.PeriodDays,
			Notes:              r.Notes,
		})
	}
	return recs, nil
}

func (s *SQLiteStore) ListSelection() ([]model.SelectionRecord, error) {
	var rows []selectionRow
	if err := s.db.Select(&rows, `SELECT * FROM selection_experiments ORDER BY id DESC`); err != nil {
		return nil, fmt.Errorf("%w: list selection experiments: %v", ErrPersistence, err)
	}

	recs := make([]model.SelectionRecord, 0, len(rows))
	for _, r := range rows {
		buyDate, err := parseDate(r.BuyDate)
		if err != nil {
			return nil, fmt.Errorf("%w: selection experiment %d buy date: %v", ErrPersistence, r.ID, err)
		}
		sellDate, err := parseDate(r.SellDate)
		if err != nil {
			return nil, fmt.Errorf("%w: selection experiment %d sell date: %v", ErrPersistence, r.ID, err)
		}
		recs = append(recs, model.SelectionRecord{
			ID:              r.ID,
			ExecutedAt:      time.Unix(r.ExecutedAt, 0),
			Period:          model.AnalysisPeriod(r.AnalysisPeriod),
			ModelID:         r.ModelID,
			StockCode:       r.StockCode,
			SelectionReason: r.SelectionReason,
			BuyDate:         buyDate,
			BuyPrice:        r.BuyPrice,
			SellDate:        sellDate,
			SellPrice:       r.SellPrice,
			ProfitLoss:      r.ProfitLoss,
			ReturnRate:      r.ReturnRate,
			PeriodDays:      r.PeriodDays,
			Notes:           r.Notes,
		})
	}
	return recs, nil
}

func (s *SQLiteStore) DeleteFixed(id int64) error {
	return s.deleteByID("fixed_experiments", id)
}

func (s *SQLiteStore) DeleteSelection(id int64) error {
	return s.deleteByID("selection_experiments", id)
}

func (s *SQLiteStore) EnqueuePending(p *model.PendingSelection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.NamedExec(`INSERT INTO pending_selections
		(created_at, analysis_period, model_id, stock_code, selection_reason, buy_date, notes)
		VALUES (:created_at, :analysis_period, :model_id, :stock_code, :selection_reason, :buy_date, :notes)`,
		&pendingRow{
			CreatedAt:       p.CreatedAt.Unix(),
			AnalysisPeriod:  string(p.Period),
			ModelID:         p.ModelID,
			StockCode:       p.StockCode,
			SelectionReason: p.SelectionReason,
			BuyDate:         p.BuyDate.Format(dateLayout),
			Notes:           p.Notes,
		})
	if err != nil {
		return fmt.Errorf("%w: enqueue pending selection: %v", ErrPersistence, err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: pending selection id: %v", ErrPersistence, err)
	}
	return nil
}

func (s *SQLiteStore) ListPending() ([]model.PendingSelection, error) {
	var rows []pendingRow
	if err := s.db.Select(&rows, `SELECT * FROM pending_selections ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("%w: list pending selections: %v", ErrPersistence, err)
	}

	out := make([]model.PendingSelection, 0, len(rows))
	for _, r := range rows {
		buyDate, err := parseDate(r.BuyDate)
		if err != nil {
			return nil, fmt.Errorf("%w: pending selection %d buy date: %v", ErrPersistence, r.ID, err)
		}
		out = append(out, model.PendingSelection{
			ID:              r.ID,
			CreatedAt:       time.Unix(r.CreatedAt, 0),
			Period:          model.AnalysisPeriod(r.AnalysisPeriod),
			ModelID:         r.ModelID,
			StockCode:       r.StockCode,
			SelectionReason: r.SelectionReason,
			BuyDate:         buyDate,
			Notes:           r.Notes,
		})
	}
	return out, nil
}

func (s *SQLiteStore) DeletePending(id int64) error {
	return s.deleteByID("pending_selections", id)
}

func (s *SQLiteStore) deleteByID(table string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: delete from %s: %v", ErrPersistence, table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete from %s: %v", ErrPersistence, table, err)
	}
	if n == 0 {
		return fmt.Errorf("%s id %d: %w", table, id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
