package recorder

import (
	"errors"

	"LLMTradeLab/internal/model"
)

// ErrPersistence indicates a record could not be durably saved or read.
// The caller keeps its computed result so the save can be retried
// without refetching prices.
var ErrPersistence = errors.New("persistence failure")

// ErrNotFound indicates the referenced record id does not exist.
var ErrNotFound = errors.New("record not found")

// Store persists experiment records, partitioned by experiment kind.
// Appends assign the record id; lists return rows ordered by insertion
// time, most recent first. Implementations serialize writes themselves.
type Store interface {
	AppendFixed(rec *model.FixedStockRecord) error
	AppendSelection(rec *model.SelectionRecord) error
	ListFixed() ([]model.FixedStockRecord, error)
	ListSelection() ([]model.SelectionRecord, error)
	DeleteFixed(id int64) error
	DeleteSelection(id int64) error

	// Pending queue for selection experiments whose holding period has
	// not elapsed yet. Ordered oldest first so finalization is FIFO.
	EnqueuePending(p *model.PendingSelection) error
	ListPending() ([]model.PendingSelection, error)
	DeletePending(id int64) error

	Close() error
}
