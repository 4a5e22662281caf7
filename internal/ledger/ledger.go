// Package ledger owns the ordered collection of expense records for a session
// and the pure queries computed over it.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/core"
)

// Store is the durable backing of a ledger snapshot.
type Store interface {
	// Load returns the persisted snapshot. Missing or unreadable
	// snapshots are reported with core.ErrStorageUnavailable.
	Load() ([]core.Record, error)
	// Persist overwrites the snapshot with records.
	Persist(records []core.Record) error
}

// Ledger is the in-memory record sequence. Insertion order is display order.
type Ledger struct {
	records []core.Record
}

func New(records ...core.Record) *Ledger {
	return &Ledger{records: append([]core.Record(nil), records...)}
}

// Open loads a ledger from store. It always returns a usable ledger; when the
// snapshot is missing or corrupt the ledger is empty and the error says why.
func Open(store Store) (*Ledger, error) {
	records, err := store.Load()
	if err != nil {
		if !errors.Is(err, core.ErrStorageUnavailable) {
			err = fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
		}
		return New(), err
	}
	return New(records...), nil
}

// Save persists the whole ledger. The in-memory state is kept on failure.
func (l *Ledger) Save(store Store) error {
	if err := store.Persist(l.Records()); err != nil {
		if !errors.Is(err, core.ErrStorageWrite) {
			err = fmt.Errorf("%w: %v", core.ErrStorageWrite, err)
		}
		return err
	}
	return nil
}

// Add appends r. It does not persist.
func (l *Ledger) Add(r core.Record) {
	l.records = append(l.records, r)
}

// Remove deletes the first record whose name matches case-insensitively.
func (l *Ledger) Remove(name string) (core.Record, error) {
	for i, r := range l.records {
		if strings.EqualFold(r.Name, name) {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return r, nil
		}
	}
	return core.Record{}, fmt.Errorf("%w: expense %q", core.ErrNotFound, name)
}

// Records returns a copy of the snapshot in insertion order.
func (l *Ledger) Records() []core.Record {
	return append([]core.Record(nil), l.records...)
}

func (l *Ledger) Len() int {
	return len(l.records)
}

func (l *Ledger) IsEmpty() bool {
	return len(l.records) == 0
}

// Total is the running total checked against the budget.
func (l *Ledger) Total() decimal.Decimal {
	return TotalOf(l.records)
}
