// Package storage keeps the ledger and the budget in JSON files.
//
// Each save rewrites the whole file: the new content goes to path+".tmp"
// and is renamed over path once fully written. A snapshot that exists but
// cannot be read is moved to path+".bak" before it is first overwritten.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/core"
	applog "ledgerbook/internal/log"
)

// SnapshotStore implements ledger.Store on a JSON array file.
type SnapshotStore struct {
	Path string

	logger *applog.Logger
	// unreadable is set when Load found a file it could not use.
	unreadable bool
}

func NewSnapshotStore(path string, logger *applog.Logger) *SnapshotStore {
	return &SnapshotStore{Path: path, logger: storageLogger(logger)}
}

// BackupPath is where an unreadable snapshot is kept.
func (s *SnapshotStore) BackupPath() string {
	return s.Path + ".bak"
}

// Load implements ledger.Store
func (s *SnapshotStore) Load() ([]core.Record, error) {
	records, err := s.load()
	if err != nil {
		s.unreadable = !errors.Is(err, fs.ErrNotExist)
		return nil, err
	}
	s.unreadable = false
	s.logger.Debug("Ledger snapshot loaded", applog.FieldOperation, applog.OpLoad, applog.FieldPath, s.Path, applog.FieldCount, len(records))
	return records, nil
}

func (s *SnapshotStore) load() ([]core.Record, error) {
	var raw []persistRecord
	if err := readJSON(s.Path, &raw); err != nil {
		return nil, err
	}
	records := make([]core.Record, 0, len(raw))
	for i, p := range raw {
		r, err := p.toCore()
		if err != nil {
			return nil, fmt.Errorf("%w: %s entry %d: %v", core.ErrStorageUnavailable, s.Path, i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Persist implements ledger.Store
func (s *SnapshotStore) Persist(records []core.Record) error {
	raw := make([]persistRecord, len(records))
	for i, r := range records {
		raw[i] = toPersist(r)
	}
	if s.unreadable {
		if err := os.Rename(s.Path, s.BackupPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: keep unreadable %s: %v", core.ErrStorageWrite, s.Path, err)
		}
		s.unreadable = false
		s.logger.Warn("Unreadable ledger snapshot kept as backup", applog.FieldOperation, applog.OpSave, applog.FieldPath, s.BackupPath())
	}
	if err := writeJSON(s.Path, raw); err != nil {
		return err
	}
	s.logger.Debug("Ledger snapshot saved", applog.FieldOperation, applog.OpSave, applog.FieldPath, s.Path, applog.FieldCount, len(records))
	return nil
}

// BudgetFile implements budget.Store on a {"budget": n} file.
type BudgetFile struct {
	Path string

	logger *applog.Logger
}

func NewBudgetFile(path string, logger *applog.Logger) *BudgetFile {
	return &BudgetFile{Path: path, logger: storageLogger(logger)}
}

func storageLogger(logger *applog.Logger) *applog.Logger {
	if logger == nil {
		logger = applog.Discard()
	}
	return logger.WithComponent(applog.ComponentStorage)
}

func (b *BudgetFile) LoadBudget() (decimal.Decimal, error) {
	var raw persistBudget
	if err := readJSON(b.Path, &raw); err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(raw.Budget.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: budget %q: %v", core.ErrStorageUnavailable, b.Path, raw.Budget, err)
	}
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s: budget must be positive", core.ErrStorageUnavailable, b.Path)
	}
	b.logger.Debug("Budget loaded", applog.FieldOperation, applog.OpLoad, applog.FieldPath, b.Path, applog.FieldBudget, v.String())
	return v, nil
}

func (b *BudgetFile) SaveBudget(v decimal.Decimal) error {
	if err := writeJSON(b.Path, persistBudget{Budget: json.Number(v.String())}); err != nil {
		return err
	}
	b.logger.Debug("Budget saved", applog.FieldOperation, applog.OpSave, applog.FieldPath, b.Path, applog.FieldBudget, v.String())
	return nil
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", core.ErrStorageUnavailable, path, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: decode %s: %v", core.ErrStorageUnavailable, path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create directory %s: %v", core.ErrStorageWrite, dir, err)
		}
	}
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", core.ErrStorageWrite, path, err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", core.ErrStorageWrite, tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: replace %s: %v", core.ErrStorageWrite, path, err)
	}
	return nil
}
