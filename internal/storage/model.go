package storage

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/core"
)

// persistRecord is the on-disk shape of one record. Amounts travel as JSON
// numbers so the file stays readable by other tools.
type persistRecord struct {
	Name     string         `json:"name"`
	Amount   json.Number    `json:"amount"`
	Category string         `json:"category"`
	Date     core.Timestamp `json:"date"`
}

type persistBudget struct {
	Budget json.Number `json:"budget"`
}

func toPersist(r core.Record) persistRecord {
	return persistRecord{
		Name:     r.Name,
		Amount:   json.Number(r.Amount.String()),
		Category: r.Category,
		Date:     r.Date,
	}
}

func (p persistRecord) toCore() (core.Record, error) {
	amount, err := decimal.NewFromString(p.Amount.String())
	if err != nil {
		return core.Record{}, fmt.Errorf("amount %q: %w", p.Amount, err)
	}
	r := core.Record{
		Name:     p.Name,
		Amount:   amount,
		Category: p.Category,
		Date:     p.Date,
	}
	if err := r.Validate(); err != nil {
		return core.Record{}, err
	}
	return r, nil
}
