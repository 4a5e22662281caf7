// Package report renders the ledger as a flat text report.
package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"ledgerbook/internal/core"
)

// DefaultCurrency prefixes every amount in the report.
const DefaultCurrency = "Rs."

// Write emits one line per record: date | name | Rs.amount | category
func Write(w io.Writer, records []core.Record, currency string) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if _, err := fmt.Fprintf(bw, "%s | %s | %s%s | %s\n", r.Date, r.Name, currency, core.FormatAmount(r.Amount), r.Category); err != nil {
			return err
		}
	}
	return bw.Flush()
}

type Exporter struct {
	Path     string
	Currency string
}

func NewExporter(path, currency string) *Exporter {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Exporter{Path: path, Currency: currency}
}

// Export overwrites the report file. An empty ledger is reported as
// core.ErrNotFound and leaves any existing file alone.
func (e *Exporter) Export(records []core.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no data to export", core.ErrNotFound)
	}
	var buf bytes.Buffer
	if err := Write(&buf, records, e.Currency); err != nil {
		return fmt.Errorf("%w: render report: %v", core.ErrStorageWrite, err)
	}
	if err := os.WriteFile(e.Path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: write report %s: %v", core.ErrStorageWrite, e.Path, err)
	}
	return nil
}
