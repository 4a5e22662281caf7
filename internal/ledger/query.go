package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/core"
)

// Stats summarises a non-empty set of records.
type Stats struct {
	Count   int
	Total   decimal.Decimal
	Average decimal.Decimal
	Highest core.Record
	Lowest  core.Record
}

// TotalOf sums amounts; zero for no records.
func TotalOf(records []core.Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// FilterByCategory normalizes category the way categories are stored and
// matches it exactly against each record. Stored values are not normalized.
func FilterByCategory(records []core.Record, category string) []core.Record {
	want := core.NormalizeCategory(category)
	var out []core.Record
	for _, r := range records {
		if r.Category == want {
			out = append(out, r)
		}
	}
	return out
}

// CategorySummary totals amounts per exact category string, keys in
// first-seen order. Different spellings stay separate groups.
func CategorySummary(records []core.Record) []core.CategoryTotal {
	index := make(map[string]int)
	var out []core.CategoryTotal
	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			i = len(out)
			index[r.Category] = i
			out = append(out, core.CategoryTotal{Category: r.Category, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(r.Amount)
	}
	return out
}

// FilterByMonth keeps records whose date text starts with month ("YYYY-MM").
func FilterByMonth(records []core.Record, month string) []core.Record {
	var out []core.Record
	for _, r := range records {
		if strings.HasPrefix(r.Date.String(), month) {
			out = append(out, r)
		}
	}
	return out
}

// Summarize reports false for no records. Highest and lowest keep the first
// occurrence on ties.
func Summarize(records []core.Record) (Stats, bool) {
	if len(records) == 0 {
		return Stats{}, false
	}
	s := Stats{
		Count:   len(records),
		Total:   TotalOf(records),
		Highest: records[0],
		Lowest:  records[0],
	}
	for _, r := range records[1:] {
		if r.Amount.GreaterThan(s.Highest.Amount) {
			s.Highest = r
		}
		if r.Amount.LessThan(s.Lowest.Amount) {
			s.Lowest = r
		}
	}
	s.Average = s.Total.Div(decimal.NewFromInt(int64(s.Count)))
	return s, true
}

// MonthlyStats summarises the records of one month.
func MonthlyStats(records []core.Record, month string) ([]core.Record, Stats, bool) {
	monthly := FilterByMonth(records, month)
	stats, ok := Summarize(monthly)
	return monthly, stats, ok
}
