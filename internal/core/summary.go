package core

import "github.com/shopspring/decimal"

// CategoryTotal is the amount aggregated under one exact category string.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}
