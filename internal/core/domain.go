package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the fixed text form of a record date.
const TimestampLayout = "2006-01-02 15:04:05"

type (
	Timestamp struct {
		time.Time
	}

	Record struct {
		Name     string
		Amount   decimal.Decimal
		Category string
		Date     Timestamp
	}
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageWrite       = errors.New("storage write failed")
)

// NewTimestamp keeps the wall clock of t, to the second, tagged as UTC.
// The text form carries no zone, so a Timestamp is always a UTC wall clock
// and parsing it back cannot land in a daylight saving gap.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

// ParseTimestamp parses the YYYY-MM-DD HH:MM:SS form.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: date %q: %v", ErrInvalidInput, s, err)
	}
	return Timestamp{Time: t}, nil
}

func (t Timestamp) String() string {
	return t.Format(TimestampLayout)
}

// MarshalJSON encodes the fixed text form; it shadows the RFC 3339
// encoding promoted from time.Time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// NewRecord stamps a record with now. The name is taken as given, empty included.
func NewRecord(name string, amount decimal.Decimal, category string, now time.Time) Record {
	return Record{
		Name:     name,
		Amount:   amount,
		Category: category,
		Date:     NewTimestamp(now),
	}
}

func (r Record) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrInvalidInput)
	}
	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("%w: empty category", ErrInvalidInput)
	}
	return nil
}

// NormalizeCategory upper-cases the first letter and lower-cases the rest,
// the form categories are stored and searched in.
func NormalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
