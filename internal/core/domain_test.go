package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTimestampTextForm(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 1, 5, 9, 3, 7, 999, time.Local))
	if got := ts.String(); got != "2024-01-05 09:03:07" {
		t.Fatalf("unexpected text form %q", got)
	}

	b, err := json.Marshal(struct {
		Date Timestamp `json:"date"`
	}{ts})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"date":"2024-01-05 09:03:07"}` {
		t.Fatalf("unexpected json %s", b)
	}

	var back struct {
		Date Timestamp `json:"date"`
	}
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Date.Equal(ts.Time) {
		t.Fatalf("round trip mismatch: %v vs %v", back.Date, ts)
	}
}

func TestTimestampKeepsWallClock(t *testing.T) {
	// 02:30 does not exist on this day in zones that spring forward at 02:00
	for _, text := range []string{"2024-03-10 02:30:00", "2024-03-31 02:15:00", "2024-11-03 01:30:00"} {
		ts, err := ParseTimestamp(text)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", text, err)
		}
		if got := ts.String(); got != text {
			t.Fatalf("round trip %q -> %q", text, got)
		}
	}

	if ny, err := time.LoadLocation("America/New_York"); err == nil {
		ts := NewTimestamp(time.Date(2024, 3, 10, 1, 59, 59, 0, ny).Add(time.Second))
		back, err := ParseTimestamp(ts.String())
		if err != nil || back.String() != ts.String() || !back.Equal(ts.Time) {
			t.Fatalf("local time did not round trip: %v -> %v (%v)", ts, back, err)
		}
	}

	zone := time.FixedZone("UTC+5:30", 5*3600+1800)
	if got := NewTimestamp(time.Date(2024, 1, 5, 23, 45, 0, 0, zone)).String(); got != "2024-01-05 23:45:00" {
		t.Fatalf("wall clock lost: %q", got)
	}
}

func TestParseTimestampRejectsOtherLayouts(t *testing.T) {
	for _, s := range []string{"", "2024-01-05", "05/01/2024 10:00:00", "2024-13-01 00:00:00"} {
		if _, err := ParseTimestamp(s); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%q: expected ErrInvalidInput, got %v", s, err)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := map[string]string{
		"food":       "Food",
		"FOOD":       "Food",
		"fOOD":       "Food",
		"  travel  ": "Travel",
		"":           "",
		"   ":        "",
		"élan":       "Élan",
		"eating out": "Eating out",
	}
	for in, want := range cases {
		if got := NormalizeCategory(in); got != want {
			t.Fatalf("NormalizeCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecordValidate(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local)
	good := NewRecord("", decimal.NewFromInt(10), "Other", now)
	if err := good.Validate(); err != nil {
		t.Fatalf("empty names are accepted, got %v", err)
	}

	bads := []Record{
		{Name: "a", Amount: decimal.NewFromInt(1), Category: "Food"},
		{Name: "a", Amount: decimal.NewFromInt(1), Category: " ", Date: NewTimestamp(now)},
	}
	for i, r := range bads {
		if err := r.Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d expected ErrInvalidInput, got %v", i, err)
		}
	}
}
