package budget

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/core"
	applog "ledgerbook/internal/log"
)

type fakeStore struct {
	value   decimal.Decimal
	loadErr error
	saveErr error
	saved   []decimal.Decimal
}

func (f *fakeStore) LoadBudget() (decimal.Decimal, error) {
	return f.value, f.loadErr
}

func (f *fakeStore) SaveBudget(v decimal.Decimal) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, v)
	return nil
}

type scriptedPrompter struct {
	lines    []string
	prompts  int
	warnings []string
}

func (s *scriptedPrompter) Prompt(string) (string, error) {
	s.prompts++
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedPrompter) Warn(format string, args ...any) {
	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		total, threshold int64
		want             Status
	}{
		{6000, 5000, Exceeded},
		{4000, 5000, WithinBudget},
		{5000, 5000, WithinBudget},
		{0, 5000, WithinBudget},
	}
	for _, tt := range tests {
		got := Evaluate(decimal.NewFromInt(tt.total), decimal.NewFromInt(tt.threshold))
		if got != tt.want {
			t.Fatalf("Evaluate(%d, %d) = %v, want %v", tt.total, tt.threshold, got, tt.want)
		}
	}
	if NewPolicy(decimal.NewFromInt(10)).Check(decimal.NewFromInt(11)) != Exceeded {
		t.Fatalf("policy check should match Evaluate")
	}
}

func TestParseThreshold(t *testing.T) {
	def := DefaultThreshold
	if v, err := ParseThreshold("  ", def); err != nil || !v.Equal(def) {
		t.Fatalf("blank should give default, got %v %v", v, err)
	}
	if v, err := ParseThreshold("1200,50", def); err != nil || !v.Equal(decimal.RequireFromString("1200.5")) {
		t.Fatalf("unexpected %v %v", v, err)
	}
	for _, in := range []string{"abc", "0", "-10"} {
		if _, err := ParseThreshold(in, def); !errors.Is(err, core.ErrInvalidInput) {
			t.Fatalf("%q: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestResolveLogsUnderBudgetComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Level: slog.LevelInfo, Output: &buf})
	if _, err := Resolve(&fakeStore{value: decimal.NewFromInt(8000)}, &scriptedPrompter{}, DefaultThreshold, logger); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"component=budget", "budget=8000", "Loaded saved budget"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %q: %s", want, out)
		}
	}
}

func TestResolveUsesStoredBudget(t *testing.T) {
	store := &fakeStore{value: decimal.NewFromInt(8000)}
	p := &scriptedPrompter{}
	policy, err := Resolve(store, p, DefaultThreshold, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !policy.Threshold().Equal(decimal.NewFromInt(8000)) || p.prompts != 0 || len(store.saved) != 0 {
		t.Fatalf("stored budget should be used without prompting: %v prompts=%d", policy.Threshold(), p.prompts)
	}
}

func TestResolveRepromptsUntilValid(t *testing.T) {
	store := &fakeStore{loadErr: core.ErrStorageUnavailable}
	p := &scriptedPrompter{lines: []string{"abc", "-5", "3000"}}
	policy, err := Resolve(store, p, DefaultThreshold, nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !policy.Threshold().Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("unexpected threshold %v", policy.Threshold())
	}
	if p.prompts != 3 || len(p.warnings) != 2 {
		t.Fatalf("expected 3 prompts and 2 warnings, got %d %v", p.prompts, p.warnings)
	}
	if len(store.saved) != 1 || !store.saved[0].Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("threshold not saved: %v", store.saved)
	}
}

func TestResolveBlankAndEOFUseDefault(t *testing.T) {
	for name, lines := range map[string][]string{"blank": {""}, "eof": nil} {
		t.Run(name, func(t *testing.T) {
			store := &fakeStore{loadErr: core.ErrStorageUnavailable}
			policy, err := Resolve(store, &scriptedPrompter{lines: lines}, DefaultThreshold, nil)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if !policy.Threshold().Equal(DefaultThreshold) {
				t.Fatalf("expected default, got %v", policy.Threshold())
			}
		})
	}
}

func TestResolveSaveFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{loadErr: core.ErrStorageUnavailable, saveErr: errors.New("read-only")}
	policy, err := Resolve(store, &scriptedPrompter{lines: []string{"100"}}, DefaultThreshold, nil)
	if !errors.Is(err, core.ErrStorageWrite) {
		t.Fatalf("expected ErrStorageWrite, got %v", err)
	}
	if !policy.Threshold().Equal(decimal.NewFromInt(100)) {
		t.Fatalf("policy should still be usable, got %v", policy.Threshold())
	}
}

func TestStatusString(t *testing.T) {
	if Exceeded.String() != "exceeded" || WithinBudget.String() != "within_budget" {
		t.Fatalf("unexpected status strings")
	}
}
