// Package budget resolves the spending threshold for a session and checks
// the ledger total against it.
package budget

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/core"
	applog "ledgerbook/internal/log"
)

// DefaultThreshold applies when the user leaves the budget blank.
var DefaultThreshold = decimal.NewFromInt(5000)

type Status int

const (
	WithinBudget Status = iota
	Exceeded
)

func (s Status) String() string {
	switch s {
	case Exceeded:
		return "exceeded"
	default:
		return "within_budget"
	}
}

type (
	// Store persists the threshold between sessions.
	Store interface {
		LoadBudget() (decimal.Decimal, error)
		SaveBudget(decimal.Decimal) error
	}

	// Prompter asks the user for a value and reports problems back.
	Prompter interface {
		Prompt(label string) (string, error)
		Warn(format string, args ...any)
	}

	// Policy holds the threshold fixed for the session.
	Policy struct {
		threshold decimal.Decimal
	}
)

func NewPolicy(threshold decimal.Decimal) Policy {
	return Policy{threshold: threshold}
}

func (p Policy) Threshold() decimal.Decimal {
	return p.threshold
}

// Check evaluates total against the session threshold.
func (p Policy) Check(total decimal.Decimal) Status {
	return Evaluate(total, p.threshold)
}

// Evaluate reports Exceeded only when total is strictly above threshold.
func Evaluate(total, threshold decimal.Decimal) Status {
	if total.GreaterThan(threshold) {
		return Exceeded
	}
	return WithinBudget
}

// ParseThreshold reads a user-entered budget. Blank input selects def.
func ParseThreshold(input string, def decimal.Decimal) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return def, nil
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(input, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: budget %q is not a number", core.ErrInvalidInput, input)
	}
	if !v.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: budget must be positive", core.ErrInvalidInput)
	}
	return v, nil
}

// Resolve returns the stored threshold, or asks for one until a valid value
// or a blank line is given and stores it. End of input counts as blank.
// A failed save is returned with the usable policy.
func Resolve(store Store, p Prompter, def decimal.Decimal, logger *applog.Logger) (Policy, error) {
	if logger == nil {
		logger = applog.Discard()
	}
	logger = logger.WithComponent(applog.ComponentBudget)

	stored, err := store.LoadBudget()
	if err == nil {
		logger.Info("Loaded saved budget", applog.FieldBudget, stored.String())
		return NewPolicy(stored), nil
	}
	logger.Debug("No saved budget", applog.FieldError, err)

	var threshold decimal.Decimal
	for {
		line, readErr := p.Prompt(fmt.Sprintf("Enter your budget limit (press Enter for default %s): ", core.FormatAmount(def)))
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return Policy{}, fmt.Errorf("read budget: %w", readErr)
		}
		threshold, err = ParseThreshold(line, def)
		if err == nil {
			break
		}
		p.Warn("%v", err)
		if readErr != nil {
			threshold = def
			break
		}
	}

	policy := NewPolicy(threshold)
	logger.Info("Budget set", applog.FieldBudget, threshold.String())
	if err := store.SaveBudget(threshold); err != nil {
		if !errors.Is(err, core.ErrStorageWrite) {
			err = fmt.Errorf("%w: %v", core.ErrStorageWrite, err)
		}
		return policy, err
	}
	return policy, nil
}
