package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/budget"
)

type Config struct {
	// Storage
	LedgerFile string
	BudgetFile string
	ReportFile string

	// Classifier
	CategoryRulesFile string

	// Budget
	DefaultBudget decimal.Decimal

	// Console
	CurrencyPrefix string
	NoColor        bool

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		LedgerFile: getEnv("LEDGER_FILE", "expenses_data.json"),
		BudgetFile: getEnv("BUDGET_FILE", "budget.json"),
		ReportFile: getEnv("REPORT_FILE", "export_report.txt"),

		CategoryRulesFile: getEnv("CATEGORY_RULES_FILE", ""),

		DefaultBudget: getEnvDecimal("DEFAULT_BUDGET", budget.DefaultThreshold),

		CurrencyPrefix: getEnv("CURRENCY_PREFIX", "Rs."),
		NoColor:        getEnvBool("NO_COLOR", false),

		LogLevel: getEnv("LOG_LEVEL", "warn"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate file paths
	paths := map[string]string{
		"ledger file": c.LedgerFile,
		"budget file": c.BudgetFile,
		"report file": c.ReportFile,
	}
	for _, name := range []string{"ledger file", "budget file", "report file"} {
		if strings.TrimSpace(paths[name]) == "" {
			errors = append(errors, fmt.Sprintf("%s path cannot be empty", name))
		}
	}
	if c.LedgerFile != "" && filepath.Clean(c.LedgerFile) == filepath.Clean(c.BudgetFile) {
		errors = append(errors, fmt.Sprintf("ledger and budget cannot share the file '%s'", c.LedgerFile))
	}

	// Validate classifier rules file if provided
	if c.CategoryRulesFile != "" {
		if _, err := os.Stat(c.CategoryRulesFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("category rules file does not exist: %s", c.CategoryRulesFile))
		}
	}

	// Validate default budget
	if !c.DefaultBudget.IsPositive() {
		errors = append(errors, fmt.Sprintf("invalid default budget %s: must be positive", c.DefaultBudget))
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	isValidLevel := false
	for _, level := range validLevels {
		if strings.EqualFold(c.LogLevel, level) {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		// NO_COLOR convention: any non-empty value counts
		return true
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}
