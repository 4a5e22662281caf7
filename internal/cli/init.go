// Package cli provides common CLI initialization utilities for cmd/ledgerbook.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"ledgerbook/internal/config"
	applog "ledgerbook/internal/log"
)

// LoadEnvFile loads the given env files, .env by default, for local use.
// A missing file is not an error; an unreadable or malformed one is.
func LoadEnvFile(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// SetupLogger initializes structured logging on stderr at the configured
// level and sets it as the default logger.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.ParseLevel(level)
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return cfg
}

// ConfigureColor turns console colouring off when requested; fatih/color
// already disables it when stdout is not a terminal.
func ConfigureColor(noColor bool) {
	if noColor {
		color.NoColor = true
	}
}

// OnInterrupt runs cleanup and exits when SIGINT or SIGTERM arrives.
func OnInterrupt(logger *applog.Logger, cleanup func()) {
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String(), applog.FieldOperation, applog.OpShutdown)

		if cleanup != nil {
			cleanup()
		}
		os.Exit(0)
	}()
}
