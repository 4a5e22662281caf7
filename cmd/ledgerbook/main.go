package main

import (
	"errors"
	"io/fs"
	"os"

	"ledgerbook/internal/budget"
	"ledgerbook/internal/cli"
	"ledgerbook/internal/core"
	"ledgerbook/internal/ledger"
	applog "ledgerbook/internal/log"
	"ledgerbook/internal/menu"
	"ledgerbook/internal/report"
	"ledgerbook/internal/storage"
)

func main() {
	envErr := cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	cli.ConfigureColor(cfg.NoColor)

	logger := cli.SetupLogger(cfg.LogLevel)
	if envErr != nil {
		logger.Warn("Ignoring .env file", applog.FieldError, envErr)
	}
	logger.Info("Starting ledgerbook",
		applog.FieldOperation, applog.OpStartup,
		"ledger_file", cfg.LedgerFile,
		"budget_file", cfg.BudgetFile)

	console := menu.NewConsole(os.Stdin, os.Stdout)

	classifier, err := core.LoadClassifier(cfg.CategoryRulesFile)
	if err != nil {
		logger.WithComponent(applog.ComponentClassifier).Error("Failed to load category rules", applog.FieldPath, cfg.CategoryRulesFile, applog.FieldError, err)
		console.Warn("Could not load category rules (%v); using built-in rules.", err)
		classifier, _ = core.LoadClassifier("")
	}
	logger.WithComponent(applog.ComponentClassifier).Debug("Classifier ready", "rules", len(classifier.Rules()))

	policy, err := budget.Resolve(storage.NewBudgetFile(cfg.BudgetFile, logger), console, cfg.DefaultBudget, logger)
	if err != nil {
		logger.WithComponent(applog.ComponentBudget).Warn("Budget not saved", applog.FieldError, err)
		console.Warn("Could not set budget: %v", err)
	}
	if !policy.Threshold().IsPositive() {
		policy = budget.NewPolicy(cfg.DefaultBudget)
	}
	console.Printf("Budget limit: %s%s\n", cfg.CurrencyPrefix, core.FormatAmount(policy.Threshold()))

	store := storage.NewSnapshotStore(cfg.LedgerFile, logger)
	l, err := ledger.Open(store)
	switch {
	case err == nil:
		console.Success("Loaded %d previous expenses successfully!", l.Len())
	case errors.Is(err, fs.ErrNotExist):
		console.Println("No previous data found. Starting fresh!")
	default:
		logger.WithComponent(applog.ComponentLedger).Warn("Ledger snapshot unreadable, starting empty",
			applog.FieldOperation, applog.OpLoad, applog.FieldPath, cfg.LedgerFile, applog.FieldError, err)
		console.Warn("Could not read saved expenses (%v). Starting fresh!", err)
		console.Warn("The unreadable file will be kept as %s on the next save.", store.BackupPath())
	}

	ctrl := menu.New(console, menu.Options{
		Ledger:     l,
		Store:      store,
		Policy:     policy,
		Classifier: classifier,
		Exporter:   report.NewExporter(cfg.ReportFile, cfg.CurrencyPrefix),
		Currency:   cfg.CurrencyPrefix,
		Logger:     logger,
	})
	cli.OnInterrupt(logger, ctrl.Shutdown)

	if err := ctrl.Run(); err != nil {
		logger.Error("Menu stopped", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("ledgerbook stopped", applog.FieldOperation, applog.OpShutdown)
}
