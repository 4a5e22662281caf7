// Package menu drives the interactive expense journal: it reads numbered
// choices, runs the matching ledger operation and renders the result.
package menu

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"ledgerbook/internal/budget"
	"ledgerbook/internal/core"
	"ledgerbook/internal/ledger"
	applog "ledgerbook/internal/log"
	"ledgerbook/internal/report"
)

var defaultQuotes = []string{
	"Save money, live better!",
	"A rupee saved is a rupee earned.",
	"Track it today, thank yourself tomorrow!",
	"Spend smart, not hard!",
}

// Options wires the controller to its collaborators. Zero values for
// Classifier, Currency, Logger, Now, Quotes and Pick fall back to defaults.
type Options struct {
	Ledger     *ledger.Ledger
	Store      ledger.Store
	Policy     budget.Policy
	Classifier *core.Classifier
	Exporter   *report.Exporter
	Currency   string
	Logger     *applog.Logger
	Now        func() time.Time
	Quotes     []string
	Pick       func(n int) int
}

type Controller struct {
	console    *Console
	ledger     *ledger.Ledger
	store      ledger.Store
	policy     budget.Policy
	classifier *core.Classifier
	exporter   *report.Exporter
	currency   string
	logger     *applog.Logger
	now        func() time.Time
	quotes     []string
	pick       func(n int) int

	// mu guards ledger mutation and saving; console reads happen outside it
	// so Shutdown from the signal handler never waits on a prompt.
	mu     sync.Mutex
	closed bool
}

func New(console *Console, opts Options) *Controller {
	c := &Controller{
		console:    console,
		ledger:     opts.Ledger,
		store:      opts.Store,
		policy:     opts.Policy,
		classifier: opts.Classifier,
		exporter:   opts.Exporter,
		currency:   opts.Currency,
		logger:     opts.Logger,
		now:        opts.Now,
		quotes:     opts.Quotes,
		pick:       opts.Pick,
	}
	if c.ledger == nil {
		c.ledger = ledger.New()
	}
	if c.classifier == nil {
		c.classifier, _ = core.LoadClassifier("")
	}
	if c.currency == "" {
		c.currency = report.DefaultCurrency
	}
	if c.logger == nil {
		c.logger = applog.Discard()
	}
	c.logger = c.logger.WithComponent(applog.ComponentMenu)
	if c.now == nil {
		c.now = time.Now
	}
	if len(c.quotes) == 0 {
		c.quotes = defaultQuotes
	}
	if c.pick == nil {
		c.pick = rand.IntN
	}
	return c
}

// Run shows the menu until Exit is chosen or input ends. Both persist the ledger.
func (c *Controller) Run() error {
	for {
		c.showMenu()
		choice, err := c.console.Prompt("Enter your choice (1-8): ")
		if err != nil {
			c.Shutdown()
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read choice: %w", err)
		}

		if stop := c.dispatch(strings.TrimSpace(choice)); stop {
			return nil
		}
	}
}

// Shutdown persists the ledger once; later calls do nothing.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.save()
	c.closed = true
}

func (c *Controller) showMenu() {
	line := strings.Repeat("=", 40)
	c.console.Println()
	c.console.Println(line)
	c.console.Heading("WELCOME TO ADVANCED EXPENSE TRACKER")
	c.console.Println(line)
	c.console.Println("1. Add Expense")
	c.console.Println("2. View All Expenses")
	c.console.Println("3. Search by Category")
	c.console.Println("4. Category Summary")
	c.console.Println("5. Monthly Summary")
	c.console.Println("6. Export Report")
	c.console.Println("7. Delete Expense")
	c.console.Println("8. Exit")
	c.console.Println(line)
}

func (c *Controller) dispatch(choice string) (stop bool) {
	c.logger.Debug("Menu choice", applog.FieldChoice, choice)
	switch choice {
	case "1":
		c.addExpense()
	case "2":
		c.viewAll()
	case "3":
		c.searchByCategory()
	case "4":
		c.categorySummary()
	case "5":
		c.monthlySummary()
	case "6":
		c.exportReport()
	case "7":
		c.deleteExpense()
	case "8":
		c.Shutdown()
		c.console.Println("Exiting.... Thanks for using Expense Tracker!")
		return true
	default:
		c.console.Warn("Invalid choice! Please enter a number between 1 and 8.")
	}
	return false
}

func (c *Controller) addExpense() {
	name, err := c.console.Prompt("Enter expense name: ")
	if err != nil {
		return
	}
	amountText, err := c.console.Prompt("Enter amount: ")
	if err != nil {
		return
	}
	amount, err := core.ParseAmount(amountText)
	if err != nil {
		c.console.Warn("Invalid amount! Please enter a positive number.")
		c.logger.Debug("Rejected amount", applog.NewFields().WithOperation(applog.OpAdd).WithError(err).ToSlice()...)
		return
	}

	auto := c.classifier.Classify(name)
	c.console.Printf("Auto detected category: %s\n", auto)
	categoryText, err := c.console.Prompt(fmt.Sprintf("Enter category (default %s): ", auto))
	if err != nil && !errors.Is(err, io.EOF) {
		return
	}
	category := core.NormalizeCategory(categoryText)
	if category == "" {
		category = auto
	}

	r := core.NewRecord(name, amount, category, c.now())
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.ledger.Add(r)
	c.logger.Info("Expense added", applog.NewFields().
		WithOperation(applog.OpAdd).
		WithRecord(r.Name, r.Amount.String(), r.Category, r.Date.String()).
		ToSlice()...)
	c.console.Success("Added %s - %s (%s) on %s", r.Name, c.money(r.Amount), r.Category, r.Date)

	c.checkBudget()
	c.save()
}

func (c *Controller) checkBudget() {
	total := c.ledger.Total()
	status := c.policy.Check(total)
	c.logger.Debug("Budget check", applog.FieldTotal, total.String(), applog.FieldBudget, c.policy.Threshold().String(), applog.FieldStatus, status.String())
	if status == budget.Exceeded {
		c.console.Warn("Warning: You exceeded your monthly budget of %s!", c.money(c.policy.Threshold()))
		return
	}
	c.console.Printf("Current total %s is within your budget (limit: %s)\n", c.money(total), c.money(c.policy.Threshold()))
}

// records snapshots the ledger for read-only actions.
func (c *Controller) records() []core.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Records()
}

func (c *Controller) isEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.IsEmpty()
}

func (c *Controller) viewAll() {
	records := c.records()
	c.logger.Debug("Listing expenses", applog.FieldOperation, applog.OpList, applog.FieldCount, len(records))
	if len(records) == 0 {
		c.console.Println("No expenses yet.")
		return
	}
	c.console.Heading("\nAll Expenses:")
	for i, r := range records {
		c.console.Printf("%d. %s - %s (%s) %s\n", i+1, r.Name, c.money(r.Amount), r.Category, r.Date)
	}
	c.randomQuote()
}

func (c *Controller) searchByCategory() {
	if c.isEmpty() {
		c.console.Println("No data available.")
		return
	}
	input, err := c.console.Prompt("Enter category to search: ")
	if err != nil {
		return
	}
	category := core.NormalizeCategory(input)
	found := ledger.FilterByCategory(c.records(), category)
	stats, ok := ledger.Summarize(found)
	c.logger.Debug("Category search", applog.FieldOperation, applog.OpSearch, applog.FieldCategory, category, applog.FieldCount, len(found))
	if !ok {
		c.console.Warn("No expenses found in '%s' category.", category)
		return
	}
	c.console.Heading("\nExpenses in '%s' category:", category)
	for i, r := range found {
		c.console.Printf("%d. %s - %s\n", i+1, r.Name, c.money(r.Amount))
	}
	c.console.Printf("Total = %s | Average per item = %s\n", c.money(stats.Total), c.money(stats.Average))
}

func (c *Controller) categorySummary() {
	records := c.records()
	if len(records) == 0 {
		c.console.Println("No expenses yet.")
		return
	}
	rows := ledger.CategorySummary(records)
	c.logger.Debug("Category summary", applog.FieldOperation, applog.OpSummary, applog.FieldCount, len(rows))
	c.console.Heading("\nCategory Summary:")
	for _, row := range rows {
		c.console.Printf("%s: %s\n", row.Category, c.money(row.Total))
	}
	c.randomQuote()
}

func (c *Controller) monthlySummary() {
	if c.isEmpty() {
		c.console.Println("No data available.")
		return
	}
	input, err := c.console.Prompt("Enter month (YYYY-MM): ")
	if err != nil {
		return
	}
	month := strings.TrimSpace(input)
	if month == "" {
		c.console.Warn("Please enter a month as YYYY-MM.")
		return
	}
	_, stats, ok := ledger.MonthlyStats(c.records(), month)
	c.logger.Debug("Monthly summary", applog.FieldOperation, applog.OpMonthly, applog.FieldMonth, month, applog.FieldCount, stats.Count)
	if !ok {
		c.console.Println("No expenses for this month.")
		return
	}
	c.console.Heading("\nSummary for %s", month)
	c.console.Printf("Expenses = %d\n", stats.Count)
	c.console.Printf("Total = %s | Average = %s\n", c.money(stats.Total), c.money(stats.Average))
	c.console.Printf("Highest = %s (%s)\n", stats.Highest.Name, c.money(stats.Highest.Amount))
	c.console.Printf("Lowest = %s (%s)\n", stats.Lowest.Name, c.money(stats.Lowest.Amount))
	c.randomQuote()
}

func (c *Controller) exportReport() {
	if c.exporter == nil {
		c.console.Warn("Report export is not configured.")
		return
	}
	records := c.records()
	logger := c.logger.WithComponent(applog.ComponentReport)
	err := c.exporter.Export(records)
	switch {
	case errors.Is(err, core.ErrNotFound):
		c.console.Println("No data to export.")
	case err != nil:
		logger.Error("Report export failed", applog.NewFields().WithOperation(applog.OpExport).WithPath(c.exporter.Path).WithError(err).ToSlice()...)
		c.console.Warn("Error exporting report: %v", err)
	default:
		logger.Info("Report exported", applog.FieldOperation, applog.OpExport, applog.FieldPath, c.exporter.Path, applog.FieldCount, len(records))
		c.console.Success("Report exported successfully as '%s'!", c.exporter.Path)
	}
}

func (c *Controller) deleteExpense() {
	if c.isEmpty() {
		c.console.Println("No expenses to delete.")
		return
	}
	name, err := c.console.Prompt("Enter expense name to delete: ")
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	removed, err := c.ledger.Remove(name)
	if err != nil {
		c.console.Warn("Expense not found!")
		return
	}
	c.logger.Info("Expense deleted", applog.NewFields().
		WithOperation(applog.OpDelete).
		WithRecord(removed.Name, removed.Amount.String(), removed.Category, removed.Date.String()).
		ToSlice()...)
	c.console.Success("Expense '%s' deleted successfully!", name)
	c.save()
}

// save persists the ledger; callers hold mu.
func (c *Controller) save() {
	if c.store == nil {
		return
	}
	if err := c.ledger.Save(c.store); err != nil {
		c.logger.Error("Saving ledger failed", applog.NewFields().WithOperation(applog.OpSave).WithError(err).ToSlice()...)
		c.console.Warn("Error saving data: %v", err)
		return
	}
	c.logger.Debug("Ledger saved", applog.FieldOperation, applog.OpSave, applog.FieldCount, c.ledger.Len())
	c.console.Success("Data saved successfully!")
}

func (c *Controller) randomQuote() {
	c.console.Println(c.quotes[c.pick(len(c.quotes))])
}

func (c *Controller) money(d decimal.Decimal) string {
	return c.currency + core.FormatAmount(d)
}
