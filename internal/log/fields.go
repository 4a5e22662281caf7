package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldPath       = "path"
	FieldCount      = "count"
	FieldRecordName = "record_name"
	FieldAmount     = "amount"
	FieldCategory   = "category"
	FieldDate       = "date"
	FieldMonth      = "month"
	FieldBudget     = "budget"
	FieldTotal      = "total"
	FieldStatus     = "status"
	FieldChoice     = "choice"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentLedger     = "ledger"
	ComponentStorage    = "storage"
	ComponentBudget     = "budget"
	ComponentClassifier = "classifier"
	ComponentReport     = "report"
	ComponentMenu       = "menu"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpDelete   = "delete"
	OpList     = "list"
	OpSearch   = "search"
	OpSummary  = "summary"
	OpMonthly  = "monthly"
	OpExport   = "export"
	OpSave     = "save"
	OpLoad     = "load"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithRecord adds record-related fields
func (f LogFields) WithRecord(name, amount, category, date string) LogFields {
	f[FieldRecordName] = name
	f[FieldAmount] = amount
	f[FieldCategory] = category
	f[FieldDate] = date
	return f
}

// WithPath adds the file path field
func (f LogFields) WithPath(path string) LogFields {
	f[FieldPath] = path
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
