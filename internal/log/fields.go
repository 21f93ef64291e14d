package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldRunID        = "run_id"
	FieldSource       = "source"
	FieldPath         = "path"
	FieldDuration     = "duration_ms"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldTransactions = "transactions"
	FieldTotalCents   = "total_cents"
	FieldCategory     = "category"
	FieldChart        = "chart"
	FieldExchange     = "exchange"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentSheets  = "sheets"
	ComponentReport  = "report"
	ComponentCharts  = "charts"
	ComponentRunner  = "runner"
	ComponentNotify  = "notify"
)

// Operations defines standard operation names
const (
	OpLoad      = "load"
	OpIngest    = "ingest"
	OpAggregate = "aggregate"
	OpRender    = "render"
	OpWrite     = "write"
	OpPublish   = "publish"
	OpValidate  = "validate"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
