package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "current_user"
)

// Password rules
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Report types
const (
	ReportTypeHoursSummary = "hours_summary"
)
