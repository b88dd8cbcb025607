// Package sqlerr translates PostgreSQL driver errors into client-facing
// errs.HTTPError values.
package sqlerr

import "fmt"

// Code is a driver-independent classification of a database error.
type Code string

// The tasks table has no unique, foreign key or check constraints, so only
// the failures its columns can raise are classified.
const (
	Other             Code = "other"
	NotNullViolation  Code = "not_null_violation"
	StringDataTooLong Code = "string_data_right_truncation"
	InvalidTextRep    Code = "invalid_text_representation"
)

// MapCode maps a SQLSTATE onto Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23502":
		return NotNullViolation
	case "22001":
		return StringDataTooLong
	case "22P02":
		return InvalidTextRep
	default:
		return Other
	}
}

type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// Error is a classified PostgreSQL error that keeps the driver error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
