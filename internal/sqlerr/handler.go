package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/taskform/internal/errs"
)

// TablePrefix marks the table in wrapped "no rows" errors so HandleError can
// name the missing entity: fmt.Errorf("... %stasks: %w", TablePrefix, err).
const TablePrefix = "table:"

func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode builds codes such as TASK_REQUIRED.
func generateErrorCode(tableName string, errType Code) string {
	action := "ERROR"
	switch errType {
	case NotNullViolation:
		action = "REQUIRED"
	case StringDataTooLong, InvalidTextRep:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", strings.ToUpper(singular(tableName)), action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	fieldName := humanizeText(sqlErr.ColumnName)

	switch sqlErr.Code {
	case NotNullViolation:
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case StringDataTooLong:
		if fieldName != "" {
			return fmt.Sprintf("The %s value is too long", fieldName)
		}
		return "One or more values are too long"

	case InvalidTextRep:
		return "One or more values have an invalid format"

	default:
		return "An error occurred while processing your request"
	}
}

// singular turns "tasks" into "task"; an empty table name is "record".
func singular(tableName string) string {
	if tableName == "" {
		return "record"
	}
	if len(tableName) > 1 {
		return strings.TrimSuffix(tableName, "s")
	}
	return tableName
}

func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts err into an *errs.HTTPError. HTTPErrors pass through
// unchanged; anything unrecognised becomes a 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case StringDataTooLong, InvalidTextRep:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		errMsg := err.Error()
		if strings.Contains(errMsg, TablePrefix) {
			table := strings.Split(strings.Split(errMsg, TablePrefix)[1], ":")[0]
			entityName := humanizeText(singular(table))
			code := errs.MakeUpperCaseWithUnderscores(entityName + " " + http.StatusText(http.StatusNotFound))
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", entityName), true, &code)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
