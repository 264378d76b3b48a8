package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Analyzer preconditions
	ErrUnknownStrategy    = &Error{Code: "UNKNOWN_STRATEGY", Message: "unknown strategy"}
	ErrInsufficientShares = &Error{Code: "INSUFFICIENT_SHARES", Message: "insufficient shares for covered call"}
	ErrInvalidStock       = &Error{Code: "INVALID_STOCK", Message: "stock snapshot missing required fields"}
	ErrInvalidContract    = &Error{Code: "INVALID_CONTRACT", Message: "contract terms invalid"}

	// Position lifecycle
	ErrPositionNotFound  = &Error{Code: "POSITION_NOT_FOUND", Message: "position not found"}
	ErrPositionClosed    = &Error{Code: "POSITION_CLOSED", Message: "position already in a terminal state"}
	ErrPositionOpen      = &Error{Code: "POSITION_OPEN", Message: "position still open"}
	ErrDuplicatePosition = &Error{Code: "DUPLICATE_POSITION", Message: "position id already in portfolio"}
	ErrInsufficientCash  = &Error{Code: "INSUFFICIENT_CASH", Message: "not enough cash for collateral"}
	ErrInvalidCloseDate  = &Error{Code: "INVALID_CLOSE_DATE", Message: "close date before entry date"}

	// API errors
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "missing or invalid api key"}
	ErrBadRequest   = &Error{Code: "BAD_REQUEST", Message: "malformed request"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// Storage errors
	ErrArchiveFailed    = &Error{Code: "ARCHIVE_FAILED", Message: "archive operation failed"}
	ErrArchiveNotFound  = &Error{Code: "ARCHIVE_NOT_FOUND", Message: "no archived artifact at path"}
	ErrLedgerFailed     = &Error{Code: "LEDGER_FAILED", Message: "ledger operation failed"}
	ErrSnapshotNotFound = &Error{Code: "SNAPSHOT_NOT_FOUND", Message: "analysis snapshot not found"}
)
