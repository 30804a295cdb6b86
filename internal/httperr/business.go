package httperr

import (
	"errors"
	"fmt"
)

// Workflow error codes. Each maps to a single HTTP status in FromError.
const (
	CodeValidation          = "validation_failure"
	CodeUnknownResourceType = "unknown_resource_type"
	CodeResourceNotFound    = "resource_not_found"
	CodeDuplicatePending    = "duplicate_pending_action"
	CodeNameInUse           = "name_already_in_use"
	CodePendingNameConflict = "pending_name_conflict"
	CodeAlreadyProcessed    = "already_processed"
	CodeNotFound            = "not_found"
	CodeForbidden           = "forbidden"
	CodeReferenceInUse      = "reference_in_use"
)

type BusinessError struct {
	Code    string
	Message string
	Details any
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessf(code, format string, args ...any) error {
	return BusinessError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches structured details, e.g. the list of failed validation rules.
func WithDetails(code, message string, details any) error {
	return BusinessError{Code: code, Message: message, Details: details}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// Code returns the business code carried by err, or "" for any other error.
func Code(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
