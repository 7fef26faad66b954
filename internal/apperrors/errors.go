// Package apperrors describes every failure the inventory core can report.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Code is the stable identifier sent to callers.
type Code string

const (
	CodeAssetNotFound         Code = "ASSET_NOT_FOUND"
	CodeAssetSerialNotFound   Code = "ASSET_SN_NOT_FOUND"
	CodeStaffNotFound         Code = "STAFF_NOT_FOUND"
	CodeAssetAlreadyExists    Code = "ASSET_ALREADY_EXISTS"
	CodeStaffAlreadyExists    Code = "STAFF_ALREADY_EXISTS"
	CodeConflictingAssignment Code = "CONFLICTING_ASSET_ASSIGNMENT"
	CodeNotAssigned           Code = "ASSET_NOT_ASSIGNED"
	CodeConfirmationRequired  Code = "CONFIRMATION_REQUIRED"
	CodeValidation            Code = "VALIDATION_ERROR"
	CodeDatabase              Code = "DATABASE_ERROR"
	CodeStorageInconsistency  Code = "STORAGE_INCONSISTENCY"
	CodeAssetRemovalFailed    Code = "ASSET_REMOVAL_FAILED"
)

// Reason discriminates Conflict errors so callers can branch without parsing messages.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonAlreadyAssigned   Reason = "ALREADY_ASSIGNED"
	ReasonNeedsConfirmation Reason = "NEEDS_CONFIRMATION"
	ReasonDuplicate         Reason = "DUPLICATE"
)

type Error struct {
	Kind    Kind
	Code    Code
	Reason  Reason
	Message string
	Field   string
	Value   string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s (%s: %s)", msg, e.Field, e.Value)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Details is the caller-safe part of the error; the wrapped cause is never exposed.
func (e *Error) Details() map[string]string {
	details := map[string]string{}
	if e.Field != "" {
		details[e.Field] = e.Value
	}
	if e.Reason != ReasonNone {
		details["reason"] = string(e.Reason)
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func NotFound(code Code, message, field, value string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message, Field: field, Value: value}
}

func Conflict(reason Reason, code Code, message, field, value string) *Error {
	return &Error{Kind: KindConflict, Code: code, Reason: reason, Message: message, Field: field, Value: value}
}

func Validation(code Code, message, field string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Field: field}
}

func Internal(code Code, message string, err error) *Error {
	return &Error{Kind: KindInternal, Code: code, Message: message, Err: err}
}

// As extracts an *Error from the chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

func ReasonOf(err error) Reason {
	if appErr, ok := As(err); ok {
		return appErr.Reason
	}
	return ReasonNone
}

func CodeOf(err error) Code {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeDatabase
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
