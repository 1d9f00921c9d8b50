package constrec

import (
	"errors"
	"fmt"
)

// FieldError represents a failure of a record operation.
//
// Field errors include:
//   - Locked-key overwrite: a second assignment to an existing field
//   - Compound assignment: an indexed or nested target for a single field
//   - Bad input: non-string field names, non-structure construction input
//   - Missing field: clearing a field that is not present
//
// FieldError carries the offending field name where one exists so callers
// can report or recover without parsing the message.
type FieldError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Field is the field name involved, if any.
	Field string

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes field errors.
type ErrorCode string

const (
	// ErrCodeNotAStruct indicates construction input that is not a single
	// record-like value.
	ErrCodeNotAStruct ErrorCode = "NOT_A_STRUCT"

	// ErrCodeInvalidFieldNames indicates one or more supplied names are
	// not strings, or the name/value arguments do not pair up.
	ErrCodeInvalidFieldNames ErrorCode = "INVALID_FIELD_NAMES"

	// ErrCodePermissionDenied indicates an attempted overwrite of an
	// already-assigned field.
	ErrCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrCodeMultiDimensional indicates a compound or indexed assignment
	// target, which single-field operations do not support.
	ErrCodeMultiDimensional ErrorCode = "MULTI_DIM_NOT_SUPPORTED"

	// ErrCodeInvalidPropertyName indicates a removal given an unusable name.
	ErrCodeInvalidPropertyName ErrorCode = "INVALID_PROPERTY_NAME"

	// ErrCodeFieldNotFound indicates a removal of a field that is not present.
	ErrCodeFieldNotFound ErrorCode = "FIELD_NOT_FOUND"
)

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCode returns true if the error is a FieldError with the given code.
// Uses errors.As to handle wrapped errors.
func IsCode(err error, code ErrorCode) bool {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Code == code
	}
	return false
}

// IsPermissionDenied returns true if the error is a locked-field overwrite.
func IsPermissionDenied(err error) bool {
	return IsCode(err, ErrCodePermissionDenied)
}

// IsFieldNotFound returns true if the error is a missing-field removal.
func IsFieldNotFound(err error) bool {
	return IsCode(err, ErrCodeFieldNotFound)
}

// NewPermissionDeniedError creates a FieldError for a locked-field overwrite.
func NewPermissionDeniedError(field string) *FieldError {
	return &FieldError{
		Code:    ErrCodePermissionDenied,
		Field:   field,
		Message: "attempt to modify a const value",
	}
}

// NewFieldNotFoundError creates a FieldError for a missing field.
func NewFieldNotFoundError(field string) *FieldError {
	return &FieldError{
		Code:    ErrCodeFieldNotFound,
		Field:   field,
		Message: "no such field",
	}
}

// NewNotAStructError creates a FieldError for non-structure input.
func NewNotAStructError(got any) *FieldError {
	return &FieldError{
		Code:    ErrCodeNotAStruct,
		Message: fmt.Sprintf("input must be a single struct-like value, got %T", got),
	}
}

// NewMultiDimensionalError creates a FieldError for a compound target.
func NewMultiDimensionalError(field string) *FieldError {
	return &FieldError{
		Code:    ErrCodeMultiDimensional,
		Field:   field,
		Message: "indexed and nested assignment targets are not supported",
	}
}
