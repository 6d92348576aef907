package shared

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidIdentifier = "INVALID_IDENTIFIER"
	CodeDuplicateTag      = "DUPLICATE_TAG"
	CodeTagNotFound       = "TAG_NOT_FOUND"
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeTagInUse          = "TAG_IN_USE"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so a specific message
// still matches its sentinel kind.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error naming the violated rule
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidation, fmt.Sprintf(format, args...))
}

// Common domain errors
var (
	ErrValidation        = NewDomainError(CodeValidation, "Validation failed")
	ErrInvalidIdentifier = NewDomainError(CodeInvalidIdentifier, "Identifier must be non-negative")
	ErrDuplicateTag      = NewDomainError(CodeDuplicateTag, "Tag is already attached")
	ErrTagNotFound       = NewDomainError(CodeTagNotFound, "Tag is not attached")
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists     = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrTagInUse          = NewDomainError(CodeTagInUse, "Tag is referenced by tasks")
)

// IsValidation reports whether err is a validation failure of any kind.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidIdentifier)
}

// CodeOf returns the domain code carried by err, or an empty string.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
