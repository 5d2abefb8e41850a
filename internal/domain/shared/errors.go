package shared

import "fmt"

// DomainError represents a business-rule violation surfaced to clients
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error codes for the order lifecycle core
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInactiveProduct = "INACTIVE_PRODUCT"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeAuthentication  = "AUTHENTICATION_ERROR"
)

// Common domain errors
var (
	ErrNotFound  = NewDomainError(CodeNotFound, "Resource not found")
	ErrForbidden = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
)
