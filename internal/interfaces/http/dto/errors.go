package dto

import (
	"net/http"

	"github.com/storefront/backend/internal/domain/shared"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:      http.StatusBadRequest,
	shared.CodeInactiveProduct: http.StatusBadRequest,
	shared.CodeNotFound:        http.StatusNotFound,
	shared.CodeForbidden:       http.StatusForbidden,
	shared.CodeConflict:        http.StatusConflict,
	shared.CodeAuthentication:  http.StatusUnauthorized,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
