package types

import "fmt"

// Error types reported in the JSON error envelope
const (
	ErrorTypeUnknown    = "unknown"
	ErrorTypeNotFound   = "not_found"
	ErrorTypeValidation = "validation"
	ErrorTypeParam      = "request.param"
	ErrorTypeAuthLogin  = "auth.login"
	ErrorTypeAuthState  = "auth.state"
	ErrorTypeMembership = "project.membership"
	ErrorTypeUpload     = "upload.file"
)

// CustomError is an error with the HTTP status and error type to respond with
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewCustomError creates a CustomError
func NewCustomError(code int, errorType, message string) *CustomError {
	return &CustomError{Code: code, Message: message, Type: errorType}
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
