// Package apierror provides the canonical response envelopes for the API.
// Every response body carries {success, message?, data?}; failure envelopes
// never include internal details (stack traces, SQL errors, etc.).
package apierror

// APIError is the envelope for all 4xx/5xx responses.
type APIError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Success: false, Message: msg}
}

// ValidationError wraps per-field validation failures.
type ValidationError struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Success: false, Message: "Validation failed.", Fields: fields}
}

// Result is the envelope for successful responses.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(msg string, data interface{}) *Result {
	return &Result{Success: true, Message: msg, Data: data}
}
