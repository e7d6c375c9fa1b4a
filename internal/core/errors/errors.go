package errors

const (
	HttpInternalError         = "internal_error"
	HttpInvalidJsonError      = "invalid_json"
	HttpInvalidQueryError     = "invalid_query"
	HttpPayloadTooLargeError  = "payload_too_large"
	HttpStoreUnavailableError = "store_unavailable"
	HttpEventNotFoundError    = "event_not_found"
)

// ErrorResponse is the error body every HTTP handler returns.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
