package dto

// MessageResponse carries a human-readable notice back to the client.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a single generic error message.
// Auth failures always use this shape so that responses never reveal
// which field was wrong.
type ErrorResponse struct {
	Error string `json:"error"`
}

// FieldErrorResponse carries per-field validation violations, keyed by the
// field's form/json name.
type FieldErrorResponse struct {
	Errors map[string]string `json:"errors"`
}
