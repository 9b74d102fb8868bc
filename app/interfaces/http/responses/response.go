package responses

// ErrorResponse carries a stable error code for correlation with logs plus an
// optional human-readable message.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}
