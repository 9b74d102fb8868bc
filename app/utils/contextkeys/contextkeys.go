package contextkeys

// RequestId is the context key for the per-request correlation ID.
type RequestId struct{}
