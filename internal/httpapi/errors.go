package httpapi

// ValidationError is a client-facing structured error: malformed segment
// tuple, unknown format, oversize duration. It never touches caches or
// upstreams.
type ValidationError struct {
	Code    string
	Message string
	Details string
}

func (e *ValidationError) Error() string { return e.Code + ": " + e.Message }

const (
	ErrMissingSQueryParam = "MISSING_S_QUERY_PARAM"
	ErrInvalidSegmentFmt  = "INVALID_SEGMENT_FORMAT"
	ErrInvalidSegmentData = "INVALID_SEGMENT_DATA"
	ErrDurationTooLong    = "DURATION_TOO_LONG"
	ErrInvalidFormat      = "INVALID_FORMAT"
)

func validationErr(code, msg string) *ValidationError {
	return &ValidationError{Code: code, Message: msg}
}
