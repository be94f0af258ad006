package errors

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

const (
	ErrorCode_INTERNAL         ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND        ErrorCode = "NOT_FOUND"
	ErrorCode_UNAUTHENTICATED  ErrorCode = "UNAUTHENTICATED"

	// Pipeline errors
	ErrorCode_EMPTY_TRANSCRIPT  ErrorCode = "EMPTY_TRANSCRIPT"
	ErrorCode_UNKNOWN_MODEL     ErrorCode = "UNKNOWN_MODEL"
	ErrorCode_ALL_CHUNKS_FAILED ErrorCode = "ALL_CHUNKS_FAILED"

	// Integration errors
	ErrorCode_DB_QUERY_FAILED ErrorCode = "DB_QUERY_FAILED"
	ErrorCode_STORAGE_FAILED  ErrorCode = "STORAGE_FAILED"
)

// String returns the code as a string
func (c ErrorCode) String() string {
	return string(c)
}
