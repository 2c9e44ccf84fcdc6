package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingParameter     ErrorCode = 102
	ErrCodeInvalidTimeZone      ErrorCode = 103
	ErrCodeInvalidSession       ErrorCode = 104

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeWriteFailed           ErrorCode = 203

	// Parse errors (300-399)
	ErrCodeParseError        ErrorCode = 300
	ErrCodeInvalidReason     ErrorCode = 301
	ErrCodeInvalidFlag       ErrorCode = 302
	ErrCodeInvalidTimestamp  ErrorCode = 303
	ErrCodeInvalidFieldCount ErrorCode = 304

	// Halt interval errors (400-499)
	ErrCodeInvalidInterval ErrorCode = 400

	// Host integration errors (500-599)
	ErrCodeVersionMismatch ErrorCode = 500
	ErrCodeInvalidVersion  ErrorCode = 501
)
