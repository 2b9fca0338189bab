package apperrors

type ErrorCode string

const (
	ErrCodeDecodeError       ErrorCode = "decode_error"
	ErrCodeHTTPStatusError   ErrorCode = "http_status_error"
	ErrCodeInternalError     ErrorCode = "internal_error"
	ErrCodeInvalidRequest    ErrorCode = "invalid_request"
	ErrCodeInvalidURLParam   ErrorCode = "invalid_url_param"
	ErrCodeMissingCredential ErrorCode = "missing_credential"
	ErrCodeNoIPFound         ErrorCode = "no_ip_found"
	ErrCodeNotInitialized    ErrorCode = "not_initialized"
	ErrCodeRateLimitExceeded ErrorCode = "rate_limit_exceeded"
	ErrCodeTransportError    ErrorCode = "transport_error"
)
