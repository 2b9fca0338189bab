package proxmox

import (
	"fmt"

	"github.com/pvedash/pvedash/internal/apperrors"
)

// APIError represents an error encountered when talking to the Proxmox API.
// StatusCode 0 = no HTTP response was received, >0 = response received
type APIError struct {
	Code       apperrors.ErrorCode `json:"error_code"`
	StatusCode int                 `json:"status_code"`
	Message    string              `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// newMissingCredentialError reports a connection setting that was absent
// at construction time. envVar names the environment variable.
func newMissingCredentialError(envVar string) *APIError {
	return &APIError{
		Code:    apperrors.ErrCodeMissingCredential,
		Message: fmt.Sprintf("%s not set", envVar),
	}
}

// newTransportError covers DNS, connection, TLS and timeout failures -
// anything where the request never produced an HTTP response.
func newTransportError(action string, err error) *APIError {
	return &APIError{
		Code:    apperrors.ErrCodeTransportError,
		Message: fmt.Sprintf("failed to %s: %v", action, err),
	}
}

// newStatusError reports a non-success status from the node, quoting the
// HTTP status verbatim.
func newStatusError(action string, statusCode int, status string) *APIError {
	return &APIError{
		Code:       apperrors.ErrCodeHTTPStatusError,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("failed to %s: %s", action, status),
	}
}

func newDecodeError(action string, err error) *APIError {
	return &APIError{
		Code:    apperrors.ErrCodeDecodeError,
		Message: fmt.Sprintf("failed to %s: %v", action, err),
	}
}

// errNoIPFound is returned by the interface scan when a running container
// has no usable address. It never escapes ListContainers.
var errNoIPFound = &APIError{
	Code:    apperrors.ErrCodeNoIPFound,
	Message: "no IP found",
}
