package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of the conversion and connection flows.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindConnectivity  ErrorKind = "connectivity"
	KindTunnelWarning ErrorKind = "tunnel_warning"
	KindUpstream      ErrorKind = "upstream"
)

// Error is the error type returned by connection and conversion operations.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Recoverable reports whether the failure may be replaced by a degraded result.
func (e *Error) Recoverable() bool {
	switch e.Kind {
	case KindConnectivity, KindTunnelWarning, KindUpstream:
		return true
	case KindValidation:
		return false
	default:
		return false
	}
}

// Remediation suggests what the user can do about the failure.
func (e *Error) Remediation() string {
	switch e.Kind {
	case KindValidation:
		return "Select an article or enter article text, then try again."
	case KindConnectivity:
		return "Check that the backend is running and the URL is correct."
	case KindTunnelWarning:
		return "The tunnel is showing its browser warning page. Open the URL in a browser once and accept it, or make sure the tunnel forwards the ngrok-skip-browser-warning header."
	case KindUpstream:
		return "The backend answered with an unexpected payload. Check the backend logs."
	default:
		return ""
	}
}

// NewValidationError reports missing or malformed input.
func NewValidationError(message string, err error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

// NewConnectivityError reports an unreachable backend or a non-2xx status (statusCode 0 if none).
func NewConnectivityError(message string, statusCode int, err error) *Error {
	return &Error{Kind: KindConnectivity, Message: message, StatusCode: statusCode, Err: err}
}

// NewTunnelWarningError reports an HTML body where JSON was expected.
func NewTunnelWarningError(message string, statusCode int) *Error {
	return &Error{Kind: KindTunnelWarning, Message: message, StatusCode: statusCode}
}

// NewUpstreamError reports a malformed payload on an otherwise successful response.
func NewUpstreamError(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// KindOf extracts the kind of err, returning false for foreign errors.
func KindOf(err error) (ErrorKind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
