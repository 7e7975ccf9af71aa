package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced by the credential endpoints.
const (
	CodeMissingCredentials         = "MISSING_CREDENTIALS"
	CodeMissingCredential          = "MISSING_CREDENTIAL"
	CodeInvalidOrExpiredCredential = "INVALID_OR_EXPIRED_CREDENTIAL"
	CodeInvalidPayload             = "INVALID_PAYLOAD"
	CodeRateLimited                = "RATE_LIMITED"
	CodeInternalError              = "INTERNAL_ERROR"
	CodeRequestTimeout             = "REQUEST_TIMEOUT"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, err error) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

func NewMissingCredentials() error {
	return NewDomainError(CodeMissingCredentials, "Missing credentials", http.StatusBadRequest, nil)
}

func NewMissingCredential() error {
	return NewDomainError(CodeMissingCredential, "Missing token", http.StatusBadRequest, nil)
}

// NewInvalidOrExpiredCredential hides the cause from callers; it is kept
// in Err for logging only.
func NewInvalidOrExpiredCredential(cause error) error {
	return NewDomainError(CodeInvalidOrExpiredCredential, "Invalid or expired token", http.StatusUnauthorized, cause)
}

func NewInvalidPayload(err error) error {
	return NewDomainError(CodeInvalidPayload, "Invalid request body", http.StatusBadRequest, err)
}

func NewRateLimited() error {
	return NewDomainError(CodeRateLimited, "Too many requests", http.StatusTooManyRequests, nil)
}

// NewRequestTimeout reports a request whose deadline passed or whose
// context was canceled before the work was done.
func NewRequestTimeout(err error) error {
	return NewDomainError(CodeRequestTimeout, "Request timed out", http.StatusServiceUnavailable, err)
}

func NewInternalError(err error) error {
	return NewDomainError(CodeInternalError, "Internal Server Error", http.StatusInternalServerError, err)
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewDomainError(CodeInternalError, "Internal Server Error", http.StatusInternalServerError, err)
}

// HasCode reports whether err carries the given domain code.
func HasCode(err error, code string) bool {
	de := ToDomainError(err)
	return de != nil && de.Code == code
}
