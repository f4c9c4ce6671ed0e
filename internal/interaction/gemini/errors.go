package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// ErrQuotaExceeded matches every FetchError caused by provider rate limiting.
var ErrQuotaExceeded = errors.New("quota exceeded")

// ResourceExhausted is the provider status reported together with HTTP 429.
const ResourceExhausted = "RESOURCE_EXHAUSTED"

// ErrorType is the category of a failed call.
type ErrorType string

const (
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeServer     ErrorType = "server"
	ErrorTypeClient     ErrorType = "client"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// FetchError is returned by every failed GetPrices call.
type FetchError struct {
	Type       ErrorType
	StatusCode int
	Status     string // provider status, ex: RESOURCE_EXHAUSTED
	Message    string
	Cause      error
}

func (e *FetchError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Type))
	sb.WriteString(" error")

	if e.StatusCode > 0 {
		sb.WriteString(fmt.Sprintf(" (status %d", e.StatusCode))
		if e.Status != "" {
			sb.WriteString(" " + e.Status)
		}
		sb.WriteString(")")
	}

	sb.WriteString(": " + e.Message)
	if e.Cause != nil {
		sb.WriteString(": " + e.Cause.Error())
	}

	return sb.String()
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is reports rate limit errors as ErrQuotaExceeded.
func (e *FetchError) Is(target error) bool {
	return target == ErrQuotaExceeded && e.Type == ErrorTypeRateLimit
}

func newNetworkError(cause error) *FetchError {
	return &FetchError{Type: ErrorTypeNetwork, Message: "request failed", Cause: cause}
}

func newTimeoutError(cause error) *FetchError {
	return &FetchError{Type: ErrorTypeTimeout, Message: "request timed out", Cause: cause}
}

func newValidationError(message string, cause error) *FetchError {
	return &FetchError{Type: ErrorTypeValidation, Message: message, Cause: cause}
}

// classifyResponse turns a non-2xx response into a FetchError.
func classifyResponse(statusCode int, status, message string) *FetchError {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	fetchErr := &FetchError{StatusCode: statusCode, Status: status, Message: message}

	switch {
	case statusCode == http.StatusTooManyRequests || status == ResourceExhausted:
		fetchErr.Type = ErrorTypeRateLimit
	case statusCode >= 500:
		fetchErr.Type = ErrorTypeServer
	case statusCode >= 400:
		fetchErr.Type = ErrorTypeClient
	default:
		fetchErr.Type = ErrorTypeUnknown
	}

	return fetchErr
}

var tooManyRequestsMarker = regexp.MustCompile(`(^|[^0-9])429([^0-9]|$)`)

// IsQuotaExceeded reports whether err signals rate or quota exhaustion.
// A FetchError is trusted as classified; any other error is searched for
// a 429 or RESOURCE_EXHAUSTED marker in its message.
func IsQuotaExceeded(err error) bool {
	if err == nil {
		return false
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Type == ErrorTypeRateLimit
	}

	message := err.Error()
	return tooManyRequestsMarker.MatchString(message) || strings.Contains(message, ResourceExhausted)
}
