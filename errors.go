package translateplus

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies every error the client can return.
// The set is closed so callers can branch exhaustively on it.
type ErrorKind string

const (
	// KindValidation marks malformed caller input, rejected locally
	// before any network call, or a server-side 400/422 response.
	KindValidation ErrorKind = "validation"
	// KindUsage marks calls on a closed client.
	KindUsage ErrorKind = "usage"
	// KindAuthentication marks 401/403 responses.
	KindAuthentication ErrorKind = "authentication"
	// KindInsufficientCredits marks 402 or an explicit
	// credits-exhausted response body.
	KindInsufficientCredits ErrorKind = "insufficient_credits"
	// KindRateLimit marks 429 responses. The error may carry a
	// Retry-After hint.
	KindRateLimit ErrorKind = "rate_limit"
	// KindAPI marks any other non-2xx server response.
	KindAPI ErrorKind = "api"
	// KindConnection marks network-level failures where no response
	// was received. It is never used for server-reported errors.
	KindConnection ErrorKind = "connection"
)

// Error is the single error payload shared by all kinds.
//
// Kind: error classification, see ErrorKind
// Message: human-readable description
// StatusCode: HTTP status of the failed response, 0 for local errors
// RetryAfter: server-provided wait hint on rate limiting, 0 if absent
// Response: raw response body of the failed request, nil if none
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	RetryAfter time.Duration
	Response   json.RawMessage
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("translateplus: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("translateplus: %s: %s", e.Kind, e.Message)
}

// AsError extracts the typed *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func kindOf(err error) ErrorKind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return ""
}

// IsValidation reports whether err is a local or server-side validation error.
func IsValidation(err error) bool { return kindOf(err) == KindValidation }

// IsUsage reports whether err was caused by calling a closed client.
func IsUsage(err error) bool { return kindOf(err) == KindUsage }

// IsAuthentication reports whether err was caused by a bad or expired credential.
func IsAuthentication(err error) bool { return kindOf(err) == KindAuthentication }

// IsInsufficientCredits reports whether err indicates an exhausted account quota.
func IsInsufficientCredits(err error) bool { return kindOf(err) == KindInsufficientCredits }

// IsRateLimit reports whether err was caused by throttling.
func IsRateLimit(err error) bool { return kindOf(err) == KindRateLimit }

// IsAPI reports whether err is a server error outside the more specific kinds.
func IsAPI(err error) bool { return kindOf(err) == KindAPI }

// IsConnection reports whether err is a network-level failure with no response.
func IsConnection(err error) bool { return kindOf(err) == KindConnection }

func newValidationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func newUsageError(message string) *Error {
	return &Error{Kind: KindUsage, Message: message}
}
