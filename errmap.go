package translateplus

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// apiErrorBody is the error envelope the API wraps failures in.
type apiErrorBody struct {
	Detail string `json:"detail"`
}

// mapResponseError converts a non-2xx response into a typed *Error.
// It is a pure function of status, body and headers.
func mapResponseError(statusCode int, body []byte, header http.Header) *Error {
	message := fmt.Sprintf("API error: %d", statusCode)
	if len(body) > 0 {
		var envelope apiErrorBody
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
			message = envelope.Detail
		}
	}

	e := &Error{
		Message:    message,
		StatusCode: statusCode,
	}
	if len(body) > 0 {
		e.Response = json.RawMessage(append([]byte(nil), body...))
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		e.Kind = KindAuthentication
	case statusCode == http.StatusPaymentRequired:
		e.Kind = KindInsufficientCredits
	case statusCode == http.StatusTooManyRequests:
		e.Kind = KindRateLimit
		e.RetryAfter = parseRetryAfter(header)
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		e.Kind = KindValidation
	default:
		e.Kind = KindAPI
	}

	// The API sometimes reports quota exhaustion without a 402.
	if (e.Kind == KindAPI || e.Kind == KindValidation) && strings.Contains(strings.ToLower(message), "insufficient credits") {
		e.Kind = KindInsufficientCredits
	}

	return e
}

// mapConnectionError wraps a transport failure where no response was
// received. It never produces an API kind.
func mapConnectionError(err error) *Error {
	return &Error{
		Kind:    KindConnection,
		Message: fmt.Sprintf("request failed: %v", err),
	}
}

func parseRetryAfter(header http.Header) time.Duration {
	value := header.Get("Retry-After")
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
