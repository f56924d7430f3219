package translateplus

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapResponseErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":"Invalid API key"}`, KindAuthentication},
		{"forbidden", http.StatusForbidden, `{"detail":"Forbidden"}`, KindAuthentication},
		{"payment required", http.StatusPaymentRequired, `{"detail":"Insufficient credits"}`, KindInsufficientCredits},
		{"rate limited", http.StatusTooManyRequests, `{"detail":"Rate limit exceeded"}`, KindRateLimit},
		{"bad request", http.StatusBadRequest, `{"detail":"target is invalid"}`, KindValidation},
		{"unprocessable", http.StatusUnprocessableEntity, `{"detail":"texts must be a list"}`, KindValidation},
		{"server error", http.StatusInternalServerError, `{"detail":"boom"}`, KindAPI},
		{"bad gateway", http.StatusBadGateway, "", KindAPI},
		{"credits reported without 402", http.StatusConflict, `{"detail":"Insufficient credits for this operation"}`, KindInsufficientCredits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mapResponseError(tt.statusCode, []byte(tt.body), http.Header{})
			assert.Equal(t, tt.want, e.Kind)
			assert.Equal(t, tt.statusCode, e.StatusCode)
		})
	}
}

func TestMapResponseErrorMessage(t *testing.T) {
	e := mapResponseError(http.StatusInternalServerError, []byte(`{"detail":"upstream down"}`), http.Header{})
	assert.Equal(t, "upstream down", e.Message)
	assert.JSONEq(t, `{"detail":"upstream down"}`, string(e.Response))

	// Missing or unparseable bodies fall back to a status message.
	e = mapResponseError(http.StatusInternalServerError, nil, http.Header{})
	assert.Equal(t, "API error: 500", e.Message)
	assert.Nil(t, e.Response)

	e = mapResponseError(http.StatusInternalServerError, []byte("<html>"), http.Header{})
	assert.Equal(t, "API error: 500", e.Message)
}

func TestMapResponseErrorRetryAfter(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "30")
	e := mapResponseError(http.StatusTooManyRequests, nil, header)
	assert.Equal(t, 30*time.Second, e.RetryAfter)

	e = mapResponseError(http.StatusTooManyRequests, nil, http.Header{})
	assert.Equal(t, time.Duration(0), e.RetryAfter)

	header = http.Header{}
	header.Set("Retry-After", "not-a-number")
	e = mapResponseError(http.StatusTooManyRequests, nil, header)
	assert.Equal(t, time.Duration(0), e.RetryAfter)
}

func TestMapConnectionError(t *testing.T) {
	e := mapConnectionError(errors.New("dial tcp: connection refused"))
	assert.Equal(t, KindConnection, e.Kind)
	assert.Zero(t, e.StatusCode)
	assert.Contains(t, e.Message, "connection refused")
}

func TestErrorString(t *testing.T) {
	e := &Error{Kind: KindAuthentication, Message: "Invalid API key", StatusCode: 401}
	assert.Equal(t, "translateplus: authentication (status 401): Invalid API key", e.Error())

	e = &Error{Kind: KindValidation, Message: "text is required"}
	assert.Equal(t, "translateplus: validation: text is required", e.Error())
}

func TestErrorPredicates(t *testing.T) {
	err := error(&Error{Kind: KindRateLimit, Message: "slow down", StatusCode: 429})
	assert.True(t, IsRateLimit(err))
	assert.False(t, IsAuthentication(err))

	// Predicates see through wrapping.
	wrapped := fmt.Errorf("translate failed: %w", err)
	assert.True(t, IsRateLimit(wrapped))

	e, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 429, e.StatusCode)

	assert.False(t, IsRateLimit(errors.New("plain error")))
	_, ok = AsError(errors.New("plain error"))
	assert.False(t, ok)
}
