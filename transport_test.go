package translateplus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransientFailuresRetriedUntilSuccess(t *testing.T) {
	var attempts int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&attempts, 1)
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"temporary failure"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translations":{"text":"Hello","translation":"Bonjour","source":"en","target":"fr"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.transport.maxRetries = 3

	result, err := client.Translate(context.Background(), "Hello", "en", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", result.Translations.Translation)
	// max_retries is the total attempt budget: two failures, one success.
	assert.Equal(t, int64(3), atomic.LoadInt64(&attempts))
}

func TestRetriesExhaustedSurfaceLastError(t *testing.T) {
	var attempts int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
		switch n {
		case 1:
			_, _ = w.Write([]byte(`{"detail":"failure one"}`))
		case 2:
			_, _ = w.Write([]byte(`{"detail":"failure two"}`))
		default:
			_, _ = w.Write([]byte(`{"detail":"failure three"}`))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.transport.maxRetries = 3

	_, err := client.Translate(context.Background(), "Hello", "en", "fr")
	require.Error(t, err)
	assert.Equal(t, int64(3), atomic.LoadInt64(&attempts))

	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindAPI, e.Kind)
	assert.Equal(t, http.StatusInternalServerError, e.StatusCode)
	// The last observed error is surfaced unchanged.
	assert.Equal(t, "failure three", e.Message)
}

func TestClientErrorsNotRetried(t *testing.T) {
	var attempts int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&attempts, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid API key"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.transport.maxRetries = 5

	_, err := client.Translate(context.Background(), "Hello", "en", "fr")
	assert.True(t, IsAuthentication(err))
	assert.Equal(t, int64(1), atomic.LoadInt64(&attempts))
}

func TestInsufficientCreditsNotRetried(t *testing.T) {
	var attempts int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&attempts, 1)
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"detail":"Insufficient credits"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.transport.maxRetries = 5

	_, err := client.Translate(context.Background(), "Hello", "en", "fr")
	assert.True(t, IsInsufficientCredits(err))
	assert.Equal(t, int64(1), atomic.LoadInt64(&attempts))
}

func TestRateLimitRetried(t *testing.T) {
	var attempts int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&attempts, 1)
		if n == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"detail":"Rate limit exceeded"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translations":{"translation":"Bonjour","source":"en","target":"fr"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	result, err := client.Translate(context.Background(), "Hello", "en", "fr")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", result.Translations.Translation)
	assert.Equal(t, int64(2), atomic.LoadInt64(&attempts))
}

func TestRateLimitCarriesRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"detail":"Rate limit exceeded"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.transport.maxRetries = 1

	_, err := client.Translate(context.Background(), "Hello", "en", "fr")
	require.True(t, IsRateLimit(err))

	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, 60*time.Second, e.RetryAfter)
	assert.Equal(t, "Rate limit exceeded", e.Message)
}

func TestConnectionFailureMapsToConnectionKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(t, server.URL)
	client.transport.maxRetries = 2
	server.Close()

	_, err := client.Translate(context.Background(), "Hello", "en", "fr")
	require.Error(t, err)
	assert.True(t, IsConnection(err))
	// A connectivity failure is never reported as a server error.
	assert.False(t, IsAPI(err))
}

func TestRequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`{"translations":{"translation":"Bonjour"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Translate(context.Background(), "Hello", "en", "fr")
	require.NoError(t, err)
}

func TestMalformedResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Translate(context.Background(), "Hello", "en", "fr")
	require.Error(t, err)
	assert.True(t, IsAPI(err))
	assert.Contains(t, err.Error(), "failed to parse response")
}
