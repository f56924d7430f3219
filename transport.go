package translateplus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// transport owns the HTTP session shared by all calls on one client.
// The underlying connection pool is the only mutable shared state and
// is safe for concurrent use.
type transport struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	logger     zerolog.Logger

	// newBackOff builds the wait schedule between retry attempts.
	// Replaced in tests to avoid real sleeps.
	newBackOff func() backoff.BackOff
}

func newTransport(cfg Config, httpClient *http.Client, logger zerolog.Logger) *transport {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		}
	}
	return &transport{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 500 * time.Millisecond
			bo.MaxInterval = 10 * time.Second
			return bo
		},
	}
}

// requestSpec describes one API call. The body is held as bytes so it
// can be replayed across retry attempts.
type requestSpec struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

func (t *transport) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return newValidationError("failed to marshal request: %v", err)
	}
	_, err = t.roundTrip(ctx, requestSpec{
		method:      http.MethodPost,
		path:        path,
		body:        data,
		contentType: "application/json",
	}, out)
	return err
}

func (t *transport) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	_, err := t.roundTrip(ctx, requestSpec{
		method: http.MethodGet,
		path:   path,
		query:  query,
	}, out)
	return err
}

func (t *transport) deleteJSON(ctx context.Context, path string, out interface{}) error {
	_, err := t.roundTrip(ctx, requestSpec{
		method: http.MethodDelete,
		path:   path,
	}, out)
	return err
}

// upload sends a multipart/form-data request with a single file part
// plus plain form fields.
func (t *transport) upload(ctx context.Context, path string, fields map[string]string, filename string, content []byte, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return newValidationError("failed to build upload request: %v", err)
		}
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return newValidationError("failed to build upload request: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		return newValidationError("failed to build upload request: %v", err)
	}
	if err := writer.Close(); err != nil {
		return newValidationError("failed to build upload request: %v", err)
	}

	_, err = t.roundTrip(ctx, requestSpec{
		method:      http.MethodPost,
		path:        path,
		body:        buf.Bytes(),
		contentType: writer.FormDataContentType(),
	}, out)
	return err
}

// download fetches a raw response body without JSON decoding.
func (t *transport) download(ctx context.Context, path string) ([]byte, error) {
	return t.roundTrip(ctx, requestSpec{
		method: http.MethodGet,
		path:   path,
	}, nil)
}

// roundTrip performs the request with bounded retries. Connection
// errors, 5xx and 429 are retried up to the configured attempt budget;
// other client errors are surfaced immediately. When retries exhaust,
// the last observed error is returned unchanged.
func (t *transport) roundTrip(ctx context.Context, spec requestSpec, out interface{}) ([]byte, error) {
	target := t.baseURL + spec.path
	if len(spec.query) > 0 {
		target += "?" + spec.query.Encode()
	}

	bo := t.newBackOff()
	var lastErr *Error
	for attempt := 1; attempt <= t.maxRetries; attempt++ {
		raw, attemptErr := t.attempt(ctx, spec, target)
		if attemptErr == nil {
			if out != nil {
				if err := json.Unmarshal(raw, out); err != nil {
					return nil, &Error{Kind: KindAPI, Message: fmt.Sprintf("failed to parse response: %v", err)}
				}
			}
			return raw, nil
		}

		lastErr = attemptErr
		if !retryable(attemptErr) || attempt == t.maxRetries {
			break
		}

		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			break
		}
		if attemptErr.Kind == KindRateLimit && attemptErr.RetryAfter > 0 {
			wait = attemptErr.RetryAfter
		}
		t.logger.Debug().
			Str("method", spec.method).
			Str("path", spec.path).
			Str("kind", string(attemptErr.Kind)).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("retrying request")

		select {
		case <-ctx.Done():
			return nil, mapConnectionError(ctx.Err())
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

// attempt performs a single HTTP exchange and maps any failure.
func (t *transport) attempt(ctx context.Context, spec requestSpec, target string) ([]byte, *Error) {
	var body io.Reader
	if spec.body != nil {
		body = bytes.NewReader(spec.body)
	}
	req, err := http.NewRequestWithContext(ctx, spec.method, target, body)
	if err != nil {
		return nil, newValidationError("failed to create request: %v", err)
	}
	req.Header.Set("X-API-KEY", t.apiKey)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if spec.contentType != "" {
		req.Header.Set("Content-Type", spec.contentType)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, mapConnectionError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, mapConnectionError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapResponseError(resp.StatusCode, raw, resp.Header)
	}
	return raw, nil
}

// retryable reports whether a later attempt could succeed.
func retryable(e *Error) bool {
	switch e.Kind {
	case KindConnection, KindRateLimit:
		return true
	case KindAPI:
		return e.StatusCode >= 500
	}
	return false
}

// closeIdleConnections releases the connection pool.
func (t *transport) closeIdleConnections() {
	t.httpClient.CloseIdleConnections()
}
