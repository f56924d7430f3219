// Package translateplus is the Go client for the TranslatePlus API, a
// translation service for text, HTML, emails, subtitles and i18n files.
//
// All translation, language detection and i18n job processing happens
// server-side; the client marshals requests, manages the HTTP session
// with retries and a concurrency bound, and maps failures into typed
// errors.
package translateplus

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
)

// Version of the library, reported in the User-Agent header.
const Version = "2.0.4"

const userAgent = "translateplus-go/" + Version

// Client talks to the TranslatePlus API. One client owns one HTTP
// session; it is safe for concurrent use until Close.
//
// Example:
//
//	client, err := translateplus.New(translateplus.NewConfig("your-api-key"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Translate(ctx, "Hello", "en", "fr")
type Client struct {
	config    Config
	transport *transport
	logger    zerolog.Logger

	// Construction seams, set by options before the transport exists.
	httpClient *http.Client

	mu     sync.Mutex
	closed bool
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithLogger attaches a structured logger. The default logger discards
// everything; the client never writes to global output on its own.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client. The caller owns
// its timeout configuration.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client from the given configuration.
func New(config *Config, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, newValidationError("config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c := &Client{
		config: config.normalized(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.transport = newTransport(c.config, c.httpClient, c.logger)
	return c, nil
}

// Close releases the connection pool. Close is idempotent; any call on
// a closed client fails with a usage error instead of reopening.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.transport.closeIdleConnections()
	return nil
}

// checkOpen rejects calls on a closed client before any network I/O.
func (c *Client) checkOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return newUsageError("client is closed")
	}
	return nil
}

// WithClient runs fn against a client built from config and guarantees
// Close on every exit path.
//
// Example:
//
//	err := translateplus.WithClient(cfg, func(client *translateplus.Client) error {
//		result, err := client.Translate(ctx, "Hello", "en", "fr")
//		if err != nil {
//			return err
//		}
//		fmt.Println(result.Translations.Translation)
//		return nil
//	})
func WithClient(config *Config, fn func(*Client) error, opts ...Option) error {
	client, err := New(config, opts...)
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}
