package clickup

import (
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the ClickUp v2 API root.
	DefaultBaseURL = "https://api.clickup.com/api/v2"

	DefaultTimeout    = 30 * time.Second
	DefaultMinSpacing = 100 * time.Millisecond
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
)

type options struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	minSpacing time.Duration
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
	observer   Observer
}

func defaultOptions() options {
	return options{
		baseURL:    DefaultBaseURL,
		timeout:    DefaultTimeout,
		minSpacing: DefaultMinSpacing,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
}

// Option configures the client.
type Option func(*options)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithMinSpacing sets the minimum gap between request dispatches.
// Zero disables pacing.
func WithMinSpacing(d time.Duration) Option {
	return func(o *options) { o.minSpacing = d }
}

// WithRetry configures rate-limit retries: maxRetries additional attempts,
// each after a fixed delay. A zero delay retries immediately.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(o *options) {
		o.maxRetries = maxRetries
		o.retryDelay = delay
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers an observer notified once per logical call.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}
