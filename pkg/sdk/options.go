package sdk

import "time"

// Defaults for NewClient. The server already paces ClickUp calls and retries
// HTTP 429 itself, so a single tool call can take several seconds; the
// timeout leaves room for that plus paginated *_list_all tools.
const (
	DefaultTimeout      = time.Minute
	DefaultMaxAttempts  = 2
	DefaultInitialDelay = 250 * time.Millisecond
)

type options struct {
	timeout      time.Duration
	maxAttempts  int
	initialDelay time.Duration
}

func defaultOptions() options {
	return options{
		timeout:      DefaultTimeout,
		maxAttempts:  DefaultMaxAttempts,
		initialDelay: DefaultInitialDelay,
	}
}

// Option configures the SDK client.
type Option func(*options)

// WithTimeout bounds each request to the server, including the server's own
// rate-limit backoff.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRetry sets how often a call is re-sent after a transport failure, with
// exponential backoff from initialDelay. Errors the server answers with
// (ClickUp 4xx/5xx, exhausted rate limits) are returned as *ToolError on the
// first attempt regardless of maxAttempts.
func WithRetry(maxAttempts int, initialDelay time.Duration) Option {
	return func(o *options) {
		o.maxAttempts = maxAttempts
		o.initialDelay = initialDelay
	}
}
