package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const userAgent = "clickup-mcp"

// Config holds the credentials the client authenticates with.
// A personal API token takes precedence over an OAuth access token.
type Config struct {
	APIToken   string
	OAuthToken string
}

// RequestRecord describes one logical call after it completed.
type RequestRecord struct {
	ID        string
	Method    string
	Path      string
	Status    int
	Attempts  int
	Kind      ErrorKind
	StartedAt time.Time
	Duration  time.Duration
}

// Observer is notified once per logical call, after retries are exhausted
// or the call succeeded.
type Observer interface {
	ObserveRequest(ctx context.Context, rec RequestRecord)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, rec RequestRecord)

func (f ObserverFunc) ObserveRequest(ctx context.Context, rec RequestRecord) { f(ctx, rec) }

// Client is a paced, retrying client for the ClickUp v2 REST API.
// It is safe for concurrent use; pacing state belongs to the instance.
type Client struct {
	baseURL    string
	authHeader string
	http       *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
	maxRetries int
	retryCfg   retry.Config
	logger     *slog.Logger
	observer   Observer
}

// New creates a client. It fails immediately when no credential is set.
func New(cfg Config, opts ...Option) (*Client, error) {
	var auth string
	switch {
	case strings.TrimSpace(cfg.APIToken) != "":
		auth = strings.TrimSpace(cfg.APIToken)
	case strings.TrimSpace(cfg.OAuthToken) != "":
		auth = "Bearer " + strings.TrimSpace(cfg.OAuthToken)
	default:
		return nil, ErrMissingToken
	}

	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.maxRetries < 0 {
		o.maxRetries = 0
	}
	// fortify replaces a zero delay with its own 100ms default.
	if o.retryDelay <= 0 {
		o.retryDelay = time.Nanosecond
	}

	return &Client{
		baseURL:    strings.TrimRight(o.baseURL, "/"),
		authHeader: auth,
		http:       o.httpClient,
		limiter:    rate.NewLimiter(rate.Every(o.minSpacing), 1),
		timeout:    o.timeout,
		maxRetries: o.maxRetries,
		retryCfg: retry.Config{
			MaxAttempts:   o.maxRetries + 1,
			InitialDelay:  o.retryDelay,
			BackoffPolicy: retry.BackoffConstant,
			IsRetryable:   retryable,
		},
		logger:   o.logger,
		observer: o.observer,
	}, nil
}

func retryable(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Retryable()
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, query, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	rec := RequestRecord{
		ID:        uuid.New().String(),
		Method:    method,
		Path:      path,
		StartedAt: time.Now(),
	}
	out, err := c.execute(ctx, method, path, query, body, &rec)
	rec.Duration = time.Since(rec.StartedAt)
	rec.Kind = KindOf(err)
	if err != nil {
		c.logger.Debug("clickup request failed",
			"method", method, "path", path, "kind", rec.Kind,
			"status", rec.Status, "attempts", rec.Attempts)
	}
	if c.observer != nil {
		c.observer.ObserveRequest(ctx, rec)
	}
	return out, err
}

// execute runs the retry loop. Only retryable failures (rate limits) go
// around again; a cancelled context during backoff surfaces as a request
// error wrapping ctx.Err().
func (c *Client) execute(ctx context.Context, method, path string, query url.Values, body any, rec *RequestRecord) (json.RawMessage, error) {
	payload, err := encodeBody(body)
	if err != nil {
		return nil, &Error{Kind: KindRequest, Err: err}
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	r := retry.New[json.RawMessage](c.retryCfg)
	out, err := r.Do(ctx, func(ctx context.Context) (json.RawMessage, error) {
		rec.Attempts++
		res, status, aerr := c.attempt(ctx, method, target, payload)
		rec.Status = status
		if aerr != nil && IsRateLimited(aerr) && rec.Attempts <= c.maxRetries {
			c.logger.Warn("clickup rate limited, backing off",
				"method", method, "path", path, "attempt", rec.Attempts)
		}
		return res, aerr
	})
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, &Error{Kind: KindRequest, Err: err}
	}
	return out, nil
}

type exchange struct {
	status int
	body   []byte
}

// attempt performs one paced HTTP exchange and classifies the outcome.
func (c *Client) attempt(ctx context.Context, method, target string, payload []byte) (json.RawMessage, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, &Error{Kind: KindRequest, Err: err}
	}

	var (
		ex  *exchange
		err error
	)
	if c.timeout > 0 {
		t := timeout.New[*exchange](timeout.Config{DefaultTimeout: c.timeout})
		ex, err = t.Execute(ctx, c.timeout, func(ctx context.Context) (*exchange, error) {
			return c.roundTrip(ctx, method, target, payload)
		})
	} else {
		ex, err = c.roundTrip(ctx, method, target, payload)
	}
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return nil, 0, apiErr
		}
		return nil, 0, &Error{Kind: KindNetwork, Err: err}
	}

	if ex.status >= 200 && ex.status < 300 {
		body := bytes.TrimSpace(ex.body)
		if len(body) == 0 {
			return json.RawMessage("{}"), ex.status, nil
		}
		if !json.Valid(body) {
			return nil, ex.status, &Error{Kind: KindAPI, StatusCode: ex.status, Message: "invalid JSON in response"}
		}
		return json.RawMessage(body), ex.status, nil
	}

	var envelope apiErrorBody
	_ = json.Unmarshal(ex.body, &envelope)
	return nil, ex.status, &Error{
		Kind:       classifyStatus(ex.status),
		StatusCode: ex.status,
		Code:       envelope.ECode,
		Message:    envelope.Err,
	}
}

func (c *Client) roundTrip(ctx context.Context, method, target string, payload []byte) (*exchange, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, &Error{Kind: KindRequest, Err: err}
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read body

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: fmt.Errorf("read response: %w", err)}
	}
	return &exchange{status: resp.StatusCode, body: data}, nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return b, nil
	case []byte:
		return b, nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		return data, nil
	}
}
