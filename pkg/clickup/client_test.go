package clickup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// newTestClient points a client at srv with fast pacing and retries.
func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithBaseURL(srv.URL),
		WithMinSpacing(0),
		WithRetry(3, 10*time.Millisecond),
		WithTimeout(5 * time.Second),
	}
	c, err := New(Config{APIToken: "pk_test"}, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_MissingToken(t *testing.T) {
	for _, cfg := range []Config{{}, {APIToken: "   "}, {OAuthToken: "\t"}} {
		_, err := New(cfg)
		if !errors.Is(err, ErrMissingToken) {
			t.Errorf("New(%+v) error = %v, want ErrMissingToken", cfg, err)
		}
	}
}

func TestClient_AuthHeader(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"personal token sent verbatim", Config{APIToken: "pk_123"}, "pk_123"},
		{"oauth token uses bearer", Config{OAuthToken: "oauth_abc"}, "Bearer oauth_abc"},
		{"personal token wins", Config{APIToken: "pk_1", OAuthToken: "oauth_2"}, "pk_1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Authorization")
				_, _ = w.Write([]byte(`{"teams":[]}`))
			}))
			defer srv.Close()

			c, err := New(tt.cfg, WithBaseURL(srv.URL), WithMinSpacing(0))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if _, err := c.GetAuthorizedTeams(context.Background()); err != nil {
				t.Fatalf("GetAuthorizedTeams: %v", err)
			}
			if got != tt.want {
				t.Errorf("Authorization = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_RequestShape(t *testing.T) {
	var (
		method, path, query, ctype string
		body                       map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, query = r.Method, r.URL.EscapedPath(), r.URL.RawQuery
		ctype = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"id":"t1"}`))
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	out, err := c.CreateTask(context.Background(), "list/1", map[string]any{"name": "Write docs"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if string(out) != `{"id":"t1"}` {
		t.Errorf("body = %s", out)
	}
	if method != http.MethodPost {
		t.Errorf("method = %s, want POST", method)
	}
	if path != "/list/list%2F1/task" {
		t.Errorf("path = %s, want escaped list id", path)
	}
	if query != "" {
		t.Errorf("query = %q, want empty", query)
	}
	if ctype != "application/json" {
		t.Errorf("Content-Type = %q", ctype)
	}
	if body["name"] != "Write docs" {
		t.Errorf("decoded body = %v", body)
	}
}

func TestClient_EmptySuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	out, err := c.DeleteTask(context.Background(), "abc", nil)
	if err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if string(out) != "{}" {
		t.Errorf("out = %s, want {}", out)
	}
}

func TestClient_Classification(t *testing.T) {
	tests := []struct {
		status  int
		body    string
		kind    ErrorKind
		message string
	}{
		{401, `{"err":"Token invalid","ECODE":"OAUTH_025"}`, KindUnauthorized, "Unauthorized. Check your API token."},
		{403, `{"err":"no access"}`, KindForbidden, "Forbidden: no access"},
		{404, `{"err":"Task not found"}`, KindNotFound, "Not found: Task not found"},
		{400, `{"err":"Invalid name"}`, KindBadRequest, "Bad request: Invalid name"},
		{500, `{"err":"boom"}`, KindAPI, "ClickUp API error (500): boom"},
		{502, `not json`, KindAPI, "ClickUp API error (502): Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()
			c := newTestClient(t, srv)

			_, err := c.GetTask(context.Background(), "t1", nil)
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if apiErr.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", apiErr.Kind, tt.kind)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Error() != tt.message {
				t.Errorf("message = %q, want %q", apiErr.Error(), tt.message)
			}
			if n := calls.Load(); n != 1 {
				t.Errorf("attempts = %d, want 1 (not retried)", n)
			}
			if IsNotFound(err) != (tt.kind == KindNotFound) {
				t.Errorf("IsNotFound = %v for kind %s", IsNotFound(err), tt.kind)
			}
			if IsUnauthorized(err) != (tt.kind == KindUnauthorized) {
				t.Errorf("IsUnauthorized = %v for kind %s", IsUnauthorized(err), tt.kind)
			}
		})
	}
}

func TestClient_RetriesRateLimitThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"err":"Rate limit reached"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var rec RequestRecord
	c := newTestClient(t, srv, WithObserver(ObserverFunc(func(_ context.Context, r RequestRecord) { rec = r })))

	out, err := c.GetTeam(context.Background(), "9")
	if err != nil {
		t.Fatalf("GetTeam: %v", err)
	}
	if string(out) != `{"ok":true}` {
		t.Errorf("out = %s", out)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("attempts = %d, want 3", n)
	}
	if rec.Attempts != 3 || rec.Status != 200 || rec.Kind != "" {
		t.Errorf("record = %+v", rec)
	}
}

func TestClient_RateLimitExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	start := time.Now()
	_, err := c.GetSpaces(context.Background(), "9", false)
	elapsed := time.Since(start)

	if !IsRateLimited(err) {
		t.Fatalf("error = %v, want rate limited", err)
	}
	if n := calls.Load(); n != 4 {
		t.Errorf("attempts = %d, want 4 (1 + 3 retries)", n)
	}
	if elapsed < 30*time.Millisecond {
		t.Errorf("elapsed = %s, want at least 3 retry delays", elapsed)
	}
	if got := err.Error(); got != "Rate limit exceeded. Please try again later." {
		t.Errorf("message = %q", got)
	}
}

func TestClient_RetryDisabled(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	c := newTestClient(t, srv, WithRetry(0, time.Millisecond))

	if _, err := c.GetSpace(context.Background(), "1"); !IsRateLimited(err) {
		t.Fatalf("error = %v, want rate limited", err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("attempts = %d, want 1", n)
	}
}

type failingTransport struct{ calls atomic.Int32 }

func (f *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	f.calls.Add(1)
	return nil, errors.New("connection refused")
}

func TestClient_NetworkFailureNotRetried(t *testing.T) {
	ft := &failingTransport{}
	c, err := New(Config{APIToken: "pk"},
		WithBaseURL("http://clickup.invalid"),
		WithHTTPClient(&http.Client{Transport: ft}),
		WithMinSpacing(0),
		WithRetry(3, time.Millisecond),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.GetList(context.Background(), "1")
	if KindOf(err) != KindNetwork {
		t.Fatalf("kind = %s, want %s (err %v)", KindOf(err), KindNetwork, err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Err == nil || !strings.Contains(apiErr.Err.Error(), "connection refused") {
		t.Errorf("cause not preserved: %v", err)
	}
	if n := ft.calls.Load(); n != 1 {
		t.Errorf("attempts = %d, want 1", n)
	}
}

func TestClient_InvalidJSONSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	if _, err := c.GetGoal(context.Background(), "g"); KindOf(err) != KindAPI {
		t.Fatalf("kind = %s, want %s", KindOf(err), KindAPI)
	}
}

func TestClient_BodyEncodeFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	_, err := c.Post(context.Background(), "/x", map[string]any{"bad": math.Inf(1)})
	if KindOf(err) != KindRequest {
		t.Fatalf("kind = %s, want %s", KindOf(err), KindRequest)
	}
	if calls.Load() != 0 {
		t.Error("request dispatched despite encode failure")
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()
	c := newTestClient(t, srv, WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := c.GetFolder(context.Background(), "f")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if IsRateLimited(err) {
		t.Errorf("timeout classified as rate limit: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Errorf("timeout not enforced, took %s", time.Since(start))
	}
}

type stampingTransport struct {
	mu    sync.Mutex
	times []time.Time
}

func (s *stampingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	s.mu.Lock()
	s.times = append(s.times, time.Now())
	s.mu.Unlock()
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{}`)),
		Header:     make(http.Header),
		Request:    r,
	}, nil
}

func TestClient_MinimumSpacing(t *testing.T) {
	const spacing = 60 * time.Millisecond
	st := &stampingTransport{}
	c, err := New(Config{APIToken: "pk"},
		WithBaseURL("http://clickup.test"),
		WithHTTPClient(&http.Client{Transport: st}),
		WithMinSpacing(spacing),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.GetAuthorizedTeams(context.Background()); err != nil {
				t.Errorf("GetAuthorizedTeams: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(st.times) != 4 {
		t.Fatalf("dispatches = %d, want 4", len(st.times))
	}
	const tolerance = 10 * time.Millisecond
	for i := 1; i < len(st.times); i++ {
		if gap := st.times[i].Sub(st.times[i-1]); gap < spacing-tolerance {
			t.Errorf("gap %d = %s, want >= %s", i, gap, spacing)
		}
	}
}

func TestClient_SpacingIsPerInstance(t *testing.T) {
	st := &stampingTransport{}
	mk := func() *Client {
		c, err := New(Config{APIToken: "pk"},
			WithBaseURL("http://clickup.test"),
			WithHTTPClient(&http.Client{Transport: st}),
			WithMinSpacing(200*time.Millisecond),
		)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return c
	}
	a, b := mk(), mk()

	start := time.Now()
	if _, err := a.GetAuthorizedTeams(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := b.GetAuthorizedTeams(context.Background()); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("independent clients delayed each other: %s", elapsed)
	}
}

func TestClient_ContextCanceledWhilePacing(t *testing.T) {
	st := &stampingTransport{}
	c, err := New(Config{APIToken: "pk"},
		WithBaseURL("http://clickup.test"),
		WithHTTPClient(&http.Client{Transport: st}),
		WithMinSpacing(time.Hour),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.GetAuthorizedTeams(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.GetAuthorizedTeams(ctx); err == nil {
		t.Fatal("expected error when context ends before the next slot")
	}
	if len(st.times) != 1 {
		t.Errorf("dispatches = %d, want 1", len(st.times))
	}
}

func TestClient_ContextEndsDuringBackoff(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	var rec RequestRecord
	c := newTestClient(t, srv,
		WithRetry(3, 2*time.Second),
		WithObserver(ObserverFunc(func(_ context.Context, r RequestRecord) { rec = r })),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := c.GetTask(ctx, "t1", nil)

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want context.DeadlineExceeded", err)
	}
	if IsRateLimited(err) {
		t.Errorf("deadline reported as rate limit: %v", err)
	}
	if KindOf(err) != KindRequest {
		t.Errorf("kind = %s, want %s", KindOf(err), KindRequest)
	}
	if rec.Kind != KindRequest {
		t.Errorf("journaled kind = %s, want %s", rec.Kind, KindRequest)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("attempts = %d, want 1", n)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("backoff not interrupted, took %s", elapsed)
	}
}

func TestClient_ZeroRetryDelay(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	c := newTestClient(t, srv, WithRetry(5, 0))

	start := time.Now()
	if _, err := c.GetList(context.Background(), "l"); !IsRateLimited(err) {
		t.Fatalf("error = %v, want rate limited", err)
	}
	if n := calls.Load(); n != 6 {
		t.Errorf("attempts = %d, want 6", n)
	}
	// Five 100ms library defaults would take at least 500ms.
	if elapsed := time.Since(start); elapsed >= 400*time.Millisecond {
		t.Errorf("zero delay was not honoured, took %s", elapsed)
	}
}

func TestError_Retryable(t *testing.T) {
	for kind, want := range map[ErrorKind]bool{
		KindRateLimited:  true,
		KindUnauthorized: false,
		KindNotFound:     false,
		KindNetwork:      false,
		KindAPI:          false,
	} {
		if got := (&Error{Kind: kind}).Retryable(); got != want {
			t.Errorf("%s.Retryable() = %v, want %v", kind, got, want)
		}
		if got := retryable(&Error{Kind: kind}); got != want {
			t.Errorf("retryable(%s) = %v, want %v", kind, got, want)
		}
	}
	if retryable(context.Canceled) {
		t.Error("plain context error must not be retried")
	}
}
