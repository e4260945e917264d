package e2e

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/felixgeelhaar/clickup-mcp/pkg/sdk"
	"github.com/felixgeelhaar/mcp-go/client"
)

// fakeClickUp serves the handful of endpoints the happy path touches. The
// first request for the task list is rate limited.
type fakeClickUp struct {
	limited atomic.Bool
	hits    atomic.Int32
}

func (f *fakeClickUp) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.hits.Add(1)
	w.Header().Set("Content-Type", "application/json")
	if r.Header.Get("Authorization") != "pk_e2e" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"err":"Token invalid","ECODE":"OAUTH_025"}`))
		return
	}

	switch {
	case r.URL.Path == "/team":
		_, _ = w.Write([]byte(`{"teams":[{"id":"9001","name":"Acme","members":[{"user":{"id":7,"username":"lin"}}]}]}`))
	case r.URL.Path == "/list/901/task":
		if f.limited.CompareAndSwap(false, true) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"err":"Rate limit reached","ECODE":"APP_002"}`))
			return
		}
		switch r.URL.Query().Get("page") {
		case "0":
			_, _ = w.Write([]byte(`{"tasks":[{"id":"t1","name":"Design","status":{"status":"open"}},{"id":"t2","name":"Build","status":{"status":"open"}}],"last_page":false}`))
		default:
			_, _ = w.Write([]byte(`{"tasks":[{"id":"t3","name":"Ship","status":{"status":"review"}}],"last_page":true}`))
		}
	case r.URL.Path == "/task/missing":
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"err":"Task not found","ECODE":"ITEM_013"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"err":"Route not found"}`))
	}
}

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
)

// buildBinary compiles cmd/clickup-mcp once per test run.
func buildBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "clickup-mcp-e2e-*")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, "clickup-mcp")
		build := exec.Command("go", "build", "-o", binPath, "./cmd/clickup-mcp")
		build.Dir = repoRoot(t)
		if out, err := build.CombinedOutput(); err != nil {
			buildErr = fmt.Errorf("build clickup-mcp: %v\n%s", err, out)
		}
	})
	if buildErr != nil {
		t.Fatal(buildErr)
	}
	return binPath
}

func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		dir = filepath.Dir(dir)
	}
	t.Fatal("could not locate repo root")
	return ""
}

// writeConfig points the server at baseURL with fast pacing and a journal.
func writeConfig(t *testing.T, baseURL string) (configPath, journalPath string) {
	t.Helper()
	dir := t.TempDir()
	configPath = filepath.Join(dir, "config.yaml")
	journalPath = filepath.Join(dir, "journal.db")
	content := fmt.Sprintf(`api_token: pk_e2e
base_url: %s
min_request_spacing: 0s
retry_delay: 10ms
max_retries: 2
log_level: error
journal_path: %s
`, baseURL, journalPath)
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, journalPath
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"CLICKUP_API_TOKEN", "CLICKUP_OAUTH_TOKEN", "CLICKUP_BASE_URL", "CLICKUP_MCP_LOG_LEVEL", "CLICKUP_MCP_JOURNAL"} {
		t.Setenv(name, "")
	}
}

func TestMCPHappyPath(t *testing.T) {
	bin := buildBinary(t)
	clearEnv(t)

	fake := &fakeClickUp{}
	backend := httptest.NewServer(fake)
	defer backend.Close()
	configPath, _ := writeConfig(t, backend.URL)

	transport, err := client.NewStdioTransport(bin, "--config", configPath, "mcp", "--transport", "stdio")
	if err != nil {
		t.Fatalf("stdio transport: %v", err)
	}
	c := sdk.NewClient(transport, sdk.WithTimeout(60*time.Second))
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	t.Log("Testing initialize...")
	info, err := c.Initialize(ctx)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !info.Capabilities.Tools {
		t.Fatal("expected tools capability")
	}
	if err := c.Compatible(ctx); err != nil {
		t.Fatalf("compatible: %v", err)
	}

	t.Log("Testing workspaces...")
	teams, err := c.Workspaces(ctx)
	if err != nil {
		t.Fatalf("workspaces: %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "Acme" {
		t.Fatalf("teams = %+v", teams)
	}

	t.Log("Testing paginated list through a rate limit...")
	all, err := c.ListAllTasks(ctx, sdk.ListTasksRequest{ListID: "901"})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all.Tasks) != 3 || all.Pages != 2 {
		t.Fatalf("collection = %d tasks / %d pages", len(all.Tasks), all.Pages)
	}
	if all.Tasks[2].Name != "Ship" {
		t.Errorf("last task = %+v", all.Tasks[2])
	}

	t.Log("Testing classified errors...")
	_, err = c.GetTask(ctx, "missing")
	var toolErr *sdk.ToolError
	if !errors.As(err, &toolErr) || !toolErr.NotFound() {
		t.Fatalf("err = %v, want not-found ToolError", err)
	}
	if !strings.Contains(toolErr.Message, "Task not found") {
		t.Errorf("message = %q", toolErr.Message)
	}

	t.Log("Testing request journal...")
	report, err := c.RecentRequests(ctx, 50)
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	// One row per logical call: /team, two list pages, the missing task.
	if report.Stats.Total != 4 {
		t.Errorf("total = %d, want 4", report.Stats.Total)
	}
	if report.Stats.Retried != 1 || report.Stats.Failed != 1 {
		t.Errorf("stats = %+v", report.Stats)
	}
	if got := fake.hits.Load(); got != 5 {
		t.Errorf("backend hits = %d, want 5", got)
	}
}

func TestCLIDoctorAndJournal(t *testing.T) {
	bin := buildBinary(t)
	clearEnv(t)

	backend := httptest.NewServer(&fakeClickUp{})
	defer backend.Close()
	configPath, _ := writeConfig(t, backend.URL)

	doctor := exec.Command(bin, "--config", configPath, "doctor")
	out, err := doctor.CombinedOutput()
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	if !strings.Contains(string(out), "Checking ClickUp API... (1 workspaces) PASS") {
		t.Errorf("doctor output:\n%s", out)
	}

	journal := exec.Command(bin, "--config", configPath, "journal", "--limit", "5")
	out, err = journal.CombinedOutput()
	if err != nil {
		t.Fatalf("journal: %v\n%s", err, out)
	}
	if !strings.Contains(string(out), "1 calls") || !strings.Contains(string(out), "/team") {
		t.Errorf("journal output:\n%s", out)
	}
}

func TestCLIMissingToken(t *testing.T) {
	bin := buildBinary(t)
	clearEnv(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	cmd := exec.Command(bin, "--config", configPath, "mcp")
	out, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		t.Fatalf("err = %v, want exit 1\n%s", err, out)
	}
	if !strings.Contains(string(out), "Hint: Set CLICKUP_API_TOKEN") {
		t.Errorf("output:\n%s", out)
	}
}

func TestMCPServerErrorsAreNotResent(t *testing.T) {
	bin := buildBinary(t)
	clearEnv(t)

	var hits sync.Map // path -> *atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n, _ := hits.LoadOrStore(r.URL.Path, new(atomic.Int32))
		n.(*atomic.Int32).Add(1)
		switch r.URL.Path {
		case "/task/locked":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"err":"Token invalid","ECODE":"OAUTH_025"}`))
		default:
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"err":"Rate limit reached","ECODE":"APP_002"}`))
		}
	}))
	defer backend.Close()
	configPath, _ := writeConfig(t, backend.URL)

	transport, err := client.NewStdioTransport(bin, "--config", configPath, "mcp", "--transport", "stdio")
	if err != nil {
		t.Fatalf("stdio transport: %v", err)
	}
	c := sdk.NewClient(transport, sdk.WithTimeout(60*time.Second), sdk.WithRetry(3, 10*time.Millisecond))
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if _, err := c.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	hitsFor := func(path string) int32 {
		n, ok := hits.Load(path)
		if !ok {
			return 0
		}
		return n.(*atomic.Int32).Load()
	}

	_, err = c.GetTask(ctx, "locked")
	var toolErr *sdk.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("unauthorized: want ToolError, got %T: %v", err, err)
	}
	if toolErr.Message != "Unauthorized. Check your API token." {
		t.Errorf("unauthorized message = %q", toolErr.Message)
	}
	if n := hitsFor("/task/locked"); n != 1 {
		t.Errorf("unauthorized upstream hits = %d, want 1", n)
	}

	_, err = c.GetTask(ctx, "busy")
	if !errors.As(err, &toolErr) || !toolErr.RateLimited() {
		t.Fatalf("rate limited: want RateLimited ToolError, got %v", err)
	}
	// max_retries: 2 in the config gives three attempts inside the server.
	if n := hitsFor("/task/busy"); n != 3 {
		t.Errorf("rate limited upstream hits = %d, want 3", n)
	}
}
