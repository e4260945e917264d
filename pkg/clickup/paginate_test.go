package clickup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
)

// pageServer serves pages[n] for ?page=n and records requested pages.
func pageServer(t *testing.T, pages []string, seen *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Query().Get("page")
		*seen = append(*seen, p)
		n, err := strconv.Atoi(p)
		if err != nil || n >= len(pages) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"err":"no such page"}`))
			return
		}
		if pages[n] == "" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(pages[n]))
	}))
}

func tasksPage(n int, offset int, last bool) string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf(`{"id":"t%d"}`, offset+i)
	}
	return fmt.Sprintf(`{"tasks":[%s],"last_page":%t}`, strings.Join(items, ","), last)
}

func TestPaginate_StopsAtLastPage(t *testing.T) {
	var seen []string
	srv := pageServer(t, []string{
		tasksPage(10, 0, false),
		tasksPage(10, 10, false),
		tasksPage(10, 20, true),
	}, &seen)
	defer srv.Close()
	c := newTestClient(t, srv)

	var batches [][]json.RawMessage
	for batch, err := range c.AllTasks(context.Background(), "L1", nil) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		batches = append(batches, batch)
	}

	if len(batches) != 3 {
		t.Fatalf("batches = %d, want 3", len(batches))
	}
	for i, b := range batches {
		if len(b) != 10 {
			t.Errorf("batch %d size = %d, want 10", i, len(b))
		}
	}
	if got := strings.Join(seen, ","); got != "0,1,2" {
		t.Errorf("pages requested = %s, want 0,1,2", got)
	}
}

func TestPaginate_StopsOnEmptyPage(t *testing.T) {
	var seen []string
	srv := pageServer(t, []string{
		tasksPage(5, 0, false),
		`{"tasks":[]}`,
		tasksPage(5, 5, true),
	}, &seen)
	defer srv.Close()
	c := newTestClient(t, srv)

	all, pages, err := Collect(c.AllTasks(context.Background(), "L1", nil), 0)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if pages != 1 || len(all) != 5 {
		t.Errorf("pages = %d items = %d, want 1 and 5", pages, len(all))
	}
	if len(seen) != 2 {
		t.Errorf("requests = %d, want 2", len(seen))
	}
}

func TestPaginate_YieldsFinalPageWithItems(t *testing.T) {
	var seen []string
	srv := pageServer(t, []string{tasksPage(3, 0, true)}, &seen)
	defer srv.Close()
	c := newTestClient(t, srv)

	all, pages, err := Collect(c.AllTasks(context.Background(), "L1", nil), 0)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if pages != 1 || len(all) != 3 {
		t.Errorf("pages = %d items = %d, want 1 and 3", pages, len(all))
	}
	if len(seen) != 1 {
		t.Errorf("requests = %d, want 1", len(seen))
	}
}

func TestPaginate_ErrorEndsIteration(t *testing.T) {
	var seen []string
	srv := pageServer(t, []string{tasksPage(2, 0, false), ""}, &seen)
	defer srv.Close()
	c := newTestClient(t, srv)

	var (
		batches int
		errs    int
	)
	for batch, err := range c.AllTasks(context.Background(), "L1", nil) {
		if err != nil {
			errs++
			if KindOf(err) != KindAPI {
				t.Errorf("kind = %s, want %s", KindOf(err), KindAPI)
			}
			continue
		}
		if len(batch) != 2 {
			t.Errorf("batch size = %d", len(batch))
		}
		batches++
	}
	if batches != 1 || errs != 1 {
		t.Errorf("batches = %d errors = %d, want 1 and 1", batches, errs)
	}
	if len(seen) != 2 {
		t.Errorf("requests = %d, want 2", len(seen))
	}
}

func TestPaginate_ConsumerBreak(t *testing.T) {
	var seen []string
	srv := pageServer(t, []string{
		tasksPage(1, 0, false),
		tasksPage(1, 1, false),
		tasksPage(1, 2, true),
	}, &seen)
	defer srv.Close()
	c := newTestClient(t, srv)

	for range c.AllTasks(context.Background(), "L1", nil) {
		break
	}
	if len(seen) != 1 {
		t.Errorf("requests = %d, want 1 after break", len(seen))
	}
}

func TestPaginate_KeepsCallerParams(t *testing.T) {
	var queries []url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query())
		_, _ = w.Write([]byte(tasksPage(1, 0, len(queries) == 2)))
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	params := url.Values{"statuses[]": {"open", "review"}, "page": {"7"}}
	if _, _, err := Collect(c.AllFilteredTasks(context.Background(), "T1", params), 0); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(queries) != 2 {
		t.Fatalf("requests = %d, want 2", len(queries))
	}
	for i, q := range queries {
		if q.Get("page") != strconv.Itoa(i) {
			t.Errorf("request %d page = %q", i, q.Get("page"))
		}
		if got := q["statuses[]"]; len(got) != 2 {
			t.Errorf("request %d statuses[] = %v", i, got)
		}
	}
	if params.Get("page") != "7" {
		t.Error("caller params were mutated")
	}
}

func TestCollect_MaxPages(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1))
		_, _ = w.Write([]byte(tasksPage(2, n*2, false)))
	}))
	defer srv.Close()
	c := newTestClient(t, srv)

	all, pages, err := Collect(c.AllTasks(context.Background(), "L1", nil), 2)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if pages != 2 || len(all) != 4 {
		t.Errorf("pages = %d items = %d, want 2 and 4", pages, len(all))
	}
	if calls.Load() != 2 {
		t.Errorf("requests = %d, want 2", calls.Load())
	}
}

func TestPaginate_RestartsOnSecondRange(t *testing.T) {
	var seen []string
	srv := pageServer(t, []string{tasksPage(1, 0, true)}, &seen)
	defer srv.Close()
	c := newTestClient(t, srv)

	seq := c.AllTasks(context.Background(), "L1", nil)
	for range 2 {
		if _, _, err := Collect(seq, 0); err != nil {
			t.Fatalf("Collect: %v", err)
		}
	}
	if got := strings.Join(seen, ","); got != "0,0" {
		t.Errorf("pages requested = %s, want 0,0", got)
	}
}
