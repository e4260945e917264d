package clickup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEncodeQuery(t *testing.T) {
	q := EncodeQuery(map[string]any{
		"archived":      false,
		"page":          float64(2),
		"due_date_gt":   float64(1700000000000),
		"statuses":      []any{"open", "in review"},
		"assignees":     []string{"42"},
		"custom_fields": []any{map[string]any{"field_id": "f1", "operator": "=", "value": "x"}},
		"order_by":      "created",
		"skipped":       nil,
	})

	tests := []struct {
		key  string
		want []string
	}{
		{"archived", []string{"false"}},
		{"page", []string{"2"}},
		{"due_date_gt", []string{"1700000000000"}},
		{"statuses[]", []string{"open", "in review"}},
		{"assignees[]", []string{"42"}},
		{"custom_fields", []string{`[{"field_id":"f1","operator":"=","value":"x"}]`}},
		{"order_by", []string{"created"}},
	}
	for _, tt := range tests {
		got := q[tt.key]
		if len(got) != len(tt.want) {
			t.Errorf("%s = %v, want %v", tt.key, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s[%d] = %q, want %q", tt.key, i, got[i], tt.want[i])
			}
		}
	}
	if _, ok := q["skipped"]; ok {
		t.Error("nil value was encoded")
	}
	if _, ok := q["statuses"]; ok {
		t.Error("array sent without [] suffix")
	}
}

func TestEndpoint_EscapesSegments(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"task", "abc"}, "/task/abc"},
		{[]string{"space", "1", "tag", "needs review"}, "/space/1/tag/needs%20review"},
		{[]string{"list", "a/b", "task"}, "/list/a%2Fb/task"},
	}
	for _, tt := range tests {
		if got := endpoint(tt.in...); got != tt.want {
			t.Errorf("endpoint(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEndpointMethods_Routes(t *testing.T) {
	type call struct {
		name   string
		do     func(c *Client) error
		method string
		path   string
		query  string
	}
	ctx := context.Background()
	wrap := func(fn func(c *Client) (any, error)) func(c *Client) error {
		return func(c *Client) error { _, err := fn(c); return err }
	}
	calls := []call{
		{"spaces", wrap(func(c *Client) (any, error) { return c.GetSpaces(ctx, "T", true) }), "GET", "/team/T/space", "archived=true"},
		{"folderless lists", wrap(func(c *Client) (any, error) { return c.GetSpaceLists(ctx, "S", false) }), "GET", "/space/S/list", "archived=false"},
		{"views", wrap(func(c *Client) (any, error) { return c.GetViews(ctx, "T", "S", "L", "") }), "GET", "/team/T/view", "list_id=L&space_id=S"},
		{"view tasks", wrap(func(c *Client) (any, error) { return c.GetViewTasks(ctx, "V", 3) }), "GET", "/view/V/task", "page=3"},
		{"bulk", wrap(func(c *Client) (any, error) { return c.BulkUpdateTasks(ctx, []string{"a"}, nil) }), "POST", "/task/bulk", ""},
		{"remove dependency", wrap(func(c *Client) (any, error) { return c.DeleteDependency(ctx, "A", "B", "") }), "DELETE", "/task/A/dependency", "depends_on=B"},
		{"running timer", wrap(func(c *Client) (any, error) { return c.GetRunningTimeEntry(ctx, "T", "") }), "GET", "/team/T/time_entries/current", ""},
		{"start timer", wrap(func(c *Client) (any, error) { return c.StartTimer(ctx, "T", "K", nil) }), "POST", "/team/T/time_entries/start/K", ""},
		{"task time", wrap(func(c *Client) (any, error) { return c.GetTaskTimeEntries(ctx, "K") }), "GET", "/task/K/time", ""},
		{"templates", wrap(func(c *Client) (any, error) { return c.GetTemplates(ctx, "T", 0) }), "GET", "/team/T/taskTemplate", "page=0"},
		{"guest on folder", wrap(func(c *Client) (any, error) { return c.AddGuestToFolder(ctx, "F", "G", "read") }), "POST", "/folder/F/guest/G", ""},
		{"doc search", wrap(func(c *Client) (any, error) { return c.SearchDocs(ctx, "W", "roadmap") }), "GET", "/team/W/docs", "search=roadmap"},
		{"key result", wrap(func(c *Client) (any, error) { return c.UpdateKeyResult(ctx, "KR", map[string]any{"steps_current": 3}) }), "PUT", "/key_result/KR", ""},
		{"webhook delete", wrap(func(c *Client) (any, error) { return c.DeleteWebhook(ctx, "W1") }), "DELETE", "/webhook/W1", ""},
	}

	for _, tc := range calls {
		t.Run(tc.name, func(t *testing.T) {
			var method, path, query string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				method, path, query = r.Method, r.URL.Path, r.URL.RawQuery
				_, _ = w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			if err := tc.do(newTestClient(t, srv)); err != nil {
				t.Fatalf("call failed: %v", err)
			}
			if method != tc.method || path != tc.path || query != tc.query {
				t.Errorf("got %s %s?%s, want %s %s?%s", method, path, query, tc.method, tc.path, tc.query)
			}
		})
	}
}
