package clickup

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// endpoint joins path segments, escaping each one.
func endpoint(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func archivedQuery(archived bool) url.Values {
	return url.Values{"archived": {strconv.FormatBool(archived)}}
}

// --- Teams ---

// GetAuthorizedTeams lists the workspaces the credential can access.
func (c *Client) GetAuthorizedTeams(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, "/team", nil)
}

func (c *Client) GetTeam(ctx context.Context, teamID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("team", teamID), nil)
}

// --- Spaces ---

func (c *Client) GetSpaces(ctx context.Context, teamID string, archived bool) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("team", teamID, "space"), archivedQuery(archived))
}

func (c *Client) GetSpace(ctx context.Context, spaceID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("space", spaceID), nil)
}

func (c *Client) CreateSpace(ctx context.Context, teamID string, body any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("team", teamID, "space"), body)
}

func (c *Client) UpdateSpace(ctx context.Context, spaceID string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("space", spaceID), body)
}

func (c *Client) DeleteSpace(ctx context.Context, spaceID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("space", spaceID), nil)
}

// --- Folders ---

func (c *Client) GetFolders(ctx context.Context, spaceID string, archived bool) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("space", spaceID, "folder"), archivedQuery(archived))
}

func (c *Client) GetFolder(ctx context.Context, folderID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("folder", folderID), nil)
}

func (c *Client) CreateFolder(ctx context.Context, spaceID string, body any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("space", spaceID, "folder"), body)
}

func (c *Client) UpdateFolder(ctx context.Context, folderID string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("folder", folderID), body)
}

func (c *Client) DeleteFolder(ctx context.Context, folderID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("folder", folderID), nil)
}

// --- Lists ---

func (c *Client) GetFolderLists(ctx context.Context, folderID string, archived bool) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("folder", folderID, "list"), archivedQuery(archived))
}

func (c *Client) GetSpaceLists(ctx context.Context, spaceID string, archived bool) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("space", spaceID, "list"), archivedQuery(archived))
}

func (c *Client) GetList(ctx context.Context, listID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("list", listID), nil)
}

// CreateList creates a list inside a folder.
func (c *Client) CreateList(ctx context.Context, folderID string, body any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("folder", folderID, "list"), body)
}

// CreateFolderlessList creates a list directly under a space.
func (c *Client) CreateFolderlessList(ctx context.Context, spaceID string, body any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("space", spaceID, "list"), body)
}

func (c *Client) UpdateList(ctx context.Context, listID string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("list", listID), body)
}

func (c *Client) DeleteList(ctx context.Context, listID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("list", listID), nil)
}

// AddTaskToList adds an existing task to an additional list.
func (c *Client) AddTaskToList(ctx context.Context, listID, taskID string) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("list", listID, "task", taskID), nil)
}

func (c *Client) RemoveTaskFromList(ctx context.Context, listID, taskID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("list", listID, "task", taskID), nil)
}

func (c *Client) GetListMembers(ctx context.Context, listID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("list", listID, "member"), nil)
}

// --- Views ---

// GetViews lists views of a space, optionally narrowed to a list or folder.
func (c *Client) GetViews(ctx context.Context, teamID, spaceID, listID, folderID string) (json.RawMessage, error) {
	q := url.Values{"space_id": {spaceID}}
	if listID != "" {
		q.Set("list_id", listID)
	}
	if folderID != "" {
		q.Set("folder_id", folderID)
	}
	return c.Get(ctx, endpoint("team", teamID, "view"), q)
}

func (c *Client) GetView(ctx context.Context, viewID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("view", viewID), nil)
}

func (c *Client) GetViewTasks(ctx context.Context, viewID string, page int) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("view", viewID, "task"), url.Values{"page": {strconv.Itoa(page)}})
}

// CreateView creates a view; spaceID is merged into the body.
func (c *Client) CreateView(ctx context.Context, teamID, spaceID string, body map[string]any) (json.RawMessage, error) {
	payload := make(map[string]any, len(body)+1)
	for k, v := range body {
		payload[k] = v
	}
	payload["space_id"] = spaceID
	return c.Post(ctx, endpoint("team", teamID, "view"), payload)
}

func (c *Client) UpdateView(ctx context.Context, viewID string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("view", viewID), body)
}

func (c *Client) DeleteView(ctx context.Context, viewID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("view", viewID), nil)
}

// --- Docs ---

func (c *Client) GetDocs(ctx context.Context, workspaceID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("team", workspaceID, "docs"), nil)
}

func (c *Client) SearchDocs(ctx context.Context, workspaceID, search string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("team", workspaceID, "docs"), url.Values{"search": {search}})
}
