package clickup

import (
	"context"
	"encoding/json"
	"iter"
	"net/url"
	"strconv"
)

// --- Tasks ---

func (c *Client) GetTasks(ctx context.Context, listID string, params url.Values) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("list", listID, "task"), params)
}

// AllTasks pages through every task of a list.
func (c *Client) AllTasks(ctx context.Context, listID string, params url.Values) iter.Seq2[[]json.RawMessage, error] {
	return c.Paginate(ctx, endpoint("list", listID, "task"), params, "tasks")
}

func (c *Client) GetTask(ctx context.Context, taskID string, params url.Values) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("task", taskID), params)
}

func (c *Client) CreateTask(ctx context.Context, listID string, body any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("list", listID, "task"), body)
}

func (c *Client) UpdateTask(ctx context.Context, taskID string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("task", taskID), body)
}

// DeleteTask deletes a task. params may carry custom_task_ids and team_id.
func (c *Client) DeleteTask(ctx context.Context, taskID string, params url.Values) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("task", taskID), params)
}

// GetFilteredTasks searches tasks across a whole workspace.
func (c *Client) GetFilteredTasks(ctx context.Context, teamID string, params url.Values) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("team", teamID, "task"), params)
}

// AllFilteredTasks pages through a workspace-wide task search.
func (c *Client) AllFilteredTasks(ctx context.Context, teamID string, params url.Values) iter.Seq2[[]json.RawMessage, error] {
	return c.Paginate(ctx, endpoint("team", teamID, "task"), params, "tasks")
}

// BulkUpdateTasks applies one update to several tasks.
func (c *Client) BulkUpdateTasks(ctx context.Context, taskIDs []string, body map[string]any) (json.RawMessage, error) {
	payload := make(map[string]any, len(body)+1)
	payload["task_ids"] = taskIDs
	for k, v := range body {
		payload[k] = v
	}
	return c.Post(ctx, "/task/bulk", payload)
}

// --- Dependencies ---

type dependencyBody struct {
	DependsOn    string `json:"depends_on,omitempty"`
	DependencyOf string `json:"dependency_of,omitempty"`
}

func (c *Client) AddDependency(ctx context.Context, taskID, dependsOn, dependencyOf string) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("task", taskID, "dependency"), dependencyBody{DependsOn: dependsOn, DependencyOf: dependencyOf})
}

func (c *Client) DeleteDependency(ctx context.Context, taskID, dependsOn, dependencyOf string) (json.RawMessage, error) {
	q := url.Values{"depends_on": {dependsOn}}
	if dependencyOf != "" {
		q.Set("dependency_of", dependencyOf)
	}
	return c.Delete(ctx, endpoint("task", taskID, "dependency"), q)
}

func (c *Client) GetTaskMembers(ctx context.Context, taskID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("task", taskID, "member"), nil)
}

// --- Comments ---

func (c *Client) GetTaskComments(ctx context.Context, taskID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("task", taskID, "comment"), nil)
}

func (c *Client) GetListComments(ctx context.Context, listID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("list", listID, "comment"), nil)
}

func (c *Client) GetViewComments(ctx context.Context, viewID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("view", viewID, "comment"), nil)
}

func (c *Client) CreateComment(ctx context.Context, taskID string, body any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("task", taskID, "comment"), body)
}

func (c *Client) UpdateComment(ctx context.Context, commentID string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("comment", commentID), body)
}

func (c *Client) DeleteComment(ctx context.Context, commentID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("comment", commentID), nil)
}

// --- Checklists ---

func (c *Client) CreateChecklist(ctx context.Context, taskID string, body any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("task", taskID, "checklist"), body)
}

func (c *Client) UpdateChecklist(ctx context.Context, checklistID string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("checklist", checklistID), body)
}

func (c *Client) DeleteChecklist(ctx context.Context, checklistID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("checklist", checklistID), nil)
}

func (c *Client) CreateChecklistItem(ctx context.Context, checklistID string, body any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("checklist", checklistID, "checklist_item"), body)
}

func (c *Client) UpdateChecklistItem(ctx context.Context, checklistID, itemID string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("checklist", checklistID, "checklist_item", itemID), body)
}

func (c *Client) DeleteChecklistItem(ctx context.Context, checklistID, itemID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("checklist", checklistID, "checklist_item", itemID), nil)
}

// --- Tags ---

func (c *Client) GetSpaceTags(ctx context.Context, spaceID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("space", spaceID, "tag"), nil)
}

func (c *Client) CreateSpaceTag(ctx context.Context, spaceID string, body any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("space", spaceID, "tag"), body)
}

func (c *Client) UpdateTag(ctx context.Context, spaceID, tagName string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("space", spaceID, "tag", tagName), body)
}

func (c *Client) DeleteTag(ctx context.Context, spaceID, tagName string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("space", spaceID, "tag", tagName), nil)
}

func (c *Client) AddTagToTask(ctx context.Context, taskID, tagName string) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("task", taskID, "tag", tagName), nil)
}

func (c *Client) RemoveTagFromTask(ctx context.Context, taskID, tagName string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("task", taskID, "tag", tagName), nil)
}

// --- Custom fields ---

func (c *Client) GetAccessibleCustomFields(ctx context.Context, listID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("list", listID, "field"), nil)
}

func (c *Client) SetCustomFieldValue(ctx context.Context, taskID, fieldID string, value any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("task", taskID, "field", fieldID), map[string]any{"value": value})
}

func (c *Client) RemoveCustomFieldValue(ctx context.Context, taskID, fieldID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("task", taskID, "field", fieldID), nil)
}

// --- Templates ---

func (c *Client) GetTemplates(ctx context.Context, teamID string, page int) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("team", teamID, "taskTemplate"), url.Values{"page": {strconv.Itoa(page)}})
}

func (c *Client) CreateTaskFromTemplate(ctx context.Context, listID, templateID, name string) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("list", listID, "taskTemplate", templateID), map[string]string{"name": name})
}
