package clickup

import (
	"context"
	"encoding/json"
	"net/url"
)

// --- Goals ---

func (c *Client) GetGoals(ctx context.Context, teamID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("team", teamID, "goal"), nil)
}

func (c *Client) GetGoal(ctx context.Context, goalID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("goal", goalID), nil)
}

func (c *Client) CreateGoal(ctx context.Context, teamID string, body any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("team", teamID, "goal"), body)
}

func (c *Client) UpdateGoal(ctx context.Context, goalID string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("goal", goalID), body)
}

func (c *Client) DeleteGoal(ctx context.Context, goalID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("goal", goalID), nil)
}

func (c *Client) CreateKeyResult(ctx context.Context, goalID string, body any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("goal", goalID, "key_result"), body)
}

func (c *Client) UpdateKeyResult(ctx context.Context, keyResultID string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("key_result", keyResultID), body)
}

func (c *Client) DeleteKeyResult(ctx context.Context, keyResultID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("key_result", keyResultID), nil)
}

// --- Time tracking ---

func (c *Client) GetTimeEntries(ctx context.Context, teamID string, params url.Values) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("team", teamID, "time_entries"), params)
}

func (c *Client) GetTimeEntry(ctx context.Context, teamID, timerID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("team", teamID, "time_entries", timerID), nil)
}

func (c *Client) CreateTimeEntry(ctx context.Context, teamID string, body any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("team", teamID, "time_entries"), body)
}

func (c *Client) UpdateTimeEntry(ctx context.Context, teamID, timerID string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("team", teamID, "time_entries", timerID), body)
}

func (c *Client) DeleteTimeEntry(ctx context.Context, teamID, timerID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("team", teamID, "time_entries", timerID), nil)
}

// GetRunningTimeEntry returns the running timer of assignee, or of the
// authenticated user when assignee is empty.
func (c *Client) GetRunningTimeEntry(ctx context.Context, teamID, assignee string) (json.RawMessage, error) {
	var q url.Values
	if assignee != "" {
		q = url.Values{"assignee": {assignee}}
	}
	return c.Get(ctx, endpoint("team", teamID, "time_entries", "current"), q)
}

func (c *Client) StartTimer(ctx context.Context, teamID, taskID string, body any) (json.RawMessage, error) {
	if body == nil {
		body = map[string]any{}
	}
	return c.Post(ctx, endpoint("team", teamID, "time_entries", "start", taskID), body)
}

func (c *Client) StopTimer(ctx context.Context, teamID string) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("team", teamID, "time_entries", "stop"), nil)
}

func (c *Client) GetTaskTimeEntries(ctx context.Context, taskID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("task", taskID, "time"), nil)
}
