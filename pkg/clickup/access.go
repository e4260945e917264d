package clickup

import (
	"context"
	"encoding/json"
)

// --- Guests ---

type guestInvite struct {
	Email       string `json:"email"`
	CanEditTags bool   `json:"can_edit_tags"`
}

func (c *Client) InviteGuestToWorkspace(ctx context.Context, teamID, email string, canEditTags bool) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("team", teamID, "guest"), guestInvite{Email: email, CanEditTags: canEditTags})
}

func (c *Client) GetGuest(ctx context.Context, teamID, guestID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("team", teamID, "guest", guestID), nil)
}

func (c *Client) EditGuestOnWorkspace(ctx context.Context, teamID, guestID string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("team", teamID, "guest", guestID), body)
}

func (c *Client) RemoveGuestFromWorkspace(ctx context.Context, teamID, guestID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("team", teamID, "guest", guestID), nil)
}

func permissionBody(level string) map[string]string {
	if level == "" {
		return map[string]string{}
	}
	return map[string]string{"permission_level": level}
}

func (c *Client) AddGuestToTask(ctx context.Context, taskID, guestID, permissionLevel string) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("task", taskID, "guest", guestID), permissionBody(permissionLevel))
}

func (c *Client) RemoveGuestFromTask(ctx context.Context, taskID, guestID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("task", taskID, "guest", guestID), nil)
}

func (c *Client) AddGuestToList(ctx context.Context, listID, guestID, permissionLevel string) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("list", listID, "guest", guestID), permissionBody(permissionLevel))
}

func (c *Client) RemoveGuestFromList(ctx context.Context, listID, guestID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("list", listID, "guest", guestID), nil)
}

func (c *Client) AddGuestToFolder(ctx context.Context, folderID, guestID, permissionLevel string) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("folder", folderID, "guest", guestID), permissionBody(permissionLevel))
}

func (c *Client) RemoveGuestFromFolder(ctx context.Context, folderID, guestID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("folder", folderID, "guest", guestID), nil)
}

// --- Webhooks ---

func (c *Client) GetWebhooks(ctx context.Context, teamID string) (json.RawMessage, error) {
	return c.Get(ctx, endpoint("team", teamID, "webhook"), nil)
}

func (c *Client) CreateWebhook(ctx context.Context, teamID string, body any) (json.RawMessage, error) {
	return c.Post(ctx, endpoint("team", teamID, "webhook"), body)
}

func (c *Client) UpdateWebhook(ctx context.Context, webhookID string, body any) (json.RawMessage, error) {
	return c.Put(ctx, endpoint("webhook", webhookID), body)
}

func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) (json.RawMessage, error) {
	return c.Delete(ctx, endpoint("webhook", webhookID), nil)
}
