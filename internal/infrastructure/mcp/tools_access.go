package mcp

import (
	"context"
)

// Guests and webhooks.

type GuestInviteArgs struct {
	TeamID      string    `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	Email       string    `json:"email" jsonschema:"description=Guest email address"`
	CanEditTags *FlexBool `json:"can_edit_tags,omitempty" jsonschema:"description=Allow the guest to edit tags (default false)"`
}

type GuestIDArgs struct {
	TeamID  string `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	GuestID string `json:"guest_id" jsonschema:"description=Guest user ID"`
}

type GuestEditArgs struct {
	TeamID              string    `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	GuestID             string    `json:"guest_id" jsonschema:"description=Guest user ID"`
	Username            string    `json:"username,omitempty" jsonschema:"description=Display name"`
	CanEditTags         *FlexBool `json:"can_edit_tags,omitempty" jsonschema:"description=Allow the guest to edit tags"`
	CanSeeTimeSpent     *FlexBool `json:"can_see_time_spent,omitempty" jsonschema:"description=Allow the guest to see time spent"`
	CanSeeTimeEstimated *FlexBool `json:"can_see_time_estimated,omitempty" jsonschema:"description=Allow the guest to see time estimates"`
}

type GuestTaskArgs struct {
	TaskID          string `json:"task_id" jsonschema:"description=Task ID"`
	GuestID         string `json:"guest_id" jsonschema:"description=Guest user ID"`
	PermissionLevel string `json:"permission_level,omitempty" jsonschema:"description=One of read, comment, edit or create"`
}

type GuestListArgs struct {
	ListID          string `json:"list_id" jsonschema:"description=List ID"`
	GuestID         string `json:"guest_id" jsonschema:"description=Guest user ID"`
	PermissionLevel string `json:"permission_level,omitempty" jsonschema:"description=One of read, comment, edit or create"`
}

type GuestFolderArgs struct {
	FolderID        string `json:"folder_id" jsonschema:"description=Folder ID"`
	GuestID         string `json:"guest_id" jsonschema:"description=Guest user ID"`
	PermissionLevel string `json:"permission_level,omitempty" jsonschema:"description=One of read, comment, edit or create"`
}

type WebhookCreateArgs struct {
	TeamID   string   `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	Endpoint string   `json:"endpoint" jsonschema:"description=URL that receives events"`
	Events   []string `json:"events" jsonschema:"description=Event names such as taskCreated or taskUpdated"`
	SpaceID  string   `json:"space_id,omitempty" jsonschema:"description=Only events from this space"`
	FolderID string   `json:"folder_id,omitempty" jsonschema:"description=Only events from this folder"`
	ListID   string   `json:"list_id,omitempty" jsonschema:"description=Only events from this list"`
	TaskID   string   `json:"task_id,omitempty" jsonschema:"description=Only events from this task"`
}

type WebhookUpdateArgs struct {
	WebhookID string   `json:"webhook_id" jsonschema:"description=Webhook ID"`
	Endpoint  string   `json:"endpoint,omitempty" jsonschema:"description=URL that receives events"`
	Events    []string `json:"events,omitempty" jsonschema:"description=Event names"`
	Status    string   `json:"status,omitempty" jsonschema:"description=active or disabled"`
}

type WebhookIDArgs struct {
	WebhookID string `json:"webhook_id" jsonschema:"description=Webhook ID"`
}

func (s *Server) registerAccessTools() {
	// Guests
	s.mcpServer.Tool("clickup_guests_invite").
		Description("Invite a guest to a workspace").
		Handler(s.handleGuestsInvite)
	s.mcpServer.Tool("clickup_guests_get").
		Description("Get a guest of a workspace").
		Handler(s.handleGuestsGet)
	s.mcpServer.Tool("clickup_guests_edit").
		Description("Edit a guest's workspace permissions").
		Handler(s.handleGuestsEdit)
	s.mcpServer.Tool("clickup_guests_remove").
		Description("Remove a guest from a workspace").
		Handler(s.handleGuestsRemove)
	s.mcpServer.Tool("clickup_guests_add_to_task").
		Description("Share a task with a guest").
		Handler(s.handleGuestsAddToTask)
	s.mcpServer.Tool("clickup_guests_remove_from_task").
		Description("Stop sharing a task with a guest").
		Handler(s.handleGuestsRemoveFromTask)
	s.mcpServer.Tool("clickup_guests_add_to_list").
		Description("Share a list with a guest").
		Handler(s.handleGuestsAddToList)
	s.mcpServer.Tool("clickup_guests_remove_from_list").
		Description("Stop sharing a list with a guest").
		Handler(s.handleGuestsRemoveFromList)
	s.mcpServer.Tool("clickup_guests_add_to_folder").
		Description("Share a folder with a guest").
		Handler(s.handleGuestsAddToFolder)
	s.mcpServer.Tool("clickup_guests_remove_from_folder").
		Description("Stop sharing a folder with a guest").
		Handler(s.handleGuestsRemoveFromFolder)

	// Webhooks
	s.mcpServer.Tool("clickup_webhooks_list").
		Description("List the webhooks of a workspace").
		Handler(s.handleWebhooksList)
	s.mcpServer.Tool("clickup_webhooks_create").
		Description("Register a webhook").
		Handler(s.handleWebhooksCreate)
	s.mcpServer.Tool("clickup_webhooks_update").
		Description("Update a webhook").
		Handler(s.handleWebhooksUpdate)
	s.mcpServer.Tool("clickup_webhooks_delete").
		Description("Delete a webhook").
		Handler(s.handleWebhooksDelete)
}

func (s *Server) handleGuestsInvite(ctx context.Context, args GuestInviteArgs) (string, error) {
	if err := required("team_id", args.TeamID, "email", args.Email); err != nil {
		return "", err
	}
	raw, err := s.client.InviteGuestToWorkspace(ctx, args.TeamID, args.Email, flag(args.CanEditTags))
	return s.reply("clickup_guests_invite", raw, err)
}

func (s *Server) handleGuestsGet(ctx context.Context, args GuestIDArgs) (string, error) {
	if err := required("team_id", args.TeamID, "guest_id", args.GuestID); err != nil {
		return "", err
	}
	raw, err := s.client.GetGuest(ctx, args.TeamID, args.GuestID)
	return s.reply("clickup_guests_get", raw, err)
}

func (s *Server) handleGuestsEdit(ctx context.Context, args GuestEditArgs) (string, error) {
	if err := required("team_id", args.TeamID, "guest_id", args.GuestID); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "team_id", "guest_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.EditGuestOnWorkspace(ctx, args.TeamID, args.GuestID, body)
	return s.reply("clickup_guests_edit", raw, err)
}

func (s *Server) handleGuestsRemove(ctx context.Context, args GuestIDArgs) (string, error) {
	if err := required("team_id", args.TeamID, "guest_id", args.GuestID); err != nil {
		return "", err
	}
	_, err := s.client.RemoveGuestFromWorkspace(ctx, args.TeamID, args.GuestID)
	return s.done("clickup_guests_remove", "Guest removed successfully", err)
}

func (s *Server) handleGuestsAddToTask(ctx context.Context, args GuestTaskArgs) (string, error) {
	if err := required("task_id", args.TaskID, "guest_id", args.GuestID); err != nil {
		return "", err
	}
	raw, err := s.client.AddGuestToTask(ctx, args.TaskID, args.GuestID, args.PermissionLevel)
	return s.reply("clickup_guests_add_to_task", raw, err)
}

func (s *Server) handleGuestsRemoveFromTask(ctx context.Context, args GuestTaskArgs) (string, error) {
	if err := required("task_id", args.TaskID, "guest_id", args.GuestID); err != nil {
		return "", err
	}
	_, err := s.client.RemoveGuestFromTask(ctx, args.TaskID, args.GuestID)
	return s.done("clickup_guests_remove_from_task", "Guest removed from task successfully", err)
}

func (s *Server) handleGuestsAddToList(ctx context.Context, args GuestListArgs) (string, error) {
	if err := required("list_id", args.ListID, "guest_id", args.GuestID); err != nil {
		return "", err
	}
	raw, err := s.client.AddGuestToList(ctx, args.ListID, args.GuestID, args.PermissionLevel)
	return s.reply("clickup_guests_add_to_list", raw, err)
}

func (s *Server) handleGuestsRemoveFromList(ctx context.Context, args GuestListArgs) (string, error) {
	if err := required("list_id", args.ListID, "guest_id", args.GuestID); err != nil {
		return "", err
	}
	_, err := s.client.RemoveGuestFromList(ctx, args.ListID, args.GuestID)
	return s.done("clickup_guests_remove_from_list", "Guest removed from list successfully", err)
}

func (s *Server) handleGuestsAddToFolder(ctx context.Context, args GuestFolderArgs) (string, error) {
	if err := required("folder_id", args.FolderID, "guest_id", args.GuestID); err != nil {
		return "", err
	}
	raw, err := s.client.AddGuestToFolder(ctx, args.FolderID, args.GuestID, args.PermissionLevel)
	return s.reply("clickup_guests_add_to_folder", raw, err)
}

func (s *Server) handleGuestsRemoveFromFolder(ctx context.Context, args GuestFolderArgs) (string, error) {
	if err := required("folder_id", args.FolderID, "guest_id", args.GuestID); err != nil {
		return "", err
	}
	_, err := s.client.RemoveGuestFromFolder(ctx, args.FolderID, args.GuestID)
	return s.done("clickup_guests_remove_from_folder", "Guest removed from folder successfully", err)
}

func (s *Server) handleWebhooksList(ctx context.Context, args TeamArgs) (string, error) {
	if err := required("team_id", args.TeamID); err != nil {
		return "", err
	}
	raw, err := s.client.GetWebhooks(ctx, args.TeamID)
	return s.reply("clickup_webhooks_list", raw, err)
}

func (s *Server) handleWebhooksCreate(ctx context.Context, args WebhookCreateArgs) (string, error) {
	if err := required("team_id", args.TeamID, "endpoint", args.Endpoint); err != nil {
		return "", err
	}
	if len(args.Events) == 0 {
		return "", mcpErr("events must name at least one event, or \"*\" for all")
	}
	body, err := bodyOf(args, "team_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.CreateWebhook(ctx, args.TeamID, body)
	return s.reply("clickup_webhooks_create", raw, err)
}

func (s *Server) handleWebhooksUpdate(ctx context.Context, args WebhookUpdateArgs) (string, error) {
	if err := required("webhook_id", args.WebhookID); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "webhook_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.UpdateWebhook(ctx, args.WebhookID, body)
	return s.reply("clickup_webhooks_update", raw, err)
}

func (s *Server) handleWebhooksDelete(ctx context.Context, args WebhookIDArgs) (string, error) {
	if err := required("webhook_id", args.WebhookID); err != nil {
		return "", err
	}
	_, err := s.client.DeleteWebhook(ctx, args.WebhookID)
	return s.done("clickup_webhooks_delete", "Webhook deleted successfully", err)
}
