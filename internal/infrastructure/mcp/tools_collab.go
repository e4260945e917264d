package mcp

import (
	"context"
)

// Comments, checklists, custom fields, tags and templates.

type CommentsListArgs struct {
	TaskID string `json:"task_id,omitempty" jsonschema:"description=Task ID"`
	ListID string `json:"list_id,omitempty" jsonschema:"description=List ID"`
	ViewID string `json:"view_id,omitempty" jsonschema:"description=Chat view ID"`
}

type CommentUpdateArgs struct {
	CommentID   string    `json:"comment_id" jsonschema:"description=Comment ID"`
	CommentText string    `json:"comment_text,omitempty" jsonschema:"description=New comment text"`
	Assignee    *FlexInt  `json:"assignee,omitempty" jsonschema:"description=Assign the comment to this user"`
	Resolved    *FlexBool `json:"resolved,omitempty" jsonschema:"description=Mark as resolved"`
}

type CommentIDArgs struct {
	CommentID string `json:"comment_id" jsonschema:"description=Comment ID"`
}

type ChecklistCreateArgs struct {
	TaskID string `json:"task_id" jsonschema:"description=Task ID"`
	Name   string `json:"name" jsonschema:"description=Checklist name"`
}

type ChecklistUpdateArgs struct {
	ChecklistID string   `json:"checklist_id" jsonschema:"description=Checklist ID"`
	Name        string   `json:"name,omitempty" jsonschema:"description=New checklist name"`
	Position    *FlexInt `json:"position,omitempty" jsonschema:"description=Order index on the task"`
}

type ChecklistIDArgs struct {
	ChecklistID string `json:"checklist_id" jsonschema:"description=Checklist ID"`
}

type ChecklistItemCreateArgs struct {
	ChecklistID string   `json:"checklist_id" jsonschema:"description=Checklist ID"`
	Name        string   `json:"name" jsonschema:"description=Item name"`
	Assignee    *FlexInt `json:"assignee,omitempty" jsonschema:"description=Assignee user ID"`
}

type ChecklistItemUpdateArgs struct {
	ChecklistID     string    `json:"checklist_id" jsonschema:"description=Checklist ID"`
	ChecklistItemID string    `json:"checklist_item_id" jsonschema:"description=Checklist item ID"`
	Name            string    `json:"name,omitempty" jsonschema:"description=New item name"`
	Assignee        *FlexInt  `json:"assignee,omitempty" jsonschema:"description=Assignee user ID"`
	Resolved        *FlexBool `json:"resolved,omitempty" jsonschema:"description=Mark as completed"`
	Parent          string    `json:"parent,omitempty" jsonschema:"description=Parent item ID for nesting"`
}

type ChecklistItemIDArgs struct {
	ChecklistID     string `json:"checklist_id" jsonschema:"description=Checklist ID"`
	ChecklistItemID string `json:"checklist_item_id" jsonschema:"description=Checklist item ID"`
}

type CustomFieldIDArgs struct {
	TaskID  string `json:"task_id" jsonschema:"description=Task ID"`
	FieldID string `json:"field_id" jsonschema:"description=Custom field ID"`
}

type TagCreateArgs struct {
	SpaceID string `json:"space_id" jsonschema:"description=Space ID"`
	Name    string `json:"name" jsonschema:"description=Tag name"`
	TagFg   string `json:"tag_fg,omitempty" jsonschema:"description=Foreground hex color"`
	TagBg   string `json:"tag_bg,omitempty" jsonschema:"description=Background hex color"`
}

type TagUpdateArgs struct {
	SpaceID string `json:"space_id" jsonschema:"description=Space ID"`
	TagName string `json:"tag_name" jsonschema:"description=Current tag name"`
	NewName string `json:"new_name,omitempty" jsonschema:"description=New tag name"`
	TagFg   string `json:"tag_fg,omitempty" jsonschema:"description=Foreground hex color"`
	TagBg   string `json:"tag_bg,omitempty" jsonschema:"description=Background hex color"`
}

type SpaceTagArgs struct {
	SpaceID string `json:"space_id" jsonschema:"description=Space ID"`
	TagName string `json:"tag_name" jsonschema:"description=Tag name"`
}

type TaskTagArgs struct {
	TaskID  string `json:"task_id" jsonschema:"description=Task ID"`
	TagName string `json:"tag_name" jsonschema:"description=Tag name"`
}

type TemplatesListArgs struct {
	TeamID string   `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	Page   *FlexInt `json:"page,omitempty" jsonschema:"description=Zero-based page number"`
}

type TemplateApplyArgs struct {
	ListID     string `json:"list_id" jsonschema:"description=List ID"`
	TemplateID string `json:"template_id" jsonschema:"description=Task template ID"`
	Name       string `json:"name" jsonschema:"description=Name of the new task"`
}

func (s *Server) registerCollaborationTools() {
	// Comments
	s.mcpServer.Tool("clickup_comments_list").
		Description("List the comments of a task, a list or a chat view").
		Handler(s.handleCommentsList)
	s.mcpServer.Tool("clickup_comments_create").
		Description("Comment on a task").
		Handler(s.handleCommentsCreate)
	s.mcpServer.Tool("clickup_comments_update").
		Description("Edit, reassign or resolve a comment").
		Handler(s.handleCommentsUpdate)
	s.mcpServer.Tool("clickup_comments_delete").
		Description("Delete a comment").
		Handler(s.handleCommentsDelete)

	// Checklists
	s.mcpServer.Tool("clickup_checklists_create").
		Description("Create a checklist on a task").
		Handler(s.handleChecklistsCreate)
	s.mcpServer.Tool("clickup_checklists_update").
		Description("Rename or reorder a checklist").
		Handler(s.handleChecklistsUpdate)
	s.mcpServer.Tool("clickup_checklists_delete").
		Description("Delete a checklist").
		Handler(s.handleChecklistsDelete)
	s.mcpServer.Tool("clickup_checklists_create_item").
		Description("Add an item to a checklist").
		Handler(s.handleChecklistsCreateItem)
	s.mcpServer.Tool("clickup_checklists_update_item").
		Description("Update a checklist item").
		Handler(s.handleChecklistsUpdateItem)
	s.mcpServer.Tool("clickup_checklists_delete_item").
		Description("Delete a checklist item").
		Handler(s.handleChecklistsDeleteItem)

	// Custom fields
	s.mcpServer.Tool("clickup_custom_fields_list").
		Description("List the custom fields available on a list").
		Handler(s.handleCustomFieldsList)
	s.mcpServer.Tool("clickup_custom_fields_get").
		Description("Get the custom field values of a task").
		Handler(s.handleCustomFieldsGet)
	s.mcpServer.Tool("clickup_custom_fields_set_value").
		Description("Set a custom field value on a task").
		Handler(s.handleCustomFieldsSetValue)
	s.mcpServer.Tool("clickup_custom_fields_remove_value").
		Description("Clear a custom field value on a task").
		Handler(s.handleCustomFieldsRemoveValue)

	// Tags
	s.mcpServer.Tool("clickup_tags_list").
		Description("List the tags of a space").
		Handler(s.handleTagsList)
	s.mcpServer.Tool("clickup_tags_create").
		Description("Create a tag in a space").
		Handler(s.handleTagsCreate)
	s.mcpServer.Tool("clickup_tags_update").
		Description("Rename or recolor a tag").
		Handler(s.handleTagsUpdate)
	s.mcpServer.Tool("clickup_tags_delete").
		Description("Delete a tag from a space").
		Handler(s.handleTagsDelete)
	s.mcpServer.Tool("clickup_tags_add_to_task").
		Description("Tag a task").
		Handler(s.handleTagsAddToTask)
	s.mcpServer.Tool("clickup_tags_remove_from_task").
		Description("Remove a tag from a task").
		Handler(s.handleTagsRemoveFromTask)

	// Templates
	s.mcpServer.Tool("clickup_templates_list").
		Description("List the task templates of a workspace").
		Handler(s.handleTemplatesList)
	s.mcpServer.Tool("clickup_templates_apply").
		Description("Create a task in a list from a template").
		Handler(s.handleTemplatesApply)
}

func (s *Server) handleCommentsList(ctx context.Context, args CommentsListArgs) (string, error) {
	const tool = "clickup_comments_list"
	switch {
	case args.TaskID != "":
		raw, err := s.client.GetTaskComments(ctx, args.TaskID)
		return s.reply(tool, raw, err)
	case args.ListID != "":
		raw, err := s.client.GetListComments(ctx, args.ListID)
		return s.reply(tool, raw, err)
	case args.ViewID != "":
		raw, err := s.client.GetViewComments(ctx, args.ViewID)
		return s.reply(tool, raw, err)
	default:
		return "", mcpErr("One of task_id, list_id, or view_id must be provided")
	}
}

func (s *Server) handleCommentsCreate(ctx context.Context, args TaskCommentArgs) (string, error) {
	return s.createComment(ctx, "clickup_comments_create", args)
}

func (s *Server) handleCommentsUpdate(ctx context.Context, args CommentUpdateArgs) (string, error) {
	if err := required("comment_id", args.CommentID); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "comment_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.UpdateComment(ctx, args.CommentID, body)
	return s.reply("clickup_comments_update", raw, err)
}

func (s *Server) handleCommentsDelete(ctx context.Context, args CommentIDArgs) (string, error) {
	if err := required("comment_id", args.CommentID); err != nil {
		return "", err
	}
	_, err := s.client.DeleteComment(ctx, args.CommentID)
	return s.done("clickup_comments_delete", "Comment deleted successfully", err)
}

func (s *Server) handleChecklistsCreate(ctx context.Context, args ChecklistCreateArgs) (string, error) {
	if err := required("task_id", args.TaskID, "name", args.Name); err != nil {
		return "", err
	}
	raw, err := s.client.CreateChecklist(ctx, args.TaskID, map[string]string{"name": args.Name})
	return s.reply("clickup_checklists_create", raw, err)
}

func (s *Server) handleChecklistsUpdate(ctx context.Context, args ChecklistUpdateArgs) (string, error) {
	if err := required("checklist_id", args.ChecklistID); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "checklist_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.UpdateChecklist(ctx, args.ChecklistID, body)
	return s.reply("clickup_checklists_update", raw, err)
}

func (s *Server) handleChecklistsDelete(ctx context.Context, args ChecklistIDArgs) (string, error) {
	if err := required("checklist_id", args.ChecklistID); err != nil {
		return "", err
	}
	_, err := s.client.DeleteChecklist(ctx, args.ChecklistID)
	return s.done("clickup_checklists_delete", "Checklist deleted successfully", err)
}

func (s *Server) handleChecklistsCreateItem(ctx context.Context, args ChecklistItemCreateArgs) (string, error) {
	if err := required("checklist_id", args.ChecklistID, "name", args.Name); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "checklist_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.CreateChecklistItem(ctx, args.ChecklistID, body)
	return s.reply("clickup_checklists_create_item", raw, err)
}

func (s *Server) handleChecklistsUpdateItem(ctx context.Context, args ChecklistItemUpdateArgs) (string, error) {
	if err := required("checklist_id", args.ChecklistID, "checklist_item_id", args.ChecklistItemID); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "checklist_id", "checklist_item_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.UpdateChecklistItem(ctx, args.ChecklistID, args.ChecklistItemID, body)
	return s.reply("clickup_checklists_update_item", raw, err)
}

func (s *Server) handleChecklistsDeleteItem(ctx context.Context, args ChecklistItemIDArgs) (string, error) {
	if err := required("checklist_id", args.ChecklistID, "checklist_item_id", args.ChecklistItemID); err != nil {
		return "", err
	}
	_, err := s.client.DeleteChecklistItem(ctx, args.ChecklistID, args.ChecklistItemID)
	return s.done("clickup_checklists_delete_item", "Checklist item deleted successfully", err)
}

func (s *Server) handleCustomFieldsList(ctx context.Context, args ListIDArgs) (string, error) {
	if err := required("list_id", args.ListID); err != nil {
		return "", err
	}
	raw, err := s.client.GetAccessibleCustomFields(ctx, args.ListID)
	return s.reply("clickup_custom_fields_list", raw, err)
}

func (s *Server) handleCustomFieldsGet(ctx context.Context, args TaskIDArgs) (string, error) {
	return s.taskCustomFields(ctx, "clickup_custom_fields_get", args.TaskID)
}

func (s *Server) handleCustomFieldsSetValue(ctx context.Context, args TaskCustomFieldArgs) (string, error) {
	if err := required("task_id", args.TaskID, "field_id", args.FieldID); err != nil {
		return "", err
	}
	raw, err := s.client.SetCustomFieldValue(ctx, args.TaskID, args.FieldID, args.Value)
	return s.reply("clickup_custom_fields_set_value", raw, err)
}

func (s *Server) handleCustomFieldsRemoveValue(ctx context.Context, args CustomFieldIDArgs) (string, error) {
	if err := required("task_id", args.TaskID, "field_id", args.FieldID); err != nil {
		return "", err
	}
	_, err := s.client.RemoveCustomFieldValue(ctx, args.TaskID, args.FieldID)
	return s.done("clickup_custom_fields_remove_value", "Custom field value removed successfully", err)
}

func (s *Server) handleTagsList(ctx context.Context, args SpaceIDArgs) (string, error) {
	if err := required("space_id", args.SpaceID); err != nil {
		return "", err
	}
	raw, err := s.client.GetSpaceTags(ctx, args.SpaceID)
	return s.reply("clickup_tags_list", raw, err)
}

func (s *Server) handleTagsCreate(ctx context.Context, args TagCreateArgs) (string, error) {
	if err := required("space_id", args.SpaceID, "name", args.Name); err != nil {
		return "", err
	}
	tag, err := bodyOf(args, "space_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.CreateSpaceTag(ctx, args.SpaceID, map[string]any{"tag": tag})
	return s.reply("clickup_tags_create", raw, err)
}

func (s *Server) handleTagsUpdate(ctx context.Context, args TagUpdateArgs) (string, error) {
	if err := required("space_id", args.SpaceID, "tag_name", args.TagName); err != nil {
		return "", err
	}
	tag, err := bodyOf(args, "space_id", "tag_name", "new_name")
	if err != nil {
		return "", err
	}
	if args.NewName != "" {
		tag["name"] = args.NewName
	}
	raw, err := s.client.UpdateTag(ctx, args.SpaceID, args.TagName, map[string]any{"tag": tag})
	return s.reply("clickup_tags_update", raw, err)
}

func (s *Server) handleTagsDelete(ctx context.Context, args SpaceTagArgs) (string, error) {
	if err := required("space_id", args.SpaceID, "tag_name", args.TagName); err != nil {
		return "", err
	}
	_, err := s.client.DeleteTag(ctx, args.SpaceID, args.TagName)
	return s.done("clickup_tags_delete", "Tag deleted successfully", err)
}

func (s *Server) handleTagsAddToTask(ctx context.Context, args TaskTagArgs) (string, error) {
	if err := required("task_id", args.TaskID, "tag_name", args.TagName); err != nil {
		return "", err
	}
	raw, err := s.client.AddTagToTask(ctx, args.TaskID, args.TagName)
	return s.reply("clickup_tags_add_to_task", raw, err)
}

func (s *Server) handleTagsRemoveFromTask(ctx context.Context, args TaskTagArgs) (string, error) {
	if err := required("task_id", args.TaskID, "tag_name", args.TagName); err != nil {
		return "", err
	}
	_, err := s.client.RemoveTagFromTask(ctx, args.TaskID, args.TagName)
	return s.done("clickup_tags_remove_from_task", "Tag removed from task successfully", err)
}

func (s *Server) handleTemplatesList(ctx context.Context, args TemplatesListArgs) (string, error) {
	if err := required("team_id", args.TeamID); err != nil {
		return "", err
	}
	raw, err := s.client.GetTemplates(ctx, args.TeamID, intOf(args.Page))
	return s.reply("clickup_templates_list", raw, err)
}

func (s *Server) handleTemplatesApply(ctx context.Context, args TemplateApplyArgs) (string, error) {
	if err := required("list_id", args.ListID, "template_id", args.TemplateID, "name", args.Name); err != nil {
		return "", err
	}
	raw, err := s.client.CreateTaskFromTemplate(ctx, args.ListID, args.TemplateID, args.Name)
	return s.reply("clickup_templates_apply", raw, err)
}
