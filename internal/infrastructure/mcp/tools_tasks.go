package mcp

import (
	"context"
	"encoding/json"
	"iter"

	"github.com/felixgeelhaar/clickup-mcp/pkg/clickup"
)

const defaultMaxPages = 10

type CustomFieldFilter struct {
	FieldID  string `json:"field_id" jsonschema:"description=Custom field ID"`
	Operator string `json:"operator" jsonschema:"description=Comparison operator from the ClickUp custom field filter docs"`
	Value    any    `json:"value,omitempty" jsonschema:"description=Value to compare against"`
}

// TaskFilter holds the query filters shared by list and search tools.
type TaskFilter struct {
	Archived      *FlexBool           `json:"archived,omitempty" jsonschema:"description=Include archived tasks"`
	OrderBy       string              `json:"order_by,omitempty" jsonschema:"description=Order by id, created, updated or due_date"`
	Reverse       *FlexBool           `json:"reverse,omitempty" jsonschema:"description=Reverse the order"`
	Subtasks      *FlexBool           `json:"subtasks,omitempty" jsonschema:"description=Include subtasks"`
	Statuses      []string            `json:"statuses,omitempty" jsonschema:"description=Filter by status names"`
	IncludeClosed *FlexBool           `json:"include_closed,omitempty" jsonschema:"description=Include closed tasks"`
	Assignees     []string            `json:"assignees,omitempty" jsonschema:"description=Filter by assignee user IDs"`
	Tags          []string            `json:"tags,omitempty" jsonschema:"description=Filter by tag names"`
	DueDateGt     *FlexInt            `json:"due_date_gt,omitempty" jsonschema:"description=Due after (Unix ms)"`
	DueDateLt     *FlexInt            `json:"due_date_lt,omitempty" jsonschema:"description=Due before (Unix ms)"`
	DateCreatedGt *FlexInt            `json:"date_created_gt,omitempty" jsonschema:"description=Created after (Unix ms)"`
	DateCreatedLt *FlexInt            `json:"date_created_lt,omitempty" jsonschema:"description=Created before (Unix ms)"`
	DateUpdatedGt *FlexInt            `json:"date_updated_gt,omitempty" jsonschema:"description=Updated after (Unix ms)"`
	DateUpdatedLt *FlexInt            `json:"date_updated_lt,omitempty" jsonschema:"description=Updated before (Unix ms)"`
	CustomFields  []CustomFieldFilter `json:"custom_fields,omitempty" jsonschema:"description=Custom field filters"`
}

type TaskListArgs struct {
	ListID string   `json:"list_id" jsonschema:"description=List ID"`
	Page   *FlexInt `json:"page,omitempty" jsonschema:"description=Zero-based page number"`
	TaskFilter
}

type TaskListAllArgs struct {
	ListID   string   `json:"list_id" jsonschema:"description=List ID"`
	MaxPages *FlexInt `json:"max_pages,omitempty" jsonschema:"description=Stop after this many pages (default 10)"`
	TaskFilter
}

// SearchFilter narrows a workspace-wide task search.
type SearchFilter struct {
	SpaceIDs   []string `json:"space_ids,omitempty" jsonschema:"description=Filter by space IDs"`
	ProjectIDs []string `json:"project_ids,omitempty" jsonschema:"description=Filter by folder IDs"`
	ListIDs    []string `json:"list_ids,omitempty" jsonschema:"description=Filter by list IDs"`
}

type TaskSearchArgs struct {
	TeamID string   `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	Page   *FlexInt `json:"page,omitempty" jsonschema:"description=Zero-based page number"`
	SearchFilter
	TaskFilter
}

type TaskSearchAllArgs struct {
	TeamID   string   `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	MaxPages *FlexInt `json:"max_pages,omitempty" jsonschema:"description=Stop after this many pages (default 10)"`
	SearchFilter
	TaskFilter
}

type TaskGetArgs struct {
	TaskID          string    `json:"task_id" jsonschema:"description=Task ID"`
	CustomTaskIDs   *FlexBool `json:"custom_task_ids,omitempty" jsonschema:"description=Treat task_id as a custom task ID"`
	TeamID          string    `json:"team_id,omitempty" jsonschema:"description=Workspace ID, required with custom_task_ids"`
	IncludeSubtasks *FlexBool `json:"include_subtasks,omitempty" jsonschema:"description=Include subtasks"`
}

type TaskDeleteArgs struct {
	TaskID        string    `json:"task_id" jsonschema:"description=Task ID"`
	CustomTaskIDs *FlexBool `json:"custom_task_ids,omitempty" jsonschema:"description=Treat task_id as a custom task ID"`
	TeamID        string    `json:"team_id,omitempty" jsonschema:"description=Workspace ID, required with custom_task_ids"`
}

type CustomFieldValue struct {
	ID    string `json:"id" jsonschema:"description=Custom field ID"`
	Value any    `json:"value" jsonschema:"description=Field value"`
}

type TaskCreateArgs struct {
	ListID                    string             `json:"list_id" jsonschema:"description=List ID"`
	Name                      string             `json:"name" jsonschema:"description=Task name"`
	Description               string             `json:"description,omitempty" jsonschema:"description=Task description"`
	Assignees                 []int64            `json:"assignees,omitempty" jsonschema:"description=Assignee user IDs"`
	Tags                      []string           `json:"tags,omitempty" jsonschema:"description=Tag names"`
	Status                    string             `json:"status,omitempty" jsonschema:"description=Status name"`
	Priority                  *FlexInt           `json:"priority,omitempty" jsonschema:"description=Priority 1 (urgent) to 4 (low)"`
	DueDate                   *FlexInt           `json:"due_date,omitempty" jsonschema:"description=Due date (Unix ms)"`
	DueDateTime               *FlexBool          `json:"due_date_time,omitempty" jsonschema:"description=Whether due_date includes a time"`
	TimeEstimate              *FlexInt           `json:"time_estimate,omitempty" jsonschema:"description=Time estimate in milliseconds"`
	StartDate                 *FlexInt           `json:"start_date,omitempty" jsonschema:"description=Start date (Unix ms)"`
	StartDateTime             *FlexBool          `json:"start_date_time,omitempty" jsonschema:"description=Whether start_date includes a time"`
	NotifyAll                 *FlexBool          `json:"notify_all,omitempty" jsonschema:"description=Notify all watchers"`
	Parent                    string             `json:"parent,omitempty" jsonschema:"description=Parent task ID to create a subtask"`
	LinksTo                   string             `json:"links_to,omitempty" jsonschema:"description=Task ID to link to"`
	CheckRequiredCustomFields *FlexBool          `json:"check_required_custom_fields,omitempty" jsonschema:"description=Enforce required custom fields"`
	CustomFields              []CustomFieldValue `json:"custom_fields,omitempty" jsonschema:"description=Custom field values"`
}

type TaskUpdateArgs struct {
	TaskID        string    `json:"task_id" jsonschema:"description=Task ID"`
	Name          string    `json:"name,omitempty" jsonschema:"description=Task name"`
	Description   string    `json:"description,omitempty" jsonschema:"description=Task description"`
	Status        string    `json:"status,omitempty" jsonschema:"description=Status name"`
	Priority      *FlexInt  `json:"priority,omitempty" jsonschema:"description=Priority 1 (urgent) to 4 (low)"`
	DueDate       *FlexInt  `json:"due_date,omitempty" jsonschema:"description=Due date (Unix ms)"`
	DueDateTime   *FlexBool `json:"due_date_time,omitempty" jsonschema:"description=Whether due_date includes a time"`
	Parent        string    `json:"parent,omitempty" jsonschema:"description=Move under this parent task"`
	TimeEstimate  *FlexInt  `json:"time_estimate,omitempty" jsonschema:"description=Time estimate in milliseconds"`
	StartDate     *FlexInt  `json:"start_date,omitempty" jsonschema:"description=Start date (Unix ms)"`
	StartDateTime *FlexBool `json:"start_date_time,omitempty" jsonschema:"description=Whether start_date includes a time"`
	AssigneesAdd  []int64   `json:"assignees_add,omitempty" jsonschema:"description=User IDs to assign"`
	AssigneesRem  []int64   `json:"assignees_rem,omitempty" jsonschema:"description=User IDs to unassign"`
	Archived      *FlexBool `json:"archived,omitempty" jsonschema:"description=Archive or unarchive"`
}

type TaskBulkUpdateArgs struct {
	TaskIDs      []string  `json:"task_ids" jsonschema:"description=Task IDs to update"`
	Status       string    `json:"status,omitempty" jsonschema:"description=Status to set"`
	Priority     *FlexInt  `json:"priority,omitempty" jsonschema:"description=Priority to set"`
	AssigneesAdd []int64   `json:"assignees_add,omitempty" jsonschema:"description=User IDs to assign"`
	AssigneesRem []int64   `json:"assignees_rem,omitempty" jsonschema:"description=User IDs to unassign"`
	Archived     *FlexBool `json:"archived,omitempty" jsonschema:"description=Archive or unarchive"`
}

type TimeEntryCreateArgs struct {
	TeamID      string    `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	TaskID      string    `json:"task_id" jsonschema:"description=Task ID"`
	Duration    FlexInt   `json:"duration" jsonschema:"description=Duration in milliseconds"`
	Start       FlexInt   `json:"start" jsonschema:"description=Start time (Unix ms)"`
	Description string    `json:"description,omitempty" jsonschema:"description=Entry description"`
	Billable    *FlexBool `json:"billable,omitempty" jsonschema:"description=Billable entry"`
	Assignee    *FlexInt  `json:"assignee,omitempty" jsonschema:"description=User ID, defaults to the caller"`
	Tags        []string  `json:"tags,omitempty" jsonschema:"description=Tag names"`
}

type TaskCustomFieldArgs struct {
	TaskID  string `json:"task_id" jsonschema:"description=Task ID"`
	FieldID string `json:"field_id" jsonschema:"description=Custom field ID"`
	Value   any    `json:"value" jsonschema:"description=Value to set"`
}

type DependencyArgs struct {
	TaskID       string `json:"task_id" jsonschema:"description=Task ID"`
	DependsOn    string `json:"depends_on,omitempty" jsonschema:"description=Task that must finish first"`
	DependencyOf string `json:"dependency_of,omitempty" jsonschema:"description=Task that waits on this one"`
}

type TaskCommentArgs struct {
	TaskID      string    `json:"task_id" jsonschema:"description=Task ID"`
	CommentText string    `json:"comment_text" jsonschema:"description=Comment text"`
	Assignee    *FlexInt  `json:"assignee,omitempty" jsonschema:"description=Assign the comment to this user"`
	NotifyAll   *FlexBool `json:"notify_all,omitempty" jsonschema:"description=Notify all watchers"`
}

func (s *Server) registerTaskTools() {
	s.mcpServer.Tool("clickup_tasks_list").
		Description("List one page of the tasks in a list, with optional filters").
		Handler(s.handleTasksList)
	s.mcpServer.Tool("clickup_tasks_list_all").
		Description("List every task in a list by following pagination, up to max_pages").
		Handler(s.handleTasksListAll)
	s.mcpServer.Tool("clickup_tasks_get").
		Description("Get a task by ID").
		Handler(s.handleTasksGet)
	s.mcpServer.Tool("clickup_tasks_create").
		Description("Create a task in a list").
		Handler(s.handleTasksCreate)
	s.mcpServer.Tool("clickup_tasks_update").
		Description("Update a task").
		Handler(s.handleTasksUpdate)
	s.mcpServer.Tool("clickup_tasks_delete").
		Description("Delete a task").
		Handler(s.handleTasksDelete)
	s.mcpServer.Tool("clickup_tasks_search").
		Description("Search one page of tasks across a workspace").
		Handler(s.handleTasksSearch)
	s.mcpServer.Tool("clickup_tasks_search_all").
		Description("Search tasks across a workspace by following pagination, up to max_pages").
		Handler(s.handleTasksSearchAll)
	s.mcpServer.Tool("clickup_tasks_bulk_update").
		Description("Apply one update to several tasks").
		Handler(s.handleTasksBulkUpdate)
	s.mcpServer.Tool("clickup_tasks_get_time_entries").
		Description("List the time entries of a task").
		Handler(s.handleTasksGetTimeEntries)
	s.mcpServer.Tool("clickup_tasks_add_time_entry").
		Description("Record a time entry against a task").
		Handler(s.handleTasksAddTimeEntry)
	s.mcpServer.Tool("clickup_tasks_get_custom_fields").
		Description("Get the custom field values of a task").
		Handler(s.handleTasksGetCustomFields)
	s.mcpServer.Tool("clickup_tasks_set_custom_field").
		Description("Set a custom field value on a task").
		Handler(s.handleTasksSetCustomField)
	s.mcpServer.Tool("clickup_tasks_add_dependency").
		Description("Add a dependency between two tasks").
		Handler(s.handleTasksAddDependency)
	s.mcpServer.Tool("clickup_tasks_remove_dependency").
		Description("Remove a dependency between two tasks").
		Handler(s.handleTasksRemoveDependency)
	s.mcpServer.Tool("clickup_tasks_list_members").
		Description("List the members of a task").
		Handler(s.handleTasksListMembers)
	s.mcpServer.Tool("clickup_tasks_add_comment").
		Description("Comment on a task").
		Handler(s.handleTasksAddComment)
	s.mcpServer.Tool("clickup_tasks_get_comments").
		Description("List the comments of a task").
		Handler(s.handleTasksGetComments)
}

func (s *Server) handleTasksList(ctx context.Context, args TaskListArgs) (string, error) {
	if err := required("list_id", args.ListID); err != nil {
		return "", err
	}
	params, err := queryOf(args, "list_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.GetTasks(ctx, args.ListID, params)
	return s.reply("clickup_tasks_list", raw, err)
}

func (s *Server) handleTasksListAll(ctx context.Context, args TaskListAllArgs) (string, error) {
	if err := required("list_id", args.ListID); err != nil {
		return "", err
	}
	params, err := queryOf(args, "list_id", "max_pages")
	if err != nil {
		return "", err
	}
	return s.collectTasks("clickup_tasks_list_all", s.client.AllTasks(ctx, args.ListID, params), args.MaxPages)
}

func (s *Server) handleTasksSearch(ctx context.Context, args TaskSearchArgs) (string, error) {
	if err := required("team_id", args.TeamID); err != nil {
		return "", err
	}
	params, err := queryOf(args, "team_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.GetFilteredTasks(ctx, args.TeamID, params)
	return s.reply("clickup_tasks_search", raw, err)
}

func (s *Server) handleTasksSearchAll(ctx context.Context, args TaskSearchAllArgs) (string, error) {
	if err := required("team_id", args.TeamID); err != nil {
		return "", err
	}
	params, err := queryOf(args, "team_id", "max_pages")
	if err != nil {
		return "", err
	}
	return s.collectTasks("clickup_tasks_search_all", s.client.AllFilteredTasks(ctx, args.TeamID, params), args.MaxPages)
}

type collectedTasks struct {
	Tasks []json.RawMessage `json:"tasks"`
	Pages int               `json:"pages"`
}

func (s *Server) collectTasks(tool string, pages iter.Seq2[[]json.RawMessage, error], maxPages *FlexInt) (string, error) {
	limit := defaultMaxPages
	if maxPages != nil && *maxPages > 0 {
		limit = int(*maxPages)
	}
	tasks, n, err := clickup.Collect(pages, limit)
	if err != nil {
		return s.done(tool, "", err)
	}
	if tasks == nil {
		tasks = []json.RawMessage{}
	}
	return marshalText(collectedTasks{Tasks: tasks, Pages: n})
}

func (s *Server) handleTasksGet(ctx context.Context, args TaskGetArgs) (string, error) {
	if err := required("task_id", args.TaskID); err != nil {
		return "", err
	}
	params, err := queryOf(args, "task_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.GetTask(ctx, args.TaskID, params)
	return s.reply("clickup_tasks_get", raw, err)
}

func (s *Server) handleTasksCreate(ctx context.Context, args TaskCreateArgs) (string, error) {
	if err := required("list_id", args.ListID, "name", args.Name); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "list_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.CreateTask(ctx, args.ListID, body)
	return s.reply("clickup_tasks_create", raw, err)
}

// foldAssignees replaces assignees_add/assignees_rem with the
// {"assignees":{"add":[...],"rem":[...]}} shape ClickUp expects.
func foldAssignees(body map[string]any, add, rem []int64) {
	delete(body, "assignees_add")
	delete(body, "assignees_rem")
	if len(add) == 0 && len(rem) == 0 {
		return
	}
	change := map[string]any{}
	if len(add) > 0 {
		change["add"] = add
	}
	if len(rem) > 0 {
		change["rem"] = rem
	}
	body["assignees"] = change
}

func (s *Server) handleTasksUpdate(ctx context.Context, args TaskUpdateArgs) (string, error) {
	if err := required("task_id", args.TaskID); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "task_id")
	if err != nil {
		return "", err
	}
	foldAssignees(body, args.AssigneesAdd, args.AssigneesRem)
	raw, err := s.client.UpdateTask(ctx, args.TaskID, body)
	return s.reply("clickup_tasks_update", raw, err)
}

func (s *Server) handleTasksDelete(ctx context.Context, args TaskDeleteArgs) (string, error) {
	if err := required("task_id", args.TaskID); err != nil {
		return "", err
	}
	params, err := queryOf(args, "task_id")
	if err != nil {
		return "", err
	}
	_, err = s.client.DeleteTask(ctx, args.TaskID, params)
	return s.done("clickup_tasks_delete", "Task deleted successfully", err)
}

func (s *Server) handleTasksBulkUpdate(ctx context.Context, args TaskBulkUpdateArgs) (string, error) {
	if len(args.TaskIDs) == 0 {
		return "", mcpErr("task_ids must contain at least one task")
	}
	body, err := bodyOf(args, "task_ids")
	if err != nil {
		return "", err
	}
	foldAssignees(body, args.AssigneesAdd, args.AssigneesRem)
	raw, err := s.client.BulkUpdateTasks(ctx, args.TaskIDs, body)
	return s.reply("clickup_tasks_bulk_update", raw, err)
}

func (s *Server) handleTasksGetTimeEntries(ctx context.Context, args TaskIDArgs) (string, error) {
	if err := required("task_id", args.TaskID); err != nil {
		return "", err
	}
	raw, err := s.client.GetTaskTimeEntries(ctx, args.TaskID)
	return s.reply("clickup_tasks_get_time_entries", raw, err)
}

// timeEntryBody builds a time entry payload: task_id travels as tid and
// tag names become tag objects.
func timeEntryBody(args any, tags []string, omit ...string) (map[string]any, error) {
	body, err := bodyOf(args, omit...)
	if err != nil {
		return nil, err
	}
	if taskID, ok := body["task_id"]; ok {
		body["tid"] = taskID
		delete(body, "task_id")
	}
	if len(tags) > 0 {
		objs := make([]map[string]string, 0, len(tags))
		for _, t := range tags {
			objs = append(objs, map[string]string{"name": t})
		}
		body["tags"] = objs
	}
	return body, nil
}

func (s *Server) handleTasksAddTimeEntry(ctx context.Context, args TimeEntryCreateArgs) (string, error) {
	return s.createTimeEntry(ctx, "clickup_tasks_add_time_entry", args)
}

func (s *Server) createTimeEntry(ctx context.Context, tool string, args TimeEntryCreateArgs) (string, error) {
	if err := required("team_id", args.TeamID, "task_id", args.TaskID); err != nil {
		return "", err
	}
	body, err := timeEntryBody(args, args.Tags, "team_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.CreateTimeEntry(ctx, args.TeamID, body)
	return s.reply(tool, raw, err)
}

// customFieldsOf extracts the custom_fields array of a task payload.
func customFieldsOf(raw []byte) (string, error) {
	var task struct {
		CustomFields []json.RawMessage `json:"custom_fields"`
	}
	if err := json.Unmarshal(raw, &task); err != nil {
		return "", mcpErr("Unexpected task payload from ClickUp.")
	}
	if task.CustomFields == nil {
		task.CustomFields = []json.RawMessage{}
	}
	return marshalText(task.CustomFields)
}

func (s *Server) taskCustomFields(ctx context.Context, tool, taskID string) (string, error) {
	if err := required("task_id", taskID); err != nil {
		return "", err
	}
	raw, err := s.client.GetTask(ctx, taskID, nil)
	if err != nil {
		return s.done(tool, "", err)
	}
	return customFieldsOf(raw)
}

func (s *Server) handleTasksGetCustomFields(ctx context.Context, args TaskIDArgs) (string, error) {
	return s.taskCustomFields(ctx, "clickup_tasks_get_custom_fields", args.TaskID)
}

func (s *Server) handleTasksSetCustomField(ctx context.Context, args TaskCustomFieldArgs) (string, error) {
	if err := required("task_id", args.TaskID, "field_id", args.FieldID); err != nil {
		return "", err
	}
	raw, err := s.client.SetCustomFieldValue(ctx, args.TaskID, args.FieldID, args.Value)
	return s.reply("clickup_tasks_set_custom_field", raw, err)
}

func (s *Server) handleTasksAddDependency(ctx context.Context, args DependencyArgs) (string, error) {
	if err := required("task_id", args.TaskID); err != nil {
		return "", err
	}
	if args.DependsOn == "" && args.DependencyOf == "" {
		return "", mcpErr("Either depends_on or dependency_of must be provided")
	}
	raw, err := s.client.AddDependency(ctx, args.TaskID, args.DependsOn, args.DependencyOf)
	return s.reply("clickup_tasks_add_dependency", raw, err)
}

func (s *Server) handleTasksRemoveDependency(ctx context.Context, args DependencyArgs) (string, error) {
	if err := required("task_id", args.TaskID); err != nil {
		return "", err
	}
	if args.DependsOn == "" && args.DependencyOf == "" {
		return "", mcpErr("Either depends_on or dependency_of must be provided")
	}
	_, err := s.client.DeleteDependency(ctx, args.TaskID, args.DependsOn, args.DependencyOf)
	return s.done("clickup_tasks_remove_dependency", "Dependency removed", err)
}

func (s *Server) handleTasksListMembers(ctx context.Context, args TaskIDArgs) (string, error) {
	if err := required("task_id", args.TaskID); err != nil {
		return "", err
	}
	raw, err := s.client.GetTaskMembers(ctx, args.TaskID)
	return s.reply("clickup_tasks_list_members", raw, err)
}

func (s *Server) handleTasksAddComment(ctx context.Context, args TaskCommentArgs) (string, error) {
	return s.createComment(ctx, "clickup_tasks_add_comment", args)
}

func (s *Server) createComment(ctx context.Context, tool string, args TaskCommentArgs) (string, error) {
	if err := required("task_id", args.TaskID, "comment_text", args.CommentText); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "task_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.CreateComment(ctx, args.TaskID, body)
	return s.reply(tool, raw, err)
}

func (s *Server) handleTasksGetComments(ctx context.Context, args TaskIDArgs) (string, error) {
	if err := required("task_id", args.TaskID); err != nil {
		return "", err
	}
	raw, err := s.client.GetTaskComments(ctx, args.TaskID)
	return s.reply("clickup_tasks_get_comments", raw, err)
}
