package sdk

import "context"

// ListTasksRequest filters the tasks of one list.
type ListTasksRequest struct {
	ListID        string
	Page          int
	MaxPages      int // ListAllTasks only; 0 uses the server default
	Statuses      []string
	Assignees     []string
	Tags          []string
	IncludeClosed bool
	Subtasks      bool
}

func (r ListTasksRequest) args() map[string]any {
	args := map[string]any{"list_id": r.ListID}
	if len(r.Statuses) > 0 {
		args["statuses"] = r.Statuses
	}
	if len(r.Assignees) > 0 {
		args["assignees"] = r.Assignees
	}
	if len(r.Tags) > 0 {
		args["tags"] = r.Tags
	}
	if r.IncludeClosed {
		args["include_closed"] = true
	}
	if r.Subtasks {
		args["subtasks"] = true
	}
	return args
}

// SearchTasksRequest filters tasks across a workspace.
type SearchTasksRequest struct {
	TeamID        string
	MaxPages      int
	SpaceIDs      []string
	ListIDs       []string
	Statuses      []string
	Assignees     []string
	IncludeClosed bool
}

// CreateTaskRequest describes a new task. Zero values are omitted.
type CreateTaskRequest struct {
	ListID      string
	Name        string
	Description string
	Status      string
	Priority    int
	Assignees   []int64
	Tags        []string
	DueDate     int64 // Unix ms
	Parent      string
}

// UpdateTaskRequest changes a task. Zero values are left untouched.
type UpdateTaskRequest struct {
	TaskID       string
	Name         string
	Description  string
	Status       string
	Priority     int
	DueDate      int64
	AssigneesAdd []int64
	AssigneesRem []int64
}

// ListTasks returns one page of a list's tasks.
func (c *Client) ListTasks(ctx context.Context, req ListTasksRequest) (*TaskPage, error) {
	args := req.args()
	if req.Page > 0 {
		args["page"] = req.Page
	}
	res, err := c.call(ctx, "clickup_tasks_list", args)
	if err != nil {
		return nil, err
	}
	return unmarshalText[TaskPage](res)
}

// ListAllTasks follows pagination on the server and returns every task,
// up to req.MaxPages pages.
func (c *Client) ListAllTasks(ctx context.Context, req ListTasksRequest) (*TaskCollection, error) {
	args := req.args()
	if req.MaxPages > 0 {
		args["max_pages"] = req.MaxPages
	}
	res, err := c.call(ctx, "clickup_tasks_list_all", args)
	if err != nil {
		return nil, err
	}
	return unmarshalText[TaskCollection](res)
}

// SearchAllTasks searches a workspace, following pagination on the server.
func (c *Client) SearchAllTasks(ctx context.Context, req SearchTasksRequest) (*TaskCollection, error) {
	args := map[string]any{"team_id": req.TeamID}
	if req.MaxPages > 0 {
		args["max_pages"] = req.MaxPages
	}
	if len(req.SpaceIDs) > 0 {
		args["space_ids"] = req.SpaceIDs
	}
	if len(req.ListIDs) > 0 {
		args["list_ids"] = req.ListIDs
	}
	if len(req.Statuses) > 0 {
		args["statuses"] = req.Statuses
	}
	if len(req.Assignees) > 0 {
		args["assignees"] = req.Assignees
	}
	if req.IncludeClosed {
		args["include_closed"] = true
	}
	res, err := c.call(ctx, "clickup_tasks_search_all", args)
	if err != nil {
		return nil, err
	}
	return unmarshalText[TaskCollection](res)
}

// GetTask fetches a task by ID.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	res, err := c.call(ctx, "clickup_tasks_get", map[string]any{"task_id": taskID})
	if err != nil {
		return nil, err
	}
	return unmarshalText[Task](res)
}

// CreateTask creates a task in a list.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	args := map[string]any{"list_id": req.ListID, "name": req.Name}
	setString(args, "description", req.Description)
	setString(args, "status", req.Status)
	setString(args, "parent", req.Parent)
	setInt(args, "priority", int64(req.Priority))
	setInt(args, "due_date", req.DueDate)
	if len(req.Assignees) > 0 {
		args["assignees"] = req.Assignees
	}
	if len(req.Tags) > 0 {
		args["tags"] = req.Tags
	}
	res, err := c.call(ctx, "clickup_tasks_create", args)
	if err != nil {
		return nil, err
	}
	return unmarshalText[Task](res)
}

// UpdateTask changes the given fields of a task.
func (c *Client) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*Task, error) {
	args := map[string]any{"task_id": req.TaskID}
	setString(args, "name", req.Name)
	setString(args, "description", req.Description)
	setString(args, "status", req.Status)
	setInt(args, "priority", int64(req.Priority))
	setInt(args, "due_date", req.DueDate)
	if len(req.AssigneesAdd) > 0 {
		args["assignees_add"] = req.AssigneesAdd
	}
	if len(req.AssigneesRem) > 0 {
		args["assignees_rem"] = req.AssigneesRem
	}
	res, err := c.call(ctx, "clickup_tasks_update", args)
	if err != nil {
		return nil, err
	}
	return unmarshalText[Task](res)
}

// DeleteTask deletes a task and returns the server's confirmation.
func (c *Client) DeleteTask(ctx context.Context, taskID string) (string, error) {
	res, err := c.call(ctx, "clickup_tasks_delete", map[string]any{"task_id": taskID})
	if err != nil {
		return "", err
	}
	return textResult(res)
}

// AddComment posts a comment on a task.
func (c *Client) AddComment(ctx context.Context, taskID, text string) (*Comment, error) {
	res, err := c.call(ctx, "clickup_tasks_add_comment", map[string]any{"task_id": taskID, "comment_text": text})
	if err != nil {
		return nil, err
	}
	return unmarshalText[Comment](res)
}

// StartTimer starts a timer on a task.
func (c *Client) StartTimer(ctx context.Context, teamID, taskID string) (string, error) {
	return c.Call(ctx, "clickup_time_start", map[string]any{"team_id": teamID, "task_id": taskID})
}

// StopTimer stops the running timer in a workspace.
func (c *Client) StopTimer(ctx context.Context, teamID string) (string, error) {
	return c.Call(ctx, "clickup_time_stop", map[string]any{"team_id": teamID})
}

func setString(args map[string]any, key, v string) {
	if v != "" {
		args[key] = v
	}
}

func setInt(args map[string]any, key string, v int64) {
	if v != 0 {
		args[key] = v
	}
}
