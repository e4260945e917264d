package mcp

import (
	"context"
)

// Goals, key results and time tracking.

type GoalIDArgs struct {
	GoalID string `json:"goal_id" jsonschema:"description=Goal ID"`
}

type GoalCreateArgs struct {
	TeamID         string    `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	Name           string    `json:"name" jsonschema:"description=Goal name"`
	DueDate        *FlexInt  `json:"due_date,omitempty" jsonschema:"description=Due date (Unix ms)"`
	Description    string    `json:"description,omitempty" jsonschema:"description=Goal description"`
	MultipleOwners *FlexBool `json:"multiple_owners,omitempty" jsonschema:"description=Allow multiple owners"`
	Owners         []int64   `json:"owners,omitempty" jsonschema:"description=Owner user IDs"`
	Color          string    `json:"color,omitempty" jsonschema:"description=Hex color"`
}

type GoalUpdateArgs struct {
	GoalID      string   `json:"goal_id" jsonschema:"description=Goal ID"`
	Name        string   `json:"name,omitempty" jsonschema:"description=Goal name"`
	DueDate     *FlexInt `json:"due_date,omitempty" jsonschema:"description=Due date (Unix ms)"`
	Description string   `json:"description,omitempty" jsonschema:"description=Goal description"`
	RemOwners   []int64  `json:"rem_owners,omitempty" jsonschema:"description=Owner user IDs to remove"`
	AddOwners   []int64  `json:"add_owners,omitempty" jsonschema:"description=Owner user IDs to add"`
	Color       string   `json:"color,omitempty" jsonschema:"description=Hex color"`
}

type KeyResultCreateArgs struct {
	GoalID     string   `json:"goal_id" jsonschema:"description=Goal ID"`
	Name       string   `json:"name" jsonschema:"description=Key result name"`
	Owners     []int64  `json:"owners,omitempty" jsonschema:"description=Owner user IDs"`
	Type       string   `json:"type" jsonschema:"description=One of number, currency, boolean, percentage or automatic"`
	StepsStart *float64 `json:"steps_start,omitempty" jsonschema:"description=Starting value"`
	StepsEnd   *float64 `json:"steps_end,omitempty" jsonschema:"description=Target value"`
	Unit       string   `json:"unit,omitempty" jsonschema:"description=Unit label for currency results"`
	TaskIDs    []string `json:"task_ids,omitempty" jsonschema:"description=Task IDs for automatic results"`
	ListIDs    []string `json:"list_ids,omitempty" jsonschema:"description=List IDs for automatic results"`
}

type KeyResultUpdateArgs struct {
	KeyResultID  string   `json:"key_result_id" jsonschema:"description=Key result ID"`
	Name         string   `json:"name,omitempty" jsonschema:"description=Key result name"`
	Note         string   `json:"note,omitempty" jsonschema:"description=Progress note"`
	StepsCurrent *float64 `json:"steps_current,omitempty" jsonschema:"description=Current value"`
	StepsStart   *float64 `json:"steps_start,omitempty" jsonschema:"description=Starting value"`
	StepsEnd     *float64 `json:"steps_end,omitempty" jsonschema:"description=Target value"`
}

type KeyResultIDArgs struct {
	KeyResultID string `json:"key_result_id" jsonschema:"description=Key result ID"`
}

type TimeEntriesListArgs struct {
	TeamID               string    `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	StartDate            *FlexInt  `json:"start_date,omitempty" jsonschema:"description=Entries starting after (Unix ms)"`
	EndDate              *FlexInt  `json:"end_date,omitempty" jsonschema:"description=Entries starting before (Unix ms)"`
	Assignee             *FlexInt  `json:"assignee,omitempty" jsonschema:"description=Filter by user ID"`
	IncludeTaskTags      *FlexBool `json:"include_task_tags,omitempty" jsonschema:"description=Include task tags"`
	IncludeLocationNames *FlexBool `json:"include_location_names,omitempty" jsonschema:"description=Include list and folder names"`
	SpaceID              string    `json:"space_id,omitempty" jsonschema:"description=Filter by space ID"`
	FolderID             string    `json:"folder_id,omitempty" jsonschema:"description=Filter by folder ID"`
	ListID               string    `json:"list_id,omitempty" jsonschema:"description=Filter by list ID"`
	TaskID               string    `json:"task_id,omitempty" jsonschema:"description=Filter by task ID"`
}

type TimeEntryIDArgs struct {
	TeamID  string `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	TimerID string `json:"timer_id" jsonschema:"description=Time entry ID"`
}

type TimeEntryUpdateArgs struct {
	TeamID      string    `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	TimerID     string    `json:"timer_id" jsonschema:"description=Time entry ID"`
	Description string    `json:"description,omitempty" jsonschema:"description=Entry description"`
	Billable    *FlexBool `json:"billable,omitempty" jsonschema:"description=Billable entry"`
	Start       *FlexInt  `json:"start,omitempty" jsonschema:"description=Start time (Unix ms)"`
	End         *FlexInt  `json:"end,omitempty" jsonschema:"description=End time (Unix ms)"`
	Duration    *FlexInt  `json:"duration,omitempty" jsonschema:"description=Duration in milliseconds"`
	Assignee    *FlexInt  `json:"assignee,omitempty" jsonschema:"description=User ID"`
	Tags        []string  `json:"tags,omitempty" jsonschema:"description=Tag names"`
}

type RunningTimerArgs struct {
	TeamID   string `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	Assignee string `json:"assignee,omitempty" jsonschema:"description=User ID (defaults to the caller)"`
}

type TimerStartArgs struct {
	TeamID      string    `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	TaskID      string    `json:"task_id" jsonschema:"description=Task ID"`
	Description string    `json:"description,omitempty" jsonschema:"description=Timer description"`
	Billable    *FlexBool `json:"billable,omitempty" jsonschema:"description=Billable entry"`
}

func (s *Server) registerTrackingTools() {
	// Goals
	s.mcpServer.Tool("clickup_goals_list").
		Description("List the goals of a workspace").
		Handler(s.handleGoalsList)
	s.mcpServer.Tool("clickup_goals_get").
		Description("Get a goal and its key results").
		Handler(s.handleGoalsGet)
	s.mcpServer.Tool("clickup_goals_create").
		Description("Create a goal").
		Handler(s.handleGoalsCreate)
	s.mcpServer.Tool("clickup_goals_update").
		Description("Update a goal").
		Handler(s.handleGoalsUpdate)
	s.mcpServer.Tool("clickup_goals_delete").
		Description("Delete a goal").
		Handler(s.handleGoalsDelete)
	s.mcpServer.Tool("clickup_goals_add_key_result").
		Description("Add a key result to a goal").
		Handler(s.handleGoalsAddKeyResult)
	s.mcpServer.Tool("clickup_goals_update_key_result").
		Description("Update a key result or record progress").
		Handler(s.handleGoalsUpdateKeyResult)
	s.mcpServer.Tool("clickup_goals_delete_key_result").
		Description("Delete a key result").
		Handler(s.handleGoalsDeleteKeyResult)

	// Time tracking
	s.mcpServer.Tool("clickup_time_list_entries").
		Description("List time entries in a workspace").
		Handler(s.handleTimeListEntries)
	s.mcpServer.Tool("clickup_time_get_entry").
		Description("Get a time entry").
		Handler(s.handleTimeGetEntry)
	s.mcpServer.Tool("clickup_time_create").
		Description("Create a time entry for a task").
		Handler(s.handleTimeCreate)
	s.mcpServer.Tool("clickup_time_update").
		Description("Update a time entry").
		Handler(s.handleTimeUpdate)
	s.mcpServer.Tool("clickup_time_delete").
		Description("Delete a time entry").
		Handler(s.handleTimeDelete)
	s.mcpServer.Tool("clickup_time_get_running").
		Description("Get the running timer of a user").
		Handler(s.handleTimeGetRunning)
	s.mcpServer.Tool("clickup_time_start").
		Description("Start a timer on a task").
		Handler(s.handleTimeStart)
	s.mcpServer.Tool("clickup_time_stop").
		Description("Stop the running timer").
		Handler(s.handleTimeStop)
}

func (s *Server) handleGoalsList(ctx context.Context, args TeamArgs) (string, error) {
	if err := required("team_id", args.TeamID); err != nil {
		return "", err
	}
	raw, err := s.client.GetGoals(ctx, args.TeamID)
	return s.reply("clickup_goals_list", raw, err)
}

func (s *Server) handleGoalsGet(ctx context.Context, args GoalIDArgs) (string, error) {
	if err := required("goal_id", args.GoalID); err != nil {
		return "", err
	}
	raw, err := s.client.GetGoal(ctx, args.GoalID)
	return s.reply("clickup_goals_get", raw, err)
}

func (s *Server) handleGoalsCreate(ctx context.Context, args GoalCreateArgs) (string, error) {
	if err := required("team_id", args.TeamID, "name", args.Name); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "team_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.CreateGoal(ctx, args.TeamID, body)
	return s.reply("clickup_goals_create", raw, err)
}

func (s *Server) handleGoalsUpdate(ctx context.Context, args GoalUpdateArgs) (string, error) {
	if err := required("goal_id", args.GoalID); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "goal_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.UpdateGoal(ctx, args.GoalID, body)
	return s.reply("clickup_goals_update", raw, err)
}

func (s *Server) handleGoalsDelete(ctx context.Context, args GoalIDArgs) (string, error) {
	if err := required("goal_id", args.GoalID); err != nil {
		return "", err
	}
	_, err := s.client.DeleteGoal(ctx, args.GoalID)
	return s.done("clickup_goals_delete", "Goal deleted successfully", err)
}

func (s *Server) handleGoalsAddKeyResult(ctx context.Context, args KeyResultCreateArgs) (string, error) {
	if err := required("goal_id", args.GoalID, "name", args.Name, "type", args.Type); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "goal_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.CreateKeyResult(ctx, args.GoalID, body)
	return s.reply("clickup_goals_add_key_result", raw, err)
}

func (s *Server) handleGoalsUpdateKeyResult(ctx context.Context, args KeyResultUpdateArgs) (string, error) {
	if err := required("key_result_id", args.KeyResultID); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "key_result_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.UpdateKeyResult(ctx, args.KeyResultID, body)
	return s.reply("clickup_goals_update_key_result", raw, err)
}

func (s *Server) handleGoalsDeleteKeyResult(ctx context.Context, args KeyResultIDArgs) (string, error) {
	if err := required("key_result_id", args.KeyResultID); err != nil {
		return "", err
	}
	_, err := s.client.DeleteKeyResult(ctx, args.KeyResultID)
	return s.done("clickup_goals_delete_key_result", "Key result deleted successfully", err)
}

func (s *Server) handleTimeListEntries(ctx context.Context, args TimeEntriesListArgs) (string, error) {
	if err := required("team_id", args.TeamID); err != nil {
		return "", err
	}
	params, err := queryOf(args, "team_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.GetTimeEntries(ctx, args.TeamID, params)
	return s.reply("clickup_time_list_entries", raw, err)
}

func (s *Server) handleTimeGetEntry(ctx context.Context, args TimeEntryIDArgs) (string, error) {
	if err := required("team_id", args.TeamID, "timer_id", args.TimerID); err != nil {
		return "", err
	}
	raw, err := s.client.GetTimeEntry(ctx, args.TeamID, args.TimerID)
	return s.reply("clickup_time_get_entry", raw, err)
}

func (s *Server) handleTimeCreate(ctx context.Context, args TimeEntryCreateArgs) (string, error) {
	return s.createTimeEntry(ctx, "clickup_time_create", args)
}

func (s *Server) handleTimeUpdate(ctx context.Context, args TimeEntryUpdateArgs) (string, error) {
	if err := required("team_id", args.TeamID, "timer_id", args.TimerID); err != nil {
		return "", err
	}
	body, err := timeEntryBody(args, args.Tags, "team_id", "timer_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.UpdateTimeEntry(ctx, args.TeamID, args.TimerID, body)
	return s.reply("clickup_time_update", raw, err)
}

func (s *Server) handleTimeDelete(ctx context.Context, args TimeEntryIDArgs) (string, error) {
	if err := required("team_id", args.TeamID, "timer_id", args.TimerID); err != nil {
		return "", err
	}
	_, err := s.client.DeleteTimeEntry(ctx, args.TeamID, args.TimerID)
	return s.done("clickup_time_delete", "Time entry deleted successfully", err)
}

func (s *Server) handleTimeGetRunning(ctx context.Context, args RunningTimerArgs) (string, error) {
	if err := required("team_id", args.TeamID); err != nil {
		return "", err
	}
	raw, err := s.client.GetRunningTimeEntry(ctx, args.TeamID, args.Assignee)
	return s.reply("clickup_time_get_running", raw, err)
}

func (s *Server) handleTimeStart(ctx context.Context, args TimerStartArgs) (string, error) {
	if err := required("team_id", args.TeamID, "task_id", args.TaskID); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "team_id", "task_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.StartTimer(ctx, args.TeamID, args.TaskID, body)
	return s.reply("clickup_time_start", raw, err)
}

func (s *Server) handleTimeStop(ctx context.Context, args TeamArgs) (string, error) {
	if err := required("team_id", args.TeamID); err != nil {
		return "", err
	}
	raw, err := s.client.StopTimer(ctx, args.TeamID)
	return s.reply("clickup_time_stop", raw, err)
}
