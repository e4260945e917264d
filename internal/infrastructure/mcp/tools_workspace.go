package mcp

import (
	"context"
)

// Workspace hierarchy: teams, spaces, folders, lists, views and docs.

type TeamArgs struct {
	TeamID string `json:"team_id" jsonschema:"description=Workspace (team) ID"`
}

type ListIDArgs struct {
	ListID string `json:"list_id" jsonschema:"description=List ID"`
}

type TaskIDArgs struct {
	TaskID string `json:"task_id" jsonschema:"description=Task ID"`
}

type SpaceListArgs struct {
	TeamID   string    `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	Archived *FlexBool `json:"archived,omitempty" jsonschema:"description=Include archived spaces"`
}

type SpaceIDArgs struct {
	SpaceID string `json:"space_id" jsonschema:"description=Space ID"`
}

type SpaceCreateArgs struct {
	TeamID            string         `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	Name              string         `json:"name" jsonschema:"description=Space name"`
	MultipleAssignees *FlexBool      `json:"multiple_assignees,omitempty" jsonschema:"description=Allow multiple assignees on tasks"`
	Features          map[string]any `json:"features,omitempty" jsonschema:"description=ClickApp feature toggles keyed by feature name"`
}

type SpaceUpdateArgs struct {
	SpaceID           string         `json:"space_id" jsonschema:"description=Space ID"`
	Name              string         `json:"name,omitempty" jsonschema:"description=New space name"`
	Color             string         `json:"color,omitempty" jsonschema:"description=Hex color"`
	Private           *FlexBool      `json:"private,omitempty" jsonschema:"description=Make the space private"`
	AdminCanManage    *FlexBool      `json:"admin_can_manage,omitempty" jsonschema:"description=Let admins manage the space"`
	MultipleAssignees *FlexBool      `json:"multiple_assignees,omitempty" jsonschema:"description=Allow multiple assignees on tasks"`
	Features          map[string]any `json:"features,omitempty" jsonschema:"description=ClickApp feature toggles keyed by feature name"`
}

type FolderListArgs struct {
	SpaceID  string    `json:"space_id" jsonschema:"description=Space ID"`
	Archived *FlexBool `json:"archived,omitempty" jsonschema:"description=Include archived folders"`
}

type FolderIDArgs struct {
	FolderID string `json:"folder_id" jsonschema:"description=Folder ID"`
}

type FolderCreateArgs struct {
	SpaceID string `json:"space_id" jsonschema:"description=Space ID"`
	Name    string `json:"name" jsonschema:"description=Folder name"`
}

type FolderUpdateArgs struct {
	FolderID string `json:"folder_id" jsonschema:"description=Folder ID"`
	Name     string `json:"name" jsonschema:"description=New folder name"`
}

type ListsListArgs struct {
	FolderID string    `json:"folder_id,omitempty" jsonschema:"description=Folder ID (takes precedence over space_id)"`
	SpaceID  string    `json:"space_id,omitempty" jsonschema:"description=Space ID for folderless lists"`
	Archived *FlexBool `json:"archived,omitempty" jsonschema:"description=Include archived lists"`
}

type ListCreateArgs struct {
	FolderID    string    `json:"folder_id,omitempty" jsonschema:"description=Folder ID (takes precedence over space_id)"`
	SpaceID     string    `json:"space_id,omitempty" jsonschema:"description=Space ID for a folderless list"`
	Name        string    `json:"name" jsonschema:"description=List name"`
	Content     string    `json:"content,omitempty" jsonschema:"description=List description"`
	DueDate     *FlexInt  `json:"due_date,omitempty" jsonschema:"description=Due date (Unix ms)"`
	DueDateTime *FlexBool `json:"due_date_time,omitempty" jsonschema:"description=Whether due_date includes a time"`
	Priority    *FlexInt  `json:"priority,omitempty" jsonschema:"description=Priority 1 (urgent) to 4 (low)"`
	Assignee    *FlexInt  `json:"assignee,omitempty" jsonschema:"description=Assignee user ID"`
	Status      string    `json:"status,omitempty" jsonschema:"description=List color status"`
}

type ListUpdateArgs struct {
	ListID      string    `json:"list_id" jsonschema:"description=List ID"`
	Name        string    `json:"name,omitempty" jsonschema:"description=New list name"`
	Content     string    `json:"content,omitempty" jsonschema:"description=List description"`
	DueDate     *FlexInt  `json:"due_date,omitempty" jsonschema:"description=Due date (Unix ms)"`
	DueDateTime *FlexBool `json:"due_date_time,omitempty" jsonschema:"description=Whether due_date includes a time"`
	Priority    *FlexInt  `json:"priority,omitempty" jsonschema:"description=Priority 1 (urgent) to 4 (low)"`
	Assignee    *FlexInt  `json:"assignee,omitempty" jsonschema:"description=Assignee user ID"`
	UnsetStatus *FlexBool `json:"unset_status,omitempty" jsonschema:"description=Clear the list color status"`
}

type ListTaskArgs struct {
	ListID string `json:"list_id" jsonschema:"description=List ID"`
	TaskID string `json:"task_id" jsonschema:"description=Task ID"`
}

type ViewsListArgs struct {
	TeamID   string `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	SpaceID  string `json:"space_id" jsonschema:"description=Space ID"`
	ListID   string `json:"list_id,omitempty" jsonschema:"description=Narrow to a list"`
	FolderID string `json:"folder_id,omitempty" jsonschema:"description=Narrow to a folder"`
}

type ViewIDArgs struct {
	ViewID string `json:"view_id" jsonschema:"description=View ID"`
}

type ViewTasksArgs struct {
	ViewID string   `json:"view_id" jsonschema:"description=View ID"`
	Page   *FlexInt `json:"page,omitempty" jsonschema:"description=Zero-based page number"`
}

type ViewParent struct {
	ID   string   `json:"id" jsonschema:"description=Parent ID"`
	Type *FlexInt `json:"type" jsonschema:"description=Parent type (7 team, 4 space, 5 folder, 6 list)"`
}

type ViewOrder struct {
	Field string   `json:"field" jsonschema:"description=Field name"`
	Dir   *FlexInt `json:"dir,omitempty" jsonschema:"description=1 ascending, -1 descending"`
}

type ViewSorting struct {
	Fields []ViewOrder `json:"fields" jsonschema:"description=Sort fields in priority order"`
}

type ViewCreateArgs struct {
	TeamID   string       `json:"team_id" jsonschema:"description=Workspace (team) ID"`
	SpaceID  string       `json:"space_id" jsonschema:"description=Space ID"`
	Name     string       `json:"name" jsonschema:"description=View name"`
	Type     string       `json:"type" jsonschema:"description=View type such as list, board, calendar or gantt"`
	Parent   *ViewParent  `json:"parent,omitempty" jsonschema:"description=Where the view lives"`
	Grouping *ViewOrder   `json:"grouping,omitempty" jsonschema:"description=Grouping field and direction"`
	Sorting  *ViewSorting `json:"sorting,omitempty" jsonschema:"description=Sorting fields"`
}

type ViewUpdateArgs struct {
	ViewID   string       `json:"view_id" jsonschema:"description=View ID"`
	Name     string       `json:"name,omitempty" jsonschema:"description=New view name"`
	Grouping *ViewOrder   `json:"grouping,omitempty" jsonschema:"description=Grouping field and direction"`
	Sorting  *ViewSorting `json:"sorting,omitempty" jsonschema:"description=Sorting fields"`
}

type DocsListArgs struct {
	WorkspaceID string `json:"workspace_id" jsonschema:"description=Workspace ID"`
}

type DocsSearchArgs struct {
	WorkspaceID string `json:"workspace_id" jsonschema:"description=Workspace ID"`
	Search      string `json:"search" jsonschema:"description=Search text"`
}

func (s *Server) registerWorkspaceTools() {
	// Teams
	s.mcpServer.Tool("clickup_teams_list_workspaces").
		Description("List the workspaces (teams) the credential can access").
		Handler(s.handleListWorkspaces)
	s.mcpServer.Tool("clickup_teams_get_workspace").
		Description("Get a workspace by ID").
		Handler(s.handleGetWorkspace)
	s.mcpServer.Tool("clickup_teams_list_members").
		Description("List the members of a list").
		Handler(s.handleListMembers)
	s.mcpServer.Tool("clickup_teams_get_member").
		Description("List the members of a task").
		Handler(s.handleGetMember)

	// Spaces
	s.mcpServer.Tool("clickup_spaces_list").
		Description("List the spaces of a workspace").
		Handler(s.handleSpacesList)
	s.mcpServer.Tool("clickup_spaces_get").
		Description("Get a space by ID").
		Handler(s.handleSpacesGet)
	s.mcpServer.Tool("clickup_spaces_create").
		Description("Create a space in a workspace").
		Handler(s.handleSpacesCreate)
	s.mcpServer.Tool("clickup_spaces_update").
		Description("Update a space").
		Handler(s.handleSpacesUpdate)
	s.mcpServer.Tool("clickup_spaces_delete").
		Description("Delete a space").
		Handler(s.handleSpacesDelete)

	// Folders
	s.mcpServer.Tool("clickup_folders_list").
		Description("List the folders of a space").
		Handler(s.handleFoldersList)
	s.mcpServer.Tool("clickup_folders_get").
		Description("Get a folder by ID").
		Handler(s.handleFoldersGet)
	s.mcpServer.Tool("clickup_folders_create").
		Description("Create a folder in a space").
		Handler(s.handleFoldersCreate)
	s.mcpServer.Tool("clickup_folders_update").
		Description("Rename a folder").
		Handler(s.handleFoldersUpdate)
	s.mcpServer.Tool("clickup_folders_delete").
		Description("Delete a folder").
		Handler(s.handleFoldersDelete)

	// Lists
	s.mcpServer.Tool("clickup_lists_list").
		Description("List the lists of a folder, or the folderless lists of a space").
		Handler(s.handleListsList)
	s.mcpServer.Tool("clickup_lists_get").
		Description("Get a list by ID").
		Handler(s.handleListsGet)
	s.mcpServer.Tool("clickup_lists_create").
		Description("Create a list in a folder, or a folderless list in a space").
		Handler(s.handleListsCreate)
	s.mcpServer.Tool("clickup_lists_update").
		Description("Update a list").
		Handler(s.handleListsUpdate)
	s.mcpServer.Tool("clickup_lists_delete").
		Description("Delete a list").
		Handler(s.handleListsDelete)
	s.mcpServer.Tool("clickup_lists_add_task").
		Description("Add an existing task to an additional list").
		Handler(s.handleListsAddTask)
	s.mcpServer.Tool("clickup_lists_remove_task").
		Description("Remove a task from an additional list").
		Handler(s.handleListsRemoveTask)

	// Views
	s.mcpServer.Tool("clickup_views_list").
		Description("List the views of a space, optionally narrowed to a list or folder").
		Handler(s.handleViewsList)
	s.mcpServer.Tool("clickup_views_get").
		Description("Get a view by ID").
		Handler(s.handleViewsGet)
	s.mcpServer.Tool("clickup_views_get_tasks").
		Description("Get one page of the tasks shown in a view").
		Handler(s.handleViewsGetTasks)
	s.mcpServer.Tool("clickup_views_create").
		Description("Create a view").
		Handler(s.handleViewsCreate)
	s.mcpServer.Tool("clickup_views_update").
		Description("Update a view").
		Handler(s.handleViewsUpdate)
	s.mcpServer.Tool("clickup_views_delete").
		Description("Delete a view").
		Handler(s.handleViewsDelete)

	// Docs
	s.mcpServer.Tool("clickup_docs_list").
		Description("List the docs of a workspace").
		Handler(s.handleDocsList)
	s.mcpServer.Tool("clickup_docs_search").
		Description("Search the docs of a workspace").
		Handler(s.handleDocsSearch)
}

func (s *Server) handleListWorkspaces(ctx context.Context, _ struct{}) (string, error) {
	raw, err := s.client.GetAuthorizedTeams(ctx)
	return s.reply("clickup_teams_list_workspaces", raw, err)
}

func (s *Server) handleGetWorkspace(ctx context.Context, args TeamArgs) (string, error) {
	if err := required("team_id", args.TeamID); err != nil {
		return "", err
	}
	raw, err := s.client.GetTeam(ctx, args.TeamID)
	return s.reply("clickup_teams_get_workspace", raw, err)
}

func (s *Server) handleListMembers(ctx context.Context, args ListIDArgs) (string, error) {
	if err := required("list_id", args.ListID); err != nil {
		return "", err
	}
	raw, err := s.client.GetListMembers(ctx, args.ListID)
	return s.reply("clickup_teams_list_members", raw, err)
}

func (s *Server) handleGetMember(ctx context.Context, args TaskIDArgs) (string, error) {
	if err := required("task_id", args.TaskID); err != nil {
		return "", err
	}
	raw, err := s.client.GetTaskMembers(ctx, args.TaskID)
	return s.reply("clickup_teams_get_member", raw, err)
}

func (s *Server) handleSpacesList(ctx context.Context, args SpaceListArgs) (string, error) {
	if err := required("team_id", args.TeamID); err != nil {
		return "", err
	}
	raw, err := s.client.GetSpaces(ctx, args.TeamID, flag(args.Archived))
	return s.reply("clickup_spaces_list", raw, err)
}

func (s *Server) handleSpacesGet(ctx context.Context, args SpaceIDArgs) (string, error) {
	if err := required("space_id", args.SpaceID); err != nil {
		return "", err
	}
	raw, err := s.client.GetSpace(ctx, args.SpaceID)
	return s.reply("clickup_spaces_get", raw, err)
}

func (s *Server) handleSpacesCreate(ctx context.Context, args SpaceCreateArgs) (string, error) {
	if err := required("team_id", args.TeamID, "name", args.Name); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "team_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.CreateSpace(ctx, args.TeamID, body)
	return s.reply("clickup_spaces_create", raw, err)
}

func (s *Server) handleSpacesUpdate(ctx context.Context, args SpaceUpdateArgs) (string, error) {
	if err := required("space_id", args.SpaceID); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "space_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.UpdateSpace(ctx, args.SpaceID, body)
	return s.reply("clickup_spaces_update", raw, err)
}

func (s *Server) handleSpacesDelete(ctx context.Context, args SpaceIDArgs) (string, error) {
	if err := required("space_id", args.SpaceID); err != nil {
		return "", err
	}
	_, err := s.client.DeleteSpace(ctx, args.SpaceID)
	return s.done("clickup_spaces_delete", "Space deleted successfully", err)
}

func (s *Server) handleFoldersList(ctx context.Context, args FolderListArgs) (string, error) {
	if err := required("space_id", args.SpaceID); err != nil {
		return "", err
	}
	raw, err := s.client.GetFolders(ctx, args.SpaceID, flag(args.Archived))
	return s.reply("clickup_folders_list", raw, err)
}

func (s *Server) handleFoldersGet(ctx context.Context, args FolderIDArgs) (string, error) {
	if err := required("folder_id", args.FolderID); err != nil {
		return "", err
	}
	raw, err := s.client.GetFolder(ctx, args.FolderID)
	return s.reply("clickup_folders_get", raw, err)
}

func (s *Server) handleFoldersCreate(ctx context.Context, args FolderCreateArgs) (string, error) {
	if err := required("space_id", args.SpaceID, "name", args.Name); err != nil {
		return "", err
	}
	raw, err := s.client.CreateFolder(ctx, args.SpaceID, map[string]string{"name": args.Name})
	return s.reply("clickup_folders_create", raw, err)
}

func (s *Server) handleFoldersUpdate(ctx context.Context, args FolderUpdateArgs) (string, error) {
	if err := required("folder_id", args.FolderID, "name", args.Name); err != nil {
		return "", err
	}
	raw, err := s.client.UpdateFolder(ctx, args.FolderID, map[string]string{"name": args.Name})
	return s.reply("clickup_folders_update", raw, err)
}

func (s *Server) handleFoldersDelete(ctx context.Context, args FolderIDArgs) (string, error) {
	if err := required("folder_id", args.FolderID); err != nil {
		return "", err
	}
	_, err := s.client.DeleteFolder(ctx, args.FolderID)
	return s.done("clickup_folders_delete", "Folder deleted successfully", err)
}

func (s *Server) handleListsList(ctx context.Context, args ListsListArgs) (string, error) {
	const tool = "clickup_lists_list"
	switch {
	case args.FolderID != "":
		raw, err := s.client.GetFolderLists(ctx, args.FolderID, flag(args.Archived))
		return s.reply(tool, raw, err)
	case args.SpaceID != "":
		raw, err := s.client.GetSpaceLists(ctx, args.SpaceID, flag(args.Archived))
		return s.reply(tool, raw, err)
	default:
		return "", mcpErr("Either folder_id or space_id must be provided")
	}
}

func (s *Server) handleListsGet(ctx context.Context, args ListIDArgs) (string, error) {
	if err := required("list_id", args.ListID); err != nil {
		return "", err
	}
	raw, err := s.client.GetList(ctx, args.ListID)
	return s.reply("clickup_lists_get", raw, err)
}

func (s *Server) handleListsCreate(ctx context.Context, args ListCreateArgs) (string, error) {
	const tool = "clickup_lists_create"
	if err := required("name", args.Name); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "folder_id", "space_id")
	if err != nil {
		return "", err
	}
	switch {
	case args.FolderID != "":
		raw, err := s.client.CreateList(ctx, args.FolderID, body)
		return s.reply(tool, raw, err)
	case args.SpaceID != "":
		raw, err := s.client.CreateFolderlessList(ctx, args.SpaceID, body)
		return s.reply(tool, raw, err)
	default:
		return "", mcpErr("Either folder_id or space_id must be provided")
	}
}

func (s *Server) handleListsUpdate(ctx context.Context, args ListUpdateArgs) (string, error) {
	if err := required("list_id", args.ListID); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "list_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.UpdateList(ctx, args.ListID, body)
	return s.reply("clickup_lists_update", raw, err)
}

func (s *Server) handleListsDelete(ctx context.Context, args ListIDArgs) (string, error) {
	if err := required("list_id", args.ListID); err != nil {
		return "", err
	}
	_, err := s.client.DeleteList(ctx, args.ListID)
	return s.done("clickup_lists_delete", "List deleted successfully", err)
}

func (s *Server) handleListsAddTask(ctx context.Context, args ListTaskArgs) (string, error) {
	if err := required("list_id", args.ListID, "task_id", args.TaskID); err != nil {
		return "", err
	}
	raw, err := s.client.AddTaskToList(ctx, args.ListID, args.TaskID)
	return s.reply("clickup_lists_add_task", raw, err)
}

func (s *Server) handleListsRemoveTask(ctx context.Context, args ListTaskArgs) (string, error) {
	if err := required("list_id", args.ListID, "task_id", args.TaskID); err != nil {
		return "", err
	}
	_, err := s.client.RemoveTaskFromList(ctx, args.ListID, args.TaskID)
	return s.done("clickup_lists_remove_task", "Task removed from list successfully", err)
}

func (s *Server) handleViewsList(ctx context.Context, args ViewsListArgs) (string, error) {
	if err := required("team_id", args.TeamID, "space_id", args.SpaceID); err != nil {
		return "", err
	}
	raw, err := s.client.GetViews(ctx, args.TeamID, args.SpaceID, args.ListID, args.FolderID)
	return s.reply("clickup_views_list", raw, err)
}

func (s *Server) handleViewsGet(ctx context.Context, args ViewIDArgs) (string, error) {
	if err := required("view_id", args.ViewID); err != nil {
		return "", err
	}
	raw, err := s.client.GetView(ctx, args.ViewID)
	return s.reply("clickup_views_get", raw, err)
}

func (s *Server) handleViewsGetTasks(ctx context.Context, args ViewTasksArgs) (string, error) {
	if err := required("view_id", args.ViewID); err != nil {
		return "", err
	}
	raw, err := s.client.GetViewTasks(ctx, args.ViewID, intOf(args.Page))
	return s.reply("clickup_views_get_tasks", raw, err)
}

func (s *Server) handleViewsCreate(ctx context.Context, args ViewCreateArgs) (string, error) {
	if err := required("team_id", args.TeamID, "space_id", args.SpaceID, "name", args.Name, "type", args.Type); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "team_id", "space_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.CreateView(ctx, args.TeamID, args.SpaceID, body)
	return s.reply("clickup_views_create", raw, err)
}

func (s *Server) handleViewsUpdate(ctx context.Context, args ViewUpdateArgs) (string, error) {
	if err := required("view_id", args.ViewID); err != nil {
		return "", err
	}
	body, err := bodyOf(args, "view_id")
	if err != nil {
		return "", err
	}
	raw, err := s.client.UpdateView(ctx, args.ViewID, body)
	return s.reply("clickup_views_update", raw, err)
}

func (s *Server) handleViewsDelete(ctx context.Context, args ViewIDArgs) (string, error) {
	if err := required("view_id", args.ViewID); err != nil {
		return "", err
	}
	_, err := s.client.DeleteView(ctx, args.ViewID)
	return s.done("clickup_views_delete", "View deleted successfully", err)
}

func (s *Server) handleDocsList(ctx context.Context, args DocsListArgs) (string, error) {
	if err := required("workspace_id", args.WorkspaceID); err != nil {
		return "", err
	}
	raw, err := s.client.GetDocs(ctx, args.WorkspaceID)
	return s.reply("clickup_docs_list", raw, err)
}

func (s *Server) handleDocsSearch(ctx context.Context, args DocsSearchArgs) (string, error) {
	if err := required("workspace_id", args.WorkspaceID, "search", args.Search); err != nil {
		return "", err
	}
	raw, err := s.client.SearchDocs(ctx, args.WorkspaceID, args.Search)
	return s.reply("clickup_docs_search", raw, err)
}
