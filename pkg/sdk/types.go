package sdk

import (
	"encoding/json"
	"strconv"
	"time"
)

// User is a ClickUp member as embedded in tasks and workspaces.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Color    string `json:"color,omitempty"`
	Initials string `json:"initials,omitempty"`
}

// Member wraps a workspace member.
type Member struct {
	User User `json:"user"`
}

// Workspace is a ClickUp team.
type Workspace struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Color   string   `json:"color,omitempty"`
	Members []Member `json:"members,omitempty"`
}

// Status is a task status.
type Status struct {
	Status string `json:"status"`
	Color  string `json:"color,omitempty"`
	Type   string `json:"type,omitempty"`
}

// Priority is a task priority; ID "1" is urgent and "4" low.
type Priority struct {
	ID       string `json:"id"`
	Priority string `json:"priority"`
	Color    string `json:"color,omitempty"`
}

// Tag is a task tag.
type Tag struct {
	Name string `json:"name"`
}

// Ref points at a list, folder or space.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Task is the subset of a ClickUp task most callers need. The full
// document is kept in Raw.
type Task struct {
	ID           string    `json:"id"`
	CustomID     string    `json:"custom_id,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Status       Status    `json:"status"`
	Priority     *Priority `json:"priority,omitempty"`
	Assignees    []User    `json:"assignees,omitempty"`
	Tags         []Tag     `json:"tags,omitempty"`
	Parent       string    `json:"parent,omitempty"`
	DueDate      string    `json:"due_date,omitempty"`
	DateCreated  string    `json:"date_created,omitempty"`
	DateUpdated  string    `json:"date_updated,omitempty"`
	TimeEstimate *int64    `json:"time_estimate,omitempty"`
	List         Ref       `json:"list"`
	Folder       Ref       `json:"folder"`
	Space        Ref       `json:"space"`
	URL          string    `json:"url,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the whole document.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Task(p)
	t.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Due returns the due date, or the zero time when none is set.
func (t *Task) Due() time.Time {
	return msTime(t.DueDate)
}

// TaskPage is one page of clickup_tasks_list.
type TaskPage struct {
	Tasks    []Task `json:"tasks"`
	LastPage bool   `json:"last_page"`
}

// TaskCollection is the result of the paginating task tools.
type TaskCollection struct {
	Tasks []Task `json:"tasks"`
	Pages int    `json:"pages"`
}

// Comment is the acknowledgement of a created comment.
type Comment struct {
	ID     json.Number `json:"id"`
	HistID string      `json:"hist_id,omitempty"`
	Date   json.Number `json:"date,omitempty"`
}

// JournalStats aggregates the server's request journal.
type JournalStats struct {
	Total       int `json:"total"`
	Failed      int `json:"failed"`
	RateLimited int `json:"rate_limited"`
	Retried     int `json:"retried"`
}

// JournalEntry is one ClickUp API call made by the server.
type JournalEntry struct {
	ID         string    `json:"id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	Attempts   int       `json:"attempts"`
	Kind       string    `json:"kind,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

// JournalReport is the result of clickup_journal_recent.
type JournalReport struct {
	Stats   JournalStats   `json:"stats"`
	Entries []JournalEntry `json:"entries"`
}

// SchemaInfo describes the MCP schema version and deprecation info.
type SchemaInfo struct {
	SchemaVersion string            `json:"schema_version"`
	ServerVersion string            `json:"server_version"`
	Deprecated    []DeprecatedField `json:"deprecated"`
	ToolCount     int               `json:"tool_count"`
	Changelog     string            `json:"changelog"`
}

// DeprecatedField records a field or tool that has been deprecated.
type DeprecatedField struct {
	Tool      string `json:"tool"`
	Field     string `json:"field"`
	Since     string `json:"since"`
	RemovedIn string `json:"removed_in"`
	Migration string `json:"migration"`
}

// msTime parses ClickUp's string-encoded Unix milliseconds.
func msTime(ms string) time.Time {
	v, err := strconv.ParseInt(ms, 10, 64)
	if err != nil || v == 0 {
		return time.Time{}
	}
	return time.UnixMilli(v).UTC()
}
