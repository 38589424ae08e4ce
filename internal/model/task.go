package model

import "time"

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// Priority is the normalized urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Task is a single work item tracked by the server. The server owns
// every field; clients only ever hold copies received from it.
type Task struct {
	// ID is the server-assigned identifier. It never changes.
	ID int `json:"id"`

	// Title is the human-readable summary of the task.
	Title string `json:"title"`

	// Description is the full body text.
	Description string `json:"description"`

	// Status is the workflow state (use Status* constants).
	Status Status `json:"status"`

	// Priority is the urgency level (use Priority* constants).
	Priority Priority `json:"priority"`

	// Assignees holds the user ids currently assigned to the task.
	Assignees []int `json:"assignees"`

	// CreatorID is the user id of the task's author.
	CreatorID int `json:"creator_id"`

	// DueDate is the optional deadline.
	DueDate *time.Time `json:"due_date,omitempty"`

	// CreatedAt is when the task was created on the server.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the task was last modified on the server.
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskDraft carries the fields a client supplies when creating a task.
// The server assigns the id and timestamps.
type TaskDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	Assignees   []int      `json:"assignees,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// TaskPatch carries a partial update. Nil fields are left untouched
// by the server.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Assignees   []int      `json:"assignees,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}
