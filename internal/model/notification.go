package model

import "time"

// Notification represents an alert surfaced to the user about activity
// on a tracked task.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID int `json:"id"`

	// TaskID links this notification to the originating task, when any.
	TaskID int `json:"task_id,omitempty"`

	// Kind categorizes the event (e.g. "assigned", "status_changed",
	// "comment"). The server owns the vocabulary.
	Kind string `json:"kind,omitempty"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// IsRead indicates whether the user has seen this notification.
	IsRead bool `json:"is_read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
