package store

import (
	"context"

	"github.com/taskboard/taskboard/internal/model"
	"github.com/taskboard/taskboard/internal/remote"
)

// TaskService is the remote adapter contract consumed by TaskStore.
// *remote.TaskService is the production implementation.
type TaskService interface {
	List(
		ctx context.Context,
		filters model.TaskFilters,
		page int,
		pageSize int,
	) (remote.ListResult, error)
	Get(ctx context.Context, id int) (*model.Task, error)
	Create(ctx context.Context, draft model.TaskDraft) (*model.Task, error)
	Update(ctx context.Context, id int, patch model.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id int) error
	ChangeStatus(
		ctx context.Context,
		id int,
		status model.Status,
		reason string,
	) (*model.Task, error)
	Assign(ctx context.Context, id int, userIDs []int) (*model.Task, error)
}

// NotificationService is the remote adapter contract consumed by
// NotificationStore. *remote.NotificationService is the production
// implementation.
type NotificationService interface {
	List(ctx context.Context) ([]model.Notification, error)
	MarkRead(ctx context.Context, id int) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id int) error
	ClearAll(ctx context.Context) error
}
