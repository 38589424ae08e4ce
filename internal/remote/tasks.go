package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/taskboard/taskboard/internal/model"
)

// TaskService exposes the tracker's task endpoints.
type TaskService struct {
	client *Client
}

// NewTaskService creates a TaskService on top of an API client.
func NewTaskService(c *Client) *TaskService {
	return &TaskService{client: c}
}

// List fetches one page of tasks matching the given filters. The
// result is either an *Envelope or a BareList depending on whether
// the server paginates.
func (s *TaskService) List(
	ctx context.Context,
	filters model.TaskFilters,
	page int,
	pageSize int,
) (ListResult, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	if filters.Status != nil {
		query.Set("status", string(*filters.Status))
	}
	if filters.Priority != nil {
		query.Set("priority", string(*filters.Priority))
	}
	if filters.AssignedToMe != nil {
		query.Set("assigned_to_me", strconv.FormatBool(*filters.AssignedToMe))
	}
	if filters.Search != nil {
		query.Set("search", *filters.Search)
	}

	var raw json.RawMessage
	path := "/api/tasks/?" + query.Encode()
	if err := s.client.Get(ctx, path, &raw); err != nil {
		return nil, err
	}
	return decodeListResult(raw)
}

// Get fetches a single task by id.
func (s *TaskService) Get(ctx context.Context, id int) (*model.Task, error) {
	var task model.Task
	if err := s.client.Get(ctx, taskPath(id), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Create submits a new task draft. The server assigns the id.
func (s *TaskService) Create(
	ctx context.Context,
	draft model.TaskDraft,
) (*model.Task, error) {
	var task model.Task
	if err := s.client.Post(ctx, "/api/tasks/", draft, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies a partial change to a task and returns the updated entity.
func (s *TaskService) Update(
	ctx context.Context,
	id int,
	patch model.TaskPatch,
) (*model.Task, error) {
	var task model.Task
	if err := s.client.Patch(ctx, taskPath(id), patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, taskPath(id))
}

// ChangeStatus transitions a task to a new workflow status. Some
// transitions require a human-readable reason; the server validates
// which ones.
func (s *TaskService) ChangeStatus(
	ctx context.Context,
	id int,
	status model.Status,
	reason string,
) (*model.Task, error) {
	body := struct {
		Status model.Status `json:"status"`
		Reason string       `json:"reason,omitempty"`
	}{Status: status, Reason: reason}

	var task model.Task
	if err := s.client.Post(ctx, taskPath(id)+"status/", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Assign replaces a task's assignee set with the given user ids.
func (s *TaskService) Assign(
	ctx context.Context,
	id int,
	userIDs []int,
) (*model.Task, error) {
	body := struct {
		Assignees []int `json:"assignees"`
	}{Assignees: userIDs}

	var task model.Task
	if err := s.client.Post(ctx, taskPath(id)+"assign/", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func taskPath(id int) string {
	return fmt.Sprintf("/api/tasks/%d/", id)
}
