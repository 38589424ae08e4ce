package store

import (
	"context"
	"sync"

	"github.com/taskboard/taskboard/internal/model"
	"github.com/taskboard/taskboard/internal/remote"
)

// FilterOption mutates one dimension of the task filter state.
// Passing nil to a With* helper clears that dimension; dimensions
// without an option are left untouched.
type FilterOption func(*model.TaskFilters)

// WithStatus sets or clears the status filter.
func WithStatus(s *model.Status) FilterOption {
	return func(f *model.TaskFilters) { f.Status = s }
}

// WithPriority sets or clears the priority filter.
func WithPriority(p *model.Priority) FilterOption {
	return func(f *model.TaskFilters) { f.Priority = p }
}

// WithAssignedToMe sets or clears the assigned-to-me filter.
func WithAssignedToMe(b *bool) FilterOption {
	return func(f *model.TaskFilters) { f.AssignedToMe = b }
}

// WithSearch sets or clears the free-text search filter.
func WithSearch(q *string) FilterOption {
	return func(f *model.TaskFilters) { f.Search = q }
}

// TaskStore holds the local view of the filtered, paginated task
// collection and keeps it consistent with the remote service after
// every mutation.
//
// All mutation flows through the exported operations; accessors hand
// out copies. The internal mutex covers only the synchronous local
// merge, never the remote call, so two overlapping mutations of the
// same task resolve last-writer-wins — correct only as long as the
// server orders or rejects conflicting writes.
type TaskStore struct {
	mu       sync.Mutex
	svc      TaskService
	tasks    []model.Task
	selected *model.Task
	filters  model.TaskFilters
	page     Pagination
	loading  bool
}

// NewTaskStore creates a task store backed by svc, starting on page 1
// with the given page size.
func NewTaskStore(svc TaskService, pageSize int) *TaskStore {
	return &TaskStore{
		svc: svc,
		page: Pagination{
			Page:     1,
			PageSize: pageSize,
		},
	}
}

// Tasks returns a copy of the current task list.
func (s *TaskStore) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Selected returns a copy of the selected task, or nil.
func (s *TaskStore) Selected() *model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	sel := *s.selected
	return &sel
}

// Filters returns the current filter state.
func (s *TaskStore) Filters() model.TaskFilters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Pagination returns the current pagination state.
func (s *TaskStore) Pagination() Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Loading reports whether a fetch is in flight.
func (s *TaskStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// FetchPage requests one page of tasks using the current filters and
// replaces the local list with the result. Page 0 means the current
// page. A paginated envelope also refreshes the pagination metadata;
// a bare-list response leaves it untouched (compatibility branch for
// services that do not paginate). On failure the previous list and
// metadata survive unchanged and the error is returned as-is.
func (s *TaskStore) FetchPage(ctx context.Context, page int) error {
	s.mu.Lock()
	if page <= 0 {
		page = s.page.Page
	}
	filters := s.filters
	pageSize := s.page.PageSize
	s.loading = true
	s.mu.Unlock()

	result, err := s.svc.List(ctx, filters, page, pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return err
	}

	switch r := result.(type) {
	case *remote.Envelope:
		s.tasks = r.Results
		s.page.Page = page
		s.page.TotalCount = r.Count
		s.page.TotalPages = totalPages(r.Count, s.page.PageSize)
		s.page.HasNext = r.Next != nil
		s.page.HasPrevious = r.Previous != nil
	case remote.BareList:
		s.tasks = r
	}
	return nil
}

// FetchOne fetches a single task and makes it the selected task.
func (s *TaskStore) FetchOne(ctx context.Context, id int) (*model.Task, error) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	task, err := s.svc.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return nil, err
	}
	sel := *task
	s.selected = &sel
	return task, nil
}

// Create submits a draft and, on success, prepends the created task
// to the front of the list (newest first). The loading flag is not
// touched; callers indicate progress themselves.
func (s *TaskStore) Create(
	ctx context.Context,
	draft model.TaskDraft,
) (*model.Task, error) {
	task, err := s.svc.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]model.Task{*task}, s.tasks...)
	return task, nil
}

// Update applies a partial change and, on success, swaps the updated
// task into the list and the selection.
func (s *TaskStore) Update(
	ctx context.Context,
	id int,
	patch model.TaskPatch,
) (*model.Task, error) {
	task, err := s.svc.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.replace(task)
	return task, nil
}

// ChangeStatus transitions a task's workflow status, with an optional
// reason for transitions the server requires one for, and reconciles
// the list and selection like Update.
func (s *TaskStore) ChangeStatus(
	ctx context.Context,
	id int,
	status model.Status,
	reason string,
) (*model.Task, error) {
	task, err := s.svc.ChangeStatus(ctx, id, status, reason)
	if err != nil {
		return nil, err
	}
	s.replace(task)
	return task, nil
}

// Assign replaces a task's full assignee set and reconciles the list
// and selection like Update.
func (s *TaskStore) Assign(
	ctx context.Context,
	id int,
	userIDs []int,
) (*model.Task, error) {
	task, err := s.svc.Assign(ctx, id, userIDs)
	if err != nil {
		return nil, err
	}
	s.replace(task)
	return task, nil
}

// Remove deletes a task and, on success, drops it from the list and
// clears the selection if it pointed at the removed id.
func (s *TaskStore) Remove(ctx context.Context, id int) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	return nil
}

// SetFilters merges the given options into the filter state and
// resets the page cursor to 1: page numbers from a previous filter
// are never reused.
func (s *TaskStore) SetFilters(opts ...FilterOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, opt := range opts {
		opt(&s.filters)
	}
	s.page.Page = 1
}

// Select sets the selected task without any remote call. Pass nil to
// clear the selection. The store keeps its own copy; later mutation
// of the caller's task does not reach the selection.
func (s *TaskStore) Select(task *model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if task == nil {
		s.selected = nil
		return
	}
	sel := *task
	s.selected = &sel
}

// NextPage fetches the following page if the last fetch reported one;
// otherwise it is a silent no-op.
func (s *TaskStore) NextPage(ctx context.Context) error {
	s.mu.Lock()
	if !s.page.HasNext {
		s.mu.Unlock()
		return nil
	}
	target := s.page.Page + 1
	s.mu.Unlock()
	return s.FetchPage(ctx, target)
}

// PreviousPage fetches the preceding page if the last fetch reported
// one; otherwise it is a silent no-op.
func (s *TaskStore) PreviousPage(ctx context.Context) error {
	s.mu.Lock()
	if !s.page.HasPrevious {
		s.mu.Unlock()
		return nil
	}
	target := s.page.Page - 1
	s.mu.Unlock()
	return s.FetchPage(ctx, target)
}

// GoToPage fetches page n if it lies within [1, TotalPages];
// otherwise it is a silent no-op.
func (s *TaskStore) GoToPage(ctx context.Context, n int) error {
	s.mu.Lock()
	if n < 1 || n > s.page.TotalPages {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	return s.FetchPage(ctx, n)
}

// replace swaps the given task into the list by id match and updates
// the selection if it points at the same task.
func (s *TaskStore) replace(task *model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == task.ID {
			s.tasks[i] = *task
			break
		}
	}
	if s.selected != nil && s.selected.ID == task.ID {
		sel := *task
		s.selected = &sel
	}
}
