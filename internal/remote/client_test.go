package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/model"
)

func TestTaskListEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "20", r.URL.Query().Get("page_size"))
			assert.Equal(t, "todo", r.URL.Query().Get("status"))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"count":    45,
				"next":     "https://example.com/api/tasks/?page=3",
				"previous": "https://example.com/api/tasks/?page=1",
				"results":  []map[string]interface{}{{"id": 21, "status": "todo"}},
			})
		},
	))
	defer srv.Close()

	svc := NewTaskService(NewClient(srv.URL, "secret"))
	status := model.StatusTodo
	result, err := svc.List(
		context.Background(), model.TaskFilters{Status: &status}, 2, 20,
	)
	require.NoError(t, err)

	env, ok := result.(*Envelope)
	require.True(t, ok, "expected a paginated envelope")
	assert.Equal(t, 45, env.Count)
	assert.NotNil(t, env.Next)
	assert.NotNil(t, env.Previous)
	require.Len(t, env.Results, 1)
	assert.Equal(t, 21, env.Results[0].ID)
}

func TestTaskListBareList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
		},
	))
	defer srv.Close()

	svc := NewTaskService(NewClient(srv.URL, "secret"))
	result, err := svc.List(context.Background(), model.TaskFilters{}, 1, 20)
	require.NoError(t, err)

	list, ok := result.(BareList)
	require.True(t, ok, "expected a bare list")
	assert.Len(t, []model.Task(list), 2)
}

func TestUnauthorizedIsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		},
	))
	defer srv.Close()

	svc := NewTaskService(NewClient(srv.URL, "stale"))
	_, err := svc.Get(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestAPIErrorCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "task not found"}`))
		},
	))
	defer srv.Close()

	svc := NewTaskService(NewClient(srv.URL, "secret"))
	_, err := svc.Get(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "task not found")
}

func TestChangeStatusPostsReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/tasks/7/status/", r.URL.Path)

			var body struct {
				Status string `json:"status"`
				Reason string `json:"reason"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "done", body.Status)
			assert.Equal(t, "approved", body.Reason)

			json.NewEncoder(w).Encode(model.Task{ID: 7, Status: model.StatusDone})
		},
	))
	defer srv.Close()

	svc := NewTaskService(NewClient(srv.URL, "secret"))
	task, err := svc.ChangeStatus(
		context.Background(), 7, model.StatusDone, "approved",
	)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, task.Status)
}

func TestNotificationEndpoints(t *testing.T) {
	var gotPaths []string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
			if r.Method == http.MethodGet {
				w.Write([]byte(`[{"id": 1, "is_read": false}]`))
				return
			}
			w.WriteHeader(http.StatusNoContent)
		},
	))
	defer srv.Close()

	svc := NewNotificationService(NewClient(srv.URL, "secret"))
	ctx := context.Background()

	notifications, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].IsRead)

	require.NoError(t, svc.MarkRead(ctx, 1))
	require.NoError(t, svc.MarkAllRead(ctx))
	require.NoError(t, svc.Delete(ctx, 1))
	require.NoError(t, svc.ClearAll(ctx))

	assert.Equal(t, []string{
		"GET /api/notifications/",
		"POST /api/notifications/1/read/",
		"POST /api/notifications/read_all/",
		"DELETE /api/notifications/1/",
		"DELETE /api/notifications/",
	}, gotPaths)
}

func TestDecodeListResultRejectsGarbage(t *testing.T) {
	_, err := decodeListResult([]byte("  "))
	require.Error(t, err)

	_, err = decodeListResult([]byte(`"surprise"`))
	require.Error(t, err)
}
