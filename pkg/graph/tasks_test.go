package graph

import (
	"context"
	"net/http"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskService(t *testing.T, endpoint string) *TaskService {
	t.Helper()
	return NewTaskService(Context{
		AccessToken: "test-token",
		Config:      Config{Endpoint: endpoint},
	}, hclog.NewNullLogger())
}

func TestTaskLists(t *testing.T) {
	upstream, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/me/todo/lists", r.URL.Path)
		w.Write([]byte(`{"value":[
			{"id":"list-1","displayName":"Tasks"},
			{"id":"list-2","displayName":"Groceries"}
		]}`))
	})

	resp, status := taskService(t, upstream.URL).Lists(context.Background())
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, StatusSuccess, resp.Status)

	lists, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, lists, 2)
}

func TestTaskCreateList(t *testing.T) {
	upstream, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/me/todo/lists", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "Errands", body["displayName"])
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"list-3","displayName":"Errands"}`))
	})

	resp, status := taskService(t, upstream.URL).CreateList(context.Background(), CreateTaskListRequest{
		DisplayName: "Errands",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Task created successfully", resp.Message)
}

func TestTaskCreateListValidation(t *testing.T) {
	upstream, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach upstream")
	})

	resp, status := taskService(t, upstream.URL).CreateList(context.Background(), CreateTaskListRequest{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, MsgMissingParams, resp.Message)
	assert.Equal(t, 0, *hits)
}

func TestTaskCreate(t *testing.T) {
	upstream, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/me/todo/lists/list-1/tasks", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "Buy milk", body["title"])
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"task-1","title":"Buy milk"}`))
	})

	resp, status := taskService(t, upstream.URL).CreateTask(context.Background(), CreateTaskRequest{
		TodoListID: "list-1",
		Title:      "Buy milk",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, StatusSuccess, resp.Status)
}

func TestTaskCreateValidation(t *testing.T) {
	upstream, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach upstream")
	})

	tests := []struct {
		name string
		req  CreateTaskRequest
	}{
		{"missing list", CreateTaskRequest{Title: "Buy milk"}},
		{"missing title", CreateTaskRequest{TodoListID: "list-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, status := taskService(t, upstream.URL).CreateTask(context.Background(), tt.req)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, MsgMissingParams, resp.Message)
		})
	}
	assert.Equal(t, 0, *hits)
}

func TestTaskGet(t *testing.T) {
	upstream, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/me/todo/lists/list-1/tasks/task-1", r.URL.Path)
		w.Write([]byte(`{"id":"task-1","title":"Buy milk","status":"notStarted"}`))
	})

	resp, status := taskService(t, upstream.URL).GetTask(context.Background(), GetTaskRequest{
		TodoListID: "list-1",
		TaskID:     "task-1",
	})
	require.Equal(t, http.StatusOK, status)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "task-1", data["id"])
}

func TestTaskDeleteConfirmGate(t *testing.T) {
	upstream, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach upstream")
	})

	for _, confirm := range []string{"", "Yes", "no"} {
		resp, status := taskService(t, upstream.URL).DeleteTask(context.Background(), DeleteTaskRequest{
			TodoListID: "list-1",
			TaskID:     "task-1",
			Confirm:    confirm,
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Task deletion was not confirmed.", resp.Message)
	}
	assert.Equal(t, 0, *hits)
}

func TestTaskDeleteConfirmed(t *testing.T) {
	upstream, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/me/todo/lists/list-1/tasks/task-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	resp, status := taskService(t, upstream.URL).DeleteTask(context.Background(), DeleteTaskRequest{
		TodoListID: "list-1",
		TaskID:     "task-1",
		Confirm:    "yes",
	})
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, "Task deleted successfully", resp.Message)
}
