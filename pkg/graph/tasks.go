package graph

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-hclog"
)

// TaskService translates to-do requests into task calls against the Graph
// API. Every method is total: it always returns a Response and a status
// code, never an error.
type TaskService struct {
	client *Client
	log    hclog.Logger
}

// NewTaskService creates a service bound to one request's bearer context.
func NewTaskService(sc Context, log hclog.Logger) *TaskService {
	return &TaskService{
		client: NewClient(sc, log),
		log:    log.Named("tasks"),
	}
}

// Lists fetches all of the user's to-do lists.
func (s *TaskService) Lists(ctx context.Context) (*Response, int) {
	res := s.client.Get(ctx, "/me/todo/lists", nil)
	if !res.OK() {
		return errorResponse(res.Message, []any{}), res.Status
	}
	return successResponse("Tasks retrieved successfully", payloadList(res.Payload)), res.Status
}

// CreateList creates a named to-do list.
func (s *TaskService) CreateList(ctx context.Context, req CreateTaskListRequest) (*Response, int) {
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting task list create request", "error", err)
		return errorResponse(MsgMissingParams, map[string]any{}), http.StatusBadRequest
	}

	res := s.client.Post(ctx, "/me/todo/lists", map[string]string{
		"displayName": req.DisplayName,
	})
	if !res.OK() {
		return errorResponse(res.Message, map[string]any{}), res.Status
	}
	return successResponse("Task created successfully", res.Payload), res.Status
}

// CreateTask adds a task to an existing list.
func (s *TaskService) CreateTask(ctx context.Context, req CreateTaskRequest) (*Response, int) {
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting task create request", "error", err)
		return errorResponse(MsgMissingParams, map[string]any{}), http.StatusBadRequest
	}

	path := "/me/todo/lists/" + url.PathEscape(req.TodoListID) + "/tasks"
	res := s.client.Post(ctx, path, map[string]string{"title": req.Title})
	if !res.OK() {
		return errorResponse(res.Message, map[string]any{}), res.Status
	}
	return successResponse("Sub task created successfully", res.Payload), res.Status
}

// GetTask fetches one task from a list.
func (s *TaskService) GetTask(ctx context.Context, req GetTaskRequest) (*Response, int) {
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting task get request", "error", err)
		return errorResponse(MsgMissingParams, map[string]any{}), http.StatusBadRequest
	}

	path := "/me/todo/lists/" + url.PathEscape(req.TodoListID) +
		"/tasks/" + url.PathEscape(req.TaskID)
	res := s.client.Get(ctx, path, nil)
	if !res.OK() {
		return errorResponse(res.Message, map[string]any{}), res.Status
	}
	return successResponse("Task retrieved successfully", res.Payload), res.Status
}

// DeleteTask removes one task from a list behind the same confirmation gate
// as meeting and email deletion.
func (s *TaskService) DeleteTask(ctx context.Context, req DeleteTaskRequest) (*Response, int) {
	if req.Confirm != "yes" {
		return errorResponse("Task deletion was not confirmed.",
			map[string]any{}), http.StatusBadRequest
	}
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting task delete request", "error", err)
		return errorResponse(MsgMissingParams, map[string]any{}), http.StatusBadRequest
	}

	path := "/me/todo/lists/" + url.PathEscape(req.TodoListID) +
		"/tasks/" + url.PathEscape(req.TaskID)
	res := s.client.Delete(ctx, path)
	if !res.OK() {
		return errorResponse(res.Message, map[string]any{}), res.Status
	}
	return successResponse("Task deleted successfully", res.Payload), res.Status
}
