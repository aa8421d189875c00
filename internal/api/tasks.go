package api

import (
	"fmt"
	"net/http"

	"github.com/Amarverma111/graph/internal/server"
	"github.com/Amarverma111/graph/pkg/graph"
)

// GetTasksHandler lists all of the user's to-do lists.
func GetTasksHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		resp, status := graph.NewTaskService(sc, srv.Logger).Lists(r.Context())
		writeResponse(w, srv.Logger, resp, status)
	})
}

// CreateTaskListHandler creates a named to-do list.
func CreateTaskListHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.CreateTaskListRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewTaskService(sc, srv.Logger).CreateList(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}

// CreateSubTaskHandler adds a task to an existing list.
func CreateSubTaskHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.CreateTaskRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewTaskService(sc, srv.Logger).CreateTask(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}

// GetSubTaskHandler fetches one task from a list.
func GetSubTaskHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.GetTaskRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewTaskService(sc, srv.Logger).GetTask(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}

// DeleteTaskHandler removes one task behind the confirmation gate.
func DeleteTaskHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.DeleteTaskRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewTaskService(sc, srv.Logger).DeleteTask(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}
