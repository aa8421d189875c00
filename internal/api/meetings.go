package api

import (
	"fmt"
	"net/http"

	"github.com/Amarverma111/graph/internal/auth"
	"github.com/Amarverma111/graph/internal/server"
	"github.com/Amarverma111/graph/pkg/graph"
)

// bearerContext resolves the caller's token into a per-request service
// context. On failure it writes the 401 envelope and reports false.
func bearerContext(w http.ResponseWriter, r *http.Request, srv server.Server) (graph.Context, bool) {
	token, err := auth.TokenFromRequest(r, srv.Config)
	if err != nil {
		srv.Logger.Warn("rejecting request without usable token",
			"path", r.URL.Path, "error", err)
		writeError(w, srv.Logger, "Access token is missing or expired",
			http.StatusUnauthorized)
		return graph.Context{}, false
	}
	return graph.Context{AccessToken: token, Config: srv.Config.Graph}, true
}

// GetMeetingsHandler lists calendar events inside a date window.
func GetMeetingsHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.GetMeetingRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewMeetingService(sc, srv.Logger).List(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}

// CreateMeetingHandler creates a calendar event.
func CreateMeetingHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.CreateMeetingRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewMeetingService(sc, srv.Logger).Create(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}

// UpdateMeetingHandler replaces an event's subject, times and attendees.
func UpdateMeetingHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.UpdateMeetingRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewMeetingService(sc, srv.Logger).Update(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}

// RescheduleMeetingHandler moves an event to a new time window.
func RescheduleMeetingHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.RescheduleMeetingRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewMeetingService(sc, srv.Logger).Reschedule(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}

// AddParticipantsHandler appends attendees to an existing event.
func AddParticipantsHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.AddParticipantsRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewMeetingService(sc, srv.Logger).AddParticipants(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}

// DeleteMeetingHandler removes an event behind the confirmation gate.
func DeleteMeetingHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.DeleteMeetingRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewMeetingService(sc, srv.Logger).Delete(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}
