package api

import (
	"fmt"
	"net/http"

	"github.com/Amarverma111/graph/internal/server"
	"github.com/Amarverma111/graph/pkg/graph"
)

// GetEmailHandler lists messages received inside a date window.
func GetEmailHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.GetEmailRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewEmailService(sc, srv.Logger).List(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}

// SendEmailHandler delivers a plain message.
func SendEmailHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.SendEmailRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewEmailService(sc, srv.Logger).Send(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}

// ReplyEmailHandler posts a reply to an existing message.
func ReplyEmailHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.ReplyEmailRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewEmailService(sc, srv.Logger).Reply(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}

// DeleteEmailHandler removes a message behind the confirmation gate.
func DeleteEmailHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.DeleteEmailRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewEmailService(sc, srv.Logger).Delete(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}

// ForwardEmailHandler forwards an existing message to another recipient.
func ForwardEmailHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.ForwardEmailRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewEmailService(sc, srv.Logger).Forward(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}

// AttachmentEmailHandler delivers a message with file attachments.
func AttachmentEmailHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		sc, ok := bearerContext(w, r, srv)
		if !ok {
			return
		}
		var req graph.SendAttachmentRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, srv.Logger, fmt.Sprintf("Invalid data: %v", err),
				http.StatusBadRequest)
			return
		}
		resp, status := graph.NewEmailService(sc, srv.Logger).SendAttachment(r.Context(), req)
		writeResponse(w, srv.Logger, resp, status)
	})
}
