package api

import (
	"net/http"

	"github.com/Amarverma111/graph/internal/server"
)

// RegisterRoutes wires every gateway route onto mux. Paths match the
// original public API surface.
func RegisterRoutes(mux *http.ServeMux, srv server.Server) {
	mux.Handle("/api/health", HealthHandler(srv))
	mux.Handle("/api/login", LoginHandler(srv))
	mux.Handle("/api/callback", CallbackHandler(srv))

	mux.Handle("/api/get_meetings", GetMeetingsHandler(srv))
	mux.Handle("/api/create_meeting", CreateMeetingHandler(srv))
	mux.Handle("/api/update_meeting", UpdateMeetingHandler(srv))
	mux.Handle("/api/reschedule_meeting", RescheduleMeetingHandler(srv))
	mux.Handle("/api/add_participants", AddParticipantsHandler(srv))
	mux.Handle("/api/delete_meeting", DeleteMeetingHandler(srv))

	mux.Handle("/api/get_email", GetEmailHandler(srv))
	mux.Handle("/api/sent-email", SendEmailHandler(srv))
	mux.Handle("/api/reply_email", ReplyEmailHandler(srv))
	mux.Handle("/api/delete_email", DeleteEmailHandler(srv))
	mux.Handle("/api/forwarding_email", ForwardEmailHandler(srv))
	mux.Handle("/api/attachment_email", AttachmentEmailHandler(srv))

	mux.Handle("/api/get_all_task", GetTasksHandler(srv))
	mux.Handle("/api/create_main_task", CreateTaskListHandler(srv))
	mux.Handle("/api/create_sub_task", CreateSubTaskHandler(srv))
	mux.Handle("/api/get_sub_task", GetSubTaskHandler(srv))
	mux.Handle("/api/delete_task", DeleteTaskHandler(srv))
}
