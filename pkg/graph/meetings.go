package graph

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/mapstructure"
)

// MeetingService translates meeting requests into calendar calls against the
// Graph API. Every method is total: it always returns a Response and a
// status code, never an error.
type MeetingService struct {
	client *Client
	log    hclog.Logger
}

// NewMeetingService creates a service bound to one request's bearer context.
func NewMeetingService(sc Context, log hclog.Logger) *MeetingService {
	return &MeetingService{
		client: NewClient(sc, log),
		log:    log.Named("meetings"),
	}
}

// MeetingDetail is one calendar event flattened for the caller.
type MeetingDetail struct {
	ID           string   `json:"id"`
	Subject      string   `json:"subject"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Participants []string `json:"participants"`
}

// calendarEvent is the subset of the upstream event shape the gateway reads.
type calendarEvent struct {
	ID      string `mapstructure:"id"`
	Subject string `mapstructure:"subject"`
	Start   struct {
		DateTime string `mapstructure:"dateTime"`
	} `mapstructure:"start"`
	End struct {
		DateTime string `mapstructure:"dateTime"`
	} `mapstructure:"end"`
	Attendees []struct {
		EmailAddress struct {
			Address string `mapstructure:"address"`
		} `mapstructure:"emailAddress"`
	} `mapstructure:"attendees"`
}

// List fetches all calendar events inside the requested window.
func (s *MeetingService) List(ctx context.Context, req GetMeetingRequest) (*Response, int) {
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting meeting list request", "error", err)
		return errorResponse(MsgMissingParams, []MeetingDetail{}), http.StatusBadRequest
	}

	res := s.client.Get(ctx, "/me/calendarView", map[string]string{
		"startDateTime": asUTCDateTime(req.StartDate) + "Z",
		"endDateTime":   asUTCDateTime(req.EndDate) + "Z",
	})
	if !res.OK() {
		return errorResponse(res.Message, []MeetingDetail{}), res.Status
	}

	details := make([]MeetingDetail, 0, len(payloadList(res.Payload)))
	for _, raw := range payloadList(res.Payload) {
		var ev calendarEvent
		if err := mapstructure.Decode(raw, &ev); err != nil {
			s.log.Warn("skipping undecodable event", "error", err)
			continue
		}
		participants := make([]string, 0, len(ev.Attendees))
		for _, a := range ev.Attendees {
			participants = append(participants, a.EmailAddress.Address)
		}
		details = append(details, MeetingDetail{
			ID:           ev.ID,
			Subject:      ev.Subject,
			StartTime:    ev.Start.DateTime,
			EndTime:      ev.End.DateTime,
			Participants: participants,
		})
	}

	return successResponse("Meetings retrieved successfully", details), res.Status
}

// Create adds a new event to the user's calendar.
func (s *MeetingService) Create(ctx context.Context, req CreateMeetingRequest) (*Response, int) {
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting meeting create request", "error", err)
		return errorResponse(MsgMissingParams, map[string]any{}), http.StatusBadRequest
	}

	payload := map[string]any{
		"subject":   req.Subject,
		"start":     timePayload(req.StartTime),
		"end":       timePayload(req.EndTime),
		"attendees": attendeesPayload(req.Participants),
	}

	res := s.client.Post(ctx, "/me/events", payload)
	if !res.OK() {
		return errorResponse(res.Message, map[string]any{}), res.Status
	}
	return successResponse("Meeting created successfully", res.Payload), res.Status
}

// Update replaces an event's subject, times, and attendees.
func (s *MeetingService) Update(ctx context.Context, req UpdateMeetingRequest) (*Response, int) {
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting meeting update request", "error", err)
		return errorResponse(MsgMissingParams, map[string]any{}), http.StatusBadRequest
	}

	payload := map[string]any{
		"subject":   req.Subject,
		"start":     timePayload(req.StartTime),
		"end":       timePayload(req.EndTime),
		"attendees": attendeesPayload(req.Participants),
	}

	res := s.client.Patch(ctx, "/me/events/"+url.PathEscape(req.MeetingID), payload)
	if !res.OK() {
		return errorResponse(res.Message, map[string]any{}), res.Status
	}
	return successResponse("Meeting updated successfully", res.Payload), res.Status
}

// Reschedule moves an event without touching its attendee list.
func (s *MeetingService) Reschedule(ctx context.Context, req RescheduleMeetingRequest) (*Response, int) {
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting meeting reschedule request", "error", err)
		return errorResponse(MsgMissingParams, map[string]any{}), http.StatusBadRequest
	}

	payload := map[string]any{
		"start": timePayload(req.StartTime),
		"end":   timePayload(req.EndTime),
	}

	res := s.client.Patch(ctx, "/me/events/"+url.PathEscape(req.MeetingID), payload)
	if !res.OK() {
		return errorResponse(res.Message, map[string]any{}), res.Status
	}
	return successResponse("Meeting rescheduled successfully", res.Payload), res.Status
}

// AddParticipants appends attendees to an existing event.
func (s *MeetingService) AddParticipants(ctx context.Context, req AddParticipantsRequest) (*Response, int) {
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting add participants request", "error", err)
		return errorResponse(MsgMissingParams, map[string]any{}), http.StatusBadRequest
	}

	payload := map[string]any{
		"subject":   req.Subject,
		"attendees": attendeesPayload(req.Participants),
	}

	res := s.client.Patch(ctx, "/me/events/"+url.PathEscape(req.MeetingID), payload)
	if !res.OK() {
		return errorResponse(res.Message, map[string]any{}), res.Status
	}
	return successResponse("Participants added successfully", res.Payload), res.Status
}

// Delete removes an event. Deletion is refused without an explicit
// confirm == "yes"; the guard is local, never reaching the upstream.
func (s *MeetingService) Delete(ctx context.Context, req DeleteMeetingRequest) (*Response, int) {
	if req.Confirm != "yes" {
		return errorResponse("Meeting deletion was not confirmed.",
			[]map[string]any{}), http.StatusBadRequest
	}
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting meeting delete request", "error", err)
		return errorResponse(MsgMissingParams, []map[string]any{}), http.StatusBadRequest
	}

	res := s.client.Delete(ctx, "/me/events/"+url.PathEscape(req.MeetingID))
	if !res.OK() {
		return errorResponse(res.Message, []map[string]any{}), res.Status
	}
	return successResponse("Meeting deleted successfully", res.Payload), res.Status
}

// timePayload wraps a normalized timestamp in the upstream dateTime shape.
func timePayload(ts string) map[string]string {
	return map[string]string{
		"dateTime": asUTCDateTime(ts),
		"timeZone": "UTC",
	}
}

// attendeesPayload maps participants to upstream attendee records with the
// fixed "required" attendance type.
func attendeesPayload(participants []Participant) []map[string]any {
	attendees := make([]map[string]any, 0, len(participants))
	for _, p := range participants {
		attendees = append(attendees, map[string]any{
			"emailAddress": map[string]string{
				"address": p.Email,
				"name":    p.Name,
			},
			"type": "required",
		})
	}
	return attendees
}

// payloadList pulls the "value" collection out of an upstream list payload.
func payloadList(payload any) []any {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	list, _ := m["value"].([]any)
	return list
}
