package graph

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Response is the uniform envelope every domain service method produces.
// Data holds a mapped list for list endpoints, the raw upstream payload for
// mutation endpoints, or a short string for fire-and-forget operations.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	// StatusSuccess and StatusError are the only values of Response.Status.
	StatusSuccess = "success"
	StatusError   = "error"

	// MsgMissingParams is the fixed message for requests rejected before any
	// upstream call.
	MsgMissingParams = "Missing required parameters"
)

func successResponse(message string, data any) *Response {
	return &Response{Status: StatusSuccess, Message: message, Data: data}
}

func errorResponse(message string, data any) *Response {
	return &Response{Status: StatusError, Message: message, Data: data}
}

// isTimestamp accepts any parseable date or datetime value.
func isTimestamp(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil // presence is checked by the Required rule
	}
	if _, err := dateparse.ParseAny(s); err != nil {
		return fmt.Errorf("unrecognized timestamp %q", s)
	}
	return nil
}

// asUTCDateTime normalizes a flexible timestamp into the Graph wire form
// ("2006-01-02T15:04:05") with the timezone carried separately as "UTC".
func asUTCDateTime(s string) string {
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return s
	}
	return t.UTC().Format("2006-01-02T15:04:05")
}

// asDate normalizes a flexible timestamp into a bare date.
func asDate(s string) string {
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return s
	}
	return t.UTC().Format(time.DateOnly)
}

// Participant is one meeting attendee.
type Participant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GetMeetingRequest selects the calendar window to list.
type GetMeetingRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r GetMeetingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StartDate, validation.Required, validation.By(isTimestamp)),
		validation.Field(&r.EndDate, validation.Required, validation.By(isTimestamp)),
	)
}

// CreateMeetingRequest creates a calendar event.
type CreateMeetingRequest struct {
	Subject      string        `json:"subject"`
	StartTime    string        `json:"start_time"`
	EndTime      string        `json:"end_time"`
	Participants []Participant `json:"participants"`
}

func (r CreateMeetingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Subject, validation.Required),
		validation.Field(&r.StartTime, validation.Required, validation.By(isTimestamp)),
		validation.Field(&r.EndTime, validation.Required, validation.By(isTimestamp)),
		validation.Field(&r.Participants, validation.Required, validation.Length(1, 0)),
	)
}

// UpdateMeetingRequest replaces an event's subject, times and attendees.
type UpdateMeetingRequest struct {
	MeetingID    string        `json:"meeting_id"`
	Subject      string        `json:"subject"`
	StartTime    string        `json:"start_time"`
	EndTime      string        `json:"end_time"`
	Participants []Participant `json:"participants"`
}

func (r UpdateMeetingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MeetingID, validation.Required),
		validation.Field(&r.Subject, validation.Required),
		validation.Field(&r.StartTime, validation.Required, validation.By(isTimestamp)),
		validation.Field(&r.EndTime, validation.Required, validation.By(isTimestamp)),
		validation.Field(&r.Participants, validation.Required, validation.Length(1, 0)),
	)
}

// RescheduleMeetingRequest moves an event without touching its attendees.
type RescheduleMeetingRequest struct {
	MeetingID string `json:"meeting_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (r RescheduleMeetingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MeetingID, validation.Required),
		validation.Field(&r.StartTime, validation.Required, validation.By(isTimestamp)),
		validation.Field(&r.EndTime, validation.Required, validation.By(isTimestamp)),
	)
}

// AddParticipantsRequest appends attendees to an existing event.
type AddParticipantsRequest struct {
	MeetingID    string        `json:"meeting_id"`
	Subject      string        `json:"subject"`
	Participants []Participant `json:"participants"`
}

func (r AddParticipantsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MeetingID, validation.Required),
		validation.Field(&r.Subject, validation.Required),
		validation.Field(&r.Participants, validation.Required, validation.Length(1, 0)),
	)
}

// DeleteMeetingRequest removes an event. Confirm must be exactly "yes";
// the gate is checked before field validation and before any upstream call.
type DeleteMeetingRequest struct {
	MeetingID string `json:"meeting_id"`
	Confirm   string `json:"confirm"`
}

func (r DeleteMeetingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MeetingID, validation.Required),
	)
}

// GetEmailRequest selects the received window to list.
type GetEmailRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r GetEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.StartDate, validation.Required, validation.By(isTimestamp)),
		validation.Field(&r.EndDate, validation.Required, validation.By(isTimestamp)),
	)
}

// EmailAddress, Recipient, EmailBody and EmailMessage mirror the upstream
// message shape so send requests pass through without re-mapping.
type EmailAddress struct {
	Address string `json:"address"`
}

type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

type EmailBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type EmailMessage struct {
	Subject       string      `json:"subject"`
	Body          EmailBody   `json:"body"`
	ToRecipients  []Recipient `json:"toRecipients"`
	CcRecipients  []Recipient `json:"ccRecipients,omitempty"`
	BccRecipients []Recipient `json:"bccRecipients,omitempty"`
}

// SendEmailRequest sends a plain message. CC and BCC are optional.
type SendEmailRequest struct {
	Message EmailMessage `json:"message"`
}

func (r SendEmailRequest) Validate() error {
	return validation.ValidateStruct(&r.Message,
		validation.Field(&r.Message.Subject, validation.Required),
		validation.Field(&r.Message.Body, validation.By(func(any) error {
			if r.Message.Body.Content == "" {
				return fmt.Errorf("body content is required")
			}
			return nil
		})),
		validation.Field(&r.Message.ToRecipients, validation.Required, validation.Length(1, 0)),
	)
}

// ReplyEmailRequest replies to an existing message.
type ReplyEmailRequest struct {
	EmailID   string `json:"email_id"`
	ReplyBody string `json:"reply_body"`
}

func (r ReplyEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EmailID, validation.Required),
		validation.Field(&r.ReplyBody, validation.Required),
	)
}

// DeleteEmailRequest removes a message behind the same confirmation gate as
// meeting deletion.
type DeleteEmailRequest struct {
	EmailID string `json:"email_id"`
	Confirm string `json:"confirm"`
}

func (r DeleteEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EmailID, validation.Required),
	)
}

// ForwardEmailRequest forwards an existing message to one recipient.
// SubjectPrefix defaults to "Fwd:"; CustomMessage is an optional preamble.
type ForwardEmailRequest struct {
	EmailID        string `json:"email_id"`
	ForwardToEmail string `json:"forward_to_email"`
	SubjectPrefix  string `json:"subject_prefix"`
	CustomMessage  string `json:"custom_message"`
}

func (r ForwardEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EmailID, validation.Required),
		validation.Field(&r.ForwardToEmail, validation.Required),
	)
}

// SendAttachmentRequest sends a message with file attachments read from
// local paths.
type SendAttachmentRequest struct {
	Subject        string   `json:"subject"`
	Body           string   `json:"body"`
	RecipientEmail string   `json:"recipient_email"`
	Attachments    []string `json:"attachments"`
}

func (r SendAttachmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Subject, validation.Required),
		validation.Field(&r.Body, validation.Required),
		validation.Field(&r.RecipientEmail, validation.Required),
		validation.Field(&r.Attachments, validation.Required, validation.Length(1, 0)),
	)
}

// CreateTaskListRequest creates a named to-do list.
type CreateTaskListRequest struct {
	DisplayName string `json:"displayName"`
}

func (r CreateTaskListRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DisplayName, validation.Required),
	)
}

// CreateTaskRequest adds a task to an existing list.
type CreateTaskRequest struct {
	TodoListID string `json:"todo_list_id"`
	Title      string `json:"title"`
}

func (r CreateTaskRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TodoListID, validation.Required),
		validation.Field(&r.Title, validation.Required),
	)
}

// GetTaskRequest fetches one task from a list.
type GetTaskRequest struct {
	TodoListID string `json:"todo_list_id"`
	TaskID     string `json:"taskId"`
}

func (r GetTaskRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TodoListID, validation.Required),
		validation.Field(&r.TaskID, validation.Required),
	)
}

// DeleteTaskRequest removes one task from a list.
type DeleteTaskRequest struct {
	TodoListID string `json:"todo_list_id"`
	TaskID     string `json:"taskId"`
	Confirm    string `json:"confirm"`
}

func (r DeleteTaskRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TodoListID, validation.Required),
		validation.Field(&r.TaskID, validation.Required),
	)
}
