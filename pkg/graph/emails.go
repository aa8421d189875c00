package graph

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/mapstructure"
)

// EmailService translates mail requests into message calls against the
// Graph API. Every method is total: it always returns a Response and a
// status code, never an error.
type EmailService struct {
	client *Client
	log    hclog.Logger
}

// NewEmailService creates a service bound to one request's bearer context.
func NewEmailService(sc Context, log hclog.Logger) *EmailService {
	return &EmailService{
		client: NewClient(sc, log),
		log:    log.Named("emails"),
	}
}

// EmailDetail is one message flattened for the caller.
type EmailDetail struct {
	EmailID          string `json:"email_id"`
	Subject          string `json:"subject"`
	Sender           string `json:"sender"`
	ReceivedDateTime string `json:"receivedDateTime"`
	BodyPreview      string `json:"bodyPreview"`
}

// message is the subset of the upstream message shape the gateway reads.
type message struct {
	ID      string `mapstructure:"id"`
	Subject string `mapstructure:"subject"`
	From    struct {
		EmailAddress struct {
			Address string `mapstructure:"address"`
		} `mapstructure:"emailAddress"`
	} `mapstructure:"from"`
	ReceivedDateTime string `mapstructure:"receivedDateTime"`
	BodyPreview      string `mapstructure:"bodyPreview"`
	Body             struct {
		Content string `mapstructure:"content"`
	} `mapstructure:"body"`
}

// List fetches all messages received inside the requested window.
func (s *EmailService) List(ctx context.Context, req GetEmailRequest) (*Response, int) {
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting email list request", "error", err)
		return errorResponse(MsgMissingParams, []EmailDetail{}), http.StatusBadRequest
	}

	filter := fmt.Sprintf(
		"receivedDateTime ge %sT00:00:00Z and receivedDateTime le %sT23:59:59Z",
		asDate(req.StartDate), asDate(req.EndDate))
	res := s.client.Get(ctx, "/me/messages", map[string]string{"$filter": filter})
	if !res.OK() {
		return errorResponse(res.Message, []EmailDetail{}), res.Status
	}

	details := make([]EmailDetail, 0, len(payloadList(res.Payload)))
	for _, raw := range payloadList(res.Payload) {
		var m message
		if err := mapstructure.Decode(raw, &m); err != nil {
			s.log.Warn("skipping undecodable message", "error", err)
			continue
		}
		details = append(details, EmailDetail{
			EmailID:          m.ID,
			Subject:          m.Subject,
			Sender:           m.From.EmailAddress.Address,
			ReceivedDateTime: m.ReceivedDateTime,
			BodyPreview:      m.BodyPreview,
		})
	}

	return successResponse("Email retrieved successfully", details), res.Status
}

// Send delivers a plain message. CC and BCC recipients pass through when
// present and are never required.
func (s *EmailService) Send(ctx context.Context, req SendEmailRequest) (*Response, int) {
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting email send request", "error", err)
		return errorResponse(MsgMissingParams, ""), http.StatusBadRequest
	}

	msg := map[string]any{
		"subject": req.Message.Subject,
		"body": map[string]string{
			"contentType": "Text",
			"content":     req.Message.Body.Content,
		},
		"toRecipients": recipientsPayload(req.Message.ToRecipients),
	}
	if len(req.Message.CcRecipients) > 0 {
		msg["ccRecipients"] = recipientsPayload(req.Message.CcRecipients)
	}
	if len(req.Message.BccRecipients) > 0 {
		msg["bccRecipients"] = recipientsPayload(req.Message.BccRecipients)
	}

	res := s.client.Post(ctx, "/me/sendMail", map[string]any{"message": msg})
	if !res.OK() {
		return errorResponse(res.Message, "Error in email sent"), res.Status
	}
	return successResponse("Email sent successfully", "Email successfully sent"), res.Status
}

// Reply posts a text reply to an existing message.
func (s *EmailService) Reply(ctx context.Context, req ReplyEmailRequest) (*Response, int) {
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting email reply request", "error", err)
		return errorResponse(MsgMissingParams, ""), http.StatusBadRequest
	}

	payload := map[string]any{
		"message": map[string]any{
			"body": map[string]string{
				"contentType": "Text",
				"content":     req.ReplyBody,
			},
		},
	}

	res := s.client.Post(ctx, "/me/messages/"+url.PathEscape(req.EmailID)+"/reply", payload)
	if !res.OK() {
		return errorResponse(res.Message, "Reply not sent"), res.Status
	}
	return successResponse("Reply sent successfully", "Reply sent"), res.Status
}

// Delete removes a message behind the same confirmation gate as meeting
// deletion.
func (s *EmailService) Delete(ctx context.Context, req DeleteEmailRequest) (*Response, int) {
	if req.Confirm != "yes" {
		return errorResponse("Email deletion was not confirmed.",
			[]map[string]any{}), http.StatusBadRequest
	}
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting email delete request", "error", err)
		return errorResponse(MsgMissingParams, []map[string]any{}), http.StatusBadRequest
	}

	res := s.client.Delete(ctx, "/me/messages/"+url.PathEscape(req.EmailID))
	if !res.OK() {
		return errorResponse(res.Message, []map[string]any{}), res.Status
	}
	return successResponse("Email deleted successfully", res.Payload), res.Status
}

// SendAttachment delivers a message with file attachments read from local
// paths. An unreadable attachment fails the whole request before any
// upstream call.
func (s *EmailService) SendAttachment(ctx context.Context, req SendAttachmentRequest) (*Response, int) {
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting attachment request", "error", err)
		return errorResponse(MsgMissingParams, map[string]any{}), http.StatusBadRequest
	}

	attachments := make([]map[string]any, 0, len(req.Attachments))
	for _, path := range req.Attachments {
		content, err := os.ReadFile(path)
		if err != nil {
			return errorResponse(
				fmt.Sprintf("Failed to process attachment %s: %v", path, err),
				map[string]any{}), http.StatusBadRequest
		}
		attachments = append(attachments, map[string]any{
			"@odata.type":  "#microsoft.graph.fileAttachment",
			"name":         filepath.Base(path),
			"contentBytes": base64.StdEncoding.EncodeToString(content),
		})
	}

	payload := map[string]any{
		"message": map[string]any{
			"subject": req.Subject,
			"body": map[string]string{
				"contentType": "Text",
				"content":     req.Body,
			},
			"toRecipients": []map[string]any{
				{"emailAddress": map[string]string{"address": req.RecipientEmail}},
			},
			"attachments": attachments,
		},
		"saveToSentItems": "true",
	}

	res := s.client.Post(ctx, "/me/sendMail", payload)
	if !res.OK() {
		return errorResponse(res.Message, map[string]any{}), res.Status
	}
	return successResponse("Attachment sent successfully", res.Payload), res.Status
}

// Forward fetches the source message, builds the forwarded copy, and sends
// it under the bounded resend policy (throttled sends back off with jitter
// and honor Retry-After).
func (s *EmailService) Forward(ctx context.Context, req ForwardEmailRequest) (*Response, int) {
	if err := req.Validate(); err != nil {
		s.log.Warn("rejecting email forward request", "error", err)
		return errorResponse(MsgMissingParams, map[string]any{}), http.StatusBadRequest
	}

	res := s.client.Get(ctx, "/me/messages/"+url.PathEscape(req.EmailID), nil)
	if !res.OK() {
		return errorResponse(res.Message, map[string]any{}), res.Status
	}

	var src message
	if err := mapstructure.Decode(res.Payload, &src); err != nil {
		s.log.Error("undecodable source message", "error", err)
		return errorResponse("Failed to read the source email",
			map[string]any{}), http.StatusInternalServerError
	}

	prefix := req.SubjectPrefix
	if prefix == "" {
		prefix = "Fwd:"
	}
	body := fmt.Sprintf(
		"Forwarded message:\n\n%s\n\n--- Original Message ---\n%s",
		src.BodyPreview, src.Body.Content)
	if req.CustomMessage != "" {
		body = req.CustomMessage + "\n\n" + body
	}

	payload := map[string]any{
		"message": map[string]any{
			"subject": prefix + " " + src.Subject,
			"body": map[string]string{
				"contentType": "HTML",
				"content":     body,
			},
			"toRecipients": []map[string]any{
				{"emailAddress": map[string]string{"address": req.ForwardToEmail}},
			},
			"attachments": []any{},
		},
		"saveToSentItems": "true",
	}

	res = s.client.postWithRetry(ctx, "/me/sendMail", payload)
	if !res.OK() {
		return errorResponse(res.Message, map[string]any{}), res.Status
	}
	return successResponse("Forward sent successfully", res.Payload), res.Status
}

func recipientsPayload(recipients []Recipient) []map[string]any {
	out := make([]map[string]any, 0, len(recipients))
	for _, r := range recipients {
		out = append(out, map[string]any{
			"emailAddress": map[string]string{"address": r.EmailAddress.Address},
		})
	}
	return out
}
