package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amarverma111/graph/internal/config"
	"github.com/Amarverma111/graph/internal/server"
	"github.com/Amarverma111/graph/pkg/graph"
)

// newGateway builds a fully routed gateway pointed at the given upstream.
func newGateway(t *testing.T, upstreamURL string) http.Handler {
	t.Helper()
	srv := server.Server{
		Config: &config.Config{
			ListenAddr: ":0",
			Env:        "prod",
			Graph:      graph.Config{Endpoint: upstreamURL},
			Auth: config.AuthConfig{
				ClientID:         "client-id",
				ClientSecret:     "client-secret",
				RedirectURL:      "http://localhost:8000/api/callback",
				AuthorizationURL: "https://login.example.com/authorize",
				TokenURL:         "https://login.example.com/token",
				Scopes:           []string{"User.Read"},
			},
		},
		Logger: hclog.NewNullLogger(),
	}
	mux := http.NewServeMux()
	RegisterRoutes(mux, srv)
	return mux
}

func testUpstream(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)
	return upstream.URL
}

func doJSON(t *testing.T, gw http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) graph.Response {
	t.Helper()
	var resp graph.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

var bearer = map[string]string{"Authorization": "Bearer opaque-test-token"}

func TestHealthHandler(t *testing.T) {
	gw := newGateway(t, "http://upstream.invalid")

	rec := doJSON(t, gw, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, graph.StatusSuccess, resp.Status)
	assert.Equal(t, "API IS WORKING FINE !", resp.Message)
}

func TestHandlersRejectMissingToken(t *testing.T) {
	gw := newGateway(t, "http://upstream.invalid")

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/get_meetings"},
		{http.MethodPost, "/api/create_meeting"},
		{http.MethodDelete, "/api/delete_meeting"},
		{http.MethodGet, "/api/get_email"},
		{http.MethodPost, "/api/sent-email"},
		{http.MethodPost, "/api/forwarding_email"},
		{http.MethodGet, "/api/get_all_task"},
		{http.MethodDelete, "/api/delete_task"},
	}

	for _, rt := range routes {
		t.Run(rt.path, func(t *testing.T) {
			rec := doJSON(t, gw, rt.method, rt.path, `{}`, nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			resp := decodeEnvelope(t, rec)
			assert.Equal(t, graph.StatusError, resp.Status)
			assert.Equal(t, "Access token is missing or expired", resp.Message)
		})
	}
}

func TestHandlersRejectWrongMethod(t *testing.T) {
	gw := newGateway(t, "http://upstream.invalid")

	rec := doJSON(t, gw, http.MethodGet, "/api/create_meeting", "", bearer)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = doJSON(t, gw, http.MethodPost, "/api/get_meetings", `{}`, bearer)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = doJSON(t, gw, http.MethodPost, "/api/delete_email", `{}`, bearer)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlersRejectMalformedBody(t *testing.T) {
	gw := newGateway(t, "http://upstream.invalid")

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"broken json", `{"subject":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, gw, http.MethodPost, "/api/create_meeting", tt.body, bearer)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeEnvelope(t, rec)
			assert.Equal(t, graph.StatusError, resp.Status)
			assert.Contains(t, resp.Message, "Invalid data:")
		})
	}
}

func TestCreateMeetingEndToEnd(t *testing.T) {
	upstream := testUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/events", r.URL.Path)
		assert.Equal(t, "Bearer opaque-test-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"evt-new"}`))
	})
	gw := newGateway(t, upstream)

	rec := doJSON(t, gw, http.MethodPost, "/api/create_meeting", `{
		"subject": "Planning",
		"start_time": "2024-02-01 10:00:00",
		"end_time": "2024-02-01 11:00:00",
		"participants": [{"name": "A", "email": "a@example.com"}]
	}`, bearer)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, graph.StatusSuccess, resp.Status)
	assert.Equal(t, "Meeting created successfully", resp.Message)
}

func TestCreateMeetingValidationEndToEnd(t *testing.T) {
	hit := false
	upstream := testUpstream(t, func(w http.ResponseWriter, r *http.Request) { hit = true })
	gw := newGateway(t, upstream)

	rec := doJSON(t, gw, http.MethodPost, "/api/create_meeting", `{
		"subject": "Planning",
		"start_time": "2024-02-01 10:00:00",
		"end_time": "2024-02-01 11:00:00",
		"participants": []
	}`, bearer)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, graph.MsgMissingParams, resp.Message)
	assert.False(t, hit)
}

func TestDeleteMeetingUnconfirmedEndToEnd(t *testing.T) {
	hit := false
	upstream := testUpstream(t, func(w http.ResponseWriter, r *http.Request) { hit = true })
	gw := newGateway(t, upstream)

	rec := doJSON(t, gw, http.MethodDelete, "/api/delete_meeting",
		`{"meeting_id": "evt-1", "confirm": "no"}`, bearer)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "Meeting deletion was not confirmed.", resp.Message)
	assert.False(t, hit)
}

func TestUpstreamStatusPassesThrough(t *testing.T) {
	upstream := testUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"Insufficient privileges"}}`))
	})
	gw := newGateway(t, upstream)

	rec := doJSON(t, gw, http.MethodGet, "/api/get_all_task", "", bearer)
	require.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, graph.StatusError, resp.Status)
	assert.Equal(t, "Insufficient privileges", resp.Message)
}

func TestGetTasksEndToEnd(t *testing.T) {
	upstream := testUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me/todo/lists", r.URL.Path)
		w.Write([]byte(`{"value":[{"id":"list-1","displayName":"Tasks"}]}`))
	})
	gw := newGateway(t, upstream)

	rec := doJSON(t, gw, http.MethodGet, "/api/get_all_task", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, graph.StatusSuccess, resp.Status)
}

func TestLoginHandlerRedirects(t *testing.T) {
	gw := newGateway(t, "http://upstream.invalid")

	rec := doJSON(t, gw, http.MethodGet, "/api/login", "", nil)
	require.Equal(t, http.StatusFound, rec.Code)

	location := rec.Header().Get("Location")
	assert.Contains(t, location, "https://login.example.com/authorize")
	assert.Contains(t, location, "client_id=client-id")
	assert.Contains(t, location, "state=")
}

func TestCallbackHandlerMissingCode(t *testing.T) {
	gw := newGateway(t, "http://upstream.invalid")

	rec := doJSON(t, gw, http.MethodGet, "/api/callback", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "Authorization code not found in the response", resp.Message)
}

func TestCallbackHandlerExchange(t *testing.T) {
	idp := testUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code-1", r.Form.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"issued-token","token_type":"Bearer","expires_in":3600}`))
	})

	srv := server.Server{
		Config: &config.Config{
			Env:   "prod",
			Graph: graph.Config{Endpoint: "http://upstream.invalid"},
			Auth: config.AuthConfig{
				ClientID:     "client-id",
				ClientSecret: "client-secret",
				RedirectURL:  "http://localhost:8000/api/callback",
				TokenURL:     idp + "/token",
			},
		},
		Logger: hclog.NewNullLogger(),
	}
	mux := http.NewServeMux()
	RegisterRoutes(mux, srv)

	rec := doJSON(t, mux, http.MethodGet, "/api/callback?code=auth-code-1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, graph.StatusSuccess, resp.Status)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "issued-token", data["access_token"])
	assert.Equal(t, "Bearer", data["token_type"])
}
