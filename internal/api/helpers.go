package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/Amarverma111/graph/pkg/graph"
)

// maxRequestBody bounds inbound request bodies at 1 MiB; attachment content
// is referenced by path, never inlined, so nothing legitimate comes close.
const maxRequestBody = 1 << 20

// decodeRequest parses a JSON request body into v.
func decodeRequest(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}
	if len(body) == 0 {
		return fmt.Errorf("request body is empty")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parsing request body: %w", err)
	}
	return nil
}

// writeResponse serializes a domain envelope with its status code.
func writeResponse(w http.ResponseWriter, log hclog.Logger, resp *graph.Response, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("error encoding response", "error", err)
	}
}

// writeError is writeResponse for ad-hoc error envelopes.
func writeError(w http.ResponseWriter, log hclog.Logger, message string, status int) {
	writeResponse(w, log, &graph.Response{
		Status:  graph.StatusError,
		Message: message,
		Data:    map[string]any{},
	}, status)
}
