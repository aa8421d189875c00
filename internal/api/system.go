package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Amarverma111/graph/internal/auth"
	"github.com/Amarverma111/graph/internal/server"
	"github.com/Amarverma111/graph/pkg/graph"
)

// HealthHandler reports liveness in the same envelope as every other route.
func HealthHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeResponse(w, srv.Logger, &graph.Response{
			Status:  graph.StatusSuccess,
			Message: "API IS WORKING FINE !",
			Data:    map[string]any{},
		}, http.StatusOK)
	})
}

// LoginHandler redirects the caller to the identity provider's
// authorization page.
func LoginHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		url := auth.AuthCodeURL(srv.Config.Auth, uuid.NewString())
		http.Redirect(w, r, url, http.StatusFound)
	})
}

// CallbackHandler exchanges the authorization code for an access token and
// hands the token back to the caller.
func CallbackHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			writeError(w, srv.Logger,
				"Authorization code not found in the response", http.StatusBadRequest)
			return
		}

		token, err := auth.OAuthConfig(srv.Config.Auth).Exchange(r.Context(), code)
		if err != nil {
			srv.Logger.Warn("token exchange failed", "error", err)
			writeError(w, srv.Logger, "Token exchange failed", http.StatusUnauthorized)
			return
		}

		writeResponse(w, srv.Logger, &graph.Response{
			Status:  graph.StatusSuccess,
			Message: "Access token issued",
			Data: map[string]any{
				"access_token": token.AccessToken,
				"token_type":   token.TokenType,
				"expiry":       token.Expiry,
			},
		}, http.StatusOK)
	})
}
