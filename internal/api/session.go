package api

import (
	"errors"
	"net/http"

	"github.com/patrickwarner/adlibrary/internal/auth"
	"github.com/patrickwarner/adlibrary/internal/middleware"
	"go.uber.org/zap"
)

type sessionResponse struct {
	Status  auth.Status    `json:"status"`
	User    *auth.Identity `json:"user"`
	Title   string         `json:"title,omitempty"`
	Message string         `json:"message,omitempty"`
}

func sessionView(st auth.State) sessionResponse {
	out := sessionResponse{Status: auth.StatusOf(st), User: st.User}
	switch out.Status {
	case auth.StatusLoading:
		out.Message = auth.LoadingMessage
	case auth.StatusUnauthenticated:
		out.Title = auth.WelcomeTitle
		out.Message = auth.WelcomePrompt
	}
	return out
}

// GetSession handles GET /api/session.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, sessionView(s.Session.AuthState()))
}

// CreateSession handles POST /api/session. The body carries a signed
// session token; a valid one signs its identity in.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerFromRequest(r, s.Logger)

	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Token == "" {
		http.Error(w, "token required", http.StatusBadRequest)
		return
	}
	id, err := s.Verifier.Verify(req.Token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			logger.Warn("rejected session token", zap.Error(err))
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		logger.Error("verify session token", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Auth.SignIn(id)
	logger.Info("signed in", zap.String("user_id", id.ID))
	writeJSON(w, sessionView(s.Session.AuthState()))
}

// DeleteSession handles DELETE /api/session.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	s.Auth.SignOut()
	middleware.LoggerFromRequest(r, s.Logger).Info("signed out")
	w.WriteHeader(http.StatusNoContent)
}

// requireAuth renders the loading and sign-in states instead of the
// catalog until an identity is present.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch auth.StatusOf(s.Session.AuthState()) {
		case auth.StatusLoading:
			w.Header().Set("Retry-After", "1")
			http.Error(w, auth.LoadingMessage, http.StatusServiceUnavailable)
			return
		case auth.StatusUnauthenticated:
			http.Error(w, auth.WelcomeTitle+". "+auth.WelcomePrompt, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
