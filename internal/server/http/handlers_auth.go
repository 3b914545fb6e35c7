package httpserver

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/avelines/moviedesk/internal/model"
	"go.uber.org/zap"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accountResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// authResponse answers successful register/login calls.
type authResponse struct {
	Auth  bool            `json:"auth"`
	Token string          `json:"token"`
	User  accountResponse `json:"user"`
}

func toAccountResponse(a model.Account) accountResponse {
	return accountResponse{ID: a.ID.String(), Email: a.Email}
}

// handleRegister creates an account, issues a token, and starts a session.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeInvalidData, "invalid request body")
		return
	}

	a, tok, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err, codeDuplicateEmail)
		return
	}

	s.startSession(w, a)
	s.writeJSON(w, http.StatusAccepted, authResponse{Auth: true, Token: tok.Value, User: toAccountResponse(a)})
}

// handleLogin authenticates, issues a token, and replaces the session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeInvalidData, "invalid request body")
		return
	}

	a, tok, err := s.auth.LoginWithIP(r.Context(), req.Email, req.Password, remoteIP(r))
	if err != nil {
		s.writeServiceError(w, r, err, codeDuplicateEmail)
		return
	}

	// an earlier session for this client is superseded, not revoked
	if c, cerr := r.Cookie(s.cookieName); cerr == nil {
		s.sessions.Destroy(c.Value)
	}

	s.startSession(w, a)
	s.writeJSON(w, http.StatusAccepted, authResponse{Auth: true, Token: tok.Value, User: toAccountResponse(a)})
}

// handleSessionCheck reports whether the requesting client has a live session.
func (s *Server) handleSessionCheck(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(s.cookieName)
	if err != nil {
		s.writeJSON(w, http.StatusOK, map[string]bool{"auth": false})
		return
	}
	sess, ok := s.sessions.Get(c.Value)
	if !ok {
		s.writeJSON(w, http.StatusOK, map[string]bool{"auth": false})
		return
	}

	a, err := s.auth.AccountByID(r.Context(), sess.AccountID)
	if err != nil {
		// session points at a record that no longer resolves
		s.writeJSON(w, http.StatusOK, map[string]bool{"auth": false})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"auth": true, "user": toAccountResponse(a)})
}

// handleLogout destroys the client's session. Outstanding bearer tokens are
// untouched: they run to their signed expiry.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(s.cookieName)
	if err != nil || !s.sessions.Destroy(c.Value) {
		s.writeError(w, http.StatusNotFound, codeRecordNotFound, "no active session")
		return
	}
	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleIsUserAuth acknowledges a verified bearer token.
func (s *Server) handleIsUserAuth(w http.ResponseWriter, r *http.Request) {
	id, _ := AccountIDFromCtx(r.Context())
	s.writeJSON(w, http.StatusOK, map[string]any{
		"auth":    true,
		"message": "token verified for account " + id.String(),
	})
}

func (s *Server) startSession(w http.ResponseWriter, a model.Account) {
	cookie, err := s.sessions.Create(a.ID)
	if err != nil {
		// the caller is already authenticated; log and move on without a session
		s.log.Error("create session", zap.Error(err))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    cookie,
		Path:     "/",
		MaxAge:   int(s.cookieTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
