package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avelines/moviedesk/internal/errs"
	"github.com/avelines/moviedesk/internal/validate"
	"go.uber.org/zap"
)

// Stable error codes surfaced to clients.
const (
	codeDuplicateEmail   = "DUPLICATE_EMAIL"
	codeDuplicateEntry   = "DUPLICATE_ENTRY"
	codeInvalidData      = "INVALID_DATA"
	codeInvalidEmail     = "INVALID_EMAIL"
	codeInvalidPassword  = "INVALID_PASSWORD"
	codeRecordNotFound   = "RECORD_NOT_FOUND"
	codeTokenMissing     = "AUTH_TOKEN_MISSING"
	codeTokenInvalid     = "AUTH_TOKEN_INVALID"
	codeRateLimited      = "RATE_LIMITED"
	codeDatabaseError    = "DATABASE_ERROR"
)

type errorResponse struct {
	Error      string            `json:"error"`
	Message    string            `json:"message"`
	Validation map[string]string `json:"validation,omitempty"`
}

// authFailure is the payload shape the auth middleware answers with.
type authFailure struct {
	Auth    bool   `json:"auth"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeServiceError maps service-layer errors onto the response taxonomy.
// duplicateCode distinguishes DUPLICATE_EMAIL from DUPLICATE_ENTRY per resource.
// Unclassified errors are logged and surfaced as an opaque 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, duplicateCode string) {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:      codeInvalidData,
			Message:    verrs.Error(),
			Validation: verrs,
		})
	case errors.Is(err, errs.ErrAlreadyExists):
		s.writeError(w, http.StatusConflict, duplicateCode, "record already exists")
	case errors.Is(err, errs.ErrNotFound):
		s.writeError(w, http.StatusNotFound, codeRecordNotFound, "record not found")
	case errors.Is(err, errs.ErrUnknownEmail):
		s.writeError(w, http.StatusUnauthorized, codeInvalidEmail, "no account for this email")
	case errors.Is(err, errs.ErrWrongPassword):
		s.writeError(w, http.StatusConflict, codeInvalidPassword, "wrong password")
	case errors.Is(err, errs.ErrRateLimited):
		s.writeError(w, http.StatusTooManyRequests, codeRateLimited, "too many attempts, retry later")
	default:
		s.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		s.writeError(w, http.StatusInternalServerError, codeDatabaseError, "internal error")
	}
}
