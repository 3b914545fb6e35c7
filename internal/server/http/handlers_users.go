package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/avelines/moviedesk/internal/model"
	"github.com/avelines/moviedesk/internal/service"
)

type userResponse struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Language  string `json:"language"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		Language:  u.Language,
	}
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	f := model.UserFilter{Language: r.URL.Query().Get("language")}

	users, err := s.users.List(r.Context(), f)
	if err != nil {
		s.writeServiceError(w, r, err, codeDuplicateEmail)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
		Email     string `json:"email"`
		Language  string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeInvalidData, "invalid request body")
		return
	}

	u, err := s.users.Create(r.Context(), service.CreateUser{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Language:  req.Language,
	})
	if err != nil {
		s.writeServiceError(w, r, err, codeDuplicateEmail)
		return
	}
	s.writeJSON(w, http.StatusCreated, toUserResponse(u))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, codeDuplicateEmail)
		return
	}
	s.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Firstname *string `json:"firstname"`
		Lastname  *string `json:"lastname"`
		Email     *string `json:"email"`
		Language  *string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeInvalidData, "invalid request body")
		return
	}

	u, err := s.users.Update(r.Context(), id, model.UserUpdate{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Language:  req.Language,
	})
	if err != nil {
		s.writeServiceError(w, r, err, codeDuplicateEmail)
		return
	}
	s.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.users.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, codeDuplicateEmail)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
