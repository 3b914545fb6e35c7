package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/avelines/moviedesk/internal/model"
	"github.com/avelines/moviedesk/internal/service"
	"github.com/gofrs/uuid/v5"
)

type movieResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Director string `json:"director"`
	Year     string `json:"year"`
	Color    int    `json:"color"`
	Duration int    `json:"duration"`
}

func toMovieResponse(m model.Movie) movieResponse {
	return movieResponse{
		ID:       m.ID.String(),
		Title:    m.Title,
		Director: m.Director,
		Year:     m.Year,
		Color:    m.Color,
		Duration: m.Duration,
	}
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	var f model.MovieFilter
	q := r.URL.Query()
	if v := q.Get("color"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, codeInvalidData, "color must be an integer")
			return
		}
		f.Color = &n
	}
	if v := q.Get("max_duration"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, codeInvalidData, "max_duration must be an integer")
			return
		}
		f.MaxDuration = &n
	}

	movies, err := s.movies.List(r.Context(), f)
	if err != nil {
		s.writeServiceError(w, r, err, codeDuplicateEntry)
		return
	}
	out := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieResponse(m))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string `json:"title"`
		Director string `json:"director"`
		Year     string `json:"year"`
		Color    *int   `json:"color"`
		Duration *int   `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeInvalidData, "invalid request body")
		return
	}

	m, err := s.movies.Create(r.Context(), service.CreateMovie{
		Title:    req.Title,
		Director: req.Director,
		Year:     req.Year,
		Color:    req.Color,
		Duration: req.Duration,
	})
	if err != nil {
		s.writeServiceError(w, r, err, codeDuplicateEntry)
		return
	}
	s.writeJSON(w, http.StatusCreated, toMovieResponse(m))
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	m, err := s.movies.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, codeDuplicateEntry)
		return
	}
	s.writeJSON(w, http.StatusOK, toMovieResponse(m))
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Title    *string `json:"title"`
		Director *string `json:"director"`
		Year     *string `json:"year"`
		Color    *int    `json:"color"`
		Duration *int    `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, codeInvalidData, "invalid request body")
		return
	}

	m, err := s.movies.Update(r.Context(), id, model.MovieUpdate{
		Title:    req.Title,
		Director: req.Director,
		Year:     req.Year,
		Color:    req.Color,
		Duration: req.Duration,
	})
	if err != nil {
		s.writeServiceError(w, r, err, codeDuplicateEntry)
		return
	}
	s.writeJSON(w, http.StatusOK, toMovieResponse(m))
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.movies.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, codeDuplicateEntry)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment. A malformed identifier cannot name a
// record, so it answers 404 rather than 400.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, codeRecordNotFound, "record not found")
		return uuid.Nil, false
	}
	return id, true
}
