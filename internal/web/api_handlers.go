package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/campus-explorer/internal/landmark"
	"github.com/evcraddock/campus-explorer/internal/progress"
	"github.com/evcraddock/campus-explorer/internal/user"
	"github.com/evcraddock/campus-explorer/internal/validation"
	"github.com/evcraddock/campus-explorer/internal/visit"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("encoding error response", "error", err)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// apiFail maps a domain error to its HTTP status and writes it.
func apiFail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr), errors.Is(err, visit.ErrInvalid):
		apiError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, landmark.ErrNotFound),
		errors.Is(err, visit.ErrNotFound),
		errors.Is(err, visit.ErrUnknownUser),
		errors.Is(err, visit.ErrUnknownLandmark):
		apiError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, user.ErrExists), errors.Is(err, landmark.ErrExists):
		apiError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, progress.ErrInvalidSummary):
		apiError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		apiError(w, "internal server error", http.StatusInternalServerError)
	}
}

// decodeBody decodes a JSON request body into dst and validates it.
// It writes the error response and returns false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	if err := validation.Struct(dst); err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// pathParam returns a decoded URL parameter. Escaped slashes in landmark
// names arrive still encoded.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// usernameParam returns the normalized {username} parameter.
func usernameParam(r *http.Request) string {
	return user.Normalize(pathParam(r, "username"))
}

func (s *Server) apiListLandmarks(w http.ResponseWriter, r *http.Request) {
	landmarks, err := s.landmarks.List()
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, landmarks, http.StatusOK)
}

func (s *Server) apiAddLandmark(w http.ResponseWriter, r *http.Request) {
	var in landmark.Input
	if !decodeBody(w, r, &in) {
		return
	}

	l, err := s.landmarks.Add(in)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	slog.Info("landmark added", "name", l.Name)
	apiJSON(w, l, http.StatusCreated)
}

func (s *Server) apiGetLandmark(w http.ResponseWriter, r *http.Request) {
	l, err := s.landmarks.GetByName(pathParam(r, "name"))
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, l, http.StatusOK)
}

func (s *Server) apiDeleteLandmark(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	if err := s.landmarks.Delete(name); err != nil {
		apiFail(w, r, err)
		return
	}

	slog.Info("landmark removed", "name", name)
	apiJSON(w, map[string]interface{}{"name": name, "removed": true}, http.StatusOK)
}
