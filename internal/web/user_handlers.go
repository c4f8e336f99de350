package web

import (
	"log/slog"
	"net/http"
)

type addUserRequest struct {
	Username string `json:"username" validate:"required"`
}

func (s *Server) apiListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List()
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, users, http.StatusOK)
}

func (s *Server) apiAddUser(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := s.users.Create(req.Username)
	if err != nil {
		apiFail(w, r, err)
		return
	}

	slog.Info("user added", "username", u.Username)
	apiJSON(w, u, http.StatusCreated)
}

func (s *Server) apiGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(usernameParam(r))
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, u, http.StatusOK)
}

func (s *Server) apiDeleteUser(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	if err := s.users.Delete(username); err != nil {
		apiFail(w, r, err)
		return
	}

	slog.Info("user removed", "username", username)
	apiJSON(w, map[string]interface{}{"username": username, "removed": true}, http.StatusOK)
}
