package web

import (
	"net/http"
	"testing"

	"github.com/evcraddock/campus-explorer/internal/user"
)

func TestAPIAddUser(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "POST", "/api/users", map[string]string{"username": "  Alice "})
	expectStatus(t, w, http.StatusCreated)

	var u user.User
	decode(t, w, &u)
	if u.Username != "alice" {
		t.Errorf("username = %q, want alice", u.Username)
	}
	if u.Visits == nil || len(u.Visits) != 0 {
		t.Errorf("visits = %v, want empty", u.Visits)
	}

	w = apiRequest(t, srv, "POST", "/api/users", map[string]string{"username": "ALICE"})
	expectStatus(t, w, http.StatusConflict)

	w = apiRequest(t, srv, "POST", "/api/users", map[string]string{"username": ""})
	expectStatus(t, w, http.StatusBadRequest)
}

func TestAPIListUsers(t *testing.T) {
	srv := testServer(t)
	seedUser(t, srv, "bob")
	seedUser(t, srv, "alice")

	w := apiRequest(t, srv, "GET", "/api/users", nil)
	expectStatus(t, w, http.StatusOK)

	var users []user.User
	decode(t, w, &users)
	if len(users) != 2 || users[0].Username != "alice" {
		t.Errorf("users = %+v, want alice then bob", users)
	}
}

func TestAPIGetUser(t *testing.T) {
	srv := testServer(t)
	seedUser(t, srv, "alice")
	seedLandmark(t, srv, "Hart House")

	w := apiRequest(t, srv, "POST", "/api/users/alice/visits", map[string]string{"landmark": "Hart House"})
	expectStatus(t, w, http.StatusCreated)

	w = apiRequest(t, srv, "GET", "/api/users/Alice", nil)
	expectStatus(t, w, http.StatusOK)
	var u user.User
	decode(t, w, &u)
	if len(u.Visits) != 1 || u.Visits[0].LandmarkName != "Hart House" {
		t.Errorf("visits = %+v", u.Visits)
	}

	w = apiRequest(t, srv, "GET", "/api/users/nobody", nil)
	expectStatus(t, w, http.StatusNotFound)
}

func TestAPIDeleteUser(t *testing.T) {
	srv := testServer(t)
	seedUser(t, srv, "alice")

	w := apiRequest(t, srv, "DELETE", "/api/users/alice", nil)
	expectStatus(t, w, http.StatusOK)

	w = apiRequest(t, srv, "DELETE", "/api/users/alice", nil)
	expectStatus(t, w, http.StatusNotFound)
}
