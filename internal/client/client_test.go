package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/evcraddock/campus-explorer/internal/clock"
	"github.com/evcraddock/campus-explorer/internal/db"
	"github.com/evcraddock/campus-explorer/internal/landmark"
	"github.com/evcraddock/campus-explorer/internal/visit"
	"github.com/evcraddock/campus-explorer/internal/web"
)

func TestListLandmarks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/landmarks" {
			t.Errorf("path = %q, want /api/landmarks", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]*landmark.Landmark{{ID: 1, Name: "Hart House"}}); err != nil {
			t.Errorf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	landmarks, err := c.ListLandmarks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(landmarks) != 1 || landmarks[0].Name != "Hart House" {
		t.Errorf("landmarks = %+v", landmarks)
	}
}

func TestGetLandmarkEscapesName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/landmarks/Robarts%20Library" {
			t.Errorf("escaped path = %q", r.URL.EscapedPath())
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(&landmark.Landmark{ID: 3, Name: "Robarts Library"}); err != nil {
			t.Errorf("encode: %v", err)
		}
	}))
	defer srv.Close()

	l, err := New(srv.URL).GetLandmark("Robarts Library")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if l.ID != 3 {
		t.Errorf("id = %d", l.ID)
	}
}

func TestCheckIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/api/users/alice/visits" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req struct{ Landmark string }
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Landmark != "Hart House" {
			t.Errorf("landmark = %q", req.Landmark)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(visit.Visit{ID: "v1", Username: "alice", LandmarkName: "Hart House"}); err != nil {
			t.Errorf("encode: %v", err)
		}
	}))
	defer srv.Close()

	v, err := New(srv.URL).CheckIn("alice", "Hart House")
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if v.ID != "v1" {
		t.Errorf("id = %q", v.ID)
	}
}

func TestUndo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/api/users/alice/visits/v1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := New(srv.URL).Undo("alice", "v1"); err != nil {
		t.Fatalf("undo: %v", err)
	}
}

func TestServerError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"json error", http.StatusNotFound, `{"error":"user not found: bob"}`, "user not found: bob"},
		{"plain error", http.StatusInternalServerError, "boom", "server error: Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Errorf("write: %v", err)
				}
			}))
			defer srv.Close()

			_, err := New(srv.URL).Progress("bob")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.status)
			}
			if apiErr.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if err := New(url).Health(); err == nil {
		t.Fatal("expected error for closed server")
	}
}

// TestAgainstServer drives the real API end to end.
func TestAgainstServer(t *testing.T) {
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if cerr := d.Close(); cerr != nil {
			t.Errorf("close db: %v", cerr)
		}
	})

	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(web.NewServer(d, clock.Fixed(now), time.UTC))
	defer srv.Close()
	c := New(srv.URL)

	if err := c.Health(); err != nil {
		t.Fatalf("health: %v", err)
	}
	if _, err := c.AddUser("Alice"); err != nil {
		t.Fatalf("add user: %v", err)
	}
	for _, name := range []string{"Robarts Library", "Hart House", "Sidney Smith Hall", "Bahen Centre"} {
		if _, err := c.AddLandmark(landmark.Input{Name: name, Latitude: 43.66, Longitude: -79.39}); err != nil {
			t.Fatalf("add landmark %s: %v", name, err)
		}
	}

	v, err := c.CheckIn("alice", "Robarts Library")
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if _, err := c.CheckIn("alice", "Hart House"); err != nil {
		t.Fatalf("check in: %v", err)
	}

	r, err := c.Progress("alice")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if r.UniqueLandmarks != 2 || r.CompletionPercentage != 50 || r.CurrentStreak != 1 {
		t.Errorf("report = %+v", r)
	}

	s, err := c.Summary("alice")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.VisitedCount() != 2 || s.TotalLandmarks() != 4 {
		t.Errorf("summary = %d/%d", s.VisitedCount(), s.TotalLandmarks())
	}

	if err := c.Undo("alice", v.ID); err != nil {
		t.Fatalf("undo: %v", err)
	}
	visits, err := c.ListVisits("alice")
	if err != nil {
		t.Fatalf("list visits: %v", err)
	}
	if len(visits) != 1 {
		t.Errorf("visits = %d, want 1", len(visits))
	}

	u, err := c.GetUser("alice")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if len(u.Visits) != 1 {
		t.Errorf("user visits = %d, want 1", len(u.Visits))
	}

	if err := c.DeleteLandmark("Bahen Centre"); err != nil {
		t.Fatalf("delete landmark: %v", err)
	}
	landmarks, err := c.ListLandmarks()
	if err != nil {
		t.Fatalf("list landmarks: %v", err)
	}
	if len(landmarks) != 3 {
		t.Errorf("landmarks = %d, want 3", len(landmarks))
	}

	if err := c.DeleteUser("alice"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	users, err := c.ListUsers()
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("users = %d, want 0", len(users))
	}

	var apiErr *APIError
	if _, err := c.Progress("alice"); !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("progress for deleted user err = %v, want 404", err)
	}
}
