package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/evcraddock/campus-explorer/internal/clock"
	"github.com/evcraddock/campus-explorer/internal/db"
)

var testNow = time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)

func testServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if cerr := d.Close(); cerr != nil {
			t.Errorf("close db: %v", cerr)
		}
	})
	return NewServer(d, clock.Fixed(testNow), time.UTC)
}

func apiRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	reqBody := &bytes.Buffer{}
	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			t.Fatalf("marshal body: %v", err)
		}
	}

	r := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}

func seedLandmark(t *testing.T, srv *Server, name string) {
	t.Helper()
	w := apiRequest(t, srv, "POST", "/api/landmarks", map[string]interface{}{
		"name": name, "latitude": 43.66, "longitude": -79.39,
	})
	expectStatus(t, w, http.StatusCreated)
}

func seedUser(t *testing.T, srv *Server, username string) {
	t.Helper()
	w := apiRequest(t, srv, "POST", "/api/users", map[string]string{"username": username})
	expectStatus(t, w, http.StatusCreated)
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/health", nil)
	expectStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q, want application/json", ct)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q, want status ok", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/metrics", nil)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "campus_checkins_total") {
		t.Error("expected check-in counter in metrics output")
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := testServer(t)

	w := apiRequest(t, srv, "GET", "/api/nope", nil)
	expectStatus(t, w, http.StatusNotFound)
	if !strings.Contains(w.Body.String(), `"error"`) {
		t.Errorf("body = %q, want JSON error", w.Body.String())
	}

	w = apiRequest(t, srv, "PATCH", "/api/landmarks", nil)
	expectStatus(t, w, http.StatusMethodNotAllowed)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv := testServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.ListenAndServe(ctx, "127.0.0.1:0")
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
