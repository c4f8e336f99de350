// Package client provides an HTTP client for the campus explorer API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evcraddock/campus-explorer/internal/landmark"
	"github.com/evcraddock/campus-explorer/internal/progress"
	"github.com/evcraddock/campus-explorer/internal/user"
	"github.com/evcraddock/campus-explorer/internal/visit"
)

// Client is an HTTP client for the campus explorer API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Health checks that the server is up.
func (c *Client) Health() error {
	return c.get("/health", nil)
}

// ListLandmarks returns the catalog sorted by name.
func (c *Client) ListLandmarks() ([]*landmark.Landmark, error) {
	var landmarks []*landmark.Landmark
	if err := c.get("/api/landmarks", &landmarks); err != nil {
		return nil, err
	}
	return landmarks, nil
}

// GetLandmark returns one landmark by name.
func (c *Client) GetLandmark(name string) (*landmark.Landmark, error) {
	var l landmark.Landmark
	if err := c.get("/api/landmarks/"+url.PathEscape(name), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// AddLandmark adds a landmark to the catalog.
func (c *Client) AddLandmark(in landmark.Input) (*landmark.Landmark, error) {
	var l landmark.Landmark
	if err := c.post("/api/landmarks", in, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// DeleteLandmark removes a landmark and every visit to it.
func (c *Client) DeleteLandmark(name string) error {
	return c.doDelete("/api/landmarks/" + url.PathEscape(name))
}

// ListUsers returns all users without their visits.
func (c *Client) ListUsers() ([]*user.User, error) {
	var users []*user.User
	if err := c.get("/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns a user with their visit history.
func (c *Client) GetUser(username string) (*user.User, error) {
	var u user.User
	if err := c.get(userPath(username, ""), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// AddUser creates a user.
func (c *Client) AddUser(username string) (*user.User, error) {
	body := map[string]string{"username": username}
	var u user.User
	if err := c.post("/api/users", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes a user and their visits.
func (c *Client) DeleteUser(username string) error {
	return c.doDelete(userPath(username, ""))
}

// ListVisits returns a user's visits in the order they were recorded.
func (c *Client) ListVisits(username string) ([]visit.Visit, error) {
	var visits []visit.Visit
	if err := c.get(userPath(username, "/visits"), &visits); err != nil {
		return nil, err
	}
	return visits, nil
}

// CheckIn records a visit at landmarkName now.
func (c *Client) CheckIn(username, landmarkName string) (*visit.Visit, error) {
	body := map[string]string{"landmark": landmarkName}
	var v visit.Visit
	if err := c.post(userPath(username, "/visits"), body, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Undo removes one of the user's visits.
func (c *Client) Undo(username, id string) error {
	return c.doDelete(userPath(username, "/visits/"+url.PathEscape(id)))
}

// Progress returns the full statistics report.
func (c *Client) Progress(username string) (*progress.Report, error) {
	var r progress.Report
	if err := c.get(userPath(username, "/progress"), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Summary returns the validated progress summary.
func (c *Client) Summary(username string) (*progress.Summary, error) {
	var s progress.Summary
	if err := c.get(userPath(username, "/summary"), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func userPath(username, suffix string) string {
	return "/api/users/" + url.PathEscape(username) + suffix
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(path string) error {
	req, err := http.NewRequest("DELETE", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		msg := fmt.Sprintf("server error: %s", http.StatusText(resp.StatusCode))
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
