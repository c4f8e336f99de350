package visit

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/evcraddock/campus-explorer/internal/clock"
)

var (
	// ErrUnknownUser is returned when checking in for a user that does not exist.
	ErrUnknownUser = errors.New("unknown user")

	// ErrUnknownLandmark is returned when checking in at a landmark not in the catalog.
	ErrUnknownLandmark = errors.New("unknown landmark")
)

// Checker reports whether a named record exists.
type Checker interface {
	Exists(name string) (bool, error)
}

// EventKind says what happened to a visit.
type EventKind string

const (
	CheckedIn EventKind = "checked_in"
	Undone    EventKind = "undone"
)

// Event is delivered to listeners after a visit is recorded or removed.
type Event struct {
	Kind  EventKind
	Visit Visit
}

// Listener receives visit events. It runs on the caller's goroutine and
// must not block.
type Listener func(Event)

// Service records and undoes check-ins.
type Service struct {
	repo      *Repository
	users     Checker
	landmarks Checker
	clock     clock.Clock

	mu        sync.RWMutex
	listeners []Listener
}

// NewService creates a check-in service.
func NewService(repo *Repository, users, landmarks Checker, clk clock.Clock) *Service {
	return &Service{repo: repo, users: users, landmarks: landmarks, clock: clk}
}

// Subscribe registers a listener for future events.
func (s *Service) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// normalizeUsername matches the users table, which stores names trimmed and
// lowercased. It mirrors user.Normalize; user imports this package.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// CheckIn records a visit by username at landmarkName, timestamped now.
func (s *Service) CheckIn(username, landmarkName string) (Visit, error) {
	username = normalizeUsername(username)
	ok, err := s.users.Exists(username)
	if err != nil {
		return Visit{}, fmt.Errorf("checking user: %w", err)
	}
	if !ok {
		return Visit{}, fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}

	v, err := New(username, landmarkName, s.clock.Now())
	if err != nil {
		return Visit{}, err
	}

	ok, err = s.landmarks.Exists(v.LandmarkName)
	if err != nil {
		return Visit{}, fmt.Errorf("checking landmark: %w", err)
	}
	if !ok {
		return Visit{}, fmt.Errorf("%w: %s", ErrUnknownLandmark, v.LandmarkName)
	}

	if err := s.repo.Add(v); err != nil {
		return Visit{}, err
	}

	slog.Info("visit recorded", "username", username, "landmark", v.LandmarkName, "id", v.ID)
	s.publish(Event{Kind: CheckedIn, Visit: v})
	return v, nil
}

// Undo removes one of the user's visits.
func (s *Service) Undo(username, id string) error {
	username = normalizeUsername(username)
	if err := s.repo.Delete(username, id); err != nil {
		return err
	}

	slog.Info("visit undone", "username", username, "id", id)
	s.publish(Event{Kind: Undone, Visit: Visit{ID: id, Username: username}})
	return nil
}

// List returns a user's visits in insertion order.
func (s *Service) List(username string) ([]Visit, error) {
	username = normalizeUsername(username)
	ok, err := s.users.Exists(username)
	if err != nil {
		return nil, fmt.Errorf("checking user: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}
	return s.repo.ListByUsername(username)
}

func (s *Service) publish(e Event) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(e)
	}
}
