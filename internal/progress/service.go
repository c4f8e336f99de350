package progress

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/evcraddock/campus-explorer/internal/clock"
	"github.com/evcraddock/campus-explorer/internal/user"
)

// UserSource resolves a username to the user and their visits.
// It returns an error wrapping user.ErrNotFound for unknown users.
type UserSource interface {
	Get(username string) (*user.User, error)
}

// LandmarkCounter reports the size of the landmark catalog.
type LandmarkCounter interface {
	Count() (int, error)
}

// Service answers progress queries for a user.
type Service struct {
	users     UserSource
	landmarks LandmarkCounter
	clock     clock.Clock
	loc       *time.Location
}

// NewService creates a progress service. Day boundaries are taken in loc.
func NewService(users UserSource, landmarks LandmarkCounter, clk clock.Clock, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{users: users, landmarks: landmarks, clock: clk, loc: loc}
}

// Location returns the zone used for day boundaries.
func (s *Service) Location() *time.Location {
	return s.loc
}

// MyProgress builds the full statistics report for username.
func (s *Service) MyProgress(username string) (*Report, error) {
	u, total, err := s.load(username)
	if err != nil {
		return nil, err
	}

	r := BuildReport(u.Username, u.Visits, total, s.clock.Now(), s.loc)
	slog.Debug("progress report built",
		"username", u.Username,
		"visits", r.TotalVisits,
		"current_streak", r.CurrentStreak,
	)
	return r, nil
}

// ViewProgress builds the summary snapshot for username. It fails with
// ErrInvalidSummary when the catalog is empty.
func (s *Service) ViewProgress(username string) (*Summary, error) {
	u, total, err := s.load(username)
	if err != nil {
		return nil, err
	}

	return NewSummary(UniqueLandmarksVisited(u.Visits), total, LastVisitedAt(u.Visits))
}

func (s *Service) load(username string) (*user.User, int, error) {
	u, err := s.users.Get(username)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.landmarks.Count()
	if err != nil {
		return nil, 0, fmt.Errorf("counting landmarks: %w", err)
	}

	return u, total, nil
}
