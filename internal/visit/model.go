// Package visit provides the check-in domain model and data access.
package visit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a visit does not exist for the user.
	ErrNotFound = errors.New("visit not found")

	// ErrInvalid is returned for a visit missing its landmark or time.
	ErrInvalid = errors.New("invalid visit")
)

// Visit is one check-in by a user at a named landmark.
// Visits are never edited; a correction is an undo plus a new check-in.
type Visit struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	LandmarkName string    `json:"landmark"`
	VisitedAt    time.Time `json:"visited_at"`
}

// New builds a visit with a generated ID. The time is stored in UTC.
func New(username, landmarkName string, visitedAt time.Time) (Visit, error) {
	return NewWithID(uuid.NewString(), username, landmarkName, visitedAt)
}

// NewWithID builds a visit with a caller-supplied ID.
func NewWithID(id, username, landmarkName string, visitedAt time.Time) (Visit, error) {
	landmarkName = strings.TrimSpace(landmarkName)
	switch {
	case strings.TrimSpace(id) == "":
		return Visit{}, fmt.Errorf("%w: id is required", ErrInvalid)
	case landmarkName == "":
		return Visit{}, fmt.Errorf("%w: landmark is required", ErrInvalid)
	case visitedAt.IsZero():
		return Visit{}, fmt.Errorf("%w: visit time is required", ErrInvalid)
	}

	return Visit{
		ID:           id,
		Username:     username,
		LandmarkName: landmarkName,
		VisitedAt:    visitedAt.UTC(),
	}, nil
}
