package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/evcraddock/campus-explorer/internal/validation"
)

// ErrInvalidSummary is returned when summary inputs are inconsistent.
var ErrInvalidSummary = errors.New("invalid progress summary")

type summaryInput struct {
	VisitedCount   int `validate:"gte=0,ltefield=TotalLandmarks"`
	TotalLandmarks int `validate:"gt=0"`
}

// Summary is a validated snapshot of how much of the campus a user has seen.
// It cannot be changed after NewSummary returns.
type Summary struct {
	visitedCount      int
	totalLandmarks    int
	completionPercent float64
	lastVisitedAt     *time.Time
}

// NewSummary validates the counts and computes the completion percentage.
// visitedCount must be in [0, totalLandmarks] and totalLandmarks must be
// positive; out-of-range values are rejected, never clamped.
func NewSummary(visitedCount, totalLandmarks int, lastVisitedAt *time.Time) (*Summary, error) {
	in := summaryInput{VisitedCount: visitedCount, TotalLandmarks: totalLandmarks}
	if err := validation.Struct(&in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSummary, err)
	}

	s := &Summary{
		visitedCount:      visitedCount,
		totalLandmarks:    totalLandmarks,
		completionPercent: float64(visitedCount) * 100.0 / float64(totalLandmarks),
	}
	if lastVisitedAt != nil {
		t := lastVisitedAt.UTC()
		s.lastVisitedAt = &t
	}
	return s, nil
}

// VisitedCount is the number of distinct landmarks visited.
func (s *Summary) VisitedCount() int { return s.visitedCount }

// TotalLandmarks is the catalog size.
func (s *Summary) TotalLandmarks() int { return s.totalLandmarks }

// CompletionPercent is VisitedCount*100/TotalLandmarks, unrounded.
func (s *Summary) CompletionPercent() float64 { return s.completionPercent }

// LastVisitedAt returns the most recent visit time, or nil.
func (s *Summary) LastVisitedAt() *time.Time {
	if s.lastVisitedAt == nil {
		return nil
	}
	t := *s.lastVisitedAt
	return &t
}

// HasVisits reports whether any landmark has been visited.
func (s *Summary) HasVisits() bool { return s.visitedCount > 0 }

type summaryJSON struct {
	VisitedCount      int        `json:"visited_count"`
	TotalLandmarks    int        `json:"total_landmarks"`
	CompletionPercent float64    `json:"completion_percent"`
	LastVisitedAt     *time.Time `json:"last_visited_at"`
	HasVisits         bool       `json:"has_visits"`
}

// MarshalJSON implements json.Marshaler.
func (s *Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(summaryJSON{
		VisitedCount:      s.visitedCount,
		TotalLandmarks:    s.totalLandmarks,
		CompletionPercent: s.completionPercent,
		LastVisitedAt:     s.lastVisitedAt,
		HasVisits:         s.HasVisits(),
	})
}

// UnmarshalJSON rebuilds a summary through NewSummary so decoded values are
// held to the same rules.
func (s *Summary) UnmarshalJSON(data []byte) error {
	var raw summaryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := NewSummary(raw.VisitedCount, raw.TotalLandmarks, raw.LastVisitedAt)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}
