package progress

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/evcraddock/campus-explorer/internal/visit"
)

// toronto returns the zone used throughout these tests.
func toronto(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

// at builds a local time in loc.
func at(loc *time.Location, year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, loc)
}

// testNow is 2024-06-15 18:00 local.
func testNow(loc *time.Location) time.Time {
	return at(loc, 2024, time.June, 15, 18, 0)
}

func mkVisit(t *testing.T, landmark string, when time.Time) visit.Visit {
	t.Helper()
	v, err := visit.New("alice", landmark, when)
	if err != nil {
		t.Fatalf("new visit: %v", err)
	}
	return v
}

// onDays builds one visit per June day at noon, each at its own landmark.
func onDays(t *testing.T, loc *time.Location, days ...int) []visit.Visit {
	t.Helper()
	var visits []visit.Visit
	for _, d := range days {
		visits = append(visits, mkVisit(t, landmarkName(d), at(loc, 2024, time.June, d, 12, 0)))
	}
	return visits
}

func landmarkName(day int) string {
	return time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC).Format("Landmark Jan 2")
}
