package progress

import (
	"time"

	"github.com/evcraddock/campus-explorer/internal/visit"
)

// Report is the full "My Progress" view for one user.
type Report struct {
	Username             string     `json:"username"`
	UniqueLandmarks      int        `json:"unique_landmarks"`
	TotalLandmarks       int        `json:"total_landmarks"`
	CompletionPercentage float64    `json:"completion_percentage"`
	VisitsToday          int        `json:"visits_today"`
	VisitsThisWeek       int        `json:"visits_this_week"`
	VisitsThisMonth      int        `json:"visits_this_month"`
	TotalVisits          int        `json:"total_visits"`
	MostVisitedLandmark  string     `json:"most_visited_landmark"`
	MostVisitedCount     int        `json:"most_visited_count"`
	CurrentStreak        int        `json:"current_streak"`
	LongestStreak        int        `json:"longest_streak"`
	History              []DayCount `json:"history"`
	GeneratedAt          time.Time  `json:"generated_at"`
}

// BuildReport computes every statistic for visits as of now in loc.
// A nil visits slice is treated as no visits.
func BuildReport(username string, visits []visit.Visit, totalLandmarks int, now time.Time, loc *time.Location) *Report {
	unique := UniqueLandmarksVisited(visits)
	name, count := MostVisitedLandmark(visits)

	return &Report{
		Username:             username,
		UniqueLandmarks:      unique,
		TotalLandmarks:       totalLandmarks,
		CompletionPercentage: CompletionPercentage(unique, totalLandmarks),
		VisitsToday:          VisitsWithinDays(visits, DaysToday, now, loc),
		VisitsThisWeek:       VisitsWithinDays(visits, DaysWeek, now, loc),
		VisitsThisMonth:      VisitsWithinDays(visits, DaysMonth, now, loc),
		TotalVisits:          TotalVisits(visits),
		MostVisitedLandmark:  name,
		MostVisitedCount:     count,
		CurrentStreak:        CurrentStreak(visits, now, loc),
		LongestStreak:        LongestStreak(visits, loc),
		History:              DailyCounts(visits, loc),
		GeneratedAt:          now.UTC(),
	}
}
