// Package progress computes visit statistics, streaks and progress summaries
// from a user's check-in history.
package progress

import (
	"math"
	"sort"
	"time"

	"github.com/evcraddock/campus-explorer/internal/visit"
)

// Bucket sizes used by the report, in days back from today.
const (
	DaysToday = 0
	DaysWeek  = 7
	DaysMonth = 30
)

// DayCount is the number of visits on one local calendar date.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// UniqueLandmarksVisited counts distinct landmark names across visits.
func UniqueLandmarksVisited(visits []visit.Visit) int {
	seen := make(map[string]struct{}, len(visits))
	for _, v := range visits {
		seen[v.LandmarkName] = struct{}{}
	}
	return len(seen)
}

// TotalVisits returns the number of recorded visits, duplicates included.
func TotalVisits(visits []visit.Visit) int {
	return len(visits)
}

// CompletionPercentage returns unique*100/total rounded half-up to one decimal.
// A non-positive total yields 0.
func CompletionPercentage(unique, total int) float64 {
	if total <= 0 {
		return 0
	}
	return roundTenths(float64(unique) * 100.0 / float64(total))
}

func roundTenths(f float64) float64 {
	return math.Floor(f*10+0.5) / 10
}

// VisitsWithinDays counts visits strictly after local midnight of the date
// that is days before now's local date. days == 0 counts today only.
//
// The cutoff is derived from the calendar date so a DST change inside the
// window does not shift it by an hour.
func VisitsWithinDays(visits []visit.Visit, days int, now time.Time, loc *time.Location) int {
	local := now.In(loc)
	cutoff := time.Date(local.Year(), local.Month(), local.Day()-days, 0, 0, 0, 0, loc)

	count := 0
	for _, v := range visits {
		if v.VisitedAt.After(cutoff) {
			count++
		}
	}
	return count
}

// MostVisitedLandmark returns the landmark with the most visits and its count.
// Ties go to the landmark seen first. No visits returns ("", 0).
func MostVisitedLandmark(visits []visit.Visit) (string, int) {
	counts := make(map[string]int)
	var order []string
	for _, v := range visits {
		if _, ok := counts[v.LandmarkName]; !ok {
			order = append(order, v.LandmarkName)
		}
		counts[v.LandmarkName]++
	}

	name, best := "", 0
	for _, n := range order {
		if counts[n] > best {
			name, best = n, counts[n]
		}
	}
	return name, best
}

// LastVisitedAt returns the latest visit time, or nil with no visits.
// Input order does not matter.
func LastVisitedAt(visits []visit.Visit) *time.Time {
	var last *time.Time
	for i := range visits {
		t := visits[i].VisitedAt
		if last == nil || t.After(*last) {
			last = &t
		}
	}
	return last
}

// DailyCounts buckets visits by local calendar date, oldest first.
func DailyCounts(visits []visit.Visit, loc *time.Location) []DayCount {
	counts := make(map[time.Time]int)
	for _, v := range visits {
		counts[localDate(v.VisitedAt, loc)]++
	}

	dates := make([]time.Time, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make([]DayCount, 0, len(dates))
	for _, d := range dates {
		out = append(out, DayCount{Date: d.Format(dateLayout), Count: counts[d]})
	}
	return out
}
