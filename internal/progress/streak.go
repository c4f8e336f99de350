package progress

import (
	"sort"
	"time"

	"github.com/evcraddock/campus-explorer/internal/visit"
)

const dateLayout = "2006-01-02"

// localDate returns the calendar date of t in loc, as midnight UTC.
// Dates in UTC have no DST, so AddDate(0, 0, 1) always means "next day".
func localDate(t time.Time, loc *time.Location) time.Time {
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC)
}

// visitDates returns the set of local dates with at least one visit.
func visitDates(visits []visit.Visit, loc *time.Location) map[time.Time]struct{} {
	dates := make(map[time.Time]struct{}, len(visits))
	for _, v := range visits {
		dates[localDate(v.VisitedAt, loc)] = struct{}{}
	}
	return dates
}

// CurrentStreak counts consecutive visit days ending today, or ending
// yesterday when there is no visit yet today. It is 0 when neither day has
// a visit.
func CurrentStreak(visits []visit.Visit, now time.Time, loc *time.Location) int {
	dates := visitDates(visits, loc)

	day := localDate(now, loc)
	if _, ok := dates[day]; !ok {
		day = day.AddDate(0, 0, -1)
		if _, ok := dates[day]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := dates[day]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// LongestStreak returns the longest run of consecutive visit days.
func LongestStreak(visits []visit.Visit, loc *time.Location) int {
	set := visitDates(visits, loc)
	if len(set) == 0 {
		return 0
	}

	dates := make([]time.Time, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
