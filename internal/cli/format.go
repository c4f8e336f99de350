package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/evcraddock/campus-explorer/internal/landmark"
	"github.com/evcraddock/campus-explorer/internal/progress"
	"github.com/evcraddock/campus-explorer/internal/visit"
)

const timeLayout = "2006-01-02 15:04"

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printLandmarkTable prints landmarks as a formatted table.
func printLandmarkTable(out io.Writer, landmarks []*landmark.Landmark) error {
	if len(landmarks) == 0 {
		fmt.Fprintln(out, "No landmarks found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "NAME\tLAT\tLON\tDESCRIPTION"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "----\t---\t---\t-----------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, l := range landmarks {
		desc := "-"
		if l.Description != "" {
			desc = truncate(l.Description, 40)
		}
		if _, err := fmt.Fprintf(w, "%s\t%.5f\t%.5f\t%s\n",
			truncate(l.Name, 40), l.Latitude, l.Longitude, desc); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d landmarks\n", len(landmarks))
	return nil
}

// printVisits prints visits oldest first in local time.
func printVisits(out io.Writer, visits []visit.Visit) error {
	if len(visits) == 0 {
		fmt.Fprintln(out, "No visits recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "WHEN\tLANDMARK\tID"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for _, v := range visits {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n",
			v.VisitedAt.Local().Format(timeLayout), truncate(v.LandmarkName, 40), v.ID); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	return w.Flush()
}

// printReport prints the progress report in text format.
func printReport(out io.Writer, r *progress.Report) error {
	fmt.Fprintf(out, "Progress for %s\n", r.Username)
	fmt.Fprintf(out, "  Landmarks:   %d of %d (%.1f%%)\n", r.UniqueLandmarks, r.TotalLandmarks, r.CompletionPercentage)
	fmt.Fprintf(out, "  Visits:      %d today, %d this week, %d this month, %d total\n",
		r.VisitsToday, r.VisitsThisWeek, r.VisitsThisMonth, r.TotalVisits)
	if r.MostVisitedLandmark != "" {
		fmt.Fprintf(out, "  Favourite:   %s (%d visits)\n", r.MostVisitedLandmark, r.MostVisitedCount)
	}
	fmt.Fprintf(out, "  Streak:      %s (longest %s)\n", days(r.CurrentStreak), days(r.LongestStreak))

	if len(r.History) == 0 {
		return nil
	}

	fmt.Fprintln(out, "\nRecent days:")
	history := r.History
	if len(history) > 14 {
		history = history[len(history)-14:]
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, d := range history {
		if _, err := fmt.Fprintf(w, "  %s\t%s\t%d\n", d.Date, bar(d.Count), d.Count); err != nil {
			return fmt.Errorf("writing history row: %w", err)
		}
	}
	return w.Flush()
}

// printSummary prints the progress summary in text format.
func printSummary(out io.Writer, s *progress.Summary) {
	fmt.Fprintf(out, "Visited:   %d of %d landmarks (%.1f%%)\n",
		s.VisitedCount(), s.TotalLandmarks(), s.CompletionPercent())
	if last := s.LastVisitedAt(); last != nil {
		fmt.Fprintf(out, "Last seen: %s (%s ago)\n", last.Local().Format(timeLayout), since(*last))
	} else {
		fmt.Fprintln(out, "Last seen: never")
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// bar renders a count as a run of blocks, capped at 20.
func bar(n int) string {
	if n > 20 {
		n = 20
	}
	return strings.Repeat("█", n)
}

// since renders a coarse elapsed duration.
func since(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "moments"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
// truncate shortens s to maxLen runes, ending in "...".
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
