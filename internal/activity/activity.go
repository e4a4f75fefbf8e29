// Package activity turns raw commit timestamps into a per-day series.
package activity

import (
	"sort"
	"strings"

	"github.com/itsanimesh04/DevMetrics/internal/models"
)

// DailyCounts groups ISO-8601 timestamps by the date part (everything before
// the first "T") and returns one point per date, sorted ascending. Days with no
// commits are absent. The result is never nil.
func DailyCounts(timestamps []string) []models.CommitActivityPoint {
	counts := make(map[string]int)
	for _, ts := range timestamps {
		ts = strings.TrimSpace(ts)
		if ts == "" {
			continue
		}
		date, _, _ := strings.Cut(ts, "T")
		counts[date]++
	}

	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	// YYYY-MM-DD sorts chronologically as a string
	sort.Strings(dates)

	points := make([]models.CommitActivityPoint, 0, len(dates))
	for _, date := range dates {
		points = append(points, models.CommitActivityPoint{
			Date:    date,
			Commits: counts[date],
		})
	}
	return points
}
