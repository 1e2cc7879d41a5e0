// Package queries derives read-side views over the problem collection.
// Every aggregation is pure and recomputed on demand from the full
// collection; at a single user's lifetime scale there is nothing to index.
package queries

import (
	"sort"

	"algopulse/internal/models"
	"algopulse/internal/scoring"
)

// VelocityWindowDays is the width of the rolling solve-velocity window.
const VelocityWindowDays = 7

// RecentActivityLimit caps the recent-activity view.
const RecentActivityLimit = 5

// DueQueue returns the problems whose scheduled review date has arrived or
// passed, earliest-due first. The sort is stable: ties keep the
// collection's order.
func DueQueue(problems []models.Problem, today models.Date) []models.Problem {
	due := make([]models.Problem, 0)
	for _, p := range problems {
		if !p.NextReviewDate.After(today) {
			due = append(due, p)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].NextReviewDate.Before(due[j].NextReviewDate)
	})

	return due
}

// DueCount returns the size of the due queue without materializing it.
func DueCount(problems []models.Problem, today models.Date) int {
	count := 0
	for _, p := range problems {
		if !p.NextReviewDate.After(today) {
			count++
		}
	}
	return count
}

// DifficultyCounts partitions the collection into the three difficulty
// buckets. Zero buckets are retained here; chart output drops them.
func DifficultyCounts(problems []models.Problem) models.DifficultySummary {
	var summary models.DifficultySummary
	for _, p := range problems {
		switch p.Difficulty {
		case models.DifficultyEasy:
			summary.Easy++
		case models.DifficultyMedium:
			summary.Medium++
		case models.DifficultyHard:
			summary.Hard++
		}
	}
	return summary
}

// DifficultyChartData returns the non-empty difficulty buckets for the
// distribution chart.
func DifficultyChartData(problems []models.Problem) []models.DifficultyCount {
	summary := DifficultyCounts(problems)

	data := make([]models.DifficultyCount, 0, 3)
	for _, bucket := range []models.DifficultyCount{
		{Difficulty: models.DifficultyEasy, Count: summary.Easy},
		{Difficulty: models.DifficultyMedium, Count: summary.Medium},
		{Difficulty: models.DifficultyHard, Count: summary.Hard},
	} {
		if bucket.Count > 0 {
			data = append(data, bucket)
		}
	}
	return data
}

// CategoryBreakdown groups the collection by its open-ended category
// strings, counts descending, ties broken by first-seen order.
func CategoryBreakdown(problems []models.Problem) []models.CategoryCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := make([]string, 0)

	for i, p := range problems {
		if _, seen := counts[p.Category]; !seen {
			firstSeen[p.Category] = i
			order = append(order, p.Category)
		}
		counts[p.Category]++
	}

	breakdown := make([]models.CategoryCount, 0, len(order))
	for _, cat := range order {
		breakdown = append(breakdown, models.CategoryCount{Category: cat, Count: counts[cat]})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return firstSeen[breakdown[i].Category] < firstSeen[breakdown[j].Category]
	})

	return breakdown
}

// WeeklyVelocity returns the last seven calendar days, oldest first and
// today inclusive, with the solve count and XP earned on each day. Days
// without solves report zero; the window is always exactly seven points.
func WeeklyVelocity(problems []models.Problem, today models.Date) []models.DailyProgress {
	window := make([]models.DailyProgress, 0, VelocityWindowDays)

	for offset := VelocityWindowDays - 1; offset >= 0; offset-- {
		day := today.AddDays(-offset)
		point := models.DailyProgress{
			Date:  day,
			Label: day.Time().Format("Mon"),
		}
		for _, p := range problems {
			if p.DateSolved.Equal(day) {
				point.Count++
				if xp, err := scoring.XPForDifficulty(p.Difficulty); err == nil {
					point.XPEarned += xp
				}
			}
		}
		window = append(window, point)
	}

	return window
}

// RecentActivity returns the most recently logged problems, newest first.
// The collection is kept newest-first (creation prepends), so this is a
// plain prefix.
func RecentActivity(problems []models.Problem) []models.Problem {
	n := RecentActivityLimit
	if len(problems) < n {
		n = len(problems)
	}
	recent := make([]models.Problem, n)
	copy(recent, problems[:n])
	return recent
}
