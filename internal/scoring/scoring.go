// Package scoring turns solve and review events into updated gamification
// state: XP, level, streak and badges.
package scoring

import (
	"fmt"

	"algopulse/internal/models"
)

const (
	// XPPerLevel is the size of the fixed level staircase.
	XPPerLevel = 200

	// ReviewXP is the flat grant for any review, independent of ease tier.
	ReviewXP = 10
)

// xpValues is the fixed XP table keyed by difficulty.
var xpValues = map[models.Difficulty]int{
	models.DifficultyEasy:   15,
	models.DifficultyMedium: 40,
	models.DifficultyHard:   100,
}

// XPForDifficulty looks up the solve XP for a difficulty.
func XPForDifficulty(d models.Difficulty) (int, error) {
	xp, ok := xpValues[d]
	if !ok {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidDifficulty, d)
	}
	return xp, nil
}

// LevelForXP derives the level from total XP. Recomputed from scratch on
// every XP change so it stays correct under any adjustment path.
func LevelForXP(xp int) int {
	return xp/XPPerLevel + 1
}

// RecordSolve applies a solve event to the current stats and returns the
// updated aggregate plus any newly awarded badges. The input is not
// mutated; the caller persists the result and appends the problem to the
// collection.
func RecordSolve(stats models.UserStats, problem models.Problem, today models.Date) (models.UserStats, []models.BadgeID, error) {
	xpGain, err := XPForDifficulty(problem.Difficulty)
	if err != nil {
		return stats, nil, err
	}

	updated := stats
	updated.XP = stats.XP + xpGain
	updated.Level = LevelForXP(updated.XP)

	// A second solve on the same day must not double-increment the streak.
	switch {
	case stats.LastSolveDate != nil && stats.LastSolveDate.Equal(today):
		updated.Streak = stats.Streak
	case stats.LastSolveDate != nil && stats.LastSolveDate.Equal(today.AddDays(-1)):
		updated.Streak = stats.Streak + 1
	default:
		updated.Streak = 1
	}

	updated.Badges = make([]models.BadgeID, len(stats.Badges))
	copy(updated.Badges, stats.Badges)

	var awarded []models.BadgeID
	award := func(id models.BadgeID) {
		if updated.HasBadge(id) {
			return
		}
		updated.Badges = append(updated.Badges, id)
		awarded = append(awarded, id)
	}

	if stats.TotalSolved == 0 {
		award(models.BadgeFirstSolve)
	}
	if updated.Streak == 3 {
		award(models.BadgeStreak3)
	}
	if updated.Streak == 7 {
		award(models.BadgeStreak7)
	}
	if problem.Difficulty == models.DifficultyHard {
		award(models.BadgeHardHitter)
	}

	updated.TotalSolved = stats.TotalSolved + 1
	solveDate := today
	updated.LastSolveDate = &solveDate

	return updated, awarded, nil
}

// RecordReviewXP applies the flat review grant. Streak and badges are not
// re-evaluated; the level is re-derived so it never drifts from the XP.
func RecordReviewXP(stats models.UserStats) models.UserStats {
	updated := stats
	updated.XP = stats.XP + ReviewXP
	updated.Level = LevelForXP(updated.XP)
	return updated
}
