// Package scheduler computes the spaced-repetition review schedule. The
// model is a simplified ease-factor ladder: the interval grows with the
// repetition count, scaled by the problem's ease factor and the
// caller-supplied adjustment tier.
package scheduler

import (
	"math"

	"algopulse/internal/models"
)

// Ease-adjustment tiers offered at review time. The scheduler itself
// accepts any positive multiplier; the closed set is a form-boundary
// concern.
const (
	AdjustCritical = 0.7
	AdjustStable   = 1.1
	AdjustMastered = 1.4
)

// NextInterval returns the number of days until the next review, never
// less than one day.
func NextInterval(reviewCount int, easeFactor, adjustment float64) int {
	interval := int(math.Round(float64(reviewCount) * easeFactor * adjustment))
	if interval < 1 {
		return 1
	}
	return interval
}

// RecordReview applies a review outcome to a problem and returns the
// updated copy. Reviews are accepted at any time, including before the
// scheduled date; due-date gating belongs to the queue view.
//
// The ease factor is deliberately left untouched: the current product
// rules only ever read it. Tier-driven ease mutation is an open product
// decision, not something to sneak in here.
func RecordReview(problem models.Problem, adjustment float64, today models.Date) models.Problem {
	updated := problem
	updated.NextReviewDate = today.AddDays(NextInterval(problem.ReviewCount, problem.EaseFactor, adjustment))
	updated.ReviewCount = problem.ReviewCount + 1
	updated.LastReviewed = today
	return updated
}
