package handlers

import (
	"algopulse/internal/badges"
	"algopulse/internal/models"
)

// SolveRequest is the body of a solve-logged event
type SolveRequest struct {
	Title      string            `json:"title"`
	URL        string            `json:"url"`
	Category   string            `json:"category"`
	Difficulty models.Difficulty `json:"difficulty"`
}

// ReviewRequest is the body of a review-submitted event
type ReviewRequest struct {
	Adjustment float64 `json:"adjustment"`
}

// SolveResponse reports the result of a logged solve
type SolveResponse struct {
	Problem       models.Problem   `json:"problem"`
	Stats         models.UserStats `json:"stats"`
	AwardedBadges []badges.Badge   `json:"awardedBadges"`
}

// ReviewResponse reports the result of a submitted review
type ReviewResponse struct {
	Problem models.Problem   `json:"problem"`
	Stats   models.UserStats `json:"stats"`
}

// DashboardViewData is the aggregate dashboard payload
type DashboardViewData struct {
	Stats          models.UserStats         `json:"stats"`
	DueCount       int                      `json:"dueCount"`
	Difficulties   models.DifficultySummary `json:"difficulties"`
	RecentActivity []models.Problem         `json:"recentActivity"`
}

// ChartsViewData is the progress-charts payload
type ChartsViewData struct {
	WeeklyVelocity  []models.DailyProgress   `json:"weeklyVelocity"`
	DifficultyChart []models.DifficultyCount `json:"difficultyChart"`
	Categories      []models.CategoryCount   `json:"categories"`
}

// QueueViewData is the review-queue payload
type QueueViewData struct {
	Due   []models.Problem `json:"due"`
	Count int              `json:"count"`
}

// BadgeView is one catalog entry plus its unlocked state
type BadgeView struct {
	badges.Badge
	Owned bool `json:"owned"`
}

// BadgeGalleryViewData is the badge-gallery payload
type BadgeGalleryViewData struct {
	Badges []BadgeView `json:"badges"`
}

// InsightViewData is the coaching-insight payload
type InsightViewData struct {
	Insight          *models.Insight `json:"insight"`
	InsufficientData bool            `json:"insufficientData"`
}
