package handlers

import (
	"context"
	"net/http"

	"algopulse/internal/badges"
	"algopulse/internal/models"
	"algopulse/internal/service"
)

// InsightProvider produces a coaching summary; implementations never
// return an error, only a value.
type InsightProvider interface {
	GetInsights(ctx context.Context, problems []models.Problem, stats models.UserStats) models.Insight
}

// DashboardHandler serves the derived read-side views
type DashboardHandler struct {
	progressService *service.ProgressService
	coach           InsightProvider
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(progressService *service.ProgressService, coach InsightProvider) *DashboardHandler {
	return &DashboardHandler{
		progressService: progressService,
		coach:           coach,
	}
}

// Dashboard handles GET /api/dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, DashboardViewData{
		Stats:          h.progressService.Stats(),
		DueCount:       h.progressService.DueCount(),
		Difficulties:   h.progressService.DifficultySummary(),
		RecentActivity: h.progressService.RecentActivity(),
	})
}

// Charts handles GET /api/charts
func (h *DashboardHandler) Charts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ChartsViewData{
		WeeklyVelocity:  h.progressService.WeeklyVelocity(),
		DifficultyChart: h.progressService.DifficultyChart(),
		Categories:      h.progressService.CategoryBreakdown(),
	})
}

// BadgeGallery handles GET /api/badges
func (h *DashboardHandler) BadgeGallery(w http.ResponseWriter, r *http.Request) {
	stats := h.progressService.Stats()

	views := make([]BadgeView, 0)
	for _, badge := range badges.All() {
		views = append(views, BadgeView{
			Badge: badge,
			Owned: stats.HasBadge(badge.ID),
		})
	}

	respondJSON(w, http.StatusOK, BadgeGalleryViewData{Badges: views})
}

// Insights handles GET /api/insights. The coach is only consulted when
// at least one problem has been logged; it always produces a value, so
// this endpoint cannot fail on enrichment trouble.
func (h *DashboardHandler) Insights(w http.ResponseWriter, r *http.Request) {
	problems := h.progressService.Problems()
	if len(problems) == 0 {
		respondJSON(w, http.StatusOK, InsightViewData{InsufficientData: true})
		return
	}

	insight := h.coach.GetInsights(r.Context(), problems, h.progressService.Stats())
	respondJSON(w, http.StatusOK, InsightViewData{Insight: &insight})
}
