package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"algopulse/internal/badges"
	"algopulse/internal/models"
	"algopulse/internal/service"
)

// ProgressHandler handles solve and review events plus the raw
// collection/stats reads
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// LogSolve handles POST /api/problems
func (h *ProgressHandler) LogSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "Title is required", "", nil)
		return
	}
	if strings.TrimSpace(req.Category) == "" {
		respondWithError(w, http.StatusBadRequest, "Category is required", "", nil)
		return
	}

	problem, stats, awarded, err := h.progressService.LogSolve(req.Title, req.URL, req.Category, req.Difficulty)
	if err != nil {
		if errors.Is(err, models.ErrInvalidDifficulty) {
			respondWithError(w, http.StatusBadRequest, "Difficulty must be Easy, Medium or Hard", "", err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to log solve", "Error logging solve", err)
		return
	}

	awardedBadges := make([]badges.Badge, 0, len(awarded))
	for _, id := range awarded {
		badge, err := badges.Lookup(id)
		if err != nil {
			// The scoring engine emitted an id outside the catalog; that
			// is a programming error and must not be displayed quietly.
			respondWithError(w, http.StatusInternalServerError, "Failed to log solve", "Badge catalog mismatch", err)
			return
		}
		awardedBadges = append(awardedBadges, badge)
	}

	respondJSON(w, http.StatusCreated, SolveResponse{
		Problem:       problem,
		Stats:         stats,
		AwardedBadges: awardedBadges,
	})
}

// SubmitReview handles POST /api/problems/{id}/review
func (h *ProgressHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	if req.Adjustment <= 0 {
		respondWithError(w, http.StatusBadRequest, "Adjustment must be a positive number", "", nil)
		return
	}

	problem, stats, err := h.progressService.SubmitReview(id, req.Adjustment)
	if err != nil {
		if errors.Is(err, service.ErrProblemNotFound) {
			respondWithError(w, http.StatusNotFound, "Problem not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to submit review", "Error submitting review", err)
		return
	}

	respondJSON(w, http.StatusOK, ReviewResponse{Problem: problem, Stats: stats})
}

// ListProblems handles GET /api/problems
func (h *ProgressHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.progressService.Problems())
}

// GetStats handles GET /api/stats
func (h *ProgressHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.progressService.Stats())
}

// GetQueue handles GET /api/queue
func (h *ProgressHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	due := h.progressService.DueQueue()
	respondJSON(w, http.StatusOK, QueueViewData{Due: due, Count: len(due)})
}
