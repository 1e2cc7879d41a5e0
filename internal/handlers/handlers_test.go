package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"algopulse/internal/models"
	"algopulse/internal/service"
)

// memStore is an in-memory service.Store for handler tests.
type memStore struct {
	problems []models.Problem
	stats    models.UserStats
}

func (m *memStore) LoadProblems() ([]models.Problem, error) { return m.problems, nil }
func (m *memStore) SaveProblems(p []models.Problem) error   { m.problems = p; return nil }
func (m *memStore) LoadStats() (models.UserStats, error)    { return m.stats, nil }
func (m *memStore) SaveStats(s models.UserStats) error      { m.stats = s; return nil }

// stubCoach returns a canned insight without any network traffic.
type stubCoach struct {
	insight models.Insight
	called  bool
}

func (s *stubCoach) GetInsights(ctx context.Context, problems []models.Problem, stats models.UserStats) models.Insight {
	s.called = true
	return s.insight
}

func newTestServer(t *testing.T) (*httptest.Server, *service.ProgressService, *stubCoach) {
	t.Helper()

	store := &memStore{stats: models.NewUserStats()}
	svc := service.NewProgressService(store, nil, zap.NewNop())
	svc.Load()

	coach := &stubCoach{insight: models.Insight{
		Motivation: "Keep at it",
		FocusArea:  "Trees",
		Rationale:  "Gap in recent history",
		Tip:        "Draw the recursion",
	}}

	progressHandler := NewProgressHandler(svc)
	dashboardHandler := NewDashboardHandler(svc, coach)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/problems", progressHandler.LogSolve)
	mux.HandleFunc("GET /api/problems", progressHandler.ListProblems)
	mux.HandleFunc("POST /api/problems/{id}/review", progressHandler.SubmitReview)
	mux.HandleFunc("GET /api/stats", progressHandler.GetStats)
	mux.HandleFunc("GET /api/queue", progressHandler.GetQueue)
	mux.HandleFunc("GET /api/dashboard", dashboardHandler.Dashboard)
	mux.HandleFunc("GET /api/charts", dashboardHandler.Charts)
	mux.HandleFunc("GET /api/badges", dashboardHandler.BadgeGallery)
	mux.HandleFunc("GET /api/insights", dashboardHandler.Insights)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, svc, coach
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return out
}

func TestLogSolveEndpoint(t *testing.T) {
	server, _, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/problems", SolveRequest{
		Title:      "Two Sum",
		URL:        "https://example.com/two-sum",
		Category:   "Arrays",
		Difficulty: models.DifficultyHard,
	})

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	body := decode[SolveResponse](t, resp)
	if body.Problem.Title != "Two Sum" || body.Problem.ID == "" {
		t.Errorf("problem = %+v", body.Problem)
	}
	if body.Stats.XP != 100 {
		t.Errorf("stats.XP = %d, want 100", body.Stats.XP)
	}

	// first_solve and hard_hitter, with display metadata resolved.
	if len(body.AwardedBadges) != 2 {
		t.Fatalf("awarded = %v, want 2 badges", body.AwardedBadges)
	}
	if body.AwardedBadges[0].Name == "" || body.AwardedBadges[0].Icon == "" {
		t.Errorf("badge metadata missing: %+v", body.AwardedBadges[0])
	}
}

func TestLogSolveEndpointValidation(t *testing.T) {
	server, _, _ := newTestServer(t)

	tests := []struct {
		name string
		req  SolveRequest
	}{
		{"missing title", SolveRequest{Category: "Arrays", Difficulty: models.DifficultyEasy}},
		{"blank title", SolveRequest{Title: "   ", Category: "Arrays", Difficulty: models.DifficultyEasy}},
		{"missing category", SolveRequest{Title: "Two Sum", Difficulty: models.DifficultyEasy}},
		{"invalid difficulty", SolveRequest{Title: "Two Sum", Category: "Arrays", Difficulty: "Insane"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, server.URL+"/api/problems", tt.req)
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestSubmitReviewEndpoint(t *testing.T) {
	server, svc, _ := newTestServer(t)

	problem, _, _, err := svc.LogSolve("Coin Change", "", "DP", models.DifficultyMedium)
	if err != nil {
		t.Fatalf("LogSolve() error = %v", err)
	}

	url := fmt.Sprintf("%s/api/problems/%s/review", server.URL, problem.ID)
	resp := postJSON(t, url, ReviewRequest{Adjustment: 1.1})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decode[ReviewResponse](t, resp)
	if body.Problem.ReviewCount != 2 {
		t.Errorf("ReviewCount = %d, want 2", body.Problem.ReviewCount)
	}
	if body.Stats.XP != 50 {
		t.Errorf("stats.XP = %d, want 50", body.Stats.XP)
	}
}

func TestSubmitReviewEndpointErrors(t *testing.T) {
	server, svc, _ := newTestServer(t)

	problem, _, _, err := svc.LogSolve("Coin Change", "", "DP", models.DifficultyMedium)
	if err != nil {
		t.Fatalf("LogSolve() error = %v", err)
	}

	t.Run("unknown problem", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/api/problems/no-such-id/review", ReviewRequest{Adjustment: 1.1})
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("non-positive adjustment", func(t *testing.T) {
		url := fmt.Sprintf("%s/api/problems/%s/review", server.URL, problem.ID)
		resp := postJSON(t, url, ReviewRequest{Adjustment: 0})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestDashboardEndpoint(t *testing.T) {
	server, svc, _ := newTestServer(t)

	if _, _, _, err := svc.LogSolve("Two Sum", "", "Arrays", models.DifficultyEasy); err != nil {
		t.Fatalf("LogSolve() error = %v", err)
	}

	resp, err := http.Get(server.URL + "/api/dashboard")
	if err != nil {
		t.Fatalf("GET /api/dashboard: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decode[DashboardViewData](t, resp)
	if body.Stats.TotalSolved != 1 {
		t.Errorf("TotalSolved = %d, want 1", body.Stats.TotalSolved)
	}
	if body.Difficulties.Easy != 1 {
		t.Errorf("Difficulties = %+v", body.Difficulties)
	}
	if len(body.RecentActivity) != 1 {
		t.Errorf("RecentActivity = %v", body.RecentActivity)
	}
}

func TestChartsEndpoint(t *testing.T) {
	server, svc, _ := newTestServer(t)

	if _, _, _, err := svc.LogSolve("Two Sum", "", "Arrays", models.DifficultyEasy); err != nil {
		t.Fatalf("LogSolve() error = %v", err)
	}

	resp, err := http.Get(server.URL + "/api/charts")
	if err != nil {
		t.Fatalf("GET /api/charts: %v", err)
	}

	body := decode[ChartsViewData](t, resp)
	if len(body.WeeklyVelocity) != 7 {
		t.Errorf("WeeklyVelocity has %d points, want 7", len(body.WeeklyVelocity))
	}
	if len(body.DifficultyChart) != 1 {
		t.Errorf("DifficultyChart = %v, want only the Easy bucket", body.DifficultyChart)
	}
	if len(body.Categories) != 1 || body.Categories[0].Category != "Arrays" {
		t.Errorf("Categories = %v", body.Categories)
	}
}

func TestBadgeGalleryEndpoint(t *testing.T) {
	server, svc, _ := newTestServer(t)

	if _, _, _, err := svc.LogSolve("Two Sum", "", "Arrays", models.DifficultyEasy); err != nil {
		t.Fatalf("LogSolve() error = %v", err)
	}

	resp, err := http.Get(server.URL + "/api/badges")
	if err != nil {
		t.Fatalf("GET /api/badges: %v", err)
	}

	body := decode[BadgeGalleryViewData](t, resp)
	if len(body.Badges) != 6 {
		t.Fatalf("gallery size = %d, want the full catalog", len(body.Badges))
	}

	owned := 0
	for _, b := range body.Badges {
		if b.Owned {
			owned++
		}
	}
	if owned != 1 {
		t.Errorf("owned badges = %d, want 1 (first_solve only)", owned)
	}
}

func TestInsightsEndpoint(t *testing.T) {
	server, svc, coach := newTestServer(t)

	t.Run("empty collection short-circuits", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/insights")
		if err != nil {
			t.Fatalf("GET /api/insights: %v", err)
		}
		body := decode[InsightViewData](t, resp)
		if !body.InsufficientData || body.Insight != nil {
			t.Errorf("body = %+v, want insufficient-data marker", body)
		}
		if coach.called {
			t.Error("coach consulted with an empty collection")
		}
	})

	t.Run("populated collection consults the coach", func(t *testing.T) {
		if _, _, _, err := svc.LogSolve("Two Sum", "", "Arrays", models.DifficultyEasy); err != nil {
			t.Fatalf("LogSolve() error = %v", err)
		}

		resp, err := http.Get(server.URL + "/api/insights")
		if err != nil {
			t.Fatalf("GET /api/insights: %v", err)
		}
		body := decode[InsightViewData](t, resp)
		if body.Insight == nil || body.Insight.FocusArea != "Trees" {
			t.Errorf("body = %+v, want the coach's insight", body)
		}
		if !coach.called {
			t.Error("coach not consulted")
		}
	})
}

func TestQueueEndpoint(t *testing.T) {
	server, svc, _ := newTestServer(t)

	if _, _, _, err := svc.LogSolve("Two Sum", "", "Arrays", models.DifficultyEasy); err != nil {
		t.Fatalf("LogSolve() error = %v", err)
	}

	resp, err := http.Get(server.URL + "/api/queue")
	if err != nil {
		t.Fatalf("GET /api/queue: %v", err)
	}

	body := decode[QueueViewData](t, resp)
	if body.Count != 0 || len(body.Due) != 0 {
		t.Errorf("queue = %+v, want empty (first review is tomorrow)", body)
	}
}
