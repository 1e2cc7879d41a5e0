package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"algopulse/internal/models"
	"algopulse/internal/queries"
	"algopulse/internal/scheduler"
	"algopulse/internal/scoring"
)

// ErrProblemNotFound indicates a review was submitted for an unknown problem
var ErrProblemNotFound = errors.New("problem not found")

// Store is the persistence gateway contract the service depends on.
type Store interface {
	LoadProblems() ([]models.Problem, error)
	SaveProblems(problems []models.Problem) error
	LoadStats() (models.UserStats, error)
	SaveStats(stats models.UserStats) error
}

// Notifier delivers best-effort background warnings about failed saves.
type Notifier interface {
	NotifySaveFailure(ctx context.Context, cause error)
}

// ProgressService owns the in-memory problem collection and stats
// aggregate for the session. Every mutation runs read-current,
// compute-new, persist-best-effort as one critical section, so persisted
// state stays consistent even with concurrent requests. If a save fails
// the in-memory state remains authoritative and the operation still
// succeeds.
type ProgressService struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger

	mu       sync.Mutex
	problems []models.Problem
	stats    models.UserStats
}

// NewProgressService creates a new progress service
func NewProgressService(store Store, notifier Notifier, logger *zap.Logger) *ProgressService {
	return &ProgressService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		problems: []models.Problem{},
		stats:    models.NewUserStats(),
	}
}

// Load pulls the persisted state into memory. Storage failures degrade to
// an empty first-run state with a warning; the session keeps working.
func (s *ProgressService) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	problems, err := s.store.LoadProblems()
	if err != nil {
		s.logger.Warn("failed to load problems, starting empty", zap.Error(err))
		problems = []models.Problem{}
	}

	stats, err := s.store.LoadStats()
	if err != nil {
		s.logger.Warn("failed to load stats, starting from defaults", zap.Error(err))
		stats = models.NewUserStats()
	}

	s.problems = problems
	s.stats = stats

	s.logger.Info("session state loaded",
		zap.Int("problems", len(problems)),
		zap.Int("xp", stats.XP),
		zap.Int("streak", stats.Streak))
}

// LogSolve records a solve event: a new problem is created and prepended
// to the collection, and the stats aggregate is advanced through the
// scoring rules. Returns the created problem, the updated stats and any
// newly awarded badges.
func (s *ProgressService) LogSolve(title, url, category string, difficulty models.Difficulty) (models.Problem, models.UserStats, []models.BadgeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := models.Today()

	problem, err := models.NewProblem(title, url, category, difficulty, today)
	if err != nil {
		return models.Problem{}, models.UserStats{}, nil, err
	}

	newStats, awarded, err := scoring.RecordSolve(s.stats, problem, today)
	if err != nil {
		return models.Problem{}, models.UserStats{}, nil, err
	}

	s.problems = append([]models.Problem{problem}, s.problems...)
	s.stats = newStats

	s.persist()

	return problem, newStats, awarded, nil
}

// SubmitReview records a review event for a problem: the schedule fields
// advance and the flat review XP is granted. Reviews are accepted for any
// known problem at any time, due or not.
func (s *ProgressService) SubmitReview(id string, adjustment float64) (models.Problem, models.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.problems {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Problem{}, models.UserStats{}, ErrProblemNotFound
	}

	updated := scheduler.RecordReview(s.problems[idx], adjustment, models.Today())
	s.problems[idx] = updated
	s.stats = scoring.RecordReviewXP(s.stats)

	s.persist()

	return updated, s.stats, nil
}

// persist saves both aggregates, best-effort. Callers hold the mutex. A
// failed save logs a warning and fires a background notification; it
// never fails the user's action.
func (s *ProgressService) persist() {
	var cause error
	if err := s.store.SaveProblems(s.problems); err != nil {
		cause = err
	}
	if err := s.store.SaveStats(s.stats); err != nil && cause == nil {
		cause = err
	}
	if cause == nil {
		return
	}

	s.logger.Warn("failed to persist session state, in-memory state remains authoritative",
		zap.Error(cause))

	if s.notifier != nil {
		go func(cause error) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			s.notifier.NotifySaveFailure(ctx, cause)
		}(cause)
	}
}

// Problems returns a copy of the collection, newest first.
func (s *ProgressService) Problems() []models.Problem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Problem, len(s.problems))
	copy(out, s.problems)
	return out
}

// Stats returns the current stats aggregate.
func (s *ProgressService) Stats() models.UserStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// DueQueue returns the problems due for review today, earliest-due first.
func (s *ProgressService) DueQueue() []models.Problem {
	return queries.DueQueue(s.Problems(), models.Today())
}

// DueCount returns how many problems are due for review today.
func (s *ProgressService) DueCount() int {
	return queries.DueCount(s.Problems(), models.Today())
}

// DifficultySummary returns per-difficulty totals, zero buckets included.
func (s *ProgressService) DifficultySummary() models.DifficultySummary {
	return queries.DifficultyCounts(s.Problems())
}

// DifficultyChart returns the non-empty difficulty buckets for charts.
func (s *ProgressService) DifficultyChart() []models.DifficultyCount {
	return queries.DifficultyChartData(s.Problems())
}

// CategoryBreakdown returns per-category counts, largest first.
func (s *ProgressService) CategoryBreakdown() []models.CategoryCount {
	return queries.CategoryBreakdown(s.Problems())
}

// WeeklyVelocity returns the rolling seven-day solve window.
func (s *ProgressService) WeeklyVelocity() []models.DailyProgress {
	return queries.WeeklyVelocity(s.Problems(), models.Today())
}

// RecentActivity returns the most recently logged problems.
func (s *ProgressService) RecentActivity() []models.Problem {
	return queries.RecentActivity(s.Problems())
}
