package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidDifficulty indicates a difficulty outside the closed
// Easy/Medium/Hard set. It must never be silently defaulted.
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Difficulty is the closed difficulty rating of a problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether the difficulty is one of the recognized values.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// InitialEaseFactor is the spaced-repetition multiplier assigned to every
// newly logged problem.
const InitialEaseFactor = 2.5

// Problem represents one solved exercise instance.
type Problem struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	Difficulty     Difficulty `json:"difficulty"`
	Category       string     `json:"category"`
	DateSolved     Date       `json:"dateSolved"`
	LastReviewed   Date       `json:"lastReviewed"`
	ReviewCount    int        `json:"reviewCount"`
	EaseFactor     float64    `json:"easeFactor"`
	NextReviewDate Date       `json:"nextReviewDate"`
}

// NewProblem creates a problem for a solve logged on the given date.
// The initial solve counts as the first repetition, and the first review
// is scheduled for the next day.
func NewProblem(title, url, category string, difficulty Difficulty, solved Date) (Problem, error) {
	if !difficulty.Valid() {
		return Problem{}, fmt.Errorf("%w: %q", ErrInvalidDifficulty, difficulty)
	}

	return Problem{
		ID:             uuid.NewString(),
		Title:          title,
		URL:            url,
		Difficulty:     difficulty,
		Category:       category,
		DateSolved:     solved,
		LastReviewed:   solved,
		ReviewCount:    1,
		EaseFactor:     InitialEaseFactor,
		NextReviewDate: solved.AddDays(1),
	}, nil
}

// BadgeID identifies an achievement in the closed badge catalog.
type BadgeID string

const (
	BadgeFirstSolve  BadgeID = "first_solve"
	BadgeStreak3     BadgeID = "streak_3"
	BadgeStreak7     BadgeID = "streak_7"
	BadgeArrayMaster BadgeID = "array_master"
	BadgeHardHitter  BadgeID = "hard_hitter"
	BadgeDPWizard    BadgeID = "dp_wizard"
)

// UserStats is the singleton aggregate of gamification state.
type UserStats struct {
	XP            int       `json:"xp"`
	Level         int       `json:"level"`
	Streak        int       `json:"streak"`
	TotalSolved   int       `json:"totalSolved"`
	LastSolveDate *Date     `json:"lastSolveDate"`
	Badges        []BadgeID `json:"badges"`
}

// NewUserStats returns the zeroed first-run aggregate.
func NewUserStats() UserStats {
	return UserStats{Level: 1, Badges: []BadgeID{}}
}

// HasBadge reports whether the badge has already been awarded.
func (s UserStats) HasBadge(id BadgeID) bool {
	for _, b := range s.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// Insight is a short coaching summary produced by the enrichment
// collaborator.
type Insight struct {
	Motivation string `json:"motivation"`
	FocusArea  string `json:"focusArea"`
	Rationale  string `json:"rationale"`
	Tip        string `json:"tip"`
}

// DailyProgress is one point of the rolling solve-velocity window.
type DailyProgress struct {
	Date     Date   `json:"date"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	XPEarned int    `json:"xpEarned"`
}

// DifficultySummary holds per-difficulty totals, zero buckets included.
type DifficultySummary struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// DifficultyCount is a chart-facing difficulty bucket. Zero buckets are
// omitted from chart output.
type DifficultyCount struct {
	Difficulty Difficulty `json:"difficulty"`
	Count      int        `json:"count"`
}

// CategoryCount is one group of the category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
