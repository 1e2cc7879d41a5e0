package queries

import (
	"testing"
	"time"

	"algopulse/internal/models"
)

func day(d int) models.Date {
	return models.NewDate(2024, time.June, d)
}

func problem(id, category string, difficulty models.Difficulty, solved, nextReview models.Date) models.Problem {
	return models.Problem{
		ID:             id,
		Title:          id,
		Category:       category,
		Difficulty:     difficulty,
		DateSolved:     solved,
		LastReviewed:   solved,
		ReviewCount:    1,
		EaseFactor:     models.InitialEaseFactor,
		NextReviewDate: nextReview,
	}
}

func TestDueQueue(t *testing.T) {
	today := day(10)
	problems := []models.Problem{
		problem("future", "Arrays", models.DifficultyEasy, day(9), day(11)),
		problem("overdue", "Arrays", models.DifficultyEasy, day(1), day(8)),
		problem("due-today", "Arrays", models.DifficultyEasy, day(9), day(10)),
	}

	due := DueQueue(problems, today)

	if len(due) != 2 {
		t.Fatalf("len(due) = %d, want 2", len(due))
	}
	if due[0].ID != "overdue" || due[1].ID != "due-today" {
		t.Errorf("due order = [%s, %s], want [overdue, due-today]", due[0].ID, due[1].ID)
	}

	if got := DueCount(problems, today); got != 2 {
		t.Errorf("DueCount() = %d, want 2", got)
	}
}

func TestDueQueueStableTies(t *testing.T) {
	today := day(10)
	problems := []models.Problem{
		problem("a", "Arrays", models.DifficultyEasy, day(1), day(5)),
		problem("b", "Arrays", models.DifficultyEasy, day(1), day(5)),
		problem("c", "Arrays", models.DifficultyEasy, day(1), day(5)),
	}

	due := DueQueue(problems, today)

	want := []string{"a", "b", "c"}
	for i, id := range want {
		if due[i].ID != id {
			t.Errorf("due[%d].ID = %s, want %s (ties must keep collection order)", i, due[i].ID, id)
		}
	}
}

func TestDueQueueEmpty(t *testing.T) {
	if due := DueQueue(nil, day(10)); len(due) != 0 {
		t.Errorf("DueQueue(nil) = %v, want empty", due)
	}
}

func TestDifficultyCounts(t *testing.T) {
	problems := []models.Problem{
		problem("1", "Arrays", models.DifficultyEasy, day(1), day(2)),
		problem("2", "Arrays", models.DifficultyEasy, day(1), day(2)),
		problem("3", "Graphs", models.DifficultyHard, day(1), day(2)),
	}

	summary := DifficultyCounts(problems)
	if summary.Easy != 2 || summary.Medium != 0 || summary.Hard != 1 {
		t.Errorf("DifficultyCounts() = %+v, want {Easy:2 Medium:0 Hard:1}", summary)
	}
}

func TestDifficultyChartDataDropsZeroBuckets(t *testing.T) {
	problems := []models.Problem{
		problem("1", "Arrays", models.DifficultyEasy, day(1), day(2)),
		problem("2", "Graphs", models.DifficultyHard, day(1), day(2)),
	}

	data := DifficultyChartData(problems)

	if len(data) != 2 {
		t.Fatalf("len(data) = %d, want 2 (empty Medium bucket must be dropped)", len(data))
	}
	if data[0].Difficulty != models.DifficultyEasy || data[0].Count != 1 {
		t.Errorf("data[0] = %+v, want {Easy 1}", data[0])
	}
	if data[1].Difficulty != models.DifficultyHard || data[1].Count != 1 {
		t.Errorf("data[1] = %+v, want {Hard 1}", data[1])
	}
}

func TestCategoryBreakdown(t *testing.T) {
	problems := []models.Problem{
		problem("1", "Graphs", models.DifficultyEasy, day(1), day(2)),
		problem("2", "Arrays", models.DifficultyEasy, day(1), day(2)),
		problem("3", "Arrays", models.DifficultyEasy, day(1), day(2)),
		problem("4", "DP", models.DifficultyEasy, day(1), day(2)),
	}

	breakdown := CategoryBreakdown(problems)

	if len(breakdown) != 3 {
		t.Fatalf("len(breakdown) = %d, want 3", len(breakdown))
	}
	if breakdown[0].Category != "Arrays" || breakdown[0].Count != 2 {
		t.Errorf("breakdown[0] = %+v, want {Arrays 2}", breakdown[0])
	}
	// Graphs and DP tie at one; Graphs appeared first.
	if breakdown[1].Category != "Graphs" || breakdown[2].Category != "DP" {
		t.Errorf("tie order = [%s, %s], want [Graphs, DP]", breakdown[1].Category, breakdown[2].Category)
	}
}

func TestWeeklyVelocity(t *testing.T) {
	today := day(10)
	problems := []models.Problem{
		problem("1", "Arrays", models.DifficultyEasy, day(10), day(11)),
		problem("2", "Arrays", models.DifficultyHard, day(10), day(11)),
		problem("3", "Arrays", models.DifficultyMedium, day(8), day(9)),
		problem("4", "Arrays", models.DifficultyEasy, day(3), day(4)), // outside the window
	}

	window := WeeklyVelocity(problems, today)

	if len(window) != VelocityWindowDays {
		t.Fatalf("len(window) = %d, want %d", len(window), VelocityWindowDays)
	}
	if !window[0].Date.Equal(day(4)) {
		t.Errorf("window[0].Date = %v, want %v (oldest first)", window[0].Date, day(4))
	}
	if !window[6].Date.Equal(today) {
		t.Errorf("window[6].Date = %v, want today", window[6].Date)
	}

	last := window[6]
	if last.Count != 2 || last.XPEarned != 115 {
		t.Errorf("today's point = %+v, want Count 2, XPEarned 115", last)
	}

	mid := window[4] // day 8
	if mid.Count != 1 || mid.XPEarned != 40 {
		t.Errorf("day 8 point = %+v, want Count 1, XPEarned 40", mid)
	}

	empty := window[1] // day 5, no solves
	if empty.Count != 0 || empty.XPEarned != 0 {
		t.Errorf("empty day point = %+v, want zeros", empty)
	}

	if want := day(10).Time().Format("Mon"); last.Label != want {
		t.Errorf("Label = %q, want %q", last.Label, want)
	}
}

func TestRecentActivity(t *testing.T) {
	problems := make([]models.Problem, 0, 8)
	for i := 0; i < 8; i++ {
		problems = append(problems, problem(string(rune('a'+i)), "Arrays", models.DifficultyEasy, day(1), day(2)))
	}

	recent := RecentActivity(problems)

	if len(recent) != RecentActivityLimit {
		t.Fatalf("len(recent) = %d, want %d", len(recent), RecentActivityLimit)
	}
	if recent[0].ID != "a" || recent[4].ID != "e" {
		t.Errorf("recent = [%s..%s], want the first five in collection order", recent[0].ID, recent[4].ID)
	}

	short := RecentActivity(problems[:2])
	if len(short) != 2 {
		t.Errorf("len(short) = %d, want 2", len(short))
	}
}
