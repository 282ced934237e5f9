package adaptive

import (
	"testing"
	"time"

	"github.com/MIJINYAWA664/ComUnity/internal/models"
)

func TestDifficultyMatch(t *testing.T) {
	engine := NewEngine(nil)

	testCases := []struct {
		name   string
		lesson models.DifficultyLevel
		user   models.DifficultyLevel
		want   float64
	}{
		{"same level", models.DifficultyIntermediate, models.DifficultyIntermediate, 1.0},
		{"one step up", models.DifficultyAdvanced, models.DifficultyIntermediate, 0.8},
		{"one step down", models.DifficultyBeginner, models.DifficultyIntermediate, 0.6},
		{"two steps up", models.DifficultyAdvanced, models.DifficultyBeginner, 0.2},
		{"two steps down", models.DifficultyBeginner, models.DifficultyAdvanced, 0.2},
		{"unknown lesson level treated as intermediate", "", models.DifficultyBeginner, 0.8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.difficultyMatch(tc.lesson, tc.user)
			if got != tc.want {
				t.Errorf("Expected %.1f, got %.1f", tc.want, got)
			}
		})
	}
}

func TestStyleMatch(t *testing.T) {
	engine := NewEngine(nil)

	testCases := []struct {
		name   string
		lesson models.LearningStyle
		user   models.LearningStyle
		want   float64
	}{
		{"exact match", models.LearningStyleVisual, models.LearningStyleVisual, 1.0},
		{"mixed user accepts anything", models.LearningStyleKinesthetic, models.LearningStyleMixed, 1.0},
		{"mixed lesson suits most users", models.LearningStyleMixed, models.LearningStyleVisual, 0.8},
		{"untyped lesson counts as mixed", "", models.LearningStyleVisual, 0.8},
		{"mismatch", models.LearningStyleVisual, models.LearningStyleKinesthetic, 0.4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.styleMatch(tc.lesson, tc.user)
			if got != tc.want {
				t.Errorf("Expected %.1f, got %.1f", tc.want, got)
			}
		})
	}
}

func TestPrerequisiteCoverage(t *testing.T) {
	engine := NewEngine(nil)
	completed := map[string]bool{"alphabet": true, "numbers": true}

	testCases := []struct {
		name          string
		prerequisites []string
		want          float64
	}{
		{"no prerequisites", nil, 1.0},
		{"all met", []string{"alphabet", "numbers"}, 1.0},
		{"half met", []string{"alphabet", "greetings"}, 0.5},
		{"none met", []string{"greetings", "colors"}, 0.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.prerequisiteCoverage(tc.prerequisites, completed)
			if got != tc.want {
				t.Errorf("Expected %.2f, got %.2f", tc.want, got)
			}
		})
	}
}

func TestNoveltyScore(t *testing.T) {
	engine := NewEngine(nil)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	history := func(lessonIDs ...string) []models.LearningSession {
		sessions := make([]models.LearningSession, 0, len(lessonIDs))
		for i, id := range lessonIDs {
			sessions = append(sessions, sessionAt(id, base.Add(time.Duration(i)*time.Hour), 0.7))
		}
		return sessions
	}

	testCases := []struct {
		name     string
		sessions []models.LearningSession
		lessonID string
		want     float64
	}{
		{"never attempted", history("a", "b", "c"), "z", 1.0},
		{"empty history", nil, "a", 1.0},
		{"oldest in window", history("a", "b", "c"), "a", 1.0},
		{"recent in short window", history("a", "b", "c"), "c", 0.8}, // position 2 of 10
		{"repeat uses latest attempt", history("a", "b", "a"), "a", 0.8},
		{
			name:     "most recent of a full window hits the floor",
			sessions: history("a", "b", "c", "d", "e", "f", "g", "h", "i", "j"),
			lessonID: "j",
			want:     0.2, // 1 - 9/10 clamped up to the floor
		},
		{
			name:     "attempts outside the window are forgotten",
			sessions: history("x", "x", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j"),
			lessonID: "x",
			want:     1.0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.noveltyScore(tc.lessonID, tc.sessions)
			if abs(got-tc.want) > 0.0001 {
				t.Errorf("Expected %.2f, got %.2f", tc.want, got)
			}
		})
	}
}

func TestGoalAlignment(t *testing.T) {
	engine := NewEngine(nil)

	lesson := models.Lesson{
		Category: "Sign Language Basics",
		Tags:     []string{"Greetings", "daily-life"},
	}

	testCases := []struct {
		name  string
		goals []string
		want  float64
	}{
		{"no goals is neutral", nil, 0.5},
		{"tag match ignores case", []string{"greetings"}, 1.0},
		{"goal inside category counts half", []string{"sign language"}, 0.5},
		{"one hit one miss", []string{"daily-life", "cooking"}, 0.5},
		{"all goals matched", []string{"greetings", "daily-life"}, 1.0},
		{"no overlap", []string{"cooking"}, 0.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.goalAlignment(lesson, tc.goals)
			if abs(got-tc.want) > 0.0001 {
				t.Errorf("Expected %.2f, got %.2f", tc.want, got)
			}
		})
	}
}

func TestScoreLessonPerfectFit(t *testing.T) {
	engine := NewEngine(nil)

	profile := &models.UserProfile{
		UserID:        "user-1",
		LearningStyle: models.LearningStyleVisual,
		SkillLevel:    models.DifficultyBeginner,
		Goals:         []string{"greetings"},
	}
	lesson := models.Lesson{
		ID:              "greetings-101",
		DifficultyLevel: models.DifficultyBeginner,
		Type:            models.LearningStyleVisual,
		Category:        "greetings",
		Tags:            []string{"greetings"},
	}

	sc := engine.BuildScoringContext(nil)
	got := engine.ScoreLesson(lesson, profile, sc)

	// 0.3 + 0.2 + 0.2 + 0.15 + 0.15
	if abs(got-1.0) > 0.0001 {
		t.Errorf("Expected a perfect fit to score 1.0, got %.4f", got)
	}
}

func TestScoreLessonStaysInRange(t *testing.T) {
	engine := NewEngine(nil)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	profile := &models.UserProfile{
		UserID:        "user-1",
		LearningStyle: models.LearningStyleKinesthetic,
		SkillLevel:    models.DifficultyAdvanced,
		Goals:         []string{"cooking"},
	}
	lesson := models.Lesson{
		ID:              "alphabet",
		DifficultyLevel: models.DifficultyBeginner,
		Type:            models.LearningStyleVisual,
		Category:        "basics",
		Prerequisites:   []string{"never-done"},
	}

	history := []models.LearningSession{
		sessionAt("alphabet", base, 0.3),
	}
	sc := engine.BuildScoringContext(history)

	got := engine.ScoreLesson(lesson, profile, sc)
	if got < 0 || got > 1 {
		t.Errorf("Expected score within [0, 1], got %.4f", got)
	}
}

func TestBuildScoringContext(t *testing.T) {
	engine := NewEngine(nil)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	history := []models.LearningSession{
		{LessonID: "b", StartTime: base.Add(time.Hour), CompletionPercentage: 100},
		{LessonID: "a", StartTime: base, CompletionPercentage: 60},
		{LessonID: "c", StartTime: base.Add(2 * time.Hour), CompletionPercentage: 100},
	}

	sc := engine.BuildScoringContext(history)

	if got := []string{sc.Sessions[0].LessonID, sc.Sessions[1].LessonID, sc.Sessions[2].LessonID}; got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("Expected chronological order [a b c], got %v", got)
	}
	if !sc.Completed["b"] || !sc.Completed["c"] {
		t.Error("Expected fully completed lessons to be marked completed")
	}
	if sc.Completed["a"] {
		t.Error("Expected a partially completed session not to count as completed")
	}
}

func TestRecommendationReasoning(t *testing.T) {
	engine := NewEngine(nil)

	beginner := &models.UserProfile{SkillLevel: models.DifficultyBeginner}
	beginnerWithGoals := &models.UserProfile{
		SkillLevel: models.DifficultyBeginner,
		Goals:      []string{"daily-conversation"},
	}

	testCases := []struct {
		name    string
		lesson  models.Lesson
		profile *models.UserProfile
		score   float64
		want    string
	}{
		{
			name:    "high score with skill and goal match",
			lesson:  models.Lesson{DifficultyLevel: models.DifficultyBeginner, Category: "daily-conversation"},
			profile: beginnerWithGoals,
			score:   0.85,
			want:    reasonHighlyRecommended + ". " + reasonSkillMatch + ". " + reasonGoalAligned,
		},
		{
			name:    "good score with next step",
			lesson:  models.Lesson{DifficultyLevel: models.DifficultyIntermediate},
			profile: beginner,
			score:   0.65,
			want:    reasonGoodMatch + ". " + reasonNextStep,
		},
		{
			name:    "low score with nothing extra",
			lesson:  models.Lesson{DifficultyLevel: models.DifficultyAdvanced},
			profile: beginner,
			score:   0.5,
			want:    reasonExpandKnowledge,
		},
		{
			name:    "band edges are exclusive",
			lesson:  models.Lesson{DifficultyLevel: models.DifficultyAdvanced},
			profile: beginner,
			score:   0.8,
			want:    reasonGoodMatch,
		},
		{
			name:    "goal comparison is exact",
			lesson:  models.Lesson{DifficultyLevel: models.DifficultyAdvanced, Category: "Daily-Conversation"},
			profile: beginnerWithGoals,
			score:   0.5,
			want:    reasonExpandKnowledge,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.RecommendationReasoning(tc.lesson, tc.profile, tc.score)
			if got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}
