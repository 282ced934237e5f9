package adaptive

import (
	"testing"
	"time"

	"github.com/MIJINYAWA664/ComUnity/internal/models"
)

func analyticsSession(lessonID string, start time.Time, accuracy, completion float64, timeSpent int, engagement float64, difficulty models.DifficultyLevel) models.LearningSession {
	return models.LearningSession{
		UserID:               "user-1",
		LessonID:             lessonID,
		StartTime:            start,
		AccuracyScore:        accuracy,
		CompletionPercentage: completion,
		TimeSpent:            timeSpent,
		EngagementScore:      engagement,
		DifficultyLevel:      difficulty,
	}
}

func TestAnalytics(t *testing.T) {
	engine := NewEngine(nil)
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	sessions := []models.LearningSession{
		analyticsSession("alphabet", time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC), 0.9, 100, 300, 0.8, models.DifficultyBeginner),
		analyticsSession("numbers", time.Date(2025, 3, 9, 13, 0, 0, 0, time.UTC), 0.4, 50, 600, 0.5, models.DifficultyBeginner),
		analyticsSession("alphabet", time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC), 0.8, 100, 240, 0.7, models.DifficultyBeginner),
		analyticsSession("greetings", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), 0.95, 100, 200, 0.9, models.DifficultyIntermediate),
	}

	analytics := engine.Analytics(sessions, now)

	if analytics.TotalSessions != 4 {
		t.Errorf("Expected 4 sessions, got %d", analytics.TotalSessions)
	}
	if analytics.TotalTimeSpent != 1340 {
		t.Errorf("Expected 1340s total time, got %d", analytics.TotalTimeSpent)
	}
	if abs(analytics.AverageAccuracy-0.7625) > 0.0001 {
		t.Errorf("Expected average accuracy 0.7625, got %.4f", analytics.AverageAccuracy)
	}
	if abs(analytics.AverageEngagement-0.725) > 0.0001 {
		t.Errorf("Expected average engagement 0.725, got %.4f", analytics.AverageEngagement)
	}
	if analytics.LessonsCompleted != 2 {
		t.Errorf("Expected 2 completed lessons, got %d", analytics.LessonsCompleted)
	}
	if analytics.LearningStreak != 3 {
		t.Errorf("Expected a 3 day streak, got %d", analytics.LearningStreak)
	}

	if abs(analytics.SkillProgression["beginner"]-0.7) > 0.0001 {
		t.Errorf("Expected beginner accuracy 0.7, got %.4f", analytics.SkillProgression["beginner"])
	}
	if abs(analytics.SkillProgression["intermediate"]-0.95) > 0.0001 {
		t.Errorf("Expected intermediate accuracy 0.95, got %.4f", analytics.SkillProgression["intermediate"])
	}

	wantDistribution := map[string]int{"morning": 2, "afternoon": 1, "evening": 1, "night": 0}
	for part, want := range wantDistribution {
		if got := analytics.TimeDistribution[part]; got != want {
			t.Errorf("Time distribution %q: expected %d, got %d", part, want, got)
		}
	}

	wantProgression := []string{"beginner", "beginner", "beginner", "intermediate"}
	if len(analytics.DifficultyProgression) != len(wantProgression) {
		t.Fatalf("Expected %d progression entries, got %d", len(wantProgression), len(analytics.DifficultyProgression))
	}
	for i, want := range wantProgression {
		if analytics.DifficultyProgression[i] != want {
			t.Errorf("Progression %d: expected %s, got %s", i, want, analytics.DifficultyProgression[i])
		}
	}

	wantStrengths := []string{"alphabet", "greetings"}
	if len(analytics.StrengthsWeaknesses.Strengths) != 2 ||
		analytics.StrengthsWeaknesses.Strengths[0] != wantStrengths[0] ||
		analytics.StrengthsWeaknesses.Strengths[1] != wantStrengths[1] {
		t.Errorf("Expected strengths %v, got %v", wantStrengths, analytics.StrengthsWeaknesses.Strengths)
	}
	if len(analytics.StrengthsWeaknesses.Weaknesses) != 1 || analytics.StrengthsWeaknesses.Weaknesses[0] != "numbers" {
		t.Errorf("Expected weaknesses [numbers], got %v", analytics.StrengthsWeaknesses.Weaknesses)
	}
}

func TestAnalyticsEmpty(t *testing.T) {
	engine := NewEngine(nil)

	analytics := engine.Analytics(nil, time.Now())

	if analytics.TotalSessions != 0 {
		t.Errorf("Expected 0 sessions, got %d", analytics.TotalSessions)
	}
	if analytics.SkillProgression == nil || analytics.TimeDistribution == nil {
		t.Error("Expected maps to be initialized even without sessions")
	}
	if analytics.StrengthsWeaknesses.Strengths == nil || analytics.StrengthsWeaknesses.Weaknesses == nil {
		t.Error("Expected strength lists to be initialized even without sessions")
	}
}

func TestLearningStreak(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time {
		return now.AddDate(0, 0, offset)
	}

	testCases := []struct {
		name   string
		starts []time.Time
		want   int
	}{
		{"practiced today and two days before", []time.Time{day(-2), day(-1), day(0)}, 3},
		{"streak survives a missing today", []time.Time{day(-2), day(-1)}, 2},
		{"gap before yesterday resets", []time.Time{day(-3), day(-1)}, 1},
		{"stale history has no streak", []time.Time{day(-5), day(-4)}, 0},
		{"several sessions in one day count once", []time.Time{day(0), day(0).Add(2 * time.Hour)}, 1},
		{"no sessions", nil, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sessions := make([]models.LearningSession, 0, len(tc.starts))
			for _, start := range tc.starts {
				sessions = append(sessions, sessionAt("lesson", start, 0.7))
			}

			if got := learningStreak(sessions, now); got != tc.want {
				t.Errorf("Expected streak %d, got %d", tc.want, got)
			}
		})
	}
}

func TestDayPart(t *testing.T) {
	testCases := []struct {
		hour int
		want string
	}{
		{0, "night"},
		{4, "night"},
		{5, "morning"},
		{11, "morning"},
		{12, "afternoon"},
		{16, "afternoon"},
		{17, "evening"},
		{21, "evening"},
		{22, "night"},
		{23, "night"},
	}

	for _, tc := range testCases {
		if got := dayPart(tc.hour); got != tc.want {
			t.Errorf("Hour %d: expected %s, got %s", tc.hour, tc.want, got)
		}
	}
}
