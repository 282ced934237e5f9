package adaptive

import (
	"sort"
	"time"

	"github.com/MIJINYAWA664/ComUnity/internal/models"
)

// Analytics aggregates a window of learning sessions into the progress
// report served by the analytics endpoint. Callers decide the window;
// the engine only summarizes what it is given. now anchors the streak
// calculation so tests can pin it.
func (e *Engine) Analytics(sessions []models.LearningSession, now time.Time) models.LearningAnalytics {
	ordered := make([]models.LearningSession, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})

	analytics := models.LearningAnalytics{
		TotalSessions:         len(ordered),
		SkillProgression:      map[string]float64{},
		TimeDistribution:      map[string]int{"morning": 0, "afternoon": 0, "evening": 0, "night": 0},
		DifficultyProgression: make([]string, 0, len(ordered)),
	}
	if len(ordered) == 0 {
		analytics.StrengthsWeaknesses = models.StrengthsWeaknesses{Strengths: []string{}, Weaknesses: []string{}}
		return analytics
	}

	var accuracySum, engagementSum float64
	completed := make(map[string]bool)
	byDifficulty := make(map[string][]float64)
	byLesson := make(map[string][]float64)

	for _, session := range ordered {
		analytics.TotalTimeSpent += session.TimeSpent
		accuracySum += session.AccuracyScore
		engagementSum += session.EngagementScore

		if session.CompletionPercentage >= e.config.CompletedPercentage {
			completed[session.LessonID] = true
		}

		difficulty := string(session.DifficultyLevel)
		byDifficulty[difficulty] = append(byDifficulty[difficulty], session.AccuracyScore)
		byLesson[session.LessonID] = append(byLesson[session.LessonID], session.AccuracyScore)

		analytics.TimeDistribution[dayPart(session.StartTime.Hour())]++
		analytics.DifficultyProgression = append(analytics.DifficultyProgression, difficulty)
	}

	count := float64(len(ordered))
	analytics.AverageAccuracy = accuracySum / count
	analytics.AverageEngagement = engagementSum / count
	analytics.LessonsCompleted = len(completed)
	analytics.LearningStreak = learningStreak(ordered, now)

	for difficulty, scores := range byDifficulty {
		analytics.SkillProgression[difficulty] = mean(scores)
	}
	analytics.StrengthsWeaknesses = e.strengthsWeaknesses(byLesson)

	return analytics
}

// strengthsWeaknesses classifies lessons by average accuracy across all
// attempts. Output is sorted so repeated calls report identically.
func (e *Engine) strengthsWeaknesses(byLesson map[string][]float64) models.StrengthsWeaknesses {
	result := models.StrengthsWeaknesses{Strengths: []string{}, Weaknesses: []string{}}
	for lessonID, scores := range byLesson {
		avg := mean(scores)
		if avg >= e.config.StrengthAccuracy {
			result.Strengths = append(result.Strengths, lessonID)
		} else if avg < e.config.WeaknessAccuracy {
			result.Weaknesses = append(result.Weaknesses, lessonID)
		}
	}
	sort.Strings(result.Strengths)
	sort.Strings(result.Weaknesses)
	return result
}

// learningStreak counts consecutive days with at least one session,
// walking backwards from today. A streak survives until the first gap;
// a user who practiced yesterday but not yet today keeps the streak.
func learningStreak(sessions []models.LearningSession, now time.Time) int {
	days := make(map[string]bool)
	loc := now.Location()
	for _, session := range sessions {
		days[session.StartTime.In(loc).Format("2006-01-02")] = true
	}

	day := now
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
		if !days[day.Format("2006-01-02")] {
			return 0
		}
	}

	streak := 0
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// dayPart buckets an hour of day for the time-distribution report.
func dayPart(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
