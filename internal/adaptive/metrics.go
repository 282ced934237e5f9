package adaptive

import (
	"sort"

	"github.com/MIJINYAWA664/ComUnity/internal/models"
)

// SessionMetrics derives the per-session performance indicators from a
// finished session. expectedSeconds is the catalog's estimated duration
// for the lesson (0 when the lesson is unknown), lessonHistory holds the
// user's earlier sessions on the same lesson and drives learning_velocity.
//
// The map always carries the same seven keys so downstream consumers can
// index it without existence checks.
func (e *Engine) SessionMetrics(session models.LearningSession, expectedSeconds int, lessonHistory []models.LearningSession) map[string]float64 {
	completionRate := session.CompletionPercentage / 100.0

	minutes := float64(session.TimeSpent) / 60.0
	if minutes < 1 {
		minutes = 1
	}

	return map[string]float64{
		"completion_rate":   completionRate,
		"accuracy_rate":     session.AccuracyScore,
		"efficiency":        completionRate / minutes,
		"engagement_score":  session.EngagementScore,
		"time_efficiency":   timeEfficiency(expectedSeconds, session.TimeSpent),
		"learning_velocity": learningVelocity(lessonHistory),
		"attempts_ratio":    attemptsRatio(session.Attempts),
	}
}

// timeEfficiency compares expected against actual duration. Above 1.0 the
// user finished faster than the estimate. Unknown estimates score neutral.
func timeEfficiency(expectedSeconds, spentSeconds int) float64 {
	if expectedSeconds <= 0 {
		return 1.0
	}
	if spentSeconds < 1 {
		spentSeconds = 1
	}
	return float64(expectedSeconds) / float64(spentSeconds)
}

// learningVelocity measures accuracy gain across repeat sessions on one
// lesson: the accuracy delta between the newest and oldest session divided
// by the session count. Fewer than two sessions yield zero.
func learningVelocity(sessions []models.LearningSession) float64 {
	if len(sessions) < 2 {
		return 0
	}
	ordered := make([]models.LearningSession, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})
	first := ordered[0].AccuracyScore
	last := ordered[len(ordered)-1].AccuracyScore
	return (last - first) / float64(len(ordered))
}

func attemptsRatio(attempts int) float64 {
	if attempts < 1 {
		attempts = 1
	}
	return 1.0 / float64(attempts)
}
