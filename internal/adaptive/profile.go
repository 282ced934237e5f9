package adaptive

import (
	"time"

	"github.com/MIJINYAWA664/ComUnity/internal/models"
)

// UpdateProfile folds a finished session into the user's profile: the
// lesson moves between the strength and weakness lists based on this
// session's accuracy, and sustained performance across recent sessions
// nudges the skill level one step at a time. recent must include the
// session just stored, newest first or oldest first both work since only
// the mean matters. The profile is modified in place.
func (e *Engine) UpdateProfile(profile *models.UserProfile, session models.LearningSession, recent []models.LearningSession) {
	if session.AccuracyScore >= e.config.StrengthAccuracy {
		profile.Strengths = addUnique(profile.Strengths, session.LessonID)
		profile.Weaknesses = removeValue(profile.Weaknesses, session.LessonID)
	} else if session.AccuracyScore < e.config.WeaknessAccuracy {
		profile.Weaknesses = addUnique(profile.Weaknesses, session.LessonID)
		profile.Strengths = removeValue(profile.Strengths, session.LessonID)
	}

	if len(recent) >= e.config.SkillWindow {
		window := recent
		if len(window) > e.config.SkillWindow {
			window = window[:e.config.SkillWindow]
		}
		sum := 0.0
		for _, s := range window {
			sum += s.AccuracyScore
		}
		avg := sum / float64(len(window))

		if avg >= e.config.SkillUpAccuracy {
			profile.SkillLevel = promote(profile.SkillLevel)
		} else if avg < e.config.SkillDownAccuracy {
			profile.SkillLevel = demote(profile.SkillLevel)
		}
	}

	profile.LastUpdated = time.Now().UTC()
}

func promote(level models.DifficultyLevel) models.DifficultyLevel {
	switch level {
	case models.DifficultyBeginner:
		return models.DifficultyIntermediate
	case models.DifficultyIntermediate:
		return models.DifficultyAdvanced
	default:
		return level
	}
}

func demote(level models.DifficultyLevel) models.DifficultyLevel {
	switch level {
	case models.DifficultyAdvanced:
		return models.DifficultyIntermediate
	case models.DifficultyIntermediate:
		return models.DifficultyBeginner
	default:
		return level
	}
}

func addUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}

func removeValue(values []string, value string) []string {
	out := values[:0]
	for _, v := range values {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
