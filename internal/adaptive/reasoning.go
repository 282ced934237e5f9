package adaptive

import (
	"strings"

	"github.com/MIJINYAWA664/ComUnity/internal/models"
)

const (
	reasonHighlyRecommended = "Highly recommended based on your learning profile"
	reasonGoodMatch         = "Good match for your current skill level"
	reasonExpandKnowledge   = "Suitable for expanding your knowledge"
	reasonSkillMatch        = "Matches your current skill level"
	reasonNextStep          = "Next step in your learning journey"
	reasonGoalAligned       = "Aligns with your learning goals"
)

// RecommendationReasoning explains a recommendation to the learner. The
// first sentence reflects the score band, then difficulty fit and goal
// alignment add their own sentences when they apply.
func (e *Engine) RecommendationReasoning(lesson models.Lesson, profile *models.UserProfile, score float64) string {
	parts := make([]string, 0, 3)

	switch {
	case score > e.config.HighScore:
		parts = append(parts, reasonHighlyRecommended)
	case score > e.config.GoodScore:
		parts = append(parts, reasonGoodMatch)
	default:
		parts = append(parts, reasonExpandKnowledge)
	}

	if lesson.DifficultyLevel == profile.SkillLevel {
		parts = append(parts, reasonSkillMatch)
	} else if lesson.DifficultyLevel == models.DifficultyIntermediate && profile.SkillLevel == models.DifficultyBeginner {
		parts = append(parts, reasonNextStep)
	}

	for _, goal := range profile.Goals {
		if goal == lesson.Category {
			parts = append(parts, reasonGoalAligned)
			break
		}
	}

	return strings.Join(parts, ". ")
}
