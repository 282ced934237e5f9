package adaptive

import "github.com/MIJINYAWA664/ComUnity/internal/models"

const (
	reasonDecreaseDifficulty = "Reducing difficulty to improve understanding and engagement"
	reasonIncreaseDifficulty = "Increasing difficulty to maintain engagement and challenge"
)

// EvaluateAdaptation decides whether the lesson difficulty should move
// based on current performance. Struggling users (low accuracy and low
// engagement) get an easier setup, users who are accurate and fast get a
// harder one, everyone else stays put.
func (e *Engine) EvaluateAdaptation(sample models.PerformanceSample) models.AdaptationDecision {
	if sample.Accuracy < e.config.DecreaseAccuracy && sample.Engagement < e.config.DecreaseEngagement {
		return models.AdaptationDecision{
			Adapted:        true,
			AdaptationType: models.AdaptationDecrease,
			Parameters: map[string]string{
				"hint_frequency": "increased",
				"time_pressure":  "reduced",
				"complexity":     "simplified",
				"examples":       "more_provided",
			},
			Reasoning: reasonDecreaseDifficulty,
		}
	}

	if sample.Accuracy > e.config.IncreaseAccuracy && sample.Speed > e.config.IncreaseSpeed {
		return models.AdaptationDecision{
			Adapted:        true,
			AdaptationType: models.AdaptationIncrease,
			Parameters: map[string]string{
				"hint_frequency":   "reduced",
				"time_pressure":    "increased",
				"complexity":       "enhanced",
				"bonus_challenges": "enabled",
			},
			Reasoning: reasonIncreaseDifficulty,
		}
	}

	return models.AdaptationDecision{Adapted: false}
}
