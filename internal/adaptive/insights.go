package adaptive

// Insight texts shown to learners. Wording is part of the client contract.
const (
	insightReviewPrerequisites = "Consider reviewing prerequisite concepts before continuing"
	insightExcellentAccuracy   = "Excellent accuracy! You're ready for more challenging content"
	insightExtraTimeBeneficial = "Taking extra time to understand concepts is beneficial"
	insightProgressingQuickly  = "You're progressing quickly! Consider more advanced exercises"
	insightShorterSessions     = "Try shorter sessions or different learning activities"
	insightHighEngagement      = "High engagement detected! You're in the learning zone"
	insightPersistence         = "Multiple attempts show persistence - consider breaking down complex concepts"
)

// Insights turns session metrics into human-readable notes. The checks run
// in a fixed order (accuracy, pace, engagement, attempts) so the output is
// deterministic for a given metrics map. An unremarkable session produces
// an empty, non-nil slice.
func (e *Engine) Insights(metrics map[string]float64, attempts int) []string {
	insights := []string{}

	accuracy := metrics["accuracy_rate"]
	if accuracy < e.config.LowAccuracy {
		insights = append(insights, insightReviewPrerequisites)
	} else if accuracy > e.config.HighAccuracy {
		insights = append(insights, insightExcellentAccuracy)
	}

	pace := metrics["time_efficiency"]
	if pace < e.config.LowTimeEfficiency {
		insights = append(insights, insightExtraTimeBeneficial)
	} else if pace > e.config.HighTimeEfficiency {
		insights = append(insights, insightProgressingQuickly)
	}

	engagement := metrics["engagement_score"]
	if engagement < e.config.LowEngagement {
		insights = append(insights, insightShorterSessions)
	} else if engagement > e.config.HighEngagement {
		insights = append(insights, insightHighEngagement)
	}

	if attempts > e.config.PersistenceAttempts {
		insights = append(insights, insightPersistence)
	}

	return insights
}
