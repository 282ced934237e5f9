package adaptive

// EngineConfig holds every tunable threshold of the learning engine.
// Values mirror the behavior the platform shipped with; tests pin them.
type EngineConfig struct {
	// Recommendation thresholds
	RecommendationCutoff float64 `json:"recommendation_cutoff"`
	DefaultCount         int     `json:"default_count"`
	HighScore            float64 `json:"high_score"`
	GoodScore            float64 `json:"good_score"`

	// Scorer weights; they sum to 1.0
	DifficultyWeight   float64 `json:"difficulty_weight"`
	StyleWeight        float64 `json:"style_weight"`
	PrerequisiteWeight float64 `json:"prerequisite_weight"`
	NoveltyWeight      float64 `json:"novelty_weight"`
	GoalWeight         float64 `json:"goal_weight"`

	// Novelty decay
	NoveltyWindow int     `json:"novelty_window"`
	NoveltyFloor  float64 `json:"novelty_floor"`

	// Insight thresholds
	LowAccuracy         float64 `json:"low_accuracy"`
	HighAccuracy        float64 `json:"high_accuracy"`
	LowTimeEfficiency   float64 `json:"low_time_efficiency"`
	HighTimeEfficiency  float64 `json:"high_time_efficiency"`
	LowEngagement       float64 `json:"low_engagement"`
	HighEngagement      float64 `json:"high_engagement"`
	PersistenceAttempts int     `json:"persistence_attempts"`

	// Difficulty adaptation triggers
	DecreaseAccuracy   float64 `json:"decrease_accuracy"`
	DecreaseEngagement float64 `json:"decrease_engagement"`
	IncreaseAccuracy   float64 `json:"increase_accuracy"`
	IncreaseSpeed      float64 `json:"increase_speed"`

	// Profile maintenance
	SkillWindow       int     `json:"skill_window"`
	SkillUpAccuracy   float64 `json:"skill_up_accuracy"`
	SkillDownAccuracy float64 `json:"skill_down_accuracy"`
	StrengthAccuracy  float64 `json:"strength_accuracy"`
	WeaknessAccuracy  float64 `json:"weakness_accuracy"`

	// A lesson counts as completed at this completion percentage
	CompletedPercentage float64 `json:"completed_percentage"`
}

func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		RecommendationCutoff: 0.3,
		DefaultCount:         5,
		HighScore:            0.8,
		GoodScore:            0.6,

		DifficultyWeight:   0.30,
		StyleWeight:        0.20,
		PrerequisiteWeight: 0.20,
		NoveltyWeight:      0.15,
		GoalWeight:         0.15,

		NoveltyWindow: 10,
		NoveltyFloor:  0.2,

		LowAccuracy:         0.6,
		HighAccuracy:        0.9,
		LowTimeEfficiency:   0.5,
		HighTimeEfficiency:  2.0,
		LowEngagement:       0.5,
		HighEngagement:      0.8,
		PersistenceAttempts: 3,

		DecreaseAccuracy:   0.5,
		DecreaseEngagement: 0.4,
		IncreaseAccuracy:   0.9,
		IncreaseSpeed:      1.5,

		SkillWindow:       5,
		SkillUpAccuracy:   0.85,
		SkillDownAccuracy: 0.4,
		StrengthAccuracy:  0.8,
		WeaknessAccuracy:  0.5,

		CompletedPercentage: 100,
	}
}

// Engine computes metrics, insights, lesson scores, recommendations and
// difficulty adaptations. It performs no I/O; callers supply profile,
// history and catalog data and persist whatever comes back.
type Engine struct {
	config *EngineConfig
}

func NewEngine(config *EngineConfig) *Engine {
	if config == nil {
		config = DefaultEngineConfig()
	}
	return &Engine{config: config}
}

func (e *Engine) Config() *EngineConfig {
	return e.config
}
