package models

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

// Rank maps a difficulty onto the 1..3 scale used by the lesson scorer.
// Unknown values are treated as intermediate instead of being rejected.
func (d DifficultyLevel) Rank() int {
	switch d {
	case DifficultyBeginner:
		return 1
	case DifficultyIntermediate:
		return 2
	case DifficultyAdvanced:
		return 3
	default:
		return 2
	}
}

type LearningStyle string

const (
	LearningStyleVisual      LearningStyle = "visual"
	LearningStyleKinesthetic LearningStyle = "kinesthetic"
	LearningStyleMixed       LearningStyle = "mixed"
)

type PreferredPace string

const (
	PaceSlow   PreferredPace = "slow"
	PaceMedium PreferredPace = "medium"
	PaceFast   PreferredPace = "fast"
)

type AdaptationType string

const (
	AdaptationDecrease AdaptationType = "decrease_difficulty"
	AdaptationIncrease AdaptationType = "increase_difficulty"
	AdaptationNone     AdaptationType = "none"
)

type SignSessionType string

const (
	SignSessionPractice      SignSessionType = "practice"
	SignSessionCommunication SignSessionType = "communication"
	SignSessionLearning      SignSessionType = "learning"
)
