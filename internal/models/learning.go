package models

import "time"

// LearningSession is one completed attempt at a lesson. Sessions are
// immutable once stored; history only grows until retention trims it.
type LearningSession struct {
	UserID               string           `json:"user_id"`
	LessonID             string           `json:"lesson_id"`
	StartTime            time.Time        `json:"start_time"`
	EndTime              *time.Time       `json:"end_time"`
	AccuracyScore        float64          `json:"accuracy_score"`
	CompletionPercentage float64          `json:"completion_percentage"`
	TimeSpent            int              `json:"time_spent"` // seconds
	Attempts             int              `json:"attempts"`
	DifficultyLevel      DifficultyLevel  `json:"difficulty_level"`
	Mistakes             []map[string]any `json:"mistakes"`
	EngagementScore      float64          `json:"engagement_score"`
}

type LessonRecommendation struct {
	LessonID          string          `json:"lesson_id"`
	Title             string          `json:"title"`
	DifficultyLevel   DifficultyLevel `json:"difficulty_level"`
	EstimatedDuration int             `json:"estimated_duration"`
	ConfidenceScore   float64         `json:"confidence_score"`
	Reasoning         string          `json:"reasoning"`
	Prerequisites     []string        `json:"prerequisites"`
}

// SessionAnalysis is the result of analyzing one completed session.
type SessionAnalysis struct {
	SessionID       string                 `json:"session_id"`
	Metrics         map[string]float64     `json:"metrics"`
	Insights        []string               `json:"insights"`
	Recommendations []LessonRecommendation `json:"recommendations"`
}

// AdaptationDecision is the outcome of one difficulty evaluation. Decisions
// are logged for audit but never feed back into later decisions.
type AdaptationDecision struct {
	Adapted        bool              `json:"adapted"`
	AdaptationType AdaptationType    `json:"adaptation_type,omitempty"`
	Parameters     map[string]string `json:"parameters,omitempty"`
	Reasoning      string            `json:"reasoning,omitempty"`
	Error          string            `json:"error,omitempty"`
}

// AdaptationRecord is the audit form of a decision kept in the store.
type AdaptationRecord struct {
	UserID         string            `json:"user_id"`
	LessonID       string            `json:"lesson_id"`
	AdaptationType AdaptationType    `json:"adaptation_type"`
	Parameters     map[string]string `json:"parameters"`
	Timestamp      time.Time         `json:"timestamp"`
}

type PerformanceSample struct {
	Accuracy   float64 `json:"accuracy"`
	Speed      float64 `json:"speed"`
	Engagement float64 `json:"engagement"`
}

type StrengthsWeaknesses struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// LearningAnalytics aggregates a user's sessions over a timeframe.
type LearningAnalytics struct {
	TotalSessions         int                 `json:"total_sessions"`
	TotalTimeSpent        int                 `json:"total_time_spent"`
	AverageAccuracy       float64             `json:"average_accuracy"`
	AverageEngagement     float64             `json:"average_engagement"`
	LessonsCompleted      int                 `json:"lessons_completed"`
	LearningStreak        int                 `json:"learning_streak"`
	SkillProgression      map[string]float64  `json:"skill_progression"`
	TimeDistribution      map[string]int      `json:"time_distribution"`
	DifficultyProgression []string            `json:"difficulty_progression"`
	StrengthsWeaknesses   StrengthsWeaknesses `json:"strengths_weaknesses"`
}
