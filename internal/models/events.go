package models

import (
	"time"
)

type EventType string

const (
	EventTypeSessionAnalyzed        EventType = "learning.session.analyzed"
	EventTypeDifficultyAdapted      EventType = "learning.difficulty.adapted"
	EventTypeSignSessionEnded       EventType = "sign.session.ended"
	EventTypeTranscriptionCompleted EventType = "speech.transcription.completed"
)

type LearningEvent struct {
	EventType EventType      `json:"eventType"`
	UserID    string         `json:"userId"`
	SessionID string         `json:"sessionId,omitempty"`
	LessonID  string         `json:"lessonId,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}
