package models

import "time"

// GestureClasses is the label set of the gesture model, in model output
// order.
var GestureClasses = []string{
	"hello", "thank_you", "please", "help", "yes", "no",
	"good", "bad", "more", "stop", "go", "come",
	"eat", "drink", "sleep", "work", "home", "family",
	"friend", "love", "happy", "sad", "angry", "afraid",
	"hot", "cold", "big", "small", "fast", "slow",
}

// SignSessionConfig is what a caller provides when opening a session.
type SignSessionConfig struct {
	UserID              string          `json:"user_id"`
	SessionType         SignSessionType `json:"session_type"`
	TargetGestures      []string        `json:"target_gestures"`
	ConfidenceThreshold float64         `json:"confidence_threshold"`
	MaxSessionDuration  int             `json:"max_session_duration"` // seconds
}

// SignSession is the stored session state, kept until the session ends or
// its TTL runs out.
type SignSession struct {
	UserID              string          `json:"user_id"`
	SessionType         SignSessionType `json:"session_type"`
	TargetGestures      []string        `json:"target_gestures"`
	StartTime           time.Time       `json:"start_time"`
	ConfidenceThreshold float64         `json:"confidence_threshold"`
}

type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// GesturePrediction is the raw answer of the gesture model for one frame.
type GesturePrediction struct {
	Scores      []GestureScore `json:"scores"`
	BoundingBox BoundingBox    `json:"bounding_box"`
	Landmarks   []Landmark     `json:"landmarks"`
	HandsFound  bool           `json:"hands_found"`
}

type GestureScore struct {
	Gesture    string  `json:"gesture"`
	Confidence float64 `json:"confidence"`
}

// RecognitionResult is one recognized gesture. Landmarks are returned to
// the caller but never stored.
type RecognitionResult struct {
	Gesture          string      `json:"gesture"`
	Confidence       float64     `json:"confidence"`
	Timestamp        time.Time   `json:"timestamp"`
	BoundingBox      BoundingBox `json:"bounding_box"`
	Landmarks        []Landmark  `json:"landmarks,omitempty"`
	ProcessingTimeMs float64     `json:"processing_time_ms"`
}

type SignSessionStats struct {
	SessionID               string         `json:"session_id"`
	TotalGestures           int            `json:"total_gestures"`
	AverageConfidence       float64        `json:"average_confidence"`
	AverageProcessingTimeMs float64        `json:"average_processing_time_ms"`
	GestureFrequency        map[string]int `json:"gesture_frequency"`
	SessionDuration         float64        `json:"session_duration"` // seconds
}
