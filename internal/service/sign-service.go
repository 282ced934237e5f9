package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MIJINYAWA664/ComUnity/internal/models"
	"github.com/MIJINYAWA664/ComUnity/internal/repository"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownGesture  = errors.New("unknown target gesture")
)

const (
	defaultConfidenceThreshold = 0.8
	defaultSessionType         = models.SignSessionCommunication
	defaultMaxSessionDuration  = 3600 // seconds
)

// GestureRecognizer is the model-server dependency of the sign service.
type GestureRecognizer interface {
	Predict(ctx context.Context, frameData string) (*models.GesturePrediction, error)
}

// SignService runs gesture recognition sessions. Session state lives in
// Redis only, so sessions survive restarts and expire on their own.
type SignService struct {
	Repo    *repository.SignRepository
	Gesture GestureRecognizer
}

func NewSignService(repo *repository.SignRepository, gesture GestureRecognizer) *SignService {
	return &SignService{Repo: repo, Gesture: gesture}
}

var knownGestures = func() map[string]bool {
	known := make(map[string]bool, len(models.GestureClasses))
	for _, gesture := range models.GestureClasses {
		known[gesture] = true
	}
	return known
}()

// StartSession registers a new recognition session and returns its id.
// Target gestures must come from the recognizable vocabulary.
func (s *SignService) StartSession(ctx context.Context, cfg models.SignSessionConfig) (string, *models.SignSession, error) {
	for _, gesture := range cfg.TargetGestures {
		if !knownGestures[gesture] {
			return "", nil, fmt.Errorf("%w: %s", ErrUnknownGesture, gesture)
		}
	}

	sessionType := cfg.SessionType
	if sessionType == "" {
		sessionType = defaultSessionType
	}
	threshold := cfg.ConfidenceThreshold
	if threshold <= 0 {
		threshold = defaultConfidenceThreshold
	}
	maxDuration := cfg.MaxSessionDuration
	if maxDuration <= 0 {
		maxDuration = defaultMaxSessionDuration
	}

	now := time.Now().UTC()
	sessionID := fmt.Sprintf("session_%s_%d", cfg.UserID, now.Unix())
	session := &models.SignSession{
		UserID:              cfg.UserID,
		SessionType:         sessionType,
		TargetGestures:      cfg.TargetGestures,
		StartTime:           now,
		ConfidenceThreshold: threshold,
	}

	ttl := time.Duration(maxDuration) * time.Second
	if err := s.Repo.SaveSession(ctx, sessionID, session, ttl); err != nil {
		return "", nil, err
	}
	return sessionID, session, nil
}

// ProcessFrame classifies one video frame. A nil result without error
// means there is nothing to report: the session is unknown or expired,
// no hands were visible, or the model call failed (which is logged).
func (s *SignService) ProcessFrame(ctx context.Context, sessionID, frameData string) (*models.RecognitionResult, error) {
	session, err := s.Repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	start := time.Now()
	prediction, err := s.Gesture.Predict(ctx, frameData)
	if err != nil {
		log.Printf("Gesture inference failed for session %s: %v", sessionID, err)
		return nil, nil
	}
	if !prediction.HandsFound {
		return nil, nil
	}

	top, ok := bestScore(prediction)
	if !ok {
		return nil, nil
	}

	result := &models.RecognitionResult{
		Gesture:          top.Gesture,
		Confidence:       top.Confidence,
		Timestamp:        time.Now().UTC(),
		BoundingBox:      prediction.BoundingBox,
		Landmarks:        prediction.Landmarks,
		ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
	}

	if result.Confidence >= session.ConfidenceThreshold {
		// Landmarks are returned to the caller but too bulky to retain
		stored := *result
		stored.Landmarks = nil
		if err := s.Repo.AppendResult(ctx, sessionID, &stored); err != nil {
			log.Printf("Failed to store recognition result for session %s: %v", sessionID, err)
		}
	}

	return result, nil
}

// bestScore picks the model's most confident class.
func bestScore(prediction *models.GesturePrediction) (models.GestureScore, bool) {
	if len(prediction.Scores) == 0 {
		return models.GestureScore{}, false
	}
	best := prediction.Scores[0]
	for _, score := range prediction.Scores[1:] {
		if score.Confidence > best.Confidence {
			best = score
		}
	}
	return best, true
}

// GetSessionResults returns stored results newest first. Unknown sessions
// yield an empty list, matching what an expired session would return.
func (s *SignService) GetSessionResults(ctx context.Context, sessionID string, limit int) ([]models.RecognitionResult, error) {
	return s.Repo.GetResults(ctx, sessionID, limit)
}

// EndSession computes the final statistics and removes the session. The
// session itself is returned alongside the stats so callers still know
// whose session just closed.
func (s *SignService) EndSession(ctx context.Context, sessionID string) (*models.SignSessionStats, *models.SignSession, error) {
	session, err := s.Repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}

	results, err := s.Repo.GetResults(ctx, sessionID, 0)
	if err != nil {
		return nil, nil, err
	}

	stats := buildSessionStats(sessionID, session, results, time.Now().UTC())

	if err := s.Repo.DeleteSession(ctx, sessionID); err != nil {
		log.Printf("Failed to delete sign session %s: %v", sessionID, err)
	}

	return stats, session, nil
}

func buildSessionStats(sessionID string, session *models.SignSession, results []models.RecognitionResult, now time.Time) *models.SignSessionStats {
	stats := &models.SignSessionStats{
		SessionID:        sessionID,
		TotalGestures:    len(results),
		GestureFrequency: make(map[string]int),
		SessionDuration:  now.Sub(session.StartTime).Seconds(),
	}

	if len(results) == 0 {
		return stats
	}

	var confidenceSum, processingSum float64
	for _, result := range results {
		confidenceSum += result.Confidence
		processingSum += result.ProcessingTimeMs
		stats.GestureFrequency[result.Gesture]++
	}
	count := float64(len(results))
	stats.AverageConfidence = confidenceSum / count
	stats.AverageProcessingTimeMs = processingSum / count

	return stats
}
