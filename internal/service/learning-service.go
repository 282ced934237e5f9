package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MIJINYAWA664/ComUnity/internal/adaptive"
	"github.com/MIJINYAWA664/ComUnity/internal/models"
	"github.com/MIJINYAWA664/ComUnity/internal/repository"
)

var ErrInvalidTimeframe = errors.New("invalid timeframe")

// LearningService orchestrates the adaptive learning flow: it persists
// sessions, keeps profiles current and turns the engine's pure math into
// API responses. Recommendation and adaptation calls degrade instead of
// failing so a storage hiccup never breaks the learner's flow.
type LearningService struct {
	Repo       *repository.LearningRepository
	LessonRepo *repository.LessonRepository
	engine     *adaptive.Engine
}

func NewLearningService(repo *repository.LearningRepository, lessonRepo *repository.LessonRepository) *LearningService {
	return &LearningService{
		Repo:       repo,
		LessonRepo: lessonRepo,
		engine:     adaptive.NewEngine(nil), // Uses default config
	}
}

// AnalyzeSession stores a finished session, refreshes the user's profile
// and returns metrics, insights and next-lesson recommendations. Storage
// failures propagate; the caller decides how to report them.
func (s *LearningService) AnalyzeSession(ctx context.Context, session *models.LearningSession) (*models.SessionAnalysis, error) {
	if _, err := s.Repo.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store learning session: %w", err)
	}

	history, err := s.Repo.GetHistory(ctx, session.UserID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load learning history: %w", err)
	}

	profile, err := s.getOrDefaultProfile(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	recent := history
	if window := s.engine.Config().SkillWindow; len(recent) > window {
		recent = recent[:window]
	}
	s.engine.UpdateProfile(profile, *session, recent)
	if err := s.Repo.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save user profile: %w", err)
	}

	expected, err := s.LessonRepo.ExpectedDuration(ctx, session.LessonID)
	if err != nil {
		log.Printf("Lesson duration lookup failed for %s: %v", session.LessonID, err)
		expected = 0
	}

	lessonHistory := make([]models.LearningSession, 0, len(history))
	for _, past := range history {
		if past.LessonID == session.LessonID {
			lessonHistory = append(lessonHistory, past)
		}
	}

	metrics := s.engine.SessionMetrics(*session, expected, lessonHistory)
	insights := s.engine.Insights(metrics, session.Attempts)

	return &models.SessionAnalysis{
		SessionID:       analysisSessionID(session),
		Metrics:         metrics,
		Insights:        insights,
		Recommendations: s.GetRecommendations(ctx, session.UserID, 0),
	}, nil
}

func analysisSessionID(session *models.LearningSession) string {
	return fmt.Sprintf("%s_%s_%d", session.UserID, session.LessonID, session.StartTime.Unix())
}

// GetRecommendations never fails: any storage or catalog problem is
// logged and the user gets an empty list instead of an error.
func (s *LearningService) GetRecommendations(ctx context.Context, userID string, count int) []models.LessonRecommendation {
	profile, err := s.getOrDefaultProfile(ctx, userID)
	if err != nil {
		log.Printf("Recommendations degraded for %s: %v", userID, err)
		return []models.LessonRecommendation{}
	}

	history, err := s.Repo.GetHistory(ctx, userID, 0)
	if err != nil {
		log.Printf("Recommendations degraded for %s: %v", userID, err)
		return []models.LessonRecommendation{}
	}

	lessons, err := s.LessonRepo.FindAvailable(ctx)
	if err != nil {
		log.Printf("Recommendations degraded for %s: %v", userID, err)
		return []models.LessonRecommendation{}
	}

	return s.buildRecommendations(lessons, profile, history, count)
}

// buildRecommendations scores the catalog against the profile, drops weak
// matches and returns the best count lessons. Ties keep catalog order.
func (s *LearningService) buildRecommendations(lessons []models.Lesson, profile *models.UserProfile, history []models.LearningSession, count int) []models.LessonRecommendation {
	if count <= 0 {
		count = s.engine.Config().DefaultCount
	}

	sc := s.engine.BuildScoringContext(history)

	type scored struct {
		lesson models.Lesson
		score  float64
	}
	candidates := make([]scored, 0, len(lessons))
	for _, lesson := range lessons {
		score := s.engine.ScoreLesson(lesson, profile, sc)
		if score > s.engine.Config().RecommendationCutoff {
			candidates = append(candidates, scored{lesson: lesson, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > count {
		candidates = candidates[:count]
	}

	recommendations := make([]models.LessonRecommendation, 0, len(candidates))
	for _, c := range candidates {
		recommendations = append(recommendations, models.LessonRecommendation{
			LessonID:          c.lesson.ID,
			Title:             c.lesson.Title,
			DifficultyLevel:   c.lesson.DifficultyLevel,
			EstimatedDuration: c.lesson.EstimatedDuration,
			ConfidenceScore:   c.score,
			Reasoning:         s.engine.RecommendationReasoning(c.lesson, profile, c.score),
			Prerequisites:     c.lesson.Prerequisites,
		})
	}
	return recommendations
}

// AdaptDifficulty evaluates a mid-lesson performance sample. The audit
// trail write is detached from the response path; its failure is logged,
// never surfaced.
func (s *LearningService) AdaptDifficulty(ctx context.Context, userID, lessonID string, sample models.PerformanceSample) *models.AdaptationDecision {
	decision := s.engine.EvaluateAdaptation(sample)
	if !decision.Adapted {
		return &decision
	}

	record := &models.AdaptationRecord{
		UserID:         userID,
		LessonID:       lessonID,
		AdaptationType: decision.AdaptationType,
		Parameters:     decision.Parameters,
		Timestamp:      time.Now().UTC(),
	}
	go func() {
		// Outlives the request on purpose; the caller is not waiting
		// for the audit trail.
		logCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Repo.LogAdaptation(logCtx, record); err != nil {
			log.Printf("Adaptation audit log failed for %s: %v", userID, err)
		}
	}()

	return &decision
}

// GetAnalytics summarizes the user's sessions inside the timeframe.
// A nil result without error means there was nothing to summarize.
func (s *LearningService) GetAnalytics(ctx context.Context, userID, timeframe string) (*models.LearningAnalytics, error) {
	days, err := parseTimeframe(timeframe)
	if err != nil {
		return nil, err
	}

	history, err := s.Repo.GetHistory(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load learning history: %w", err)
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, -days)
	windowed := make([]models.LearningSession, 0, len(history))
	for _, session := range history {
		if !session.StartTime.Before(cutoff) {
			windowed = append(windowed, session)
		}
	}
	if len(windowed) == 0 {
		return nil, nil
	}

	analytics := s.engine.Analytics(windowed, now)
	return &analytics, nil
}

// parseTimeframe accepts the "30d" form used by the analytics endpoint.
func parseTimeframe(timeframe string) (int, error) {
	trimmed := strings.TrimSuffix(timeframe, "d")
	if trimmed == timeframe || trimmed == "" {
		return 0, ErrInvalidTimeframe
	}
	days, err := strconv.Atoi(trimmed)
	if err != nil || days <= 0 {
		return 0, ErrInvalidTimeframe
	}
	return days, nil
}

func (s *LearningService) getOrDefaultProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.Repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}
	if profile == nil {
		profile = models.DefaultProfile(userID)
	}
	return profile, nil
}
