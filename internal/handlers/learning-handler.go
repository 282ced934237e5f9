package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MIJINYAWA664/ComUnity/internal/event"
	"github.com/MIJINYAWA664/ComUnity/internal/models"
	"github.com/MIJINYAWA664/ComUnity/internal/service"
)

var (
	// Counter for learning service requests
	learningRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learning_requests_total",
			Help: "Total number of learning service requests",
		},
		[]string{"endpoint", "status"},
	)

	// Histogram for learning request processing time
	learningDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "learning_request_duration_seconds",
			Help:    "Time spent processing learning service requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

type LearningHandler struct {
	Service *service.LearningService
	Events  event.Publisher
}

func NewLearningHandler(s *service.LearningService, events event.Publisher) *LearningHandler {
	return &LearningHandler{Service: s, Events: events}
}

// AnalyzeSession stores a completed learning session and returns the
// computed performance metrics, insights and updated recommendations
func (h *LearningHandler) AnalyzeSession(c *gin.Context) {
	start := time.Now()

	var req struct {
		UserID               string           `json:"user_id" binding:"required"`
		LessonID             string           `json:"lesson_id" binding:"required"`
		StartTime            *time.Time       `json:"start_time" binding:"required"`
		EndTime              *time.Time       `json:"end_time"`
		AccuracyScore        float64          `json:"accuracy_score"`
		CompletionPercentage float64          `json:"completion_percentage"`
		TimeSpent            int              `json:"time_spent"`
		Attempts             *int             `json:"attempts"`
		DifficultyLevel      string           `json:"difficulty_level"`
		Mistakes             []map[string]any `json:"mistakes"`
		EngagementScore      *float64         `json:"engagement_score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		learningRequests.WithLabelValues("analyze_session", "failure").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	session := models.LearningSession{
		UserID:               req.UserID,
		LessonID:             req.LessonID,
		StartTime:            *req.StartTime,
		EndTime:              req.EndTime,
		AccuracyScore:        req.AccuracyScore,
		CompletionPercentage: req.CompletionPercentage,
		TimeSpent:            req.TimeSpent,
		Attempts:             1,
		DifficultyLevel:      models.DifficultyBeginner,
		Mistakes:             req.Mistakes,
		EngagementScore:      0.5,
	}
	if req.Attempts != nil {
		session.Attempts = *req.Attempts
	}
	if req.DifficultyLevel != "" {
		session.DifficultyLevel = models.DifficultyLevel(req.DifficultyLevel)
	}
	if req.EngagementScore != nil {
		session.EngagementScore = *req.EngagementScore
	}
	if session.Mistakes == nil {
		session.Mistakes = []map[string]any{}
	}

	analysis, err := h.Service.AnalyzeSession(context.Background(), &session)
	if err != nil {
		learningRequests.WithLabelValues("analyze_session", "failure").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to analyze session",
			"details": err.Error(),
		})
		return
	}

	learningRequests.WithLabelValues("analyze_session", "success").Inc()
	learningDuration.WithLabelValues("analyze_session").Observe(time.Since(start).Seconds())

	if h.Events != nil {
		if err := h.Events.PublishLearningEvent(&models.LearningEvent{
			EventType: models.EventTypeSessionAnalyzed,
			UserID:    session.UserID,
			LessonID:  session.LessonID,
			Timestamp: time.Now().UTC(),
			Data:      map[string]any{"accuracy": session.AccuracyScore},
		}); err != nil {
			log.Printf("Warning: Failed to publish session analyzed event: %v", err)
		}
	}

	c.JSON(http.StatusOK, analysis)
}

// GetRecommendations returns lessons ranked for the user. Missing
// profiles and an unavailable catalog degrade to an empty list.
func (h *LearningHandler) GetRecommendations(c *gin.Context) {
	start := time.Now()

	userID := c.Param("user_id")
	count, err := strconv.Atoi(c.DefaultQuery("count", "5"))
	if err != nil || count <= 0 {
		count = 5
	}

	recommendations := h.Service.GetRecommendations(context.Background(), userID, count)

	learningRequests.WithLabelValues("recommendations", "success").Inc()
	learningDuration.WithLabelValues("recommendations").Observe(time.Since(start).Seconds())

	c.JSON(http.StatusOK, gin.H{
		"user_id":         userID,
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}

// AdaptDifficulty evaluates recent performance and reports whether the
// lesson difficulty should change. The endpoint never fails: malformed
// requests simply produce a no-adaptation response.
func (h *LearningHandler) AdaptDifficulty(c *gin.Context) {
	start := time.Now()

	var req struct {
		UserID     string   `json:"user_id" binding:"required"`
		LessonID   string   `json:"lesson_id" binding:"required"`
		Accuracy   float64  `json:"accuracy"`
		Speed      *float64 `json:"speed"`
		Engagement *float64 `json:"engagement"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		learningRequests.WithLabelValues("adapt_difficulty", "failure").Inc()
		c.JSON(http.StatusOK, gin.H{
			"adapted": false,
			"error":   "Invalid request format",
		})
		return
	}

	sample := models.PerformanceSample{Accuracy: req.Accuracy, Speed: 1.0, Engagement: 0.5}
	if req.Speed != nil {
		sample.Speed = *req.Speed
	}
	if req.Engagement != nil {
		sample.Engagement = *req.Engagement
	}

	decision := h.Service.AdaptDifficulty(context.Background(), req.UserID, req.LessonID, sample)

	learningRequests.WithLabelValues("adapt_difficulty", "success").Inc()
	learningDuration.WithLabelValues("adapt_difficulty").Observe(time.Since(start).Seconds())

	if decision.Adapted && h.Events != nil {
		if err := h.Events.PublishLearningEvent(&models.LearningEvent{
			EventType: models.EventTypeDifficultyAdapted,
			UserID:    req.UserID,
			LessonID:  req.LessonID,
			Timestamp: time.Now().UTC(),
			Data:      map[string]any{"adaptation_type": decision.AdaptationType},
		}); err != nil {
			log.Printf("Warning: Failed to publish difficulty adapted event: %v", err)
		}
	}

	c.JSON(http.StatusOK, decision)
}

// GetAnalytics aggregates a user's learning history over a timeframe
func (h *LearningHandler) GetAnalytics(c *gin.Context) {
	start := time.Now()

	userID := c.Param("user_id")
	timeframe := c.DefaultQuery("timeframe", "30d")

	analytics, err := h.Service.GetAnalytics(context.Background(), userID, timeframe)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeframe) {
			learningRequests.WithLabelValues("analytics", "failure").Inc()
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid timeframe",
				"details": err.Error(),
			})
			return
		}
		learningRequests.WithLabelValues("analytics", "failure").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to compute analytics",
			"details": err.Error(),
		})
		return
	}
	if analytics == nil {
		learningRequests.WithLabelValues("analytics", "success").Inc()
		c.JSON(http.StatusOK, gin.H{
			"error": "No learning data available for the specified timeframe",
		})
		return
	}

	learningRequests.WithLabelValues("analytics", "success").Inc()
	learningDuration.WithLabelValues("analytics").Observe(time.Since(start).Seconds())

	c.JSON(http.StatusOK, analytics)
}
