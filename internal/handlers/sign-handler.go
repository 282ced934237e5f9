package handlers

import (
	"context"
	"encoding/base64"
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
	// Counter for sign recognition requests
	signRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sign_recognition_requests_total",
			Help: "Total number of sign recognition requests",
		},
		[]string{"endpoint", "status"},
	)

	// Histogram for sign recognition processing time
	signDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sign_recognition_duration_seconds",
			Help:    "Time spent processing sign recognition requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Gauge for currently running recognition sessions
	signActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sign_recognition_active_sessions",
			Help: "Current number of active sign recognition sessions",
		},
	)
)

type SignHandler struct {
	Service *service.SignService
	Events  event.Publisher
}

func NewSignHandler(s *service.SignService, events event.Publisher) *SignHandler {
	return &SignHandler{Service: s, Events: events}
}

// StartSession opens a new gesture recognition session
func (h *SignHandler) StartSession(c *gin.Context) {
	start := time.Now()

	var req struct {
		UserID              string                 `json:"user_id" binding:"required"`
		SessionType         models.SignSessionType `json:"session_type"`
		TargetGestures      []string               `json:"target_gestures"`
		ConfidenceThreshold float64                `json:"confidence_threshold"`
		MaxSessionDuration  int                    `json:"max_session_duration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		signRequests.WithLabelValues("start_session", "failure").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	sessionID, session, err := h.Service.StartSession(context.Background(), models.SignSessionConfig{
		UserID:              req.UserID,
		SessionType:         req.SessionType,
		TargetGestures:      req.TargetGestures,
		ConfidenceThreshold: req.ConfidenceThreshold,
		MaxSessionDuration:  req.MaxSessionDuration,
	})
	if err != nil {
		signRequests.WithLabelValues("start_session", "failure").Inc()
		if errors.Is(err, service.ErrUnknownGesture) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid target gestures",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to start session",
			"details": err.Error(),
		})
		return
	}

	signRequests.WithLabelValues("start_session", "success").Inc()
	signDuration.WithLabelValues("start_session").Observe(time.Since(start).Seconds())
	signActiveSessions.Inc()

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"status":     "started",
		"config": gin.H{
			"session_type":         session.SessionType,
			"target_gestures":      session.TargetGestures,
			"confidence_threshold": session.ConfidenceThreshold,
		},
	})
}

// ProcessFrame classifies a single video frame within a session. Unknown
// sessions and frames without hands report a null gesture rather than an
// error so streaming clients keep their loop simple.
func (h *SignHandler) ProcessFrame(c *gin.Context) {
	start := time.Now()

	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		signRequests.WithLabelValues("process_frame", "failure").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	frame, err := readUpload(c, "frame")
	if err != nil {
		signRequests.WithLabelValues("process_frame", "failure").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Frame image is required",
			"details": err.Error(),
		})
		return
	}
	if len(frame) == 0 {
		signRequests.WithLabelValues("process_frame", "failure").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image data"})
		return
	}

	result, err := h.Service.ProcessFrame(context.Background(), sessionID, base64.StdEncoding.EncodeToString(frame))
	if err != nil {
		signRequests.WithLabelValues("process_frame", "failure").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process frame",
			"details": err.Error(),
		})
		return
	}

	signRequests.WithLabelValues("process_frame", "success").Inc()
	signDuration.WithLabelValues("process_frame").Observe(time.Since(start).Seconds())

	if result == nil {
		c.JSON(http.StatusOK, gin.H{"gesture": nil, "confidence": 0.0})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"gesture":            result.Gesture,
		"confidence":         result.Confidence,
		"timestamp":          result.Timestamp,
		"bounding_box":       result.BoundingBox,
		"processing_time_ms": result.ProcessingTimeMs,
	})
}

// GetSessionResults lists the recognitions stored for a session
func (h *SignHandler) GetSessionResults(c *gin.Context) {
	sessionID := c.Param("id")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	results, err := h.Service.GetSessionResults(context.Background(), sessionID, limit)
	if err != nil {
		signRequests.WithLabelValues("get_results", "failure").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get session results",
			"details": err.Error(),
		})
		return
	}

	signRequests.WithLabelValues("get_results", "success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"results":    results,
		"count":      len(results),
	})
}

// EndSession closes a session and returns its statistics
func (h *SignHandler) EndSession(c *gin.Context) {
	start := time.Now()

	var req struct {
		SessionID string `json:"session_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		signRequests.WithLabelValues("end_session", "failure").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	stats, session, err := h.Service.EndSession(context.Background(), req.SessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			signRequests.WithLabelValues("end_session", "failure").Inc()
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		signRequests.WithLabelValues("end_session", "failure").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to end session",
			"details": err.Error(),
		})
		return
	}

	signRequests.WithLabelValues("end_session", "success").Inc()
	signDuration.WithLabelValues("end_session").Observe(time.Since(start).Seconds())
	signActiveSessions.Dec()

	if h.Events != nil {
		if err := h.Events.PublishLearningEvent(&models.LearningEvent{
			EventType: models.EventTypeSignSessionEnded,
			UserID:    session.UserID,
			SessionID: req.SessionID,
			Timestamp: time.Now().UTC(),
			Data:      map[string]any{"total_gestures": stats.TotalGestures},
		}); err != nil {
			log.Printf("Warning: Failed to publish session end event: %v", err)
		}
	}

	c.JSON(http.StatusOK, stats)
}
