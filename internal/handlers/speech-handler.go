package handlers

import (
	"context"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MIJINYAWA664/ComUnity/internal/event"
	"github.com/MIJINYAWA664/ComUnity/internal/models"
	"github.com/MIJINYAWA664/ComUnity/internal/service"
)

var (
	// Counter for speech recognition requests
	speechRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speech_recognition_requests_total",
			Help: "Total number of speech recognition requests",
		},
		[]string{"endpoint", "status"},
	)

	// Histogram for speech recognition processing time
	speechDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "speech_recognition_duration_seconds",
			Help:    "Time spent processing speech recognition requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

type SpeechHandler struct {
	Service *service.SpeechService
	Events  event.Publisher
}

func NewSpeechHandler(s *service.SpeechService, events event.Publisher) *SpeechHandler {
	return &SpeechHandler{Service: s, Events: events}
}

// readUpload pulls the bytes out of a multipart file field
func readUpload(c *gin.Context, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// Transcribe converts an uploaded audio file to text, optionally
// translating the transcript into the requested target languages
func (h *SpeechHandler) Transcribe(c *gin.Context) {
	start := time.Now()

	audio, err := readUpload(c, "audio")
	if err != nil {
		speechRequests.WithLabelValues("transcribe", "failure").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Audio file is required",
			"details": err.Error(),
		})
		return
	}

	language := c.DefaultPostForm("language", "auto")
	enableTranslation, _ := strconv.ParseBool(c.DefaultPostForm("enable_translation", "false"))
	targetLanguages := splitLanguages(c.PostForm("target_languages"))
	userID := c.PostForm("user_id")

	result, err := h.Service.Transcribe(context.Background(), audio, language, enableTranslation, targetLanguages, userID)
	if err != nil {
		speechRequests.WithLabelValues("transcribe", "failure").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to transcribe audio",
			"details": err.Error(),
		})
		return
	}

	speechRequests.WithLabelValues("transcribe", "success").Inc()
	speechDuration.WithLabelValues("transcribe").Observe(time.Since(start).Seconds())

	if userID != "" && h.Events != nil {
		if err := h.Events.PublishLearningEvent(&models.LearningEvent{
			EventType: models.EventTypeTranscriptionCompleted,
			UserID:    userID,
			Timestamp: time.Now().UTC(),
			Data: map[string]any{
				"language":   result.Language,
				"confidence": result.Confidence,
			},
		}); err != nil {
			log.Printf("Warning: Failed to publish transcription event: %v", err)
		}
	}

	c.JSON(http.StatusOK, result)
}

// RealTimeTranscribe buffers streamed audio chunks and transcribes once
// enough audio has accumulated. While buffering it reports an empty
// transcript so clients can keep sending chunks.
func (h *SpeechHandler) RealTimeTranscribe(c *gin.Context) {
	start := time.Now()

	chunk, err := readUpload(c, "audio_chunk")
	if err != nil {
		speechRequests.WithLabelValues("real_time", "failure").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Audio chunk is required",
			"details": err.Error(),
		})
		return
	}

	sessionID := c.PostForm("session_id")
	if sessionID == "" {
		speechRequests.WithLabelValues("real_time", "failure").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}
	language := c.DefaultPostForm("language", "auto")

	result, flushed, err := h.Service.RealTimeChunk(context.Background(), sessionID, chunk, language)
	if err != nil {
		speechRequests.WithLabelValues("real_time", "failure").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process audio chunk",
			"details": err.Error(),
		})
		return
	}

	speechRequests.WithLabelValues("real_time", "success").Inc()
	speechDuration.WithLabelValues("real_time").Observe(time.Since(start).Seconds())

	if !flushed {
		c.JSON(http.StatusOK, gin.H{"transcript": "", "confidence": 0.0})
		return
	}
	c.JSON(http.StatusOK, result)
}

// DetectLanguage identifies the spoken language of an audio sample
func (h *SpeechHandler) DetectLanguage(c *gin.Context) {
	audio, err := readUpload(c, "audio")
	if err != nil {
		speechRequests.WithLabelValues("detect_language", "failure").Inc()
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Audio file is required",
			"details": err.Error(),
		})
		return
	}

	language, confidence := h.Service.DetectLanguage(context.Background(), audio)

	speechRequests.WithLabelValues("detect_language", "success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"language":   language,
		"confidence": confidence,
	})
}

// GetHistory lists a user's stored transcriptions, newest first
func (h *SpeechHandler) GetHistory(c *gin.Context) {
	userID := c.Param("user_id")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	history, err := h.Service.GetHistory(context.Background(), userID, limit)
	if err != nil {
		speechRequests.WithLabelValues("history", "failure").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get transcription history",
			"details": err.Error(),
		})
		return
	}

	speechRequests.WithLabelValues("history", "success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"history": history,
		"count":   len(history),
	})
}

func splitLanguages(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	languages := make([]string, 0, len(parts))
	for _, p := range parts {
		if lang := strings.TrimSpace(p); lang != "" {
			languages = append(languages, lang)
		}
	}
	return languages
}
