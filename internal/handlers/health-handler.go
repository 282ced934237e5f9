package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MIJINYAWA664/ComUnity/internal/database/mongo"
	"github.com/MIJINYAWA664/ComUnity/internal/database/redis"
	"github.com/MIJINYAWA664/ComUnity/internal/inference"
)

type HealthHandler struct {
	Gesture *inference.GestureClient
	Speech  *inference.SpeechClient
}

func NewHealthHandler(gesture *inference.GestureClient, speech *inference.SpeechClient) *HealthHandler {
	return &HealthHandler{Gesture: gesture, Speech: speech}
}

// HealthCheck reports overall service health plus per-subsystem status.
// Redis is the only hard dependency; everything else degrades.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	components := gin.H{
		"redis":   componentStatus(redis.IsConnected()),
		"mongodb": componentStatus(mongo.IsConnected()),
	}
	if h.Gesture != nil {
		components["gesture_model"] = componentStatus(h.Gesture.IsConnected())
	}
	if h.Speech != nil {
		components["speech_model"] = componentStatus(h.Speech.IsConnected())
	}

	status := "healthy"
	if !redis.IsConnected() {
		status = "unhealthy"
	} else {
		for _, s := range components {
			if s != "up" {
				status = "degraded"
				break
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"service":    "ai-service",
		"status":     status,
		"components": components,
		"timestamp":  time.Now().UTC(),
	})
}

func componentStatus(up bool) string {
	if up {
		return "up"
	}
	return "down"
}
