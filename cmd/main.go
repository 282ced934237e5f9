package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MIJINYAWA664/ComUnity/internal/config"
	"github.com/MIJINYAWA664/ComUnity/internal/database/mongo"
	"github.com/MIJINYAWA664/ComUnity/internal/database/redis"
	"github.com/MIJINYAWA664/ComUnity/internal/event"
	"github.com/MIJINYAWA664/ComUnity/internal/handlers"
	"github.com/MIJINYAWA664/ComUnity/internal/inference"
	"github.com/MIJINYAWA664/ComUnity/internal/repository"
	"github.com/MIJINYAWA664/ComUnity/internal/service"
	"github.com/MIJINYAWA664/ComUnity/pkg/discovery"
)

func setupLogging(logDir string) (*os.File, error) {
	if logDir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	logFileName := fmt.Sprintf("log_%s.log", time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	config.LoadConfig()
	cfg := config.ServiceConfig

	logFile, err := setupLogging(cfg.Server.LogDir)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	gin.SetMode(cfg.Server.GinMode)

	// Redis holds all session state; the service cannot run without it
	if err := redis.InitRedis(&cfg.Redis); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	if err := mongo.InitMongo(&cfg.MongoDB); err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}

	var events event.Publisher
	publisher, err := event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Printf("Warning: Failed to initialize event publisher: %v", err)
	} else {
		events = publisher
		defer publisher.Close()
	}

	registry, err := discovery.NewServiceRegistry(cfg)
	if err != nil {
		log.Printf("Warning: Failed to create Consul client: %v", err)
		registry = nil
	} else if err := registry.Register(); err != nil {
		log.Printf("Warning: Failed to register with Consul: %v", err)
		registry = nil
	}

	pool := repository.NewKVPool(2)
	pool.Start()

	// Model-serving clients
	gestureClient := inference.NewGestureClient(&cfg.Inference)
	speechClient := inference.NewSpeechClient(&cfg.Inference)
	translateClient := inference.NewTranslateClient(&cfg.Inference)

	// Sign recognition
	signRepo := repository.NewSignRepository()
	signService := service.NewSignService(signRepo, gestureClient)
	signHandler := handlers.NewSignHandler(signService, events)

	// Speech processing
	speechRepo := repository.NewSpeechRepository()
	speechService := service.NewSpeechService(speechRepo, speechClient, translateClient)
	speechHandler := handlers.NewSpeechHandler(speechService, events)

	// Adaptive learning
	learningRepo := repository.NewLearningRepository(pool)
	lessonRepo := repository.NewLessonRepository(mongo.Mongo_Database)
	learningService := service.NewLearningService(learningRepo, lessonRepo)
	learningHandler := handlers.NewLearningHandler(learningService, events)

	healthHandler := handlers.NewHealthHandler(gestureClient, speechClient)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupSignRoutes(r, signHandler)
	setupSpeechRoutes(r, speechHandler)
	setupLearningRoutes(r, learningHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	shutdownChan := make(chan os.Signal, 1)
	doneChan := make(chan bool, 1)

	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
		doneChan <- true
	}()

	<-shutdownChan
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	if registry != nil {
		if err := registry.Deregister(); err != nil {
			log.Printf("Error deregistering from service discovery: %v", err)
		}
	}

	pool.Close()
	mongo.DisconnectMongo()
	redis.CloseRedis()

	<-doneChan
	log.Println("Server shutdown complete")
}

func setupSignRoutes(r *gin.Engine, h *handlers.SignHandler) {
	sign := r.Group("/api/sign-recognition")
	{
		sign.POST("/start-session", h.StartSession)
		sign.POST("/process-frame", h.ProcessFrame)
		sign.GET("/sessions/:id/results", h.GetSessionResults)
		sign.POST("/end-session", h.EndSession)
	}
}

func setupSpeechRoutes(r *gin.Engine, h *handlers.SpeechHandler) {
	speech := r.Group("/api/speech")
	{
		speech.POST("/transcribe", h.Transcribe)
		speech.POST("/real-time-transcribe", h.RealTimeTranscribe)
		speech.POST("/detect-language", h.DetectLanguage)
		speech.GET("/history/:user_id", h.GetHistory)
	}
}

func setupLearningRoutes(r *gin.Engine, h *handlers.LearningHandler) {
	learning := r.Group("/api/learning")
	{
		learning.POST("/analyze-session", h.AnalyzeSession)
		learning.GET("/recommendations/:user_id", h.GetRecommendations)
		learning.POST("/adapt-difficulty", h.AdaptDifficulty)
		learning.GET("/analytics/:user_id", h.GetAnalytics)
	}
}
