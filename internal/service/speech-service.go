package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MIJINYAWA664/ComUnity/internal/models"
	"github.com/MIJINYAWA664/ComUnity/internal/repository"
)

// The real-time endpoint buffers incoming chunks until roughly two
// seconds of 16kHz PCM have accumulated, then transcribes the batch.
const audioFlushThreshold = 32000

// Counter for translation requests. Lives here rather than in the
// handlers because only the service sees per-language outcomes.
var translationRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "translation_requests_total",
		Help: "Total number of translation requests",
	},
	[]string{"target_language", "status"},
)

// Transcriber is the speech model-server dependency.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (*models.Transcription, error)
	DetectLanguage(ctx context.Context, audio []byte) (string, float64, error)
}

// Translator turns transcripts into other languages.
type Translator interface {
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)
}

// SpeechService transcribes audio, optionally translates the transcript
// and keeps per-user history.
type SpeechService struct {
	Repo       *repository.SpeechRepository
	Speech     Transcriber
	Translator Translator
}

func NewSpeechService(repo *repository.SpeechRepository, speech Transcriber, translator Translator) *SpeechService {
	return &SpeechService{Repo: repo, Speech: speech, Translator: translator}
}

// Transcribe runs one audio payload through the model. Translations are
// per-language best effort: a failed target falls back to the original
// transcript instead of failing the request. A non-empty userID archives
// the result in that user's history.
func (s *SpeechService) Transcribe(ctx context.Context, audio []byte, language string, enableTranslation bool, targetLanguages []string, userID string) (*models.TranscriptionResult, error) {
	if language == "" {
		language = "auto"
	}

	start := time.Now()
	transcription, err := s.Speech.Transcribe(ctx, audio, language)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	result := &models.TranscriptionResult{
		Transcript:       transcription.Text,
		Confidence:       transcriptionConfidence(transcription),
		Language:         transcription.Language,
		Timestamp:        time.Now().UTC(),
		ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
	}

	if enableTranslation && result.Transcript != "" {
		result.Translations = s.translateAll(ctx, result.Transcript, result.Language, targetLanguages)
	}

	if userID != "" {
		if err := s.Repo.SaveTranscription(ctx, userID, result); err != nil {
			log.Printf("Failed to archive transcription for %s: %v", userID, err)
		}
	}

	return result, nil
}

func (s *SpeechService) translateAll(ctx context.Context, transcript, sourceLanguage string, targetLanguages []string) map[string]string {
	translations := make(map[string]string)
	for _, target := range targetLanguages {
		if _, supported := models.SupportedLanguages[target]; !supported {
			continue
		}
		if target == sourceLanguage {
			continue
		}

		translated, err := s.Translator.Translate(ctx, transcript, sourceLanguage, target)
		if err != nil {
			log.Printf("Translation to %s failed: %v", target, err)
			translationRequests.WithLabelValues(target, "failure").Inc()
			translations[target] = transcript
			continue
		}
		translationRequests.WithLabelValues(target, "success").Inc()
		translations[target] = translated
	}
	return translations
}

// RealTimeChunk buffers one chunk of streaming audio. Until the buffer
// reaches the flush threshold it returns (nil, false, nil); once full it
// transcribes the accumulated audio and clears the buffer.
func (s *SpeechService) RealTimeChunk(ctx context.Context, sessionID string, chunk []byte, language string) (*models.TranscriptionResult, bool, error) {
	size, err := s.Repo.AppendAudio(ctx, sessionID, chunk)
	if err != nil {
		return nil, false, err
	}
	if size < audioFlushThreshold {
		return nil, false, nil
	}

	audio, err := s.Repo.GetAudio(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	result, err := s.Transcribe(ctx, audio, language, false, nil, "")
	if err != nil {
		return nil, false, err
	}

	if err := s.Repo.ClearAudio(ctx, sessionID); err != nil {
		log.Printf("Failed to clear audio buffer for session %s: %v", sessionID, err)
	}

	return result, true, nil
}

// DetectLanguage never fails: detection errors fall back to English at
// low confidence so the caller always has something to work with.
func (s *SpeechService) DetectLanguage(ctx context.Context, audio []byte) (string, float64) {
	language, confidence, err := s.Speech.DetectLanguage(ctx, audio)
	if err != nil {
		log.Printf("Language detection failed: %v", err)
		return "en", 0.5
	}
	if confidence <= 0 {
		confidence = 0.8
	}
	return language, confidence
}

// GetHistory returns the user's transcriptions newest first.
func (s *SpeechService) GetHistory(ctx context.Context, userID string, limit int) ([]models.TranscriptionResult, error) {
	return s.Repo.GetHistory(ctx, userID, limit)
}

// transcriptionConfidence prefers the model's own per-segment confidence.
// Without segments it falls back to a text heuristic: clean longer text
// scores higher, bracketed artifacts keep the estimate low.
func transcriptionConfidence(transcription *models.Transcription) float64 {
	if len(transcription.Segments) > 0 {
		sum := 0.0
		for _, segment := range transcription.Segments {
			sum += segment.Confidence
		}
		return sum / float64(len(transcription.Segments))
	}

	text := strings.TrimSpace(transcription.Text)
	if len(text) > 10 && !strings.ContainsAny(text, "[]()") {
		return 0.85
	}
	if len(text) > 5 {
		return 0.70
	}
	return 0.50
}
