package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis_v9 "github.com/redis/go-redis/v9"

	"github.com/MIJINYAWA664/ComUnity/internal/database/redis"
	"github.com/MIJINYAWA664/ComUnity/internal/models"
)

const (
	transcriptionTTL = 30 * 24 * time.Hour
	audioBufferTTL   = 5 * time.Minute
	// LTRIM bound is inclusive, keeps 1000 entries
	transcriptionMaxIndex = 999
)

// SpeechRepository keeps per-user transcription history and the rolling
// audio buffers behind real-time transcription.
type SpeechRepository struct {
	client *redis_v9.Client
}

func NewSpeechRepository() *SpeechRepository {
	return &SpeechRepository{client: redis.Redis_Client}
}

func transcriptionKey(userID string) string {
	return fmt.Sprintf("transcription_history:%s", userID)
}

func audioBufferKey(sessionID string) string {
	return fmt.Sprintf("audio_chunks:%s", sessionID)
}

func (r *SpeechRepository) SaveTranscription(ctx context.Context, userID string, result *models.TranscriptionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("error marshaling transcription: %w", err)
	}
	key := transcriptionKey(userID)
	if err := r.client.LPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("error saving transcription: %w", err)
	}
	if err := r.client.LTrim(ctx, key, 0, transcriptionMaxIndex).Err(); err != nil {
		return fmt.Errorf("error trimming transcription history: %w", err)
	}
	if err := r.client.Expire(ctx, key, transcriptionTTL).Err(); err != nil {
		return fmt.Errorf("error refreshing transcription expiry: %w", err)
	}
	return nil
}

// GetHistory returns transcriptions newest first.
func (r *SpeechRepository) GetHistory(ctx context.Context, userID string, limit int) ([]models.TranscriptionResult, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	raw, err := r.client.LRange(ctx, transcriptionKey(userID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading transcription history: %w", err)
	}

	history := make([]models.TranscriptionResult, 0, len(raw))
	for _, entry := range raw {
		var result models.TranscriptionResult
		if err := json.Unmarshal([]byte(entry), &result); err != nil {
			continue
		}
		history = append(history, result)
	}
	return history, nil
}

// AppendAudio grows the session's audio buffer and returns its new size
// in bytes. The buffer expires quickly; real-time sessions either flush
// it or lose it.
func (r *SpeechRepository) AppendAudio(ctx context.Context, sessionID string, chunk []byte) (int64, error) {
	key := audioBufferKey(sessionID)
	size, err := r.client.Append(ctx, key, string(chunk)).Result()
	if err != nil {
		return 0, fmt.Errorf("error buffering audio chunk: %w", err)
	}
	if err := r.client.Expire(ctx, key, audioBufferTTL).Err(); err != nil {
		return 0, fmt.Errorf("error refreshing audio buffer expiry: %w", err)
	}
	return size, nil
}

func (r *SpeechRepository) GetAudio(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := r.client.Get(ctx, audioBufferKey(sessionID)).Bytes()
	if errors.Is(err, redis_v9.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading audio buffer: %w", err)
	}
	return data, nil
}

func (r *SpeechRepository) ClearAudio(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, audioBufferKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("error clearing audio buffer: %w", err)
	}
	return nil
}
