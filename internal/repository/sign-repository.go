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

const signResultsTTL = time.Hour

// SignRepository keeps recognition sessions and their per-frame results
// in Redis. The store is the only session registry, so sessions survive
// service restarts and expire on their own.
type SignRepository struct {
	client *redis_v9.Client
}

func NewSignRepository() *SignRepository {
	return &SignRepository{client: redis.Redis_Client}
}

func signSessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func signResultsKey(sessionID string) string {
	return fmt.Sprintf("results:%s", sessionID)
}

func (r *SignRepository) SaveSession(ctx context.Context, sessionID string, session *models.SignSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error marshaling sign session: %w", err)
	}
	if err := r.client.Set(ctx, signSessionKey(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("error saving sign session: %w", err)
	}
	return nil
}

// GetSession returns nil without error for unknown or expired sessions.
func (r *SignRepository) GetSession(ctx context.Context, sessionID string) (*models.SignSession, error) {
	data, err := r.client.Get(ctx, signSessionKey(sessionID)).Bytes()
	if errors.Is(err, redis_v9.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading sign session: %w", err)
	}

	session := &models.SignSession{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("error decoding sign session: %w", err)
	}
	return session, nil
}

func (r *SignRepository) AppendResult(ctx context.Context, sessionID string, result *models.RecognitionResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("error marshaling recognition result: %w", err)
	}
	key := signResultsKey(sessionID)
	if err := r.client.LPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("error appending recognition result: %w", err)
	}
	if err := r.client.Expire(ctx, key, signResultsTTL).Err(); err != nil {
		return fmt.Errorf("error refreshing results expiry: %w", err)
	}
	return nil
}

// GetResults returns results newest first. limit <= 0 returns everything.
func (r *SignRepository) GetResults(ctx context.Context, sessionID string, limit int) ([]models.RecognitionResult, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	raw, err := r.client.LRange(ctx, signResultsKey(sessionID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading recognition results: %w", err)
	}

	results := make([]models.RecognitionResult, 0, len(raw))
	for _, entry := range raw {
		var result models.RecognitionResult
		if err := json.Unmarshal([]byte(entry), &result); err != nil {
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

// DeleteSession removes the session and its result list together.
func (r *SignRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, signSessionKey(sessionID), signResultsKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("error deleting sign session: %w", err)
	}
	return nil
}
