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
	learningSessionTTL = 90 * 24 * time.Hour
	adaptationLogTTL   = 30 * 24 * time.Hour
	// LTRIM bounds are inclusive, so these keep 1000 and 100 entries
	historyMaxIndex    = 999
	adaptationMaxIndex = 99
)

// LearningRepository persists learning sessions, user profiles and the
// adaptation audit trail in Redis. Every command runs through the shared
// KV pool so the learning endpoints cannot flood the store.
type LearningRepository struct {
	client *redis_v9.Client
	pool   *KVPool
}

func NewLearningRepository(pool *KVPool) *LearningRepository {
	return &LearningRepository{
		client: redis.Redis_Client,
		pool:   pool,
	}
}

func sessionKey(userID string, start time.Time) string {
	return fmt.Sprintf("learning_session:%s:%d", userID, start.Unix())
}

func historyKey(userID string) string {
	return fmt.Sprintf("user_sessions:%s", userID)
}

func profileKey(userID string) string {
	return fmt.Sprintf("user_profile:%s", userID)
}

func adaptationKey(userID string) string {
	return fmt.Sprintf("adaptation_log:%s", userID)
}

// SaveSession stores the session under its own key and pushes that key
// onto the user's history list, newest first, trimmed to the cap.
func (r *LearningRepository) SaveSession(ctx context.Context, session *models.LearningSession) (string, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("error marshaling learning session: %w", err)
	}

	key := sessionKey(session.UserID, session.StartTime)
	err = r.pool.Do(ctx, func(ctx context.Context) error {
		if err := r.client.Set(ctx, key, data, learningSessionTTL).Err(); err != nil {
			return fmt.Errorf("error saving learning session: %w", err)
		}
		listKey := historyKey(session.UserID)
		if err := r.client.LPush(ctx, listKey, key).Err(); err != nil {
			return fmt.Errorf("error recording session in history: %w", err)
		}
		if err := r.client.LTrim(ctx, listKey, 0, historyMaxIndex).Err(); err != nil {
			return fmt.Errorf("error trimming session history: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// GetHistory returns the user's sessions newest first. limit <= 0 returns
// everything still retained. Sessions whose keys have expired out from
// under the history list are skipped silently.
func (r *LearningRepository) GetHistory(ctx context.Context, userID string, limit int) ([]models.LearningSession, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	var sessions []models.LearningSession
	err := r.pool.Do(ctx, func(ctx context.Context) error {
		keys, err := r.client.LRange(ctx, historyKey(userID), 0, stop).Result()
		if err != nil {
			return fmt.Errorf("error reading session history: %w", err)
		}
		if len(keys) == 0 {
			return nil
		}

		values, err := r.client.MGet(ctx, keys...).Result()
		if err != nil {
			return fmt.Errorf("error loading sessions: %w", err)
		}

		sessions = make([]models.LearningSession, 0, len(values))
		for _, value := range values {
			raw, ok := value.(string)
			if !ok {
				continue
			}
			var session models.LearningSession
			if err := json.Unmarshal([]byte(raw), &session); err != nil {
				continue
			}
			sessions = append(sessions, session)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetProfile returns nil without error when the user has no profile yet.
func (r *LearningRepository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile *models.UserProfile
	err := r.pool.Do(ctx, func(ctx context.Context) error {
		data, err := r.client.Get(ctx, profileKey(userID)).Bytes()
		if errors.Is(err, redis_v9.Nil) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error loading user profile: %w", err)
		}

		profile = &models.UserProfile{}
		if err := json.Unmarshal(data, profile); err != nil {
			return fmt.Errorf("error decoding user profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *LearningRepository) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("error marshaling user profile: %w", err)
	}
	return r.pool.Do(ctx, func(ctx context.Context) error {
		if err := r.client.Set(ctx, profileKey(profile.UserID), data, 0).Err(); err != nil {
			return fmt.Errorf("error saving user profile: %w", err)
		}
		return nil
	})
}

// LogAdaptation appends to the user's adaptation audit trail. The trail
// is advisory, so callers usually log failures and move on.
func (r *LearningRepository) LogAdaptation(ctx context.Context, record *models.AdaptationRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error marshaling adaptation record: %w", err)
	}
	key := adaptationKey(record.UserID)
	return r.pool.Do(ctx, func(ctx context.Context) error {
		if err := r.client.LPush(ctx, key, data).Err(); err != nil {
			return fmt.Errorf("error logging adaptation: %w", err)
		}
		if err := r.client.LTrim(ctx, key, 0, adaptationMaxIndex).Err(); err != nil {
			return fmt.Errorf("error trimming adaptation log: %w", err)
		}
		if err := r.client.Expire(ctx, key, adaptationLogTTL).Err(); err != nil {
			return fmt.Errorf("error refreshing adaptation log expiry: %w", err)
		}
		return nil
	})
}
