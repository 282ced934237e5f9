package models

import "time"

// UserProfile holds a user's learning characteristics. One per user,
// created lazily with defaults on first access and rewritten after each
// analyzed session (last writer wins).
type UserProfile struct {
	UserID        string          `json:"user_id"`
	LearningStyle LearningStyle   `json:"learning_style"`
	SkillLevel    DifficultyLevel `json:"skill_level"`
	PreferredPace PreferredPace   `json:"preferred_pace"`
	Strengths     []string        `json:"strengths"`
	Weaknesses    []string        `json:"weaknesses"`
	Goals         []string        `json:"goals"`
	LastUpdated   time.Time       `json:"last_updated"`
}

func DefaultProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:        userID,
		LearningStyle: LearningStyleMixed,
		SkillLevel:    DifficultyBeginner,
		PreferredPace: PaceMedium,
		Strengths:     []string{},
		Weaknesses:    []string{},
		Goals:         []string{},
		LastUpdated:   time.Now(),
	}
}
