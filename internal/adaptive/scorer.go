package adaptive

import (
	"sort"
	"strings"

	"github.com/MIJINYAWA664/ComUnity/internal/models"
)

// ScoringContext carries the per-user data every lesson score needs, built
// once per recommendation request instead of once per lesson.
type ScoringContext struct {
	// Sessions ordered by start time ascending
	Sessions []models.LearningSession
	// Completed holds lesson ids the user has finished at least once
	Completed map[string]bool
}

// BuildScoringContext orders the history chronologically and derives the
// completed-lesson set from it.
func (e *Engine) BuildScoringContext(history []models.LearningSession) *ScoringContext {
	ordered := make([]models.LearningSession, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})

	completed := make(map[string]bool)
	for _, session := range ordered {
		if session.CompletionPercentage >= e.config.CompletedPercentage {
			completed[session.LessonID] = true
		}
	}

	return &ScoringContext{Sessions: ordered, Completed: completed}
}

// ScoreLesson rates how well a lesson suits a user right now. Five weighted
// components contribute: difficulty fit, learning-style fit, prerequisite
// coverage, novelty and goal alignment. The result is clamped to [0, 1].
func (e *Engine) ScoreLesson(lesson models.Lesson, profile *models.UserProfile, sc *ScoringContext) float64 {
	score := e.config.DifficultyWeight * e.difficultyMatch(lesson.DifficultyLevel, profile.SkillLevel)
	score += e.config.StyleWeight * e.styleMatch(lesson.Type, profile.LearningStyle)
	score += e.config.PrerequisiteWeight * e.prerequisiteCoverage(lesson.Prerequisites, sc.Completed)
	score += e.config.NoveltyWeight * e.noveltyScore(lesson.ID, sc.Sessions)
	score += e.config.GoalWeight * e.goalAlignment(lesson, profile.Goals)

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// difficultyMatch rewards lessons at or just above the user's level. One
// step up keeps a stretch incentive, one step down still reviews usefully,
// anything further apart scores low.
func (e *Engine) difficultyMatch(lesson, user models.DifficultyLevel) float64 {
	switch lesson.Rank() - user.Rank() {
	case 0:
		return 1.0
	case 1:
		return 0.8
	case -1:
		return 0.6
	default:
		return 0.2
	}
}

// styleMatch compares the lesson's delivery type against the user's
// learning style. Lessons without a type count as mixed.
func (e *Engine) styleMatch(lessonType models.LearningStyle, userStyle models.LearningStyle) float64 {
	if lessonType == "" {
		lessonType = models.LearningStyleMixed
	}
	switch {
	case lessonType == userStyle || userStyle == models.LearningStyleMixed:
		return 1.0
	case lessonType == models.LearningStyleMixed:
		return 0.8
	default:
		return 0.4
	}
}

// prerequisiteCoverage is the fraction of the lesson's prerequisites the
// user has completed. No prerequisites means full coverage.
func (e *Engine) prerequisiteCoverage(prerequisites []string, completed map[string]bool) float64 {
	if len(prerequisites) == 0 {
		return 1.0
	}
	met := 0
	for _, id := range prerequisites {
		if completed[id] {
			met++
		}
	}
	return float64(met) / float64(len(prerequisites))
}

// noveltyScore decays for lessons attempted recently. Only the last
// NoveltyWindow sessions matter: a lesson absent from that window scores
// full novelty, the most recently attempted lesson sits at the floor, and
// older attempts inside the window decay linearly between the two.
func (e *Engine) noveltyScore(lessonID string, sessions []models.LearningSession) float64 {
	window := sessions
	if len(window) > e.config.NoveltyWindow {
		window = window[len(window)-e.config.NoveltyWindow:]
	}

	lastSeen := -1
	for i, session := range window {
		if session.LessonID == lessonID {
			lastSeen = i
		}
	}
	if lastSeen == -1 {
		return 1.0
	}

	score := 1.0 - float64(lastSeen)/float64(e.config.NoveltyWindow)
	if score < e.config.NoveltyFloor {
		score = e.config.NoveltyFloor
	}
	return score
}

// goalAlignment checks the lesson's tags and category against the user's
// goals. A tag equal to a goal counts fully, a goal mentioned inside the
// category counts half. Users without goals get a neutral score.
func (e *Engine) goalAlignment(lesson models.Lesson, goals []string) float64 {
	if len(goals) == 0 {
		return 0.5
	}

	tags := make(map[string]bool, len(lesson.Tags))
	for _, tag := range lesson.Tags {
		tags[strings.ToLower(tag)] = true
	}
	category := strings.ToLower(lesson.Category)

	total := 0.0
	for _, goal := range goals {
		g := strings.ToLower(goal)
		if tags[g] {
			total += 1.0
		} else if category != "" && strings.Contains(category, g) {
			total += 0.5
		}
	}

	alignment := total / float64(len(goals))
	if alignment > 1.0 {
		alignment = 1.0
	}
	return alignment
}
