package models

// Lesson is a catalog entry. The catalog lives in MongoDB and is owned by
// the content pipeline; this service only reads it.
type Lesson struct {
	ID                string          `bson:"_id" json:"id"`
	Title             string          `bson:"title" json:"title"`
	DifficultyLevel   DifficultyLevel `bson:"difficulty_level" json:"difficulty_level"`
	Type              LearningStyle   `bson:"type" json:"type"`
	Category          string          `bson:"category" json:"category"`
	Tags              []string        `bson:"tags" json:"tags"`
	Prerequisites     []string        `bson:"prerequisites" json:"prerequisites"`
	EstimatedDuration int             `bson:"estimated_duration" json:"estimated_duration"` // seconds
	Status            string          `bson:"status" json:"status"`
}
