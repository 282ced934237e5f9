package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/MIJINYAWA664/ComUnity/internal/models"
)

var ErrCatalogUnavailable = errors.New("lesson catalog unavailable")

// LessonRepository reads the lesson catalog. The catalog is owned by the
// content pipeline; this service never writes it.
type LessonRepository struct {
	Col *mongo.Collection
}

// NewLessonRepository tolerates a nil database so the service can start
// without MongoDB and serve degraded recommendations.
func NewLessonRepository(db *mongo.Database) *LessonRepository {
	if db == nil {
		return &LessonRepository{}
	}
	return &LessonRepository{Col: db.Collection("lessons")}
}

// FindAvailable returns the catalog in stable id order, skipping archived
// lessons.
func (r *LessonRepository) FindAvailable(ctx context.Context) ([]models.Lesson, error) {
	if r.Col == nil {
		return nil, ErrCatalogUnavailable
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.Col.Find(ctx, bson.M{"status": bson.M{"$ne": "archived"}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var lessons []models.Lesson
	for cur.Next(ctx) {
		var lesson models.Lesson
		if err := cur.Decode(&lesson); err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	return lessons, cur.Err()
}

// ExpectedDuration returns the catalog estimate in seconds, or zero when
// the lesson is unknown so metrics fall back to a neutral pace.
func (r *LessonRepository) ExpectedDuration(ctx context.Context, lessonID string) (int, error) {
	if r.Col == nil {
		return 0, nil
	}

	var lesson models.Lesson
	err := r.Col.FindOne(ctx, bson.M{"_id": lessonID}).Decode(&lesson)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return lesson.EstimatedDuration, nil
}
