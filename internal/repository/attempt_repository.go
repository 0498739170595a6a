package repository

import (
	"context"

	"mastery-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AttemptRepository struct {
	Attempts *mongo.Collection
	Answers  *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{
		Attempts: db.Collection("attempts"),
		Answers:  db.Collection("graded_answers"),
	}
}

func (r *AttemptRepository) AppendAttempt(ctx context.Context, attempt *models.Attempt) error {
	_, err := r.Attempts.InsertOne(ctx, attempt)
	return err
}

func (r *AttemptRepository) AppendGradedAnswers(ctx context.Context, answers []models.GradedAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	docs := make([]interface{}, len(answers))
	for i := range answers {
		docs[i] = answers[i]
	}
	_, err := r.Answers.InsertMany(ctx, docs)
	return err
}

// FindByUser returns all attempts for a user ordered by submission time, the
// order the progress report walks them in.
func (r *AttemptRepository) FindByUser(ctx context.Context, userID string) ([]models.Attempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: 1}})
	cur, err := r.Attempts.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var attempts []models.Attempt
	for cur.Next(ctx) {
		var a models.Attempt
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, cur.Err()
}
