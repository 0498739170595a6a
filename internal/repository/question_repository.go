package repository

import (
	"context"

	"mastery-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

// GetAnswerKey loads the grading view of the given questions. Questions the
// store does not know are simply absent from the returned key; the grader
// treats that as an invalid submission.
func (r *QuestionRepository) GetAnswerKey(ctx context.Context, questionIDs []string) (models.AnswerKey, error) {
	cur, err := r.Col.Find(ctx, bson.M{"_id": bson.M{"$in": questionIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return models.Key(questions), nil
}
