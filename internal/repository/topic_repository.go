package repository

import (
	"context"

	"mastery-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TopicRepository struct {
	Col *mongo.Collection
}

func NewTopicRepository(db *mongo.Database) *TopicRepository {
	return &TopicRepository{Col: db.Collection("topics")}
}

func (r *TopicRepository) FindByID(ctx context.Context, topicID string) (*models.Topic, error) {
	var topic models.Topic
	err := r.Col.FindOne(ctx, bson.M{"_id": topicID}).Decode(&topic)
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// UpdateStatus writes the derived display status ("Completed"/"Weak") back
// onto the topic document.
func (r *TopicRepository) UpdateStatus(ctx context.Context, topicID string, status models.TopicStatus) error {
	_, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": topicID},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	return err
}
