package repository

import (
	"context"
	"errors"
	"time"

	"mastery-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrProfileExists reports that an insert lost the race against a concurrent
// first attempt for the same (user, topic) key.
var ErrProfileExists = errors.New("mastery profile already exists")

type ProfileRepository struct {
	Col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{Col: db.Collection("mastery_profiles")}
}

// Find returns the profile for the key, or (nil, nil) when none exists yet.
func (r *ProfileRepository) Find(ctx context.Context, userID, topicID string) (*models.MasteryProfile, error) {
	var profile models.MasteryProfile
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID, "topic_id": topicID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Insert creates the first profile for a key. The unique (user_id, topic_id)
// index turns a concurrent double-create into ErrProfileExists.
func (r *ProfileRepository) Insert(ctx context.Context, profile *models.MasteryProfile) error {
	_, err := r.Col.InsertOne(ctx, profile)
	if mongo.IsDuplicateKeyError(err) {
		return ErrProfileExists
	}
	return err
}

// UpdateCAS applies the new profile values only if attempts_count still holds
// its previous value, so two concurrent read-modify-write cycles cannot lose
// an update. Returns false when the conditional did not match.
func (r *ProfileRepository) UpdateCAS(ctx context.Context, profile *models.MasteryProfile, prevCount int) (bool, error) {
	filter := bson.M{
		"user_id":        profile.UserID,
		"topic_id":       profile.TopicID,
		"attempts_count": prevCount,
	}
	update := bson.M{"$set": bson.M{
		"latest_score":    profile.LatestScore,
		"avg_score":       profile.AvgScore,
		"attempts_count":  profile.AttemptsCount,
		"mastered":        profile.Mastered,
		"last_attempt_at": profile.LastAttemptAt,
		"topic_title":     profile.TopicTitle,
	}}
	res, err := r.Col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// SetNextReview writes the predicted review date back onto the profile. The
// submission flow treats a failure here as non-fatal.
func (r *ProfileRepository) SetNextReview(ctx context.Context, userID, topicID string, date time.Time) error {
	_, err := r.Col.UpdateOne(ctx,
		bson.M{"user_id": userID, "topic_id": topicID},
		bson.M{"$set": bson.M{"next_review_date": date}},
	)
	return err
}

// List streams every profile, the dispatcher's sweep input.
func (r *ProfileRepository) List(ctx context.Context) ([]models.MasteryProfile, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var profiles []models.MasteryProfile
	for cur.Next(ctx) {
		var p models.MasteryProfile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, cur.Err()
}
