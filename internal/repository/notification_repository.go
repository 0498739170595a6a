package repository

import (
	"context"
	"errors"
	"time"

	"mastery-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationRepository struct {
	Records     *mongo.Collection
	Settings    *mongo.Collection
	Preferences *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		Records:     db.Collection("notification_records"),
		Settings:    db.Collection("notification_settings"),
		Preferences: db.Collection("topic_notification_preferences"),
	}
}

// GetSettings returns the user's global switches, defaulting to
// everything-enabled when the user has no settings document.
func (r *NotificationRepository) GetSettings(ctx context.Context, userID string) (models.NotificationSettings, error) {
	var settings models.NotificationSettings
	err := r.Settings.FindOne(ctx, bson.M{"user_id": userID}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.DefaultNotificationSettings(userID), nil
	}
	if err != nil {
		return models.NotificationSettings{}, err
	}
	return settings, nil
}

func (r *NotificationRepository) UpsertSettings(ctx context.Context, settings models.NotificationSettings) error {
	settings.UpdatedAt = time.Now().UTC()
	_, err := r.Settings.UpdateOne(ctx,
		bson.M{"user_id": settings.UserID},
		bson.M{"$set": settings},
		options.Update().SetUpsert(true),
	)
	return err
}

// IsTopicEnabled reports the per-topic flag, enabled when no preference has
// ever been stored for the key.
func (r *NotificationRepository) IsTopicEnabled(ctx context.Context, userID, topicID string) (bool, error) {
	var pref models.TopicNotificationPreference
	err := r.Preferences.FindOne(ctx, bson.M{"user_id": userID, "topic_id": topicID}).Decode(&pref)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return pref.Enabled, nil
}

func (r *NotificationRepository) ListTopicPreferences(ctx context.Context, userID string) ([]models.TopicNotificationPreference, error) {
	cur, err := r.Preferences.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var prefs []models.TopicNotificationPreference
	for cur.Next(ctx) {
		var p models.TopicNotificationPreference
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		prefs = append(prefs, p)
	}
	return prefs, cur.Err()
}

func (r *NotificationRepository) UpsertTopicPreference(ctx context.Context, pref models.TopicNotificationPreference) error {
	pref.UpdatedAt = time.Now().UTC()
	_, err := r.Preferences.UpdateOne(ctx,
		bson.M{"user_id": pref.UserID, "topic_id": pref.TopicID},
		bson.M{"$set": pref},
		options.Update().SetUpsert(true),
	)
	return err
}

// WasNotified is the dispatcher's idempotence gate: has a record for this
// (user, topic, type, date) tuple already been written?
func (r *NotificationRepository) WasNotified(ctx context.Context, userID, topicID, notifType, sentDate string) (bool, error) {
	err := r.Records.FindOne(ctx, bson.M{
		"user_id":           userID,
		"topic_id":          topicID,
		"notification_type": notifType,
		"sent_date":         sentDate,
	}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AppendRecord stores a successful send. The unique index on the dedup key
// makes a duplicate write fail loudly instead of silently double-recording.
func (r *NotificationRepository) AppendRecord(ctx context.Context, record *models.NotificationRecord) error {
	_, err := r.Records.InsertOne(ctx, record)
	return err
}
