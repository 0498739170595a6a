package repository

import (
	"context"
	"time"

	"mastery-service/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Store bundles every typed repository behind one surface so the engine cores
// depend on a single persistence abstraction instead of scattered collection
// handles.
type Store struct {
	Questions     *QuestionRepository
	Attempts      *AttemptRepository
	Profiles      *ProfileRepository
	Notifications *NotificationRepository
	Users         *UserRepository
	Topics        *TopicRepository
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		Questions:     NewQuestionRepository(db),
		Attempts:      NewAttemptRepository(db),
		Profiles:      NewProfileRepository(db),
		Notifications: NewNotificationRepository(db),
		Users:         NewUserRepository(db),
		Topics:        NewTopicRepository(db),
	}
}

func (s *Store) GetAnswerKey(ctx context.Context, questionIDs []string) (models.AnswerKey, error) {
	return s.Questions.GetAnswerKey(ctx, questionIDs)
}

func (s *Store) AppendAttempt(ctx context.Context, attempt *models.Attempt) error {
	return s.Attempts.AppendAttempt(ctx, attempt)
}

func (s *Store) AppendGradedAnswers(ctx context.Context, answers []models.GradedAnswer) error {
	return s.Attempts.AppendGradedAnswers(ctx, answers)
}

func (s *Store) Find(ctx context.Context, userID, topicID string) (*models.MasteryProfile, error) {
	return s.Profiles.Find(ctx, userID, topicID)
}

func (s *Store) Insert(ctx context.Context, profile *models.MasteryProfile) error {
	return s.Profiles.Insert(ctx, profile)
}

func (s *Store) UpdateCAS(ctx context.Context, profile *models.MasteryProfile, prevCount int) (bool, error) {
	return s.Profiles.UpdateCAS(ctx, profile, prevCount)
}

func (s *Store) SetNextReview(ctx context.Context, userID, topicID string, date time.Time) error {
	return s.Profiles.SetNextReview(ctx, userID, topicID, date)
}

func (s *Store) List(ctx context.Context) ([]models.MasteryProfile, error) {
	return s.Profiles.List(ctx)
}

func (s *Store) GetSettings(ctx context.Context, userID string) (models.NotificationSettings, error) {
	return s.Notifications.GetSettings(ctx, userID)
}

func (s *Store) IsTopicEnabled(ctx context.Context, userID, topicID string) (bool, error) {
	return s.Notifications.IsTopicEnabled(ctx, userID, topicID)
}

func (s *Store) WasNotified(ctx context.Context, userID, topicID, notifType, sentDate string) (bool, error) {
	return s.Notifications.WasNotified(ctx, userID, topicID, notifType, sentDate)
}

func (s *Store) AppendRecord(ctx context.Context, record *models.NotificationRecord) error {
	return s.Notifications.AppendRecord(ctx, record)
}

func (s *Store) FindUser(ctx context.Context, userID string) (*models.User, error) {
	return s.Users.FindByID(ctx, userID)
}
