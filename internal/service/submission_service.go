package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"mastery-service/internal/grading"
	"mastery-service/internal/mastery"
	"mastery-service/internal/models"
	"mastery-service/internal/notifier"
	"mastery-service/internal/predictor"
)

// SubmissionStore is the slice of the store the submission flow reads and
// writes directly; the tracker carries its own store handle.
type SubmissionStore interface {
	GetAnswerKey(ctx context.Context, questionIDs []string) (models.AnswerKey, error)
	SetNextReview(ctx context.Context, userID, topicID string, date time.Time) error
	FindUser(ctx context.Context, userID string) (*models.User, error)
}

// TopicStore reads topic titles and writes the derived display status.
type TopicStore interface {
	FindByID(ctx context.Context, topicID string) (*models.Topic, error)
	UpdateStatus(ctx context.Context, topicID string, status models.TopicStatus) error
}

// SubmissionService runs the synchronous submission flow:
// grade -> record -> topic status -> review-date refresh -> result email.
// Grading and persistence errors surface to the caller; prediction and mail
// failures degrade and are logged, never failing a graded submission.
type SubmissionService struct {
	store     SubmissionStore
	topics    TopicStore
	grader    *grading.Grader
	tracker   *mastery.Tracker
	predictor *predictor.Predictor
	mailer    notifier.Mailer
}

func NewSubmissionService(
	store SubmissionStore,
	topics TopicStore,
	grader *grading.Grader,
	tracker *mastery.Tracker,
	pred *predictor.Predictor,
	mailer notifier.Mailer,
) *SubmissionService {
	return &SubmissionService{
		store:     store,
		topics:    topics,
		grader:    grader,
		tracker:   tracker,
		predictor: pred,
		mailer:    mailer,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, submission models.QuizSubmission) (*models.SubmissionResult, error) {
	questionIDs := make([]string, len(submission.Answers))
	for i, ans := range submission.Answers {
		questionIDs[i] = ans.QuestionID
	}

	key, err := s.store.GetAnswerKey(ctx, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch answer key: %w", err)
	}

	attempt, err := s.grader.Grade(submission, key)
	if err != nil {
		return nil, err
	}

	topicTitle := s.topicTitle(ctx, submission.TopicID)

	profile, err := s.tracker.Record(ctx, attempt, topicTitle)
	if err != nil {
		return nil, err
	}

	status := s.tracker.DeriveTopicStatus(attempt.Score)
	if err := s.topics.UpdateStatus(ctx, submission.TopicID, status); err != nil {
		log.Printf("[SUBMIT] warning: topic status update failed for topic=%s: %v", submission.TopicID, err)
	}

	// The review-date refresh must never fail the submission.
	nextReview := s.predictor.PredictNextReviewDate(ctx, profile)
	profile.NextReviewDate = nextReview
	if err := s.store.SetNextReview(ctx, profile.UserID, profile.TopicID, nextReview); err != nil {
		log.Printf("[SUBMIT] warning: next review write failed for user=%s topic=%s: %v",
			profile.UserID, profile.TopicID, err)
	}

	s.sendResultEmail(ctx, profile.UserID, topicTitle, attempt.Score)

	return &models.SubmissionResult{
		AttemptID:      attempt.ID,
		Score:          attempt.Score,
		TotalQuestions: len(attempt.Answers),
		CorrectAnswers: attempt.CorrectCount(),
		TopicStatus:    string(status),
		Mastered:       profile.Mastered,
		NextReviewDate: nextReview.Format("2006-01-02"),
	}, nil
}

func (s *SubmissionService) topicTitle(ctx context.Context, topicID string) string {
	topic, err := s.topics.FindByID(ctx, topicID)
	if err != nil {
		log.Printf("[SUBMIT] warning: topic lookup failed for %s: %v", topicID, err)
		return fmt.Sprintf("Topic %s", topicID)
	}
	return topic.Title
}

// sendResultEmail delivers the score-banded result mail, best effort.
func (s *SubmissionService) sendResultEmail(ctx context.Context, userID, topicTitle string, score float64) {
	user, err := s.store.FindUser(ctx, userID)
	if err != nil {
		log.Printf("[SUBMIT] warning: user lookup failed for %s, skipping result email: %v", userID, err)
		return
	}
	subject, body := notifier.ResultMessage(user.Name, topicTitle, score)
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		log.Printf("[SUBMIT] warning: result email failed for %s: %v", user.Email, err)
	}
}
