package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"mastery-service/internal/grading"
	"mastery-service/internal/mastery"
	"mastery-service/internal/models"
	"mastery-service/internal/predictor"
)

type fakeSubmissionStore struct {
	key        models.AnswerKey
	user       *models.User
	nextReview *time.Time

	keyErr        error
	nextReviewErr error
}

func (s *fakeSubmissionStore) GetAnswerKey(_ context.Context, _ []string) (models.AnswerKey, error) {
	return s.key, s.keyErr
}

func (s *fakeSubmissionStore) SetNextReview(_ context.Context, _, _ string, date time.Time) error {
	if s.nextReviewErr != nil {
		return s.nextReviewErr
	}
	s.nextReview = &date
	return nil
}

func (s *fakeSubmissionStore) FindUser(_ context.Context, _ string) (*models.User, error) {
	return s.user, nil
}

type fakeTopicStore struct {
	topic     *models.Topic
	status    models.TopicStatus
	statusErr error
}

func (s *fakeTopicStore) FindByID(_ context.Context, _ string) (*models.Topic, error) {
	if s.topic == nil {
		return nil, errors.New("topic not found")
	}
	return s.topic, nil
}

func (s *fakeTopicStore) UpdateStatus(_ context.Context, _ string, status models.TopicStatus) error {
	if s.statusErr != nil {
		return s.statusErr
	}
	s.status = status
	return nil
}

type fakeMasteryStore struct {
	attempts []models.Attempt
	profiles map[string]*models.MasteryProfile
}

func newFakeMasteryStore() *fakeMasteryStore {
	return &fakeMasteryStore{profiles: map[string]*models.MasteryProfile{}}
}

func (s *fakeMasteryStore) AppendAttempt(_ context.Context, attempt *models.Attempt) error {
	s.attempts = append(s.attempts, *attempt)
	return nil
}

func (s *fakeMasteryStore) AppendGradedAnswers(_ context.Context, _ []models.GradedAnswer) error {
	return nil
}

func (s *fakeMasteryStore) Find(_ context.Context, userID, topicID string) (*models.MasteryProfile, error) {
	profile, ok := s.profiles[userID+"/"+topicID]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

func (s *fakeMasteryStore) Insert(_ context.Context, profile *models.MasteryProfile) error {
	copied := *profile
	s.profiles[profile.UserID+"/"+profile.TopicID] = &copied
	return nil
}

func (s *fakeMasteryStore) UpdateCAS(_ context.Context, profile *models.MasteryProfile, prevCount int) (bool, error) {
	current := s.profiles[profile.UserID+"/"+profile.TopicID]
	if current == nil || current.AttemptsCount != prevCount {
		return false, nil
	}
	copied := *profile
	s.profiles[profile.UserID+"/"+profile.TopicID] = &copied
	return true, nil
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) Send(to, subject, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to+": "+subject)
	return nil
}

func submissionFixture(total, correct int) (models.QuizSubmission, models.AnswerKey) {
	key := models.AnswerKey{}
	submission := models.QuizSubmission{UserID: "u1", TopicID: "t1"}
	for i := 0; i < total; i++ {
		qid := fmt.Sprintf("q%d", i)
		key[qid] = models.AnswerKeyEntry{
			CorrectLetter: "A",
			OptionTexts:   map[string]string{"A": "yes", "B": "no"},
		}
		selected := "B"
		if i < correct {
			selected = "A"
		}
		submission.Answers = append(submission.Answers, models.SubmittedAnswer{
			QuestionID: qid, SelectedAnswer: selected,
		})
	}
	return submission, key
}

func newTestService(store *fakeSubmissionStore, topics *fakeTopicStore, masteryStore *fakeMasteryStore, mailer *recordingMailer) *SubmissionService {
	tracker := mastery.NewTracker(masteryStore, 8, 7, 3)
	return NewSubmissionService(store, topics, grading.NewGrader(), tracker, predictor.NewPredictor(nil), mailer)
}

// reviewDateMatches tolerates the test straddling midnight UTC.
func reviewDateMatches(got time.Time, before, after time.Time, days int) bool {
	wantBefore := before.UTC().Truncate(24 * time.Hour).AddDate(0, 0, days)
	wantAfter := after.UTC().Truncate(24 * time.Hour).AddDate(0, 0, days)
	return got.Equal(wantBefore) || got.Equal(wantAfter)
}

func TestSubmitWeakScoreFlow(t *testing.T) {
	submission, key := submissionFixture(10, 7)
	store := &fakeSubmissionStore{key: key, user: &models.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}}
	topics := &fakeTopicStore{topic: &models.Topic{ID: "t1", Title: "Graphs"}}
	masteryStore := newFakeMasteryStore()
	mailer := &recordingMailer{}

	before := time.Now()
	result, err := newTestService(store, topics, masteryStore, mailer).Submit(context.Background(), submission)
	after := time.Now()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if math.Abs(result.Score-7.0) > 1e-9 {
		t.Errorf("Expected score 7.0, got %f", result.Score)
	}
	if result.CorrectAnswers != 7 || result.TotalQuestions != 10 {
		t.Errorf("Unexpected counts: %d/%d", result.CorrectAnswers, result.TotalQuestions)
	}
	if result.TopicStatus != string(models.TopicStatusWeak) {
		t.Errorf("Score 7.0 must map to Weak, got %s", result.TopicStatus)
	}
	if result.Mastered {
		t.Error("Score 7.0 must not set mastered")
	}
	if topics.status != models.TopicStatusWeak {
		t.Errorf("Expected Weak written to topic store, got %s", topics.status)
	}

	if len(masteryStore.attempts) != 1 {
		t.Fatalf("Expected 1 persisted attempt, got %d", len(masteryStore.attempts))
	}
	profile := masteryStore.profiles["u1/t1"]
	if profile == nil || profile.AttemptsCount != 1 || profile.TopicTitle != "Graphs" {
		t.Fatalf("Unexpected profile: %+v", profile)
	}

	// Score 7.0 with no model means a 3-day fallback interval.
	if store.nextReview == nil || !reviewDateMatches(*store.nextReview, before, after, 3) {
		t.Errorf("Expected next review 3 days out, got %v", store.nextReview)
	}
	if len(mailer.sent) != 1 {
		t.Errorf("Expected one result email, got %v", mailer.sent)
	}
}

func TestSubmitMasteredScoreFlow(t *testing.T) {
	submission, key := submissionFixture(5, 5)
	store := &fakeSubmissionStore{key: key, user: &models.User{ID: "u1", Email: "alice@example.com"}}
	topics := &fakeTopicStore{topic: &models.Topic{ID: "t1", Title: "Graphs"}}
	masteryStore := newFakeMasteryStore()

	before := time.Now()
	result, err := newTestService(store, topics, masteryStore, &recordingMailer{}).Submit(context.Background(), submission)
	after := time.Now()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.Mastered {
		t.Error("Score 10 must set mastered")
	}
	if result.TopicStatus != string(models.TopicStatusCompleted) {
		t.Errorf("Score 10 must map to Completed, got %s", result.TopicStatus)
	}
	if store.nextReview == nil || !reviewDateMatches(*store.nextReview, before, after, 7) {
		t.Errorf("Expected next review 7 days out, got %v", store.nextReview)
	}
}

func TestSubmitRejectsEmptySubmission(t *testing.T) {
	store := &fakeSubmissionStore{key: models.AnswerKey{}}
	topics := &fakeTopicStore{}
	masteryStore := newFakeMasteryStore()

	_, err := newTestService(store, topics, masteryStore, &recordingMailer{}).Submit(
		context.Background(), models.QuizSubmission{UserID: "u1", TopicID: "t1"})
	if !errors.Is(err, grading.ErrInvalidSubmission) {
		t.Fatalf("Expected ErrInvalidSubmission, got %v", err)
	}
	if len(masteryStore.attempts) != 0 {
		t.Error("A rejected submission must write nothing")
	}
	if topics.status != "" {
		t.Error("A rejected submission must not touch topic status")
	}
}

func TestSubmitSurvivesSideEffectFailures(t *testing.T) {
	submission, key := submissionFixture(4, 2)
	store := &fakeSubmissionStore{
		key:           key,
		user:          &models.User{ID: "u1", Email: "alice@example.com"},
		nextReviewErr: errors.New("mongo down"),
	}
	topics := &fakeTopicStore{statusErr: errors.New("mongo down")}
	mailer := &recordingMailer{err: errors.New("smtp down")}

	result, err := newTestService(store, topics, newFakeMasteryStore(), mailer).Submit(context.Background(), submission)
	if err != nil {
		t.Fatalf("Side-effect failures must not fail the submission: %v", err)
	}
	if math.Abs(result.Score-5.0) > 1e-9 {
		t.Errorf("Expected score 5.0, got %f", result.Score)
	}
}

func TestSubmitTopicLookupFallbackTitle(t *testing.T) {
	submission, key := submissionFixture(2, 1)
	store := &fakeSubmissionStore{key: key, user: &models.User{ID: "u1", Email: "a@example.com"}}
	topics := &fakeTopicStore{} // no topic document
	masteryStore := newFakeMasteryStore()

	if _, err := newTestService(store, topics, masteryStore, &recordingMailer{}).Submit(context.Background(), submission); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	profile := masteryStore.profiles["u1/t1"]
	if profile.TopicTitle != "Topic t1" {
		t.Errorf("Expected synthetic topic title, got %q", profile.TopicTitle)
	}
}
