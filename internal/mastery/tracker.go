package mastery

import (
	"context"
	"errors"
	"fmt"
	"log"

	"mastery-service/internal/models"
	"mastery-service/internal/repository"
)

// Store is the persistence surface the tracker needs. The mongo repositories
// satisfy it; tests substitute an in-memory fake.
type Store interface {
	AppendAttempt(ctx context.Context, attempt *models.Attempt) error
	AppendGradedAnswers(ctx context.Context, answers []models.GradedAnswer) error
	Find(ctx context.Context, userID, topicID string) (*models.MasteryProfile, error)
	Insert(ctx context.Context, profile *models.MasteryProfile) error
	UpdateCAS(ctx context.Context, profile *models.MasteryProfile, prevCount int) (bool, error)
}

// Tracker owns the durable mastery profile of each (user, topic) pair and the
// update rules that protect its invariants.
type Tracker struct {
	store            Store
	masteryThreshold float64
	statusThreshold  float64
	maxRetries       int
}

func NewTracker(store Store, masteryThreshold, statusThreshold float64, maxRetries int) *Tracker {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Tracker{
		store:            store,
		masteryThreshold: masteryThreshold,
		statusThreshold:  statusThreshold,
		maxRetries:       maxRetries,
	}
}

// Record persists the attempt with its graded answers and applies the profile
// update rules:
//
//	attempts_count += 1
//	avg_score       = (prev_avg*prev_count + score) / new_count
//	latest_score    = score
//	mastered        = prev_mastered OR score >= mastery threshold
//
// The profile write is a conditional update versioned by attempts_count,
// retried on conflict so concurrent submissions for the same key cannot lose
// an update. If the profile write still fails after retries, the whole
// submission is reported failed.
func (t *Tracker) Record(ctx context.Context, attempt *models.Attempt, topicTitle string) (*models.MasteryProfile, error) {
	if err := t.store.AppendAttempt(ctx, attempt); err != nil {
		return nil, fmt.Errorf("append attempt: %w", err)
	}
	if err := t.store.AppendGradedAnswers(ctx, attempt.Answers); err != nil {
		return nil, fmt.Errorf("append graded answers: %w", err)
	}

	var lastErr error
	for i := 0; i < t.maxRetries; i++ {
		profile, err := t.applyOnce(ctx, attempt, topicTitle)
		if err == nil {
			return profile, nil
		}
		lastErr = err
		log.Printf("[MASTERY] profile update conflict for user=%s topic=%s, retrying: %v",
			attempt.UserID, attempt.TopicID, err)
	}
	return nil, fmt.Errorf("update mastery profile: %w", lastErr)
}

var errUpdateConflict = errors.New("concurrent profile update")

func (t *Tracker) applyOnce(ctx context.Context, attempt *models.Attempt, topicTitle string) (*models.MasteryProfile, error) {
	existing, err := t.store.Find(ctx, attempt.UserID, attempt.TopicID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		profile := &models.MasteryProfile{
			UserID:        attempt.UserID,
			TopicID:       attempt.TopicID,
			TopicTitle:    topicTitle,
			LatestScore:   attempt.Score,
			AvgScore:      attempt.Score,
			AttemptsCount: 1,
			Mastered:      attempt.Score >= t.masteryThreshold,
			LastAttemptAt: attempt.SubmittedAt,
		}
		if err := t.store.Insert(ctx, profile); err != nil {
			if errors.Is(err, repository.ErrProfileExists) {
				return nil, errUpdateConflict
			}
			return nil, err
		}
		return profile, nil
	}

	prevCount := existing.AttemptsCount
	updated := *existing
	updated.AttemptsCount = prevCount + 1
	updated.AvgScore = (existing.AvgScore*float64(prevCount) + attempt.Score) / float64(updated.AttemptsCount)
	updated.LatestScore = attempt.Score
	updated.Mastered = existing.Mastered || attempt.Score >= t.masteryThreshold
	updated.LastAttemptAt = attempt.SubmittedAt
	if topicTitle != "" {
		updated.TopicTitle = topicTitle
	}

	ok, err := t.store.UpdateCAS(ctx, &updated, prevCount)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errUpdateConflict
	}
	return &updated, nil
}

// DeriveTopicStatus maps a score to the displayed topic status. Note the
// threshold and comparison differ from the mastered flag (> 7 here, >= 8
// there); see the config package for why that stays as-is.
func (t *Tracker) DeriveTopicStatus(score float64) models.TopicStatus {
	if score > t.statusThreshold {
		return models.TopicStatusCompleted
	}
	return models.TopicStatusWeak
}
