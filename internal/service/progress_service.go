package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"mastery-service/internal/models"
)

// AttemptSource reads the append-only attempt history.
type AttemptSource interface {
	FindByUser(ctx context.Context, userID string) ([]models.Attempt, error)
}

// AttemptHistoryEntry is one row of a topic's attempt timeline.
type AttemptHistoryEntry struct {
	AttemptNumber int       `json:"attempt_number"`
	Score         float64   `json:"score"`
	SubmittedAt   time.Time `json:"submitted_at"`
	Improvement   *float64  `json:"improvement"`
}

// TopicProgress summarizes a user's trajectory on one topic.
type TopicProgress struct {
	UserID                 string                `json:"user_id"`
	TopicID                string                `json:"topic_id"`
	TopicTitle             string                `json:"topic_title"`
	LatestScore            float64               `json:"latest_score"`
	PreviousScore          *float64              `json:"previous_score"`
	FirstScore             float64               `json:"first_score"`
	ProgressPercent        *float64              `json:"progress_percent"`
	OverallProgressPercent *float64              `json:"overall_progress_percent"`
	TotalAttempts          int                   `json:"total_attempts"`
	AttemptHistory         []AttemptHistoryEntry `json:"attempt_history"`
}

// ProgressService builds the per-topic progress report from raw attempts.
type ProgressService struct {
	attempts AttemptSource
	topics   TopicStore
}

func NewProgressService(attempts AttemptSource, topics TopicStore) *ProgressService {
	return &ProgressService{attempts: attempts, topics: topics}
}

func (s *ProgressService) GetUserProgress(ctx context.Context, userID string) ([]TopicProgress, error) {
	attempts, err := s.attempts.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch attempts: %w", err)
	}
	if len(attempts) == 0 {
		return []TopicProgress{}, nil
	}

	// Attempts arrive ordered by submission time; group per topic keeping the
	// first-seen topic order stable.
	byTopic := map[string][]models.Attempt{}
	var topicOrder []string
	for _, a := range attempts {
		if _, seen := byTopic[a.TopicID]; !seen {
			topicOrder = append(topicOrder, a.TopicID)
		}
		byTopic[a.TopicID] = append(byTopic[a.TopicID], a)
	}

	results := make([]TopicProgress, 0, len(topicOrder))
	for _, topicID := range topicOrder {
		topicAttempts := byTopic[topicID]
		results = append(results, s.buildTopicProgress(ctx, userID, topicID, topicAttempts))
	}
	return results, nil
}

func (s *ProgressService) buildTopicProgress(ctx context.Context, userID, topicID string, attempts []models.Attempt) TopicProgress {
	first := attempts[0].Score
	latest := attempts[len(attempts)-1].Score

	progress := TopicProgress{
		UserID:        userID,
		TopicID:       topicID,
		TopicTitle:    fmt.Sprintf("Topic %s", topicID),
		LatestScore:   latest,
		FirstScore:    first,
		TotalAttempts: len(attempts),
	}
	if topic, err := s.topics.FindByID(ctx, topicID); err == nil {
		progress.TopicTitle = topic.Title
	}

	if len(attempts) > 1 {
		prev := attempts[len(attempts)-2].Score
		progress.PreviousScore = &prev
		if prev != 0 {
			p := round2((latest - prev) * 100 / prev)
			progress.ProgressPercent = &p
		}
		if first != 0 {
			p := round2((latest - first) * 100 / first)
			progress.OverallProgressPercent = &p
		}
	}

	history := make([]AttemptHistoryEntry, len(attempts))
	for i, a := range attempts {
		entry := AttemptHistoryEntry{
			AttemptNumber: i + 1,
			Score:         a.Score,
			SubmittedAt:   a.SubmittedAt,
		}
		if i > 0 {
			delta := round2(a.Score - attempts[i-1].Score)
			entry.Improvement = &delta
		}
		history[i] = entry
	}
	progress.AttemptHistory = history
	return progress
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
