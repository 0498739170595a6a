package service

import (
	"context"
	"testing"
	"time"

	"mastery-service/internal/models"
)

type fakeAttemptSource struct {
	attempts []models.Attempt
}

func (s *fakeAttemptSource) FindByUser(_ context.Context, _ string) ([]models.Attempt, error) {
	return s.attempts, nil
}

func at(day int) time.Time {
	return time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC)
}

func TestGetUserProgressEmpty(t *testing.T) {
	s := NewProgressService(&fakeAttemptSource{}, &fakeTopicStore{})
	progress, err := s.GetUserProgress(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(progress) != 0 {
		t.Errorf("Expected empty report, got %d topics", len(progress))
	}
}

func TestGetUserProgressSingleTopic(t *testing.T) {
	source := &fakeAttemptSource{attempts: []models.Attempt{
		{UserID: "u1", TopicID: "t1", Score: 4, SubmittedAt: at(1)},
		{UserID: "u1", TopicID: "t1", Score: 8, SubmittedAt: at(2)},
	}}
	topics := &fakeTopicStore{topic: &models.Topic{ID: "t1", Title: "Graphs"}}

	progress, err := NewProgressService(source, topics).GetUserProgress(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(progress) != 1 {
		t.Fatalf("Expected 1 topic, got %d", len(progress))
	}

	p := progress[0]
	if p.TopicTitle != "Graphs" {
		t.Errorf("Expected title Graphs, got %q", p.TopicTitle)
	}
	if p.FirstScore != 4 || p.LatestScore != 8 || p.TotalAttempts != 2 {
		t.Errorf("Unexpected scores: %+v", p)
	}
	if p.PreviousScore == nil || *p.PreviousScore != 4 {
		t.Errorf("Expected previous score 4, got %v", p.PreviousScore)
	}
	if p.ProgressPercent == nil || *p.ProgressPercent != 100 {
		t.Errorf("Expected 100%% progress, got %v", p.ProgressPercent)
	}
	if p.OverallProgressPercent == nil || *p.OverallProgressPercent != 100 {
		t.Errorf("Expected 100%% overall progress, got %v", p.OverallProgressPercent)
	}

	if len(p.AttemptHistory) != 2 {
		t.Fatalf("Expected 2 history rows, got %d", len(p.AttemptHistory))
	}
	if p.AttemptHistory[0].Improvement != nil {
		t.Error("First attempt has no improvement delta")
	}
	if p.AttemptHistory[1].Improvement == nil || *p.AttemptHistory[1].Improvement != 4 {
		t.Errorf("Expected +4 improvement, got %v", p.AttemptHistory[1].Improvement)
	}
}

func TestGetUserProgressZeroBaselineOmitsPercent(t *testing.T) {
	source := &fakeAttemptSource{attempts: []models.Attempt{
		{UserID: "u1", TopicID: "t1", Score: 0, SubmittedAt: at(1)},
		{UserID: "u1", TopicID: "t1", Score: 6, SubmittedAt: at(2)},
	}}

	progress, err := NewProgressService(source, &fakeTopicStore{}).GetUserProgress(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	p := progress[0]
	if p.ProgressPercent != nil {
		t.Errorf("Division by a zero previous score must yield no percent, got %v", p.ProgressPercent)
	}
	if p.OverallProgressPercent != nil {
		t.Errorf("Division by a zero first score must yield no percent, got %v", p.OverallProgressPercent)
	}
}

func TestGetUserProgressGroupsTopicsInFirstSeenOrder(t *testing.T) {
	source := &fakeAttemptSource{attempts: []models.Attempt{
		{UserID: "u1", TopicID: "t2", Score: 5, SubmittedAt: at(1)},
		{UserID: "u1", TopicID: "t1", Score: 7, SubmittedAt: at(2)},
		{UserID: "u1", TopicID: "t2", Score: 6, SubmittedAt: at(3)},
	}}

	progress, err := NewProgressService(source, &fakeTopicStore{}).GetUserProgress(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(progress) != 2 {
		t.Fatalf("Expected 2 topics, got %d", len(progress))
	}
	if progress[0].TopicID != "t2" || progress[1].TopicID != "t1" {
		t.Errorf("Expected first-seen order [t2 t1], got [%s %s]", progress[0].TopicID, progress[1].TopicID)
	}
	if progress[0].TotalAttempts != 2 {
		t.Errorf("Expected 2 attempts for t2, got %d", progress[0].TotalAttempts)
	}
}
