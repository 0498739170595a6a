package models

import "time"

// TopicStatus is the displayed completion state of a topic for a user.
type TopicStatus string

const (
	TopicStatusCompleted TopicStatus = "Completed"
	TopicStatusWeak      TopicStatus = "Weak"
)

// MasteryProfile is the durable per-(user, topic) review state. One document
// per key, created on the first attempt and updated on every later one.
//
// Invariants:
//   - AvgScore is the running mean over every historical attempt score.
//   - AttemptsCount increases by exactly 1 per attempt; it also serves as the
//     version token for conditional updates.
//   - Mastered is monotonic: once true it never goes back to false.
type MasteryProfile struct {
	ID             string    `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         string    `bson:"user_id" json:"user_id"`
	TopicID        string    `bson:"topic_id" json:"topic_id"`
	TopicTitle     string    `bson:"topic_title" json:"topic_title"`
	LatestScore    float64   `bson:"latest_score" json:"latest_score"`
	AvgScore       float64   `bson:"avg_score" json:"avg_score"`
	AttemptsCount  int       `bson:"attempts_count" json:"attempts_count"`
	Mastered       bool      `bson:"mastered" json:"mastered"`
	LastAttemptAt  time.Time `bson:"last_attempt_at" json:"last_attempt_at"`
	NextReviewDate time.Time `bson:"next_review_date,omitempty" json:"next_review_date,omitempty"`
}

// DaysSinceLastAttempt is the feature the predictor derives from the profile.
func (p *MasteryProfile) DaysSinceLastAttempt(now time.Time) float64 {
	if p.LastAttemptAt.IsZero() {
		return 0
	}
	days := now.Sub(p.LastAttemptAt).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}
