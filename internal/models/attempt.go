package models

import "time"

// GradedAnswer records the outcome of a single question within an attempt.
// Created once per submission, immutable afterwards.
type GradedAnswer struct {
	ID             string `bson:"_id,omitempty" json:"id"`
	AttemptID      string `bson:"attempt_id" json:"attempt_id"`
	QuestionID     string `bson:"question_id" json:"question_id"`
	SelectedLetter string `bson:"selected_letter" json:"selected_letter"`
	SelectedText   string `bson:"selected_text" json:"selected_text"`
	CorrectLetter  string `bson:"correct_letter" json:"correct_letter"`
	CorrectText    string `bson:"correct_text" json:"correct_text"`
	IsCorrect      bool   `bson:"is_correct" json:"is_correct"`
}

// Attempt is one completed, graded quiz submission for a (user, topic) pair.
// Append-only: never mutated or deleted.
type Attempt struct {
	ID          string         `bson:"_id,omitempty" json:"attempt_id"`
	UserID      string         `bson:"user_id" json:"user_id"`
	TopicID     string         `bson:"topic_id" json:"topic_id"`
	Score       float64        `bson:"score" json:"score"`
	SubmittedAt time.Time      `bson:"submitted_at" json:"submitted_at"`
	Answers     []GradedAnswer `bson:"-" json:"answers,omitempty"`
}

// CorrectCount counts the correct graded answers.
func (a *Attempt) CorrectCount() int {
	n := 0
	for _, ans := range a.Answers {
		if ans.IsCorrect {
			n++
		}
	}
	return n
}
