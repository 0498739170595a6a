package models

// SubmittedAnswer is one answer in an incoming quiz submission.
type SubmittedAnswer struct {
	QuestionID     string `json:"question_id" binding:"required"`
	SelectedAnswer string `json:"selected_answer" binding:"required"`
}

// QuizSubmission is the transient input of the submission flow. It is never
// persisted directly; grading turns it into an Attempt.
type QuizSubmission struct {
	UserID  string            `json:"user_id"`
	TopicID string            `json:"topic_id" binding:"required"`
	Answers []SubmittedAnswer `json:"submitted_answers" binding:"required"`
}

// SubmissionResult is the synchronous response of the submission flow.
type SubmissionResult struct {
	AttemptID      string  `json:"attempt_id"`
	Score          float64 `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	TopicStatus    string  `json:"topic_status"`
	Mastered       bool    `json:"mastered"`
	NextReviewDate string  `json:"next_review_date,omitempty"`
}
