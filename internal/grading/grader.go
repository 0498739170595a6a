package grading

import (
	"errors"
	"fmt"
	"time"

	"mastery-service/internal/models"

	"github.com/google/uuid"
)

// ErrInvalidSubmission rejects malformed input: no answers, or an answer that
// references a question the answer key does not contain. Nothing is written
// when grading fails.
var ErrInvalidSubmission = errors.New("invalid submission")

// Grader turns a submission plus its answer key into a graded Attempt. It is
// pure apart from id and timestamp generation; persistence belongs to the
// mastery tracker.
type Grader struct {
	now   func() time.Time
	newID func() string
}

func NewGrader() *Grader {
	return &Grader{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

func (g *Grader) Grade(submission models.QuizSubmission, key models.AnswerKey) (*models.Attempt, error) {
	if len(submission.Answers) == 0 {
		return nil, fmt.Errorf("%w: no answers submitted", ErrInvalidSubmission)
	}

	attemptID := g.newID()
	correctCount := 0
	graded := make([]models.GradedAnswer, 0, len(submission.Answers))

	for _, ans := range submission.Answers {
		entry, ok := key[ans.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown question %s", ErrInvalidSubmission, ans.QuestionID)
		}

		isCorrect := ans.SelectedAnswer == entry.CorrectLetter
		if isCorrect {
			correctCount++
		}

		graded = append(graded, models.GradedAnswer{
			ID:             g.newID(),
			AttemptID:      attemptID,
			QuestionID:     ans.QuestionID,
			SelectedLetter: ans.SelectedAnswer,
			SelectedText:   entry.OptionTexts[ans.SelectedAnswer],
			CorrectLetter:  entry.CorrectLetter,
			CorrectText:    entry.OptionTexts[entry.CorrectLetter],
			IsCorrect:      isCorrect,
		})
	}

	// Score out of 10, kept as a float. len(Answers) > 0 is guaranteed above.
	score := float64(correctCount) / float64(len(submission.Answers)) * 10

	return &models.Attempt{
		ID:          attemptID,
		UserID:      submission.UserID,
		TopicID:     submission.TopicID,
		Score:       score,
		SubmittedAt: g.now().UTC(),
		Answers:     graded,
	}, nil
}
