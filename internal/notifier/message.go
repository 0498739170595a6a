package notifier

import (
	"fmt"
	"strings"

	"mastery-service/internal/models"
)

// ReminderMessage composes the subject and body of a review reminder. Content
// varies by cadence but carries no state beyond the score.
func ReminderMessage(name, title string, score float64, notifType string) (subject, body string) {
	if name == "" {
		name = "Learner"
	}

	if notifType == models.NotificationDaily {
		subject = fmt.Sprintf("Daily Study Reminder: %s", title)
		body = fmt.Sprintf(`Hi %s,

This is your daily reminder to review the topic: %q.

Your current score is %.1f/10. With consistent practice, you can improve your understanding and achieve mastery!

Keep learning!
The Recallo Team`, name, title, score)
		return subject, body
	}

	subject = fmt.Sprintf("Weekly Review: %s", title)
	body = fmt.Sprintf(`Hi %s,

Time for your weekly review of: %q.

You've mastered this topic with a score of %.1f/10. A quick review will help reinforce your knowledge!

Best regards,
The Recallo Team`, name, title, score)
	return subject, body
}

// ResultMessage composes the post-submission result email, banded by score.
func ResultMessage(name, title string, score float64) (subject, body string) {
	if name == "" {
		name = "Learner"
	}
	subject = fmt.Sprintf("Your Result for: %s", title)

	switch {
	case score >= 8:
		body = fmt.Sprintf(`Hi %s,

Congratulations on your excellent performance!

You scored %.1f/10 in the topic: %q.

Keep up the great work and continue sharpening your skills. You're doing fantastic!

Best wishes,
The Recallo Team`, name, score, title)
	case score >= 5:
		body = fmt.Sprintf(`Hi %s,

You scored %.1f/10 on the topic: %q.

That's a solid effort! With a little more practice, you'll master this topic in no time. Would you like to retake it for a better score?

Stay motivated!
The Recallo Team`, name, score, title)
	default:
		body = fmt.Sprintf(`Hi %s,

You scored %.1f/10 on the topic: %q.

Don't be discouraged! Every expert was once a beginner. This is your chance to come back stronger - give it another go and improve your score.

We're rooting for you!
The Recallo Team`, name, score, title)
	}
	return subject, strings.TrimSpace(body)
}
