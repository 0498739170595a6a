package scheduler

import (
	"context"
	"log"
	"time"

	"mastery-service/internal/notifier"
)

// Scheduler runs the notification sweep at fixed wall-clock times each day
// (default 09:00 and 18:00). A single worker executes sweeps; runs triggered
// over HTTP in between are harmless because the dispatcher itself is
// idempotent per day.
type Scheduler struct {
	dispatcher *notifier.Dispatcher
	times      []string
	now        func() time.Time
}

func New(dispatcher *notifier.Dispatcher, times []string) *Scheduler {
	return &Scheduler{dispatcher: dispatcher, times: times, now: time.Now}
}

// Start blocks until the context is cancelled; callers run it in a goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("[SCHEDULER] daily notification sweeps at %v", s.times)
	for {
		next := s.nextRun(s.now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if _, err := s.dispatcher.RunBatch(ctx); err != nil {
			log.Printf("[SCHEDULER] notification sweep failed: %v", err)
		}
	}
}

// nextRun returns the earliest configured time-of-day strictly after now,
// rolling over to tomorrow's first slot when today's are all past.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	var next time.Time
	for _, t := range s.times {
		parsed, err := time.Parse("15:04", t)
		if err != nil {
			log.Printf("[SCHEDULER] skipping invalid dispatch time %q: %v", t, err)
			continue
		}
		candidate := time.Date(now.Year(), now.Month(), now.Day(),
			parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		if next.IsZero() || candidate.Before(next) {
			next = candidate
		}
	}
	if next.IsZero() {
		// No valid times configured; fall back to a daily cadence.
		next = now.AddDate(0, 0, 1)
	}
	return next
}
