package notifier

import (
	"context"
	"fmt"
	"log"
	"time"

	"mastery-service/internal/models"

	"github.com/google/uuid"
)

// Store is the persistence surface the dispatcher sweeps over.
type Store interface {
	List(ctx context.Context) ([]models.MasteryProfile, error)
	GetSettings(ctx context.Context, userID string) (models.NotificationSettings, error)
	IsTopicEnabled(ctx context.Context, userID, topicID string) (bool, error)
	WasNotified(ctx context.Context, userID, topicID, notifType, sentDate string) (bool, error)
	AppendRecord(ctx context.Context, record *models.NotificationRecord) error
	FindUser(ctx context.Context, userID string) (*models.User, error)
}

// Mailer is the external mail-dispatch capability.
type Mailer interface {
	Send(to, subject, body string) error
}

// DispatchReport summarizes one sweep.
type DispatchReport struct {
	Scanned int `json:"scanned"`
	Skipped int `json:"skipped"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
}

// Dispatcher runs the periodic reminder sweep. Each profile is handled
// independently; a failure on one never aborts the rest. A record is written
// only after a successful send, so a failed row stays eligible within the
// same day and the dedup key bounds delivery to once per day per type.
type Dispatcher struct {
	store            Store
	mailer           Mailer
	masteryThreshold float64
	now              func() time.Time
}

func NewDispatcher(store Store, mailer Mailer, masteryThreshold float64) *Dispatcher {
	return &Dispatcher{
		store:            store,
		mailer:           mailer,
		masteryThreshold: masteryThreshold,
		now:              time.Now,
	}
}

// RunBatch sweeps every mastery profile once. Safe to invoke any number of
// times per day: the per-(user, topic, type, date) record gate makes repeat
// runs no-ops for already-notified rows.
func (d *Dispatcher) RunBatch(ctx context.Context) (*DispatchReport, error) {
	profiles, err := d.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mastery profiles: %w", err)
	}

	report := &DispatchReport{}
	for i := range profiles {
		profile := &profiles[i]
		report.Scanned++

		sent, err := d.processProfile(ctx, profile)
		if err != nil {
			log.Printf("[DISPATCH] user=%s topic=%s: %v", profile.UserID, profile.TopicID, err)
			report.Failed++
			continue
		}
		if sent {
			report.Sent++
		} else {
			report.Skipped++
		}
	}

	log.Printf("[DISPATCH] sweep done: scanned=%d sent=%d skipped=%d failed=%d",
		report.Scanned, report.Sent, report.Skipped, report.Failed)
	return report, nil
}

// processProfile walks the eligibility pipeline in its required order and
// sends at most one reminder. Returns (false, nil) on a skip.
func (d *Dispatcher) processProfile(ctx context.Context, profile *models.MasteryProfile) (bool, error) {
	settings, err := d.store.GetSettings(ctx, profile.UserID)
	if err != nil {
		return false, fmt.Errorf("get settings: %w", err)
	}
	if !settings.EmailEnabled {
		return false, nil
	}

	notifType := models.NotificationWeekly
	if profile.LatestScore < d.masteryThreshold {
		notifType = models.NotificationDaily
	}

	if notifType == models.NotificationDaily && !settings.DailyRemindersEnabled {
		return false, nil
	}

	topicEnabled, err := d.store.IsTopicEnabled(ctx, profile.UserID, profile.TopicID)
	if err != nil {
		return false, fmt.Errorf("get topic preference: %w", err)
	}
	if !topicEnabled {
		return false, nil
	}

	now := d.now().UTC()
	today := now.Format("2006-01-02")
	notified, err := d.store.WasNotified(ctx, profile.UserID, profile.TopicID, notifType, today)
	if err != nil {
		return false, fmt.Errorf("check notification record: %w", err)
	}
	if notified {
		return false, nil
	}

	user, err := d.store.FindUser(ctx, profile.UserID)
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}

	subject, body := ReminderMessage(user.Name, profile.TopicTitle, profile.LatestScore, notifType)
	if err := d.mailer.Send(user.Email, subject, body); err != nil {
		// No record is written: the row stays eligible for the next run today.
		return false, fmt.Errorf("send %s reminder: %w", notifType, err)
	}

	nextDue := now.AddDate(0, 0, 1)
	if notifType == models.NotificationWeekly {
		nextDue = now.AddDate(0, 0, 7)
	}
	record := &models.NotificationRecord{
		ID:               uuid.NewString(),
		UserID:           profile.UserID,
		TopicID:          profile.TopicID,
		NotificationType: notifType,
		SentAt:           now,
		SentDate:         today,
		NextDueAt:        nextDue,
		Message:          fmt.Sprintf("%s reminder sent for %s (score: %.1f/10)", notifType, profile.TopicTitle, profile.LatestScore),
	}
	if err := d.store.AppendRecord(ctx, record); err != nil {
		return false, fmt.Errorf("append notification record: %w", err)
	}
	return true, nil
}
