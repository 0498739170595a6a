package models

import "time"

// Notification cadence types.
const (
	NotificationDaily  = "daily"
	NotificationWeekly = "weekly"
)

// NotificationSettings are a user's global notification switches. Absent
// documents mean everything is enabled.
type NotificationSettings struct {
	UserID                string    `bson:"user_id" json:"user_id"`
	EmailEnabled          bool      `bson:"email_notifications_enabled" json:"email_notifications_enabled"`
	DailyRemindersEnabled bool      `bson:"daily_reminders_enabled" json:"daily_reminders_enabled"`
	UpdatedAt             time.Time `bson:"updated_at" json:"updated_at"`
}

// DefaultNotificationSettings returns the everything-enabled defaults used
// when a user has never touched their settings.
func DefaultNotificationSettings(userID string) NotificationSettings {
	return NotificationSettings{
		UserID:                userID,
		EmailEnabled:          true,
		DailyRemindersEnabled: true,
	}
}

// TopicNotificationPreference is the per-(user, topic) enabled flag.
type TopicNotificationPreference struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	TopicID   string    `bson:"topic_id" json:"topic_id"`
	Enabled   bool      `bson:"enabled" json:"enabled"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NotificationRecord is written after a successful reminder send. At most one
// record may exist per (user, topic, type, sent date); that tuple is the dedup
// key the dispatcher checks before sending.
type NotificationRecord struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	UserID           string    `bson:"user_id" json:"user_id"`
	TopicID          string    `bson:"topic_id" json:"topic_id"`
	NotificationType string    `bson:"notification_type" json:"notification_type"`
	SentAt           time.Time `bson:"sent_at" json:"sent_at"`
	SentDate         string    `bson:"sent_date" json:"sent_date"`
	NextDueAt        time.Time `bson:"next_notification_at" json:"next_notification_at"`
	Message          string    `bson:"message" json:"message"`
}
