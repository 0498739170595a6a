package service

import (
	"context"
	"fmt"

	"mastery-service/internal/models"
)

// SettingsStore is the preference surface the settings operations use.
type SettingsStore interface {
	GetSettings(ctx context.Context, userID string) (models.NotificationSettings, error)
	UpsertSettings(ctx context.Context, settings models.NotificationSettings) error
	ListTopicPreferences(ctx context.Context, userID string) ([]models.TopicNotificationPreference, error)
	UpsertTopicPreference(ctx context.Context, pref models.TopicNotificationPreference) error
}

// GlobalSettings mirrors the wire shape of the global notification switches.
type GlobalSettings struct {
	EmailNotificationsEnabled bool `json:"email_notifications_enabled"`
	DailyRemindersEnabled     bool `json:"daily_reminders_enabled"`
}

// NotificationSettingsView is what the settings read endpoint returns.
type NotificationSettingsView struct {
	GlobalSettings GlobalSettings  `json:"global_settings"`
	TopicSettings  map[string]bool `json:"topic_settings"`
}

// NotificationSettingsUpdate is the settings write payload. Nil fields are
// left untouched.
type NotificationSettingsUpdate struct {
	GlobalSettings *GlobalSettings `json:"global_settings"`
	TopicSettings  map[string]bool `json:"topic_settings"`
}

// SettingsService reads and updates a user's notification preferences. The
// dispatcher only ever reads them; this is the surface that writes.
type SettingsService struct {
	store SettingsStore
}

func NewSettingsService(store SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) GetSettings(ctx context.Context, userID string) (*NotificationSettingsView, error) {
	settings, err := s.store.GetSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch settings: %w", err)
	}

	view := &NotificationSettingsView{
		GlobalSettings: GlobalSettings{
			EmailNotificationsEnabled: settings.EmailEnabled,
			DailyRemindersEnabled:     settings.DailyRemindersEnabled,
		},
		TopicSettings: map[string]bool{},
	}

	prefs, err := s.store.ListTopicPreferences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch topic preferences: %w", err)
	}
	for _, p := range prefs {
		view.TopicSettings[p.TopicID] = p.Enabled
	}
	return view, nil
}

func (s *SettingsService) UpdateSettings(ctx context.Context, userID string, update NotificationSettingsUpdate) error {
	if update.GlobalSettings != nil {
		settings := models.NotificationSettings{
			UserID:                userID,
			EmailEnabled:          update.GlobalSettings.EmailNotificationsEnabled,
			DailyRemindersEnabled: update.GlobalSettings.DailyRemindersEnabled,
		}
		if err := s.store.UpsertSettings(ctx, settings); err != nil {
			return fmt.Errorf("update global settings: %w", err)
		}
	}

	for topicID, enabled := range update.TopicSettings {
		pref := models.TopicNotificationPreference{
			UserID:  userID,
			TopicID: topicID,
			Enabled: enabled,
		}
		if err := s.store.UpsertTopicPreference(ctx, pref); err != nil {
			return fmt.Errorf("update topic preference %s: %w", topicID, err)
		}
	}
	return nil
}
