package service

import (
	"context"
	"testing"

	"mastery-service/internal/models"
)

type fakeSettingsStore struct {
	settings   map[string]models.NotificationSettings
	topicPrefs []models.TopicNotificationPreference
}

func newFakeSettingsStore() *fakeSettingsStore {
	return &fakeSettingsStore{settings: map[string]models.NotificationSettings{}}
}

func (s *fakeSettingsStore) GetSettings(_ context.Context, userID string) (models.NotificationSettings, error) {
	if settings, ok := s.settings[userID]; ok {
		return settings, nil
	}
	return models.DefaultNotificationSettings(userID), nil
}

func (s *fakeSettingsStore) UpsertSettings(_ context.Context, settings models.NotificationSettings) error {
	s.settings[settings.UserID] = settings
	return nil
}

func (s *fakeSettingsStore) ListTopicPreferences(_ context.Context, userID string) ([]models.TopicNotificationPreference, error) {
	var out []models.TopicNotificationPreference
	for _, p := range s.topicPrefs {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeSettingsStore) UpsertTopicPreference(_ context.Context, pref models.TopicNotificationPreference) error {
	for i, p := range s.topicPrefs {
		if p.UserID == pref.UserID && p.TopicID == pref.TopicID {
			s.topicPrefs[i] = pref
			return nil
		}
	}
	s.topicPrefs = append(s.topicPrefs, pref)
	return nil
}

func TestGetSettingsDefaults(t *testing.T) {
	s := NewSettingsService(newFakeSettingsStore())

	view, err := s.GetSettings(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !view.GlobalSettings.EmailNotificationsEnabled || !view.GlobalSettings.DailyRemindersEnabled {
		t.Errorf("Untouched settings must default to enabled: %+v", view.GlobalSettings)
	}
	if len(view.TopicSettings) != 0 {
		t.Errorf("Expected no topic settings, got %v", view.TopicSettings)
	}
}

func TestUpdateAndGetSettingsRoundTrip(t *testing.T) {
	store := newFakeSettingsStore()
	s := NewSettingsService(store)
	ctx := context.Background()

	update := NotificationSettingsUpdate{
		GlobalSettings: &GlobalSettings{EmailNotificationsEnabled: true, DailyRemindersEnabled: false},
		TopicSettings:  map[string]bool{"t1": false, "t2": true},
	}
	if err := s.UpdateSettings(ctx, "u1", update); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	view, err := s.GetSettings(ctx, "u1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if view.GlobalSettings.DailyRemindersEnabled {
		t.Error("Daily reminders should be off after update")
	}
	if view.TopicSettings["t1"] || !view.TopicSettings["t2"] {
		t.Errorf("Unexpected topic settings: %v", view.TopicSettings)
	}
}

func TestUpdateSettingsNilGlobalLeavesGlobalUntouched(t *testing.T) {
	store := newFakeSettingsStore()
	store.settings["u1"] = models.NotificationSettings{
		UserID: "u1", EmailEnabled: false, DailyRemindersEnabled: true,
	}
	s := NewSettingsService(store)

	update := NotificationSettingsUpdate{TopicSettings: map[string]bool{"t1": false}}
	if err := s.UpdateSettings(context.Background(), "u1", update); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if store.settings["u1"].EmailEnabled {
		t.Error("Global settings must stay untouched when the payload omits them")
	}
	if len(store.topicPrefs) != 1 || store.topicPrefs[0].Enabled {
		t.Errorf("Expected one disabled topic preference, got %v", store.topicPrefs)
	}
}
