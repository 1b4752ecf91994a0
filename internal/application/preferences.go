package application

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
	"github.com/oksasatya/inclusive-studai/pkg/events"
)

// ToggleHighContrast stores the negation of current. Display changes are
// left to subscribers of the preferences.updated event.
func (s *Service) ToggleHighContrast(ctx context.Context, userID string, current bool) (entity.User, error) {
	next := !current
	return s.UpdatePreferences(ctx, userID, entity.PreferencesPatch{HighContrast: &next})
}

func (s *Service) UpdatePreferences(ctx context.Context, userID string, patch entity.PreferencesPatch) (entity.User, error) {
	if err := validatePreferences(patch); err != nil {
		return entity.User{}, err
	}
	u, ok := s.Store.UpdateUserPreferences(ctx, userID, patch)
	if !ok {
		return entity.User{}, ErrUserNotFound
	}
	s.Bus.Publish(ctx, events.Event{
		Type:   events.PreferencesUpdated,
		UserID: u.ID,
		Data: map[string]any{
			"highContrast": u.Preferences.HighContrast,
			"fontSize":     string(u.Preferences.FontSize),
			"voiceSpeed":   u.Preferences.VoiceSpeed,
		},
	})
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID}).Debug("preferences updated")
	return u, nil
}

func (s *Service) UpdateConsents(ctx context.Context, userID string, patch entity.ConsentsPatch) (entity.User, error) {
	u, ok := s.Store.UpdateUserConsents(ctx, userID, patch)
	if !ok {
		return entity.User{}, ErrUserNotFound
	}
	s.Bus.Publish(ctx, events.Event{
		Type:   events.ConsentsUpdated,
		UserID: u.ID,
		Data: map[string]any{
			"dataCollection": u.Consents.DataCollection,
			"voiceRecording": u.Consents.VoiceRecording,
		},
	})
	return u, nil
}

func validatePreferences(p entity.PreferencesPatch) error {
	if p.FontSize != nil && !entity.ValidFontSize(*p.FontSize) {
		return fmt.Errorf("%w: unknown font size %q", ErrInvalidPreferences, *p.FontSize)
	}
	if p.VoiceSpeed != nil {
		v := *p.VoiceSpeed
		if math.IsNaN(v) || v < entity.MinVoiceSpeed || v > entity.MaxVoiceSpeed {
			return fmt.Errorf("%w: voice speed %v out of range", ErrInvalidPreferences, v)
		}
	}
	return nil
}
