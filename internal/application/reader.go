package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
	repo "github.com/oksasatya/inclusive-studai/internal/domain/repository"
	"github.com/oksasatya/inclusive-studai/internal/domain/speech"
)

// ReadAloud speaks text at the user's voice speed and returns once the
// synthesizer signals completion.
func (s *Service) ReadAloud(ctx context.Context, userID, text string) (speech.Utterance, error) {
	u, ok := s.Store.GetUserByID(userID)
	if !ok {
		return speech.Utterance{}, ErrUserNotFound
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return speech.Utterance{}, ErrNothingToRead
	}
	if s.Speech == nil {
		return speech.Utterance{}, errors.New("speech synthesizer not configured")
	}
	utt := speech.Utterance{
		Text: text,
		Lang: speech.DefaultLang,
		Rate: clampRate(u.Preferences.VoiceSpeed),
	}
	done, err := s.Speech.Speak(ctx, utt)
	if err != nil {
		return speech.Utterance{}, fmt.Errorf("speak: %w", err)
	}
	select {
	case <-done:
		return utt, nil
	case <-ctx.Done():
		return speech.Utterance{}, ctx.Err()
	}
}

func clampRate(v float64) float64 {
	switch {
	case v < entity.MinVoiceSpeed:
		return entity.MinVoiceSpeed
	case v > entity.MaxVoiceSpeed:
		return entity.MaxVoiceSpeed
	}
	return v
}

// IndexMaterials loads every course into the material index.
func (s *Service) IndexMaterials(ctx context.Context) error {
	if s.Materials == nil {
		return nil
	}
	return s.Materials.Index(ctx, s.Store.GetCourses(""))
}

func (s *Service) SearchMaterials(ctx context.Context, query string, size int) ([]repo.MaterialHit, error) {
	if s.Materials == nil {
		return []repo.MaterialHit{}, nil
	}
	return s.Materials.Search(ctx, query, size)
}
