package application

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/inclusive-studai/internal/domain/repository"
	"github.com/oksasatya/inclusive-studai/internal/domain/speech"
	"github.com/oksasatya/inclusive-studai/pkg/events"
	"github.com/oksasatya/inclusive-studai/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPreferences = errors.New("invalid preferences")
	ErrNothingToRead      = errors.New("nothing to read")
)

// DefaultLoginDelay simulates the latency of a remote identity check.
const DefaultLoginDelay = 800 * time.Millisecond

// Service translates user intents into Store operations. It keeps no state
// of its own beyond the collaborators it is built with.
type Service struct {
	Store      repo.Store
	JWT        *helpers.JWTManager
	Bus        *events.Bus
	Materials  repo.MaterialIndex
	Speech     speech.Synthesizer
	IDs        *helpers.MillisIDs
	Logger     *logrus.Logger
	LoginDelay time.Duration
}

func NewService(store repo.Store, jwt *helpers.JWTManager, bus *events.Bus, materials repo.MaterialIndex, synth speech.Synthesizer, logger *logrus.Logger, loginDelay time.Duration) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		Store:      store,
		JWT:        jwt,
		Bus:        bus,
		Materials:  materials,
		Speech:     synth,
		IDs:        helpers.NewMillisIDs(nil),
		Logger:     logger,
		LoginDelay: loginDelay,
	}
}
