// Package localstore holds the dashboard collections in memory and mirrors
// every write to a single key-value slot.
package localstore

import (
	"context"
	"errors"
	"expvar"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
	"github.com/oksasatya/inclusive-studai/internal/domain/repository"
	"github.com/oksasatya/inclusive-studai/pkg/events"
)

var (
	persistWrites   = expvar.NewInt("store_persist_writes")
	persistFailures = expvar.NewInt("store_persist_failures")
	seedFallbacks   = expvar.NewInt("store_seed_fallbacks")
)

// writeTimeout bounds a single snapshot write. Writes are detached from the
// caller's context so a dropped request does not drop an accepted change.
const writeTimeout = 5 * time.Second

// LoadSource tells where the initial state of a Store came from.
type LoadSource string

const (
	SourceSnapshot       LoadSource = "snapshot"
	SourceSeedMissing    LoadSource = "seed-missing"
	SourceSeedCorrupt    LoadSource = "seed-corrupt"
	SourceSeedUnreadable LoadSource = "seed-unreadable"
)

// LoadReport describes the outcome of Open. Err is set when a persisted
// snapshot could not be read or decoded.
type LoadReport struct {
	Source LoadSource
	Err    error
}

// Seeded reports whether the store fell back to the default seed.
func (r LoadReport) Seeded() bool { return r.Source != SourceSnapshot }

type Option func(*Store)

// WithStorageKey overrides DefaultStorageKey.
func WithStorageKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithBus publishes store events (currently only the seed fallback) on b.
func WithBus(b *events.Bus) Option { return func(s *Store) { s.bus = b } }

// Store is the single source of truth for users, appointments, courses and
// metrics. All reads return copies.
type Store struct {
	mu     sync.RWMutex
	data   Snapshot
	slot   repository.KeyValueSlot
	key    string
	logger *logrus.Logger
	bus    *events.Bus
	// dirty is set while the slot lags behind data.
	dirty bool
}

// Open builds a Store from the snapshot persisted in slot, or from the
// default seed when there is none or it cannot be used.
func Open(ctx context.Context, slot repository.KeyValueSlot, logger *logrus.Logger, opts ...Option) (*Store, LoadReport) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Store{slot: slot, key: DefaultStorageKey, logger: logger}
	for _, o := range opts {
		o(s)
	}

	data, report := s.load(ctx)
	s.data = data

	if report.Seeded() {
		seedFallbacks.Add(1)
		fields := logrus.Fields{"key": s.key, "source": string(report.Source)}
		if report.Err != nil {
			fields["error"] = report.Err.Error()
			s.logger.WithFields(fields).Warn("persisted snapshot unusable, using default seed")
		} else {
			s.logger.WithFields(fields).Info("no persisted snapshot, using default seed")
		}
		payload := map[string]any{"source": string(report.Source)}
		if report.Err != nil {
			payload["error"] = report.Err.Error()
		}
		s.bus.Publish(ctx, events.Event{Type: events.StoreSeeded, Data: payload})
	}
	return s, report
}

func (s *Store) load(ctx context.Context) (Snapshot, LoadReport) {
	if s.slot == nil {
		return DefaultSnapshot(), LoadReport{Source: SourceSeedMissing}
	}
	raw, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return DefaultSnapshot(), LoadReport{Source: SourceSeedUnreadable, Err: err}
	}
	if !ok || raw == "" {
		return DefaultSnapshot(), LoadReport{Source: SourceSeedMissing}
	}
	snap, err := DecodeSnapshot(raw)
	if err != nil {
		return DefaultSnapshot(), LoadReport{Source: SourceSeedCorrupt, Err: err}
	}
	return snap, LoadReport{Source: SourceSnapshot}
}

// Key returns the slot key the store writes to.
func (s *Store) Key() string { return s.key }

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Flush writes the current state to the slot and reports the outcome.
// Mutations persist on their own; Flush is for callers that need to know.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx)
}

// Dirty reports whether a mutation has not reached the slot yet.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Close retries the last failed write, if any. A store that was never
// mutated writes nothing, so a snapshot that could not be read at startup
// is left as it is.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	return s.write(ctx)
}

// GetUserByEmail returns the first user whose email equals email exactly.
func (s *Store) GetUserByEmail(email string) (entity.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.data.Users {
		if u.Email == email {
			return u, true
		}
	}
	return entity.User{}, false
}

func (s *Store) GetUserByID(id string) (entity.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.userIndex(id); i >= 0 {
		return s.data.Users[i], true
	}
	return entity.User{}, false
}

// GetAppointments returns every appointment. userID is not used for filtering.
func (s *Store) GetAppointments(userID string) []entity.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.data.Appointments)
}

// GetCourses returns every course. userID is not used for filtering.
func (s *Store) GetCourses(userID string) []entity.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCourses(s.data.Courses)
}

func (s *Store) GetMetrics() []entity.Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.data.Metrics)
}

// UpdateUserPreferences merges patch onto the user's preferences and persists.
// Unknown ids return false and write nothing.
func (s *Store) UpdateUserPreferences(ctx context.Context, userID string, patch entity.PreferencesPatch) (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(userID)
	if i < 0 {
		return entity.User{}, false
	}
	s.data.Users[i].Preferences = patch.Apply(s.data.Users[i].Preferences)
	s.persist(ctx)
	return s.data.Users[i], true
}

// UpdateUserConsents merges patch onto the user's consents and persists.
func (s *Store) UpdateUserConsents(ctx context.Context, userID string, patch entity.ConsentsPatch) (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(userID)
	if i < 0 {
		return entity.User{}, false
	}
	s.data.Users[i].Consents = patch.Apply(s.data.Users[i].Consents)
	s.persist(ctx)
	return s.data.Users[i], true
}

// AddAppointment appends a as is; ids are not checked for uniqueness.
func (s *Store) AddAppointment(ctx context.Context, a entity.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Appointments = append(s.data.Appointments, a)
	s.persist(ctx)
}

// userIndex must be called with mu held.
func (s *Store) userIndex(id string) int {
	for i := range s.data.Users {
		if s.data.Users[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the state and only logs failures; the in-memory change
// stands either way and the store is marked dirty. Must be called with mu held.
func (s *Store) persist(ctx context.Context) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()
	if err := s.write(wctx); err != nil {
		s.dirty = true
		persistFailures.Add(1)
		s.logger.WithError(err).WithField("key", s.key).Error("error saving snapshot")
	}
}

func (s *Store) write(ctx context.Context) error {
	if s.slot == nil {
		return errors.New("no slot configured")
	}
	raw, err := EncodeSnapshot(s.data)
	if err != nil {
		return err
	}
	if err := s.slot.Set(ctx, s.key, raw); err != nil {
		return err
	}
	s.dirty = false
	persistWrites.Add(1)
	return nil
}

var _ repository.Store = (*Store)(nil)
