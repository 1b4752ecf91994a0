package localstore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oksasatya/inclusive-studai/internal/domain/entity"
)

// DefaultStorageKey is the slot key the whole state is persisted under.
const DefaultStorageKey = "inclusive_studai_db_v1"

// ErrIncompleteSnapshot is returned when a persisted snapshot parses but
// lacks one of the four collections.
var ErrIncompleteSnapshot = errors.New("snapshot is missing a collection")

// Snapshot is the persisted layout: exactly four top-level collections.
type Snapshot struct {
	Users        []entity.User        `json:"users"`
	Appointments []entity.Appointment `json:"appointments"`
	Courses      []entity.Course      `json:"courses"`
	Metrics      []entity.Metric      `json:"metrics"`
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Users:        cloneSlice(s.Users),
		Appointments: cloneSlice(s.Appointments),
		Courses:      cloneCourses(s.Courses),
		Metrics:      cloneSlice(s.Metrics),
	}
}

// EncodeSnapshot serializes s to the JSON stored in the slot.
func EncodeSnapshot(s Snapshot) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(b), nil
}

// DecodeSnapshot parses a persisted snapshot. Any collection that is absent
// or null makes the snapshot unusable.
func DecodeSnapshot(raw string) (Snapshot, error) {
	var wire struct {
		Users        *[]entity.User        `json:"users"`
		Appointments *[]entity.Appointment `json:"appointments"`
		Courses      *[]entity.Course      `json:"courses"`
		Metrics      *[]entity.Metric      `json:"metrics"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if wire.Users == nil || wire.Appointments == nil || wire.Courses == nil || wire.Metrics == nil {
		return Snapshot{}, ErrIncompleteSnapshot
	}
	return Snapshot{
		Users:        *wire.Users,
		Appointments: *wire.Appointments,
		Courses:      *wire.Courses,
		Metrics:      *wire.Metrics,
	}, nil
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneCourses(in []entity.Course) []entity.Course {
	out := make([]entity.Course, len(in))
	for i, c := range in {
		c.Materials = cloneSlice(c.Materials)
		out[i] = c
	}
	return out
}
